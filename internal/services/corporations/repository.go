package corporations

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines the interface for corporation repository operations
type Repository interface {
	Create(ctx context.Context, corp *Corporation) error
	FindByID(ctx context.Context, id bson.ObjectID) (*Corporation, error)
	Update(ctx context.Context, id bson.ObjectID, patch UpdateCorporation) (*Corporation, error)
	List(ctx context.Context, clientID string, skip, limit int) ([]*Corporation, int64, error)
}
