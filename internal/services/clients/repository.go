package clients

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines the interface for client repository operations
type Repository interface {
	Create(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id bson.ObjectID) (*Client, error)
	Update(ctx context.Context, id bson.ObjectID, patch UpdateClient) (*Client, error)
	List(ctx context.Context, skip, limit int) ([]*Client, int64, error)
}
