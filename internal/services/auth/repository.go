package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrDuplicate is returned when trying to create a user with an email that already exists
var ErrDuplicate = errors.New("user with this email already exists")

// ErrUserNotFound is returned when the referenced user does not exist
var ErrUserNotFound = errors.New("user not found")

// UsersRepo defines the interface for user repository operations
type UsersRepo interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*User, error)
	List(ctx context.Context, skip, limit int) ([]*User, int64, error)
	Update(ctx context.Context, id bson.ObjectID, patch UpdateUser) (*User, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}
