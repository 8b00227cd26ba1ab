package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Roles recognized by the role gate. Anything else is treated as a
// regular user.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User represents a staff account in the system.
// ts/lts follow the office-wide record convention: ts is set once at
// creation, lts is refreshed on every update.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	Email        string        `bson:"email" json:"email" example:"jane@office.example"`
	Name         string        `bson:"name" json:"name" example:"Jane Doe"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Role         string        `bson:"role" json:"role" example:"user"`
	Status       string        `bson:"status" json:"status" example:"active"`
	CreatedAt    time.Time     `bson:"ts" json:"ts"`
	UpdatedAt    time.Time     `bson:"lts" json:"lts"`
}

// IsAdmin reports whether the user passes the admin role gate.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UpdateUser is the allow-listed patch for user updates. Only these
// fields can ever be written through the update endpoint; arbitrary
// body keys are dropped at parse time.
type UpdateUser struct {
	Email        *string `bson:"email,omitempty"`
	Name         *string `bson:"name,omitempty"`
	PasswordHash *string `bson:"password_hash,omitempty"`
	Role         *string `bson:"role,omitempty"`
	Status       *string `bson:"status,omitempty"`
}
