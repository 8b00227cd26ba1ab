package clients

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Client represents an individual client of the office.
// ts is set once at creation; lts is refreshed on every update.
type Client struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	Name          string        `bson:"name" json:"name" example:"John Smith"`
	DOB           *time.Time    `bson:"dob,omitempty" json:"dob,omitempty"`
	SIN           string        `bson:"sin,omitempty" json:"sin,omitempty"`
	Telephone     string        `bson:"telephone,omitempty" json:"telephone,omitempty"`
	Email         string        `bson:"email,omitempty" json:"email,omitempty"`
	Address       string        `bson:"address,omitempty" json:"address,omitempty"`
	City          string        `bson:"city,omitempty" json:"city,omitempty"`
	Province      string        `bson:"province,omitempty" json:"province,omitempty"`
	MaritalStatus string        `bson:"maritalStatus,omitempty" json:"maritalStatus,omitempty"`
	Gender        string        `bson:"gender,omitempty" json:"gender,omitempty"`
	Status        string        `bson:"status" json:"status" example:"Active"`
	CreatedAt     time.Time     `bson:"ts" json:"ts"`
	UpdatedAt     time.Time     `bson:"lts" json:"lts"`
}

// UpdateClient is the allow-listed patch for client updates.
type UpdateClient struct {
	Name          *string    `bson:"name,omitempty"`
	DOB           *time.Time `bson:"dob,omitempty"`
	SIN           *string    `bson:"sin,omitempty"`
	Telephone     *string    `bson:"telephone,omitempty"`
	Email         *string    `bson:"email,omitempty"`
	Address       *string    `bson:"address,omitempty"`
	City          *string    `bson:"city,omitempty"`
	Province      *string    `bson:"province,omitempty"`
	MaritalStatus *string    `bson:"maritalStatus,omitempty"`
	Gender        *string    `bson:"gender,omitempty"`
	Status        *string    `bson:"status,omitempty"`
}
