package corporations

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Corporation represents an incorporated client of the office. ClientID
// links the corporation to the individual who owns it.
type Corporation struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd2"`
	Name           string        `bson:"name" json:"name" example:"Maple Leaf Consulting Inc."`
	ClientID       string        `bson:"clientId,omitempty" json:"clientId,omitempty"`
	BusinessNumber string        `bson:"businessNumber,omitempty" json:"businessNumber,omitempty"`
	YearEnd        string        `bson:"yearEnd,omitempty" json:"yearEnd,omitempty" example:"12-31"`
	Telephone      string        `bson:"telephone,omitempty" json:"telephone,omitempty"`
	Email          string        `bson:"email,omitempty" json:"email,omitempty"`
	Address        string        `bson:"address,omitempty" json:"address,omitempty"`
	Status         string        `bson:"status" json:"status" example:"Active"`
	CreatedAt      time.Time     `bson:"ts" json:"ts"`
	UpdatedAt      time.Time     `bson:"lts" json:"lts"`
}

// UpdateCorporation is the allow-listed patch for corporation updates.
type UpdateCorporation struct {
	Name           *string `bson:"name,omitempty"`
	ClientID       *string `bson:"clientId,omitempty"`
	BusinessNumber *string `bson:"businessNumber,omitempty"`
	YearEnd        *string `bson:"yearEnd,omitempty"`
	Telephone      *string `bson:"telephone,omitempty"`
	Email          *string `bson:"email,omitempty"`
	Address        *string `bson:"address,omitempty"`
	Status         *string `bson:"status,omitempty"`
}
