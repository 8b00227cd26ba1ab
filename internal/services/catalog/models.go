package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PersonalTaxService is one priced line item on the personal tax
// price list.
type PersonalTaxService struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd6"`
	Name        string        `bson:"name" json:"name" example:"T1 Basic Return"`
	Price       float64       `bson:"price" json:"price" example:"80"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Category    string        `bson:"category,omitempty" json:"category,omitempty" example:"forms"`
	Status      string        `bson:"status,omitempty" json:"status,omitempty" example:"Active"`
	CreatedAt   time.Time     `bson:"ts" json:"ts"`
	UpdatedAt   time.Time     `bson:"lts" json:"lts"`
}

// PayrollService is one priced line item on the payroll price list.
type PayrollService struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd7"`
	Name      string        `bson:"name" json:"name" example:"Monthly Payroll (1-5 employees)"`
	Price     float64       `bson:"price" json:"price" example:"60"`
	CreatedAt time.Time     `bson:"ts" json:"ts"`
	UpdatedAt time.Time     `bson:"lts" json:"lts"`
}

// SetPersonalTaxService is the full field set written on upsert.
// Price list entries are replaced wholesale rather than patched.
type SetPersonalTaxService struct {
	Name        string  `bson:"name"`
	Price       float64 `bson:"price"`
	Description string  `bson:"description"`
	Category    string  `bson:"category"`
	Status      string  `bson:"status"`
}

// SetPayrollService is the full field set written on upsert.
type SetPayrollService struct {
	Name  string  `bson:"name"`
	Price float64 `bson:"price"`
}
