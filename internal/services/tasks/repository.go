package tasks

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PersonalTaxRepo defines repository operations for personal tax tasks
type PersonalTaxRepo interface {
	Create(ctx context.Context, task *PersonalTax) error
	FindByID(ctx context.Context, id bson.ObjectID) (*PersonalTax, error)
	Update(ctx context.Context, id bson.ObjectID, patch UpdatePersonalTax) (*PersonalTax, error)
	List(ctx context.Context, clientID string, skip, limit int) ([]*PersonalTax, int64, error)
}

// CorporationTaxRepo defines repository operations for corporate tax tasks
type CorporationTaxRepo interface {
	Create(ctx context.Context, task *CorporationTax) error
	FindByID(ctx context.Context, id bson.ObjectID) (*CorporationTax, error)
	Update(ctx context.Context, id bson.ObjectID, patch UpdateCorporationTax) (*CorporationTax, error)
	List(ctx context.Context, corpID string, skip, limit int) ([]*CorporationTax, int64, error)
}

// PayrollRepo defines repository operations for payroll records
type PayrollRepo interface {
	Create(ctx context.Context, record *Payroll) error
	FindByID(ctx context.Context, id bson.ObjectID) (*Payroll, error)
	Update(ctx context.Context, id bson.ObjectID, patch UpdatePayroll) (*Payroll, error)
	List(ctx context.Context, corpID string, year, skip, limit int) ([]*Payroll, int64, error)
}
