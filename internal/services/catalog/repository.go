package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PersonalTaxServicesRepo defines repository operations for the
// personal tax price list
type PersonalTaxServicesRepo interface {
	Create(ctx context.Context, svc *PersonalTaxService) error
	Replace(ctx context.Context, id bson.ObjectID, set SetPersonalTaxService) (*PersonalTaxService, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	List(ctx context.Context) ([]*PersonalTaxService, error)
}

// PayrollServicesRepo defines repository operations for the payroll
// price list
type PayrollServicesRepo interface {
	Create(ctx context.Context, svc *PayrollService) error
	Replace(ctx context.Context, id bson.ObjectID, set SetPayrollService) (*PayrollService, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	List(ctx context.Context) ([]*PayrollService, error)
}
