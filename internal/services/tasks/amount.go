package tasks

import (
	"bytes"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Amount is a tolerant money field. Historical task records stored
// payment as a double, an int, or a free-typed string, so decoding
// accepts all of them. Anything unparsable decodes as the zero Amount
// rather than failing the read: a bad payment must never break a list
// or the dashboard, it just contributes nothing to revenue.
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount returns a valid Amount carrying v.
func NewAmount(v float64) Amount {
	return Amount{Value: v, Valid: true}
}

// IsZero implements bson.Zeroer so omitempty drops absent amounts.
func (a Amount) IsZero() bool {
	return !a.Valid
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (a *Amount) UnmarshalBSONValue(typ byte, data []byte) error {
	*a = Amount{}

	rv := bson.RawValue{Type: bson.Type(typ), Value: data}
	switch rv.Type {
	case bson.TypeDouble:
		a.Value, a.Valid = rv.Double(), true
	case bson.TypeInt32:
		a.Value, a.Valid = float64(rv.Int32()), true
	case bson.TypeInt64:
		a.Value, a.Valid = float64(rv.Int64()), true
	case bson.TypeString:
		a.set(rv.StringValue())
	}
	return nil
}

// MarshalBSONValue implements bson.ValueMarshaler. Amounts are always
// written back as doubles regardless of how they were stored.
func (a Amount) MarshalBSONValue() (byte, []byte, error) {
	if !a.Valid {
		return byte(bson.TypeNull), nil, nil
	}
	t, data, err := bson.MarshalValue(a.Value)
	return byte(t), data, err
}

// UnmarshalJSON accepts a number, a numeric string, null, or "".
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}

	s := string(bytes.TrimSpace(data))
	if s == "null" || s == `""` || s == "" {
		return nil
	}
	s = strings.Trim(s, `"`)
	a.set(s)
	return nil
}

// MarshalJSON emits a number, or null when no amount is set.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(a.Value, 'f', -1, 64)), nil
}

func (a *Amount) set(s string) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return
	}
	a.Value, a.Valid = f, true
}
