package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// UnitKilogram is the base unit for coffee quantities
const UnitKilogram = "kg"

// Quantity is a value object representing an order quantity in kilograms.
// Fractional quantities are allowed for beans sold by weight.
// It is immutable - all operations return new Quantity instances
type Quantity struct {
	value decimal.Decimal
	unit  string
}

// NewQuantity creates a new Quantity with the specified value and unit
func NewQuantity(value decimal.Decimal, unit string) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, errors.New("quantity cannot be negative")
	}
	if unit == "" {
		return Quantity{}, errors.New("unit cannot be empty")
	}
	return Quantity{
		value: value,
		unit:  unit,
	}, nil
}

// NewKilograms creates a Quantity in kilograms
func NewKilograms(value decimal.Decimal) (Quantity, error) {
	return NewQuantity(value, UnitKilogram)
}

// NewKilogramsFromFloat creates a Quantity in kilograms from a float64
func NewKilogramsFromFloat(value float64) (Quantity, error) {
	return NewQuantity(decimal.NewFromFloat(value), UnitKilogram)
}

// MustKilograms creates a Quantity in kilograms and panics on error
func MustKilograms(value decimal.Decimal) Quantity {
	q, err := NewKilograms(value)
	if err != nil {
		panic(err)
	}
	return q
}

// ZeroQuantity returns a zero quantity with the specified unit
func ZeroQuantity(unit string) Quantity {
	return Quantity{value: decimal.Zero, unit: unit}
}

// Amount returns the decimal value
func (q Quantity) Amount() decimal.Decimal {
	return q.value
}

// Unit returns the unit of measurement
func (q Quantity) Unit() string {
	return q.unit
}

// IsZero returns true if the quantity is zero
func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// IsPositive returns true if the quantity is positive
func (q Quantity) IsPositive() bool {
	return q.value.IsPositive()
}

// Float64 returns the quantity as a float64 (may lose precision)
func (q Quantity) Float64() float64 {
	f, _ := q.value.Float64()
	return f
}

// Add returns a new Quantity with the sum of both quantities
// Returns error if units don't match
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if q.unit != other.unit {
		return Quantity{}, fmt.Errorf("cannot add quantities with different units: %s and %s", q.unit, other.unit)
	}
	return Quantity{
		value: q.value.Add(other.value),
		unit:  q.unit,
	}, nil
}

// MustAdd adds two quantities, panics if units don't match
func (q Quantity) MustAdd(other Quantity) Quantity {
	result, err := q.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// ClampMin returns this quantity, or the floor when the value is below it.
// Used at input boundaries where sub-minimum quantities are coerced, not rejected.
func (q Quantity) ClampMin(floor decimal.Decimal) Quantity {
	if q.value.LessThan(floor) {
		return Quantity{value: floor, unit: q.unit}
	}
	return q
}

// Equals returns true if both quantities are equal (same value and unit)
func (q Quantity) Equals(other Quantity) bool {
	return q.unit == other.unit && q.value.Equal(other.value)
}

// LessThan returns true if this quantity is less than the other
func (q Quantity) LessThan(other Quantity) (bool, error) {
	if q.unit != other.unit {
		return false, fmt.Errorf("cannot compare quantities with different units: %s and %s", q.unit, other.unit)
	}
	return q.value.LessThan(other.value), nil
}

// String returns a string representation of the Quantity
func (q Quantity) String() string {
	if q.unit == "" {
		return q.value.String()
	}
	return fmt.Sprintf("%s %s", q.value.String(), q.unit)
}

// MarshalJSON implements json.Marshaler
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value string `json:"value"`
		Unit  string `json:"unit"`
	}{
		Value: q.value.String(),
		Unit:  q.unit,
	})
}

// UnmarshalJSON implements json.Unmarshaler and preserves the non-negative invariant
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var v struct {
		Value string `json:"value"`
		Unit  string `json:"unit"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	value, err := decimal.NewFromString(v.Value)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}
	if value.IsNegative() {
		return errors.New("quantity cannot be negative")
	}
	q.value = value
	q.unit = v.Unit
	return nil
}

// Value implements driver.Valuer for database storage
func (q Quantity) Value() (driver.Value, error) {
	return q.value.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
// Only the numeric value survives; the unit is fixed per column.
func (q *Quantity) Scan(value any) error {
	if value == nil {
		q.value = decimal.Zero
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Quantity", value)
	}

	val, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	q.value = val
	return nil
}
