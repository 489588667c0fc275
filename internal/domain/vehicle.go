package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type VehicleClass string

const (
	VehicleMoto  VehicleClass = "moto"
	VehicleCar   VehicleClass = "car"
	VehicleRV    VehicleClass = "rv"
	VehicleBus   VehicleClass = "bus"
	VehicleTruck VehicleClass = "truck"
)

// Per-distance multiplier for one vehicle class.
type VehicleRate struct {
	Class      VehicleClass
	Multiplier float64
}

// VehicleRateTable is an ordered set of vehicle rates. The order fixes the
// column order of tolled output.
type VehicleRateTable struct {
	rates []VehicleRate
}

func NewVehicleRateTable(rates ...VehicleRate) (VehicleRateTable, error) {
	t := VehicleRateTable{rates: append([]VehicleRate(nil), rates...)}
	if err := t.Validate(); err != nil {
		return VehicleRateTable{}, err
	}
	return t, nil
}

// DefaultVehicleRates returns moto 0.8, car 1.2, rv 1.5, bus 2.2, truck 3.6.
func DefaultVehicleRates() VehicleRateTable {
	return VehicleRateTable{rates: []VehicleRate{
		{Class: VehicleMoto, Multiplier: 0.8},
		{Class: VehicleCar, Multiplier: 1.2},
		{Class: VehicleRV, Multiplier: 1.5},
		{Class: VehicleBus, Multiplier: 2.2},
		{Class: VehicleTruck, Multiplier: 3.6},
	}}
}

// ParseVehicleRates parses "class:multiplier" pairs separated by commas,
// e.g. "moto:0.8,car:1.2".
func ParseVehicleRates(s string) (VehicleRateTable, error) {
	var rates []VehicleRate
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		class, value, ok := strings.Cut(part, ":")
		if !ok {
			return VehicleRateTable{}, fmt.Errorf("parse vehicle rates: %q is not class:multiplier: %w", part, ErrInvalidInput)
		}
		mult, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return VehicleRateTable{}, fmt.Errorf("parse vehicle rates: %q: %w", part, ErrInvalidInput)
		}
		rates = append(rates, VehicleRate{
			Class:      VehicleClass(strings.ToLower(strings.TrimSpace(class))),
			Multiplier: mult,
		})
	}
	return NewVehicleRateTable(rates...)
}

// Validate rejects empty tables, duplicate or blank classes and
// non-positive multipliers.
func (t VehicleRateTable) Validate() error {
	if len(t.rates) == 0 {
		return fmt.Errorf("vehicle rate table: no rates: %w", ErrInvalidInput)
	}
	seen := make(map[VehicleClass]struct{}, len(t.rates))
	for _, r := range t.rates {
		if strings.TrimSpace(string(r.Class)) == "" {
			return fmt.Errorf("vehicle rate table: blank class: %w", ErrInvalidInput)
		}
		if _, dup := seen[r.Class]; dup {
			return fmt.Errorf("vehicle rate table: duplicate class %q: %w", r.Class, ErrInvalidInput)
		}
		seen[r.Class] = struct{}{}
		if math.IsNaN(r.Multiplier) || math.IsInf(r.Multiplier, 0) || r.Multiplier <= 0 {
			return fmt.Errorf("vehicle rate table: class %q multiplier %v must be positive: %w", r.Class, r.Multiplier, ErrInvalidInput)
		}
	}
	return nil
}

// Rates returns the table entries in order.
func (t VehicleRateTable) Rates() []VehicleRate { return append([]VehicleRate(nil), t.rates...) }

// Classes returns the vehicle classes in table order.
func (t VehicleRateTable) Classes() []VehicleClass {
	out := make([]VehicleClass, len(t.rates))
	for i, r := range t.rates {
		out[i] = r.Class
	}
	return out
}

// Multiplier looks up one class.
func (t VehicleRateTable) Multiplier(class VehicleClass) (float64, bool) {
	for _, r := range t.rates {
		if r.Class == class {
			return r.Multiplier, true
		}
	}
	return 0, false
}
