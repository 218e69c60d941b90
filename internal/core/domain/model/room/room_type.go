package room

import (
	"fmt"
	"math"

	"multicleaner/internal/pkg/errs"
)

// Type is the kind of room a unit of work covers.
type Type string

const (
	Bedroom    Type = "bedroom"
	Bathroom   Type = "bathroom"
	Kitchen    Type = "kitchen"
	LivingRoom Type = "living_room"
	DiningRoom Type = "dining_room"
	Other      Type = "other"
)

var baseMinutes = map[Type]int{
	Bedroom:    30,
	Bathroom:   25,
	Kitchen:    40,
	LivingRoom: 25,
	DiningRoom: 20,
	Other:      20,
}

// BaseMinutes is the unadjusted cleaning effort for a room of this type.
func (t Type) BaseMinutes() int {
	if m, ok := baseMinutes[t]; ok {
		return m
	}
	return baseMinutes[Other]
}

func (t Type) Validate() error {
	if _, ok := baseMinutes[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("room type", fmt.Errorf("%q is not a valid room type", string(t)))
	}
	return nil
}

// HalfBathMinutes is the effort of a half bath: half a bathroom, rounded.
func HalfBathMinutes() int {
	return int(math.Round(float64(Bathroom.BaseMinutes()) * 0.5))
}
