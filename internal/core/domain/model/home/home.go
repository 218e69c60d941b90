package home

import (
	"errors"
	"fmt"
	"math"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
)

var ErrHomeIsNotConstructed = errors.New("Home must be created via NewHome or RestoreHome constructor")

const (
	maxBeds  = 20
	maxBaths = 20
)

// Home is the aggregate describing a homeowner's property.
//
// Invariants:
//   - beds is in [0, 20]
//   - baths is in [0, 20] and is a whole or half number (2, 2.5, ...)
//   - sqft is zero (unknown) or positive
//   - the primary preferred cleaner, when set, is also on the preferred list
type Home struct {
	id                 kernel.UUID
	ownerID            kernel.UUID
	beds               int
	baths              float64
	sqft               int
	preferredCleaners  []kernel.UUID
	primaryPreferredID *kernel.UUID
	isConstructed      bool
}

// NewHome creates a home with no preferred cleaners.
func NewHome(id, ownerID kernel.UUID, beds int, baths float64, sqft int) (*Home, error) {
	h := &Home{isConstructed: true}
	if err := errors.Join(
		h.setID(id),
		h.setOwnerID(ownerID),
		h.setBeds(beds),
		h.setBaths(baths),
		h.setSqft(sqft),
	); err != nil {
		return nil, err
	}
	return h, nil
}

// RestoreHome rebuilds a home from persistence, including its preferred cleaners.
func RestoreHome(
	id, ownerID kernel.UUID,
	beds int,
	baths float64,
	sqft int,
	preferred []kernel.UUID,
	primaryPreferredID *kernel.UUID,
) (*Home, error) {
	h, err := NewHome(id, ownerID, beds, baths, sqft)
	if err != nil {
		return nil, err
	}
	if err = h.SetPreferredCleaners(preferred, primaryPreferredID); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Home) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHomeIsNotConstructed
	}
	return nil
}

func (h *Home) ID() kernel.UUID      { return h.id }
func (h *Home) OwnerID() kernel.UUID { return h.ownerID }
func (h *Home) Beds() int            { return h.beds }
func (h *Home) Baths() float64       { return h.baths }
func (h *Home) Sqft() int            { return h.sqft }

// FullBaths is the whole part of the bath count.
func (h *Home) FullBaths() int {
	return int(math.Floor(h.baths))
}

// HasHalfBath reports whether the fractional part of baths is at least one half.
func (h *Home) HasHalfBath() bool {
	return h.baths-math.Floor(h.baths) >= 0.5
}

// PreferredCleaners returns a copy of the preferred cleaner list.
func (h *Home) PreferredCleaners() []kernel.UUID {
	out := make([]kernel.UUID, len(h.preferredCleaners))
	copy(out, h.preferredCleaners)
	return out
}

func (h *Home) PrimaryPreferredCleaner() *kernel.UUID {
	if h.primaryPreferredID == nil {
		return nil
	}
	id := *h.primaryPreferredID
	return &id
}

// IsPreferred reports whether the cleaner is on the preferred list or is the primary preferred cleaner.
func (h *Home) IsPreferred(cleanerID kernel.UUID) bool {
	if h.primaryPreferredID != nil && h.primaryPreferredID.IsEqual(cleanerID) {
		return true
	}
	return kernel.ContainsUUID(h.preferredCleaners, cleanerID)
}

// SetPreferredCleaners replaces the preferred list. The primary cleaner is added to the list when missing.
func (h *Home) SetPreferredCleaners(preferred []kernel.UUID, primary *kernel.UUID) error {
	list := make([]kernel.UUID, 0, len(preferred)+1)
	for _, id := range preferred {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("preferred cleaner", err)
		}
		if !kernel.ContainsUUID(list, id) {
			list = append(list, id)
		}
	}

	var primaryCopy *kernel.UUID
	if primary != nil {
		if err := primary.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("primary preferred cleaner", err)
		}
		id := *primary
		primaryCopy = &id
		if !kernel.ContainsUUID(list, id) {
			list = append(list, id)
		}
	}

	h.preferredCleaners = list
	h.primaryPreferredID = primaryCopy
	return nil
}

func (h *Home) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *Home) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	h.ownerID = id
	return nil
}

func (h *Home) setBeds(beds int) error {
	if beds < 0 || beds > maxBeds {
		return errs.NewValueIsOutOfRangeError("beds", beds, 0, maxBeds)
	}
	h.beds = beds
	return nil
}

func (h *Home) setBaths(baths float64) error {
	if baths < 0 || baths > maxBaths {
		return errs.NewValueIsOutOfRangeError("baths", baths, 0, maxBaths)
	}
	if baths*2 != math.Trunc(baths*2) {
		return errs.NewValueIsInvalidErrorWithCause("baths", fmt.Errorf("%v is not a whole or half number", baths))
	}
	h.baths = baths
	return nil
}

func (h *Home) setSqft(sqft int) error {
	if sqft < 0 {
		return errs.NewValueIsOutOfRangeError("sqft", sqft, 0, math.MaxInt32)
	}
	h.sqft = sqft
	return nil
}
