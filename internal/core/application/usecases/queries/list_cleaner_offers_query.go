package queries

import (
	"errors"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/pkg/guard"
)

var ErrListCleanerOffersQueryIsNotConstructed = errors.New(
	"ListCleanerOffersQuery must be created via NewListCleanerOffersQuery constructor",
)

// ListCleanerOffersQuery lists the offers a cleaner can still accept.
type ListCleanerOffersQuery struct {
	cleanerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListCleanerOffersQuery(cleanerID kernel.UUID) (ListCleanerOffersQuery, error) {
	if err := cleanerID.Validate(); err != nil {
		return ListCleanerOffersQuery{}, err
	}
	return ListCleanerOffersQuery{cleanerID: cleanerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCleanerOffersQuery) Validate() error {
	return q.guard.Validate(ErrListCleanerOffersQueryIsNotConstructed)
}

func (q ListCleanerOffersQuery) CleanerID() kernel.UUID { return q.cleanerID }

type ListCleanerOffersQueryResponse struct {
	OfferID         kernel.UUID
	JobID           kernel.UUID
	Type            offer.Type
	EarningsOffered int64
	RoomIDs         []kernel.UUID
	ExpiresAt       time.Time
	AppointmentDate time.Time
	CleanersNeeded  int
}
