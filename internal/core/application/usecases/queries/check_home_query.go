// Package queries contains read operations over the orchestration state.
// Queries bypass the aggregates and read rows straight through gorm, returning
// flat read models shaped for the HTTP layer.
package queries

import (
	"errors"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/pkg/guard"
)

var ErrCheckHomeQueryIsNotConstructed = errors.New(
	"CheckHomeQuery must be created via NewCheckHomeQuery constructor",
)

// CheckHomeQuery asks how many cleaners a home needs before anything is booked.
//
// Example:
//
//	query, err := NewCheckHomeQuery(homeID)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, query)
//	if result.IsMultiCleanerRequired {
//	    fmt.Printf("needs %d cleaners\n", result.RecommendedCleaners)
//	}
type CheckHomeQuery struct {
	homeID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCheckHomeQuery(homeID kernel.UUID) (CheckHomeQuery, error) {
	if err := homeID.Validate(); err != nil {
		return CheckHomeQuery{}, err
	}
	return CheckHomeQuery{homeID: homeID, guard: guard.NewConstructorGuard()}, nil
}

func (q CheckHomeQuery) Validate() error {
	return q.guard.Validate(ErrCheckHomeQueryIsNotConstructed)
}

func (q CheckHomeQuery) HomeID() kernel.UUID { return q.homeID }

// CheckHomeQueryResponse is the classification of a home together with the
// room list the splitter would generate for it.
type CheckHomeQueryResponse struct {
	HomeID                 kernel.UUID
	Beds                   int
	Baths                  float64
	IsLargeHome            bool
	IsEdgeLargeHome        bool
	IsSoloAllowed          bool
	IsMultiCleanerRequired bool
	TotalMinutes           int
	RecommendedCleaners    int
	Rooms                  []room.Unit
}
