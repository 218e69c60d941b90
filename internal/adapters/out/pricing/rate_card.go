// Package pricing is the default PricingService: the cleaners' pool is the
// appointment price less the platform fee, shared in proportion to room effort.
package pricing

import (
	"context"
	"fmt"

	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/pkg/errs"
)

var _ ports.PricingService = (*RateCard)(nil)

type RateCard struct {
	platformFeePercent int
}

func NewRateCard(platformFeePercent int) (*RateCard, error) {
	if platformFeePercent < 0 || platformFeePercent >= 100 {
		return nil, errs.NewValueIsOutOfRangeError("platform fee percent", platformFeePercent, 0, 99)
	}
	return &RateCard{platformFeePercent: platformFeePercent}, nil
}

// CalculateTotalJobPrice is the cleaners' pool. It does not depend on the team
// size: adding cleaners splits the same pool further.
func (r *RateCard) CalculateTotalJobPrice(
	_ context.Context,
	h *home.Home,
	a *appointment.Appointment,
	cleanerCount int,
) (int64, error) {
	if h == nil || a == nil {
		return 0, errs.NewValueIsRequiredError("home and appointment")
	}
	if cleanerCount < 1 {
		return 0, errs.NewValueIsOutOfRangeError("cleaner count", cleanerCount, 1, "unbounded")
	}
	return r.pool(a.PriceCents()), nil
}

func (r *RateCard) CalculatePerCleanerEarnings(_ context.Context, totalCents int64, cleanerCount int) ([]int64, error) {
	if cleanerCount < 1 {
		return nil, errs.NewValueIsOutOfRangeError("cleaner count", cleanerCount, 1, "unbounded")
	}
	if totalCents < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%d is negative", totalCents))
	}
	weights := make([]int64, cleanerCount)
	for i := range weights {
		weights[i] = 1
	}
	return split(totalCents, weights), nil
}

// UpdateRoomEarningsShares sets every room's share by estimated minutes. The shares
// sum to totalCents exactly.
func (r *RateCard) UpdateRoomEarningsShares(_ context.Context, rooms []*room.Assignment, totalCents int64) error {
	if len(rooms) == 0 {
		return nil
	}
	weights := make([]int64, len(rooms))
	for i, a := range rooms {
		weights[i] = int64(a.EstimatedMinutes())
	}
	for i, share := range split(totalCents, weights) {
		if err := rooms[i].SetEarningsShare(share); err != nil {
			return err
		}
	}
	return nil
}

// CalculateSoloCompletionEarnings pays the whole pool to the one cleaner left.
func (r *RateCard) CalculateSoloCompletionEarnings(_ context.Context, a *appointment.Appointment) (int64, error) {
	if a == nil {
		return 0, errs.NewValueIsRequiredError("appointment")
	}
	return r.pool(a.PriceCents()), nil
}

func (r *RateCard) RecalculateEarningsAfterDropout(
	_ context.Context,
	before, after []*room.Assignment,
	survivors []kernel.UUID,
) ([]ports.CleanerEarnings, error) {
	out := make([]ports.CleanerEarnings, 0, len(survivors))
	for _, id := range survivors {
		was, _, _ := holdings(before, id)
		now, _, _ := holdings(after, id)
		out = append(out, ports.CleanerEarnings{
			CleanerID:          id,
			TotalEarningsCents: now,
			ExtraEarningsCents: max(now-was, 0),
		})
	}
	return out, nil
}

// GenerateEarningsBreakdown lists every cleaner holding rooms, in first-seen order.
func (r *RateCard) GenerateEarningsBreakdown(_ context.Context, rooms []*room.Assignment) ([]ports.EarningsLine, error) {
	var order []kernel.UUID
	seen := make(map[kernel.UUID]bool)
	for _, a := range rooms {
		id := a.CleanerID()
		if id == nil || seen[*id] {
			continue
		}
		seen[*id] = true
		order = append(order, *id)
	}

	lines := make([]ports.EarningsLine, 0, len(order))
	for _, id := range order {
		cents, minutes, done := holdings(rooms, id)
		count := 0
		for _, a := range rooms {
			if a.IsAssignedTo(id) {
				count++
			}
		}
		lines = append(lines, ports.EarningsLine{
			CleanerID:      id,
			RoomCount:      count,
			Minutes:        minutes,
			EarningsCents:  cents,
			CompletedRooms: done,
		})
	}
	return lines, nil
}

func (r *RateCard) pool(priceCents int64) int64 {
	return priceCents * int64(100-r.platformFeePercent) / 100
}

func holdings(rooms []*room.Assignment, cleanerID kernel.UUID) (cents int64, minutes, completed int) {
	for _, a := range rooms {
		if !a.IsAssignedTo(cleanerID) {
			continue
		}
		cents += a.EarningsShare()
		minutes += a.EstimatedMinutes()
		if a.IsCompleted() {
			completed++
		}
	}
	return cents, minutes, completed
}

// split divides total in proportion to weights using largest remainders, so the
// parts always add up to total. Zero weights everywhere split evenly.
func split(total int64, weights []int64) []int64 {
	parts := make([]int64, len(weights))
	if len(weights) == 0 {
		return parts
	}

	var sum int64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		for i := range weights {
			weights[i] = 1
		}
		sum = int64(len(weights))
	}

	remainders := make([]int64, len(weights))
	var given int64
	for i, w := range weights {
		parts[i] = total * w / sum
		remainders[i] = total * w % sum
		given += parts[i]
	}
	for left := total - given; left > 0; left-- {
		best := 0
		for i := range remainders {
			if remainders[i] > remainders[best] {
				best = i
			}
		}
		parts[best]++
		remainders[best] = -1
	}
	return parts
}
