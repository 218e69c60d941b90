package ports

import (
	"context"

	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/room"
)

// CleanerEarnings is a survivor's pay after a dropout; ExtraEarningsCents is the increase.
type CleanerEarnings struct {
	CleanerID          kernel.UUID
	TotalEarningsCents int64
	ExtraEarningsCents int64
}

// EarningsLine is one cleaner's row in an earnings breakdown.
type EarningsLine struct {
	CleanerID      kernel.UUID
	RoomCount      int
	Minutes        int
	EarningsCents  int64
	CompletedRooms int
}

// PricingService turns homes and appointments into money. All amounts are in cents.
type PricingService interface {
	// CalculateTotalJobPrice is the pool paid out to all cleaners of the job.
	CalculateTotalJobPrice(ctx context.Context, h *home.Home, a *appointment.Appointment, cleanerCount int) (int64, error)

	// CalculatePerCleanerEarnings splits total into cleanerCount shares that sum to total.
	CalculatePerCleanerEarnings(ctx context.Context, totalCents int64, cleanerCount int) ([]int64, error)

	// UpdateRoomEarningsShares sets each room's share of total, proportional to estimated minutes.
	UpdateRoomEarningsShares(ctx context.Context, rooms []*room.Assignment, totalCents int64) error

	// CalculateSoloCompletionEarnings is the full-job pay for one cleaner finishing alone.
	CalculateSoloCompletionEarnings(ctx context.Context, a *appointment.Appointment) (int64, error)

	// RecalculateEarningsAfterDropout prices each survivor's rooms after a rebalance.
	// before and after are the job's rooms on either side of the rebalance.
	RecalculateEarningsAfterDropout(
		ctx context.Context,
		before, after []*room.Assignment,
		survivors []kernel.UUID,
	) ([]CleanerEarnings, error)

	GenerateEarningsBreakdown(ctx context.Context, rooms []*room.Assignment) ([]EarningsLine, error)
}
