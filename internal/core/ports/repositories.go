// Package ports defines the contracts between the orchestration core and its
// infrastructure: repositories, the unit of work, pricing, notification delivery,
// the user directory and metrics.
package ports

import (
	"context"
	"time"

	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/completion"
	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/joinrequest"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/core/domain/model/room"
)

// JobRepository persists MultiCleanerJob aggregates.
type JobRepository interface {
	Add(ctx context.Context, j *job.Job) error

	// Update writes the job only if its version is unchanged since it was read,
	// then advances the in-memory version. A lost race is a ConflictError.
	Update(ctx context.Context, j *job.Job) error

	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)
	GetByAppointment(ctx context.Context, appointmentID kernel.UUID) (*job.Job, error)

	// FindEdgeCaseCandidates returns partially filled 1-of-2 jobs with no decision requested yet.
	// The caller still checks the home size and the active completion count.
	FindEdgeCaseCandidates(ctx context.Context) ([]*job.Job, error)

	// FindExpiredEdgeCaseDecisions returns jobs whose decision is still pending past its deadline.
	FindExpiredEdgeCaseDecisions(ctx context.Context, now time.Time) ([]*job.Job, error)

	// FindUrgentFillCandidates returns unfilled active jobs whose appointment falls in
	// [now, until] and that have not had an urgent-fill escalation.
	FindUrgentFillCandidates(ctx context.Context, now, until time.Time) ([]*job.Job, error)

	// FindFinalWarningCandidates is FindUrgentFillCandidates for the final warning stamp.
	FindFinalWarningCandidates(ctx context.Context, now, until time.Time) ([]*job.Job, error)

	FindExpiredSoloOffers(ctx context.Context, now time.Time) ([]*job.Job, error)
	FindExpiredExtraWorkWindows(ctx context.Context, now time.Time) ([]*job.Job, error)
}

// RoomRepository persists room assignments. Cleaner ownership changes only
// through the conditional Claim and ReleaseCleaner statements.
type RoomRepository interface {
	AddAll(ctx context.Context, rooms []*room.Assignment) error

	// Update writes status, completion time and earnings share. It never changes the cleaner.
	Update(ctx context.Context, r *room.Assignment) error

	Get(ctx context.Context, id kernel.UUID) (*room.Assignment, error)
	ListByJob(ctx context.Context, jobID kernel.UUID) ([]*room.Assignment, error)

	// Claim assigns the given rooms of the job to the cleaner, touching only rows
	// that are still unassigned, and reports how many rows it claimed.
	Claim(ctx context.Context, jobID kernel.UUID, roomIDs []kernel.UUID, cleanerID kernel.UUID) (int, error)

	// ReleaseCleaner unassigns every unfinished room the cleaner holds on the job.
	ReleaseCleaner(ctx context.Context, jobID, cleanerID kernel.UUID) (int, error)
}

// CompletionRepository persists the per-cleaner history of a job. Rows are never deleted.
type CompletionRepository interface {
	Add(ctx context.Context, c *completion.Completion) error
	Update(ctx context.Context, c *completion.Completion) error

	// GetByJobAndCleaner returns an ObjectNotFoundError when the cleaner never held a slot.
	GetByJobAndCleaner(ctx context.Context, jobID, cleanerID kernel.UUID) (*completion.Completion, error)

	ListByJob(ctx context.Context, jobID kernel.UUID) ([]*completion.Completion, error)
	ListActiveByJob(ctx context.Context, jobID kernel.UUID) ([]*completion.Completion, error)

	// CountActive counts assigned, started and completed rows: the source of truth for cleanersConfirmed.
	CountActive(ctx context.Context, jobID kernel.UUID) (int, error)
}

// OfferRepository persists cleaner job offers.
type OfferRepository interface {
	// Add fails with a ConflictError when the cleaner already holds a live offer for the job.
	Add(ctx context.Context, o *offer.Offer) error

	// Update applies the offer's new status only if the stored status is still the one it was read with.
	// A lost race is a ConflictError.
	Update(ctx context.Context, o *offer.Offer) error

	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)
	HasLive(ctx context.Context, jobID, cleanerID kernel.UUID) (bool, error)
	ListPendingByJob(ctx context.Context, jobID kernel.UUID) ([]*offer.Offer, error)
	FindExpiredPending(ctx context.Context, now time.Time) ([]*offer.Offer, error)

	// FindPendingForFilledJobs returns pending offers whose job has reached filled.
	FindPendingForFilledJobs(ctx context.Context) ([]*offer.Offer, error)
}

// JoinRequestRepository persists approval-gate requests.
type JoinRequestRepository interface {
	// Add fails with a ConflictError when a pending request exists for the same job and cleaner.
	Add(ctx context.Context, r *joinrequest.Request) error

	// Update is guarded by the persisted status like OfferRepository.Update.
	Update(ctx context.Context, r *joinrequest.Request) error

	Get(ctx context.Context, id kernel.UUID) (*joinrequest.Request, error)
	HasPending(ctx context.Context, jobID, cleanerID kernel.UUID) (bool, error)
	ListPendingByJob(ctx context.Context, jobID kernel.UUID) ([]*joinrequest.Request, error)
	FindExpiredPending(ctx context.Context, now time.Time) ([]*joinrequest.Request, error)
}

type AppointmentRepository interface {
	Add(ctx context.Context, a *appointment.Appointment) error
	Update(ctx context.Context, a *appointment.Appointment) error
	Get(ctx context.Context, id kernel.UUID) (*appointment.Appointment, error)
}

type HomeRepository interface {
	Add(ctx context.Context, h *home.Home) error
	Update(ctx context.Context, h *home.Home) error
	Get(ctx context.Context, id kernel.UUID) (*home.Home, error)
}

// Contact is what the directory knows about a user for addressing notifications.
type Contact struct {
	ID        kernel.UUID
	Name      string
	Email     string
	PushToken string
}

// UserDirectory resolves user ids to contact details.
type UserDirectory interface {
	// Get returns an ObjectNotFoundError for unknown users.
	Get(ctx context.Context, id kernel.UUID) (Contact, error)
	Upsert(ctx context.Context, c Contact) error
}
