// Package commands contains the operations that change job state: slot fills and
// releases, the offer protocol, the approval gate, dropout handling, edge-case
// decisions and the sweeps invoked by the scheduler.
//
// Every handler follows the same shape: validate the command, open a unit of work,
// mutate aggregates, commit, and only then hand the collected notices to the
// notification gateway.
package commands

import (
	"context"

	"multicleaner/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	RoomRepoFactory interface {
		RoomRepository() ports.RoomRepository
	}

	CompletionRepoFactory interface {
		CompletionRepository() ports.CompletionRepository
	}

	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	JoinRequestRepoFactory interface {
		JoinRequestRepository() ports.JoinRequestRepository
	}

	AppointmentRepoFactory interface {
		AppointmentRepository() ports.AppointmentRepository
	}

	HomeRepoFactory interface {
		HomeRepository() ports.HomeRepository
	}

	UserDirectoryFactory interface {
		UserDirectory() ports.UserDirectory
	}

	// UoW spans every aggregate a job operation can touch. A fill, for example,
	// claims rooms, writes a completion, updates the job and the appointment, and
	// withdraws the offers of a job that just became filled, all in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   j, err := uow.JobRepository().Get(ctx, jobID)
	//   n, err := uow.RoomRepository().Claim(ctx, jobID, roomIDs, cleanerID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		JobRepoFactory
		RoomRepoFactory
		CompletionRepoFactory
		OfferRepoFactory
		JoinRequestRepoFactory
		AppointmentRepoFactory
		HomeRepoFactory
		UserDirectoryFactory
	}

	// UoWFactory creates a fresh unit of work per command or per sweep item.
	UoWFactory interface {
		Create() UoW
	}
)

// FuncUoWFactory adapts a plain constructor, such as a persistence adapter's Create, to UoWFactory.
type FuncUoWFactory func() UoW

func (f FuncUoWFactory) Create() UoW { return f() }
