// Package postgres provides the GORM-based Unit of Work that groups the
// repositories of one engine operation into a single transaction.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.JobRepository().Update(ctx, j); err != nil {
//	    return err
//	}
//	if _, err := uow.RoomRepository().Claim(ctx, j.ID(), roomIDs, cleanerID); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns at most one transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Cross-request races on a job are settled by conditional updates in the
//     repositories, not by locks held here
package postgres

import (
	"context"

	"multicleaner/internal/adapters/out/postgres/appointmentrepo"
	"multicleaner/internal/adapters/out/postgres/completionrepo"
	"multicleaner/internal/adapters/out/postgres/homerepo"
	"multicleaner/internal/adapters/out/postgres/jobrepo"
	"multicleaner/internal/adapters/out/postgres/joinrequestrepo"
	"multicleaner/internal/adapters/out/postgres/offerrepo"
	"multicleaner/internal/adapters/out/postgres/roomrepo"
	"multicleaner/internal/adapters/out/postgres/userrepo"
	"multicleaner/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work instance.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the engine's repositories.
// Repositories obtained before Begin or after Commit/Rollback run on the plain connection.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is open, which
// makes the deferred rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	return jobrepo.NewGormJobRepository(uow.conn())
}

func (uow *GormUnitOfWork) RoomRepository() ports.RoomRepository {
	return roomrepo.NewGormRoomRepository(uow.conn())
}

func (uow *GormUnitOfWork) CompletionRepository() ports.CompletionRepository {
	return completionrepo.NewGormCompletionRepository(uow.conn())
}

func (uow *GormUnitOfWork) OfferRepository() ports.OfferRepository {
	return offerrepo.NewGormOfferRepository(uow.conn())
}

func (uow *GormUnitOfWork) JoinRequestRepository() ports.JoinRequestRepository {
	return joinrequestrepo.NewGormJoinRequestRepository(uow.conn())
}

func (uow *GormUnitOfWork) AppointmentRepository() ports.AppointmentRepository {
	return appointmentrepo.NewGormAppointmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) HomeRepository() ports.HomeRepository {
	return homerepo.NewGormHomeRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserDirectory() ports.UserDirectory {
	return userrepo.NewGormUserDirectory(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
