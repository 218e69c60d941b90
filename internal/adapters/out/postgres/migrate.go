package postgres

import (
	"multicleaner/internal/adapters/out/postgres/appointmentrepo"
	"multicleaner/internal/adapters/out/postgres/completionrepo"
	"multicleaner/internal/adapters/out/postgres/homerepo"
	"multicleaner/internal/adapters/out/postgres/jobrepo"
	"multicleaner/internal/adapters/out/postgres/joinrequestrepo"
	"multicleaner/internal/adapters/out/postgres/notificationrepo"
	"multicleaner/internal/adapters/out/postgres/offerrepo"
	"multicleaner/internal/adapters/out/postgres/roomrepo"
	"multicleaner/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the engine uses, including the
// partial unique indexes on live offers and pending join requests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&homerepo.HomeDTO{},
		&appointmentrepo.AppointmentDTO{},
		&jobrepo.JobDTO{},
		&roomrepo.RoomDTO{},
		&completionrepo.CompletionDTO{},
		&offerrepo.OfferDTO{},
		&joinrequestrepo.RequestDTO{},
		&userrepo.ContactDTO{},
		&notificationrepo.NotificationDTO{},
	)
}

// Tables lists the engine's tables in an order safe for TRUNCATE in tests.
func Tables() []string {
	return []string{
		"notifications", "contacts", "cleaner_join_requests", "cleaner_job_offers",
		"cleaner_job_completions", "room_assignments", "multi_cleaner_jobs", "appointments", "homes",
	}
}
