package queries

import (
	"context"
	"encoding/json"

	"multicleaner/internal/core/domain/model/job"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/offer"
	"multicleaner/internal/pkg/clock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListCleanerOffersQueryHandler struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewListCleanerOffersQueryHandler(db *gorm.DB, clk clock.Clock) ListCleanerOffersQueryHandler {
	return ListCleanerOffersQueryHandler{db: db, clock: clk}
}

// Handle returns pending offers that have not yet expired on jobs still taking
// cleaners, soonest expiry first. Offers the sweeper has not reached yet are
// filtered by time here.
func (h ListCleanerOffersQueryHandler) Handle(
	ctx context.Context,
	query ListCleanerOffersQuery,
) ([]ListCleanerOffersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	offers := make([]ListCleanerOffersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.job_id,
			o.offer_type,
			o.earnings_offered,
			o.rooms_offered,
			o.expires_at,
			a.date,
			j.total_cleaners_required - j.cleaners_confirmed
		FROM cleaner_job_offers o
		JOIN multi_cleaner_jobs j ON j.id = o.job_id
		JOIN appointments a ON a.id = j.appointment_id
		WHERE o.cleaner_id = ?
			AND o.status = ?
			AND o.expires_at > ?
			AND j.status IN ?
		ORDER BY o.expires_at
	`,
		query.CleanerID().Bytes(),
		string(offer.Pending),
		h.clock.Now(),
		[]string{string(job.Open), string(job.PartiallyFilled)},
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line ListCleanerOffersQueryResponse
		var id, jobID uuid.UUID
		var offerType string
		var roomsOffered *string

		err = rows.Scan(
			&id,
			&jobID,
			&offerType,
			&line.EarningsOffered,
			&roomsOffered,
			&line.ExpiresAt,
			&line.AppointmentDate,
			&line.CleanersNeeded,
		)
		if err != nil {
			return nil, err
		}

		if line.OfferID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if line.JobID, err = kernel.UUIDFromBytes(jobID[:]); err != nil {
			return nil, err
		}
		if line.RoomIDs, err = decodeRoomIDs(roomsOffered); err != nil {
			return nil, err
		}
		line.Type = offer.Type(offerType)
		line.ExpiresAt = line.ExpiresAt.UTC()
		line.AppointmentDate = line.AppointmentDate.UTC()
		offers = append(offers, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}

// decodeRoomIDs reads the json array the offer repository stores room ids in.
func decodeRoomIDs(raw *string) ([]kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return []kernel.UUID{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(*raw), &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		return []kernel.UUID{}, nil
	}
	return kernel.UUIDsFromStrings(ids)
}
