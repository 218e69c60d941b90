package queries

import (
	"context"
	"database/sql"
	"errors"

	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/policy"
	"multicleaner/internal/core/domain/model/room"
	"multicleaner/internal/core/domain/services"
	"multicleaner/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckHomeQueryHandler struct {
	db             *gorm.DB
	classifier     services.HomeClassifier
	splitter       services.RoomSplitter
	maxSoloMinutes int
}

func NewCheckHomeQueryHandler(db *gorm.DB, settings policy.Settings) CheckHomeQueryHandler {
	return CheckHomeQueryHandler{
		db:             db,
		classifier:     services.NewHomeClassifier(settings.LargeHomeBedsThreshold, settings.LargeHomeBathsThreshold),
		splitter:       services.NewRoomSplitter(),
		maxSoloMinutes: settings.MaxSoloMinutes,
	}
}

// Handle loads the home's size and runs it through the classifier and the room splitter.
// Returns ErrObjectNotFound when the home does not exist.
func (h CheckHomeQueryHandler) Handle(ctx context.Context, query CheckHomeQuery) (CheckHomeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckHomeQueryResponse{}, err
	}

	var (
		ownerID uuid.UUID
		beds    int
		baths   float64
		sqft    int
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			owner_id,
			beds,
			baths,
			sqft
		FROM homes
		WHERE id = ?
	`, query.HomeID().Bytes()).Row().Scan(&ownerID, &beds, &baths, &sqft)
	if errors.Is(err, sql.ErrNoRows) {
		return CheckHomeQueryResponse{}, errs.NewObjectNotFoundError("home", query.HomeID().String())
	}
	if err != nil {
		return CheckHomeQueryResponse{}, err
	}

	owner, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return CheckHomeQueryResponse{}, err
	}
	hm, err := home.NewHome(query.HomeID(), owner, beds, baths, sqft)
	if err != nil {
		return CheckHomeQueryResponse{}, err
	}

	cl := h.classifier.ClassifyHome(hm)
	units := h.splitter.GenerateRoomList(hm)
	minutes := room.TotalMinutes(units)

	return CheckHomeQueryResponse{
		HomeID:                 hm.ID(),
		Beds:                   beds,
		Baths:                  baths,
		IsLargeHome:            cl.IsLargeHome,
		IsEdgeLargeHome:        cl.IsEdgeLargeHome,
		IsSoloAllowed:          cl.IsSoloAllowed,
		IsMultiCleanerRequired: cl.IsMultiCleanerRequired,
		TotalMinutes:           minutes,
		RecommendedCleaners:    h.classifier.RecommendedCleaners(cl, minutes, h.maxSoloMinutes),
		Rooms:                  units,
	}, nil
}
