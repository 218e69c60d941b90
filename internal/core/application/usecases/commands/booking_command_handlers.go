package commands

import (
	"context"

	"multicleaner/internal/core/domain/model/appointment"
	"multicleaner/internal/core/domain/model/home"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/pkg/errs"
)

const MsgNotHomeOwner = "home belongs to another homeowner"

type CreateHomeCommandHandler struct {
	engine *Engine
}

func NewCreateHomeCommandHandler(engine *Engine) CreateHomeCommandHandler {
	return CreateHomeCommandHandler{
		engine: engine,
	}
}

func (h CreateHomeCommandHandler) Handle(ctx context.Context, cmd CreateHomeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hm, err := home.NewHome(cmd.HomeID(), cmd.OwnerID(), cmd.Beds(), cmd.Baths(), cmd.Sqft())
	if err != nil {
		return err
	}
	return h.engine.inTx(ctx, func(t *tx) error {
		return t.HomeRepository().Add(ctx, hm)
	})
}

type UpdatePreferredCleanersCommandHandler struct {
	engine *Engine
}

func NewUpdatePreferredCleanersCommandHandler(engine *Engine) UpdatePreferredCleanersCommandHandler {
	return UpdatePreferredCleanersCommandHandler{
		engine: engine,
	}
}

// Handle replaces the home's preferred cleaners. Cleaners on the list join future
// jobs of the home without waiting for approval.
func (h UpdatePreferredCleanersCommandHandler) Handle(ctx context.Context, cmd UpdatePreferredCleanersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		hm, err := t.HomeRepository().Get(ctx, cmd.HomeID())
		if err != nil {
			return err
		}
		if !hm.OwnerID().IsEqual(cmd.OwnerID()) {
			return errs.NewForbiddenError(MsgNotHomeOwner, cmd.OwnerID().String())
		}
		if err = hm.SetPreferredCleaners(cmd.Preferred(), cmd.Primary()); err != nil {
			return err
		}
		return t.HomeRepository().Update(ctx, hm)
	})
}

type CreateAppointmentCommandHandler struct {
	engine *Engine
}

func NewCreateAppointmentCommandHandler(engine *Engine) CreateAppointmentCommandHandler {
	return CreateAppointmentCommandHandler{
		engine: engine,
	}
}

// Handle books a visit to a home the homeowner owns.
func (h CreateAppointmentCommandHandler) Handle(ctx context.Context, cmd CreateAppointmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		hm, err := t.HomeRepository().Get(ctx, cmd.HomeID())
		if err != nil {
			return err
		}
		if !hm.OwnerID().IsEqual(cmd.HomeownerID()) {
			return errs.NewForbiddenError(MsgNotHomeOwner, cmd.HomeownerID().String())
		}

		a, err := appointment.NewAppointment(cmd.AppointmentID(), hm.ID(), cmd.HomeownerID(), cmd.Date(), cmd.PriceCents())
		if err != nil {
			return err
		}
		return t.AppointmentRepository().Add(ctx, a)
	})
}

type UpsertContactCommandHandler struct {
	engine *Engine
}

func NewUpsertContactCommandHandler(engine *Engine) UpsertContactCommandHandler {
	return UpsertContactCommandHandler{
		engine: engine,
	}
}

func (h UpsertContactCommandHandler) Handle(ctx context.Context, cmd UpsertContactCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.inTx(ctx, func(t *tx) error {
		return t.UserDirectory().Upsert(ctx, ports.Contact{
			ID:        cmd.UserID(),
			Name:      cmd.Name(),
			Email:     cmd.Email(),
			PushToken: cmd.PushToken(),
		})
	})
}
