package commands

import (
	"errors"
	"strings"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/pkg/errs"
	"multicleaner/internal/pkg/guard"
)

// Booking commands register the homes, appointments and contacts jobs are built from.

var (
	ErrCreateHomeCommandIsNotConstructed = errors.New(
		"CreateHomeCommand must be created via NewCreateHomeCommand constructor",
	)
	ErrUpdatePreferredCleanersCommandIsNotConstructed = errors.New(
		"UpdatePreferredCleanersCommand must be created via NewUpdatePreferredCleanersCommand constructor",
	)
	ErrCreateAppointmentCommandIsNotConstructed = errors.New(
		"CreateAppointmentCommand must be created via NewCreateAppointmentCommand constructor",
	)
	ErrUpsertContactCommandIsNotConstructed = errors.New(
		"UpsertContactCommand must be created via NewUpsertContactCommand constructor",
	)
)

type CreateHomeCommand struct {
	homeID  kernel.UUID
	ownerID kernel.UUID
	beds    int
	baths   float64
	sqft    int

	guard guard.ConstructorGuard
}

// NewCreateHomeCommand generates the home id. Size checks happen in the home model.
func NewCreateHomeCommand(ownerID kernel.UUID, beds int, baths float64, sqft int) (CreateHomeCommand, error) {
	if err := ownerID.Validate(); err != nil {
		return CreateHomeCommand{}, err
	}
	return CreateHomeCommand{
		homeID:  kernel.NewUUID(),
		ownerID: ownerID,
		beds:    beds,
		baths:   baths,
		sqft:    sqft,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateHomeCommand) Validate() error {
	return c.guard.Validate(ErrCreateHomeCommandIsNotConstructed)
}

func (c CreateHomeCommand) HomeID() kernel.UUID  { return c.homeID }
func (c CreateHomeCommand) OwnerID() kernel.UUID { return c.ownerID }
func (c CreateHomeCommand) Beds() int            { return c.beds }
func (c CreateHomeCommand) Baths() float64       { return c.baths }
func (c CreateHomeCommand) Sqft() int            { return c.sqft }

type UpdatePreferredCleanersCommand struct {
	homeID    kernel.UUID
	ownerID   kernel.UUID
	preferred []kernel.UUID
	primary   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewUpdatePreferredCleanersCommand(
	homeID, ownerID kernel.UUID,
	preferred []kernel.UUID,
	primary *kernel.UUID,
) (UpdatePreferredCleanersCommand, error) {
	setters := []error{homeID.Validate(), ownerID.Validate()}
	for _, id := range preferred {
		setters = append(setters, id.Validate())
	}
	if primary != nil {
		setters = append(setters, primary.Validate())
	}
	if err := errors.Join(setters...); err != nil {
		return UpdatePreferredCleanersCommand{}, err
	}
	return UpdatePreferredCleanersCommand{
		homeID:    homeID,
		ownerID:   ownerID,
		preferred: append([]kernel.UUID(nil), preferred...),
		primary:   primary,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePreferredCleanersCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePreferredCleanersCommandIsNotConstructed)
}

func (c UpdatePreferredCleanersCommand) HomeID() kernel.UUID      { return c.homeID }
func (c UpdatePreferredCleanersCommand) OwnerID() kernel.UUID     { return c.ownerID }
func (c UpdatePreferredCleanersCommand) Preferred() []kernel.UUID { return c.preferred }
func (c UpdatePreferredCleanersCommand) Primary() *kernel.UUID    { return c.primary }

type CreateAppointmentCommand struct {
	appointmentID kernel.UUID
	homeID        kernel.UUID
	homeownerID   kernel.UUID
	date          time.Time
	priceCents    int64

	guard guard.ConstructorGuard
}

// NewCreateAppointmentCommand generates the appointment id.
func NewCreateAppointmentCommand(
	homeID, homeownerID kernel.UUID,
	date time.Time,
	priceCents int64,
) (CreateAppointmentCommand, error) {
	setters := []error{homeID.Validate(), homeownerID.Validate()}
	if date.IsZero() {
		setters = append(setters, errs.NewValueIsRequiredError("date"))
	}
	if err := errors.Join(setters...); err != nil {
		return CreateAppointmentCommand{}, err
	}
	return CreateAppointmentCommand{
		appointmentID: kernel.NewUUID(),
		homeID:        homeID,
		homeownerID:   homeownerID,
		date:          date,
		priceCents:    priceCents,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateAppointmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAppointmentCommandIsNotConstructed)
}

func (c CreateAppointmentCommand) AppointmentID() kernel.UUID { return c.appointmentID }
func (c CreateAppointmentCommand) HomeID() kernel.UUID        { return c.homeID }
func (c CreateAppointmentCommand) HomeownerID() kernel.UUID   { return c.homeownerID }
func (c CreateAppointmentCommand) Date() time.Time            { return c.date }
func (c CreateAppointmentCommand) PriceCents() int64          { return c.priceCents }

// UpsertContactCommand records how to reach a user.
type UpsertContactCommand struct {
	userID    kernel.UUID
	name      string
	email     string
	pushToken string

	guard guard.ConstructorGuard
}

func NewUpsertContactCommand(userID kernel.UUID, name, email, pushToken string) (UpsertContactCommand, error) {
	setters := []error{userID.Validate()}
	if strings.TrimSpace(name) == "" {
		setters = append(setters, errs.NewValueIsRequiredError("name"))
	}
	if err := errors.Join(setters...); err != nil {
		return UpsertContactCommand{}, err
	}
	return UpsertContactCommand{
		userID:    userID,
		name:      strings.TrimSpace(name),
		email:     strings.TrimSpace(email),
		pushToken: pushToken,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpsertContactCommand) Validate() error {
	return c.guard.Validate(ErrUpsertContactCommandIsNotConstructed)
}

func (c UpsertContactCommand) UserID() kernel.UUID { return c.userID }
func (c UpsertContactCommand) Name() string        { return c.name }
func (c UpsertContactCommand) Email() string       { return c.email }
func (c UpsertContactCommand) PushToken() string   { return c.pushToken }
