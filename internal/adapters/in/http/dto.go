package http

import (
	"time"

	"multicleaner/internal/core/domain/model/kernel"
)

// Error is the body of every non-2xx response. Decision is set when a homeowner
// response is refused because the edge-case decision was already made.
type Error struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Decision string `json:"decision,omitempty"`
}

type Created struct {
	ID kernel.UUID `json:"id"`
}

type NewHome struct {
	Beds  int     `json:"beds"  validate:"gte=0,lte=20"`
	Baths float64 `json:"baths" validate:"gte=0,lte=20"`
	Sqft  int     `json:"sqft"  validate:"gte=0"`
}

type PreferredCleaners struct {
	CleanerIDs       []string `json:"cleanerIds"       validate:"dive,uuid"`
	PrimaryCleanerID string   `json:"primaryCleanerId" validate:"omitempty,uuid"`
}

type NewAppointment struct {
	HomeID     string    `json:"homeId"     validate:"required,uuid"`
	Date       time.Time `json:"date"       validate:"required"`
	PriceCents int64     `json:"priceCents" validate:"gt=0"`
}

type Contact struct {
	Name      string `json:"name"      validate:"required,max=255"`
	Email     string `json:"email"     validate:"omitempty,email"`
	PushToken string `json:"pushToken"`
}

type NewJob struct {
	AppointmentID    string `json:"appointmentId"    validate:"required,uuid"`
	CleanerCount     int    `json:"cleanerCount"     validate:"gte=0"`
	PrimaryCleanerID string `json:"primaryCleanerId" validate:"omitempty,uuid"`
}

type RoomSelection struct {
	RoomIDs []string `json:"roomIds" validate:"dive,uuid"`
}

type Reason struct {
	Reason string `json:"reason" validate:"max=1000"`
}

type RoomCompletion struct {
	HasRequiredPhotos bool `json:"hasRequiredPhotos"`
}

type NewOffer struct {
	CleanerID       string   `json:"cleanerId"       validate:"required,uuid"`
	Type            string   `json:"type"            validate:"required,oneof=primary_invite market_open urgent_fill"`
	EarningsOffered int64    `json:"earningsOffered" validate:"gte=0"`
	RoomIDs         []string `json:"roomIds"         validate:"dive,uuid"`
}

type HomeownerResponse struct {
	Response string     `json:"response" validate:"required"`
	Date     *time.Time `json:"date"`
	Reason   string     `json:"reason"   validate:"max=1000"`
}

type Decision struct {
	Decision string `json:"decision"`
}

type JoinResult struct {
	Outcome   string       `json:"outcome"`
	RequestID *kernel.UUID `json:"requestId,omitempty"`
}

type RoomCompletionResult struct {
	CleanerCompleted bool `json:"cleanerCompleted"`
	JobCompleted     bool `json:"jobCompleted"`
}

type DropoutOutcome struct {
	RemainingCleaners       int  `json:"remainingCleaners"`
	Shortfall               int  `json:"shortfall"`
	CanProceedSolo          bool `json:"canProceedSolo"`
	CanProceedWithRebalance bool `json:"canProceedWithRebalance"`
	RequiresReschedule      bool `json:"requiresReschedule"`
}

type Room struct {
	Type             string `json:"type"`
	Number           int    `json:"number"`
	Label            string `json:"label"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

type HomeCheck struct {
	HomeID                 kernel.UUID `json:"homeId"`
	IsLargeHome            bool        `json:"isLargeHome"`
	IsEdgeLargeHome        bool        `json:"isEdgeLargeHome"`
	IsSoloAllowed          bool        `json:"isSoloAllowed"`
	IsMultiCleanerRequired bool        `json:"isMultiCleanerRequired"`
	TotalMinutes           int         `json:"totalMinutes"`
	RecommendedCleaners    int         `json:"recommendedCleaners"`
	Rooms                  []Room      `json:"rooms"`
}

type JobStatusCleaner struct {
	CleanerID      kernel.UUID `json:"cleanerId"`
	Status         string      `json:"status"`
	AssignedRooms  int         `json:"assignedRooms"`
	CompletedRooms int         `json:"completedRooms"`
}

type JobStatus struct {
	JobID                     kernel.UUID        `json:"jobId"`
	AppointmentID             kernel.UUID        `json:"appointmentId"`
	AppointmentDate           time.Time          `json:"appointmentDate"`
	Status                    string             `json:"status"`
	TotalCleanersRequired     int                `json:"totalCleanersRequired"`
	CleanersConfirmed         int                `json:"cleanersConfirmed"`
	EdgeCaseDecisionRequired  bool               `json:"edgeCaseDecisionRequired"`
	HomeownerDecision         string             `json:"homeownerDecision"`
	EdgeCaseDecisionExpiresAt *time.Time         `json:"edgeCaseDecisionExpiresAt,omitempty"`
	TotalRooms                int                `json:"totalRooms"`
	CompletedRooms            int                `json:"completedRooms"`
	ProgressPercent           int                `json:"progressPercent"`
	Cleaners                  []JobStatusCleaner `json:"cleaners"`
}

type ChecklistRoom struct {
	RoomID           kernel.UUID `json:"roomId"`
	Type             string      `json:"type"`
	Number           int         `json:"number"`
	Label            string      `json:"label"`
	EstimatedMinutes int         `json:"estimatedMinutes"`
	Status           string      `json:"status"`
	CompletedAt      *time.Time  `json:"completedAt,omitempty"`
}

type Checklist struct {
	JobID           kernel.UUID     `json:"jobId"`
	CleanerID       kernel.UUID     `json:"cleanerId"`
	Status          string          `json:"status"`
	AppointmentDate time.Time       `json:"appointmentDate"`
	TotalMinutes    int             `json:"totalMinutes"`
	EarningsCents   int64           `json:"earningsCents"`
	Rooms           []ChecklistRoom `json:"rooms"`
}

type Offer struct {
	ID              kernel.UUID   `json:"id"`
	JobID           kernel.UUID   `json:"jobId"`
	Type            string        `json:"type"`
	EarningsOffered int64         `json:"earningsOffered"`
	RoomIDs         []kernel.UUID `json:"roomIds"`
	ExpiresAt       time.Time     `json:"expiresAt"`
	AppointmentDate time.Time     `json:"appointmentDate"`
	CleanersNeeded  int           `json:"cleanersNeeded"`
}

type JobCleaner struct {
	CleanerID      kernel.UUID `json:"cleanerId"`
	Name           string      `json:"name"`
	Status         string      `json:"status"`
	AssignedAt     time.Time   `json:"assignedAt"`
	RoomCount      int         `json:"roomCount"`
	CompletedRooms int         `json:"completedRooms"`
	Minutes        int         `json:"minutes"`
	EarningsCents  int64       `json:"earningsCents"`
}

type Notification struct {
	ID             kernel.UUID       `json:"id"`
	Kind           string            `json:"kind"`
	Title          string            `json:"title"`
	Body           string            `json:"body"`
	Data           map[string]string `json:"data,omitempty"`
	ActionRequired bool              `json:"actionRequired"`
	ExpiresAt      *time.Time        `json:"expiresAt,omitempty"`
	ReadAt         *time.Time        `json:"readAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}
