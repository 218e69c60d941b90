package notice

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
)

var ErrUnknownKind = errors.New("unknown notice kind")

// Params carries whatever context a Kind needs. Unused fields stay zero.
type Params struct {
	JobID             kernel.UUID
	AppointmentID     kernel.UUID
	OfferID           kernel.UUID
	RequestID         kernel.UUID
	CleanerName       string
	RemainingCleaners int
	Shortfall         int
	EarningsCents     int64
	ExpiresAt         *time.Time
	Date              *time.Time
	Reason            string
}

// Notice is a pending notification for one recipient.
type Notice struct {
	Recipient kernel.UUID
	Kind      Kind
	Params    Params
}

// Message is a composed notification ready for the gateway.
type Message struct {
	Recipient      kernel.UUID
	Kind           Kind
	Title          string
	Body           string
	Data           map[string]string
	ActionRequired bool
	ExpiresAt      *time.Time
	Channels       []Channel
}

// HasChannel reports whether the message should go out on ch.
func (m Message) HasChannel(ch Channel) bool {
	for _, c := range m.Channels {
		if c == ch {
			return true
		}
	}
	return false
}

var (
	liveOnly  = []Channel{InApp, Socket}
	withPush  = []Channel{InApp, Socket, Push}
	important = []Channel{InApp, Socket, Email, Push}
)

// Compose renders a notice. Every Kind has exactly one case.
func Compose(n Notice) (Message, error) {
	p := n.Params
	m := Message{
		Recipient: n.Recipient,
		Kind:      n.Kind,
		Data:      data(n),
		ExpiresAt: p.ExpiresAt,
		Channels:  liveOnly,
	}

	switch n.Kind {
	case CoCleanerJoined:
		m.Title = "A co-cleaner joined your job"
		m.Body = fmt.Sprintf("%s has joined the job. Rooms have been divided between the team.", nameOr(p.CleanerName, "Another cleaner"))
	case PaymentSplit:
		m.Title = "A second cleaner joined"
		m.Body = fmt.Sprintf("%s has joined the job you were confirmed for alone. Payment will now be split between cleaners.",
			nameOr(p.CleanerName, "Another cleaner"))
		m.Channels = withPush
	case OfferReceived:
		m.Title = "New job offer"
		m.Body = fmt.Sprintf("You have been offered a slot paying %s. Respond before %s.", money(p.EarningsCents), when(p.ExpiresAt))
		m.ActionRequired = true
		m.Channels = withPush
	case OfferExpired:
		m.Title = "Job offer expired"
		m.Body = "An offer you did not respond to has expired."
	case OfferWithdrawn:
		m.Title = "Job offer withdrawn"
		m.Body = "The job has been filled and the offer is no longer available."
	case JoinRequestReceived:
		m.Title = "A cleaner wants to join your appointment"
		m.Body = fmt.Sprintf("%s asked to join. Approve or decline before %s, otherwise the request is approved automatically.",
			nameOr(p.CleanerName, "A cleaner"), when(p.ExpiresAt))
		m.ActionRequired = true
		m.Channels = withPush
	case JoinRequestApproved:
		m.Title = "Request approved"
		m.Body = "You have been added to the job."
		m.Channels = withPush
	case JoinRequestDeclined:
		m.Title = "Request declined"
		m.Body = withReason("The homeowner declined your request to join.", p.Reason)
	case JoinRequestCancelled:
		m.Title = "Request closed"
		m.Body = "The job was filled before your request was approved."
	case SoloOfferPossible:
		m.Title = "Your co-cleaner dropped out"
		m.Body = "You are the only remaining cleaner. You may be offered the full job at full pay."
		m.Channels = withPush
	case HomeownerSoloOrCancel:
		m.Title = "A cleaner dropped out"
		m.Body = "One cleaner remains. You may proceed with a single cleaner or cancel without penalty."
		m.ActionRequired = true
		m.Channels = important
	case ExtraRoomsPossible:
		m.Title = "A co-cleaner dropped out"
		m.Body = fmt.Sprintf("%d cleaners remain on this job. You may be asked to cover extra rooms.", p.RemainingCleaners)
		m.Channels = withPush
	case HomeownerRebalance:
		m.Title = "A cleaner dropped out"
		m.Body = fmt.Sprintf("%d cleaners remain and %d slot(s) are open. Rooms will be rebalanced among the remaining team.",
			p.RemainingCleaners, p.Shortfall)
		m.Channels = important
	case AllCleanersUnavailable:
		m.Title = "No cleaners available"
		m.Body = "All cleaners have left this appointment. Please reschedule or cancel, free of penalty."
		m.ActionRequired = true
		m.Channels = important
	case SoloOffer:
		m.Title = "Complete the job solo"
		m.Body = fmt.Sprintf("Finish the whole job alone for %s. Respond before %s.", money(p.EarningsCents), when(p.ExpiresAt))
		m.ActionRequired = true
		m.Channels = withPush
	case ExtraWorkOffer:
		m.Title = "Extra rooms available"
		m.Body = fmt.Sprintf("Cover the extra rooms for an additional %s. Respond before %s.", money(p.EarningsCents), when(p.ExpiresAt))
		m.ActionRequired = true
		m.Channels = withPush
	case JobFilled:
		m.Title = "Your appointment is fully staffed"
		m.Body = "All cleaner slots for your appointment are confirmed."
	case EdgeCaseDecision:
		m.Title = "Decision needed for your appointment"
		m.Body = fmt.Sprintf("Only %s is confirmed for a job sized for two. Proceed with one cleaner or cancel before %s. "+
			"If you do not respond, the appointment proceeds with one cleaner.", nameOr(p.CleanerName, "one cleaner"), when(p.ExpiresAt))
		m.ActionRequired = true
		m.Channels = important
	case EdgeCaseAutoProceeded:
		m.Title = "Appointment proceeding with one cleaner"
		m.Body = "We did not hear back, so your appointment will go ahead with the confirmed cleaner."
		m.Channels = important
	case EdgeCaseSoleCleaner:
		m.Title = "You are the sole confirmed cleaner"
		m.Body = "The appointment will go ahead with you as the only cleaner. You will clean the home alone at full pay."
		m.Channels = withPush
	case AppointmentCancelled:
		m.Title = "Appointment cancelled"
		m.Body = withReason("The appointment has been cancelled.", p.Reason)
		m.Channels = important
	case UrgentFill:
		m.Title = "Urgent: cleaners still needed"
		m.Body = fmt.Sprintf("The appointment on %s still has %d open slot(s).", when(p.Date), p.Shortfall)
		m.ActionRequired = true
		m.Channels = withPush
	case FinalWarning:
		m.Title = "Appointment not fully staffed"
		m.Body = fmt.Sprintf("The appointment on %s is still missing %d cleaner(s). Proceed, cancel or reschedule.",
			when(p.Date), p.Shortfall)
		m.ActionRequired = true
		m.Channels = important
	case Rescheduled:
		m.Title = "Appointment rescheduled"
		m.Body = fmt.Sprintf("The appointment has moved to %s.", when(p.Date))
		m.Channels = important
	case JobCompleted:
		m.Title = "Cleaning completed"
		m.Body = "All rooms have been cleaned."
		m.Channels = important
	default:
		return Message{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(n.Kind))
	}

	return m, nil
}

func data(n Notice) map[string]string {
	d := map[string]string{"type": n.Kind.String()}
	p := n.Params
	for key, id := range map[string]kernel.UUID{
		"jobId":         p.JobID,
		"appointmentId": p.AppointmentID,
		"offerId":       p.OfferID,
		"requestId":     p.RequestID,
	} {
		if !id.IsZero() {
			d[key] = id.String()
		}
	}
	if p.RemainingCleaners > 0 {
		d["remainingCleaners"] = strconv.Itoa(p.RemainingCleaners)
	}
	if p.EarningsCents > 0 {
		d["earningsCents"] = strconv.FormatInt(p.EarningsCents, 10)
	}
	if p.ExpiresAt != nil {
		d["expiresAt"] = p.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return d
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func money(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func when(t *time.Time) string {
	if t == nil {
		return "the deadline"
	}
	return t.UTC().Format("Mon Jan 2 15:04 MST")
}

func withReason(body, reason string) string {
	if reason == "" {
		return body
	}
	return body + " Reason: " + reason
}
