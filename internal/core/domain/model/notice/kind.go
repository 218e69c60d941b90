package notice

// Kind identifies which message a recipient gets.
type Kind int

const (
	Unknown Kind = iota
	CoCleanerJoined
	PaymentSplit
	OfferReceived
	OfferExpired
	OfferWithdrawn
	JoinRequestReceived
	JoinRequestApproved
	JoinRequestDeclined
	JoinRequestCancelled
	SoloOfferPossible
	HomeownerSoloOrCancel
	ExtraRoomsPossible
	HomeownerRebalance
	AllCleanersUnavailable
	SoloOffer
	ExtraWorkOffer
	JobFilled
	EdgeCaseDecision
	EdgeCaseAutoProceeded
	EdgeCaseSoleCleaner
	AppointmentCancelled
	UrgentFill
	FinalWarning
	Rescheduled
	JobCompleted
)

var kindNames = map[Kind]string{
	Unknown:                "unknown",
	CoCleanerJoined:        "co_cleaner_joined",
	PaymentSplit:           "payment_split",
	OfferReceived:          "offer_received",
	OfferExpired:           "offer_expired",
	OfferWithdrawn:         "offer_withdrawn",
	JoinRequestReceived:    "join_request_received",
	JoinRequestApproved:    "join_request_approved",
	JoinRequestDeclined:    "join_request_declined",
	JoinRequestCancelled:   "join_request_cancelled",
	SoloOfferPossible:      "solo_offer_possible",
	HomeownerSoloOrCancel:  "homeowner_solo_or_cancel",
	ExtraRoomsPossible:     "extra_rooms_possible",
	HomeownerRebalance:     "homeowner_rebalance",
	AllCleanersUnavailable: "all_cleaners_unavailable",
	SoloOffer:              "solo_offer",
	ExtraWorkOffer:         "extra_work_offer",
	JobFilled:              "job_filled",
	EdgeCaseDecision:       "edge_case_decision",
	EdgeCaseAutoProceeded:  "edge_case_auto_proceeded",
	EdgeCaseSoleCleaner:    "edge_case_sole_cleaner",
	AppointmentCancelled:   "appointment_cancelled",
	UrgentFill:             "urgent_fill",
	FinalWarning:           "final_warning",
	Rescheduled:            "rescheduled",
	JobCompleted:           "job_completed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Unknown]
}

// Channel is a delivery mechanism the gateway fans a message out to.
type Channel string

const (
	InApp  Channel = "in_app"
	Email  Channel = "email"
	Push   Channel = "push"
	Socket Channel = "socket"
)
