package negotiation

import "time"

// Negotiation channels. Each match negotiates two attributes independently.
const (
	AttributeDate  = "date"
	AttributePlace = "place"
)

// Proposal statuses. A channel moves NONE → PENDING → ACCEPTED; a
// counter-offer is the PENDING → PENDING self-loop with ownership flipped.
const (
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
)

const MeetingStatusConfirmed = "confirmed"

// Proposal is the single live record of a negotiation channel. New proposals
// overwrite it; there is no history chain.
type Proposal struct {
	MatchID        string     `json:"match_id" db:"match_id"`
	Attribute      string     `json:"attribute" db:"attribute"`
	ProposedBy     string     `json:"proposed_by" db:"proposed_by"`
	Value          string     `json:"value" db:"value"`
	Status         string     `json:"status" db:"status"`
	IsCounterOffer bool       `json:"is_counter_offer" db:"is_counter_offer"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	AcceptedAt     *time.Time `json:"accepted_at,omitempty" db:"accepted_at"`
}

// ConfirmedMeeting is the frozen snapshot written once both channels reach
// accepted. It is not re-derived if a channel changes afterwards.
type ConfirmedMeeting struct {
	MatchID     string    `json:"match_id" db:"match_id"`
	Date        string    `json:"date" db:"date"`
	Place       string    `json:"place" db:"place"`
	Status      string    `json:"status" db:"status"`
	ConfirmedAt time.Time `json:"confirmed_at" db:"confirmed_at"`
}
