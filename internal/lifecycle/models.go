package lifecycle

import "time"

// Journey states a user moves through from signup to a settled match.
const (
	JourneyInactive       = "inactive"
	JourneySearching      = "searching"
	JourneyLetterSent     = "letter_sent"
	JourneyLetterReceived = "letter_received"
	JourneyMatched        = "matched"
	JourneyNegotiating    = "negotiating"
	JourneyConfirmed      = "confirmed"
	JourneyDecision       = "decision"
	JourneyCoupled        = "coupled"
)

// Post-meeting decisions.
const (
	DecisionContinue = "continue"
	DecisionStop     = "stop"
)

// Pair outcomes derived from the two decisions.
const (
	OutcomeWaiting    = "waiting"
	OutcomeCoupled    = "coupled"
	OutcomeSearching  = "searching"
	OutcomeConflicted = "conflicted"
)

// MeetingDecision is one participant's verdict after the confirmed meeting.
// Resubmitting overwrites the previous row.
type MeetingDecision struct {
	MatchID   string    `json:"match_id" db:"match_id"`
	UserUID   string    `json:"user_uid" db:"user_uid"`
	Decision  string    `json:"decision" db:"decision"`
	DecidedAt time.Time `json:"decided_at" db:"decided_at"`
}

// OutcomeResult is the resolved state of a pair plus the decisions it was
// derived from.
type OutcomeResult struct {
	MatchID   string             `json:"match_id"`
	Outcome   string             `json:"outcome"`
	Decisions []*MeetingDecision `json:"decisions"`
}
