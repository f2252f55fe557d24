package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"destiny-backend/internal/courtship"
	"destiny-backend/internal/matching"
	"destiny-backend/internal/negotiation"
)

// Read-only views into the other modules, scoped to what the journey needs.

type ProfileSource interface {
	GetProfile(ctx context.Context, uid string) (*matching.UserProfile, error)
}

type CourtshipSource interface {
	GetActiveMatch(ctx context.Context, uid string) (*courtship.MatchRecord, error)
	HasSentLetters(ctx context.Context, uid string) (bool, error)
	HasReceivedLetters(ctx context.Context, uid string) (bool, error)
}

type NegotiationSource interface {
	GetProposalStatus(ctx context.Context, matchID, attribute string) (*negotiation.Proposal, error)
	GetConfirmedMeeting(ctx context.Context, matchID string) (*negotiation.ConfirmedMeeting, error)
}

// JourneySnapshot captures everything the journey state depends on. Callers
// assemble it from the matching, courtship, and negotiation services.
type JourneySnapshot struct {
	MatchingActive   bool
	LetterSent       bool
	LetterReceived   bool
	Matched          bool
	Negotiating      bool
	MeetingConfirmed bool
	OwnDecision      string
	Outcome          string
}

// DeriveJourneyState maps a snapshot to the user's journey state. Later stages
// win: a matched user who has also sent letters is matched, not letter_sent.
func DeriveJourneyState(s JourneySnapshot) string {
	switch {
	case s.Outcome == OutcomeCoupled:
		return JourneyCoupled
	case s.Outcome == OutcomeSearching:
		return JourneySearching
	case s.MeetingConfirmed && s.OwnDecision != "":
		return JourneyDecision
	case s.MeetingConfirmed:
		return JourneyConfirmed
	case s.Negotiating:
		return JourneyNegotiating
	case s.Matched:
		return JourneyMatched
	case s.LetterReceived:
		return JourneyLetterReceived
	case s.LetterSent:
		return JourneyLetterSent
	case s.MatchingActive:
		return JourneySearching
	default:
		return JourneyInactive
	}
}

// JourneyStatus is the resolved state reported to the client.
type JourneyStatus struct {
	UID     string `json:"uid"`
	State   string `json:"state"`
	MatchID string `json:"match_id,omitempty"`
}

// JourneyService assembles a snapshot from the other modules and derives the
// user's journey state from it.
type JourneyService struct {
	profiles     ProfileSource
	courtships   CourtshipSource
	negotiations NegotiationSource
	decisions    Repository
}

func NewJourneyService(profiles ProfileSource, courtships CourtshipSource, negotiations NegotiationSource, decisions Repository) *JourneyService {
	return &JourneyService{
		profiles:     profiles,
		courtships:   courtships,
		negotiations: negotiations,
		decisions:    decisions,
	}
}

func (s *JourneyService) GetJourneyState(ctx context.Context, uid string) (*JourneyStatus, error) {
	profile, err := s.profiles.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	snapshot := JourneySnapshot{MatchingActive: profile.IsMatchingActive}

	if snapshot.LetterSent, err = s.courtships.HasSentLetters(ctx, uid); err != nil {
		return nil, fmt.Errorf("journey letters sent: %w", err)
	}
	if snapshot.LetterReceived, err = s.courtships.HasReceivedLetters(ctx, uid); err != nil {
		return nil, fmt.Errorf("journey letters received: %w", err)
	}

	match, err := s.courtships.GetActiveMatch(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("journey active match: %w", err)
	}

	status := &JourneyStatus{UID: uid}
	if match != nil {
		snapshot.Matched = true
		status.MatchID = match.MatchID

		dateChannel, err := s.negotiations.GetProposalStatus(ctx, match.MatchID, negotiation.AttributeDate)
		if err != nil {
			return nil, fmt.Errorf("journey date channel: %w", err)
		}
		placeChannel, err := s.negotiations.GetProposalStatus(ctx, match.MatchID, negotiation.AttributePlace)
		if err != nil {
			return nil, fmt.Errorf("journey place channel: %w", err)
		}
		snapshot.Negotiating = dateChannel != nil || placeChannel != nil

		meeting, err := s.negotiations.GetConfirmedMeeting(ctx, match.MatchID)
		if err != nil && !errors.Is(err, negotiation.ErrMeetingNotFound) {
			return nil, fmt.Errorf("journey meeting: %w", err)
		}
		snapshot.MeetingConfirmed = meeting != nil

		own, err := s.decisions.GetDecision(ctx, match.MatchID, uid)
		if err != nil {
			return nil, fmt.Errorf("journey own decision: %w", err)
		}
		if own != nil {
			snapshot.OwnDecision = own.Decision
		}

		partnerUID := match.User1UID
		if partnerUID == uid {
			partnerUID = match.User2UID
		}
		partner, err := s.decisions.GetDecision(ctx, match.MatchID, partnerUID)
		if err != nil {
			return nil, fmt.Errorf("journey partner decision: %w", err)
		}
		snapshot.Outcome = outcomeFor(own, partner)
	}

	status.State = DeriveJourneyState(snapshot)
	return status, nil
}
