package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"destiny-backend/internal/courtship"
)

var (
	ErrInvalidDecision  = errors.New("decision must be continue or stop")
	ErrNotParticipant   = errors.New("user is not part of this match")
	ErrDecisionNotFound = errors.New("meeting decision not found")
)

type Repository interface {
	// SaveDecision upserts on (match_id, user_uid)
	SaveDecision(ctx context.Context, decision *MeetingDecision) error
	// GetDecision returns (nil, nil) when the user has not decided yet
	GetDecision(ctx context.Context, matchID, userUID string) (*MeetingDecision, error)
}

// ProfileActivator flips a profile back into (or out of) the matching pool.
type ProfileActivator interface {
	SetMatchingActive(ctx context.Context, uid string, active bool) error
}

type Service interface {
	SaveMeetingDecision(ctx context.Context, matchID, uid, decision string) (*MeetingDecision, error)
	GetPartnerMeetingDecision(ctx context.Context, matchID, uid string) (*MeetingDecision, error)
	ResolveOutcome(ctx context.Context, matchID string) (*OutcomeResult, error)
}

type service struct {
	repo        Repository
	activator   ProfileActivator
	invalidator courtship.CandidateInvalidator
}

// NewService creates the lifecycle service. activator and invalidator may be
// nil; outcome resolution then skips pool updates.
func NewService(repo Repository, activator ProfileActivator, invalidator courtship.CandidateInvalidator) Service {
	return &service{repo: repo, activator: activator, invalidator: invalidator}
}

func (s *service) SaveMeetingDecision(ctx context.Context, matchID, uid, decision string) (*MeetingDecision, error) {
	if decision != DecisionContinue && decision != DecisionStop {
		return nil, ErrInvalidDecision
	}

	if _, err := participantOf(matchID, uid); err != nil {
		return nil, err
	}

	record := &MeetingDecision{
		MatchID:   matchID,
		UserUID:   uid,
		Decision:  decision,
		DecidedAt: time.Now(),
	}

	if err := s.repo.SaveDecision(ctx, record); err != nil {
		return nil, fmt.Errorf("save meeting decision: %w", err)
	}

	RecordDecision(decision)
	return record, nil
}

func (s *service) GetPartnerMeetingDecision(ctx context.Context, matchID, uid string) (*MeetingDecision, error) {
	partner, err := participantOf(matchID, uid)
	if err != nil {
		return nil, err
	}

	decision, err := s.repo.GetDecision(ctx, matchID, partner)
	if err != nil {
		return nil, fmt.Errorf("get partner decision: %w", err)
	}
	if decision == nil {
		return nil, ErrDecisionNotFound
	}

	return decision, nil
}

// ResolveOutcome derives the pair outcome from both decisions. A disagreement
// is reported as conflicted and left standing; nobody's decision is overridden.
func (s *service) ResolveOutcome(ctx context.Context, matchID string) (*OutcomeResult, error) {
	first, second, ok := courtship.MatchParticipants(matchID)
	if !ok {
		return nil, ErrNotParticipant
	}

	decisionA, err := s.repo.GetDecision(ctx, matchID, first)
	if err != nil {
		return nil, fmt.Errorf("resolve outcome: %w", err)
	}
	decisionB, err := s.repo.GetDecision(ctx, matchID, second)
	if err != nil {
		return nil, fmt.Errorf("resolve outcome: %w", err)
	}

	result := &OutcomeResult{MatchID: matchID}
	if decisionA != nil {
		result.Decisions = append(result.Decisions, decisionA)
	}
	if decisionB != nil {
		result.Decisions = append(result.Decisions, decisionB)
	}

	result.Outcome = outcomeFor(decisionA, decisionB)
	if result.Outcome == OutcomeSearching {
		s.reactivate(ctx, first, second)
	}

	RecordOutcome(result.Outcome)
	return result, nil
}

// outcomeFor derives the pair outcome from two decisions. Pure; side effects
// like pool reactivation are the caller's call.
func outcomeFor(a, b *MeetingDecision) string {
	switch {
	case a == nil || b == nil:
		return OutcomeWaiting
	case a.Decision == DecisionContinue && b.Decision == DecisionContinue:
		return OutcomeCoupled
	case a.Decision == DecisionStop && b.Decision == DecisionStop:
		return OutcomeSearching
	default:
		return OutcomeConflicted
	}
}

// reactivate returns both users to the matching pool after a mutual stop
func (s *service) reactivate(ctx context.Context, uids ...string) {
	if s.activator != nil {
		for _, uid := range uids {
			if err := s.activator.SetMatchingActive(ctx, uid, true); err != nil {
				log.Printf("Failed to reactivate %s: %v", uid, err)
			}
		}
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, uids...)
	}
}

// participantOf returns the other member of the match, erroring when uid is
// not a member
func participantOf(matchID, uid string) (string, error) {
	first, second, ok := courtship.MatchParticipants(matchID)
	if !ok {
		return "", ErrNotParticipant
	}

	switch uid {
	case first:
		return second, nil
	case second:
		return first, nil
	default:
		return "", ErrNotParticipant
	}
}
