package lifecycle

import (
	"context"
	"errors"
	"testing"
)

type memoryRepo struct {
	decisions map[string]*MeetingDecision
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{decisions: make(map[string]*MeetingDecision)}
}

func decisionKey(matchID, userUID string) string {
	return matchID + "/" + userUID
}

func (r *memoryRepo) SaveDecision(_ context.Context, decision *MeetingDecision) error {
	clone := *decision
	r.decisions[decisionKey(decision.MatchID, decision.UserUID)] = &clone
	return nil
}

func (r *memoryRepo) GetDecision(_ context.Context, matchID, userUID string) (*MeetingDecision, error) {
	decision, ok := r.decisions[decisionKey(matchID, userUID)]
	if !ok {
		return nil, nil
	}
	clone := *decision
	return &clone, nil
}

type fakeActivator struct {
	active map[string]bool
}

func (a *fakeActivator) SetMatchingActive(_ context.Context, uid string, active bool) error {
	a.active[uid] = active
	return nil
}

type fakeInvalidator struct {
	invalidated []string
}

func (i *fakeInvalidator) Invalidate(_ context.Context, uids ...string) {
	i.invalidated = append(i.invalidated, uids...)
}

const testMatchID = "alice_bob"

func newTestService() (Service, *fakeActivator, *fakeInvalidator) {
	activator := &fakeActivator{active: make(map[string]bool)}
	invalidator := &fakeInvalidator{}
	return NewService(newMemoryRepo(), activator, invalidator), activator, invalidator
}

func TestSaveMeetingDecision(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	decision, err := svc.SaveMeetingDecision(ctx, testMatchID, "alice", DecisionContinue)
	if err != nil {
		t.Fatalf("SaveMeetingDecision: %v", err)
	}
	if decision.Decision != DecisionContinue {
		t.Errorf("decision = %q, want %q", decision.Decision, DecisionContinue)
	}

	// resubmission overwrites
	changed, err := svc.SaveMeetingDecision(ctx, testMatchID, "alice", DecisionStop)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if changed.Decision != DecisionStop {
		t.Errorf("decision = %q, want %q", changed.Decision, DecisionStop)
	}
}

func TestSaveMeetingDecisionValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.SaveMeetingDecision(ctx, testMatchID, "alice", "maybe"); !errors.Is(err, ErrInvalidDecision) {
		t.Errorf("err = %v, want ErrInvalidDecision", err)
	}
	if _, err := svc.SaveMeetingDecision(ctx, testMatchID, "mallory", DecisionStop); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("err = %v, want ErrNotParticipant", err)
	}
}

func TestGetPartnerMeetingDecision(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.GetPartnerMeetingDecision(ctx, testMatchID, "alice"); !errors.Is(err, ErrDecisionNotFound) {
		t.Errorf("err = %v, want ErrDecisionNotFound", err)
	}

	if _, err := svc.SaveMeetingDecision(ctx, testMatchID, "bob", DecisionContinue); err != nil {
		t.Fatal(err)
	}

	partner, err := svc.GetPartnerMeetingDecision(ctx, testMatchID, "alice")
	if err != nil {
		t.Fatalf("GetPartnerMeetingDecision: %v", err)
	}
	if partner.UserUID != "bob" || partner.Decision != DecisionContinue {
		t.Errorf("partner decision = %+v, want bob/continue", partner)
	}
}

func TestResolveOutcomeWaiting(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	result, err := svc.ResolveOutcome(ctx, testMatchID)
	if err != nil {
		t.Fatalf("ResolveOutcome: %v", err)
	}
	if result.Outcome != OutcomeWaiting {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeWaiting)
	}

	if _, err := svc.SaveMeetingDecision(ctx, testMatchID, "alice", DecisionContinue); err != nil {
		t.Fatal(err)
	}

	result, err = svc.ResolveOutcome(ctx, testMatchID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != OutcomeWaiting {
		t.Errorf("one decision: outcome = %q, want %q", result.Outcome, OutcomeWaiting)
	}
}

func TestResolveOutcomeCoupled(t *testing.T) {
	svc, activator, _ := newTestService()
	ctx := context.Background()

	for _, uid := range []string{"alice", "bob"} {
		if _, err := svc.SaveMeetingDecision(ctx, testMatchID, uid, DecisionContinue); err != nil {
			t.Fatal(err)
		}
	}

	result, err := svc.ResolveOutcome(ctx, testMatchID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != OutcomeCoupled {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeCoupled)
	}
	if len(result.Decisions) != 2 {
		t.Errorf("decisions = %d, want 2", len(result.Decisions))
	}
	// coupled pairs stay out of the matching pool
	if len(activator.active) != 0 {
		t.Errorf("coupled outcome touched matching pool: %v", activator.active)
	}
}

func TestResolveOutcomeSearchingReactivates(t *testing.T) {
	svc, activator, invalidator := newTestService()
	ctx := context.Background()

	for _, uid := range []string{"alice", "bob"} {
		if _, err := svc.SaveMeetingDecision(ctx, testMatchID, uid, DecisionStop); err != nil {
			t.Fatal(err)
		}
	}

	result, err := svc.ResolveOutcome(ctx, testMatchID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != OutcomeSearching {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeSearching)
	}
	if !activator.active["alice"] || !activator.active["bob"] {
		t.Errorf("both users should be reactivated, got %v", activator.active)
	}
	if len(invalidator.invalidated) != 2 {
		t.Errorf("candidate caches not invalidated: %v", invalidator.invalidated)
	}
}

func TestResolveOutcomeConflicted(t *testing.T) {
	svc, activator, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.SaveMeetingDecision(ctx, testMatchID, "alice", DecisionContinue); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SaveMeetingDecision(ctx, testMatchID, "bob", DecisionStop); err != nil {
		t.Fatal(err)
	}

	result, err := svc.ResolveOutcome(ctx, testMatchID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != OutcomeConflicted {
		t.Errorf("outcome = %q, want %q", result.Outcome, OutcomeConflicted)
	}
	// a disagreement is surfaced as-is; no side effects either way
	if len(activator.active) != 0 {
		t.Errorf("conflicted outcome touched matching pool: %v", activator.active)
	}
}

func TestResolveOutcomeMalformedMatchID(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.ResolveOutcome(context.Background(), "no-separator"); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("err = %v, want ErrNotParticipant", err)
	}
}
