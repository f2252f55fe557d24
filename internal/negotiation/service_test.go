package negotiation

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memoryRepo struct {
	proposals map[string]*Proposal
	meetings  map[string]*ConfirmedMeeting
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		proposals: make(map[string]*Proposal),
		meetings:  make(map[string]*ConfirmedMeeting),
	}
}

func channelKey(matchID, attribute string) string {
	return matchID + "/" + attribute
}

func (r *memoryRepo) UpsertProposal(_ context.Context, proposal *Proposal) error {
	clone := *proposal
	clone.AcceptedAt = nil
	r.proposals[channelKey(proposal.MatchID, proposal.Attribute)] = &clone
	return nil
}

func (r *memoryRepo) GetProposal(_ context.Context, matchID, attribute string) (*Proposal, error) {
	proposal, ok := r.proposals[channelKey(matchID, attribute)]
	if !ok {
		return nil, nil
	}
	clone := *proposal
	return &clone, nil
}

func (r *memoryRepo) AcceptProposal(_ context.Context, matchID, attribute string, acceptedAt time.Time) error {
	proposal, ok := r.proposals[channelKey(matchID, attribute)]
	if !ok {
		return errors.New("no proposal row")
	}
	proposal.Status = ProposalStatusAccepted
	proposal.AcceptedAt = &acceptedAt
	return nil
}

func (r *memoryRepo) CreateConfirmedMeeting(_ context.Context, meeting *ConfirmedMeeting) error {
	if _, ok := r.meetings[meeting.MatchID]; ok {
		return nil
	}
	clone := *meeting
	r.meetings[meeting.MatchID] = &clone
	return nil
}

func (r *memoryRepo) GetConfirmedMeeting(_ context.Context, matchID string) (*ConfirmedMeeting, error) {
	meeting, ok := r.meetings[matchID]
	if !ok {
		return nil, ErrMeetingNotFound
	}
	clone := *meeting
	return &clone, nil
}

const testMatchID = "alice_bob"

func newTestService() (Service, *memoryRepo) {
	repo := newMemoryRepo()
	return NewService(repo, nil), repo
}

func TestProposeRoundtrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	proposal, err := svc.ProposeDate(ctx, testMatchID, "alice", "2025-11-24")
	if err != nil {
		t.Fatalf("ProposeDate: %v", err)
	}
	if proposal.Status != ProposalStatusPending {
		t.Errorf("status = %q, want %q", proposal.Status, ProposalStatusPending)
	}
	if proposal.ProposedBy != "alice" {
		t.Errorf("proposed_by = %q, want alice", proposal.ProposedBy)
	}
	if proposal.IsCounterOffer {
		t.Error("initial proposal flagged as counter-offer")
	}

	got, err := svc.GetProposalStatus(ctx, testMatchID, AttributeDate)
	if err != nil {
		t.Fatalf("GetProposalStatus: %v", err)
	}
	if got == nil || got.Value != "2025-11-24" {
		t.Fatalf("stored proposal = %+v, want value 2025-11-24", got)
	}
}

func TestProposeRejectsOutsiders(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.ProposeDate(context.Background(), testMatchID, "mallory", "2025-11-24"); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("err = %v, want ErrNotParticipant", err)
	}
}

func TestProposeUnknownAttribute(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Propose(context.Background(), testMatchID, "venue", "alice", "somewhere"); !errors.Is(err, ErrUnknownAttribute) {
		t.Errorf("err = %v, want ErrUnknownAttribute", err)
	}
}

func TestCounterOfferFlow(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ProposeDate(ctx, testMatchID, "alice", "2025-11-24"); err != nil {
		t.Fatalf("ProposeDate: %v", err)
	}

	counter, err := svc.RejectWithCounterOffer(ctx, testMatchID, AttributeDate, "bob", "2025-11-25")
	if err != nil {
		t.Fatalf("RejectWithCounterOffer: %v", err)
	}
	if counter.Status != ProposalStatusPending {
		t.Errorf("counter status = %q, want %q", counter.Status, ProposalStatusPending)
	}
	if counter.ProposedBy != "bob" {
		t.Errorf("counter proposed_by = %q, want bob", counter.ProposedBy)
	}
	if !counter.IsCounterOffer {
		t.Error("counter-offer not flagged")
	}

	accepted, err := svc.AcceptProposal(ctx, testMatchID, AttributeDate, "alice")
	if err != nil {
		t.Fatalf("AcceptProposal: %v", err)
	}
	if accepted.Status != ProposalStatusAccepted {
		t.Errorf("status = %q, want %q", accepted.Status, ProposalStatusAccepted)
	}
	if accepted.Value != "2025-11-25" {
		t.Errorf("accepted value = %q, want the counter value", accepted.Value)
	}
	if accepted.AcceptedAt == nil {
		t.Error("accepted_at not set")
	}

	// repeating the accept is a no-op success
	again, err := svc.AcceptProposal(ctx, testMatchID, AttributeDate, "alice")
	if err != nil {
		t.Fatalf("repeat AcceptProposal: %v", err)
	}
	if again.Status != ProposalStatusAccepted {
		t.Errorf("repeat status = %q, want %q", again.Status, ProposalStatusAccepted)
	}
}

func TestCounterOfferByProposerRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ProposeDate(ctx, testMatchID, "alice", "2025-11-24"); err != nil {
		t.Fatalf("ProposeDate: %v", err)
	}

	if _, err := svc.RejectWithCounterOffer(ctx, testMatchID, AttributeDate, "alice", "2025-11-26"); !errors.Is(err, ErrInvalidCounterOffer) {
		t.Errorf("err = %v, want ErrInvalidCounterOffer", err)
	}
}

func TestCounterOfferNeedsExistingProposal(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.RejectWithCounterOffer(context.Background(), testMatchID, AttributeDate, "bob", "2025-11-25"); !errors.Is(err, ErrNoProposal) {
		t.Errorf("err = %v, want ErrNoProposal", err)
	}
}

func TestCounterOfferAfterAcceptRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ProposeDate(ctx, testMatchID, "alice", "2025-11-24"); err != nil {
		t.Fatalf("ProposeDate: %v", err)
	}
	if _, err := svc.AcceptProposal(ctx, testMatchID, AttributeDate, "bob"); err != nil {
		t.Fatalf("AcceptProposal: %v", err)
	}

	if _, err := svc.RejectWithCounterOffer(ctx, testMatchID, AttributeDate, "bob", "2025-11-25"); !errors.Is(err, ErrInvalidCounterOffer) {
		t.Errorf("err = %v, want ErrInvalidCounterOffer", err)
	}
}

func TestAcceptWithoutProposal(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AcceptProposal(context.Background(), testMatchID, AttributeDate, "bob"); !errors.Is(err, ErrNoProposal) {
		t.Errorf("err = %v, want ErrNoProposal", err)
	}
}

func TestConfirmMeetingRequiresBothChannels(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ConfirmMeeting(ctx, testMatchID, "alice"); !errors.Is(err, ErrMeetingNotReady) {
		t.Errorf("empty channels: err = %v, want ErrMeetingNotReady", err)
	}

	if _, err := svc.ProposeDate(ctx, testMatchID, "alice", "2025-11-24"); err != nil {
		t.Fatalf("ProposeDate: %v", err)
	}
	if _, err := svc.AcceptProposal(ctx, testMatchID, AttributeDate, "bob"); err != nil {
		t.Fatalf("AcceptProposal: %v", err)
	}

	if _, err := svc.ConfirmMeeting(ctx, testMatchID, "alice"); !errors.Is(err, ErrMeetingNotReady) {
		t.Errorf("place pending: err = %v, want ErrMeetingNotReady", err)
	}

	if _, err := svc.ProposePlace(ctx, testMatchID, "bob", "riverside cafe"); err != nil {
		t.Fatalf("ProposePlace: %v", err)
	}
	if _, err := svc.ConfirmMeeting(ctx, testMatchID, "alice"); !errors.Is(err, ErrMeetingNotReady) {
		t.Errorf("place unaccepted: err = %v, want ErrMeetingNotReady", err)
	}

	if _, err := svc.AcceptProposal(ctx, testMatchID, AttributePlace, "alice"); err != nil {
		t.Fatalf("AcceptProposal place: %v", err)
	}

	meeting, err := svc.ConfirmMeeting(ctx, testMatchID, "alice")
	if err != nil {
		t.Fatalf("ConfirmMeeting: %v", err)
	}
	if meeting.Date != "2025-11-24" || meeting.Place != "riverside cafe" {
		t.Errorf("snapshot = %q / %q, want accepted channel values", meeting.Date, meeting.Place)
	}
	if meeting.Status != MeetingStatusConfirmed {
		t.Errorf("status = %q, want %q", meeting.Status, MeetingStatusConfirmed)
	}
}

func TestConfirmMeetingFirstWriteWins(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ProposeDate(ctx, testMatchID, "alice", "2025-11-24"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AcceptProposal(ctx, testMatchID, AttributeDate, "bob"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ProposePlace(ctx, testMatchID, "bob", "riverside cafe"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AcceptProposal(ctx, testMatchID, AttributePlace, "alice"); err != nil {
		t.Fatal(err)
	}

	first, err := svc.ConfirmMeeting(ctx, testMatchID, "alice")
	if err != nil {
		t.Fatalf("first ConfirmMeeting: %v", err)
	}

	second, err := svc.ConfirmMeeting(ctx, testMatchID, "bob")
	if err != nil {
		t.Fatalf("second ConfirmMeeting: %v", err)
	}

	if !first.ConfirmedAt.Equal(second.ConfirmedAt) {
		t.Error("repeated confirm replaced the original snapshot")
	}
	if second.Date != first.Date || second.Place != first.Place {
		t.Error("repeated confirm returned a different snapshot")
	}
}

func TestConfirmMeetingOutsiderRejected(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.ConfirmMeeting(context.Background(), testMatchID, "mallory"); !errors.Is(err, ErrNotParticipant) {
		t.Errorf("err = %v, want ErrNotParticipant", err)
	}
}

func TestGetConfirmedMeetingNotFound(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.GetConfirmedMeeting(context.Background(), testMatchID); !errors.Is(err, ErrMeetingNotFound) {
		t.Errorf("err = %v, want ErrMeetingNotFound", err)
	}
}

func TestNewProposalResetsChannel(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.ProposePlace(ctx, testMatchID, "alice", "riverside cafe"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AcceptProposal(ctx, testMatchID, AttributePlace, "bob"); err != nil {
		t.Fatal(err)
	}

	// a fresh proposal on an accepted channel drops it back to pending
	replaced, err := svc.ProposePlace(ctx, testMatchID, "bob", "city museum")
	if err != nil {
		t.Fatalf("ProposePlace: %v", err)
	}
	if replaced.Status != ProposalStatusPending {
		t.Errorf("status = %q, want %q", replaced.Status, ProposalStatusPending)
	}

	got, err := svc.GetProposalStatus(ctx, testMatchID, AttributePlace)
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != "city museum" || got.AcceptedAt != nil {
		t.Errorf("channel = %+v, want reset pending proposal", got)
	}
}
