package negotiation

import (
	"testing"
	"time"
)

func TestHubNotifyAfterShutdown(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Shutdown()

	// a handler finishing an in-flight request must not hang on its event
	done := make(chan struct{})
	go func() {
		proposal := &Proposal{MatchID: testMatchID, Attribute: AttributeDate, ProposedBy: "alice"}
		hub.NotifyProposal("bob", proposal)
		hub.NotifyProposalAccepted("alice", proposal)
		hub.NotifyMeetingConfirmed(&ConfirmedMeeting{MatchID: testMatchID}, "alice", "bob")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notify calls blocked after hub shutdown")
	}
}

func TestHubNotifyWithoutListeners(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	done := make(chan struct{})
	go func() {
		proposal := &Proposal{MatchID: testMatchID, Attribute: AttributePlace, ProposedBy: "bob"}
		hub.NotifyProposal("alice", proposal)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notify blocked with no connected clients")
	}
}
