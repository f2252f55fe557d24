// internal/negotiation/service.go

package negotiation

import (
	"context"
	"errors"
	"time"

	"destiny-backend/internal/courtship"
)

var (
	ErrUnknownAttribute    = errors.New("unknown negotiation attribute")
	ErrNotParticipant      = errors.New("user is not part of this match")
	ErrNoProposal          = errors.New("no proposal exists for this channel")
	ErrInvalidCounterOffer = errors.New("cannot counter-offer this proposal")
	ErrMeetingNotReady     = errors.New("both date and place must be accepted before confirming")
	ErrMeetingNotFound     = errors.New("confirmed meeting not found")
)

type Repository interface {
	// UpsertProposal overwrites the channel record. Concurrent writers race
	// last-write-wins; the loser is silently overwritten.
	UpsertProposal(ctx context.Context, proposal *Proposal) error
	// GetProposal returns (nil, nil) when the channel has no proposal yet
	GetProposal(ctx context.Context, matchID, attribute string) (*Proposal, error)
	AcceptProposal(ctx context.Context, matchID, attribute string, acceptedAt time.Time) error
	CreateConfirmedMeeting(ctx context.Context, meeting *ConfirmedMeeting) error
	GetConfirmedMeeting(ctx context.Context, matchID string) (*ConfirmedMeeting, error)
}

type Service interface {
	Propose(ctx context.Context, matchID, attribute, fromUID, value string) (*Proposal, error)
	ProposeDate(ctx context.Context, matchID, fromUID, value string) (*Proposal, error)
	ProposePlace(ctx context.Context, matchID, fromUID, value string) (*Proposal, error)
	AcceptProposal(ctx context.Context, matchID, attribute, byUID string) (*Proposal, error)
	RejectWithCounterOffer(ctx context.Context, matchID, attribute, fromUID, newValue string) (*Proposal, error)
	GetProposalStatus(ctx context.Context, matchID, attribute string) (*Proposal, error)
	ConfirmMeeting(ctx context.Context, matchID, byUID string) (*ConfirmedMeeting, error)
	GetConfirmedMeeting(ctx context.Context, matchID string) (*ConfirmedMeeting, error)
}

type service struct {
	repo Repository
	hub  *Hub
}

// NewService creates the negotiation service. hub may be nil; events are then
// simply not fanned out.
func NewService(repo Repository, hub *Hub) Service {
	return &service{repo: repo, hub: hub}
}

func (s *service) Propose(ctx context.Context, matchID, attribute, fromUID, value string) (*Proposal, error) {
	if err := validAttribute(attribute); err != nil {
		return nil, err
	}

	partner, err := partnerOf(matchID, fromUID)
	if err != nil {
		return nil, err
	}

	proposal := &Proposal{
		MatchID:        matchID,
		Attribute:      attribute,
		ProposedBy:     fromUID,
		Value:          value,
		Status:         ProposalStatusPending,
		IsCounterOffer: false,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.UpsertProposal(ctx, proposal); err != nil {
		return nil, err
	}

	RecordProposal(attribute, false)
	s.hub.NotifyProposal(partner, proposal)

	return proposal, nil
}

func (s *service) ProposeDate(ctx context.Context, matchID, fromUID, value string) (*Proposal, error) {
	return s.Propose(ctx, matchID, AttributeDate, fromUID, value)
}

func (s *service) ProposePlace(ctx context.Context, matchID, fromUID, value string) (*Proposal, error) {
	return s.Propose(ctx, matchID, AttributePlace, fromUID, value)
}

func (s *service) AcceptProposal(ctx context.Context, matchID, attribute, byUID string) (*Proposal, error) {
	if err := validAttribute(attribute); err != nil {
		return nil, err
	}

	if _, err := partnerOf(matchID, byUID); err != nil {
		return nil, err
	}

	proposal, err := s.repo.GetProposal(ctx, matchID, attribute)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrNoProposal
	}

	// re-accepting an accepted channel is a no-op success
	if proposal.Status == ProposalStatusAccepted {
		return proposal, nil
	}

	now := time.Now()
	if err := s.repo.AcceptProposal(ctx, matchID, attribute, now); err != nil {
		return nil, err
	}

	proposal.Status = ProposalStatusAccepted
	proposal.AcceptedAt = &now

	RecordAcceptance(attribute)
	s.hub.NotifyProposalAccepted(proposal.ProposedBy, proposal)

	return proposal, nil
}

func (s *service) RejectWithCounterOffer(ctx context.Context, matchID, attribute, fromUID, newValue string) (*Proposal, error) {
	if err := validAttribute(attribute); err != nil {
		return nil, err
	}

	partner, err := partnerOf(matchID, fromUID)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.GetProposal(ctx, matchID, attribute)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoProposal
	}

	// a counter-offer only answers the other party's still-pending proposal
	if current.Status != ProposalStatusPending || current.ProposedBy == fromUID {
		return nil, ErrInvalidCounterOffer
	}

	counter := &Proposal{
		MatchID:        matchID,
		Attribute:      attribute,
		ProposedBy:     fromUID,
		Value:          newValue,
		Status:         ProposalStatusPending,
		IsCounterOffer: true,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.UpsertProposal(ctx, counter); err != nil {
		return nil, err
	}

	RecordProposal(attribute, true)
	s.hub.NotifyProposal(partner, counter)

	return counter, nil
}

func (s *service) GetProposalStatus(ctx context.Context, matchID, attribute string) (*Proposal, error) {
	if err := validAttribute(attribute); err != nil {
		return nil, err
	}
	return s.repo.GetProposal(ctx, matchID, attribute)
}

func (s *service) ConfirmMeeting(ctx context.Context, matchID, byUID string) (*ConfirmedMeeting, error) {
	if _, err := partnerOf(matchID, byUID); err != nil {
		return nil, err
	}

	dateChannel, err := s.repo.GetProposal(ctx, matchID, AttributeDate)
	if err != nil {
		return nil, err
	}
	placeChannel, err := s.repo.GetProposal(ctx, matchID, AttributePlace)
	if err != nil {
		return nil, err
	}

	if !isAccepted(dateChannel) || !isAccepted(placeChannel) {
		return nil, ErrMeetingNotReady
	}

	// the snapshot carries whatever the two channels held at confirm time
	meeting := &ConfirmedMeeting{
		MatchID:     matchID,
		Date:        dateChannel.Value,
		Place:       placeChannel.Value,
		Status:      MeetingStatusConfirmed,
		ConfirmedAt: time.Now(),
	}

	// first write wins; a repeated confirm returns the original snapshot
	if err := s.repo.CreateConfirmedMeeting(ctx, meeting); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetConfirmedMeeting(ctx, matchID)
	if err != nil {
		return nil, err
	}

	RecordConfirmation()
	if first, second, ok := courtship.MatchParticipants(matchID); ok {
		s.hub.NotifyMeetingConfirmed(stored, first, second)
	}

	return stored, nil
}

func (s *service) GetConfirmedMeeting(ctx context.Context, matchID string) (*ConfirmedMeeting, error) {
	return s.repo.GetConfirmedMeeting(ctx, matchID)
}

func validAttribute(attribute string) error {
	if attribute != AttributeDate && attribute != AttributePlace {
		return ErrUnknownAttribute
	}
	return nil
}

func isAccepted(proposal *Proposal) bool {
	return proposal != nil && proposal.Status == ProposalStatusAccepted
}

// partnerOf resolves the other participant of a canonical match id and
// rejects uids that are not part of the match
func partnerOf(matchID, uid string) (string, error) {
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
