// internal/courtship/service.go

package courtship

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicateLetter  = errors.New("letter already sent to this user")
	ErrCannotLetterSelf = errors.New("cannot send a letter to yourself")
	ErrCannotMatchSelf  = errors.New("cannot match with yourself")
	ErrLetterNotFound   = errors.New("letter not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrUnauthorized     = errors.New("unauthorized to perform this action")
)

type Repository interface {
	CreateLetter(ctx context.Context, letter *Letter) error
	GetLetter(ctx context.Context, id string) (*Letter, error)
	LetterExists(ctx context.Context, fromUID, toUID string) (bool, error)
	GetReceivedLetters(ctx context.Context, uid string, limit int) ([]*Letter, error)
	UpdateLetterStatus(ctx context.Context, id, status string) error

	// AcceptMatch atomically upserts the match record, removes both users
	// from the matching pool and flips their letters to matched.
	AcceptMatch(ctx context.Context, record *MatchRecord) error
	GetMatch(ctx context.Context, matchID string) (*MatchRecord, error)
	// GetActiveMatch returns the user's active match or (nil, nil) when none
	GetActiveMatch(ctx context.Context, uid string) (*MatchRecord, error)

	HasSentLetters(ctx context.Context, uid string) (bool, error)
	HasReceivedLetters(ctx context.Context, uid string) (bool, error)
}

// CandidateInvalidator drops cached destiny candidates when users enter or
// leave the pool. Implemented by the matching candidate cache; may be nil.
type CandidateInvalidator interface {
	Invalidate(ctx context.Context, uids ...string)
}

type Service interface {
	SendLetter(ctx context.Context, fromUID string, dto *SendLetterDTO) (*Letter, error)
	GetReceivedLetters(ctx context.Context, uid string) ([]*Letter, error)
	MarkLetterRead(ctx context.Context, uid, letterID string) (*Letter, error)
	AcceptMatch(ctx context.Context, uidA, uidB string) (*MatchRecord, error)
	GetMatch(ctx context.Context, matchID string) (*MatchRecord, error)
}

type service struct {
	repo          Repository
	invalidator   CandidateInvalidator
	receivedLimit int
}

func NewService(repo Repository, invalidator CandidateInvalidator, receivedLimit int) Service {
	return &service{
		repo:          repo,
		invalidator:   invalidator,
		receivedLimit: receivedLimit,
	}
}

func (s *service) SendLetter(ctx context.Context, fromUID string, dto *SendLetterDTO) (*Letter, error) {
	if fromUID == dto.ToUID {
		return nil, ErrCannotLetterSelf
	}

	exists, err := s.repo.LetterExists(ctx, fromUID, dto.ToUID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateLetter
	}

	letter := &Letter{
		ID:        uuid.NewString(),
		FromUID:   fromUID,
		ToUID:     dto.ToUID,
		FromName:  dto.FromName,
		Content:   dto.Content,
		Status:    LetterStatusSent,
		CreatedAt: time.Now(),
	}

	// The insert itself is guarded by the (from_uid, to_uid) key, so a
	// concurrent duplicate still comes back as ErrDuplicateLetter.
	if err := s.repo.CreateLetter(ctx, letter); err != nil {
		return nil, err
	}

	RecordLetterSent()

	return letter, nil
}

func (s *service) GetReceivedLetters(ctx context.Context, uid string) ([]*Letter, error) {
	return s.repo.GetReceivedLetters(ctx, uid, s.receivedLimit)
}

func (s *service) MarkLetterRead(ctx context.Context, uid, letterID string) (*Letter, error) {
	letter, err := s.repo.GetLetter(ctx, letterID)
	if err != nil {
		return nil, err
	}

	if letter.ToUID != uid {
		return nil, ErrUnauthorized
	}

	// only a freshly sent letter transitions; re-reading is a no-op
	if letter.Status != LetterStatusSent {
		return letter, nil
	}

	if err := s.repo.UpdateLetterStatus(ctx, letter.ID, LetterStatusRead); err != nil {
		return nil, err
	}

	letter.Status = LetterStatusRead
	return letter, nil
}

func (s *service) AcceptMatch(ctx context.Context, uidA, uidB string) (*MatchRecord, error) {
	if uidA == uidB {
		return nil, ErrCannotMatchSelf
	}

	user1, user2 := uidA, uidB
	if user1 > user2 {
		user1, user2 = user2, user1
	}

	record := &MatchRecord{
		MatchID:  GenerateMatchID(uidA, uidB),
		User1UID: user1,
		User2UID: user2,
		Status:   MatchStatusActive,
	}

	if err := s.repo.AcceptMatch(ctx, record); err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, uidA, uidB)
	}

	RecordMatchAccepted()

	return record, nil
}

func (s *service) GetMatch(ctx context.Context, matchID string) (*MatchRecord, error) {
	return s.repo.GetMatch(ctx, matchID)
}
