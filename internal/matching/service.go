// internal/matching/service.go

package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrProfileNotFound = errors.New("user profile not found")
)

type Repository interface {
	GetProfile(ctx context.Context, uid string) (*UserProfile, error)
	FindEligible(ctx context.Context, gender string, excludeUID string) ([]*UserProfile, error)
	SetMatchingActive(ctx context.Context, uid string, active bool) error
}

type Service interface {
	// FindMatchCandidates returns the requester's single destiny candidate,
	// or an empty slice when the pool is empty. It never returns more than
	// one entry: the product shows one match at a time, not a list.
	FindMatchCandidates(ctx context.Context, uid string) ([]*MatchCandidate, error)
	GetProfile(ctx context.Context, uid string) (*UserProfile, error)
}

type service struct {
	repo   Repository
	scorer *Scorer
	cache  *CandidateCache
}

// NewService creates the matching service. cache may be nil; the service
// then recomputes the candidate on every request.
func NewService(repo Repository, scorer *Scorer, cache *CandidateCache) Service {
	return &service{
		repo:   repo,
		scorer: scorer,
		cache:  cache,
	}
}

func (s *service) GetProfile(ctx context.Context, uid string) (*UserProfile, error) {
	return s.repo.GetProfile(ctx, uid)
}

func (s *service) FindMatchCandidates(ctx context.Context, uid string) ([]*MatchCandidate, error) {
	if cached, ok := s.cache.Get(ctx, uid); ok {
		return []*MatchCandidate{cached}, nil
	}

	requester, err := s.repo.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.FindEligible(ctx, oppositeGender(requester.Gender), uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	if len(pool) == 0 {
		RecordEmptyPool()
		return []*MatchCandidate{}, nil
	}

	scored := make([]*MatchCandidate, 0, len(pool))
	for _, profile := range pool {
		candidate := s.scorer.Score(requester, profile)
		RecordCandidateScore(float64(candidate.Score))
		scored = append(scored, candidate)
	}

	// Score descending; equal scores break deterministically on uid so the
	// same pool always yields the same destiny candidate.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Profile.UID < scored[j].Profile.UID
	})

	top := scored[0]
	RecordDestinyPick()
	s.cache.Set(ctx, uid, top)

	return []*MatchCandidate{top}, nil
}

func oppositeGender(gender string) string {
	if gender == GenderMale {
		return GenderFemale
	}
	return GenderMale
}
