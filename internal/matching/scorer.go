package matching

import (
	"math"

	"destiny-backend/internal/geo"
)

// DistanceBucket maps distances strictly below UpTo kilometers to a sub-score
type DistanceBucket struct {
	UpTo  float64
	Score int
}

// AgeBucket maps age gaps of at most MaxGap years to a sub-score
type AgeBucket struct {
	MaxGap int
	Score  int
}

// ScoringConfig holds the weights and bucket thresholds for compatibility
// scoring. Injectable so edge buckets can be tested without literals scattered
// through the scorer.
type ScoringConfig struct {
	DistanceWeight float64
	AgeWeight      float64
	DeficitWeight  float64

	DistanceBuckets  []DistanceBucket
	DistanceFallback int

	AgeBuckets  []AgeBucket
	AgeFallback int

	DeficitMatchScore int
	DeficitMissScore  int

	// UnknownDistanceKm is the sentinel reported when either party has no
	// location. The distance term then contributes zero; we never guess a
	// location.
	UnknownDistanceKm float64
}

// DefaultScoringConfig returns the production scoring constants
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		DistanceWeight: 0.50,
		AgeWeight:      0.20,
		DeficitWeight:  0.30,

		DistanceBuckets: []DistanceBucket{
			{UpTo: 3, Score: 100},
			{UpTo: 5, Score: 90},
			{UpTo: 10, Score: 75},
			{UpTo: 20, Score: 60},
			{UpTo: 50, Score: 40},
			{UpTo: 100, Score: 20},
		},
		DistanceFallback: 5,

		AgeBuckets: []AgeBucket{
			{MaxGap: 2, Score: 100},
			{MaxGap: 4, Score: 80},
			{MaxGap: 6, Score: 60},
			{MaxGap: 10, Score: 40},
		},
		AgeFallback: 20,

		DeficitMatchScore: 100,
		DeficitMissScore:  50,

		UnknownDistanceKm: 999,
	}
}

// Scorer computes a weighted compatibility score between a requester and one
// candidate. Deterministic given identical inputs.
type Scorer struct {
	config ScoringConfig
}

func NewScorer(config ScoringConfig) *Scorer {
	return &Scorer{config: config}
}

// Score returns the candidate with its compatibility score, real or sentinel
// distance, and a display string for the distance.
func (s *Scorer) Score(requester, candidate *UserProfile) *MatchCandidate {
	distanceKm := s.config.UnknownDistanceKm
	distanceText := "unknown"
	distanceScore := 0

	if requester.HasLocation() && candidate.HasLocation() {
		distanceKm = geo.DistanceKm(*requester.Lat, *requester.Lon, *candidate.Lat, *candidate.Lon)
		distanceText = geo.FormatDistance(distanceKm)
		distanceScore = s.distanceScore(distanceKm)
	}

	ageScore := s.ageScore(absInt(requester.Age - candidate.Age))
	deficitScore := s.deficitScore(requester.Deficit, candidate.Deficit)

	total := s.config.DistanceWeight*float64(distanceScore) +
		s.config.AgeWeight*float64(ageScore) +
		s.config.DeficitWeight*float64(deficitScore)

	return &MatchCandidate{
		Profile:      candidate,
		Score:        int(math.Round(total)),
		DistanceKm:   distanceKm,
		DistanceText: distanceText,
	}
}

func (s *Scorer) distanceScore(km float64) int {
	for _, bucket := range s.config.DistanceBuckets {
		if km < bucket.UpTo {
			return bucket.Score
		}
	}
	return s.config.DistanceFallback
}

func (s *Scorer) ageScore(gap int) int {
	for _, bucket := range s.config.AgeBuckets {
		if gap <= bucket.MaxGap {
			return bucket.Score
		}
	}
	return s.config.AgeFallback
}

// deficitScore is an exact, case-sensitive comparison. No partial or fuzzy
// matching.
func (s *Scorer) deficitScore(a, b string) int {
	if a == b {
		return s.config.DeficitMatchScore
	}
	return s.config.DeficitMissScore
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
