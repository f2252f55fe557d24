package matching

import "time"

// Gender values; the pool is matched opposite-binary
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// UserProfile is a member of the matching pool. Location is optional: a
// profile that never reported one still matches, its distance term just
// contributes nothing to the score.
type UserProfile struct {
	UID               string     `json:"uid" db:"uid"`
	Name              string     `json:"name" db:"name"`
	Age               int        `json:"age" db:"age"`
	Gender            string     `json:"gender" db:"gender"`
	Deficit           string     `json:"deficit" db:"deficit"`
	Lat               *float64   `json:"lat,omitempty" db:"location_lat"`
	Lon               *float64   `json:"lon,omitempty" db:"location_lon"`
	LocationUpdatedAt *time.Time `json:"location_updated_at,omitempty" db:"location_updated_at"`
	DayCount          int        `json:"day_count" db:"day_count"`
	IsMatchingActive  bool       `json:"is_matching_active" db:"is_matching_active"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

// HasLocation reports whether the profile carries a usable coordinate pair
func (p *UserProfile) HasLocation() bool {
	return p.Lat != nil && p.Lon != nil
}

// MatchCandidate is a scored pool member. Computed per request, never persisted.
type MatchCandidate struct {
	Profile      *UserProfile `json:"profile"`
	Score        int          `json:"score"`
	DistanceKm   float64      `json:"distance_km"`
	DistanceText string       `json:"distance_text"`
}
