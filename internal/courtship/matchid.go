package courtship

import "strings"

// matchIDSeparator joins the two uids of a canonical match id. User ids are
// opaque alphanumeric tokens and never contain it.
const matchIDSeparator = "_"

// GenerateMatchID derives the canonical, order-independent match id for a
// pair of uids: GenerateMatchID(a, b) == GenerateMatchID(b, a).
func GenerateMatchID(uidA, uidB string) string {
	if uidA > uidB {
		uidA, uidB = uidB, uidA
	}
	return uidA + matchIDSeparator + uidB
}

// MatchParticipants splits a canonical match id back into its two uids.
// The second return is false when the id is not in canonical form.
func MatchParticipants(matchID string) (string, string, bool) {
	first, second, ok := strings.Cut(matchID, matchIDSeparator)
	if !ok || first == "" || second == "" {
		return "", "", false
	}
	return first, second, true
}
