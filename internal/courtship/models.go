package courtship

import "time"

// Letter statuses
const (
	LetterStatusSent    = "sent"
	LetterStatusRead    = "read"
	LetterStatusReplied = "replied"
	LetterStatusMatched = "matched"
)

// Match statuses
const (
	MatchStatusActive = "active"
)

// Letter is a one-shot handshake from one user to another. At most one
// letter may exist per ordered (from, to) pair.
type Letter struct {
	ID        string    `json:"id" db:"id"`
	FromUID   string    `json:"from_uid" db:"from_uid"`
	ToUID     string    `json:"to_uid" db:"to_uid"`
	FromName  string    `json:"from_name" db:"from_name"`
	Content   string    `json:"content" db:"content"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MatchRecord is the canonical record of an engaged pair. Its id is an
// order-independent function of the two uids, so either party resolves the
// same record.
type MatchRecord struct {
	MatchID   string    `json:"match_id" db:"match_id"`
	User1UID  string    `json:"user1_uid" db:"user1_uid"`
	User2UID  string    `json:"user2_uid" db:"user2_uid"`
	Status    string    `json:"status" db:"status"`
	DayCount  int       `json:"day_count" db:"day_count"`
	MatchedAt time.Time `json:"matched_at" db:"matched_at"`
}

// Users returns both participants of the match
func (m *MatchRecord) Users() []string {
	return []string{m.User1UID, m.User2UID}
}

// HasUser reports whether uid is a participant of the match
func (m *MatchRecord) HasUser(uid string) bool {
	return m.User1UID == uid || m.User2UID == uid
}
