package lifecycle

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) SaveDecision(ctx context.Context, decision *MeetingDecision) error {
	query := `
        INSERT INTO meeting_decisions (match_id, user_uid, decision, decided_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (match_id, user_uid) DO UPDATE SET
            decision = EXCLUDED.decision,
            decided_at = EXCLUDED.decided_at
    `

	_, err := r.db.ExecContext(ctx, query, decision.MatchID, decision.UserUID, decision.Decision, decision.DecidedAt)
	return err
}

func (r *postgresRepository) GetDecision(ctx context.Context, matchID, userUID string) (*MeetingDecision, error) {
	var decision MeetingDecision
	query := `
        SELECT match_id, user_uid, decision, decided_at
        FROM meeting_decisions
        WHERE match_id = $1 AND user_uid = $2
    `

	err := r.db.GetContext(ctx, &decision, query, matchID, userUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &decision, nil
}
