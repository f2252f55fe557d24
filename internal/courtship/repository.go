package courtship

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// Letter methods

func (r *postgresRepository) CreateLetter(ctx context.Context, letter *Letter) error {
	query := `
        INSERT INTO letters (id, from_uid, to_uid, from_name, content, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (from_uid, to_uid) DO NOTHING
    `

	result, err := r.db.ExecContext(
		ctx, query,
		letter.ID, letter.FromUID, letter.ToUID,
		letter.FromName, letter.Content, letter.Status, letter.CreatedAt,
	)
	if err != nil {
		return err
	}

	// a concurrent duplicate loses the insert race
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDuplicateLetter
	}

	return nil
}

func (r *postgresRepository) GetLetter(ctx context.Context, id string) (*Letter, error) {
	var letter Letter
	query := `
        SELECT id, from_uid, to_uid, from_name, content, status, created_at
        FROM letters
        WHERE id = $1
    `

	err := r.db.GetContext(ctx, &letter, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLetterNotFound
	}
	if err != nil {
		return nil, err
	}

	return &letter, nil
}

func (r *postgresRepository) LetterExists(ctx context.Context, fromUID, toUID string) (bool, error) {
	var exists bool
	query := `
        SELECT EXISTS(
            SELECT 1 FROM letters
            WHERE from_uid = $1 AND to_uid = $2
        )
    `

	err := r.db.GetContext(ctx, &exists, query, fromUID, toUID)
	return exists, err
}

func (r *postgresRepository) GetReceivedLetters(ctx context.Context, uid string, limit int) ([]*Letter, error) {
	var letters []*Letter
	query := `
        SELECT id, from_uid, to_uid, from_name, content, status, created_at
        FROM letters
        WHERE to_uid = $1
        ORDER BY created_at DESC
        LIMIT $2
    `

	if err := r.db.SelectContext(ctx, &letters, query, uid, limit); err != nil {
		return nil, err
	}

	return letters, nil
}

func (r *postgresRepository) UpdateLetterStatus(ctx context.Context, id, status string) error {
	query := `UPDATE letters SET status = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *postgresRepository) HasSentLetters(ctx context.Context, uid string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM letters WHERE from_uid = $1)`

	err := r.db.GetContext(ctx, &exists, query, uid)
	return exists, err
}

func (r *postgresRepository) HasReceivedLetters(ctx context.Context, uid string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM letters WHERE to_uid = $1)`

	err := r.db.GetContext(ctx, &exists, query, uid)
	return exists, err
}

// Match methods

// AcceptMatch runs the whole mutual-accept transition in one transaction:
// upsert the record under its canonical id, pull both users out of the
// matching pool, and mark the connecting letters as matched. Re-running the
// same accept hits the ON CONFLICT path and changes nothing observable.
func (r *postgresRepository) AcceptMatch(ctx context.Context, record *MatchRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	matchQuery := `
        INSERT INTO match_records (match_id, user1_uid, user2_uid, status, day_count)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (match_id) DO UPDATE SET status = EXCLUDED.status
        RETURNING matched_at, day_count
    `

	err = tx.QueryRowxContext(
		ctx, matchQuery,
		record.MatchID, record.User1UID, record.User2UID, record.Status, record.DayCount,
	).Scan(&record.MatchedAt, &record.DayCount)
	if err != nil {
		return fmt.Errorf("failed to upsert match record: %w", err)
	}

	profileQuery := `
        UPDATE profiles SET is_matching_active = FALSE
        WHERE uid = $1 OR uid = $2
    `
	if _, err := tx.ExecContext(ctx, profileQuery, record.User1UID, record.User2UID); err != nil {
		return fmt.Errorf("failed to deactivate matching: %w", err)
	}

	letterQuery := `
        UPDATE letters SET status = $3
        WHERE (from_uid = $1 AND to_uid = $2) OR (from_uid = $2 AND to_uid = $1)
    `
	if _, err := tx.ExecContext(ctx, letterQuery, record.User1UID, record.User2UID, LetterStatusMatched); err != nil {
		return fmt.Errorf("failed to mark letters matched: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepository) GetMatch(ctx context.Context, matchID string) (*MatchRecord, error) {
	var record MatchRecord
	query := `
        SELECT match_id, user1_uid, user2_uid, status, day_count, matched_at
        FROM match_records
        WHERE match_id = $1
    `

	err := r.db.GetContext(ctx, &record, query, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postgresRepository) GetActiveMatch(ctx context.Context, uid string) (*MatchRecord, error) {
	var record MatchRecord
	query := `
        SELECT match_id, user1_uid, user2_uid, status, day_count, matched_at
        FROM match_records
        WHERE (user1_uid = $1 OR user2_uid = $1) AND status = $2
        ORDER BY matched_at DESC
        LIMIT 1
    `

	err := r.db.GetContext(ctx, &record, query, uid, MatchStatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}
