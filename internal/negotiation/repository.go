package negotiation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) UpsertProposal(ctx context.Context, proposal *Proposal) error {
	// per-key last-write-wins: whichever write lands last owns the channel
	query := `
        INSERT INTO proposals (match_id, attribute, proposed_by, value, status, is_counter_offer, created_at, accepted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NULL)
        ON CONFLICT (match_id, attribute) DO UPDATE SET
            proposed_by = EXCLUDED.proposed_by,
            value = EXCLUDED.value,
            status = EXCLUDED.status,
            is_counter_offer = EXCLUDED.is_counter_offer,
            created_at = EXCLUDED.created_at,
            accepted_at = NULL
    `

	_, err := r.db.ExecContext(
		ctx, query,
		proposal.MatchID, proposal.Attribute, proposal.ProposedBy,
		proposal.Value, proposal.Status, proposal.IsCounterOffer, proposal.CreatedAt,
	)
	return err
}

func (r *postgresRepository) GetProposal(ctx context.Context, matchID, attribute string) (*Proposal, error) {
	var proposal Proposal
	query := `
        SELECT match_id, attribute, proposed_by, value, status, is_counter_offer, created_at, accepted_at
        FROM proposals
        WHERE match_id = $1 AND attribute = $2
    `

	err := r.db.GetContext(ctx, &proposal, query, matchID, attribute)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &proposal, nil
}

func (r *postgresRepository) AcceptProposal(ctx context.Context, matchID, attribute string, acceptedAt time.Time) error {
	query := `
        UPDATE proposals
        SET status = $3, accepted_at = $4
        WHERE match_id = $1 AND attribute = $2
    `

	_, err := r.db.ExecContext(ctx, query, matchID, attribute, ProposalStatusAccepted, acceptedAt)
	return err
}

func (r *postgresRepository) CreateConfirmedMeeting(ctx context.Context, meeting *ConfirmedMeeting) error {
	// the snapshot freezes on first write; repeated confirms change nothing
	query := `
        INSERT INTO confirmed_meetings (match_id, date, place, status, confirmed_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (match_id) DO NOTHING
    `

	_, err := r.db.ExecContext(
		ctx, query,
		meeting.MatchID, meeting.Date, meeting.Place, meeting.Status, meeting.ConfirmedAt,
	)
	return err
}

func (r *postgresRepository) GetConfirmedMeeting(ctx context.Context, matchID string) (*ConfirmedMeeting, error) {
	var meeting ConfirmedMeeting
	query := `
        SELECT match_id, date, place, status, confirmed_at
        FROM confirmed_meetings
        WHERE match_id = $1
    `

	err := r.db.GetContext(ctx, &meeting, query, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMeetingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &meeting, nil
}
