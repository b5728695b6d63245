package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pulsehub/pulsehub/internal/model"
)

// Common errors for poll repository operations.
var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option not found in poll")
	ErrDuplicateVote  = errors.New("voter already voted on this poll")
)

// CreatePoll inserts a new poll with its embedded option document.
func (r *Repository) CreatePoll(ctx context.Context, poll *model.Poll) error {
	options, err := model.EncodeOptions(poll.Options)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO polls (id, user_id, question, options, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.pool.Exec(ctx, query,
		poll.ID,
		poll.UserID,
		poll.Question,
		options,
		poll.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to create poll: %w", err)
	}

	return nil
}

// GetPollByID retrieves a poll with its decoded option list.
func (r *Repository) GetPollByID(ctx context.Context, id string) (*model.Poll, error) {
	query := `
		SELECT id, user_id, question, options, created_at
		FROM polls
		WHERE id = $1
	`

	poll, err := scanPoll(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll by ID: %w", err)
	}

	return poll, nil
}

// ListPolls retrieves all polls in insertion order with decoded options.
// Returns an empty slice when no polls exist.
func (r *Repository) ListPolls(ctx context.Context) ([]*model.Poll, error) {
	query := `
		SELECT id, user_id, question, options, created_at
		FROM polls
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	polls := make([]*model.Poll, 0)
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}

	return polls, nil
}

// ListPollsByUser retrieves the polls created by one user in insertion order.
func (r *Repository) ListPollsByUser(ctx context.Context, userID string) ([]*model.Poll, error) {
	query := `
		SELECT id, user_id, question, options, created_at
		FROM polls
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls by user: %w", err)
	}
	defer rows.Close()

	polls := make([]*model.Poll, 0)
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, poll)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}

	return polls, nil
}

// CastVote applies exactly one vote from one voter to one option of one poll.
//
// The whole operation runs in a single transaction: the poll row is locked
// with SELECT ... FOR UPDATE so concurrent casts on the same poll serialize
// (casts on different polls proceed concurrently), and the vote row is
// inserted with ON CONFLICT DO NOTHING against the (poll_id, voter_id)
// unique constraint - zero rows affected is the authoritative duplicate
// signal, not a prior read. An unknown option rolls the transaction back, so
// no vote row survives a failed cast.
//
// Returns the full updated option list on success.
func (r *Repository) CastVote(ctx context.Context, pollID string, optionID int, voterID string) ([]model.Option, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the poll row for the duration of the cast.
	var optionsDoc []byte
	err = tx.QueryRow(ctx,
		`SELECT options FROM polls WHERE id = $1 FOR UPDATE`,
		pollID,
	).Scan(&optionsDoc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to lock poll: %w", err)
	}

	// Conditional insert: the unique constraint decides duplicates.
	tag, err := tx.Exec(ctx, `
		INSERT INTO votes (voter_id, poll_id, option_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (poll_id, voter_id) DO NOTHING
	`, voterID, pollID, optionID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to insert vote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrDuplicateVote
	}

	options, err := model.DecodeOptions(optionsDoc)
	if err != nil {
		return nil, err
	}

	matched := -1
	for i := range options {
		if options[i].ID == optionID {
			matched = i
			break
		}
	}
	if matched == -1 {
		// Rollback discards the conditional insert above.
		return nil, ErrOptionNotFound
	}

	options[matched].Votes++

	encoded, err := model.EncodeOptions(options)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE polls SET options = $2 WHERE id = $1`,
		pollID, encoded,
	); err != nil {
		return nil, fmt.Errorf("failed to update poll tallies: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit vote: %w", err)
	}

	return options, nil
}

// HasVoted reports whether a vote row exists for the (poll, voter) pair.
func (r *Repository) HasVoted(ctx context.Context, pollID, voterID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM votes WHERE poll_id = $1 AND voter_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, pollID, voterID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}

	return exists, nil
}

// CountVotes returns the number of vote rows recorded for a poll.
func (r *Repository) CountVotes(ctx context.Context, pollID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM votes WHERE poll_id = $1`,
		pollID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}

	return count, nil
}

// scanPoll scans a single row into a Poll model, decoding the option document.
func scanPoll(row pgx.Row) (*model.Poll, error) {
	var poll model.Poll
	var optionsDoc []byte
	err := row.Scan(
		&poll.ID,
		&poll.UserID,
		&poll.Question,
		&optionsDoc,
		&poll.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	poll.Options, err = model.DecodeOptions(optionsDoc)
	if err != nil {
		return nil, err
	}

	return &poll, nil
}
