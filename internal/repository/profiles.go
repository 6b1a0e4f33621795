package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

const profileColumns = `user_id, sportsbook, account_age_months, estimated_monthly_bets, was_active_before,
	deposit_bracket, activity_sports, activity_casino, activity_poker, activity_live,
	is_limited, limited_at, onboarded_at`

// UpsertProfile stores the onboarding answers for a user at a book. The
// limit state is owned by RecordLimitEvent and is not overwritten.
func (r *Repository) UpsertProfile(ctx context.Context, p *models.UserBookProfile) error {
	if _, err := r.exec(ctx, r.db, `
		INSERT INTO user_book_profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, sportsbook) DO UPDATE SET
			account_age_months     = excluded.account_age_months,
			estimated_monthly_bets = excluded.estimated_monthly_bets,
			was_active_before      = excluded.was_active_before,
			deposit_bracket        = excluded.deposit_bracket,
			activity_sports        = excluded.activity_sports,
			activity_casino        = excluded.activity_casino,
			activity_poker         = excluded.activity_poker,
			activity_live          = excluded.activity_live`,
		p.UserID, p.Sportsbook, p.AccountAgeMonths, p.EstimatedMonthlyBets, p.WasActiveBefore,
		p.DepositBracket, p.Activity.Sports, p.Activity.Casino, p.Activity.Poker, p.Activity.Live,
		p.IsLimited, nullTime(p.LimitedAt), p.OnboardedAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetProfile loads a user's profile at one book
func (r *Repository) GetProfile(ctx context.Context, userID, sportsbook string) (*models.UserBookProfile, error) {
	row := r.queryRow(ctx, r.db,
		`SELECT `+profileColumns+` FROM user_book_profiles WHERE user_id = ? AND sportsbook = ?`,
		userID, sportsbook)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// ListProfiles returns a user's profiles, or every active profile across
// users when userID is empty. Limited profiles are only included for a
// specific user.
func (r *Repository) ListProfiles(ctx context.Context, userID string) ([]*models.UserBookProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_book_profiles`
	var args []interface{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	} else {
		query += ` WHERE is_limited = ?`
		args = append(args, false)
	}
	query += ` ORDER BY user_id, sportsbook`

	rows, err := r.query(ctx, r.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var out []*models.UserBookProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// RecordLimitEvent stores the event and marks the profile limited in one
// transaction. A missing profile is created with unknown onboarding data.
func (r *Repository) RecordLimitEvent(ctx context.Context, ev *models.LimitEvent) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := r.exec(ctx, tx, `
			INSERT INTO limit_events (id, user_id, sportsbook, kind, note, occurred_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO NOTHING`,
			ev.ID, ev.UserID, ev.Sportsbook, ev.Kind, ev.Note, ev.OccurredAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert limit event: %w", err)
		}
		if ok, err := affected(res); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("limit event %s: %w", ev.ID, ErrDuplicate)
		}

		if _, err := r.exec(ctx, tx, `
			INSERT INTO user_book_profiles (user_id, sportsbook, is_limited, limited_at, onboarded_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (user_id, sportsbook) DO UPDATE SET
				is_limited = excluded.is_limited,
				limited_at = excluded.limited_at`,
			ev.UserID, ev.Sportsbook, true, ev.OccurredAt.UTC(), ev.OccurredAt.UTC()); err != nil {
			return fmt.Errorf("failed to mark profile limited: %w", err)
		}
		return nil
	})
}

// ListLimitEvents returns a user's limit events, newest first
func (r *Repository) ListLimitEvents(ctx context.Context, userID string) ([]*models.LimitEvent, error) {
	rows, err := r.query(ctx, r.db, `
		SELECT id, user_id, sportsbook, kind, note, occurred_at
		FROM limit_events WHERE user_id = ? ORDER BY occurred_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list limit events: %w", err)
	}
	defer rows.Close()

	var out []*models.LimitEvent
	for rows.Next() {
		var ev models.LimitEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Sportsbook, &ev.Kind, &ev.Note, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan limit event: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		out = append(out, &ev)
	}
	return out, rows.Err()
}

func scanProfile(s rowScanner) (*models.UserBookProfile, error) {
	var (
		p         models.UserBookProfile
		limitedAt sql.NullTime
	)
	if err := s.Scan(
		&p.UserID, &p.Sportsbook, &p.AccountAgeMonths, &p.EstimatedMonthlyBets, &p.WasActiveBefore,
		&p.DepositBracket, &p.Activity.Sports, &p.Activity.Casino, &p.Activity.Poker, &p.Activity.Live,
		&p.IsLimited, &limitedAt, &p.OnboardedAt,
	); err != nil {
		return nil, err
	}
	p.LimitedAt = timePtr(limitedAt)
	p.OnboardedAt = p.OnboardedAt.UTC()
	return &p, nil
}
