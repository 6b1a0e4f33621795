package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

const betColumns = `id, user_id, sportsbook, source, opportunity_id, sport, league, market, selection_type,
	selection, line, home_team, away_team, commence_time, placed_at, stake, stake_rounded, odds_taken,
	closing_odds, clv, result, seconds_after_post`

// SaveBet inserts a tracked bet
func (r *Repository) SaveBet(ctx context.Context, b *models.TrackedBet) error {
	var secs sql.NullInt64
	if b.SecondsAfterPost != nil {
		secs = sql.NullInt64{Int64: int64(*b.SecondsAfterPost), Valid: true}
	}

	res, err := r.exec(ctx, r.db, `
		INSERT INTO tracked_bets (`+betColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		b.ID, b.UserID, b.Sportsbook, string(b.Source), b.OpportunityID, b.Sport, b.League, b.Market,
		string(b.SelectionType), b.Selection, nullFloat(b.Line), b.HomeTeam, b.AwayTeam,
		nullTime(b.CommenceTime), b.PlacedAt.UTC(), b.Stake.String(), b.StakeRounded, b.OddsTaken,
		nullFloat(b.ClosingOdds), nullFloat(b.CLV), string(b.Result), secs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bet: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("bet %s: %w", b.ID, ErrDuplicate)
	}
	return nil
}

// UpdateBet writes the fields set after placement: closing odds, CLV and result
func (r *Repository) UpdateBet(ctx context.Context, b *models.TrackedBet) error {
	res, err := r.exec(ctx, r.db,
		`UPDATE tracked_bets SET closing_odds = ?, clv = ?, result = ? WHERE id = ?`,
		nullFloat(b.ClosingOdds), nullFloat(b.CLV), string(b.Result), b.ID)
	if err != nil {
		return fmt.Errorf("failed to update bet: %w", err)
	}
	if ok, err := affected(res); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("bet %s: %w", b.ID, ErrNotFound)
	}
	return nil
}

// GetBet loads one tracked bet
func (r *Repository) GetBet(ctx context.Context, id string) (*models.TrackedBet, error) {
	row := r.queryRow(ctx, r.db, `SELECT `+betColumns+` FROM tracked_bets WHERE id = ?`, id)
	b, err := scanBet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	return b, nil
}

// ListBets returns a user's bets at one book in placement order
func (r *Repository) ListBets(ctx context.Context, userID, sportsbook string) ([]models.TrackedBet, error) {
	return r.listBets(ctx,
		`WHERE user_id = ? AND sportsbook = ? ORDER BY placed_at, id`, userID, sportsbook)
}

// CountBets counts a user's bets at one book
func (r *Repository) CountBets(ctx context.Context, userID, sportsbook string) (int, error) {
	var n int
	if err := r.queryRow(ctx, r.db,
		`SELECT COUNT(*) FROM tracked_bets WHERE user_id = ? AND sportsbook = ?`,
		userID, sportsbook).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count bets: %w", err)
	}
	return n, nil
}

// ListBetsAwaitingClose returns bets without closing odds whose event starts in [from, to]
func (r *Repository) ListBetsAwaitingClose(ctx context.Context, from, to time.Time) ([]models.TrackedBet, error) {
	return r.listBets(ctx,
		`WHERE closing_odds IS NULL AND commence_time IS NOT NULL AND commence_time >= ? AND commence_time <= ?
		ORDER BY commence_time, id`, from.UTC(), to.UTC())
}

// ListUnsettledBets returns bets without a result whose event started before the cutoff
func (r *Repository) ListUnsettledBets(ctx context.Context, startedBefore time.Time) ([]models.TrackedBet, error) {
	return r.listBets(ctx,
		`WHERE result = '' AND commence_time IS NOT NULL AND commence_time <= ?
		ORDER BY commence_time, id`, startedBefore.UTC())
}

func (r *Repository) listBets(ctx context.Context, clause string, args ...interface{}) ([]models.TrackedBet, error) {
	rows, err := r.query(ctx, r.db, `SELECT `+betColumns+` FROM tracked_bets `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	defer rows.Close()

	var out []models.TrackedBet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func scanBet(s rowScanner) (*models.TrackedBet, error) {
	var (
		b                    models.TrackedBet
		source, selType, res string
		stake                string
		line, closing, clv   sql.NullFloat64
		commence             sql.NullTime
		secs                 sql.NullInt64
	)
	if err := s.Scan(
		&b.ID, &b.UserID, &b.Sportsbook, &source, &b.OpportunityID, &b.Sport, &b.League, &b.Market,
		&selType, &b.Selection, &line, &b.HomeTeam, &b.AwayTeam, &commence, &b.PlacedAt, &stake,
		&b.StakeRounded, &b.OddsTaken, &closing, &clv, &res, &secs,
	); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(stake)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stake %q: %w", stake, err)
	}
	b.Stake = amount
	b.Source = models.OpportunityKind(source)
	b.SelectionType = models.SelectionType(selType)
	b.Result = models.BetResult(res)
	b.Line = floatPtr(line)
	b.ClosingOdds = floatPtr(closing)
	b.CLV = floatPtr(clv)
	b.CommenceTime = timePtr(commence)
	b.PlacedAt = b.PlacedAt.UTC()
	if secs.Valid {
		v := int(secs.Int64)
		b.SecondsAfterPost = &v
	}
	return &b, nil
}
