package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

const opportunityColumns = `id, fingerprint, event_id, kind, sport, league, match_id, home_team, away_team,
	commence_time, market, legs, edge_percent, source, ingested_at, expired`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// SaveOpportunity inserts an opportunity. An existing fingerprint is an
// idempotent no-op reported as inserted=false.
func (r *Repository) SaveOpportunity(ctx context.Context, opp *models.Opportunity) (bool, error) {
	market, err := json.Marshal(opp.Market)
	if err != nil {
		return false, fmt.Errorf("failed to marshal market: %w", err)
	}
	legs, err := json.Marshal(opp.Legs)
	if err != nil {
		return false, fmt.Errorf("failed to marshal legs: %w", err)
	}

	res, err := r.exec(ctx, r.db, `
		INSERT INTO opportunities (`+opportunityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (fingerprint) DO NOTHING`,
		opp.ID, opp.Fingerprint, opp.EventID, string(opp.Kind), opp.Sport, opp.League,
		opp.Match.ID, opp.Match.HomeTeam, opp.Match.AwayTeam, opp.Match.CommenceTime.UTC(),
		string(market), string(legs), opp.EdgePercent, opp.Source, opp.IngestedAt.UTC(), opp.Expired,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert opportunity: %w", err)
	}

	inserted, err := affected(res)
	if err != nil {
		return false, err
	}
	if !inserted {
		r.logger.Debug().Str("fingerprint", opp.Fingerprint).Msg("opportunity already persisted")
	}
	return inserted, nil
}

// GetOpportunity loads one opportunity by id
func (r *Repository) GetOpportunity(ctx context.Context, id string) (*models.Opportunity, error) {
	row := r.queryRow(ctx, r.db, `SELECT `+opportunityColumns+` FROM opportunities WHERE id = ?`, id)
	opp, err := scanOpportunity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return opp, nil
}

// ListActiveOpportunities returns unexpired opportunities whose match has
// not started, oldest first. Used to warm the pool at startup.
func (r *Repository) ListActiveOpportunities(ctx context.Context, now time.Time) ([]*models.Opportunity, error) {
	rows, err := r.query(ctx, r.db, `
		SELECT `+opportunityColumns+` FROM opportunities
		WHERE expired = ? AND commence_time > ?
		ORDER BY ingested_at`, false, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	var out []*models.Opportunity
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		out = append(out, opp)
	}
	return out, rows.Err()
}

// MarkOpportunitiesExpired flags opportunities pruned from the pool
func (r *Repository) MarkOpportunitiesExpired(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	args := []interface{}{true}
	for _, id := range ids {
		args = append(args, id)
	}
	if _, err := r.exec(ctx, r.db,
		`UPDATE opportunities SET expired = ? WHERE id IN (`+placeholders(len(ids))+`)`, args...); err != nil {
		return fmt.Errorf("failed to expire opportunities: %w", err)
	}
	return nil
}

func scanOpportunity(s rowScanner) (*models.Opportunity, error) {
	var (
		opp          models.Opportunity
		kind         string
		market, legs string
	)
	if err := s.Scan(
		&opp.ID, &opp.Fingerprint, &opp.EventID, &kind, &opp.Sport, &opp.League,
		&opp.Match.ID, &opp.Match.HomeTeam, &opp.Match.AwayTeam, &opp.Match.CommenceTime,
		&market, &legs, &opp.EdgePercent, &opp.Source, &opp.IngestedAt, &opp.Expired,
	); err != nil {
		return nil, err
	}
	opp.Kind = models.OpportunityKind(kind)
	opp.Match.CommenceTime = opp.Match.CommenceTime.UTC()
	opp.IngestedAt = opp.IngestedAt.UTC()

	if err := json.Unmarshal([]byte(market), &opp.Market); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market: %w", err)
	}
	if err := json.Unmarshal([]byte(legs), &opp.Legs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal legs: %w", err)
	}
	return &opp, nil
}
