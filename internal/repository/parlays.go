package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

const parlayColumns = `id, fingerprint, sportsbook, strategy, risk_profile, risk_level, combined_odds,
	pattern_id, correlation_strength, edge, status, replaced_by, created_at, updated_at`

// ParlayFilter narrows ListParlays. Empty fields match everything.
type ParlayFilter struct {
	Status      models.ParlayStatus
	Sportsbooks []string
	Profiles    []models.RiskProfile
	Limit       int
}

// SaveParlay inserts a parlay and its legs in one transaction. An existing
// fingerprint is an idempotent no-op reported as inserted=false.
func (r *Repository) SaveParlay(ctx context.Context, p *models.Parlay) (bool, error) {
	inserted := false
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		inserted, err = r.insertParlay(ctx, tx, p)
		return err
	})
	return inserted, err
}

// UpdateParlay rewrites a parlay's pricing, status and legs
func (r *Repository) UpdateParlay(ctx context.Context, p *models.Parlay) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return r.updateParlay(ctx, tx, p)
	})
}

// ReplaceParlay marks old as replaced and inserts its replacement atomically
func (r *Repository) ReplaceParlay(ctx context.Context, old, replacement *models.Parlay) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		inserted, err := r.insertParlay(ctx, tx, replacement)
		if err != nil {
			return err
		}
		if !inserted {
			return fmt.Errorf("replacement parlay %s: %w", replacement.Fingerprint, ErrDuplicate)
		}
		return r.updateParlay(ctx, tx, old)
	})
}

// GetParlay loads a parlay with its legs
func (r *Repository) GetParlay(ctx context.Context, id string) (*models.Parlay, error) {
	row := r.queryRow(ctx, r.db, `SELECT `+parlayColumns+` FROM parlays WHERE id = ?`, id)
	p, err := scanParlay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get parlay: %w", err)
	}

	if err := r.loadLegs(ctx, []*models.Parlay{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// ListParlays returns parlays matching the filter, best edge first
func (r *Repository) ListParlays(ctx context.Context, filter ParlayFilter) ([]*models.Parlay, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if len(filter.Sportsbooks) > 0 {
		where = append(where, "sportsbook IN ("+placeholders(len(filter.Sportsbooks))+")")
		for _, b := range filter.Sportsbooks {
			args = append(args, b)
		}
	}
	if len(filter.Profiles) > 0 {
		where = append(where, "risk_profile IN ("+placeholders(len(filter.Profiles))+")")
		for _, p := range filter.Profiles {
			args = append(args, string(p))
		}
	}

	query := `SELECT ` + parlayColumns + ` FROM parlays`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY edge DESC, id`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.query(ctx, r.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list parlays: %w", err)
	}
	defer rows.Close()

	var out []*models.Parlay
	for rows.Next() {
		p, err := scanParlay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parlay: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadLegs(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExpireStartedParlays expires active parlays whose first leg has started
// and returns their ids.
func (r *Repository) ExpireStartedParlays(ctx context.Context, now time.Time) ([]string, error) {
	var ids []string
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := r.query(ctx, tx,
			`SELECT id FROM parlays WHERE status = ? AND first_commence_time <= ?`,
			string(models.ParlayActive), now.UTC())
		if err != nil {
			return fmt.Errorf("failed to select started parlays: %w", err)
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		args := []interface{}{string(models.ParlayExpired), now.UTC()}
		for _, id := range ids {
			args = append(args, id)
		}
		if _, err := r.exec(ctx, tx,
			`UPDATE parlays SET status = ?, updated_at = ? WHERE id IN (`+placeholders(len(ids))+`)`,
			args...); err != nil {
			return fmt.Errorf("failed to expire parlays: %w", err)
		}
		return nil
	})
	return ids, err
}

func (r *Repository) insertParlay(ctx context.Context, tx *sql.Tx, p *models.Parlay) (bool, error) {
	res, err := r.exec(ctx, tx, `
		INSERT INTO parlays (`+parlayColumns+`, first_commence_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (fingerprint) DO NOTHING`,
		p.ID, p.Fingerprint, p.Sportsbook, string(p.Strategy), string(p.RiskProfile), string(p.RiskLevel),
		p.CombinedOdds, p.PatternID, p.CorrelationStrength, p.Edge, string(p.Status), p.ReplacedBy,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(), firstCommence(p),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert parlay: %w", err)
	}
	inserted, err := affected(res)
	if err != nil || !inserted {
		return false, err
	}
	return true, r.insertLegs(ctx, tx, p)
}

func (r *Repository) updateParlay(ctx context.Context, tx *sql.Tx, p *models.Parlay) error {
	res, err := r.exec(ctx, tx, `
		UPDATE parlays SET combined_odds = ?, pattern_id = ?, correlation_strength = ?, edge = ?,
			status = ?, replaced_by = ?, first_commence_time = ?, updated_at = ?
		WHERE id = ?`,
		p.CombinedOdds, p.PatternID, p.CorrelationStrength, p.Edge,
		string(p.Status), p.ReplacedBy, firstCommence(p), p.UpdatedAt.UTC(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update parlay: %w", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("parlay %s: %w", p.ID, ErrNotFound)
	}

	if _, err := r.exec(ctx, tx, `DELETE FROM parlay_legs WHERE parlay_id = ?`, p.ID); err != nil {
		return fmt.Errorf("failed to delete parlay legs: %w", err)
	}
	return r.insertLegs(ctx, tx, p)
}

func (r *Repository) insertLegs(ctx context.Context, tx *sql.Tx, p *models.Parlay) error {
	for i := range p.Legs {
		leg := &p.Legs[i]
		data, err := json.Marshal(leg)
		if err != nil {
			return fmt.Errorf("failed to marshal leg: %w", err)
		}
		if _, err := r.exec(ctx, tx, `
			INSERT INTO parlay_legs (parlay_id, leg_index, leg_fingerprint, match_id, leg)
			VALUES (?, ?, ?, ?, ?)`,
			p.ID, i, leg.Fingerprint, leg.Match.ID, string(data)); err != nil {
			return fmt.Errorf("failed to insert parlay leg: %w", err)
		}
	}
	return nil
}

func (r *Repository) loadLegs(ctx context.Context, parlays []*models.Parlay) error {
	if len(parlays) == 0 {
		return nil
	}
	byID := make(map[string]*models.Parlay, len(parlays))
	args := make([]interface{}, 0, len(parlays))
	for _, p := range parlays {
		byID[p.ID] = p
		args = append(args, p.ID)
	}

	rows, err := r.query(ctx, r.db, `
		SELECT parlay_id, leg FROM parlay_legs
		WHERE parlay_id IN (`+placeholders(len(args))+`)
		ORDER BY parlay_id, leg_index`, args...)
	if err != nil {
		return fmt.Errorf("failed to load parlay legs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return fmt.Errorf("failed to scan parlay leg: %w", err)
		}
		var leg models.Leg
		if err := json.Unmarshal([]byte(data), &leg); err != nil {
			return fmt.Errorf("failed to unmarshal parlay leg: %w", err)
		}
		if p, ok := byID[id]; ok {
			p.Legs = append(p.Legs, leg)
		}
	}
	return rows.Err()
}

func scanParlay(s rowScanner) (*models.Parlay, error) {
	var (
		p                                models.Parlay
		strategy, profile, level, status string
	)
	if err := s.Scan(
		&p.ID, &p.Fingerprint, &p.Sportsbook, &strategy, &profile, &level, &p.CombinedOdds,
		&p.PatternID, &p.CorrelationStrength, &p.Edge, &status, &p.ReplacedBy, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Strategy = models.Strategy(strategy)
	p.RiskProfile = models.RiskProfile(profile)
	p.RiskLevel = models.RiskLevel(level)
	p.Status = models.ParlayStatus(status)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

func firstCommence(p *models.Parlay) time.Time {
	var first time.Time
	for i := range p.Legs {
		t := p.Legs[i].Match.CommenceTime
		if first.IsZero() || t.Before(first) {
			first = t
		}
	}
	return first.UTC()
}
