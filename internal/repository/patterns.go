package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// SavePattern upserts a correlation pattern by id
func (r *Repository) SavePattern(ctx context.Context, p *models.CorrelationPattern) error {
	condition, err := json.Marshal(p.Condition)
	if err != nil {
		return fmt.Errorf("failed to marshal condition: %w", err)
	}
	outcomes, err := json.Marshal(p.Outcomes)
	if err != nil {
		return fmt.Errorf("failed to marshal outcomes: %w", err)
	}

	if _, err := r.exec(ctx, r.db, `
		INSERT INTO correlation_patterns
			(id, name, sport, pattern_condition, outcomes, independent_prob, joint_prob,
			 sample_size, min_edge, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name              = excluded.name,
			sport             = excluded.sport,
			pattern_condition = excluded.pattern_condition,
			outcomes          = excluded.outcomes,
			independent_prob  = excluded.independent_prob,
			joint_prob        = excluded.joint_prob,
			sample_size       = excluded.sample_size,
			min_edge          = excluded.min_edge,
			source            = excluded.source`,
		p.ID, p.Name, p.Sport, string(condition), string(outcomes), p.IndependentProb, p.JointProb,
		p.SampleSize, p.MinEdge, p.Source, p.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to save pattern %s: %w", p.ID, err)
	}
	return nil
}

// ListPatterns returns every stored correlation pattern ordered by id
func (r *Repository) ListPatterns(ctx context.Context) ([]models.CorrelationPattern, error) {
	rows, err := r.query(ctx, r.db, `
		SELECT id, name, sport, pattern_condition, outcomes, independent_prob, joint_prob,
			sample_size, min_edge, source, created_at
		FROM correlation_patterns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	defer rows.Close()

	var out []models.CorrelationPattern
	for rows.Next() {
		var (
			p                   models.CorrelationPattern
			condition, outcomes string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Sport, &condition, &outcomes, &p.IndependentProb,
			&p.JointProb, &p.SampleSize, &p.MinEdge, &p.Source, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		if err := json.Unmarshal([]byte(condition), &p.Condition); err != nil {
			return nil, fmt.Errorf("failed to unmarshal condition of %s: %w", p.ID, err)
		}
		if err := json.Unmarshal([]byte(outcomes), &p.Outcomes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outcomes of %s: %w", p.ID, err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}
