package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// UpsertHealthScore stores one row per (user, book, day); a same-day
// recompute updates it in place.
func (r *Repository) UpsertHealthScore(ctx context.Context, s *models.BookHealthScore) error {
	factors, err := json.Marshal(s.Factors)
	if err != nil {
		return fmt.Errorf("failed to marshal factors: %w", err)
	}

	if _, err := r.exec(ctx, r.db, `
		INSERT INTO book_health_scores
			(user_id, sportsbook, score_date, factors, total, level, months_until_limit,
			 limit_probability, total_bets, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, sportsbook, score_date) DO UPDATE SET
			factors            = excluded.factors,
			total              = excluded.total,
			level              = excluded.level,
			months_until_limit = excluded.months_until_limit,
			limit_probability  = excluded.limit_probability,
			total_bets         = excluded.total_bets,
			calculated_at      = excluded.calculated_at`,
		s.UserID, s.Sportsbook, s.Date, string(factors), s.Total, string(s.Level), s.MonthsUntilLimit,
		s.LimitProbability, s.TotalBets, s.CalculatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to upsert health score: %w", err)
	}
	return nil
}

// ListHealthScores returns stored scores for a user at a book on or after
// sinceDate (YYYY-MM-DD), oldest first.
func (r *Repository) ListHealthScores(ctx context.Context, userID, sportsbook, sinceDate string) ([]models.BookHealthScore, error) {
	rows, err := r.query(ctx, r.db, `
		SELECT user_id, sportsbook, score_date, factors, total, level, months_until_limit,
			limit_probability, total_bets, calculated_at
		FROM book_health_scores
		WHERE user_id = ? AND sportsbook = ? AND score_date >= ?
		ORDER BY score_date`, userID, sportsbook, sinceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list health scores: %w", err)
	}
	defer rows.Close()

	var out []models.BookHealthScore
	for rows.Next() {
		var (
			s       models.BookHealthScore
			factors string
			level   string
		)
		if err := rows.Scan(&s.UserID, &s.Sportsbook, &s.Date, &factors, &s.Total, &level,
			&s.MonthsUntilLimit, &s.LimitProbability, &s.TotalBets, &s.CalculatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan health score: %w", err)
		}
		if err := json.Unmarshal([]byte(factors), &s.Factors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal factors: %w", err)
		}
		s.Level = models.HealthLevel(level)
		s.CalculatedAt = s.CalculatedAt.UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}
