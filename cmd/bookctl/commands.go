package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/repository"
)

var errUsage = errors.New("invalid arguments")

// store is the read side bookctl needs
type store interface {
	ListParlays(ctx context.Context, filter repository.ParlayFilter) ([]*models.Parlay, error)
	ListProfiles(ctx context.Context, userID string) ([]*models.UserBookProfile, error)
	ListHealthScores(ctx context.Context, userID, sportsbook, sinceDate string) ([]models.BookHealthScore, error)
}

func run(ctx context.Context, s store, args []string) error {
	switch args[0] {
	case "parlays":
		return runParlays(ctx, s, os.Stdout, args[1:])
	case "health":
		if len(args) != 2 {
			return errUsage
		}
		return runHealth(ctx, s, os.Stdout, args[1], time.Now().UTC())
	}
	return errUsage
}

func runParlays(ctx context.Context, s store, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("parlays", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	profile := fs.String("profile", "", "risk profile")
	book := fs.String("book", "", "sportsbook")
	limit := fs.Int("limit", 20, "max rows")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	filter := repository.ParlayFilter{Status: models.ParlayActive, Limit: *limit}
	if *profile != "" {
		p, err := models.ParseRiskProfile(*profile)
		if err != nil {
			return err
		}
		filter.Profiles = []models.RiskProfile{p}
	}
	if *book != "" {
		filter.Sportsbooks = []string{strings.ToLower(*book)}
	}

	parlays, err := s.ListParlays(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list parlays: %w", err)
	}
	if len(parlays) == 0 {
		fmt.Fprintln(out, "no active parlays")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("ID", "Book", "Strategy", "Profile", "Legs", "Odds", "Edge %", "First start")
	for _, p := range parlays {
		table.Append(
			shortID(p.ID),
			p.Sportsbook,
			string(p.Strategy),
			string(p.RiskProfile),
			fmt.Sprintf("%d", len(p.Legs)),
			fmt.Sprintf("%.2f", p.CombinedOdds),
			fmt.Sprintf("%.1f", p.Edge),
			firstStart(p).Format("2006-01-02 15:04"),
		)
	}
	table.Render()
	return nil
}

func runHealth(ctx context.Context, s store, out io.Writer, userID string, now time.Time) error {
	profiles, err := s.ListProfiles(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(profiles) == 0 {
		fmt.Fprintf(out, "no sportsbook profiles for %s\n", userID)
		return nil
	}

	since := now.AddDate(0, 0, -30).Format("2006-01-02")

	table := tablewriter.NewWriter(out)
	table.Header("Book", "Date", "Score", "Level", "Months left", "Limit prob", "Bets", "Limited")
	for _, p := range profiles {
		scores, err := s.ListHealthScores(ctx, userID, p.Sportsbook, since)
		if err != nil {
			return fmt.Errorf("failed to list scores for %s: %w", p.Sportsbook, err)
		}
		limited := "no"
		if p.IsLimited {
			limited = "yes"
		}
		if len(scores) == 0 {
			table.Append(p.Sportsbook, "-", "-", "-", "-", "-", "-", limited)
			continue
		}
		latest := scores[len(scores)-1]
		table.Append(
			p.Sportsbook,
			latest.Date,
			fmt.Sprintf("%d", latest.Total),
			string(latest.Level),
			fmt.Sprintf("%.1f", latest.MonthsUntilLimit),
			fmt.Sprintf("%.0f%%", latest.LimitProbability*100),
			fmt.Sprintf("%d", latest.TotalBets),
			limited,
		)
	}
	table.Render()
	return nil
}

func firstStart(p *models.Parlay) time.Time {
	var first time.Time
	for i := range p.Legs {
		t := p.Legs[i].Match.CommenceTime
		if first.IsZero() || t.Before(first) {
			first = t
		}
	}
	return first.UTC()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
