package service

import (
	"strconv"
	"strings"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// GradeBet settles a moneyline, spread or total bet against a completed
// game. ok is false when the game is not final or the bet cannot be graded
// from the score alone.
func GradeBet(bet *models.TrackedBet, game *models.FeedScore) (models.BetResult, bool) {
	if !game.Completed {
		return "", false
	}

	home, away, ok := finalScore(game)
	if !ok {
		return "", false
	}

	// the bet may list the teams the other way round
	swapped := !models.TeamsMatch(bet.HomeTeam, game.HomeTeam) && models.TeamsMatch(bet.HomeTeam, game.AwayTeam)
	if swapped {
		home, away = away, home
	}

	switch bet.SelectionType {
	case models.SelectionHomeML:
		return compare(home, away), true
	case models.SelectionAwayML:
		return compare(away, home), true
	case models.SelectionHomeSpread, models.SelectionAwaySpread:
		if bet.Line == nil {
			return "", false
		}
		team, opp := home, away
		if bet.SelectionType == models.SelectionAwaySpread {
			team, opp = away, home
		}
		return compare(team+*bet.Line, opp), true
	case models.SelectionOver, models.SelectionUnder:
		if bet.Line == nil {
			return "", false
		}
		total := home + away
		if bet.SelectionType == models.SelectionOver {
			return compare(total, *bet.Line), true
		}
		return compare(*bet.Line, total), true
	}
	return "", false
}

// compare grades "ours beats theirs": more wins, equal pushes
func compare(ours, theirs float64) models.BetResult {
	switch {
	case ours > theirs:
		return models.ResultWon
	case ours < theirs:
		return models.ResultLost
	default:
		return models.ResultPush
	}
}

func finalScore(game *models.FeedScore) (home, away float64, ok bool) {
	var gotHome, gotAway bool
	for _, s := range game.Scores {
		v, err := strconv.ParseFloat(strings.TrimSpace(s.Score), 64)
		if err != nil {
			return 0, 0, false
		}
		switch {
		case strings.EqualFold(s.Name, game.HomeTeam):
			home, gotHome = v, true
		case strings.EqualFold(s.Name, game.AwayTeam):
			away, gotAway = v, true
		}
	}
	return home, away, gotHome && gotAway
}
