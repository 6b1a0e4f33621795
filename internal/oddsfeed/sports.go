package oddsfeed

import "strings"

var leagueKeys = map[string]string{
	"NBA":        "basketball_nba",
	"WNBA":       "basketball_wnba",
	"NCAAB":      "basketball_ncaab",
	"EUROLEAGUE": "basketball_euroleague",
	"NFL":        "americanfootball_nfl",
	"NCAAF":      "americanfootball_ncaaf",
	"NHL":        "icehockey_nhl",
	"MLB":        "baseball_mlb",
	"EPL":        "soccer_epl",
	"MLS":        "soccer_usa_mls",
	"LA LIGA":    "soccer_spain_la_liga",
	"SERIE A":    "soccer_italy_serie_a",
	"BUNDESLIGA": "soccer_germany_bundesliga",
	"UCL":        "soccer_uefa_champs_league",
	"UFC":        "mma_mixed_martial_arts",
}

// SportKey maps a league name to the feed sport key. Leagues the feed does
// not carry return false.
func SportKey(league string) (string, bool) {
	key, ok := leagueKeys[strings.ToUpper(strings.TrimSpace(league))]
	return key, ok
}
