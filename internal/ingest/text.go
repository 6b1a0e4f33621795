package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	percentRe  = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*%`)
	marketRe   = regexp.MustCompile(`\[([^\]]+)\]`)
	sportRe    = regexp.MustCompile(`\(([^()]+)\)\s*$`)
	matchSepRe = regexp.MustCompile(`(?i)\s+(vs\.?|@)\s+`)
	timeRe     = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})`)
	labelRe    = regexp.MustCompile(`(?i)^(match|game|event|arb|arbitrage|surebet|middle|value bet|plus ev|positive ev|\+ev)\s*[:\-]?\s*`)

	// <selection> <american> @ <bookmaker>
	legAtRe = regexp.MustCompile(`^(.+?)\s+([+-]\d{3,5})\s+@\s+(.+)$`)
	// <bookmaker> <stake?> <american>
	legBookRe = regexp.MustCompile(`^([A-Za-z0-9][\w .'&-]*?)\s+(?:[$€£]?\d+(?:[.,]\d+)?\s+)?([+-]\d{3,5})$`)
)

var kindKeywords = []struct {
	word string
	kind string
}{
	{"arbitrage", "arbitrage"},
	{"surebet", "arbitrage"},
	{"arb ", "arbitrage"},
	{"middle", "middle"},
	{"+ev", "positive_ev"},
	{"positive ev", "positive_ev"},
	{"plus ev", "positive_ev"},
	{"value bet", "positive_ev"},
}

// parseText runs the notification grammar over a subject and body. Lines
// that fit no rule are kept as the pending selection for the next
// bookmaker-first leg line.
func parseText(subject, body, source string) draft {
	d := draft{Source: source}
	if d.Source == "" {
		d.Source = SourceText
	}

	text := strings.TrimSpace(subject + "\n" + body)
	d.Kind = detectKind(text)
	if m := percentRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			d.Percent = &v
		}
	}

	pending := ""
	for _, raw := range strings.Split(text, "\n") {
		line := cleanLine(raw)
		if line == "" {
			continue
		}

		if m := legAtRe.FindStringSubmatch(line); m != nil {
			american, _ := strconv.Atoi(m[2])
			d.Legs = append(d.Legs, rawLeg{
				Selection: strings.TrimSpace(m[1]),
				American:  american,
				Book:      strings.TrimSpace(m[3]),
			})
			pending = ""
			continue
		}

		if m := legBookRe.FindStringSubmatch(line); m != nil && pending != "" && !startsWithDirection(m[1]) {
			american, _ := strconv.Atoi(m[2])
			d.Legs = append(d.Legs, rawLeg{
				Selection: pending,
				American:  american,
				Book:      strings.TrimSpace(m[1]),
			})
			pending = ""
			continue
		}

		rest := line
		if m := marketRe.FindStringSubmatch(rest); m != nil {
			if d.Market == "" {
				d.Market = strings.TrimSpace(m[1])
			}
			rest = strings.TrimSpace(marketRe.ReplaceAllString(rest, " "))
		}
		if m := sportRe.FindStringSubmatch(rest); m != nil {
			if d.Sport == "" && d.League == "" {
				d.Sport, d.League = splitSportLeague(m[1])
			}
			rest = strings.TrimSpace(sportRe.ReplaceAllString(rest, ""))
		}
		if m := timeRe.FindStringSubmatch(rest); m != nil {
			if t, err := time.Parse("2006-01-02 15:04", m[1]+" "+m[2]); err == nil && d.Commence == nil {
				d.Commence = &t
			}
			rest = strings.TrimSpace(timeRe.ReplaceAllString(rest, ""))
		}

		if d.Match == "" && matchSepRe.MatchString(rest) {
			d.Match = cleanMatch(rest)
			continue
		}
		if rest == "" || percentRe.MatchString(rest) || detectKind(rest) != "" {
			continue
		}
		pending = rest
	}

	return d
}

func detectKind(text string) string {
	lower := strings.ToLower(text) + " "
	for _, kw := range kindKeywords {
		if strings.Contains(lower, kw.word) {
			return kw.kind
		}
	}
	return ""
}

func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '-' && r != '[' && r != '('
	})
}

func cleanMatch(s string) string {
	s = percentRe.ReplaceAllString(s, "")
	s = labelRe.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(s)
}

func startsWithDirection(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "over") || strings.HasPrefix(lower, "under")
}

// splitSportLeague reads "Basketball / NBA" or a lone "NBA"
func splitSportLeague(s string) (string, string) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	one := strings.TrimSpace(parts[0])
	if _, ok := leagueSports[strings.ToUpper(one)]; ok {
		return "", one
	}
	return one, ""
}

// splitMatch returns (home, away). "A @ B" lists the away team first.
func splitMatch(s string) (string, string, bool) {
	loc := matchSepRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return "", "", false
	}
	left := strings.TrimSpace(s[:loc[0]])
	right := strings.TrimSpace(s[loc[1]:])
	if left == "" || right == "" {
		return "", "", false
	}
	if s[loc[2]:loc[3]] == "@" {
		return right, left, true
	}
	return left, right, true
}
