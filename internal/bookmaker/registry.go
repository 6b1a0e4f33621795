package bookmaker

import (
	"sort"
	"strings"
	"unicode"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// Resolver turns raw bookmaker text into a canonical sportsbook id, or
// models.UnknownSportsbook, and knows which books the odds feed quotes.
type Resolver interface {
	Resolve(raw string, ocr bool) string
	APISupported(id string) bool
}

// Book describes one canonical sportsbook
type Book struct {
	ID      string
	Aliases []string
	// FeedKey is the odds feed bookmaker key; empty when the feed does not quote the book
	FeedKey string
}

// DefaultBooks is the built-in sportsbook catalog
var DefaultBooks = []Book{
	{ID: "betsson", Aliases: []string{"betsson", "betssoncom"}, FeedKey: "betsson"},
	{ID: "coolbet", Aliases: []string{"coolbet", "coolbetcom"}, FeedKey: "coolbet"},
	{ID: "pinnacle", Aliases: []string{"pinnacle", "pinny", "pinnaclesports"}, FeedKey: "pinnacle"},
	{ID: "unibet", Aliases: []string{"unibet", "unibeteu"}, FeedKey: "unibet_eu"},
	{ID: "betfair", Aliases: []string{"betfair", "betfairexchange", "betfairsportsbook"}, FeedKey: "betfair_ex_eu"},
	{ID: "williamhill", Aliases: []string{"williamhill", "willhill", "caesars", "caesarssportsbook"}, FeedKey: "williamhill_us"},
	{ID: "draftkings", Aliases: []string{"draftkings", "dk", "draftkingssportsbook"}, FeedKey: "draftkings"},
	{ID: "fanduel", Aliases: []string{"fanduel", "fd", "fanduelsportsbook"}, FeedKey: "fanduel"},
	{ID: "betmgm", Aliases: []string{"betmgm", "mgm"}, FeedKey: "betmgm"},
	{ID: "betrivers", Aliases: []string{"betrivers", "rivers"}, FeedKey: "betrivers"},
	{ID: "bovada", Aliases: []string{"bovada", "bovadalv"}, FeedKey: "bovada"},
	{ID: "betonline", Aliases: []string{"betonline", "betonlineag"}, FeedKey: "betonlineag"},
	{ID: "mybookie", Aliases: []string{"mybookie", "mybookieag"}, FeedKey: "mybookieag"},
	{ID: "bet365", Aliases: []string{"bet365", "b365"}},
	{ID: "betway", Aliases: []string{"betway"}},
	{ID: "bwin", Aliases: []string{"bwin"}},
	{ID: "888sport", Aliases: []string{"888sport", "888"}},
	{ID: "leovegas", Aliases: []string{"leovegas"}, FeedKey: "leovegas"},
	{ID: "nordicbet", Aliases: []string{"nordicbet"}, FeedKey: "nordicbet"},
}

// Registry is a static catalog resolver
type Registry struct {
	byAlias map[string]string
	books   map[string]Book
	aliases []string
}

// NewRegistry builds a registry from the given books
func NewRegistry(books []Book) *Registry {
	r := &Registry{
		byAlias: make(map[string]string),
		books:   make(map[string]Book, len(books)),
	}
	for _, b := range books {
		r.books[b.ID] = b
		r.byAlias[squash(b.ID)] = b.ID
		for _, a := range b.Aliases {
			r.byAlias[squash(a)] = b.ID
		}
	}
	for a := range r.byAlias {
		r.aliases = append(r.aliases, a)
	}
	sort.Strings(r.aliases)
	return r
}

// Resolve maps raw text to a canonical id. OCR text additionally tolerates
// common glyph confusions and a single edit.
func (r *Registry) Resolve(raw string, ocr bool) string {
	key := squash(raw)
	if key == "" {
		return models.UnknownSportsbook
	}
	if id, ok := r.byAlias[key]; ok {
		return id
	}
	if !ocr {
		return models.UnknownSportsbook
	}

	fixed := ocrReplacer.Replace(key)
	if id, ok := r.byAlias[fixed]; ok {
		return id
	}
	if len(fixed) < 5 {
		return models.UnknownSportsbook
	}
	for _, alias := range r.aliases {
		if len(alias) >= 5 && withinOneEdit(fixed, alias) {
			return r.byAlias[alias]
		}
	}
	return models.UnknownSportsbook
}

// FeedKey returns the odds feed key of a canonical book
func (r *Registry) FeedKey(id string) (string, bool) {
	b, ok := r.books[id]
	if !ok || b.FeedKey == "" {
		return "", false
	}
	return b.FeedKey, true
}

// APISupported reports whether the odds feed can re-quote the book
func (r *Registry) APISupported(id string) bool {
	_, ok := r.FeedKey(id)
	return ok
}

// FeedKeys returns the feed keys for the given canonical books, or for every
// supported book when ids is empty.
func (r *Registry) FeedKeys(ids ...string) []string {
	if len(ids) == 0 {
		for id := range r.books {
			ids = append(ids, id)
		}
	}
	var keys []string
	seen := make(map[string]bool)
	for _, id := range ids {
		if k, ok := r.FeedKey(id); ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

var ocrReplacer = strings.NewReplacer("0", "o", "1", "l", "5", "s", "rn", "m", "vv", "w")

func squash(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func withinOneEdit(a, b string) bool {
	la, lb := len(a), len(b)
	if la-lb > 1 || lb-la > 1 {
		return false
	}
	i, j, edits := 0, 0, 0
	for i < la && j < lb {
		if a[i] == b[j] {
			i++
			j++
			continue
		}
		edits++
		if edits > 1 {
			return false
		}
		switch {
		case la > lb:
			i++
		case lb > la:
			j++
		default:
			i++
			j++
		}
	}
	return edits+(la-i)+(lb-j) <= 1
}

// RestrictFeed returns a copy of books in which only the listed ids keep
// their feed key. An empty list leaves the catalog unchanged.
func RestrictFeed(books []Book, ids []string) []Book {
	out := make([]Book, len(books))
	copy(out, books)
	if len(ids) == 0 {
		return out
	}
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[strings.ToLower(strings.TrimSpace(id))] = true
	}
	for i := range out {
		if !keep[out[i].ID] {
			out[i].FeedKey = ""
		}
	}
	return out
}
