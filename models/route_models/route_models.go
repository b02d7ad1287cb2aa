package route_models

import (
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Route is a driving itinerary between two named places.
type Route struct {
	From            string   `json:"from"`
	To              string   `json:"to"`
	DistanceKm      float64  `json:"distanceKm"`
	DurationMinutes int      `json:"durationMinutes"`
	Steps           []string `json:"steps"`
}

// Placeholder distances for unknown pairs fall in [minSyntheticKm, maxSyntheticKm).
const (
	minSyntheticKm   = 40
	maxSyntheticKm   = 400
	averageSpeedKmph = 60
)

// RouteTable is a read-only lookup of hand-authored routes.
type RouteTable struct {
	routes  map[string]Route
	aliases map[string]string
	places  []string
}

// NewRouteTable indexes routes by normalized place pair. Aliases map
// alternative spellings to a canonical place name.
func NewRouteTable(routes []Route, aliases map[string]string) *RouteTable {
	t := &RouteTable{
		routes:  make(map[string]Route, len(routes)),
		aliases: make(map[string]string, len(aliases)),
	}
	for alias, canonical := range aliases {
		t.aliases[Normalize(alias)] = Normalize(canonical)
	}

	seen := map[string]struct{}{}
	for _, r := range routes {
		t.routes[pairKey(Normalize(r.From), Normalize(r.To))] = r
		for _, p := range []string{r.From, r.To} {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				t.places = append(t.places, p)
			}
		}
	}
	sort.Strings(t.places)
	return t
}

// Lookup returns the stored route for the pair in either direction.
func (t *RouteTable) Lookup(from, to string) (Route, bool) {
	a, b := t.canonical(from), t.canonical(to)
	if a == "" || b == "" {
		return Route{}, false
	}
	if r, ok := t.routes[pairKey(a, b)]; ok {
		return r.clone(), true
	}
	if r, ok := t.routes[pairKey(b, a)]; ok {
		return r.reversed(), true
	}
	return Route{}, false
}

// Resolve looks the pair up and synthesizes a placeholder when it is unknown.
// The boolean reports whether the route is an estimate.
func (t *RouteTable) Resolve(from, to string) (Route, bool) {
	if r, ok := t.Lookup(from, to); ok {
		return r, false
	}
	return Synthesize(from, to), true
}

// Places lists every place that appears in the table.
func (t *RouteTable) Places() []string {
	return append([]string(nil), t.places...)
}

func (t *RouteTable) canonical(place string) string {
	n := Normalize(place)
	if c, ok := t.aliases[n]; ok {
		return c
	}
	return n
}

// Synthesize builds a stable placeholder route for an unknown pair. The same
// pair always yields the same distance, regardless of direction.
func Synthesize(from, to string) Route {
	a, b := Normalize(from), Normalize(to)
	if b < a {
		a, b = b, a
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(a + "|" + b))

	km := float64(minSyntheticKm + int(h.Sum32()%(maxSyntheticKm-minSyntheticKm)))
	return Route{
		From:            strings.TrimSpace(from),
		To:              strings.TrimSpace(to),
		DistanceKm:      km,
		DurationMinutes: int(math.Round(km / averageSpeedKmph * 60)),
		Steps:           []string{strings.TrimSpace(from), strings.TrimSpace(to)},
	}
}

// FormatDuration renders minutes the way Senegalese drivers quote them: "4h30".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02d", h, m)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases, removes accents and punctuation, and collapses spaces
// so "Thiès", "thies" and " THIES " compare equal.
func Normalize(place string) string {
	s, _, err := transform.String(stripMarks, place)
	if err != nil {
		s = place
	}
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func pairKey(a, b string) string {
	return a + "|" + b
}

func (r Route) clone() Route {
	r.Steps = append([]string(nil), r.Steps...)
	return r
}

func (r Route) reversed() Route {
	out := r.clone()
	out.From, out.To = r.To, r.From
	for i, j := 0, len(out.Steps)-1; i < j; i, j = i+1, j-1 {
		out.Steps[i], out.Steps[j] = out.Steps[j], out.Steps[i]
	}
	return out
}
