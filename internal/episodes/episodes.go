package episodes

import "fmt"

// Episode is an immutable snapshot of a single episode as returned by the
// listing source. AirDate is an ISO-8601 calendar date and may be empty when
// the network has not scheduled the episode yet.
type Episode struct {
	ID      int    `json:"id"`
	Season  int    `json:"season"`
	Number  int    `json:"number"`
	Name    string `json:"name"`
	AirDate string `json:"airdate"`
	Summary string `json:"summary"`
}

// Code renders the conventional SxEy episode label.
func (e Episode) Code() string {
	return fmt.Sprintf("S%dE%d", e.Season, e.Number)
}

// AiredRecord is the persisted shape of the last aired episode a
// notification was sent for.
type AiredRecord struct {
	Season  int    `json:"season"`
	Number  int    `json:"number"`
	Name    string `json:"name"`
	AirDate string `json:"airdate"`
}

// Matches reports whether the record refers to the same (season, number) as
// the given episode. Name and airdate edits to an already-notified episode do
// not count as a new episode.
func (r AiredRecord) Matches(e Episode) bool {
	return r.Season == e.Season && r.Number == e.Number
}

// RecordOf captures the persisted fields of an episode.
func RecordOf(e Episode) AiredRecord {
	return AiredRecord{
		Season:  e.Season,
		Number:  e.Number,
		Name:    e.Name,
		AirDate: e.AirDate,
	}
}

// Split partitions eps by comparing each airdate against today, an ISO-8601
// date string. Airdate on or before today puts the episode in aired; a later
// airdate puts it in upcoming. Episodes with no airdate land in neither set.
// Source order is preserved in both slices.
//
// ISO-8601 dates compare correctly as strings, so no parsing is needed here.
func Split(eps []Episode, today string) (aired, upcoming []Episode) {
	for _, ep := range eps {
		switch {
		case ep.AirDate == "":
		case ep.AirDate <= today:
			aired = append(aired, ep)
		default:
			upcoming = append(upcoming, ep)
		}
	}
	return aired, upcoming
}

// Latest returns the element of aired with the maximum (airdate, season,
// number) tuple. Same-day multi-episode releases resolve deterministically to
// the highest-numbered episode. The second return is false for an empty input.
func Latest(aired []Episode) (Episode, bool) {
	if len(aired) == 0 {
		return Episode{}, false
	}
	best := aired[0]
	for _, ep := range aired[1:] {
		if laterThan(ep, best) {
			best = ep
		}
	}
	return best, true
}

func laterThan(a, b Episode) bool {
	if a.AirDate != b.AirDate {
		return a.AirDate > b.AirDate
	}
	if a.Season != b.Season {
		return a.Season > b.Season
	}
	return a.Number > b.Number
}

// FirstN returns up to n episodes from the front of eps in source order.
func FirstN(eps []Episode, n int) []Episode {
	if len(eps) <= n {
		return eps
	}
	return eps[:n]
}

// IDs extracts episode ids preserving order.
func IDs(eps []Episode) []int {
	if len(eps) == 0 {
		return nil
	}
	out := make([]int, len(eps))
	for i, ep := range eps {
		out[i] = ep.ID
	}
	return out
}
