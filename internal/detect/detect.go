package detect

import (
	"slices"

	"airmail/internal/episodes"
)

// upcomingWindow is how many future episodes a notification covers. The same
// truncation governs what gets persisted as already-notified.
const upcomingWindow = 5

// Kind enumerates the possible outcomes of a single check.
type Kind int

const (
	// NoChange means nothing new to report, including the degraded case
	// where the source returned no usable data.
	NoChange Kind = iota
	// NewAired means an episode aired that no notification covered yet.
	NewAired
	// UpcomingChanged means the first-5 slate of future episodes differs
	// from the last notified one.
	UpcomingChanged
)

// String returns the lowercase label used in logs and the history store.
func (k Kind) String() string {
	switch k {
	case NewAired:
		return "new_aired"
	case UpcomingChanged:
		return "upcoming_changed"
	default:
		return "no_change"
	}
}

// Outcome carries the detected change and the payload needed to render it.
type Outcome struct {
	Kind Kind
	// Latest is the chosen aired episode; meaningful only for NewAired.
	Latest episodes.Episode
	// Upcoming is the truncated-to-5 future slate in source order. Populated
	// for both NewAired and UpcomingChanged so the email table and the
	// persisted upcoming state always agree.
	Upcoming []episodes.Episode
}

// Evaluate is a pure function of the freshly split episode sets and the two
// persisted state records. It never errors; a caller that failed to fetch
// should not call it and treat the run as NoChange instead.
//
// NewAired takes priority over UpcomingChanged: only one notification is sent
// per run. Upcoming comparison is order-sensitive on the first five ids, so a
// reorder without membership change still reports a change.
func Evaluate(aired, upcoming []episodes.Episode, prev *episodes.AiredRecord, prevIDs []int) Outcome {
	window := episodes.FirstN(upcoming, upcomingWindow)

	if latest, ok := episodes.Latest(aired); ok {
		if prev == nil || !prev.Matches(latest) {
			return Outcome{Kind: NewAired, Latest: latest, Upcoming: window}
		}
	}

	if len(window) > 0 && !slices.Equal(episodes.IDs(window), prevIDs) {
		return Outcome{Kind: UpcomingChanged, Upcoming: window}
	}

	return Outcome{Kind: NoChange}
}
