package aggregate

import "sort"

// DefaultTopK is the leaderboard size used across the dashboards.
const DefaultTopK = 5

// RankEntry is one leaderboard row. Key is the grouping key (student id or
// violation name), Label the display name and Detail an optional secondary
// line such as the class.
type RankEntry struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
	Count  int    `json:"count"`
}

// Leaderboard is the generic top-K-by-count reducer behind the most-absent,
// most-late, most-violations, most-observations and most-frequent-violation
// boards. Keys only exist once incremented, so zero counts can never appear
// in the output, and ties keep first-seen input order.
type Leaderboard struct {
	entries map[string]*RankEntry
	order   []string
}

// NewLeaderboard constructs an empty leaderboard.
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{entries: map[string]*RankEntry{}}
}

// Add increments the count for key, registering it on first sight.
func (l *Leaderboard) Add(key, label, detail string) {
	entry, ok := l.entries[key]
	if !ok {
		entry = &RankEntry{Key: key, Label: label, Detail: detail}
		l.entries[key] = entry
		l.order = append(l.order, key)
	}
	entry.Count++
}

// Top returns up to k entries sorted by count descending. The sort is
// stable over insertion order, so equal counts rank in the order their keys
// first appeared.
func (l *Leaderboard) Top(k int) []RankEntry {
	if k <= 0 {
		k = DefaultTopK
	}

	ranked := make([]RankEntry, 0, len(l.order))
	for _, key := range l.order {
		ranked = append(ranked, *l.entries[key])
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
