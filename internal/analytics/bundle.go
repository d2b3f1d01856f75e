package analytics

import (
	"sort"
	"time"
)

// RankedEntry is one row of a top-N view.
type RankedEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// UserSummary is the per-user row shown in the operator table.
type UserSummary struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Provider  string     `json:"provider"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	Devices   int        `json:"devices"`
	Tickets   int        `json:"tickets"`
}

// Bundle is the full set of aggregates computed from one store snapshot.
// It is a pure function of the snapshot and the `now` passed to
// ComputeAggregates; nothing in it carries state across calls.
type Bundle struct {
	GeneratedAt time.Time `json:"generatedAt"`

	Users        []UserSummary `json:"users"`
	UsersTotal   int           `json:"usersTotal"`
	DevicesTotal int           `json:"devicesTotal"`
	TicketsTotal int           `json:"ticketsTotal"`

	TrialsTotal     int            `json:"trialsTotal"`
	Recent1d        int            `json:"recent1d"`
	Recent7d        int            `json:"recent7d"`
	Recent30d       int            `json:"recent30d"`
	DailyActive     map[string]int `json:"dailyActive"`
	NewDevicesDaily map[string]int `json:"newDevicesDaily"`

	ConsentTotal  int     `json:"consentTotal"`
	ConsentAgreed int     `json:"consentAgreed"`
	ConsentRate   float64 `json:"consentRate"`

	EmailMappings int64 `json:"emailMappings"`

	Providers         map[string]int `json:"providers"`
	DeviceModels      map[string]int `json:"deviceModels"`
	TopDeviceModels   []RankedEntry  `json:"topDeviceModels"`
	DevicesByProvider map[string]int `json:"devicesByProvider"`

	Routes       map[string]int `json:"routes"`
	TopRoutes    []RankedEntry  `json:"topRoutes"`
	TrainTypes   map[string]int `json:"trainTypes"`
	SeatClasses  map[string]int `json:"seatClasses"`
	ServiceTypes map[string]int `json:"serviceTypes"`
}

// histogram counts labels while remembering first-seen order, so ranked
// views break count ties deterministically (stable insertion order).
type histogram struct {
	counts map[string]int
	order  []string
}

func newHistogram() *histogram {
	return &histogram{counts: make(map[string]int)}
}

func (h *histogram) add(label string) {
	if _, seen := h.counts[label]; !seen {
		h.order = append(h.order, label)
	}
	h.counts[label]++
}

// ranked returns the top n labels by strictly descending count. Equal counts
// keep first-seen order. Labels in skip are left out of the ranking.
func (h *histogram) ranked(n int, skip ...string) []RankedEntry {
	skipSet := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		skipSet[s] = struct{}{}
	}
	entries := make([]RankedEntry, 0, len(h.order))
	for _, label := range h.order {
		if _, drop := skipSet[label]; drop {
			continue
		}
		entries = append(entries, RankedEntry{Label: label, Count: h.counts[label]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
