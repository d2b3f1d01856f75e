package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/railpick/railpick/backend/dashboard-service/internal/devicenames"
	"github.com/railpick/railpick/backend/dashboard-service/internal/models"
	"github.com/railpick/railpick/backend/dashboard-service/internal/store"
)

const dayKeyFormat = "2006-01-02"

// Options tunes the aggregator. Zero values fall back to the dashboard
// defaults (top 15 models, top 10 routes, empty exclusion set).
type Options struct {
	AdminEmails []string
	TopModels   int
	TopRoutes   int
}

// Service computes aggregate bundles from the read-only store. It holds no
// mutable state; every call recomputes from a fresh snapshot.
type Service struct {
	reader      store.Reader
	names       *devicenames.Table
	adminEmails map[string]struct{}
	topModels   int
	topRoutes   int
}

func NewService(r store.Reader, names *devicenames.Table, opts Options) *Service {
	admins := make(map[string]struct{}, len(opts.AdminEmails))
	for _, e := range opts.AdminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	topModels := opts.TopModels
	if topModels <= 0 {
		topModels = 15
	}
	topRoutes := opts.TopRoutes
	if topRoutes <= 0 {
		topRoutes = 10
	}
	return &Service{
		reader:      r,
		names:       names,
		adminEmails: admins,
		topModels:   topModels,
		topRoutes:   topRoutes,
	}
}

// ComputeAggregates builds the full bundle for the current store snapshot.
// Idempotent for a fixed snapshot and fixed now. Any failed store query
// aborts the whole computation; there are no partial bundles.
func (s *Service) ComputeAggregates(ctx context.Context, now time.Time) (*Bundle, error) {
	b := &Bundle{
		GeneratedAt:       now,
		DailyActive:       map[string]int{},
		NewDevicesDaily:   map[string]int{},
		Providers:         map[string]int{},
		DevicesByProvider: map[string]int{},
		TrainTypes:        map[string]int{},
		SeatClasses:       map[string]int{},
		ServiceTypes:      map[string]int{},
	}

	// Users minus the admin exclusion set. Everything below only ever sees
	// the remaining accounts.
	allUsers, err := s.reader.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(allUsers))
	for _, u := range allUsers {
		if _, admin := s.adminEmails[strings.ToLower(strings.TrimSpace(u.Email))]; admin {
			continue
		}
		users = append(users, u)
	}
	b.UsersTotal = len(users)

	modelHist := newHistogram()
	routeHist := newHistogram()

	for _, u := range users {
		provider := u.LastLoginProvider
		if provider == "" {
			provider = "unknown"
		}
		b.Providers[provider]++

		devices, err := s.reader.ListDevices(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		tickets, err := s.reader.ListTickets(ctx, u.ID)
		if err != nil {
			return nil, err
		}

		b.Users = append(b.Users, UserSummary{
			ID:        u.ID,
			Name:      u.DisplayName,
			Provider:  provider,
			LastLogin: u.LastLogin,
			Devices:   len(devices),
			Tickets:   len(tickets),
		})
		b.DevicesTotal += len(devices)
		b.TicketsTotal += len(tickets)
		b.DevicesByProvider[provider] += len(devices)

		for _, d := range devices {
			raw := d.DeviceModel
			if raw == "" {
				raw = devicenames.Unknown
			}
			modelHist.add(s.names.Resolve(raw))
		}

		for _, t := range tickets {
			if t.DepartureStation != "" && t.ArrivalStation != "" {
				routeHist.add(t.DepartureStation + " → " + t.ArrivalStation)
			}
			if t.TrainType != "" {
				b.TrainTypes[t.TrainType]++
			}
			if t.SeatClass != "" {
				b.SeatClasses[t.SeatClass]++
			}
			if t.ServiceType != "" {
				b.ServiceTypes[t.ServiceType]++
			}
		}
	}

	b.DeviceModels = modelHist.counts
	b.TopDeviceModels = modelHist.ranked(s.topModels, devicenames.Unknown)
	b.Routes = routeHist.counts
	b.TopRoutes = routeHist.ranked(s.topRoutes)

	// Anonymous trial installs. Trials without a last_seen count toward the
	// total only; the recency counters use whole-day age, inclusive bounds.
	trials, err := s.reader.ListDeviceTrials(ctx)
	if err != nil {
		return nil, err
	}
	b.TrialsTotal = len(trials)
	for _, tr := range trials {
		if tr.LastSeen != nil {
			days := wholeDays(now.Sub(*tr.LastSeen))
			if days <= 1 {
				b.Recent1d++
			}
			if days <= 7 {
				b.Recent7d++
			}
			if days <= 30 {
				b.Recent30d++
			}
			b.DailyActive[tr.LastSeen.UTC().Format(dayKeyFormat)]++
		}
		if created := trialCreation(tr); created != nil {
			b.NewDevicesDaily[created.UTC().Format(dayKeyFormat)]++
		}
	}

	consents, err := s.reader.ListConsentLogs(ctx)
	if err != nil {
		return nil, err
	}
	b.ConsentTotal = len(consents)
	for _, c := range consents {
		if c.AutoReserveConsent {
			b.ConsentAgreed++
		}
	}
	b.ConsentRate = float64(b.ConsentAgreed) / float64(max(b.ConsentTotal, 1))

	emails, err := s.reader.CountEmailMappings(ctx)
	if err != nil {
		return nil, err
	}
	b.EmailMappings = emails

	return b, nil
}

// wholeDays floors a duration to whole days, matching calendar-age
// semantics for recency buckets.
func wholeDays(d time.Duration) int {
	days := int(d.Hours() / 24)
	if d < 0 && d.Truncate(24*time.Hour) != d {
		days--
	}
	return days
}

// trialCreation picks the creation timestamp for the new-devices histogram:
// created_at when present, otherwise first_install_time.
func trialCreation(t models.DeviceTrial) *time.Time {
	if t.CreatedAt != nil {
		return t.CreatedAt
	}
	return t.FirstInstallTime
}
