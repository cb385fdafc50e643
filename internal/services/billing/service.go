// Package billing drives the data-fetch pipeline: a periodic ticker and two
// independently guarded refresh tracks, one for subscriptions and one for
// usage statistics.
package billing

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rightcode-tools/rightcode-tui/internal/api"
	"github.com/rightcode-tools/rightcode-tui/internal/config"
	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

// AuthProvider supplies the resolved credential and settings snapshot for
// each pipeline run.
type AuthProvider interface {
	ResolveAuth() models.ResolvedAuth
	Settings() config.Settings
}

// Event represents a billing service event.
type Event struct {
	Error         error
	Subscriptions *models.SubscriptionListResult
	Usage         *models.UsageStats
	At            time.Time
	Type          EventType
}

// EventType defines the type of billing event.
type EventType int

const (
	// EventSubscriptionsUpdated carries a fresh subscription list.
	EventSubscriptionsUpdated EventType = iota
	// EventSubscriptionsError reports a failed subscriptions fetch.
	EventSubscriptionsError
	// EventUsageUpdated carries fresh usage statistics.
	EventUsageUpdated
	// EventUsageError reports a failed usage fetch.
	EventUsageError
)

// UsageRange is the date window and bucket size for usage-stats fetches.
type UsageRange struct {
	StartDate   string
	EndDate     string
	Granularity models.Granularity
}

// DefaultUsageRange covers the last seven days at day granularity.
func DefaultUsageRange(now time.Time) UsageRange {
	return UsageRange{
		StartDate:   now.AddDate(0, 0, -6).Format("2006-01-02"),
		EndDate:     now.Format("2006-01-02"),
		Granularity: models.GranularityDay,
	}
}

// Service owns the refresh state: two single-flight guards and the periodic
// ticker. A trigger while a track is fetching is dropped, not queued.
type Service struct {
	client   *api.Client
	provider AuthProvider

	eventChan chan Event
	stopChan  chan struct{}

	subsInFlight  atomic.Bool
	usageInFlight atomic.Bool

	mu         sync.Mutex
	tickerStop chan struct{}
	usageRange UsageRange
}

// New creates the billing service and arms the periodic ticker from the
// current settings. It does not trigger an initial refresh; the caller does
// that once its consumers are subscribed.
func New(client *api.Client, provider AuthProvider) *Service {
	s := &Service{
		client:     client,
		provider:   provider,
		eventChan:  make(chan Event, 100),
		stopChan:   make(chan struct{}),
		usageRange: DefaultUsageRange(time.Now()),
	}

	settings := provider.Settings()
	s.Rearm(settings.RefreshInterval())
	return s
}

// Events returns the event channel.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// UsageRange returns the current usage window.
func (s *Service) UsageRange() UsageRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usageRange
}

// SetUsageRange changes the usage window and triggers a usage refresh.
func (s *Service) SetUsageRange(r UsageRange) {
	s.mu.Lock()
	s.usageRange = r
	s.mu.Unlock()
	s.RefreshUsage()
}

// RefreshAll triggers both tracks. Tracks already fetching drop the trigger.
func (s *Service) RefreshAll() {
	s.RefreshSubscriptions()
	s.RefreshUsage()
}

// RefreshSubscriptions triggers the subscriptions track. Returns false when
// a fetch was already in flight and the trigger was dropped.
func (s *Service) RefreshSubscriptions() bool {
	if !s.subsInFlight.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer s.subsInFlight.Store(false)
		s.fetchSubscriptions()
	}()
	return true
}

// RefreshUsage triggers the usage-stats track. Returns false when a fetch
// was already in flight and the trigger was dropped.
func (s *Service) RefreshUsage() bool {
	if !s.usageInFlight.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer s.usageInFlight.Store(false)
		s.fetchUsage()
	}()
	return true
}

func (s *Service) fetchSubscriptions() {
	settings := s.provider.Settings()
	s.client.SetTimeout(settings.RequestTimeout())

	result, err := s.client.FetchSubscriptions(context.Background(), s.provider.ResolveAuth())
	if err != nil {
		s.sendEvent(Event{Type: EventSubscriptionsError, Error: err, At: time.Now()})
		return
	}

	result.Subscriptions = models.FilterExpired(
		result.Subscriptions, time.Now(), settings.ShowExpiredSubscriptions)
	s.sendEvent(Event{Type: EventSubscriptionsUpdated, Subscriptions: result, At: time.Now()})
}

func (s *Service) fetchUsage() {
	settings := s.provider.Settings()
	s.client.SetTimeout(settings.RequestTimeout())
	r := s.UsageRange()

	stats, err := s.client.FetchUsageStats(
		context.Background(), s.provider.ResolveAuth(), r.StartDate, r.EndDate, r.Granularity)
	if err != nil {
		s.sendEvent(Event{Type: EventUsageError, Error: err, At: time.Now()})
		return
	}
	s.sendEvent(Event{Type: EventUsageUpdated, Usage: stats, At: time.Now()})
}

// Rearm replaces the periodic ticker with one at the given interval. The old
// ticker is stopped before the new one starts, so the swap cannot double-fire.
// An interval of zero or less disables periodic refresh; triggered refresh
// stays available.
func (s *Service) Rearm(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tickerStop != nil {
		close(s.tickerStop)
		s.tickerStop = nil
	}
	if interval <= 0 {
		return
	}

	stop := make(chan struct{})
	s.tickerStop = stop
	go s.tickLoop(interval, stop)
}

func (s *Service) tickLoop(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RefreshAll()
		case <-stop:
			return
		case <-s.stopChan:
			return
		}
	}
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the ticker and any pending triggers.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.tickerStop != nil {
		close(s.tickerStop)
		s.tickerStop = nil
	}
	s.mu.Unlock()

	close(s.stopChan)
	return nil
}
