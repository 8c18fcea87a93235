package history

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/selimozcann/PhishGuard/internal/model"
	"github.com/selimozcann/PhishGuard/internal/util"
)

// ErrNotFound is returned by Lookup when no recent scan exists for a URL.
var ErrNotFound = errors.New("no recent scan")

const (
	DefaultCapacity = 100
	DefaultWindow   = 24 * time.Hour
	topDomains      = 5
)

// Options configures a Store.
type Options struct {
	Capacity int
	// Window bounds how old a scan may be for Lookup to return it.
	// Zero treats every stored scan as recent.
	Window time.Duration
	Now    func() time.Time
}

// Record is a stored scan.
type Record struct {
	ID        string
	ScannedAt time.Time
	Result    model.ScanResult
}

// Store keeps the most recent scans in memory, newest first.
type Store struct {
	mu       sync.RWMutex
	records  []Record
	capacity int
	window   time.Duration
	now      func() time.Time
}

// New creates a Store. A non-positive Capacity or negative Window falls back
// to the defaults.
func New(opts Options) *Store {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Window < 0 {
		opts.Window = DefaultWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{capacity: opts.Capacity, window: opts.Window, now: opts.Now}
}

// Save stores a copy of res as the most recent scan.
func (s *Store) Save(res model.ScanResult) Record {
	rec := Record{ID: uuid.NewString(), ScannedAt: s.now(), Result: res.Clone()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]Record{rec}, s.records...)
	if len(s.records) > s.capacity {
		s.records = s.records[:s.capacity]
	}
	return rec
}

// Lookup returns the newest scan of exactly rawURL that is inside the window.
func (s *Store) Lookup(rawURL string) (model.ScanResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	for _, rec := range s.records {
		if rec.Result.URL != rawURL {
			continue
		}
		if s.window > 0 && now.Sub(rec.ScannedAt) > s.window {
			// Records are ordered newest first, so older matches are stale too.
			break
		}
		return rec.Result.Clone(), nil
	}
	return model.ScanResult{}, fmt.Errorf("%w for %s", ErrNotFound, rawURL)
}

// Recent returns up to limit scans, newest first.
func (s *Store) Recent(limit int) []model.HistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}
	now := s.now()
	items := make([]model.HistoryItem, 0, limit)
	for _, rec := range s.records[:limit] {
		items = append(items, model.HistoryItem{
			ID:        rec.ID,
			URL:       rec.Result.URL,
			Domain:    rec.Result.Domain,
			Status:    rec.Result.ResultStatus,
			Time:      Ago(now.Sub(rec.ScannedAt)),
			ScannedAt: rec.ScannedAt,
		})
	}
	return items
}

// Len returns the number of stored scans.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Stats aggregates the stored scans by status and registrable domain.
func (s *Store) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[model.ResultStatus]int{}
	domains := map[string]int{}
	for _, rec := range s.records {
		counts[rec.Result.ResultStatus]++
		domains[util.RegistrableDomain(rec.Result.Domain)]++
	}

	st := model.Stats{Total: len(s.records)}
	for _, status := range model.ResultStatuses {
		share := model.StatusShare{Status: status, Count: counts[status]}
		if st.Total > 0 {
			share.Percent = (share.Count*100 + st.Total/2) / st.Total
		}
		st.ByStatus = append(st.ByStatus, share)
	}

	for d, n := range domains {
		st.TopDomains = append(st.TopDomains, model.DomainCount{Domain: d, Count: n})
	}
	sort.Slice(st.TopDomains, func(i, j int) bool {
		a, b := st.TopDomains[i], st.TopDomains[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Domain < b.Domain
	})
	if len(st.TopDomains) > topDomains {
		st.TopDomains = st.TopDomains[:topDomains]
	}
	return st
}

// Ago renders d as a short relative time.
func Ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
