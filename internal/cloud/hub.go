// Package cloud simulates the cloud export hub: service connections,
// share links, email exports, history, and scheduled exports.
//
// Nothing here opens a socket. Connections and exports resolve after a
// fixed artificial delay with fabricated data, which is the feature: the
// application has no real cloud backend. A genuine integration would
// replace this package with real service clients.
package cloud

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

type (
	// Service is one entry of the fixed cloud-service catalog.
	Service struct {
		ID        string
		Name      string
		Connected bool
		LastSync  string
	}

	// HistoryItem is one row of the export history.
	HistoryItem struct {
		ID          string
		Type        string
		Destination string
		Timestamp   time.Time
		RecordCount int
		Status      Status
		Size        string
	}

	// ScheduledExport is one configured recurring export.
	ScheduledExport struct {
		ID          string
		Template    string
		Destination string
		Frequency   string
		NextRun     time.Time
		Enabled     bool
	}
)

var (
	ErrUnknownService  = errors.New("unknown cloud service")
	ErrUnknownSchedule = errors.New("unknown scheduled export")
	ErrEmailRequired   = errors.New("email address required")
)

// Hub holds the simulated cloud state for the session. Safe for concurrent
// handlers.
type Hub struct {
	mu        sync.Mutex
	services  []Service
	history   []HistoryItem
	scheduled []ScheduledExport
	now       func() time.Time

	// Artificial operation delays; zeroed in tests.
	connectDelay time.Duration
	shareDelay   time.Duration
	emailDelay   time.Duration
}

func NewHub() *Hub {
	h := &Hub{
		now:          time.Now,
		connectDelay: 1500 * time.Millisecond,
		shareDelay:   time.Second,
		emailDelay:   2 * time.Second,
	}
	now := h.now()
	h.services = []Service{
		{ID: "google-sheets", Name: "Google Sheets"},
		{ID: "dropbox", Name: "Dropbox", Connected: true, LastSync: "2 hours ago"},
		{ID: "onedrive", Name: "OneDrive"},
		{ID: "notion", Name: "Notion", Connected: true, LastSync: "30 minutes ago"},
	}
	h.history = []HistoryItem{
		{ID: "1", Type: "Monthly Summary", Destination: "Email", Timestamp: now.Add(-time.Hour), RecordCount: 45, Status: StatusCompleted, Size: "12 KB"},
		{ID: "2", Type: "Full Export", Destination: "Google Sheets", Timestamp: now.Add(-24 * time.Hour), RecordCount: 156, Status: StatusCompleted, Size: "48 KB"},
		{ID: "3", Type: "Tax Report", Destination: "Dropbox", Timestamp: now.Add(-48 * time.Hour), RecordCount: 89, Status: StatusCompleted, Size: "24 KB"},
		{ID: "4", Type: "Category Analysis", Destination: "OneDrive", Timestamp: now.Add(-72 * time.Hour), RecordCount: 67, Status: StatusFailed, Size: "-"},
	}
	h.scheduled = []ScheduledExport{
		{ID: "1", Template: "Monthly Summary", Destination: "Dropbox", Frequency: "Monthly", NextRun: now.Add(5 * 24 * time.Hour), Enabled: true},
		{ID: "2", Template: "Full Export", Destination: "Google Sheets", Frequency: "Weekly", NextRun: now.Add(2 * 24 * time.Hour), Enabled: false},
	}
	return h
}

// Services returns a snapshot of the service catalog.
func (h *Hub) Services() []Service {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Service, len(h.services))
	copy(out, h.services)
	return out
}

// ToggleConnection flips the connected state of a service after the fixed
// connection delay. Connecting sets a fresh last-sync label.
func (h *Hub) ToggleConnection(ctx context.Context, serviceID string) (Service, error) {
	if err := wait(ctx, h.connectDelay); err != nil {
		return Service{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.services {
		if s.ID != serviceID {
			continue
		}
		s.Connected = !s.Connected
		if s.Connected {
			s.LastSync = "Just now"
		} else {
			s.LastSync = ""
		}
		h.services[i] = s
		return s, nil
	}
	return Service{}, fmt.Errorf("toggle connection %q: %w", serviceID, ErrUnknownService)
}

// GenerateShareLink fabricates a shareable link after the fixed delay.
func (h *Hub) GenerateShareLink(ctx context.Context) (string, error) {
	if err := wait(ctx, h.shareDelay); err != nil {
		return "", err
	}
	return "https://expenses.app/share/" + newToken(), nil
}

// EmailExport simulates sending an export to an address and records it in
// the history.
func (h *Hub) EmailExport(ctx context.Context, email string, recordCount int) error {
	if email == "" {
		return ErrEmailRequired
	}
	if err := wait(ctx, h.emailDelay); err != nil {
		return err
	}
	h.recordExport("Email Export", "Email", recordCount)
	return nil
}

// RecordExport appends a completed export to the history. Called by the
// download endpoints so local exports show up alongside simulated ones.
func (h *Hub) RecordExport(exportType, destination string, recordCount, sizeBytes int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.history = append([]HistoryItem{{
		ID:          newToken(),
		Type:        exportType,
		Destination: destination,
		Timestamp:   h.now(),
		RecordCount: recordCount,
		Status:      StatusCompleted,
		Size:        formatSize(sizeBytes),
	}}, h.history...)
}

func (h *Hub) recordExport(exportType, destination string, recordCount int) {
	h.RecordExport(exportType, destination, recordCount, recordCount*80)
}

// History returns a snapshot of the export history, newest first.
func (h *Hub) History() []HistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]HistoryItem, len(h.history))
	copy(out, h.history)
	return out
}

// ScheduledExports returns a snapshot of the configured schedules.
func (h *Hub) ScheduledExports() []ScheduledExport {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]ScheduledExport, len(h.scheduled))
	copy(out, h.scheduled)
	return out
}

// ToggleSchedule enables or disables a scheduled export.
func (h *Hub) ToggleSchedule(id string) (ScheduledExport, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, se := range h.scheduled {
		if se.ID == id {
			se.Enabled = !se.Enabled
			h.scheduled[i] = se
			return se, nil
		}
	}
	return ScheduledExport{}, fmt.Errorf("toggle schedule %q: %w", id, ErrUnknownSchedule)
}

// wait blocks for the artificial delay, honoring cancellation.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func newToken() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func formatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%d KB", (n+512)/1024)
}
