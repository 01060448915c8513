package cloud

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// testHub returns a hub with all artificial delays zeroed.
func testHub() *Hub {
	h := NewHub()
	h.connectDelay = 0
	h.shareDelay = 0
	h.emailDelay = 0
	return h
}

func TestServicesCatalog(t *testing.T) {
	h := testHub()
	services := h.Services()
	if len(services) != 4 {
		t.Fatalf("expected 4 services, got %d", len(services))
	}
	byID := map[string]Service{}
	for _, s := range services {
		byID[s.ID] = s
	}
	if !byID["dropbox"].Connected || !byID["notion"].Connected {
		t.Error("dropbox and notion should start connected")
	}
	if byID["google-sheets"].Connected || byID["onedrive"].Connected {
		t.Error("google-sheets and onedrive should start disconnected")
	}
}

func TestToggleConnection(t *testing.T) {
	h := testHub()
	ctx := context.Background()

	s, err := h.ToggleConnection(ctx, "google-sheets")
	if err != nil {
		t.Fatalf("ToggleConnection: %v", err)
	}
	if !s.Connected {
		t.Error("expected service connected after toggle")
	}
	if s.LastSync != "Just now" {
		t.Errorf("LastSync = %q, want %q", s.LastSync, "Just now")
	}

	s, err = h.ToggleConnection(ctx, "google-sheets")
	if err != nil {
		t.Fatalf("ToggleConnection: %v", err)
	}
	if s.Connected {
		t.Error("expected service disconnected after second toggle")
	}
	if s.LastSync != "" {
		t.Errorf("LastSync = %q, want empty after disconnect", s.LastSync)
	}
}

func TestToggleConnectionUnknownService(t *testing.T) {
	h := testHub()
	_, err := h.ToggleConnection(context.Background(), "icloud")
	if !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}
}

func TestToggleConnectionHonorsCancellation(t *testing.T) {
	h := testHub()
	h.connectDelay = time.Minute
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.ToggleConnection(ctx, "dropbox"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateShareLink(t *testing.T) {
	h := testHub()
	link, err := h.GenerateShareLink(context.Background())
	if err != nil {
		t.Fatalf("GenerateShareLink: %v", err)
	}
	if !strings.HasPrefix(link, "https://expenses.app/share/") {
		t.Errorf("link = %q, want https://expenses.app/share/ prefix", link)
	}
	if token := strings.TrimPrefix(link, "https://expenses.app/share/"); token == "" {
		t.Error("share link has empty token")
	}
}

func TestEmailExport(t *testing.T) {
	h := testHub()
	before := len(h.History())

	if err := h.EmailExport(context.Background(), "", 10); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
	if len(h.History()) != before {
		t.Error("failed email export must not be recorded")
	}

	if err := h.EmailExport(context.Background(), "me@example.com", 10); err != nil {
		t.Fatalf("EmailExport: %v", err)
	}
	history := h.History()
	if len(history) != before+1 {
		t.Fatalf("expected %d history entries, got %d", before+1, len(history))
	}
	latest := history[0]
	if latest.Type != "Email Export" || latest.Destination != "Email" {
		t.Errorf("unexpected history entry %+v", latest)
	}
	if latest.Status != StatusCompleted {
		t.Errorf("Status = %q, want completed", latest.Status)
	}
	if latest.RecordCount != 10 {
		t.Errorf("RecordCount = %d, want 10", latest.RecordCount)
	}
}

func TestRecordExportPrepends(t *testing.T) {
	h := testHub()
	h.RecordExport("Full Export", "Download", 42, 4096)
	history := h.History()
	if history[0].Type != "Full Export" {
		t.Errorf("newest entry Type = %q, want Full Export", history[0].Type)
	}
	if history[0].Size != "4 KB" {
		t.Errorf("Size = %q, want 4 KB", history[0].Size)
	}
}

func TestToggleSchedule(t *testing.T) {
	h := testHub()

	se, err := h.ToggleSchedule("2")
	if err != nil {
		t.Fatalf("ToggleSchedule: %v", err)
	}
	if !se.Enabled {
		t.Error("expected schedule enabled after toggle")
	}

	if _, err := h.ToggleSchedule("99"); !errors.Is(err, ErrUnknownSchedule) {
		t.Fatalf("expected ErrUnknownSchedule, got %v", err)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2 KB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
