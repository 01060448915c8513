package http

import (
	"errors"
	"log/slog"
	"net/http"

	"spendlog/internal/cloud"
)

func (s *Server) handleCloudServices(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.renderPartial(w, r, "cloud_services.html", struct {
		Services []cloud.Service
	}{Services: s.hub.Services()})
}

func (s *Server) handleToggleService(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := r.Form.Get("id")
	service, err := s.hub.ToggleConnection(r.Context(), id)
	if err != nil {
		if errors.Is(err, cloud.ErrUnknownService) {
			NotFoundError("Unknown service").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Service toggle failed", "error", err, "service", id)
		InternalServerError("Connection failed").Write(w)
		return
	}

	message := service.Name + " disconnected"
	if service.Connected {
		message = service.Name + " connected"
	}
	NewHTMXResponse().
		Trigger("cloud:changed", map[string]string{"id": service.ID}).
		TriggerSuccessNotification(message).
		Write(w)
}

func (s *Server) handleShareLink(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	link, err := s.hub.GenerateShareLink(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Share link generation failed", "error", err)
		InternalServerError("Could not generate share link").Write(w)
		return
	}
	s.renderPartial(w, r, "share_link.html", struct{ Link string }{Link: link})
}

func (s *Server) handleEmailExport(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	email := sanitizeInput(r.Form.Get("email"))
	count := len(s.store.FilteredExpenses())
	if err := s.hub.EmailExport(r.Context(), email, count); err != nil {
		if errors.Is(err, cloud.ErrEmailRequired) {
			UnprocessableEntityError("Email address is required").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Email export failed", "error", err)
		InternalServerError("Email export failed").Write(w)
		return
	}

	NewHTMXResponse().
		Trigger("cloud:changed", struct{}{}).
		TriggerSuccessNotification("Export sent to " + email).
		Write(w)
}

func (s *Server) handleExportHistory(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	type historyView struct {
		Type        string
		Destination string
		When        string
		RecordCount int
		Status      string
		Size        string
	}
	history := s.hub.History()
	views := make([]historyView, len(history))
	for i, h := range history {
		views[i] = historyView{
			Type:        h.Type,
			Destination: h.Destination,
			When:        h.Timestamp.Format("Jan 2, 2006 15:04"),
			RecordCount: h.RecordCount,
			Status:      string(h.Status),
			Size:        h.Size,
		}
	}
	s.renderPartial(w, r, "export_history.html", struct{ History []historyView }{History: views})
}

func (s *Server) handleScheduledExports(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	type scheduleView struct {
		ID          string
		Template    string
		Destination string
		Frequency   string
		NextRun     string
		Enabled     bool
	}
	schedules := s.hub.ScheduledExports()
	views := make([]scheduleView, len(schedules))
	for i, se := range schedules {
		views[i] = scheduleView{
			ID:          se.ID,
			Template:    se.Template,
			Destination: se.Destination,
			Frequency:   se.Frequency,
			NextRun:     se.NextRun.Format("Jan 2, 2006"),
			Enabled:     se.Enabled,
		}
	}
	s.renderPartial(w, r, "scheduled_exports.html", struct{ Schedules []scheduleView }{Schedules: views})
}

func (s *Server) handleToggleSchedule(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := r.Form.Get("id")
	schedule, err := s.hub.ToggleSchedule(id)
	if err != nil {
		if errors.Is(err, cloud.ErrUnknownSchedule) {
			NotFoundError("Unknown scheduled export").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Schedule toggle failed", "error", err, "schedule", id)
		InternalServerError("Could not update schedule").Write(w)
		return
	}

	message := schedule.Template + " schedule paused"
	if schedule.Enabled {
		message = schedule.Template + " schedule enabled"
	}
	NewHTMXResponse().
		Trigger("cloud:changed", map[string]string{"id": schedule.ID}).
		TriggerSuccessNotification(message).
		Write(w)
}
