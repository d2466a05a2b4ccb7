package controller

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/meetlink"
	"github.com/meetsync/meetsync/internal/service"
)

// IntegrationHandler exposes third-party glue endpoints, currently the
// Microsoft Teams meeting creation flow.
type IntegrationHandler struct {
	teams  *meetlink.TeamsClient
	logger *zap.Logger
}

func NewIntegrationHandler(teams *meetlink.TeamsClient, logger *zap.Logger) *IntegrationHandler {
	return &IntegrationHandler{teams: teams, logger: logger}
}

type teamsMeetingRequest struct {
	Code      string   `json:"code"`
	Subject   string   `json:"subject"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	TimeZone  string   `json:"time_zone"`
	Attendees []string `json:"attendees"`
}

func (h *IntegrationHandler) CreateTeamsMeeting(w http.ResponseWriter, r *http.Request) {
	if h.teams == nil || !h.teams.Enabled() {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "teams integration is not configured"})
		return
	}

	var req teamsMeetingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Code == "" || req.Subject == "" || req.Start == "" || req.End == "" {
		writeError(w, h.logger, fmt.Errorf("%w: code, subject, start and end are required", service.ErrValidation))
		return
	}
	if req.TimeZone == "" {
		req.TimeZone = "UTC"
	}

	event := meetlink.TeamsEvent{
		Subject: req.Subject,
		Start:   meetlink.TeamsEventTime{DateTime: req.Start, TimeZone: req.TimeZone},
		End:     meetlink.TeamsEventTime{DateTime: req.End, TimeZone: req.TimeZone},
	}
	for _, email := range req.Attendees {
		event.Attendees = append(event.Attendees, meetlink.TeamsAttendee{
			EmailAddress: meetlink.TeamsEmailAddress{Address: email},
		})
	}

	joinURL, err := h.teams.CreateMeeting(r.Context(), req.Code, event)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"join_url": joinURL})
}
