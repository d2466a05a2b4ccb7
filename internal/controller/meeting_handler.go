package controller

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/service"
)

var emailSplitRe = regexp.MustCompile(`[,\n;]+`)

type MeetingHandler struct {
	meetings *service.MeetingService
	logger   *zap.Logger
}

func NewMeetingHandler(meetings *service.MeetingService, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{meetings: meetings, logger: logger}
}

type meetingRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	MeetingLink      string `json:"meeting_link"`
	AutoGenerateLink bool   `json:"auto_generate_link"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	// Participants accepts emails separated by comma, semicolon or newline,
	// matching what the meeting form submits.
	Participants string `json:"participants"`
	GroupID      string `json:"group_id"`
}

func (req *meetingRequest) toInput(id, ownerID string) service.MeetingInput {
	return service.MeetingInput{
		ID:                id,
		Title:             strings.TrimSpace(req.Title),
		Description:       req.Description,
		MeetingLink:       req.MeetingLink,
		AutoGenerateLink:  req.AutoGenerateLink,
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		OwnerID:           ownerID,
		ParticipantEmails: parseParticipantEmails(req.Participants),
		GroupID:           req.GroupID,
	}
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	meeting, err := h.meetings.Create(r.Context(), req.toInput("", userID(r)))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, meeting)
}

func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	meeting, err := h.meetings.Update(r.Context(), req.toInput(mux.Vars(r)["id"], userID(r)))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.meetings.Cancel(r.Context(), mux.Vars(r)["id"], userID(r)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	meeting, err := h.meetings.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.meetings.ListForUser(r.Context(), userID(r), userEmail(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if meetings == nil {
		meetings = []*model.Meeting{}
	}
	writeJSON(w, http.StatusOK, meetings)
}

// parseParticipantEmails splits a free-form participant field into trimmed,
// non-empty email strings.
func parseParticipantEmails(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	var emails []string
	for _, part := range emailSplitRe.Split(input, -1) {
		email := strings.TrimSpace(part)
		if email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}
