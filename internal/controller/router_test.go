package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository/memory"
	"github.com/meetsync/meetsync/internal/service"
)

type noopNotifier struct{}

func (noopNotifier) MeetingBooked(*model.Meeting)    {}
func (noopNotifier) MeetingUpdated(*model.Meeting)   {}
func (noopNotifier) MeetingCancelled(*model.Meeting) {}
func (noopNotifier) MeetingReminder(*model.Meeting)  {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	users := memory.NewUserRepository()
	meetings := memory.NewMeetingRepository()
	groups := memory.NewGroupRepository()

	router := NewRouter(Deps{
		Auth:     service.NewAuthService(users, "test-secret", time.Hour, logger),
		Users:    service.NewUserService(users, logger),
		Meetings: service.NewMeetingService(meetings, users, noopNotifier{}, logger),
		Groups:   service.NewGroupService(groups, logger),
		Logger:   logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func register(t *testing.T, srv *httptest.Server, name, email string) string {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "hunter22",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if body.Token == "" {
		t.Fatal("register returned no token")
	}
	return body.Token
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/meetings", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/meetings", "garbage-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", resp.StatusCode)
	}
}

func TestMeetingFlow(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "Alice", "alice@example.com")

	create := map[string]any{
		"title":        "Planning sync",
		"date":         "2024-01-08",
		"start_time":   "10:00",
		"end_time":     "11:00",
		"participants": "bob@example.com, carol@example.com",
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/meetings", token, create)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var meeting model.Meeting
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		t.Fatalf("decode meeting: %v", err)
	}
	if len(meeting.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(meeting.Participants))
	}

	// Overlapping booking is rejected with 409.
	overlap := map[string]any{
		"title":      "Conflicting sync",
		"date":       "2024-01-08",
		"start_time": "10:30",
		"end_time":   "11:30",
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/meetings", token, overlap)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("overlap status = %d, want 409", resp.StatusCode)
	}

	// Malformed time is a 400.
	bad := map[string]any{
		"title":      "Late sync",
		"date":       "2024-01-08",
		"start_time": "24:00",
		"end_time":   "25:00",
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/meetings", token, bad)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad time status = %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/meetings", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	var list []model.Meeting
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/meetings/"+meeting.ID, token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("cancel status = %d, want 204", resp.StatusCode)
	}

	// Cancelling twice conflicts.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/meetings/"+meeting.ID, token, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second cancel status = %d, want 409", resp.StatusCode)
	}
}

func TestMeetingOutsideAvailability(t *testing.T) {
	srv := newTestServer(t)
	token := register(t, srv, "Alice", "alice@example.com")

	rules := []map[string]any{
		{"day_of_week": 1, "windows": []map[string]string{{"start": "09:00", "end": "12:00"}}, "enabled": true},
	}
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/profile/availability", token, rules)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("save availability status = %d, want 204", resp.StatusCode)
	}

	create := map[string]any{
		"title":      "Evening sync",
		"date":       "2024-01-08",
		"start_time": "18:00",
		"end_time":   "19:00",
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/meetings", token, create)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestGroupPermissionsOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	adminToken := register(t, srv, "Alice", "alice@example.com")
	memberToken := register(t, srv, "Bob", "bob@example.com")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/groups", adminToken, map[string]string{
		"name": "Backend Team",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create group status = %d, want 201", resp.StatusCode)
	}
	var group model.Group
	if err := json.NewDecoder(resp.Body).Decode(&group); err != nil {
		t.Fatalf("decode group: %v", err)
	}

	// A non-member cannot see the group.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/groups/"+group.ID, memberToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("outsider get status = %d, want 403", resp.StatusCode)
	}

	// Fetch bob's user id through his profile, then add him.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/profile", memberToken, nil)
	var bob model.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&bob); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/groups/"+group.ID+"/members", adminToken, map[string]string{
		"user_id": bob.ID,
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("add member status = %d, want 204", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/groups/"+group.ID, memberToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("member get status = %d, want 200", resp.StatusCode)
	}

	// A plain member cannot delete the group.
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/groups/"+group.ID, memberToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("member delete status = %d, want 403", resp.StatusCode)
	}
}
