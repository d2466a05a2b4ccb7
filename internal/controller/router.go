package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/meetsync/meetsync/internal/meetlink"
	"github.com/meetsync/meetsync/internal/service"
)

// Deps collects everything the HTTP layer needs.
type Deps struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Meetings *service.MeetingService
	Groups   *service.GroupService
	Teams    *meetlink.TeamsClient
	Logger   *zap.Logger
}

// NewRouter builds the full route table. Auth endpoints are rate limited per
// client IP; everything else under /api requires a bearer token.
func NewRouter(deps Deps) *mux.Router {
	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	userHandler := NewUserHandler(deps.Users, deps.Logger)
	meetingHandler := NewMeetingHandler(deps.Meetings, deps.Logger)
	groupHandler := NewGroupHandler(deps.Groups, deps.Logger)
	integrationHandler := NewIntegrationHandler(deps.Teams, deps.Logger)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	limiter := newIPRateLimiter(5, 10)
	public := r.PathPrefix("/api/auth").Subrouter()
	public.Use(limiter.middleware)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware(deps.Auth))

	api.HandleFunc("/profile", userHandler.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", userHandler.UpdateProfile).Methods(http.MethodPut)
	api.HandleFunc("/profile/availability", userHandler.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/profile/availability", userHandler.SaveAvailability).Methods(http.MethodPut)

	api.HandleFunc("/meetings", meetingHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/meetings", meetingHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/meetings/{id}", meetingHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/meetings/{id}", meetingHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/meetings/{id}", meetingHandler.Cancel).Methods(http.MethodDelete)

	api.HandleFunc("/groups", groupHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/groups", groupHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}", groupHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}", groupHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/groups/{id}", groupHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/groups/{id}/members", groupHandler.AddMember).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}/members/{userID}", groupHandler.RemoveMember).Methods(http.MethodDelete)
	api.HandleFunc("/groups/{id}/members/{userID}/role", groupHandler.SetMemberRole).Methods(http.MethodPut)

	api.HandleFunc("/integrations/teams-meeting", integrationHandler.CreateTeamsMeeting).Methods(http.MethodPost)

	return r
}
