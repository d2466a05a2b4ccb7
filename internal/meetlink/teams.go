package meetlink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	teamsTokenURL = "https://login.microsoftonline.com/common/oauth2/v2.0/token"
	teamsGraphURL = "https://graph.microsoft.com/v1.0/me/events"
)

// TeamsClient exchanges an OAuth authorization code for a token and creates
// a calendar event with an online meeting through the Microsoft Graph API.
type TeamsClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	http         *http.Client
}

func NewTeamsClient(clientID, clientSecret, redirectURI string) *TeamsClient {
	return &TeamsClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		http:         &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether Teams credentials are configured.
func (c *TeamsClient) Enabled() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// TeamsEvent is the Graph event payload for a meeting.
type TeamsEvent struct {
	Subject   string          `json:"subject"`
	Start     TeamsEventTime  `json:"start"`
	End       TeamsEventTime  `json:"end"`
	Attendees []TeamsAttendee `json:"attendees"`

	IsOnlineMeeting       bool   `json:"isOnlineMeeting"`
	OnlineMeetingProvider string `json:"onlineMeetingProvider,omitempty"`
}

type TeamsEventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type TeamsAttendee struct {
	EmailAddress TeamsEmailAddress `json:"emailAddress"`
}

type TeamsEmailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// CreateMeeting runs the full exchange: authorization code -> access token ->
// Graph event, and returns the Teams join link.
func (c *TeamsClient) CreateMeeting(ctx context.Context, code string, event TeamsEvent) (string, error) {
	token, err := c.exchangeCode(ctx, code)
	if err != nil {
		return "", err
	}

	event.IsOnlineMeeting = true
	if event.OnlineMeetingProvider == "" {
		event.OnlineMeetingProvider = "teamsForBusiness"
	}

	body, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("encode teams event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, teamsGraphURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create teams event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("create teams event: graph returned %s", resp.Status)
	}

	var created struct {
		OnlineMeeting struct {
			JoinURL string `json:"joinUrl"`
		} `json:"onlineMeeting"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode graph response: %w", err)
	}
	if created.OnlineMeeting.JoinURL == "" {
		return "", fmt.Errorf("graph response has no join url")
	}

	return created.OnlineMeeting.JoinURL, nil
}

func (c *TeamsClient) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"redirect_uri":  {c.redirectURI},
		"code":          {code},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, teamsTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("exchange authorization code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("exchange authorization code: token endpoint returned %s", resp.Status)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}

	return token.AccessToken, nil
}
