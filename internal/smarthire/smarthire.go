package smarthire

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Profile selects which backend contract the client speaks.
type Profile string

const (
	// ProfileDashboard is the /predict backend used by the recruiter dashboard.
	ProfileDashboard Profile = "dashboard"
	// ProfileService is the /analyze backend used by the component client.
	ProfileService Profile = "service"

	DefaultDashboardURL = "http://localhost:5000"
	DefaultServiceURL   = "http://localhost:8000"

	DefaultTopK          = 5
	DefaultMinTextLength = 20
	DefaultTimeout       = 30 * time.Second

	userAgent = "spigell/smart-hire"
)

type Client struct {
	logger     *zap.Logger
	profile    Profile
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	// TopK is sent with dashboard predictions.
	TopK int
	// MinTextLength is the minimal resume text length accepted before calling the backend.
	MinTextLength int
}

// ParseProfile accepts the profile names and their single-letter aliases.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ProfileDashboard), "a":
		return ProfileDashboard, nil
	case string(ProfileService), "b":
		return ProfileService, nil
	default:
		return "", fmt.Errorf("unknown backend profile %q", s)
	}
}

// DefaultURL returns the base URL a profile talks to when none is configured.
func (p Profile) DefaultURL() string {
	if p == ProfileService {
		return DefaultServiceURL
	}
	return DefaultDashboardURL
}

func New(logger *zap.Logger, profile Profile, apiURL string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	if profile == "" {
		profile = ProfileDashboard
	}

	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	if apiURL == "" {
		apiURL = profile.DefaultURL()
	}

	return &Client{
		logger:  logger,
		profile: profile,
		APIURL:  apiURL,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		UserAgent:     userAgent,
		TopK:          DefaultTopK,
		MinTextLength: DefaultMinTextLength,
	}
}

func (c *Client) Profile() Profile {
	return c.profile
}
