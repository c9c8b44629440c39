package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	oauthvk "golang.org/x/oauth2/vk"
)

const usersGetURL = "https://api.vk.com/method/users.get"

// Client implements the VK OAuth authorization code flow:
// the frontend sends us a short-lived code, we exchange it server-to-server
// for an access token (the client secret never leaves the backend), then
// call users.get with the token to obtain the user's profile.
type Client struct {
	config     Config
	oauth      *oauth2.Config
	httpClient *http.Client
}

// NewClient creates a new VK client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.APIVersion == "" {
		config.APIVersion = "5.131"
	}

	return &Client{
		config: config,
		oauth: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     oauthvk.Endpoint,
		},
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Exchange trades an authorization code for the VK user's profile.
// redirectURI must match the one the frontend used to obtain the code,
// so it is set per call rather than fixed in the oauth config.
func (c *Client) Exchange(ctx context.Context, code, redirectURI string) (*Profile, error) {
	cfg := *c.oauth
	cfg.RedirectURL = redirectURI

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	return c.fetchProfile(ctx, token.AccessToken)
}

func (c *Client) fetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("v", c.config.APIVersion)
	params.Set("fields", "photo_200,first_name,last_name")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, usersGetURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: users.get returned status %d", ErrProfileFetch, resp.StatusCode)
	}

	var body usersGetResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	if body.Error != nil {
		return nil, fmt.Errorf("%w: %s (code %d)", ErrProfileFetch, body.Error.Message, body.Error.Code)
	}
	if len(body.Response) == 0 || body.Response[0].ID == 0 {
		return nil, fmt.Errorf("%w: empty users.get response", ErrProfileFetch)
	}

	profile := body.Response[0]
	return &profile, nil
}
