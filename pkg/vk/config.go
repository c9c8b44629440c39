package vk

import "errors"

// Config holds the VK OAuth application credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	APIVersion   string // e.g. "5.131"
}

// Validate checks that the required credentials are present
func (c Config) Validate() error {
	if c.ClientID == "" {
		return errors.New("vk: client ID is required")
	}
	if c.ClientSecret == "" {
		return errors.New("vk: client secret is required")
	}
	return nil
}
