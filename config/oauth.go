package config

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuthConfig returns the OAuth2 client config for Google sign-in
func GoogleOAuthConfig(cfg *Config) *oauth2.Config {
	redirect := cfg.GoogleRedirectURL
	if redirect == "" {
		redirect = cfg.BaseURL + "/api/auth/callback/google"
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  redirect,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}
