package controllers

import (
	"github.com/Govind-619/ClipCraft/services/auth"
	"github.com/Govind-619/ClipCraft/services/payment"
	"github.com/Govind-619/ClipCraft/services/video"
	"github.com/Govind-619/ClipCraft/utils"
	"golang.org/x/oauth2"
)

const defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Dependencies are the services the handlers call
type Dependencies struct {
	Auth     *auth.Service
	Video    *video.Proxy
	Prober   *video.Prober
	Payments *payment.Service
	Mailer   utils.Mailer

	AdminEmail string
	BaseURL    string

	// GoogleOAuth is nil when Google sign-in is not configured
	GoogleOAuth       *oauth2.Config
	GoogleUserInfoURL string
}

var deps *Dependencies

// Setup installs the handler dependencies. Call once before serving.
func Setup(d *Dependencies) {
	if d.GoogleUserInfoURL == "" {
		d.GoogleUserInfoURL = defaultGoogleUserInfoURL
	}
	deps = d
}
