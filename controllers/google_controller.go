package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const oauthStateKey = "oauth_state"

type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleLogin redirects to the Google consent screen
func GoogleLogin(c *gin.Context) {
	if deps.GoogleOAuth == nil {
		utils.Fail(c, http.StatusNotFound, "Google sign-in is not configured", nil)
		return
	}

	state := uuid.New().String()
	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save oauth state: %v", err)
		utils.InternalServerError(c, "Failed to start sign-in")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, deps.GoogleOAuth.AuthCodeURL(state))
}

// GoogleCallback finishes Google sign-in and redirects to the dashboard
func GoogleCallback(c *gin.Context) {
	if deps.GoogleOAuth == nil {
		utils.Fail(c, http.StatusNotFound, "Google sign-in is not configured", nil)
		return
	}

	session := sessions.Default(c)
	expected, _ := session.Get(oauthStateKey).(string)
	if expected == "" || c.Query("state") != expected {
		utils.LogError("Google callback with invalid state")
		utils.BadRequest(c, "Invalid OAuth state")
		return
	}
	session.Delete(oauthStateKey)

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided")
		return
	}

	ctx := c.Request.Context()
	token, err := deps.GoogleOAuth.Exchange(ctx, code)
	if err != nil {
		utils.LogError("Failed to exchange Google code: %v", err)
		utils.InternalServerError(c, "Failed to exchange token")
		return
	}

	resp, err := deps.GoogleOAuth.Client(ctx, token).Get(deps.GoogleUserInfoURL)
	if err != nil {
		utils.LogError("Failed to get Google user info: %v", err)
		utils.InternalServerError(c, "Failed to get user info")
		return
	}
	defer resp.Body.Close()

	var googleUser GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil || googleUser.Email == "" {
		utils.LogError("Failed to parse Google user info: %v", err)
		utils.InternalServerError(c, "Failed to parse user info")
		return
	}

	user, err := deps.Auth.UpsertOAuthUser(ctx, googleUser.Email, googleUser.Name, models.ProviderGoogle)
	if err != nil {
		utils.LogError("Failed to upsert Google user %s: %v", googleUser.Email, err)
		utils.InternalServerError(c, "Failed to create user")
		return
	}

	tokenString, err := deps.Auth.IssueToken(user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token")
		return
	}
	session.Set(utils.SessionTokenKey, tokenString)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Failed to save session")
		return
	}

	utils.LogInfo("Google sign-in for %s", user.Email)
	c.Redirect(http.StatusTemporaryRedirect, deps.BaseURL+"/dashboard")
}
