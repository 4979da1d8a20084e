package controllers

import (
	"net/http"
	"time"

	"github.com/Govind-619/ClipCraft/middleware"
	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

// LoginRequest represents the credentials sign-in body
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Token    string `json:"token" form:"token"`
	Password string `json:"password" form:"password"`
}

// RegisterUser handles POST /api/auth/register
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.LogError("Registration attempt failed - Invalid request format: %v", err)
		utils.BadRequest(c, utils.ErrAllFieldsRequired)
		return
	}

	user, err := deps.Auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if utils.AsAppError(err) == nil {
			utils.LogError("Registration error: %v", err)
			utils.InternalServerError(c, utils.ErrInternalServer)
			return
		}
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"message": utils.MsgRegisterSuccess,
		"user":    user.Public(),
	})
}

// LoginUser handles credentials sign-in. On success the token is stored in the
// session cookie and also returned for bearer use.
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.LogError("Login attempt failed - Invalid request format: %v", err)
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}

	user, ok := deps.Auth.Authorize(c.Request.Context(), req.Email, req.Password)
	if !ok {
		utils.Unauthorized(c, utils.ErrInvalidCredentials)
		return
	}

	startSession(c, user)
}

// startSession issues a token, stores it in the session and writes the login response
func startSession(c *gin.Context, user *models.User) bool {
	token, err := deps.Auth.IssueToken(user)
	if err != nil {
		utils.LogError("Failed to generate token for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Failed to generate token")
		return false
	}

	session := sessions.Default(c)
	session.Set(utils.SessionTokenKey, token)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for %s: %v", user.Email, err)
		utils.InternalServerError(c, "Failed to save session")
		return false
	}

	utils.Success(c, gin.H{
		"message": utils.MsgLoginSuccess,
		"token":   token,
		"user":    user.Public(),
	})
	return true
}

// GetSession handles GET /api/auth/session. Anonymous callers get an empty object.
func GetSession(c *gin.Context) {
	tokenString := middleware.TokenFromRequest(c)
	if tokenString == "" {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	claims, err := deps.Auth.ParseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	user, err := deps.Auth.UserByID(c.Request.Context(), claims.ID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user.Public(),
		"expires": time.Unix(claims.ExpiresAt, 0).UTC().Format(time.RFC3339),
	})
}

// Logout clears the session cookie
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear session: %v", err)
	}
	utils.Success(c, gin.H{"message": utils.MsgLogoutSuccess})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is the
// same whether or not the email belongs to an account.
func ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequest(c, utils.ErrAllFieldsRequired)
		return
	}

	if err := deps.Auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		if utils.AsAppError(err) == nil {
			utils.LogError("Password reset request error: %v", err)
			utils.InternalServerError(c, utils.ErrInternalServer)
			return
		}
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": utils.MsgResetRequested})
}

// ResetPassword handles POST /api/auth/reset-password
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.BadRequest(c, utils.ErrAllFieldsRequired)
		return
	}

	if err := deps.Auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		if utils.AsAppError(err) == nil {
			utils.LogError("Password reset error: %v", err)
			utils.InternalServerError(c, utils.ErrInternalServer)
			return
		}
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": utils.MsgPasswordReset})
}
