package controllers

import (
	"net/http"

	"github.com/Govind-619/ClipCraft/middleware"
	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/gin-gonic/gin"
)

// GenerateVideo handles POST /api/generate-video
func GenerateVideo(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Generate video - invalid request: %v", err)
		utils.BadRequest(c, "Invalid request body")
		return
	}

	req.NotifyEmail = ""
	if req.Notify {
		if user, ok := middleware.CurrentUser(c, deps.Auth); ok {
			req.NotifyEmail = user.Email
		} else {
			utils.LogInfo("Generate video - notification requested without a session, ignoring")
		}
	}

	result, err := deps.Video.Generate(c.Request.Context(), req)
	if err != nil {
		utils.LogError("Generate video failed: %v", err)
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// TestFal handles GET /api/test-fal
func TestFal(c *gin.Context) {
	status, body := deps.Prober.Probe(c.Request.Context())
	c.JSON(status, body)
}

// Health reports liveness and which providers are configured
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"providers": deps.Video.Providers(),
	})
}
