package controllers

import (
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/gin-gonic/gin"
)

// ContactRequest is the contact form body
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContact emails the admin, then acknowledges the submitter
func SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil || utils.AnyBlank(req.Name, req.Email, req.Subject, req.Message) {
		utils.BadRequest(c, utils.ErrAllFieldsRequired)
		return
	}
	if valid, msg := utils.ValidateEmail(req.Email); !valid {
		utils.BadRequest(c, msg)
		return
	}

	if err := deps.Mailer.Send(utils.ContactAdminEmail(deps.AdminEmail, req.Name, req.Email, req.Subject, req.Message)); err != nil {
		utils.LogError("Contact form: admin notification failed: %v", err)
		utils.InternalServerError(c, "Failed to send message")
		return
	}
	if err := deps.Mailer.Send(utils.ContactAckEmail(req.Email, req.Name, req.Message)); err != nil {
		utils.LogError("Contact form: acknowledgement to %s failed: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to send message")
		return
	}

	utils.LogInfo("Contact form submitted by %s", req.Email)
	utils.Success(c, gin.H{"message": utils.MsgContactSent})
}
