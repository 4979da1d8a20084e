package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success sends {"success": true, ...fields} with 200
func Success(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail sends {"success": false, "error": message, ...extra}
func Fail(c *gin.Context, statusCode int, message string, extra gin.H) {
	body := gin.H{"success": false, "error": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message, nil)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message, nil)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message, nil)
}

// RespondError translates err into the JSON envelope. Unknown errors become 500.
func RespondError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	if appErr == nil {
		InternalServerError(c, err.Error())
		return
	}
	extra := gin.H{}
	for k, v := range appErr.Details {
		extra[k] = v
	}
	Fail(c, appErr.Code, appErr.Message, extra)
}
