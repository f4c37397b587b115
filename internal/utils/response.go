package utils

import "github.com/gin-gonic/gin"

// Envelope is the uniform response body; the HTTP status always equals
// Code so clients can read either.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Body    interface{} `json:"body"`
}

func Respond(c *gin.Context, code int, message string, body interface{}) {
	c.JSON(code, Envelope{Code: code, Message: message, Body: body})
}

func SuccessResponse(c *gin.Context, statusCode int, message string, body interface{}) {
	Respond(c, statusCode, message, body)
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	Respond(c, statusCode, message, nil)
}
