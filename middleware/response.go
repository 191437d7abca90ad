package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Error codes shared by the HTTP boundary
const (
	CodeValidationError      = "VALIDATION_ERROR"
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeRateLimited          = "RATE_LIMITED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeServiceNotConfigured = "SERVICE_NOT_CONFIGURED"
)

// SuccessResponse wraps data in the uniform success envelope
func SuccessResponse(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// ErrorResponse wraps a failure in the uniform error envelope
func ErrorResponse(c *fiber.Ctx, statusCode int, code, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

// ValidationErrorResponse joins every violated constraint into one message
func ValidationErrorResponse(c *fiber.Ctx, problems []string) error {
	return ErrorResponse(c, fiber.StatusBadRequest, CodeValidationError, strings.Join(problems, "; "))
}

// coded is implemented by service-layer errors carrying a stable code and an
// HTTP-status-equivalent number.
type coded interface {
	error
	Code() string
	Status() int
}

// ServiceErrorResponse serializes a typed service error into the envelope.
// Anything untyped is logged and normalized so no raw internal error crosses
// the boundary.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	if ce, ok := err.(coded); ok {
		return ErrorResponse(c, ce.Status(), ce.Code(), ce.Error())
	}
	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return ErrorResponse(c, fiber.StatusInternalServerError, CodeInternalError, "Something went wrong!")
}
