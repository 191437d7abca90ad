package feedback

import "github.com/gofiber/fiber/v2"

// Stable error codes surfaced through the response envelope
const (
	CodeNotFound          = "FEEDBACK_NOT_FOUND"
	CodeCreateFailed      = "CREATE_FAILED"
	CodeUpdateFailed      = "UPDATE_FAILED"
	CodeDeleteFailed      = "DELETE_FAILED"
	CodeFetchFailed       = "FETCH_FAILED"
	CodeBatchDeleteFailed = "BATCH_DELETE_FAILED"
	CodeBatchUpdateFailed = "BATCH_UPDATE_FAILED"
	CodeStatsError        = "STATS_ERROR"
)

// ServiceError is a typed failure carrying an HTTP-status-equivalent number
// and a machine-readable code alongside the message.
type ServiceError struct {
	HTTPStatus int
	ErrCode    string
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// Code returns the stable machine-readable code
func (e *ServiceError) Code() string { return e.ErrCode }

// Status returns the HTTP-status-equivalent classification
func (e *ServiceError) Status() int { return e.HTTPStatus }

func errNotFound(id string) *ServiceError {
	return &ServiceError{fiber.StatusNotFound, CodeNotFound, "Feedback not found: " + id}
}

func errStore(code, message string) *ServiceError {
	return &ServiceError{fiber.StatusInternalServerError, code, message}
}
