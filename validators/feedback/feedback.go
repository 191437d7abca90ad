package feedbackValidators

import (
	"fab/middleware"
	"fab/models"
	feedbackService "fab/services/feedback"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

const (
	maxTitleLen       = 200
	maxDescriptionLen = 5000
	maxToolLen        = 100
	maxReplyLen       = 2000
)

// CreateFeedback validates and sanitizes a create payload before it reaches
// the persistence layer. All violated constraints are reported together.
func CreateFeedback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(feedbackService.CreateFeedbackData)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request body!")
		}

		sanitizeCreate(reqData)

		if problems := validateCreate(reqData); len(problems) > 0 {
			return middleware.ValidationErrorResponse(c, problems)
		}

		c.Locals("validatedCreateFeedback", reqData)
		return c.Next()
	}
}

// UpdateFeedback validates a partial patch; every field is optional but at
// least one must be present.
func UpdateFeedback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(feedbackService.UpdateFeedbackData)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request body!")
		}

		sanitizeUpdate(reqData)

		if problems := validateUpdate(reqData); len(problems) > 0 {
			return middleware.ValidationErrorResponse(c, problems)
		}

		c.Locals("validatedUpdateFeedback", reqData)
		return c.Next()
	}
}

// BatchAction validates a batch request: a non-empty id list, a known action,
// and the action's payload.
func BatchAction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(feedbackService.BatchActionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request body!")
		}

		if problems := validateBatch(reqData); len(problems) > 0 {
			return middleware.ValidationErrorResponse(c, problems)
		}

		c.Locals("validatedBatchAction", reqData)
		return c.Next()
	}
}

func validateCreate(d *feedbackService.CreateFeedbackData) []string {
	var problems []string

	if !models.ValidFeedbackType(d.Type) {
		problems = append(problems, "Type must be one of: "+strings.Join(models.FeedbackTypes, ", "))
	}
	if d.Title == "" {
		problems = append(problems, "Title is required")
	} else if len(d.Title) > maxTitleLen {
		problems = append(problems, fmt.Sprintf("Title must not exceed %d characters", maxTitleLen))
	}
	if d.Description == "" {
		problems = append(problems, "Description is required")
	} else if len(d.Description) > maxDescriptionLen {
		problems = append(problems, fmt.Sprintf("Description must not exceed %d characters", maxDescriptionLen))
	}
	if d.Email != "" && validate.Var(d.Email, "email") != nil {
		problems = append(problems, "Email must be a valid email address")
	}
	if len(d.Tool) > maxToolLen {
		problems = append(problems, fmt.Sprintf("Tool must not exceed %d characters", maxToolLen))
	}
	if d.Priority != "" && !models.ValidFeedbackPriority(d.Priority) {
		problems = append(problems, "Priority must be one of: "+strings.Join(models.FeedbackPriorities, ", "))
	}

	return problems
}

func validateUpdate(d *feedbackService.UpdateFeedbackData) []string {
	var problems []string

	if d.Type == nil && d.Title == nil && d.Description == nil && d.Email == nil &&
		d.Tool == nil && d.Status == nil && d.Priority == nil && d.Reply == nil &&
		d.Tags == nil && d.Metadata == nil {
		return []string{"At least one field must be provided"}
	}

	if d.Type != nil && !models.ValidFeedbackType(*d.Type) {
		problems = append(problems, "Type must be one of: "+strings.Join(models.FeedbackTypes, ", "))
	}
	if d.Title != nil {
		if *d.Title == "" {
			problems = append(problems, "Title must not be empty")
		} else if len(*d.Title) > maxTitleLen {
			problems = append(problems, fmt.Sprintf("Title must not exceed %d characters", maxTitleLen))
		}
	}
	if d.Description != nil {
		if *d.Description == "" {
			problems = append(problems, "Description must not be empty")
		} else if len(*d.Description) > maxDescriptionLen {
			problems = append(problems, fmt.Sprintf("Description must not exceed %d characters", maxDescriptionLen))
		}
	}
	if d.Email != nil && *d.Email != "" && validate.Var(*d.Email, "email") != nil {
		problems = append(problems, "Email must be a valid email address")
	}
	if d.Tool != nil && len(*d.Tool) > maxToolLen {
		problems = append(problems, fmt.Sprintf("Tool must not exceed %d characters", maxToolLen))
	}
	if d.Status != nil && !models.ValidFeedbackStatus(*d.Status) {
		problems = append(problems, "Status must be one of: "+strings.Join(models.FeedbackStatuses, ", "))
	}
	if d.Priority != nil && !models.ValidFeedbackPriority(*d.Priority) {
		problems = append(problems, "Priority must be one of: "+strings.Join(models.FeedbackPriorities, ", "))
	}
	if d.Reply != nil && len(*d.Reply) > maxReplyLen {
		problems = append(problems, fmt.Sprintf("Reply must not exceed %d characters", maxReplyLen))
	}

	return problems
}

func validateBatch(r *feedbackService.BatchActionRequest) []string {
	var problems []string

	if len(r.IDs) == 0 {
		problems = append(problems, "At least one id is required")
	}
	for _, id := range r.IDs {
		if strings.TrimSpace(id) == "" {
			problems = append(problems, "Ids must not be empty")
			break
		}
	}

	switch r.Action {
	case feedbackService.ActionDelete:
	case feedbackService.ActionUpdateStatus:
		if r.Data == nil || !models.ValidFeedbackStatus(r.Data.Status) {
			problems = append(problems, "Status must be one of: "+strings.Join(models.FeedbackStatuses, ", "))
		}
	case feedbackService.ActionAddTags:
		if r.Data == nil || len(r.Data.Tags) == 0 {
			problems = append(problems, "At least one tag is required")
		}
	default:
		problems = append(problems, "Action must be one of: delete, update_status, add_tags")
	}

	return problems
}

// sanitizeCreate trims text fields and lowercases email, applied before
// validation so limits run against the stored form.
func sanitizeCreate(d *feedbackService.CreateFeedbackData) {
	d.Type = strings.TrimSpace(d.Type)
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Tool = strings.TrimSpace(d.Tool)
	d.Priority = strings.TrimSpace(d.Priority)
}

func sanitizeUpdate(d *feedbackService.UpdateFeedbackData) {
	trim := func(p *string) {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	trim(d.Type)
	trim(d.Title)
	trim(d.Description)
	trim(d.Tool)
	trim(d.Status)
	trim(d.Priority)
	trim(d.Reply)
	if d.Email != nil {
		*d.Email = strings.ToLower(strings.TrimSpace(*d.Email))
	}
}
