package feedbackValidators

import (
	"fab/middleware"
	"fab/models"
	feedbackService "fab/services/feedback"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

var sortFields = []string{"created_at", "updated_at", "title", "type", "status", "priority"}

// listQuery is the raw query string before normalization
type listQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Search    string `query:"search"`
	Type      string `query:"type"`
	Status    string `query:"status"`
	Priority  string `query:"priority"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
	DateFrom  string `query:"dateFrom"`
	DateTo    string `query:"dateTo"`
}

// ListFeedback normalizes list query parameters: pagination is clamped rather
// than rejected, enums and dates must be well-formed.
func ListFeedback() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := new(listQuery)

		if err := c.QueryParser(raw); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid query parameters!")
		}

		params, problems := normalizeQuery(raw)
		if len(problems) > 0 {
			return middleware.ValidationErrorResponse(c, problems)
		}

		c.Locals("validatedQuery", params)
		return c.Next()
	}
}

func normalizeQuery(raw *listQuery) (*feedbackService.QueryParams, []string) {
	var problems []string

	params := &feedbackService.QueryParams{
		Page:      raw.Page,
		Limit:     raw.Limit,
		Search:    strings.TrimSpace(raw.Search),
		Type:      raw.Type,
		Status:    raw.Status,
		Priority:  raw.Priority,
		SortBy:    raw.SortBy,
		SortOrder: raw.SortOrder,
	}

	// Pagination: clamp, never reject
	if params.Page < 1 {
		params.Page = defaultPage
	}
	if params.Limit == 0 {
		params.Limit = defaultLimit
	} else if params.Limit < 1 {
		params.Limit = 1
	} else if params.Limit > maxLimit {
		params.Limit = maxLimit
	}

	if params.SortBy == "" {
		params.SortBy = "created_at"
	} else if !contains(sortFields, params.SortBy) {
		problems = append(problems, "sortBy must be one of: "+strings.Join(sortFields, ", "))
	}
	if params.SortOrder == "" {
		params.SortOrder = "desc"
	} else if params.SortOrder != "asc" && params.SortOrder != "desc" {
		problems = append(problems, "sortOrder must be asc or desc")
	}

	if params.Type != "" && !models.ValidFeedbackType(params.Type) {
		problems = append(problems, "type must be one of: "+strings.Join(models.FeedbackTypes, ", "))
	}
	if params.Status != "" && !models.ValidFeedbackStatus(params.Status) {
		problems = append(problems, "status must be one of: "+strings.Join(models.FeedbackStatuses, ", "))
	}
	if params.Priority != "" && !models.ValidFeedbackPriority(params.Priority) {
		problems = append(problems, "priority must be one of: "+strings.Join(models.FeedbackPriorities, ", "))
	}

	if raw.DateFrom != "" {
		t, err := parseDate(raw.DateFrom, false)
		if err != nil {
			problems = append(problems, "dateFrom must be an RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			params.DateFrom = &t
		}
	}
	if raw.DateTo != "" {
		t, err := parseDate(raw.DateTo, true)
		if err != nil {
			problems = append(problems, "dateTo must be an RFC 3339 timestamp or YYYY-MM-DD date")
		} else {
			params.DateTo = &t
		}
	}

	return params, problems
}

// parseDate accepts RFC 3339 or a plain date. A plain-date upper bound is
// widened to the end of that day so the range stays inclusive.
func parseDate(s string, upperBound bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if upperBound {
		t = now.New(t).EndOfDay()
	}
	return t, nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
