package feedback

import "time"

// Batch actions accepted by the batch endpoint
const (
	ActionDelete       = "delete"
	ActionUpdateStatus = "update_status"
	ActionAddTags      = "add_tags"
)

// CreateFeedbackData is a validated, sanitized create payload. Status is not
// part of it: new records always start as "new".
type CreateFeedbackData struct {
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Email       string                 `json:"email,omitempty"`
	Tool        string                 `json:"tool,omitempty"`
	Priority    string                 `json:"priority,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateFeedbackData is a partial patch; nil fields are left untouched.
type UpdateFeedbackData struct {
	Type        *string                `json:"type,omitempty"`
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	Email       *string                `json:"email,omitempty"`
	Tool        *string                `json:"tool,omitempty"`
	Status      *string                `json:"status,omitempty"`
	Priority    *string                `json:"priority,omitempty"`
	Reply       *string                `json:"reply,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// BatchActionData carries the per-action payload of a batch request
type BatchActionData struct {
	Status string   `json:"status,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// BatchActionRequest applies one action to a set of ids
type BatchActionRequest struct {
	IDs    []string         `json:"ids"`
	Action string           `json:"action"`
	Data   *BatchActionData `json:"data,omitempty"`
}

// QueryParams is a normalized list query: pagination, sort and filters.
type QueryParams struct {
	Page      int
	Limit     int
	Search    string
	Type      string
	Status    string
	Priority  string
	SortBy    string
	SortOrder string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// Pagination describes the page window of a list response
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination computes page metadata for a filtered total
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
