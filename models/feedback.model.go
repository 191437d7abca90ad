package models

import (
	"time"

	"gorm.io/datatypes"
)

// Feedback type values
const (
	TypeBug         = "bug"
	TypeFeature     = "feature"
	TypeImprovement = "improvement"
	TypeOther       = "other"
)

// Feedback status values
const (
	StatusNew        = "new"
	StatusReviewed   = "reviewed"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

// Feedback priority values
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Ordered enum members, used for validation and for fixed-key histograms.
var (
	FeedbackTypes      = []string{TypeBug, TypeFeature, TypeImprovement, TypeOther}
	FeedbackStatuses   = []string{StatusNew, StatusReviewed, StatusInProgress, StatusResolved}
	FeedbackPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
)

// Feedback is a user-submitted report about one of the browser tools.
type Feedback struct {
	ID          string            `json:"id" gorm:"primaryKey;size:64"`
	Type        string            `json:"type" gorm:"size:20;not null"`
	Title       string            `json:"title" gorm:"size:200;not null"`
	Description string            `json:"description" gorm:"type:text;not null"`
	Email       string            `json:"email,omitempty" gorm:"size:255"`
	Tool        string            `json:"tool,omitempty" gorm:"size:100"`
	Status      string            `json:"status" gorm:"size:20;default:'new'"`
	Priority    string            `json:"priority" gorm:"size:20;default:'medium'"`
	Reply       string            `json:"reply,omitempty" gorm:"type:text"`
	Tags        datatypes.JSON    `json:"tags,omitempty"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (Feedback) TableName() string { return "feedbacks" }

// IntegrityOK reports whether a stored record still carries the fields every
// feedback must have. Used as a guard on reads, not as blocking validation.
func (f *Feedback) IntegrityOK() bool {
	return f.ID != "" &&
		f.Type != "" &&
		f.Title != "" &&
		f.Description != "" &&
		!f.CreatedAt.IsZero()
}

// ValidFeedbackType reports whether v is a member of the type enum
func ValidFeedbackType(v string) bool { return contains(FeedbackTypes, v) }

// ValidFeedbackStatus reports whether v is a member of the status enum
func ValidFeedbackStatus(v string) bool { return contains(FeedbackStatuses, v) }

// ValidFeedbackPriority reports whether v is a member of the priority enum
func ValidFeedbackPriority(v string) bool { return contains(FeedbackPriorities, v) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
