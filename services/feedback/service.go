package feedback

import (
	"encoding/json"
	"errors"
	"fab/models"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service runs all feedback operations against an injected store handle
type Service struct {
	db *gorm.DB
}

// NewService wraps a gorm handle
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// newFeedbackID builds an opaque id from the creation instant and a random suffix
func newFeedbackID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("fb_%d_%s", time.Now().UnixMilli(), suffix)
}

func tagsJSON(tags []string) datatypes.JSON {
	b, _ := json.Marshal(tags)
	return datatypes.JSON(b)
}

func parseTags(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil
	}
	return tags
}

// Create persists a new record. The server owns id, timestamps and the
// initial status; whatever status the caller sent is ignored.
func (s *Service) Create(data CreateFeedbackData) (*models.Feedback, error) {
	now := time.Now().UTC()

	record := models.Feedback{
		ID:          newFeedbackID(),
		Type:        data.Type,
		Title:       data.Title,
		Description: data.Description,
		Email:       data.Email,
		Tool:        data.Tool,
		Status:      models.StatusNew,
		Priority:    data.Priority,
		Timestamp:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if record.Priority == "" {
		record.Priority = models.PriorityMedium
	}
	if len(data.Tags) > 0 {
		record.Tags = tagsJSON(data.Tags)
	}
	if len(data.Metadata) > 0 {
		record.Metadata = datatypes.JSONMap(data.Metadata)
	}

	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("Failed to create feedback: %v", err)
		return nil, errStore(CodeCreateFailed, "Failed to create feedback!")
	}

	return &record, nil
}

// GetByID fetches exactly one record
func (s *Service) GetByID(id string) (*models.Feedback, error) {
	var record models.Feedback
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound(id)
		}
		log.Printf("Failed to fetch feedback %s: %v", id, err)
		return nil, errStore(CodeFetchFailed, "Failed to fetch feedback!")
	}

	if !record.IntegrityOK() {
		log.Printf("Warning: feedback %s failed integrity check", record.ID)
	}

	return &record, nil
}

// List returns the filtered, sorted page described by p plus its pagination
// metadata. The same params over an unchanged data set always yield the same
// page.
func (s *Service) List(p QueryParams) ([]models.Feedback, Pagination, error) {
	query := applyFilters(s.db.Model(&models.Feedback{}), buildFilters(p))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count feedback: %v", err)
		return nil, Pagination{}, errStore(CodeFetchFailed, "Failed to fetch feedback!")
	}

	offset := (p.Page - 1) * p.Limit
	records := []models.Feedback{}
	if err := query.Order(orderClause(p)).Offset(offset).Limit(p.Limit).Find(&records).Error; err != nil {
		log.Printf("Failed to list feedback: %v", err)
		return nil, Pagination{}, errStore(CodeFetchFailed, "Failed to fetch feedback!")
	}

	for i := range records {
		if !records[i].IntegrityOK() {
			log.Printf("Warning: feedback %s failed integrity check", records[i].ID)
		}
	}

	return records, NewPagination(total, p.Page, p.Limit), nil
}

// Update merges the patch onto the stored record and refreshes updated_at
func (s *Service) Update(id string, patch UpdateFeedbackData) (*models.Feedback, error) {
	var record models.Feedback
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound(id)
		}
		log.Printf("Failed to fetch feedback %s: %v", id, err)
		return nil, errStore(CodeFetchFailed, "Failed to fetch feedback!")
	}

	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Tool != nil {
		updates["tool"] = *patch.Tool
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.Reply != nil {
		updates["reply"] = *patch.Reply
	}
	if patch.Tags != nil {
		updates["tags"] = tagsJSON(patch.Tags)
	}
	if patch.Metadata != nil {
		updates["metadata"] = datatypes.JSONMap(patch.Metadata)
	}

	if err := s.db.Model(&record).Updates(updates).Error; err != nil {
		log.Printf("Failed to update feedback %s: %v", id, err)
		return nil, errStore(CodeUpdateFailed, "Failed to update feedback!")
	}

	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		log.Printf("Failed to reload feedback %s: %v", id, err)
		return nil, errStore(CodeFetchFailed, "Failed to fetch feedback!")
	}

	return &record, nil
}

// Delete physically removes the record. Deleting an id that does not exist
// is treated as success; the store reports zero rows affected, not an error.
func (s *Service) Delete(id string) error {
	if err := s.db.Delete(&models.Feedback{}, "id = ?", id).Error; err != nil {
		log.Printf("Failed to delete feedback %s: %v", id, err)
		return errStore(CodeDeleteFailed, "Failed to delete feedback!")
	}
	return nil
}

// BatchDelete removes every record whose id is in ids in one statement.
// Missing ids are skipped silently; the affected count is returned so callers
// can detect a shortfall.
func (s *Service) BatchDelete(ids []string) (int64, error) {
	res := s.db.Where("id IN ?", ids).Delete(&models.Feedback{})
	if res.Error != nil {
		log.Printf("Failed to batch delete feedback: %v", res.Error)
		return 0, errStore(CodeBatchDeleteFailed, "Failed to delete feedback in batch!")
	}
	return res.RowsAffected, nil
}

// BatchUpdateStatus sets status and refreshes updated_at for every matching id
func (s *Service) BatchUpdateStatus(ids []string, status string) (int64, error) {
	res := s.db.Model(&models.Feedback{}).Where("id IN ?", ids).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		log.Printf("Failed to batch update feedback status: %v", res.Error)
		return 0, errStore(CodeBatchUpdateFailed, "Failed to update feedback in batch!")
	}
	return res.RowsAffected, nil
}

// BatchAddTags unions tags into every matching record's tag set
func (s *Service) BatchAddTags(ids []string, tags []string) (int64, error) {
	var records []models.Feedback
	if err := s.db.Where("id IN ?", ids).Find(&records).Error; err != nil {
		log.Printf("Failed to fetch feedback for tagging: %v", err)
		return 0, errStore(CodeBatchUpdateFailed, "Failed to update feedback in batch!")
	}

	var affected int64
	for i := range records {
		merged := mergeTags(parseTags(records[i].Tags), tags)
		updates := map[string]interface{}{
			"tags":       tagsJSON(merged),
			"updated_at": time.Now().UTC(),
		}
		if err := s.db.Model(&records[i]).Updates(updates).Error; err != nil {
			log.Printf("Failed to tag feedback %s: %v", records[i].ID, err)
			return affected, errStore(CodeBatchUpdateFailed, "Failed to update feedback in batch!")
		}
		affected++
	}

	return affected, nil
}

func mergeTags(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing)+len(extra))
	merged := make([]string, 0, len(existing)+len(extra))
	for _, t := range append(existing, extra...) {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		merged = append(merged, t)
	}
	return merged
}
