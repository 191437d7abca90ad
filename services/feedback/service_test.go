package feedback

import (
	"fab/models"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database keeps every pooled connection on the
	// same in-memory store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Feedback{}))
	return db
}

func defaultQuery() QueryParams {
	return QueryParams{
		Page:      1,
		Limit:     10,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

func TestCreateSetsServerOwnedFields(t *testing.T) {
	svc := NewService(openTestDB(t))

	record, err := svc.Create(CreateFeedbackData{
		Type:        models.TypeBug,
		Title:       "Crash on save",
		Description: "The color picker crashes when saving a palette",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(record.ID, "fb_"), "id should carry the fb_ prefix, got %s", record.ID)
	assert.Equal(t, models.StatusNew, record.Status)
	assert.Equal(t, models.PriorityMedium, record.Priority)
	assert.False(t, record.CreatedAt.IsZero())
	assert.False(t, record.UpdatedAt.IsZero())
	assert.False(t, record.Timestamp.IsZero())
	assert.Equal(t, record.CreatedAt, record.UpdatedAt)
	assert.Equal(t, record.CreatedAt, record.Timestamp)
}

func TestCreateKeepsExplicitPriority(t *testing.T) {
	svc := NewService(openTestDB(t))

	record, err := svc.Create(CreateFeedbackData{
		Type:        models.TypeFeature,
		Title:       "Dark mode for the regex tester",
		Description: "Please add a dark theme",
		Priority:    models.PriorityUrgent,
		Tags:        []string{"ui", "theme"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.PriorityUrgent, record.Priority)
	assert.Equal(t, []string{"ui", "theme"}, parseTags(record.Tags))
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(openTestDB(t))

	_, err := svc.GetByID("fb_0_missing")
	require.Error(t, err)

	se, ok := err.(*ServiceError)
	require.True(t, ok, "expected a ServiceError, got %T", err)
	assert.Equal(t, CodeNotFound, se.Code())
	assert.Equal(t, 404, se.Status())
}

func TestUpdateRoundTrip(t *testing.T) {
	svc := NewService(openTestDB(t))

	created, err := svc.Create(CreateFeedbackData{
		Type:        models.TypeBug,
		Title:       "Haversine result off by 2%",
		Description: "Distance between fixed points disagrees with reference",
	})
	require.NoError(t, err)

	before := created.UpdatedAt
	time.Sleep(20 * time.Millisecond)

	status := models.StatusResolved
	reply := "Fixed the earth radius constant"
	_, err = svc.Update(created.ID, UpdateFeedbackData{Status: &status, Reply: &reply})
	require.NoError(t, err)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusResolved, got.Status)
	assert.Equal(t, reply, got.Reply)
	assert.True(t, got.UpdatedAt.After(before), "updated_at must strictly increase: before=%v after=%v", before, got.UpdatedAt)
	assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix(), "created_at must not change")
}

func TestUpdateMissingIDReturnsNotFound(t *testing.T) {
	svc := NewService(openTestDB(t))

	status := models.StatusReviewed
	_, err := svc.Update("fb_0_missing", UpdateFeedbackData{Status: &status})
	require.Error(t, err)

	se, ok := err.(*ServiceError)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, se.Code())
}

func TestDeleteMissingIDSucceeds(t *testing.T) {
	// Deleting an id that does not exist is silent success, by design.
	svc := NewService(openTestDB(t))

	assert.NoError(t, svc.Delete("fb_0_missing"))
}

func TestDeleteRemovesRecord(t *testing.T) {
	svc := NewService(openTestDB(t))

	record, err := svc.Create(CreateFeedbackData{
		Type:        models.TypeOther,
		Title:       "Spam",
		Description: "Spam submission",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(record.ID))

	_, err = svc.GetByID(record.ID)
	require.Error(t, err)
}

func TestBatchDeleteSkipsMissingIDs(t *testing.T) {
	svc := NewService(openTestDB(t))

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		record, err := svc.Create(CreateFeedbackData{
			Type:        models.TypeBug,
			Title:       fmt.Sprintf("Bug %d", i),
			Description: "details",
		})
		require.NoError(t, err)
		ids = append(ids, record.ID)
	}

	affected, err := svc.BatchDelete(append(ids, "fb_0_missing"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}

func TestBatchUpdateStatus(t *testing.T) {
	svc := NewService(openTestDB(t))

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		record, err := svc.Create(CreateFeedbackData{
			Type:        models.TypeImprovement,
			Title:       fmt.Sprintf("Improvement %d", i),
			Description: "details",
		})
		require.NoError(t, err)
		ids = append(ids, record.ID)
	}

	affected, err := svc.BatchUpdateStatus(ids[:2], models.StatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	got, err := svc.GetByID(ids[0])
	require.NoError(t, err)
	assert.Equal(t, models.StatusReviewed, got.Status)

	untouched, err := svc.GetByID(ids[2])
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, untouched.Status)
}

func TestBatchAddTagsMergesWithoutDuplicates(t *testing.T) {
	svc := NewService(openTestDB(t))

	record, err := svc.Create(CreateFeedbackData{
		Type:        models.TypeBug,
		Title:       "QR render glitch",
		Description: "details",
		Tags:        []string{"qr", "render"},
	})
	require.NoError(t, err)

	affected, err := svc.BatchAddTags([]string{record.ID}, []string{"render", "mobile"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := svc.GetByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"qr", "render", "mobile"}, parseTags(got.Tags))
}

func TestListSearchCountsMatches(t *testing.T) {
	svc := NewService(openTestDB(t))

	titles := []string{
		"Crash on save",
		"Editor crash when pasting",
		"Feature request: export",
		"App CRASHES on resize",
		"Unit converter rounding",
	}
	for _, title := range titles {
		_, err := svc.Create(CreateFeedbackData{
			Type:        models.TypeBug,
			Title:       title,
			Description: "details",
		})
		require.NoError(t, err)
	}

	params := defaultQuery()
	params.Search = "crash"

	records, pagination, err := svc.List(params)
	require.NoError(t, err)

	assert.Equal(t, int64(3), pagination.Total)
	assert.Len(t, records, 3)
}

func TestListFiltersAreANDCombined(t *testing.T) {
	svc := NewService(openTestDB(t))

	_, err := svc.Create(CreateFeedbackData{
		Type: models.TypeBug, Title: "Bug A", Description: "details", Priority: models.PriorityHigh,
	})
	require.NoError(t, err)
	_, err = svc.Create(CreateFeedbackData{
		Type: models.TypeBug, Title: "Bug B", Description: "details", Priority: models.PriorityLow,
	})
	require.NoError(t, err)
	_, err = svc.Create(CreateFeedbackData{
		Type: models.TypeFeature, Title: "Feature C", Description: "details", Priority: models.PriorityHigh,
	})
	require.NoError(t, err)

	params := defaultQuery()
	params.Type = models.TypeBug
	params.Priority = models.PriorityHigh

	records, pagination, err := svc.List(params)
	require.NoError(t, err)

	require.Equal(t, int64(1), pagination.Total)
	assert.Equal(t, "Bug A", records[0].Title)
}

func TestListPaginationWindow(t *testing.T) {
	svc := NewService(openTestDB(t))

	for i := 0; i < 25; i++ {
		_, err := svc.Create(CreateFeedbackData{
			Type:        models.TypeOther,
			Title:       fmt.Sprintf("Entry %02d", i),
			Description: "details",
		})
		require.NoError(t, err)
	}

	params := defaultQuery()
	params.Page = 3
	params.SortBy = "title"
	params.SortOrder = "asc"

	records, pagination, err := svc.List(params)
	require.NoError(t, err)

	assert.Equal(t, int64(25), pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.False(t, pagination.HasNext)
	assert.True(t, pagination.HasPrev)
	require.Len(t, records, 5)
	assert.Equal(t, "Entry 20", records[0].Title)
}

func TestListIsIdempotent(t *testing.T) {
	svc := NewService(openTestDB(t))

	for i := 0; i < 8; i++ {
		_, err := svc.Create(CreateFeedbackData{
			Type:        models.TypeBug,
			Title:       "Duplicate sort key",
			Description: "details",
		})
		require.NoError(t, err)
	}

	params := defaultQuery()
	params.Limit = 5
	params.SortBy = "title" // every record ties; the id tie-break decides

	first, _, err := svc.List(params)
	require.NoError(t, err)
	second, _, err := svc.List(params)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}
