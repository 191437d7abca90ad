package feedbackControllers

import (
	"fab/database"
	"fab/middleware"
	feedbackService "fab/services/feedback"
	"fab/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateFeedback stores a validated submission and fires operator
// notifications in the background.
func CreateFeedback(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateFeedback").(*feedbackService.CreateFeedbackData)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request data!")
	}

	svc := feedbackService.NewService(database.Database.Db)
	record, err := svc.Create(*reqData)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	go utils.NotifyNewFeedback(record)

	return middleware.SuccessResponse(c, fiber.StatusCreated, record)
}

// ListFeedback returns a filtered, sorted, paginated page of records
func ListFeedback(c *fiber.Ctx) error {
	params, ok := c.Locals("validatedQuery").(*feedbackService.QueryParams)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request data!")
	}

	svc := feedbackService.NewService(database.Database.Db)
	records, pagination, err := svc.List(*params)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"feedbacks":  records,
		"pagination": pagination,
	})
}

// GetFeedback fetches a single record by id
func GetFeedback(c *fiber.Ctx) error {
	id := c.Params("id")

	svc := feedbackService.NewService(database.Database.Db)
	record, err := svc.GetByID(id)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.SuccessResponse(c, fiber.StatusOK, record)
}

// UpdateFeedback applies a partial patch to an existing record
func UpdateFeedback(c *fiber.Ctx) error {
	id := c.Params("id")

	reqData, ok := c.Locals("validatedUpdateFeedback").(*feedbackService.UpdateFeedbackData)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request data!")
	}

	svc := feedbackService.NewService(database.Database.Db)
	record, err := svc.Update(id, *reqData)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.SuccessResponse(c, fiber.StatusOK, record)
}

// DeleteFeedback physically removes a record
func DeleteFeedback(c *fiber.Ctx) error {
	id := c.Params("id")

	svc := feedbackService.NewService(database.Database.Db)
	if err := svc.Delete(id); err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": id})
}

// BatchAction applies one mutation to a set of ids
func BatchAction(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedBatchAction").(*feedbackService.BatchActionRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidRequest, "Invalid request data!")
	}

	svc := feedbackService.NewService(database.Database.Db)

	var (
		affected int64
		err      error
	)
	switch reqData.Action {
	case feedbackService.ActionDelete:
		affected, err = svc.BatchDelete(reqData.IDs)
	case feedbackService.ActionUpdateStatus:
		affected, err = svc.BatchUpdateStatus(reqData.IDs, reqData.Data.Status)
	case feedbackService.ActionAddTags:
		affected, err = svc.BatchAddTags(reqData.IDs, reqData.Data.Tags)
	}
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"action":   reqData.Action,
		"affected": affected,
	})
}
