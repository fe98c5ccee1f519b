package faq

import (
	"database/sql"
	"net/http"

	"github.com/VisaPro-Team/be-visa-platform/config"
	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/VisaPro-Team/be-visa-platform/pkg/logger"
	"github.com/labstack/echo/v4"
)

const selectColumns = "id, question, answer, category, display_order, created_at, updated_at"

// ListFAQsHandler returns all FAQs in display order.
func ListFAQsHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	faqs := []FAQ{}
	err := config.DB.Select(&faqs, "SELECT "+selectColumns+" FROM faqs ORDER BY display_order ASC, created_at DESC")
	if err != nil {
		log.Error("Failed to list FAQs", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, faqs)
}

// ListFAQsByCategoryHandler returns FAQs in a category.
func ListFAQsByCategoryHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")
	category := c.Param("category")

	faqs := []FAQ{}
	err := config.DB.Select(&faqs,
		"SELECT "+selectColumns+" FROM faqs WHERE category = ? ORDER BY display_order ASC, created_at DESC", category)
	if err != nil {
		log.Error("Failed to list FAQs by category", err, logger.String("category", category))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, faqs)
}

// GetFAQHandler returns a single FAQ.
func GetFAQHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	id, appErr := parseID(c)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	f, err := getFAQByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeFAQNotFound,
				"FAQ not found.",
			))
		}
		log.Error("Failed to fetch FAQ", err, logger.Int64("faq_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, f)
}

// CreateFAQHandler creates a FAQ.
func CreateFAQHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")
	log = log.WithRequestID(logger.GetRequestIDFromContext(c))

	req := new(CreateRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if err := c.Validate(req); err != nil {
		appErr, _ := apperrors.AsAppError(err)
		return apperrors.RespondWithError(c, appErr)
	}

	result, err := config.DB.Exec(`
		INSERT INTO faqs (question, answer, category, display_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
	`, req.Question, req.Answer, req.Category, req.Order)
	if err != nil {
		log.Error("Failed to insert FAQ", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	id, _ := result.LastInsertId()

	created, err := getFAQByID(id)
	if err != nil {
		log.Error("Failed to fetch created FAQ", err, logger.Int64("faq_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("FAQ created", logger.Int64("faq_id", id))

	return apperrors.RespondWithCreated(c, created)
}

// UpdateFAQHandler applies a partial update.
func UpdateFAQHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	id, appErr := parseID(c)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	req := new(UpdateRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	existing, err := getFAQByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeFAQNotFound,
				"FAQ not found.",
			))
		}
		log.Error("Failed to fetch FAQ", err, logger.Int64("faq_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	updated := *existing
	if req.Question != "" {
		updated.Question = req.Question
	}
	if req.Answer != "" {
		updated.Answer = req.Answer
	}
	if req.Category != "" {
		updated.Category = req.Category
	}
	if req.Order != nil {
		updated.Order = *req.Order
	}

	_, err = config.DB.Exec(`
		UPDATE faqs
		SET question = ?, answer = ?, category = ?, display_order = ?, updated_at = NOW()
		WHERE id = ?
	`, updated.Question, updated.Answer, updated.Category, updated.Order, id)
	if err != nil {
		log.Error("Failed to update FAQ", err, logger.Int64("faq_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	result, err := getFAQByID(id)
	if err != nil {
		log.Error("Failed to fetch updated FAQ", err, logger.Int64("faq_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, result)
}

// DeleteFAQHandler removes a FAQ.
func DeleteFAQHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	id, appErr := parseID(c)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	result, err := config.DB.Exec("DELETE FROM faqs WHERE id = ?", id)
	if err != nil {
		log.Error("Failed to delete FAQ", err, logger.Int64("faq_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeFAQNotFound,
			"FAQ not found.",
		))
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "FAQ removed."})
}

func getFAQByID(id int64) (*FAQ, error) {
	var f FAQ
	err := config.DB.Get(&f, "SELECT "+selectColumns+" FROM faqs WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func parseID(c echo.Context) (int64, *apperrors.AppError) {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(apperrors.ErrCodeFAQNotFound, "FAQ not found.")
	}
	return id, nil
}
