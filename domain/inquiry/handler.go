package inquiry

import (
	"database/sql"
	"net/http"

	"github.com/VisaPro-Team/be-visa-platform/config"
	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/VisaPro-Team/be-visa-platform/pkg/logger"
	"github.com/labstack/echo/v4"
)

const selectColumns = "id, name, email, phone, nationality, service_type, message, files, status, notes, created_at, updated_at"

// CreateInquiryHandler accepts a public (unauthenticated) inquiry submission.
// New inquiries always start in the pending state.
func CreateInquiryHandler(c echo.Context) error {
	log := logger.Get().WithComponent("inquiry")
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
		INSERT INTO inquiries (name, email, phone, nationality, service_type, message, files, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, '', NOW(), NOW())
	`, req.Name, req.Email, req.Phone, req.Nationality, req.ServiceType, req.Message, FileList(req.Files), StatusPending)
	if err != nil {
		log.Error("Failed to insert inquiry", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	id, _ := result.LastInsertId()

	created, err := getInquiryByID(id)
	if err != nil {
		log.Error("Failed to fetch created inquiry", err, logger.InquiryID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Inquiry created", logger.InquiryID(id), logger.String("service_type", req.ServiceType))

	return apperrors.RespondWithCreated(c, created)
}

// ListInquiriesHandler returns all inquiries, newest first.
func ListInquiriesHandler(c echo.Context) error {
	log := logger.Get().WithComponent("inquiry")

	inquiries := []Inquiry{}
	err := config.DB.Select(&inquiries, "SELECT "+selectColumns+" FROM inquiries ORDER BY created_at DESC")
	if err != nil {
		log.Error("Failed to list inquiries", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, inquiries)
}

// ListInquiriesByStatusHandler returns inquiries in a given state, newest first.
func ListInquiriesByStatusHandler(c echo.Context) error {
	log := logger.Get().WithComponent("inquiry")

	status, err := ParseStatus(c.Param("status"))
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidStatus,
			"Invalid status value.",
		))
	}

	inquiries := []Inquiry{}
	err = config.DB.Select(&inquiries,
		"SELECT "+selectColumns+" FROM inquiries WHERE status = ? ORDER BY created_at DESC", status)
	if err != nil {
		log.Error("Failed to list inquiries by status", err, logger.String("status", status.String()))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, inquiries)
}

// GetInquiryHandler returns a single inquiry by id.
func GetInquiryHandler(c echo.Context) error {
	log := logger.Get().WithComponent("inquiry")

	id, appErr := parseID(c)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	inq, err := getInquiryByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeInquiryNotFound,
				"Inquiry not found.",
			))
		}
		log.Error("Failed to fetch inquiry", err, logger.InquiryID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, inq)
}

// UpdateInquiryStatusHandler moves an inquiry to a new lifecycle state. The
// transition table permits every state to reach every other; the updated
// timestamp is stamped on each transition and notes are overwritten only when
// supplied.
func UpdateInquiryStatusHandler(c echo.Context) error {
	log := logger.Get().WithComponent("inquiry")
	log = log.WithRequestID(logger.GetRequestIDFromContext(c))

	id, appErr := parseID(c)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	req := new(UpdateStatusRequest)
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

	newStatus, err := ParseStatus(req.Status)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidStatus,
			"Invalid status value.",
		))
	}

	existing, err := getInquiryByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeInquiryNotFound,
				"Inquiry not found.",
			))
		}
		log.Error("Failed to fetch inquiry", err, logger.InquiryID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if !existing.Status.CanTransitionTo(newStatus) {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidStatus,
			"Invalid status value.",
		))
	}

	notes := existing.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	_, err = config.DB.Exec(
		"UPDATE inquiries SET status = ?, notes = ?, updated_at = NOW() WHERE id = ?",
		newStatus, notes, id,
	)
	if err != nil {
		log.Error("Failed to update inquiry status", err, logger.InquiryID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	updated, err := getInquiryByID(id)
	if err != nil {
		log.Error("Failed to fetch updated inquiry", err, logger.InquiryID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Inquiry status updated",
		logger.InquiryID(id),
		logger.String("from", existing.Status.String()),
		logger.String("to", newStatus.String()),
	)

	return apperrors.RespondWithSuccess(c, updated)
}

// DeleteInquiryHandler removes an inquiry.
func DeleteInquiryHandler(c echo.Context) error {
	log := logger.Get().WithComponent("inquiry")

	id, appErr := parseID(c)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	result, err := config.DB.Exec("DELETE FROM inquiries WHERE id = ?", id)
	if err != nil {
		log.Error("Failed to delete inquiry", err, logger.InquiryID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeInquiryNotFound,
			"Inquiry not found.",
		))
	}

	log.Info("Inquiry deleted", logger.InquiryID(id))

	return c.JSON(http.StatusOK, map[string]string{"message": "Inquiry removed."})
}

func getInquiryByID(id int64) (*Inquiry, error) {
	var inq Inquiry
	err := config.DB.Get(&inq, "SELECT "+selectColumns+" FROM inquiries WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &inq, nil
}

func parseID(c echo.Context) (int64, *apperrors.AppError) {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(apperrors.ErrCodeInquiryNotFound, "Inquiry not found.")
	}
	return id, nil
}
