package service

import (
	"database/sql"
	"net/http"

	"github.com/VisaPro-Team/be-visa-platform/config"
	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/VisaPro-Team/be-visa-platform/pkg/logger"
	"github.com/labstack/echo/v4"
)

const selectColumns = "id, title, description, eligibility, process, price, category, country, image_url, featured, created_at, updated_at"

// ListServicesHandler returns all services, newest first.
func ListServicesHandler(c echo.Context) error {
	log := logger.Get().WithComponent("service")

	services := []Service{}
	err := config.DB.Select(&services, "SELECT "+selectColumns+" FROM services ORDER BY created_at DESC")
	if err != nil {
		log.Error("Failed to list services", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, services)
}

// ListServicesByCategoryHandler returns services in a category.
func ListServicesByCategoryHandler(c echo.Context) error {
	log := logger.Get().WithComponent("service")
	category := c.Param("category")

	services := []Service{}
	err := config.DB.Select(&services,
		"SELECT "+selectColumns+" FROM services WHERE category = ? ORDER BY created_at DESC", category)
	if err != nil {
		log.Error("Failed to list services by category", err, logger.String("category", category))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, services)
}

// ListFeaturedServicesHandler returns services flagged for the home page.
func ListFeaturedServicesHandler(c echo.Context) error {
	log := logger.Get().WithComponent("service")

	services := []Service{}
	err := config.DB.Select(&services,
		"SELECT "+selectColumns+" FROM services WHERE featured = TRUE ORDER BY created_at DESC")
	if err != nil {
		log.Error("Failed to list featured services", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, services)
}

// GetServiceHandler returns a single service.
func GetServiceHandler(c echo.Context) error {
	log := logger.Get().WithComponent("service")

	id, appErr := parseID(c)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	svc, err := getServiceByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeServiceNotFound,
				"Service not found.",
			))
		}
		log.Error("Failed to fetch service", err, logger.Int64("service_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, svc)
}

// CreateServiceHandler creates a service.
func CreateServiceHandler(c echo.Context) error {
	log := logger.Get().WithComponent("service")
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

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = "/uploads/default-service.jpg"
	}

	result, err := config.DB.Exec(`
		INSERT INTO services (title, description, eligibility, process, price, category, country, image_url, featured, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, req.Title, req.Description, req.Eligibility, req.Process, req.Price, req.Category, req.Country, imageURL, req.Featured)
	if err != nil {
		log.Error("Failed to insert service", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	id, _ := result.LastInsertId()

	created, err := getServiceByID(id)
	if err != nil {
		log.Error("Failed to fetch created service", err, logger.Int64("service_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Service created", logger.Int64("service_id", id))

	return apperrors.RespondWithCreated(c, created)
}

// UpdateServiceHandler applies a partial update.
func UpdateServiceHandler(c echo.Context) error {
	log := logger.Get().WithComponent("service")
	log = log.WithRequestID(logger.GetRequestIDFromContext(c))

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
	if err := c.Validate(req); err != nil {
		appErr, _ := apperrors.AsAppError(err)
		return apperrors.RespondWithError(c, appErr)
	}

	existing, err := getServiceByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeServiceNotFound,
				"Service not found.",
			))
		}
		log.Error("Failed to fetch service", err, logger.Int64("service_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	updated := *existing
	if req.Title != "" {
		updated.Title = req.Title
	}
	if req.Description != "" {
		updated.Description = req.Description
	}
	if req.Eligibility != "" {
		updated.Eligibility = req.Eligibility
	}
	if req.Process != "" {
		updated.Process = req.Process
	}
	if req.Price != "" {
		updated.Price = req.Price
	}
	if req.Category != "" {
		updated.Category = req.Category
	}
	if req.Country != "" {
		updated.Country = req.Country
	}
	if req.ImageURL != "" {
		updated.ImageURL = req.ImageURL
	}
	if req.Featured != nil {
		updated.Featured = *req.Featured
	}

	_, err = config.DB.Exec(`
		UPDATE services
		SET title = ?, description = ?, eligibility = ?, process = ?, price = ?, category = ?, country = ?, image_url = ?, featured = ?, updated_at = NOW()
		WHERE id = ?
	`, updated.Title, updated.Description, updated.Eligibility, updated.Process, updated.Price, updated.Category, updated.Country, updated.ImageURL, updated.Featured, id)
	if err != nil {
		log.Error("Failed to update service", err, logger.Int64("service_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	result, err := getServiceByID(id)
	if err != nil {
		log.Error("Failed to fetch updated service", err, logger.Int64("service_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, result)
}

// DeleteServiceHandler removes a service.
func DeleteServiceHandler(c echo.Context) error {
	log := logger.Get().WithComponent("service")

	id, appErr := parseID(c)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	result, err := config.DB.Exec("DELETE FROM services WHERE id = ?", id)
	if err != nil {
		log.Error("Failed to delete service", err, logger.Int64("service_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeServiceNotFound,
			"Service not found.",
		))
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Service removed."})
}

func getServiceByID(id int64) (*Service, error) {
	var svc Service
	err := config.DB.Get(&svc, "SELECT "+selectColumns+" FROM services WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func parseID(c echo.Context) (int64, *apperrors.AppError) {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(apperrors.ErrCodeServiceNotFound, "Service not found.")
	}
	return id, nil
}
