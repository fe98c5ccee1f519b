package content

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/VisaPro-Team/be-visa-platform/config"
	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/VisaPro-Team/be-visa-platform/pkg/logger"
	"github.com/labstack/echo/v4"
)

const selectColumns = "id, section, data, updated_at"

// GetContentBySectionHandler returns a section's payload for the public
// site. Reads go through the Redis cache when available; a miss falls back to
// the database and repopulates the cache.
func GetContentBySectionHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")

	section, err := ParseSection(c.Param("section"))
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeContentNotFound,
			"Content not found.",
		))
	}

	if cached := config.GetCachedContent(section); cached != "" {
		return c.JSONBlob(http.StatusOK, []byte(cached))
	}

	var content Content
	err = config.DB.Get(&content, "SELECT "+selectColumns+" FROM contents WHERE section = ?", section)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content not found.",
			))
		}
		log.Error("Failed to fetch content", err, logger.Section(section))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if body, err := json.Marshal(content); err == nil {
		if err := config.SetCachedContent(section, string(body)); err != nil {
			log.Warn("Failed to cache content", logger.Section(section), logger.Err(err))
		}
	}

	return apperrors.RespondWithSuccess(c, content)
}

// ListContentHandler returns every section, ordered by key.
func ListContentHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")

	contents := []Content{}
	err := config.DB.Select(&contents, "SELECT "+selectColumns+" FROM contents ORDER BY section ASC")
	if err != nil {
		log.Error("Failed to list content", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, contents)
}

// UpsertContentHandler creates the section row if absent, otherwise
// overwrites its payload and updated timestamp. There is no history and no
// partial-field merge; the new payload replaces the old one entirely.
func UpsertContentHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")
	log = log.WithRequestID(logger.GetRequestIDFromContext(c))

	req := new(UpsertRequest)
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

	section, err := ParseSection(req.Section)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidSection,
			"Invalid section. Valid sections are: home, about, contact, footer.",
		))
	}

	// The unique index on section makes this an atomic create-or-overwrite.
	_, err = config.DB.Exec(`
		INSERT INTO contents (section, data, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE data = VALUES(data), updated_at = NOW()
	`, section, []byte(req.Data))
	if err != nil {
		log.Error("Failed to upsert content", err, logger.Section(section))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if err := config.InvalidateCachedContent(section); err != nil {
		log.Warn("Failed to invalidate content cache", logger.Section(section), logger.Err(err))
	}

	var content Content
	err = config.DB.Get(&content, "SELECT "+selectColumns+" FROM contents WHERE section = ?", section)
	if err != nil {
		log.Error("Failed to fetch upserted content", err, logger.Section(section))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Content upserted", logger.Section(section))

	return apperrors.RespondWithSuccess(c, content)
}

// DeleteContentHandler removes a section.
func DeleteContentHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")

	section, err := ParseSection(c.Param("section"))
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeContentNotFound,
			"Content not found.",
		))
	}

	result, err := config.DB.Exec("DELETE FROM contents WHERE section = ?", section)
	if err != nil {
		log.Error("Failed to delete content", err, logger.Section(section))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeContentNotFound,
			"Content not found.",
		))
	}

	if err := config.InvalidateCachedContent(section); err != nil {
		log.Warn("Failed to invalidate content cache", logger.Section(section), logger.Err(err))
	}

	log.Info("Content deleted", logger.Section(section))

	return c.JSON(http.StatusOK, map[string]string{"message": "Content removed."})
}
