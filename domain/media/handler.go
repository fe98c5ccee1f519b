package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/VisaPro-Team/be-visa-platform/pkg/logger"
	"github.com/VisaPro-Team/be-visa-platform/pkg/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxUploadFiles = 5
const maxFileSize = 10 << 20 // 10 MiB

// UploadHandler stores a single uploaded file and returns its path.
func UploadHandler(c echo.Context) error {
	log := logger.Get().WithComponent("media")
	log = log.WithRequestID(logger.GetRequestIDFromContext(c))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"No file uploaded.",
		))
	}

	url, appErr := storeFile(fileHeader)
	if appErr != nil {
		log.Error("Failed to store media file", appErr, logger.String("filename", fileHeader.Filename))
		return apperrors.RespondWithError(c, appErr)
	}

	log.Info("Media uploaded", logger.String("filename", fileHeader.Filename))

	return apperrors.RespondWithSuccess(c, map[string]string{"file_path": url})
}

// UploadMultipleHandler stores up to five uploaded files.
func UploadMultipleHandler(c echo.Context) error {
	log := logger.Get().WithComponent("media")
	log = log.WithRequestID(logger.GetRequestIDFromContext(c))

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"No files uploaded.",
		))
	}

	files := form.File["files"]
	if len(files) == 0 {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"No files uploaded.",
		))
	}
	if len(files) > maxUploadFiles {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			fmt.Sprintf("At most %d files can be uploaded at once.", maxUploadFiles),
		))
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		url, appErr := storeFile(fileHeader)
		if appErr != nil {
			log.Error("Failed to store media file", appErr, logger.String("filename", fileHeader.Filename))
			return apperrors.RespondWithError(c, appErr)
		}
		urls = append(urls, url)
	}

	log.Info("Media uploaded", logger.Count(len(urls)))

	return apperrors.RespondWithSuccess(c, map[string][]string{"file_paths": urls})
}

// ListMediaHandler lists stored media assets.
func ListMediaHandler(c echo.Context) error {
	log := logger.Get().WithComponent("media")

	objects, err := storage.List()
	if err != nil {
		if err == storage.ErrNotConfigured {
			return apperrors.RespondWithSuccess(c, []storage.Object{})
		}
		log.Error("Failed to list media", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeStorageError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, objects)
}

// DeleteMediaHandler removes a stored media asset.
func DeleteMediaHandler(c echo.Context) error {
	log := logger.Get().WithComponent("media")

	key := c.Param("key")
	if key == "" {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeFileNotFound,
			"File not found.",
		))
	}

	if err := storage.Delete("uploads/" + key); err != nil {
		log.Error("Failed to delete media", err, logger.String("key", key))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeStorageError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Media deleted", logger.String("key", key))

	return c.JSON(http.StatusOK, map[string]string{"message": "File removed."})
}

func storeFile(fileHeader *multipart.FileHeader) (string, *apperrors.AppError) {
	if fileHeader.Size > maxFileSize {
		return "", apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"File exceeds the maximum allowed size.",
		)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}
	defer src.Close()

	body, err := io.ReadAll(src)
	if err != nil {
		return "", apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}

	// uuid prefix avoids collisions between same-named uploads
	key := fmt.Sprintf("uploads/%s%s", uuid.New().String(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := storage.Upload(key, body, contentType)
	if err != nil {
		return "", apperrors.NewInternal(apperrors.ErrCodeStorageError, "Internal server error.", err)
	}

	return url, nil
}
