package blog

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/VisaPro-Team/be-visa-platform/config"
	"github.com/VisaPro-Team/be-visa-platform/middleware"
	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/VisaPro-Team/be-visa-platform/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

const selectColumns = "id, title, content, image_url, author, tags, status, publish_date, created_at, updated_at"

var sanitizer = bluemonday.UGCPolicy()

// ListBlogsHandler returns published posts for the public site, newest
// publish first.
func ListBlogsHandler(c echo.Context) error {
	log := logger.Get().WithComponent("blog")

	blogs := []Blog{}
	err := config.DB.Select(&blogs,
		"SELECT "+selectColumns+" FROM blogs WHERE status = ? ORDER BY publish_date DESC", StatusPublished)
	if err != nil {
		log.Error("Failed to list published blogs", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, blogs)
}

// ListBlogsAdminHandler returns every post including drafts, newest first.
func ListBlogsAdminHandler(c echo.Context) error {
	log := logger.Get().WithComponent("blog")

	blogs := []Blog{}
	err := config.DB.Select(&blogs, "SELECT "+selectColumns+" FROM blogs ORDER BY created_at DESC")
	if err != nil {
		log.Error("Failed to list blogs", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, blogs)
}

// ListBlogsByTagHandler returns published posts carrying a tag.
func ListBlogsByTagHandler(c echo.Context) error {
	log := logger.Get().WithComponent("blog")
	tag := c.Param("tag")

	blogs := []Blog{}
	err := config.DB.Select(&blogs, `
		SELECT `+selectColumns+`
		FROM blogs
		WHERE status = ? AND JSON_CONTAINS(tags, JSON_QUOTE(?))
		ORDER BY publish_date DESC
	`, StatusPublished, tag)
	if err != nil {
		log.Error("Failed to list blogs by tag", err, logger.String("tag", tag))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, blogs)
}

// GetBlogHandler returns a single post. Drafts are only visible to requests
// carrying a valid session token; everyone else gets 404, not 403, so the
// existence of a draft is not revealed.
func GetBlogHandler(c echo.Context) error {
	log := logger.Get().WithComponent("blog")

	id, appErr := parseID(c)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	b, err := getBlogByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeBlogNotFound,
				"Blog not found.",
			))
		}
		log.Error("Failed to fetch blog", err, logger.BlogID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if b.Status != StatusPublished && !middleware.HasToken(c) {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeBlogNotFound,
			"Blog not found.",
		))
	}

	return apperrors.RespondWithSuccess(c, b)
}

// CreateBlogHandler creates a post. A post created directly as published gets
// its publish date stamped immediately.
func CreateBlogHandler(c echo.Context) error {
	log := logger.Get().WithComponent("blog")
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

	status := StatusDraft
	if req.Status != "" {
		status = Status(req.Status)
	}

	var publishDate *time.Time
	if status == StatusPublished {
		now := time.Now()
		publishDate = &now
	}

	result, err := config.DB.Exec(`
		INSERT INTO blogs (title, content, image_url, author, tags, status, publish_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, req.Title, sanitizer.Sanitize(req.Content), req.ImageURL, req.Author, TagList(req.Tags), status, publishDate)
	if err != nil {
		log.Error("Failed to insert blog", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	id, _ := result.LastInsertId()

	created, err := getBlogByID(id)
	if err != nil {
		log.Error("Failed to fetch created blog", err, logger.BlogID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Blog created", logger.BlogID(id), logger.String("status", status.String()))

	return apperrors.RespondWithCreated(c, created)
}

// UpdateBlogHandler applies a partial update. Writing status=published always
// restamps the publish date, even when the post is already published; moving
// back to draft keeps the previous publish date.
func UpdateBlogHandler(c echo.Context) error {
	log := logger.Get().WithComponent("blog")
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

	existing, err := getBlogByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeBlogNotFound,
				"Blog not found.",
			))
		}
		log.Error("Failed to fetch blog", err, logger.BlogID(id))
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
	if req.Content != "" {
		updated.Content = sanitizer.Sanitize(req.Content)
	}
	if req.ImageURL != "" {
		updated.ImageURL = req.ImageURL
	}
	if req.Author != "" {
		updated.Author = req.Author
	}
	if req.Tags != nil {
		updated.Tags = TagList(req.Tags)
	}
	if req.Status != "" {
		newStatus, err := ParseStatus(req.Status)
		if err != nil {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeInvalidStatus,
				"Invalid status value.",
			))
		}
		updated.Status = newStatus
		if newStatus == StatusPublished {
			now := time.Now()
			updated.PublishDate = &now
		}
	}

	_, err = config.DB.Exec(`
		UPDATE blogs
		SET title = ?, content = ?, image_url = ?, author = ?, tags = ?, status = ?, publish_date = ?, updated_at = NOW()
		WHERE id = ?
	`, updated.Title, updated.Content, updated.ImageURL, updated.Author, updated.Tags, updated.Status, updated.PublishDate, id)
	if err != nil {
		log.Error("Failed to update blog", err, logger.BlogID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	result, err := getBlogByID(id)
	if err != nil {
		log.Error("Failed to fetch updated blog", err, logger.BlogID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Blog updated",
		logger.BlogID(id),
		logger.String("from", existing.Status.String()),
		logger.String("to", updated.Status.String()),
	)

	return apperrors.RespondWithSuccess(c, result)
}

// DeleteBlogHandler removes a post.
func DeleteBlogHandler(c echo.Context) error {
	log := logger.Get().WithComponent("blog")

	id, appErr := parseID(c)
	if appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	result, err := config.DB.Exec("DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		log.Error("Failed to delete blog", err, logger.BlogID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeBlogNotFound,
			"Blog not found.",
		))
	}

	log.Info("Blog deleted", logger.BlogID(id))

	return c.JSON(http.StatusOK, map[string]string{"message": "Blog removed."})
}

func getBlogByID(id int64) (*Blog, error) {
	var b Blog
	err := config.DB.Get(&b, "SELECT "+selectColumns+" FROM blogs WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func parseID(c echo.Context) (int64, *apperrors.AppError) {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil || id <= 0 {
		return 0, apperrors.NewNotFound(apperrors.ErrCodeBlogNotFound, "Blog not found.")
	}
	return id, nil
}
