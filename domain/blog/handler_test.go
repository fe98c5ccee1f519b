package blog

import (
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/VisaPro-Team/be-visa-platform/config"
	"github.com/VisaPro-Team/be-visa-platform/middleware"
	"github.com/VisaPro-Team/be-visa-platform/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	config.DB = sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return mock
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = utils.NewRequestValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func blogColumns() []string {
	return []string{"id", "title", "content", "image_url", "author", "tags",
		"status", "publish_date", "created_at", "updated_at"}
}

func blogRow(id int64, status Status, publishDate *time.Time) *sqlmock.Rows {
	now := time.Now()
	var pd interface{}
	if publishDate != nil {
		pd = *publishDate
	}
	return sqlmock.NewRows(blogColumns()).
		AddRow(id, "Visa Tips", "<p>Some content</p>", "/uploads/cover.jpg", "Staff",
			[]byte(`["visa"]`), status.String(), pd, now, now)
}

// timeArg matches any time stamped at or after a reference point.
type timeArg struct{ after time.Time }

func (a timeArg) Match(v driver.Value) bool {
	t, ok := v.(time.Time)
	return ok && !t.Before(a.after)
}

func TestCreateBlogHandlerPublishedStampsDate(t *testing.T) {
	mock := setupMockDB(t)
	start := time.Now().Truncate(time.Second)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO blogs")).
		WithArgs("Visa Tips", "<p>Some content</p>", "", "", sqlmock.AnyArg(),
			StatusPublished, timeArg{after: start}).
		WillReturnResult(sqlmock.NewResult(3, 1))
	published := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(blogRow(3, StatusPublished, &published))

	c, rec := newJSONContext(t, http.MethodPost, "/blogs",
		`{"title": "Visa Tips", "content": "<p>Some content</p>", "status": "published"}`)
	require.NoError(t, CreateBlogHandler(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlogHandlerDraftHasNoPublishDate(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO blogs")).
		WithArgs("Visa Tips", "<p>Some content</p>", "", "", sqlmock.AnyArg(),
			StatusDraft, nil).
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE id = ?")).
		WithArgs(int64(4)).
		WillReturnRows(blogRow(4, StatusDraft, nil))

	c, rec := newJSONContext(t, http.MethodPost, "/blogs",
		`{"title": "Visa Tips", "content": "<p>Some content</p>"}`)
	require.NoError(t, CreateBlogHandler(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"publish_date":null`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBlogHandlerSanitizesContent(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO blogs")).
		WithArgs("Visa Tips", "<p>hello</p>", "", "", sqlmock.AnyArg(),
			StatusDraft, nil).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(blogRow(5, StatusDraft, nil))

	// The script tag never reaches the database.
	c, _ := newJSONContext(t, http.MethodPost, "/blogs",
		`{"title": "Visa Tips", "content": "<p>hello</p><script>alert(1)</script>"}`)
	require.NoError(t, CreateBlogHandler(c))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBlogHandlerRepublishRestampsDate(t *testing.T) {
	mock := setupMockDB(t)
	old := time.Now().Add(-48 * time.Hour)
	start := time.Now().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(blogRow(3, StatusPublished, &old))
	// Writing published again moves publish_date forward.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE blogs")).
		WithArgs("Visa Tips", "<p>Some content</p>", "/uploads/cover.jpg", "Staff",
			sqlmock.AnyArg(), StatusPublished, timeArg{after: start}, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	restamped := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(blogRow(3, StatusPublished, &restamped))

	c, rec := newJSONContext(t, http.MethodPut, "/blogs/3", `{"status": "published"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, UpdateBlogHandler(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBlogHandlerUnpublishKeepsDate(t *testing.T) {
	mock := setupMockDB(t)
	old := time.Now().Add(-48 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(blogRow(3, StatusPublished, &old))
	// Moving back to draft keeps the prior publish_date.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE blogs")).
		WithArgs("Visa Tips", "<p>Some content</p>", "/uploads/cover.jpg", "Staff",
			sqlmock.AnyArg(), StatusDraft, old, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(blogRow(3, StatusDraft, &old))

	c, rec := newJSONContext(t, http.MethodPut, "/blogs/3", `{"status": "draft"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, UpdateBlogHandler(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBlogHandlerDraftVisibility(t *testing.T) {
	viper.Set("JWT_SECRET", "test-secret")
	t.Cleanup(func() { viper.Set("JWT_SECRET", "") })

	t.Run("anonymous gets 404", func(t *testing.T) {
		mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE id = ?")).
			WithArgs(int64(9)).
			WillReturnRows(blogRow(9, StatusDraft, nil))

		c, rec := newJSONContext(t, http.MethodGet, "/blogs/9", "")
		c.SetParamNames("id")
		c.SetParamValues("9")
		require.NoError(t, GetBlogHandler(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("authenticated sees draft", func(t *testing.T) {
		mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE id = ?")).
			WithArgs(int64(9)).
			WillReturnRows(blogRow(9, StatusDraft, nil))

		token, err := utils.GenerateToken(1, "admin")
		require.NoError(t, err)

		c, rec := newJSONContext(t, http.MethodGet, "/blogs/9", "")
		c.Request().Header.Set(middleware.TokenHeader, token)
		c.SetParamNames("id")
		c.SetParamValues("9")
		require.NoError(t, GetBlogHandler(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"draft"`)
	})
}

func TestGetBlogHandlerNotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM blogs WHERE id = ?")).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	c, rec := newJSONContext(t, http.MethodGet, "/blogs/404", "")
	c.SetParamNames("id")
	c.SetParamValues("404")
	require.NoError(t, GetBlogHandler(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESOURCE_BLOG_NOT_FOUND")
}
