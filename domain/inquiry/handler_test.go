package inquiry

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/VisaPro-Team/be-visa-platform/config"
	"github.com/VisaPro-Team/be-visa-platform/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
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

func inquiryColumns() []string {
	return []string{"id", "name", "email", "phone", "nationality", "service_type",
		"message", "files", "status", "notes", "created_at", "updated_at"}
}

func inquiryRow(id int64, status Status, notes string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(inquiryColumns()).
		AddRow(id, "Jane Doe", "jane@example.com", "+61400000000", "Indonesian",
			"student-visa", "Help with my application", []byte(`[]`), status.String(), notes, now, now)
}

func TestCreateInquiryHandlerDefaultsToPending(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO inquiries")).
		WithArgs("Jane Doe", "jane@example.com", "+61400000000", "Indonesian",
			"student-visa", "Help with my application", sqlmock.AnyArg(), StatusPending).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM inquiries WHERE id = ?")).
		WithArgs(int64(11)).
		WillReturnRows(inquiryRow(11, StatusPending, ""))

	c, rec := newJSONContext(t, http.MethodPost, "/inquiries", `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"phone": "+61400000000",
		"nationality": "Indonesian",
		"service_type": "student-visa",
		"message": "Help with my application"
	}`)
	require.NoError(t, CreateInquiryHandler(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInquiryHandlerValidation(t *testing.T) {
	setupMockDB(t)

	// Missing name and message; nothing is written.
	c, rec := newJSONContext(t, http.MethodPost, "/inquiries",
		`{"email": "jane@example.com"}`)
	require.NoError(t, CreateInquiryHandler(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
}

func TestUpdateInquiryStatusHandler(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM inquiries WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(inquiryRow(5, StatusPending, "existing notes"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE inquiries SET status = ?, notes = ?, updated_at = NOW() WHERE id = ?")).
		WithArgs(StatusInProgress, "called the client", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM inquiries WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(inquiryRow(5, StatusInProgress, "called the client"))

	c, rec := newJSONContext(t, http.MethodPut, "/inquiries/5",
		`{"status": "in-progress", "notes": "called the client"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, UpdateInquiryStatusHandler(c))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"in-progress"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInquiryStatusHandlerPreservesNotesWhenOmitted(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM inquiries WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(inquiryRow(5, StatusInProgress, "existing notes"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE inquiries SET status = ?, notes = ?, updated_at = NOW() WHERE id = ?")).
		WithArgs(StatusCompleted, "existing notes", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM inquiries WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(inquiryRow(5, StatusCompleted, "existing notes"))

	c, rec := newJSONContext(t, http.MethodPut, "/inquiries/5",
		`{"status": "completed"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, UpdateInquiryStatusHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInquiryStatusHandlerClearsNotesWhenEmpty(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM inquiries WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(inquiryRow(5, StatusInProgress, "existing notes"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE inquiries SET status = ?, notes = ?, updated_at = NOW() WHERE id = ?")).
		WithArgs(StatusRejected, "", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM inquiries WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(inquiryRow(5, StatusRejected, ""))

	// An explicit empty string clears notes, unlike omitting the field.
	c, rec := newJSONContext(t, http.MethodPut, "/inquiries/5",
		`{"status": "rejected", "notes": ""}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, UpdateInquiryStatusHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInquiryStatusHandlerInvalidStatus(t *testing.T) {
	setupMockDB(t)

	c, rec := newJSONContext(t, http.MethodPut, "/inquiries/5",
		`{"status": "archived"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, UpdateInquiryStatusHandler(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_INVALID_STATUS")
}

func TestUpdateInquiryStatusHandlerNotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM inquiries WHERE id = ?")).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	c, rec := newJSONContext(t, http.MethodPut, "/inquiries/404",
		`{"status": "completed"}`)
	c.SetParamNames("id")
	c.SetParamValues("404")
	require.NoError(t, UpdateInquiryStatusHandler(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESOURCE_INQUIRY_NOT_FOUND")
}

func TestDeleteInquiryHandlerNotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM inquiries WHERE id = ?")).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := newJSONContext(t, http.MethodDelete, "/inquiries/404", "")
	c.SetParamNames("id")
	c.SetParamValues("404")
	require.NoError(t, DeleteInquiryHandler(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListInquiriesByStatusHandlerInvalidStatus(t *testing.T) {
	setupMockDB(t)

	c, rec := newJSONContext(t, http.MethodGet, "/inquiries/status/archived", "")
	c.SetParamNames("status")
	c.SetParamValues("archived")
	require.NoError(t, ListInquiriesByStatusHandler(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_INVALID_STATUS")
}
