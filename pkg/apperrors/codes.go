package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "AUTH_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "AUTH_TOKEN_INVALID"
	ErrCodeTokenMalformed     = "AUTH_TOKEN_MALFORMED"
	ErrCodeTokenMissing       = "AUTH_TOKEN_MISSING"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden   = "AUTHZ_FORBIDDEN"
	ErrCodeInvalidRole = "AUTHZ_INVALID_ROLE"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInvalidEmail     = "VALIDATION_INVALID_EMAIL"
	ErrCodeInvalidStatus    = "VALIDATION_INVALID_STATUS"
	ErrCodeInvalidSection   = "VALIDATION_INVALID_SECTION"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodeAdminNotFound   = "RESOURCE_ADMIN_NOT_FOUND"
	ErrCodeInquiryNotFound = "RESOURCE_INQUIRY_NOT_FOUND"
	ErrCodeBlogNotFound    = "RESOURCE_BLOG_NOT_FOUND"
	ErrCodeContentNotFound = "RESOURCE_CONTENT_NOT_FOUND"
	ErrCodeServiceNotFound = "RESOURCE_SERVICE_NOT_FOUND"
	ErrCodeFAQNotFound     = "RESOURCE_FAQ_NOT_FOUND"
	ErrCodeFileNotFound    = "RESOURCE_FILE_NOT_FOUND"
	ErrCodeResourceExists  = "RESOURCE_ALREADY_EXISTS"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeDatabaseError   = "INTERNAL_DATABASE_ERROR"
	ErrCodeSigningError    = "INTERNAL_SIGNING_ERROR"
	ErrCodeStorageError    = "INTERNAL_STORAGE_ERROR"
	ErrCodeUnexpectedError = "INTERNAL_UNEXPECTED_ERROR"
)
