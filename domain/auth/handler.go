package auth

import (
	"database/sql"

	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/VisaPro-Team/be-visa-platform/pkg/logger"
	"github.com/VisaPro-Team/be-visa-platform/utils"
	"github.com/labstack/echo/v4"
)

// LoginHandler authenticates an administrator and returns a session token.
func LoginHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	log = log.WithRequestID(logger.GetRequestIDFromContext(c))

	req := new(LoginRequest)
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

	admin, err := VerifyCredentials(req.Email, req.Password)
	if err != nil {
		if err == ErrInvalidCredentials {
			// Same response for unknown email and wrong password.
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeInvalidCredentials,
				"Invalid credentials.",
			))
		}
		log.Error("Failed to fetch admin", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	token, err := utils.GenerateToken(admin.ID, admin.Role)
	if err != nil {
		log.Error("Failed to sign token", err, logger.AdminID(admin.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeSigningError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Admin logged in", logger.AdminID(admin.ID), logger.Role(admin.Role))

	return apperrors.RespondWithSuccess(c, LoginResponse{Token: token})
}

// RegisterHandler creates a new administrator account. The route is gated by
// JWTMiddleware plus RoleMiddleware(RoleSuperAdmin), so the role check always
// runs before this handler's validation.
func RegisterHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	log = log.WithRequestID(logger.GetRequestIDFromContext(c))

	req := new(RegisterRequest)
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

	role := req.Role
	if role == "" {
		role = RoleAdmin
	}

	adminID, err := CreateAdmin(req.Email, req.Password, role)
	if err != nil {
		if err == ErrEmailTaken {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeResourceExists,
				"Admin already exists.",
			))
		}
		log.Error("Failed to create admin", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Admin created",
		logger.AdminID(adminID),
		logger.Role(role),
		logger.Int64("created_by", c.Get("admin_id").(int64)),
	)

	return apperrors.RespondWithCreated(c, map[string]string{"message": "Admin created successfully."})
}

// MeHandler returns the authenticated administrator's profile with the
// password hash excluded.
func MeHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	adminID := c.Get("admin_id").(int64)

	admin, err := GetAdminByID(adminID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeAdminNotFound,
				"Admin not found.",
			))
		}
		log.Error("Failed to fetch admin profile", err, logger.AdminID(adminID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, admin)
}
