package middleware

import (
	"database/sql"
	"errors"
	"time"

	"github.com/VisaPro-Team/be-visa-platform/config"
	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/VisaPro-Team/be-visa-platform/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Limits for the public inquiry form. Counters live in the ip_rate_limits
// table so they survive restarts and are shared across instances.
const (
	rateLimitMaxRequests   = 5
	rateLimitWindow        = time.Minute
	rateLimitBlockDuration = 15 * time.Minute
)

func rateLimitedError() *apperrors.AppError {
	return apperrors.NewTooManyRequests(apperrors.ErrCodeRateLimitExceeded,
		"Too many requests from this IP, please try again later.")
}

func rateLimitDBError(op string, err error) *apperrors.AppError {
	return apperrors.NewInternal(apperrors.ErrCodeDatabaseError, "Failed to "+op, err)
}

// RateLimiterMiddleware limits requests per client IP using the database.
// It guards the public inquiry form against automated spam.
func RateLimiterMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		now := time.Now()
		log := logger.Get().WithComponent("rate_limiter")

		tx, err := config.DB.Beginx()
		if err != nil {
			return rateLimitDBError("begin rate limit transaction", err)
		}
		defer tx.Rollback()

		var blockedUntil sql.NullTime
		err = tx.QueryRow("SELECT blocked_until FROM ip_rate_limits WHERE ip_address = ?", ip).Scan(&blockedUntil)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return rateLimitDBError("fetch rate limit state", err)
		}

		if blockedUntil.Valid && blockedUntil.Time.After(now) {
			tx.Commit()
			return rateLimitedError()
		}

		var requestCount int
		var windowStart time.Time
		err = tx.QueryRow("SELECT request_count, first_request_time FROM ip_rate_limits WHERE ip_address = ?", ip).Scan(&requestCount, &windowStart)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.Exec(`
				INSERT INTO ip_rate_limits (ip_address, request_count, first_request_time, last_request_time)
				VALUES (?, 1, ?, ?)`, ip, now, now)
			if err != nil {
				return rateLimitDBError("insert rate limit state", err)
			}
		case err != nil:
			return rateLimitDBError("fetch rate limit counters", err)
		case now.Sub(windowStart) > rateLimitWindow:
			_, err = tx.Exec(`
				UPDATE ip_rate_limits
				SET request_count = 1, first_request_time = ?, last_request_time = ?, blocked_until = NULL
				WHERE ip_address = ?`, now, now, ip)
			if err != nil {
				return rateLimitDBError("reset rate limit window", err)
			}
		case requestCount >= rateLimitMaxRequests:
			_, err = tx.Exec(`
				UPDATE ip_rate_limits SET blocked_until = ? WHERE ip_address = ?`,
				now.Add(rateLimitBlockDuration), ip)
			if err != nil {
				return rateLimitDBError("block rate limited ip", err)
			}
			tx.Commit()
			log.Warn("ip blocked for exceeding rate limit", logger.RemoteIP(ip))
			return rateLimitedError()
		default:
			_, err = tx.Exec(`
				UPDATE ip_rate_limits
				SET request_count = request_count + 1, last_request_time = ?
				WHERE ip_address = ?`, now, ip)
			if err != nil {
				return rateLimitDBError("update rate limit counters", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return rateLimitDBError("commit rate limit transaction", err)
		}
		return next(c)
	}
}
