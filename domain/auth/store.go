package auth

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/VisaPro-Team/be-visa-platform/config"
	"github.com/VisaPro-Team/be-visa-platform/utils"
	"github.com/go-sql-driver/mysql"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password. A single error shape avoids revealing whether an email is
// registered.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering an email that already exists.
var ErrEmailTaken = errors.New("admin already exists")

const mysqlErrDuplicateEntry = 1062

// NormalizeEmail lowercases and trims an email for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateAdmin stores a new administrator. The password is hashed here,
// immediately before persistence; plaintext is never written anywhere.
// Email uniqueness is enforced by the unique index, so two concurrent
// registrations of the same email cannot both succeed.
func CreateAdmin(email, password, role string) (int64, error) {
	email = NormalizeEmail(email)

	var exists bool
	if err := config.DB.Get(&exists, "SELECT EXISTS(SELECT 1 FROM admins WHERE email = ?)", email); err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return 0, err
	}

	result, err := config.DB.Exec(
		"INSERT INTO admins (email, password_hash, role, created_at) VALUES (?, ?, ?, NOW())",
		email, hash, role,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return 0, ErrEmailTaken
		}
		return 0, err
	}

	return result.LastInsertId()
}

// VerifyCredentials checks an email/password pair and returns the matching
// administrator. Unknown email and wrong password fail identically.
func VerifyCredentials(email, password string) (*Admin, error) {
	var admin Admin
	err := config.DB.Get(&admin,
		"SELECT id, email, password_hash, role, created_at FROM admins WHERE email = ?",
		NormalizeEmail(email),
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &admin, nil
}

// GetAdminByID fetches an administrator profile. The password hash stays in
// the struct but is excluded from JSON.
func GetAdminByID(id int64) (*Admin, error) {
	var admin Admin
	err := config.DB.Get(&admin,
		"SELECT id, email, password_hash, role, created_at FROM admins WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
