package inquiry

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FileList is a list of uploaded file references stored as JSON in a single
// column.
type FileList []string

// Value implements driver.Valuer
func (f FileList) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (f *FileList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("unsupported type %T for FileList", src)
	}
}

// Inquiry is a contact request submitted from the public site.
type Inquiry struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	Nationality string    `db:"nationality" json:"nationality"`
	ServiceType string    `db:"service_type" json:"service_type"`
	Message     string    `db:"message" json:"message"`
	Files       FileList  `db:"files" json:"files"`
	Status      Status    `db:"status" json:"status"`
	Notes       string    `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CreateRequest is the public inquiry submission payload
type CreateRequest struct {
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone"`
	Nationality string   `json:"nationality"`
	ServiceType string   `json:"service_type" validate:"required"`
	Message     string   `json:"message" validate:"required"`
	Files       []string `json:"files" validate:"max=5"`
}

// UpdateStatusRequest is the staff status-update payload. Notes is a pointer
// so an omitted field can be told apart from an explicit empty string: when
// omitted, the prior notes are preserved unchanged.
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes"`
}
