package content

import (
	"encoding/json"
	"fmt"
	"time"
)

// Section keys. Each key holds exactly one row; writing an existing key
// overwrites its payload.
const (
	SectionHome    = "home"
	SectionAbout   = "about"
	SectionContact = "contact"
	SectionFooter  = "footer"
)

var validSections = map[string]bool{
	SectionHome:    true,
	SectionAbout:   true,
	SectionContact: true,
	SectionFooter:  true,
}

// ValidSection reports whether section is one of the known keys.
func ValidSection(section string) bool {
	return validSections[section]
}

// ParseSection validates a raw section key.
func ParseSection(raw string) (string, error) {
	if !ValidSection(raw) {
		return "", fmt.Errorf("invalid content section %q", raw)
	}
	return raw, nil
}

// Content is a singleton-per-key page section with an arbitrary structured
// payload. No version history is kept.
type Content struct {
	ID        int64           `db:"id" json:"id"`
	Section   string          `db:"section" json:"section"`
	Data      json.RawMessage `db:"data" json:"data"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// UpsertRequest is the create-or-overwrite payload. The section key rides in
// the body; the same endpoint serves first write and overwrite alike.
type UpsertRequest struct {
	Section string          `json:"section" validate:"required"`
	Data    json.RawMessage `json:"data" validate:"required"`
}
