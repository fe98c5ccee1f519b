package blog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TagList is a list of tags stored as JSON in a single column.
type TagList []string

// Value implements driver.Valuer
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (t *TagList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported type %T for TagList", src)
	}
}

// Blog is a blog post. PublishDate is null while the post has never been
// published; it is restamped on every write that sets status to published and
// deliberately kept when a post moves back to draft.
type Blog struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Content     string     `db:"content" json:"content"`
	ImageURL    string     `db:"image_url" json:"image_url"`
	Author      string     `db:"author" json:"author"`
	Tags        TagList    `db:"tags" json:"tags"`
	Status      Status     `db:"status" json:"status"`
	PublishDate *time.Time `db:"publish_date" json:"publish_date"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// CreateRequest is the payload for creating a blog post
type CreateRequest struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	ImageURL string   `json:"image_url"`
	Author   string   `json:"author"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status" validate:"omitempty,oneof=draft published"`
}

// UpdateRequest is the payload for updating a blog post. Empty fields are
// left unchanged, mirroring a partial update.
type UpdateRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	ImageURL string   `json:"image_url"`
	Author   string   `json:"author"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status" validate:"omitempty,oneof=draft published"`
}
