package repository

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}

	data, err := json.Marshal([]string(t))
	return string(data), err
}

func (t *Tags) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), t)
	case []byte:
		return json.Unmarshal(v, t)
	}

	return errors.Errorf("unsupported tags value %T", value)
}

type Session struct {
	ID string `gorm:"primarykey" json:"id"`

	Language    string `gorm:"not null" json:"language"`
	Content     string `gorm:"not null" json:"content"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Tags        Tags   `gorm:"type:text" json:"tags,omitempty"`
	Impressions int64  `gorm:"default:0" json:"impressions"`
	UserID      string `gorm:"index" json:"userId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Pagination converts a one based page and a limit into an offset and a
// limit, clamping both to sensible values.
func Pagination(page, limit int) (offset int, size int) {
	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = DefaultPageLimit
	}

	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return (page - 1) * limit, limit
}

func (c Client) InsertSession(session *Session) error {
	return c.DB.Create(session).Error
}

func (c Client) GetSession(id string) (*Session, error) {
	var session Session

	if err := c.DB.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

func (c Client) ListSessions(page, limit int) ([]Session, int64, error) {
	offset, size := Pagination(page, limit)

	var sessions []Session
	var total int64

	if err := c.DB.Model(&Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := c.DB.Order("created_at desc").Offset(offset).Limit(size).Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

// UpdateSession applies the non zero columns to the session. When a user id
// is given only sessions owned by that user are updated.
func (c Client) UpdateSession(id string, userID string, columns Session) (*Session, error) {
	query := c.DB.Model(&Session{}).Where("id = ?", id)

	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	result := query.Updates(columns)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return c.GetSession(id)
}
