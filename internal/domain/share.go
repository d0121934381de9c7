package domain

import (
	"time"

	"github.com/google/uuid"
)

type ResourceType string

const (
	ResourceTypeFile   ResourceType = "file"
	ResourceTypeFolder ResourceType = "folder"
)

type AccessType string

const (
	AccessTypeView AccessType = "view"
	AccessTypeEdit AccessType = "edit"
)

// Share дает анонимный доступ к элементу по Token.
// ItemID содержит unique_id файла или папки.
type Share struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	ItemID     int64        `json:"item_id" db:"item_id"`
	Type       ResourceType `json:"type" db:"type"`
	OwnerID    int64        `json:"user_id" db:"owner_id"`
	Permission AccessType   `json:"permission" db:"permission"`
	Token      string       `json:"token" db:"token"`
	ExpiresAt  *time.Time   `json:"expire_in,omitempty" db:"expires_at"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}

// Expired проверяет, истек ли срок действия ссылки
func (s Share) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !s.ExpiresAt.After(now)
}
