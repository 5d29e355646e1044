package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	ContentTypeAudio   = "audio"
	ContentTypeArticle = "article"

	UnlockMethodFree = "Free"
	UnlockMethodPaid = "Paid"

	MarkKindLike = "Like"
	MarkKindSave = "Save"
)

type ContentItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Title       string    `json:"title"`
	ContentType string    `json:"content_type"` // "audio", "article"
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`

	// Audio fields. AudioURL must be set for audio items.
	AudioURL        string `json:"audio_url,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`

	// Article fields. Body must be set for article items.
	Body string `gorm:"type:text" json:"body,omitempty"`

	CoverImageURL string `json:"cover_image_url,omitempty"`
	IsPublished   bool   `gorm:"default:true" json:"is_published"`

	Timestamp
}

// ContentUnlock records that a user has unlocked a content item, either by
// spending free quota or coins. A row here grants replay access forever.
type ContentUnlock struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_unlock_user_content" json:"user_id"`
	ContentID uuid.UUID `gorm:"uniqueIndex:idx_unlock_user_content" json:"content_id"`
	Method    string    `json:"method"` // "Free", "Paid"
	CoinCost  int       `json:"coin_cost"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User    *User        `gorm:"foreignKey:UserID"`
	Content *ContentItem `gorm:"foreignKey:ContentID"`
}

// ContentMark is a like or save flag on a content item.
type ContentMark struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_mark_user_content_kind" json:"user_id"`
	ContentID uuid.UUID `gorm:"uniqueIndex:idx_mark_user_content_kind" json:"content_id"`
	Kind      string    `gorm:"uniqueIndex:idx_mark_user_content_kind" json:"kind"` // "Like", "Save"
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User    *User        `gorm:"foreignKey:UserID"`
	Content *ContentItem `gorm:"foreignKey:ContentID"`
}
