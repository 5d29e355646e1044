package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	// Defaults for the access gate; overridable through config
	// (FREE_CONTENT_LIMIT, CONTENT_UNLOCK_COST).
	DefaultFreeContentLimit  = 10
	DefaultContentUnlockCost = 10
)

// Access gate outcomes.
const (
	AccessReplay = "Replay"
	AccessFree   = "Free"
	AccessPaid   = "Paid"
	AccessDenied = "Denied"
)

var (
	MessageSuccessCreateContent = "content created successfully"
	MessageSuccessUpdateContent = "content updated successfully"
	MessageSuccessDeleteContent = "content deleted successfully"
	MessageSuccessGetContents   = "contents retrieved successfully"
	MessageSuccessAccessContent = "content access granted"
	MessageSuccessToggleMark    = "content preference updated"
	MessageSuccessGetLibrary    = "library retrieved successfully"
	MessageSuccessUploadMedia   = "media uploaded successfully"

	MessageFailedCreateContent = "failed to create content"
	MessageFailedUpdateContent = "failed to update content"
	MessageFailedDeleteContent = "failed to delete content"
	MessageFailedGetContents   = "failed to retrieve contents"
	MessageFailedAccessContent = "failed to access content"
	MessageFailedToggleMark    = "failed to update content preference"
	MessageFailedGetLibrary    = "failed to retrieve library"
	MessageFailedUploadMedia   = "failed to upload media"
	MessageAccessDenied        = "not enough coins to unlock this content"

	ErrContentNotFound     = errors.New("content not found")
	ErrAudioSourceRequired = errors.New("audio content requires an audio source")
	ErrArticleBodyRequired = errors.New("article content requires body text")
	ErrInvalidContentType  = errors.New("invalid content type")
	ErrInsufficientBalance = errors.New("insufficient coin balance")
)

type (
	CreateContentRequest struct {
		Title           string `json:"title" validate:"required"`
		ContentType     string `json:"content_type" validate:"required,oneof=audio article"`
		Category        string `json:"category" validate:"required"`
		Description     string `json:"description" validate:"omitempty"`
		AudioURL        string `json:"audio_url" validate:"omitempty,url"`
		DurationSeconds int    `json:"duration_seconds" validate:"omitempty,min=0"`
		Body            string `json:"body" validate:"omitempty"`
		CoverImageURL   string `json:"cover_image_url" validate:"omitempty,url"`
	}

	UpdateContentRequest struct {
		Title           string `json:"title" validate:"omitempty"`
		Category        string `json:"category" validate:"omitempty"`
		Description     string `json:"description" validate:"omitempty"`
		AudioURL        string `json:"audio_url" validate:"omitempty,url"`
		DurationSeconds int    `json:"duration_seconds" validate:"omitempty,min=0"`
		Body            string `json:"body" validate:"omitempty"`
		CoverImageURL   string `json:"cover_image_url" validate:"omitempty,url"`
		IsPublished     *bool  `json:"is_published" validate:"omitempty"`
	}

	UploadMediaRequest struct {
		File *multipart.FileHeader `validate:"required"`
		Kind string                `form:"kind" validate:"required,oneof=audio cover"`
	}

	UploadMediaResponse struct {
		URL string `json:"url"`
	}

	ContentResponse struct {
		ID              string `json:"id"`
		Title           string `json:"title"`
		ContentType     string `json:"content_type"`
		Category        string `json:"category"`
		Description     string `json:"description,omitempty"`
		CoverImageURL   string `json:"cover_image_url,omitempty"`
		DurationSeconds int    `json:"duration_seconds,omitempty"`
		// AudioURL and Body are only populated once the access gate
		// has granted this user access.
		AudioURL  string    `json:"audio_url,omitempty"`
		Body      string    `json:"body,omitempty"`
		Unlocked  bool      `json:"unlocked"`
		Liked     bool      `json:"liked"`
		Saved     bool      `json:"saved"`
		CreatedAt time.Time `json:"created_at"`
	}

	AccessContentResponse struct {
		Outcome       string           `json:"outcome"` // "Replay", "Free", "Paid", "Denied"
		Granted       bool             `json:"granted"`
		FreeRemaining int              `json:"free_remaining,omitempty"`
		CoinsCharged  int              `json:"coins_charged,omitempty"`
		RequiredCost  int              `json:"required_cost,omitempty"`
		CoinBalance   int              `json:"coin_balance"`
		Content       *ContentResponse `json:"content,omitempty"`
	}

	ToggleMarkResponse struct {
		ContentID string `json:"content_id"`
		Marked    bool   `json:"marked"`
	}

	LibraryResponse struct {
		Unlocked []ContentResponse `json:"unlocked"`
		Liked    []ContentResponse `json:"liked"`
		Saved    []ContentResponse `json:"saved"`
	}
)
