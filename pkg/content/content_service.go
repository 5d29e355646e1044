package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Maqal-Backend/domain"
	"Maqal-Backend/entities"
	"Maqal-Backend/internal/utils"
	"Maqal-Backend/internal/utils/storage"
	"Maqal-Backend/pkg/wallet"

	"github.com/google/uuid"
)

type (
	ContentService interface {
		CreateContent(ctx context.Context, req domain.CreateContentRequest) (*domain.ContentResponse, error)
		UpdateContent(ctx context.Context, id string, req domain.UpdateContentRequest) error
		DeleteContent(ctx context.Context, id string) error
		GetContents(ctx context.Context, category, contentType string, page, limit int) ([]domain.ContentResponse, int64, error)
		GetContentByID(ctx context.Context, id string, userID string) (*domain.ContentResponse, error)

		// AccessContent runs the access gate for one play/open attempt:
		// replay is always free, then the free quota, then a paid
		// unlock, otherwise denial. Grants on the quota and paid paths
		// mutate the counter/balance and the unlock record atomically.
		AccessContent(ctx context.Context, userID, contentID string) (*domain.AccessContentResponse, error)

		ToggleLike(ctx context.Context, userID, contentID string) (*domain.ToggleMarkResponse, error)
		ToggleSave(ctx context.Context, userID, contentID string) (*domain.ToggleMarkResponse, error)
		GetLibrary(ctx context.Context, userID string) (*domain.LibraryResponse, error)

		UploadMedia(ctx context.Context, req domain.UploadMediaRequest) (*domain.UploadMediaResponse, error)
	}

	contentService struct {
		contentRepository ContentRepository
		walletRepository  wallet.WalletRepository
		s3                storage.AwsS3
		freeLimit         int
		unlockCost        int
	}
)

func NewContentService(contentRepository ContentRepository, walletRepository wallet.WalletRepository, s3 storage.AwsS3) ContentService {
	return &contentService{
		contentRepository: contentRepository,
		walletRepository:  walletRepository,
		s3:                s3,
		freeLimit:         utils.GetConfigInt("FREE_CONTENT_LIMIT", domain.DefaultFreeContentLimit),
		unlockCost:        utils.GetConfigInt("CONTENT_UNLOCK_COST", domain.DefaultContentUnlockCost),
	}
}

func validateContentFields(contentType, audioURL, body string) error {
	switch contentType {
	case entities.ContentTypeAudio:
		if audioURL == "" {
			return domain.ErrAudioSourceRequired
		}
	case entities.ContentTypeArticle:
		if body == "" {
			return domain.ErrArticleBodyRequired
		}
	default:
		return domain.ErrInvalidContentType
	}
	return nil
}

func (s *contentService) CreateContent(ctx context.Context, req domain.CreateContentRequest) (*domain.ContentResponse, error) {
	if err := validateContentFields(req.ContentType, req.AudioURL, req.Body); err != nil {
		return nil, err
	}

	item := &entities.ContentItem{
		ID:              uuid.New(),
		Title:           req.Title,
		ContentType:     req.ContentType,
		Category:        req.Category,
		Description:     req.Description,
		AudioURL:        req.AudioURL,
		DurationSeconds: req.DurationSeconds,
		Body:            req.Body,
		CoverImageURL:   req.CoverImageURL,
		IsPublished:     true,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.contentRepository.CreateContent(ctx, item); err != nil {
		return nil, err
	}

	res := toContentResponse(item, true, false, false)
	return &res, nil
}

func (s *contentService) UpdateContent(ctx context.Context, id string, req domain.UpdateContentRequest) error {
	item, err := s.contentRepository.GetContentByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.AudioURL != "" {
		item.AudioURL = req.AudioURL
	}
	if req.DurationSeconds > 0 {
		item.DurationSeconds = req.DurationSeconds
	}
	if req.Body != "" {
		item.Body = req.Body
	}
	if req.CoverImageURL != "" {
		item.CoverImageURL = req.CoverImageURL
	}
	if req.IsPublished != nil {
		item.IsPublished = *req.IsPublished
	}

	if err := validateContentFields(item.ContentType, item.AudioURL, item.Body); err != nil {
		return err
	}

	item.UpdatedAt = time.Now()
	return s.contentRepository.UpdateContent(ctx, item)
}

func (s *contentService) DeleteContent(ctx context.Context, id string) error {
	item, err := s.contentRepository.GetContentByID(ctx, id)
	if err != nil {
		return err
	}

	if item.CoverImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(item.CoverImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.contentRepository.DeleteContent(ctx, id)
}

func (s *contentService) GetContents(ctx context.Context, category, contentType string, page, limit int) ([]domain.ContentResponse, int64, error) {
	items, count, err := s.contentRepository.GetContents(ctx, category, contentType, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.ContentResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toContentResponse(item, false, false, false))
	}

	return result, count, nil
}

func (s *contentService) GetContentByID(ctx context.Context, id string, userID string) (*domain.ContentResponse, error) {
	item, err := s.contentRepository.GetContentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.contentRepository.HasUnlock(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	liked, err := s.contentRepository.HasMark(ctx, userID, id, entities.MarkKindLike)
	if err != nil {
		return nil, err
	}
	saved, err := s.contentRepository.HasMark(ctx, userID, id, entities.MarkKindSave)
	if err != nil {
		return nil, err
	}

	res := toContentResponse(item, unlocked, liked, saved)
	return &res, nil
}

func (s *contentService) AccessContent(ctx context.Context, userID, contentID string) (*domain.AccessContentResponse, error) {
	item, err := s.contentRepository.GetContentByID(ctx, contentID)
	if err != nil {
		return nil, err
	}

	user, err := s.walletRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.contentRepository.HasUnlock(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if unlocked {
		// Replay is free forever once unlocked; no mutation.
		res := toContentResponse(item, true, false, false)
		return &domain.AccessContentResponse{
			Outcome:     domain.AccessReplay,
			Granted:     true,
			CoinBalance: user.CoinBalance,
			Content:     &res,
		}, nil
	}

	err = s.walletRepository.GrantFreeUnlock(ctx, userID, s.freeLimit, contentID)
	if err == nil {
		fresh, err := s.walletRepository.GetUserByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		res := toContentResponse(item, true, false, false)
		return &domain.AccessContentResponse{
			Outcome:       domain.AccessFree,
			Granted:       true,
			FreeRemaining: s.freeLimit - fresh.FreeContentConsumed,
			CoinBalance:   fresh.CoinBalance,
			Content:       &res,
		}, nil
	}
	if !errors.Is(err, wallet.ErrFreeQuotaExhausted) {
		return nil, err
	}

	err = s.walletRepository.DebitUnlock(ctx, userID, s.unlockCost, contentID)
	if err == nil {
		fresh, err := s.walletRepository.GetUserByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		res := toContentResponse(item, true, false, false)
		return &domain.AccessContentResponse{
			Outcome:      domain.AccessPaid,
			Granted:      true,
			CoinsCharged: s.unlockCost,
			CoinBalance:  fresh.CoinBalance,
			Content:      &res,
		}, nil
	}
	if !errors.Is(err, domain.ErrInsufficientCoins) {
		return nil, err
	}

	return &domain.AccessContentResponse{
		Outcome:      domain.AccessDenied,
		Granted:      false,
		RequiredCost: s.unlockCost,
		CoinBalance:  user.CoinBalance,
	}, nil
}

func (s *contentService) toggleMark(ctx context.Context, userID, contentID, kind string) (*domain.ToggleMarkResponse, error) {
	if _, err := s.contentRepository.GetContentByID(ctx, contentID); err != nil {
		return nil, err
	}

	marked, err := s.contentRepository.HasMark(ctx, userID, contentID, kind)
	if err != nil {
		return nil, err
	}

	if marked {
		if err := s.contentRepository.RemoveMark(ctx, userID, contentID, kind); err != nil {
			return nil, err
		}
		return &domain.ToggleMarkResponse{ContentID: contentID, Marked: false}, nil
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	contentUUID, err := uuid.Parse(contentID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	mark := &entities.ContentMark{
		ID:        uuid.New(),
		UserID:    userUUID,
		ContentID: contentUUID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	if err := s.contentRepository.AddMark(ctx, mark); err != nil {
		return nil, err
	}

	return &domain.ToggleMarkResponse{ContentID: contentID, Marked: true}, nil
}

func (s *contentService) ToggleLike(ctx context.Context, userID, contentID string) (*domain.ToggleMarkResponse, error) {
	return s.toggleMark(ctx, userID, contentID, entities.MarkKindLike)
}

func (s *contentService) ToggleSave(ctx context.Context, userID, contentID string) (*domain.ToggleMarkResponse, error) {
	return s.toggleMark(ctx, userID, contentID, entities.MarkKindSave)
}

func (s *contentService) GetLibrary(ctx context.Context, userID string) (*domain.LibraryResponse, error) {
	unlockedItems, err := s.contentRepository.GetUnlockedContents(ctx, userID)
	if err != nil {
		return nil, err
	}
	likedItems, err := s.contentRepository.GetMarkedContents(ctx, userID, entities.MarkKindLike)
	if err != nil {
		return nil, err
	}
	savedItems, err := s.contentRepository.GetMarkedContents(ctx, userID, entities.MarkKindSave)
	if err != nil {
		return nil, err
	}

	library := &domain.LibraryResponse{
		Unlocked: make([]domain.ContentResponse, 0, len(unlockedItems)),
		Liked:    make([]domain.ContentResponse, 0, len(likedItems)),
		Saved:    make([]domain.ContentResponse, 0, len(savedItems)),
	}
	for _, item := range unlockedItems {
		library.Unlocked = append(library.Unlocked, toContentResponse(item, true, false, false))
	}
	for _, item := range likedItems {
		library.Liked = append(library.Liked, toContentResponse(item, false, true, false))
	}
	for _, item := range savedItems {
		library.Saved = append(library.Saved, toContentResponse(item, false, false, true))
	}

	return library, nil
}

func (s *contentService) UploadMedia(ctx context.Context, req domain.UploadMediaRequest) (*domain.UploadMediaResponse, error) {
	fileName := fmt.Sprintf("content-%s", uuid.New().String())

	var allowed []string
	var folder string
	switch req.Kind {
	case "audio":
		allowed = storage.AllowAudio
		folder = "content-audio"
	default:
		allowed = storage.AllowImage
		folder = "content-covers"
	}

	objectKey, err := s.s3.UploadFile(fileName, req.File, folder, allowed...)
	if err != nil {
		return nil, err
	}

	return &domain.UploadMediaResponse{
		URL: s.s3.GetPublicLinkKey(objectKey),
	}, nil
}

func toContentResponse(item *entities.ContentItem, unlocked, liked, saved bool) domain.ContentResponse {
	res := domain.ContentResponse{
		ID:              item.ID.String(),
		Title:           item.Title,
		ContentType:     item.ContentType,
		Category:        item.Category,
		Description:     item.Description,
		CoverImageURL:   item.CoverImageURL,
		DurationSeconds: item.DurationSeconds,
		Unlocked:        unlocked,
		Liked:           liked,
		Saved:           saved,
		CreatedAt:       item.CreatedAt,
	}

	// The playable source and article body stay hidden until the gate
	// has granted access.
	if unlocked {
		res.AudioURL = item.AudioURL
		res.Body = item.Body
	}

	return res
}
