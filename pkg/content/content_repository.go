package content

import (
	"context"
	"errors"

	"Maqal-Backend/domain"
	"Maqal-Backend/entities"

	"gorm.io/gorm"
)

type (
	ContentRepository interface {
		CreateContent(ctx context.Context, item *entities.ContentItem) error
		GetContentByID(ctx context.Context, id string) (*entities.ContentItem, error)
		UpdateContent(ctx context.Context, item *entities.ContentItem) error
		DeleteContent(ctx context.Context, id string) error
		GetContents(ctx context.Context, category, contentType string, page, limit int) ([]*entities.ContentItem, int64, error)

		HasUnlock(ctx context.Context, userID, contentID string) (bool, error)
		GetUnlockedContents(ctx context.Context, userID string) ([]*entities.ContentItem, error)

		HasMark(ctx context.Context, userID, contentID, kind string) (bool, error)
		AddMark(ctx context.Context, mark *entities.ContentMark) error
		RemoveMark(ctx context.Context, userID, contentID, kind string) error
		GetMarkedContents(ctx context.Context, userID, kind string) ([]*entities.ContentItem, error)
	}

	contentRepository struct {
		db *gorm.DB
	}
)

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{
		db: db,
	}
}

func (r *contentRepository) CreateContent(ctx context.Context, item *entities.ContentItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *contentRepository) GetContentByID(ctx context.Context, id string) (*entities.ContentItem, error) {
	var item entities.ContentItem
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContentNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *contentRepository) UpdateContent(ctx context.Context, item *entities.ContentItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *contentRepository) DeleteContent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.ContentItem{}, "id = ?", id).Error
}

func (r *contentRepository) GetContents(ctx context.Context, category, contentType string, page, limit int) ([]*entities.ContentItem, int64, error) {
	var items []*entities.ContentItem
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("is_published = ?", true)

	if category != "All" && category != "" {
		query = query.Where("category = ?", category)
	}
	if contentType != "" {
		query = query.Where("content_type = ?", contentType)
	}

	if err := query.Model(&entities.ContentItem{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *contentRepository) HasUnlock(ctx context.Context, userID, contentID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ContentUnlock{}).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *contentRepository) GetUnlockedContents(ctx context.Context, userID string) ([]*entities.ContentItem, error) {
	var items []*entities.ContentItem
	if err := r.db.WithContext(ctx).
		Joins("JOIN content_unlocks ON content_unlocks.content_id = content_items.id").
		Where("content_unlocks.user_id = ?", userID).
		Order("content_unlocks.created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepository) HasMark(ctx context.Context, userID, contentID, kind string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ContentMark{}).
		Where("user_id = ? AND content_id = ? AND kind = ?", userID, contentID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *contentRepository) AddMark(ctx context.Context, mark *entities.ContentMark) error {
	return r.db.WithContext(ctx).Create(mark).Error
}

func (r *contentRepository) RemoveMark(ctx context.Context, userID, contentID, kind string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ? AND kind = ?", userID, contentID, kind).
		Delete(&entities.ContentMark{}).Error
}

func (r *contentRepository) GetMarkedContents(ctx context.Context, userID, kind string) ([]*entities.ContentItem, error) {
	var items []*entities.ContentItem
	if err := r.db.WithContext(ctx).
		Joins("JOIN content_marks ON content_marks.content_id = content_items.id").
		Where("content_marks.user_id = ? AND content_marks.kind = ?", userID, kind).
		Order("content_marks.created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
