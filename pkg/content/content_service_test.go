package content

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"Maqal-Backend/domain"
	"Maqal-Backend/entities"
	"Maqal-Backend/pkg/wallet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLite-compatible models; the Postgres entities carry a
// uuid_generate_v4() default SQLite cannot express.
type userSQLite struct {
	ID                  string `gorm:"primaryKey"`
	Name                string
	Email               string
	Password            string
	Role                string
	PhoneNumber         string
	CoinBalance         int `gorm:"not null;default:0"`
	FreeContentConsumed int `gorm:"not null;default:0"`
	ProfileComplete     bool
	PreferredCategories string
	IsAdmin             bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (userSQLite) TableName() string { return "users" }

type contentItemSQLite struct {
	ID              string `gorm:"primaryKey"`
	Title           string
	ContentType     string
	Category        string
	Description     string
	AudioURL        string
	DurationSeconds int
	Body            string
	CoverImageURL   string
	IsPublished     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (contentItemSQLite) TableName() string { return "content_items" }

type contentUnlockSQLite struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex:idx_unlock_user_content"`
	ContentID string `gorm:"uniqueIndex:idx_unlock_user_content"`
	Method    string
	CoinCost  int
	CreatedAt time.Time
}

func (contentUnlockSQLite) TableName() string { return "content_unlocks" }

type contentMarkSQLite struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex:idx_mark_user_content_kind"`
	ContentID string `gorm:"uniqueIndex:idx_mark_user_content_kind"`
	Kind      string `gorm:"uniqueIndex:idx_mark_user_content_kind"`
	CreatedAt time.Time
}

func (contentMarkSQLite) TableName() string { return "content_marks" }

type fakeS3 struct{}

func (fakeS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedExt ...string) (string, error) {
	return folder + "/" + fileName, nil
}
func (fakeS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedExt ...string) (string, error) {
	return objectKey, nil
}
func (fakeS3) DeleteFile(objectKey string) error       { return nil }
func (fakeS3) GetObjectKeyFromLink(link string) string { return "" }
func (fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.example.com/" + objectKey
}

func setupContentTest(t *testing.T) (*gorm.DB, ContentService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&userSQLite{},
		&contentItemSQLite{},
		&contentUnlockSQLite{},
		&contentMarkSQLite{},
	)
	require.NoError(t, err)

	contentRepo := NewContentRepository(db)
	walletRepo := wallet.NewWalletRepository(db)
	service := NewContentService(contentRepo, walletRepo, fakeS3{})
	return db, service
}

func seedUser(t *testing.T, db *gorm.DB, balance, freeConsumed int) string {
	id := uuid.New().String()
	require.NoError(t, db.Create(&userSQLite{
		ID:                  id,
		Name:                "Hodan",
		Email:               id + "@example.com",
		CoinBalance:         balance,
		FreeContentConsumed: freeConsumed,
	}).Error)
	return id
}

func seedAudio(t *testing.T, db *gorm.DB, title string) string {
	id := uuid.New().String()
	require.NoError(t, db.Create(&contentItemSQLite{
		ID:          id,
		Title:       title,
		ContentType: entities.ContentTypeAudio,
		Category:    "Stories",
		AudioURL:    "https://cdn.example.com/audio/" + id + ".mp3",
		IsPublished: true,
	}).Error)
	return id
}

func TestAccessContent_FreeQuota(t *testing.T) {
	db, service := setupContentTest(t)
	ctx := context.Background()

	userID := seedUser(t, db, 0, 0)
	contentID := seedAudio(t, db, "a1")

	res, err := service.AccessContent(ctx, userID, contentID)
	require.NoError(t, err)

	assert.True(t, res.Granted)
	assert.Equal(t, domain.AccessFree, res.Outcome)
	assert.Equal(t, 9, res.FreeRemaining)
	require.NotNil(t, res.Content)
	assert.NotEmpty(t, res.Content.AudioURL)

	var user userSQLite
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, 1, user.FreeContentConsumed)
	assert.Equal(t, 0, user.CoinBalance)
}

func TestAccessContent_PaidUnlock(t *testing.T) {
	db, service := setupContentTest(t)
	ctx := context.Background()

	userID := seedUser(t, db, 15, 10)
	contentID := seedAudio(t, db, "a2")

	res, err := service.AccessContent(ctx, userID, contentID)
	require.NoError(t, err)

	assert.True(t, res.Granted)
	assert.Equal(t, domain.AccessPaid, res.Outcome)
	assert.Equal(t, 10, res.CoinsCharged)
	assert.Equal(t, 5, res.CoinBalance)

	var user userSQLite
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, 5, user.CoinBalance)
	assert.Equal(t, 10, user.FreeContentConsumed)
}

func TestAccessContent_Denied(t *testing.T) {
	db, service := setupContentTest(t)
	ctx := context.Background()

	userID := seedUser(t, db, 5, 10)
	contentID := seedAudio(t, db, "a3")

	res, err := service.AccessContent(ctx, userID, contentID)
	require.NoError(t, err)

	assert.False(t, res.Granted)
	assert.Equal(t, domain.AccessDenied, res.Outcome)
	assert.Equal(t, 10, res.RequiredCost)
	assert.Equal(t, 5, res.CoinBalance)
	assert.Nil(t, res.Content)

	var user userSQLite
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, 5, user.CoinBalance)
	assert.Equal(t, 10, user.FreeContentConsumed)
}

func TestAccessContent_ReplayIsFreeForever(t *testing.T) {
	db, service := setupContentTest(t)
	ctx := context.Background()

	userID := seedUser(t, db, 15, 10)
	contentID := seedAudio(t, db, "a2")

	first, err := service.AccessContent(ctx, userID, contentID)
	require.NoError(t, err)
	assert.Equal(t, domain.AccessPaid, first.Outcome)

	second, err := service.AccessContent(ctx, userID, contentID)
	require.NoError(t, err)
	assert.True(t, second.Granted)
	assert.Equal(t, domain.AccessReplay, second.Outcome)

	// No further charge on replay.
	var user userSQLite
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, 5, user.CoinBalance)
	assert.Equal(t, 10, user.FreeContentConsumed)
}

func TestAccessContent_ProfileNotFound(t *testing.T) {
	db, service := setupContentTest(t)
	ctx := context.Background()

	contentID := seedAudio(t, db, "a1")

	_, err := service.AccessContent(ctx, uuid.New().String(), contentID)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestAccessContent_ContentNotFound(t *testing.T) {
	db, service := setupContentTest(t)
	ctx := context.Background()

	userID := seedUser(t, db, 0, 0)

	_, err := service.AccessContent(ctx, userID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrContentNotFound)
}

func TestAccessContent_QuotaNeverExceedsLimit(t *testing.T) {
	db, service := setupContentTest(t)
	ctx := context.Background()

	userID := seedUser(t, db, 0, 9)

	res, err := service.AccessContent(ctx, userID, seedAudio(t, db, "last free"))
	require.NoError(t, err)
	assert.Equal(t, domain.AccessFree, res.Outcome)
	assert.Equal(t, 0, res.FreeRemaining)

	// Next unconsumed item cannot ride the quota and the user has no
	// coins, so it is denied; the counter stays at the limit.
	res, err = service.AccessContent(ctx, userID, seedAudio(t, db, "past the limit"))
	require.NoError(t, err)
	assert.Equal(t, domain.AccessDenied, res.Outcome)

	var user userSQLite
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, 10, user.FreeContentConsumed)
}

func TestToggleMarks(t *testing.T) {
	db, service := setupContentTest(t)
	ctx := context.Background()

	userID := seedUser(t, db, 0, 0)
	contentID := seedAudio(t, db, "likeable")

	res, err := service.ToggleLike(ctx, userID, contentID)
	require.NoError(t, err)
	assert.True(t, res.Marked)

	res, err = service.ToggleLike(ctx, userID, contentID)
	require.NoError(t, err)
	assert.False(t, res.Marked)

	// Save is independent of like.
	res, err = service.ToggleSave(ctx, userID, contentID)
	require.NoError(t, err)
	assert.True(t, res.Marked)

	library, err := service.GetLibrary(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, library.Saved, 1)
	assert.Empty(t, library.Liked)
}

func TestCreateContent_Validation(t *testing.T) {
	_, service := setupContentTest(t)
	ctx := context.Background()

	_, err := service.CreateContent(ctx, domain.CreateContentRequest{
		Title:       "no source",
		ContentType: entities.ContentTypeAudio,
		Category:    "Stories",
	})
	assert.ErrorIs(t, err, domain.ErrAudioSourceRequired)

	_, err = service.CreateContent(ctx, domain.CreateContentRequest{
		Title:       "no body",
		ContentType: entities.ContentTypeArticle,
		Category:    "News",
	})
	assert.ErrorIs(t, err, domain.ErrArticleBodyRequired)
}

func TestGetContentByID_HidesSourceUntilUnlocked(t *testing.T) {
	db, service := setupContentTest(t)
	ctx := context.Background()

	userID := seedUser(t, db, 0, 0)
	contentID := seedAudio(t, db, "locked")

	res, err := service.GetContentByID(ctx, contentID, userID)
	require.NoError(t, err)
	assert.False(t, res.Unlocked)
	assert.Empty(t, res.AudioURL)

	_, err = service.AccessContent(ctx, userID, contentID)
	require.NoError(t, err)

	res, err = service.GetContentByID(ctx, contentID, userID)
	require.NoError(t, err)
	assert.True(t, res.Unlocked)
	assert.NotEmpty(t, res.AudioURL)
}
