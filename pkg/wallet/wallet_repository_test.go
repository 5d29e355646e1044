package wallet

import (
	"context"
	"testing"
	"time"

	"Maqal-Backend/domain"
	"Maqal-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLite-compatible versions of the entities for testing; the Postgres
// models carry a uuid_generate_v4() column default SQLite cannot express.
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

type paymentTransactionSQLite struct {
	ID                   string `gorm:"primaryKey"`
	UserID               string `gorm:"index"`
	Reference            string `gorm:"uniqueIndex"`
	Gateway              string
	Amount               float64
	Currency             string
	Coins                int
	Status               string
	PackageName          string
	GatewayTransactionID string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (paymentTransactionSQLite) TableName() string { return "payment_transactions" }

type contentUnlockSQLite struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex:idx_unlock_user_content"`
	ContentID string `gorm:"uniqueIndex:idx_unlock_user_content"`
	Method    string
	CoinCost  int
	CreatedAt time.Time
}

func (contentUnlockSQLite) TableName() string { return "content_unlocks" }

type coinPackageSQLite struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Coins       int
	Price       float64
	Currency    string
	Description string
	ImageURL    string
	IsPopular   bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (coinPackageSQLite) TableName() string { return "coin_packages" }

func setupWalletTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&userSQLite{},
		&paymentTransactionSQLite{},
		&contentUnlockSQLite{},
		&coinPackageSQLite{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, balance, freeConsumed int) string {
	id := uuid.New().String()
	err := db.Create(&userSQLite{
		ID:                  id,
		Name:                "Ayaan",
		Email:               id + "@example.com",
		CoinBalance:         balance,
		FreeContentConsumed: freeConsumed,
	}).Error
	require.NoError(t, err)
	return id
}

func newPaymentRecord(userID, reference string, coins int) *entities.PaymentTransaction {
	return &entities.PaymentTransaction{
		ID:        uuid.New(),
		UserID:    uuid.MustParse(userID),
		Reference: reference,
		Gateway:   domain.GatewayPaystack,
		Amount:    4.99,
		Currency:  "USD",
		Coins:     coins,
		Status:    domain.PaymentStatusSuccess,
	}
}

func TestWalletRepository_CreditPurchase(t *testing.T) {
	db := setupWalletTestDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	t.Run("credits existing user and appends record", func(t *testing.T) {
		userID := seedUser(t, db, 5, 0)

		err := repo.CreditPurchase(ctx, newPaymentRecord(userID, "TX-credit-1", 220))
		require.NoError(t, err)

		user, err := repo.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 225, user.CoinBalance)

		records, count, err := repo.GetPaymentHistory(ctx, userID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, "TX-credit-1", records[0].Reference)
	})

	t.Run("duplicate reference is rejected without crediting", func(t *testing.T) {
		userID := seedUser(t, db, 0, 0)

		err := repo.CreditPurchase(ctx, newPaymentRecord(userID, "TX-dup", 100))
		require.NoError(t, err)

		err = repo.CreditPurchase(ctx, newPaymentRecord(userID, "TX-dup", 100))
		assert.ErrorIs(t, err, domain.ErrDuplicateTransactionReference)

		user, err := repo.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 100, user.CoinBalance)

		_, count, err := repo.GetPaymentHistory(ctx, userID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("bootstraps missing user with the credited balance", func(t *testing.T) {
		ghostID := uuid.New().String()

		err := repo.CreditPurchase(ctx, newPaymentRecord(ghostID, "TX-ghost", 50))
		require.NoError(t, err)

		user, err := repo.GetUserByID(ctx, ghostID)
		require.NoError(t, err)
		assert.Equal(t, 50, user.CoinBalance)
	})
}

func TestWalletRepository_DebitUnlock(t *testing.T) {
	db := setupWalletTestDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	t.Run("debits and records the unlock together", func(t *testing.T) {
		userID := seedUser(t, db, 15, 10)
		contentID := uuid.New().String()

		err := repo.DebitUnlock(ctx, userID, 10, contentID)
		require.NoError(t, err)

		user, err := repo.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 5, user.CoinBalance)

		var unlock contentUnlockSQLite
		err = db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&unlock).Error
		require.NoError(t, err)
		assert.Equal(t, entities.UnlockMethodPaid, unlock.Method)
		assert.Equal(t, 10, unlock.CoinCost)
	})

	t.Run("insufficient balance leaves everything untouched", func(t *testing.T) {
		userID := seedUser(t, db, 5, 10)
		contentID := uuid.New().String()

		err := repo.DebitUnlock(ctx, userID, 10, contentID)
		assert.ErrorIs(t, err, domain.ErrInsufficientCoins)

		user, err := repo.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 5, user.CoinBalance)

		var count int64
		db.Model(&contentUnlockSQLite{}).Where("user_id = ?", userID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("missing user", func(t *testing.T) {
		err := repo.DebitUnlock(ctx, uuid.New().String(), 10, uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("balance never goes negative", func(t *testing.T) {
		userID := seedUser(t, db, 10, 10)

		err := repo.DebitUnlock(ctx, userID, 10, uuid.New().String())
		require.NoError(t, err)
		err = repo.DebitUnlock(ctx, userID, 10, uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrInsufficientCoins)

		user, err := repo.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, user.CoinBalance, 0)
	})
}

func TestWalletRepository_GrantFreeUnlock(t *testing.T) {
	db := setupWalletTestDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	t.Run("consumes quota and records the unlock", func(t *testing.T) {
		userID := seedUser(t, db, 0, 0)
		contentID := uuid.New().String()

		err := repo.GrantFreeUnlock(ctx, userID, 10, contentID)
		require.NoError(t, err)

		user, err := repo.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1, user.FreeContentConsumed)

		var unlock contentUnlockSQLite
		err = db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&unlock).Error
		require.NoError(t, err)
		assert.Equal(t, entities.UnlockMethodFree, unlock.Method)
	})

	t.Run("exhausted quota is not consumed past the limit", func(t *testing.T) {
		userID := seedUser(t, db, 0, 10)

		err := repo.GrantFreeUnlock(ctx, userID, 10, uuid.New().String())
		assert.ErrorIs(t, err, ErrFreeQuotaExhausted)

		user, err := repo.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 10, user.FreeContentConsumed)
	})

	t.Run("missing user", func(t *testing.T) {
		err := repo.GrantFreeUnlock(ctx, uuid.New().String(), 10, uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})
}

func TestWalletRepository_HasPaymentReference(t *testing.T) {
	db := setupWalletTestDB(t)
	repo := NewWalletRepository(db)
	ctx := context.Background()

	userID := seedUser(t, db, 0, 0)
	require.NoError(t, repo.CreditPurchase(ctx, newPaymentRecord(userID, "TX-exists", 10)))

	exists, err := repo.HasPaymentReference(ctx, "TX-exists")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.HasPaymentReference(ctx, "TX-missing")
	require.NoError(t, err)
	assert.False(t, exists)
}
