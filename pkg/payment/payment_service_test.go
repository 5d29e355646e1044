package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"Maqal-Backend/domain"
	"Maqal-Backend/pkg/paystack"
	"Maqal-Backend/pkg/waafi"
	"Maqal-Backend/pkg/wallet"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLite-compatible models for the tables the wallet touches.
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

// fakePaystack scripts the gateway's verify answer; the real HTTP client
// is covered in pkg/paystack.
type fakePaystack struct {
	initResult   *paystack.InitializeResult
	initErr      error
	verifyResult *paystack.VerifyResult
	verifyErr    error
	signatureOK  bool
	verifyCalls  int
}

func (f *fakePaystack) Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeResult, error) {
	if f.initErr != nil {
		return nil, f.initErr
	}
	return f.initResult, nil
}

func (f *fakePaystack) Verify(ctx context.Context, reference string) (*paystack.VerifyResult, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyResult, nil
}

func (f *fakePaystack) VerifyWebhookSignature(body []byte, signature string) bool {
	return f.signatureOK
}

const testWaafiKey = "waafi-test-api-key"

func setupPaymentTest(t *testing.T, gateway *fakePaystack) (*gorm.DB, PaymentService, wallet.WalletRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&userSQLite{}, &paymentTransactionSQLite{}, &coinPackageSQLite{})
	require.NoError(t, err)

	walletRepo := wallet.NewWalletRepository(db)
	walletService := wallet.NewWalletService(walletRepo)
	waafiService := waafi.NewWaafiService("M123", "api-user", testWaafiKey, "")

	service := NewPaymentService(walletRepo, walletService, gateway, waafiService)
	return db, service, walletRepo
}

func seedUser(t *testing.T, db *gorm.DB, balance int) string {
	id := uuid.New().String()
	require.NoError(t, db.Create(&userSQLite{
		ID:          id,
		Name:        "Khadra",
		Email:       id + "@example.com",
		CoinBalance: balance,
	}).Error)
	return id
}

func seedPackage(t *testing.T, db *gorm.DB, coins int, price float64) string {
	id := uuid.New().String()
	require.NoError(t, db.Create(&coinPackageSQLite{
		ID:       id,
		Name:     "Starter",
		Coins:    coins,
		Price:    price,
		Currency: "USD",
		IsActive: true,
	}).Error)
	return id
}

func successVerify(userID, reference string, coins int) *paystack.VerifyResult {
	return &paystack.VerifyResult{
		Status:               "success",
		Amount:               4.99,
		Currency:             "USD",
		GatewayTransactionID: "931215",
		Metadata: domain.InternalTransactionMetadata{
			UserID:       userID,
			Coins:        coins,
			PackageName:  "Starter",
			InternalTxID: reference,
		},
	}
}

func TestVerifyPaystack_CreditsExactlyOnce(t *testing.T) {
	gateway := &fakePaystack{}
	db, service, walletRepo := setupPaymentTest(t, gateway)
	ctx := context.Background()

	userID := seedUser(t, db, 0)
	gateway.verifyResult = successVerify(userID, "TX1", 220)

	first, err := service.VerifyPaystack(ctx, "TX1")
	require.NoError(t, err)
	assert.True(t, first.Credited)
	assert.False(t, first.AlreadyDone)
	assert.Equal(t, 220, first.CoinsCredited)

	// Gateway retry delivers the same result again.
	second, err := service.VerifyPaystack(ctx, "TX1")
	require.NoError(t, err)
	assert.False(t, second.Credited)
	assert.True(t, second.AlreadyDone)

	user, err := walletRepo.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 220, user.CoinBalance)

	var count int64
	db.Model(&paymentTransactionSQLite{}).Where("reference = ?", "TX1").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestVerifyPaystack_NonSuccessStatusRecordsNothing(t *testing.T) {
	gateway := &fakePaystack{}
	db, service, walletRepo := setupPaymentTest(t, gateway)
	ctx := context.Background()

	userID := seedUser(t, db, 0)
	result := successVerify(userID, "TX-declined", 220)
	result.Status = "abandoned"
	gateway.verifyResult = result

	res, err := service.VerifyPaystack(ctx, "TX-declined")
	require.NoError(t, err)
	assert.False(t, res.Credited)
	assert.Equal(t, "abandoned", res.Status)

	user, err := walletRepo.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, user.CoinBalance)

	var count int64
	db.Model(&paymentTransactionSQLite{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestVerifyPaystack_InvalidMetadata(t *testing.T) {
	gateway := &fakePaystack{verifyErr: domain.ErrInvalidCallbackMetadata}
	db, service, _ := setupPaymentTest(t, gateway)

	_, err := service.VerifyPaystack(context.Background(), "TX-bad-meta")
	assert.ErrorIs(t, err, domain.ErrInvalidCallbackMetadata)

	var count int64
	db.Model(&paymentTransactionSQLite{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestInitiatePaystack(t *testing.T) {
	gateway := &fakePaystack{
		initResult: &paystack.InitializeResult{
			AuthorizationURL: "https://checkout.paystack.com/abc",
			AccessCode:       "abc",
		},
	}
	db, service, _ := setupPaymentTest(t, gateway)
	ctx := context.Background()

	userID := seedUser(t, db, 0)
	packageID := seedPackage(t, db, 220, 4.99)

	res, err := service.InitiatePaystack(ctx, domain.InitiatePaystackRequest{
		PackageID: packageID,
		Email:     "buyer@example.com",
	}, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Reference)
	assert.Equal(t, "https://checkout.paystack.com/abc", res.AuthorizationURL)

	t.Run("unknown package", func(t *testing.T) {
		_, err := service.InitiatePaystack(ctx, domain.InitiatePaystackRequest{
			PackageID: uuid.New().String(),
			Email:     "buyer@example.com",
		}, userID)
		assert.ErrorIs(t, err, domain.ErrInvalidCoinPackage)
	})

	t.Run("misconfigured gateway surfaces as such", func(t *testing.T) {
		gateway.initErr = domain.ErrGatewayMisconfigured
		_, err := service.InitiatePaystack(ctx, domain.InitiatePaystackRequest{
			PackageID: packageID,
			Email:     "buyer@example.com",
		}, userID)
		assert.ErrorIs(t, err, domain.ErrGatewayMisconfigured)
		gateway.initErr = nil
	})

	t.Run("references are unique per attempt", func(t *testing.T) {
		again, err := service.InitiatePaystack(ctx, domain.InitiatePaystackRequest{
			PackageID: packageID,
			Email:     "buyer@example.com",
		}, userID)
		require.NoError(t, err)
		assert.NotEqual(t, res.Reference, again.Reference)
	})
}

func waafiSign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWaafiKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func waafiCallbackBody(t *testing.T, userID, reference, status string, coins int) []byte {
	meta, err := json.Marshal(domain.InternalTransactionMetadata{
		UserID:       userID,
		Coins:        coins,
		PackageName:  "Starter",
		InternalTxID: reference,
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"status":          status,
		"transactionId":   "WF-555",
		"amountPaid":      4.99,
		"currency":        "USD",
		"msisdn":          "252611234567",
		"customReference": string(meta),
	})
	require.NoError(t, err)
	return body
}

func TestHandleWaafiCallback(t *testing.T) {
	gateway := &fakePaystack{}
	db, service, walletRepo := setupPaymentTest(t, gateway)
	ctx := context.Background()

	t.Run("approved settlement credits once", func(t *testing.T) {
		userID := seedUser(t, db, 0)
		body := waafiCallbackBody(t, userID, "TX-WF-1", "APPROVED", 100)

		res, err := service.HandleWaafiCallback(ctx, body, waafiSign(body))
		require.NoError(t, err)
		assert.True(t, res.Credited)

		// Duplicate delivery of the same notification.
		res, err = service.HandleWaafiCallback(ctx, body, waafiSign(body))
		require.NoError(t, err)
		assert.False(t, res.Credited)
		assert.True(t, res.AlreadyDone)

		user, err := walletRepo.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 100, user.CoinBalance)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		userID := seedUser(t, db, 0)
		body := waafiCallbackBody(t, userID, "TX-WF-2", "APPROVED", 100)

		_, err := service.HandleWaafiCallback(ctx, body, "deadbeef")
		assert.ErrorIs(t, err, domain.ErrCallbackUnauthorized)

		user, err := walletRepo.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 0, user.CoinBalance)
	})

	t.Run("unparsable custom reference is rejected without crediting", func(t *testing.T) {
		body, err := json.Marshal(map[string]any{
			"status":          "APPROVED",
			"transactionId":   "WF-556",
			"amountPaid":      4.99,
			"currency":        "USD",
			"customReference": "{not json",
		})
		require.NoError(t, err)

		_, err = service.HandleWaafiCallback(ctx, body, waafiSign(body))
		assert.ErrorIs(t, err, domain.ErrInvalidCallbackMetadata)
	})

	t.Run("declined settlement records nothing", func(t *testing.T) {
		userID := seedUser(t, db, 0)
		body := waafiCallbackBody(t, userID, "TX-WF-3", "DECLINED", 100)

		res, err := service.HandleWaafiCallback(ctx, body, waafiSign(body))
		require.NoError(t, err)
		assert.False(t, res.Credited)
		assert.Equal(t, "DECLINED", res.Status)

		user, err := walletRepo.GetUserByID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 0, user.CoinBalance)
	})

	t.Run("credits a user missing locally by bootstrapping the account", func(t *testing.T) {
		ghostID := uuid.New().String()
		body := waafiCallbackBody(t, ghostID, "TX-WF-4", "APPROVED", 75)

		res, err := service.HandleWaafiCallback(ctx, body, waafiSign(body))
		require.NoError(t, err)
		assert.True(t, res.Credited)

		user, err := walletRepo.GetUserByID(ctx, ghostID)
		require.NoError(t, err)
		assert.Equal(t, 75, user.CoinBalance)
	})
}

func TestHandlePaystackWebhook(t *testing.T) {
	gateway := &fakePaystack{signatureOK: true}
	db, service, _ := setupPaymentTest(t, gateway)
	ctx := context.Background()

	userID := seedUser(t, db, 0)
	gateway.verifyResult = successVerify(userID, "TX-HOOK", 220)

	body, err := json.Marshal(map[string]any{
		"event": "charge.success",
		"data":  map[string]any{"reference": "TX-HOOK"},
	})
	require.NoError(t, err)

	t.Run("delegates to gateway verify instead of trusting the payload", func(t *testing.T) {
		res, err := service.HandlePaystackWebhook(ctx, body, "sig")
		require.NoError(t, err)
		assert.True(t, res.Credited)
		assert.Equal(t, 1, gateway.verifyCalls)
	})

	t.Run("rejects bad signature", func(t *testing.T) {
		gateway.signatureOK = false
		_, err := service.HandlePaystackWebhook(ctx, body, "sig")
		assert.ErrorIs(t, err, domain.ErrCallbackUnauthorized)
		gateway.signatureOK = true
	})

	t.Run("ignores non-charge events", func(t *testing.T) {
		other, err := json.Marshal(map[string]any{
			"event": "transfer.success",
			"data":  map[string]any{"reference": "TX-OTHER"},
		})
		require.NoError(t, err)

		res, err := service.HandlePaystackWebhook(ctx, other, "sig")
		require.NoError(t, err)
		assert.False(t, res.Credited)
		assert.Equal(t, "transfer.success", res.Status)
	})
}
