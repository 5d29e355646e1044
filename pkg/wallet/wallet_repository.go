package wallet

import (
	"context"
	"errors"

	"Maqal-Backend/domain"
	"Maqal-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// WalletRepository is the single place coin balances are mutated.
	// Every mutation runs as an atomic conditional update against the
	// stored row, never against a balance read earlier in the request,
	// and is paired with a durable record (payment row or unlock row)
	// in the same database transaction.
	WalletRepository interface {
		GetUserByID(ctx context.Context, userID string) (*entities.User, error)

		// CreditPurchase increases the balance and appends the payment
		// record. A missing user row is bootstrapped with the credited
		// balance. Returns domain.ErrDuplicateTransactionReference if a
		// payment with record.Reference already exists.
		CreditPurchase(ctx context.Context, record *entities.PaymentTransaction) error

		// DebitUnlock spends coins and records the unlock together.
		DebitUnlock(ctx context.Context, userID string, cost int, contentID string) error

		// GrantFreeUnlock consumes one unit of free quota and records
		// the unlock together. Returns ErrFreeQuotaExhausted when the
		// user's counter has already reached freeLimit.
		GrantFreeUnlock(ctx context.Context, userID string, freeLimit int, contentID string) error

		HasPaymentReference(ctx context.Context, reference string) (bool, error)
		GetPaymentHistory(ctx context.Context, userID string, page, limit int) ([]*entities.PaymentTransaction, int64, error)

		GetCoinPackages(ctx context.Context) ([]*entities.CoinPackage, error)
		GetCoinPackageByID(ctx context.Context, id string) (*entities.CoinPackage, error)
	}

	walletRepository struct {
		db *gorm.DB
	}
)

var ErrFreeQuotaExhausted = errors.New("free content quota exhausted")

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) GetUserByID(ctx context.Context, userID string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *walletRepository) CreditPurchase(ctx context.Context, record *entities.PaymentTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entities.PaymentTransaction{}).
			Where("reference = ?", record.Reference).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrDuplicateTransactionReference
		}

		result := tx.Model(&entities.User{}).
			Where("id = ?", record.UserID).
			Update("coin_balance", gorm.Expr("coin_balance + ?", record.Coins))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// No account yet: bootstrap one carrying the credited
			// balance. Should not normally occur since accounts are
			// created at sign-in.
			user := &entities.User{
				ID:          record.UserID,
				CoinBalance: record.Coins,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
		}

		return tx.Create(record).Error
	})
}

func (r *walletRepository) DebitUnlock(ctx context.Context, userID string, cost int, contentID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	contentUUID, err := uuid.Parse(contentID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.User{}).
			Where("id = ? AND coin_balance >= ?", userID, cost).
			Update("coin_balance", gorm.Expr("coin_balance - ?", cost))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&entities.User{}).
				Where("id = ?", userID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrProfileNotFound
			}
			return domain.ErrInsufficientCoins
		}

		unlock := &entities.ContentUnlock{
			ID:        uuid.New(),
			UserID:    userUUID,
			ContentID: contentUUID,
			Method:    entities.UnlockMethodPaid,
			CoinCost:  cost,
		}
		return tx.Create(unlock).Error
	})
}

func (r *walletRepository) GrantFreeUnlock(ctx context.Context, userID string, freeLimit int, contentID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	contentUUID, err := uuid.Parse(contentID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.User{}).
			Where("id = ? AND free_content_consumed < ?", userID, freeLimit).
			Update("free_content_consumed", gorm.Expr("free_content_consumed + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&entities.User{}).
				Where("id = ?", userID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrProfileNotFound
			}
			return ErrFreeQuotaExhausted
		}

		unlock := &entities.ContentUnlock{
			ID:        uuid.New(),
			UserID:    userUUID,
			ContentID: contentUUID,
			Method:    entities.UnlockMethodFree,
			CoinCost:  0,
		}
		return tx.Create(unlock).Error
	})
}

func (r *walletRepository) HasPaymentReference(ctx context.Context, reference string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.PaymentTransaction{}).
		Where("reference = ?", reference).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *walletRepository) GetPaymentHistory(ctx context.Context, userID string, page, limit int) ([]*entities.PaymentTransaction, int64, error) {
	var transactions []*entities.PaymentTransaction
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.PaymentTransaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}

func (r *walletRepository) GetCoinPackages(ctx context.Context) ([]*entities.CoinPackage, error) {
	var packages []*entities.CoinPackage
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("coins ASC").
		Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *walletRepository) GetCoinPackageByID(ctx context.Context, id string) (*entities.CoinPackage, error) {
	var pkg entities.CoinPackage
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCoinPackage
		}
		return nil, err
	}
	return &pkg, nil
}
