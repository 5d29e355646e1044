package wallet

import (
	"context"
	"errors"
	"time"

	"Maqal-Backend/domain"
	"Maqal-Backend/entities"
	"Maqal-Backend/internal/utils"

	"github.com/google/uuid"
)

type (
	WalletService interface {
		GetBalance(ctx context.Context, userID string) (*domain.BalanceResponse, error)
		GetCoinPackages(ctx context.Context) ([]*domain.CoinPackage, error)
		GetPaymentHistory(ctx context.Context, userID string, page, limit int) ([]*domain.PaymentRecord, int64, error)

		// Credit applies a reconciled purchase exactly once per
		// reference. The boolean reports whether coins were actually
		// credited; a duplicate reference is a success-no-op.
		Credit(ctx context.Context, userID string, coins int, record domain.PaymentRecord) (bool, error)
	}

	walletService struct {
		walletRepository WalletRepository
		freeLimit        int
	}
)

func NewWalletService(walletRepository WalletRepository) WalletService {
	return &walletService{
		walletRepository: walletRepository,
		freeLimit:        utils.GetConfigInt("FREE_CONTENT_LIMIT", domain.DefaultFreeContentLimit),
	}
}

func (s *walletService) GetBalance(ctx context.Context, userID string) (*domain.BalanceResponse, error) {
	user, err := s.walletRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.BalanceResponse{
		CoinBalance:         user.CoinBalance,
		FreeContentConsumed: user.FreeContentConsumed,
		FreeContentLimit:    s.freeLimit,
	}, nil
}

func (s *walletService) GetCoinPackages(ctx context.Context) ([]*domain.CoinPackage, error) {
	packages, err := s.walletRepository.GetCoinPackages(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CoinPackage, 0, len(packages))
	for _, pkg := range packages {
		result = append(result, &domain.CoinPackage{
			ID:          pkg.ID.String(),
			Name:        pkg.Name,
			Coins:       pkg.Coins,
			Price:       pkg.Price,
			Currency:    pkg.Currency,
			Description: pkg.Description,
			ImageURL:    pkg.ImageURL,
			IsPopular:   pkg.IsPopular,
		})
	}

	return result, nil
}

func (s *walletService) GetPaymentHistory(ctx context.Context, userID string, page, limit int) ([]*domain.PaymentRecord, int64, error) {
	transactions, count, err := s.walletRepository.GetPaymentHistory(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.PaymentRecord, 0, len(transactions))
	for _, tx := range transactions {
		result = append(result, &domain.PaymentRecord{
			Reference:            tx.Reference,
			Gateway:              tx.Gateway,
			Amount:               tx.Amount,
			Currency:             tx.Currency,
			Coins:                tx.Coins,
			Status:               tx.Status,
			PackageName:          tx.PackageName,
			GatewayTransactionID: tx.GatewayTransactionID,
			CreatedAt:            tx.CreatedAt,
		})
	}

	return result, count, nil
}

func (s *walletService) Credit(ctx context.Context, userID string, coins int, record domain.PaymentRecord) (bool, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return false, domain.ErrParseUUID
	}

	transaction := &entities.PaymentTransaction{
		ID:                   uuid.New(),
		UserID:               userUUID,
		Reference:            record.Reference,
		Gateway:              record.Gateway,
		Amount:               record.Amount,
		Currency:             record.Currency,
		Coins:                coins,
		Status:               record.Status,
		PackageName:          record.PackageName,
		GatewayTransactionID: record.GatewayTransactionID,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.walletRepository.CreditPurchase(ctx, transaction); err != nil {
		if errors.Is(err, domain.ErrDuplicateTransactionReference) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
