package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"Maqal-Backend/domain"
	"Maqal-Backend/internal/utils/mailing"
	"Maqal-Backend/pkg/paystack"
	"Maqal-Backend/pkg/waafi"
	"Maqal-Backend/pkg/wallet"

	"github.com/google/uuid"
)

type (
	// PaymentService owns both ends of a purchase: initiation builds the
	// gateway request and mints the internal transaction reference;
	// reconciliation is the only code path that credits coins, and is
	// idempotent per reference.
	PaymentService interface {
		InitiatePaystack(ctx context.Context, req domain.InitiatePaystackRequest, userID string) (*domain.InitiatePaystackResponse, error)
		InitiateWaafi(ctx context.Context, req domain.InitiateWaafiRequest, userID string) (*domain.InitiateWaafiResponse, error)

		VerifyPaystack(ctx context.Context, reference string) (*domain.ReconcileResponse, error)
		HandlePaystackWebhook(ctx context.Context, body []byte, signature string) (*domain.ReconcileResponse, error)
		HandleWaafiCallback(ctx context.Context, body []byte, signature string) (*domain.ReconcileResponse, error)
	}

	paymentService struct {
		walletRepository wallet.WalletRepository
		walletService    wallet.WalletService
		paystackService  paystack.PaystackService
		waafiService     waafi.WaafiService
	}
)

func NewPaymentService(
	walletRepository wallet.WalletRepository,
	walletService wallet.WalletService,
	paystackService paystack.PaystackService,
	waafiService waafi.WaafiService,
) PaymentService {
	return &paymentService{
		walletRepository: walletRepository,
		walletService:    walletService,
		paystackService:  paystackService,
		waafiService:     waafiService,
	}
}

// newInternalTxID mints a globally unique reference for one initiation
// attempt.
func newInternalTxID() string {
	return fmt.Sprintf("MAQ-%s-%d", uuid.New().String(), time.Now().UnixNano())
}

func (s *paymentService) InitiatePaystack(ctx context.Context, req domain.InitiatePaystackRequest, userID string) (*domain.InitiatePaystackResponse, error) {
	pkg, err := s.walletRepository.GetCoinPackageByID(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}

	internalTxID := newInternalTxID()
	metadata := domain.InternalTransactionMetadata{
		UserID:         userID,
		Coins:          pkg.Coins,
		OriginalAmount: pkg.Price,
		Currency:       pkg.Currency,
		PackageName:    pkg.Name,
		InternalTxID:   internalTxID,
	}

	result, err := s.paystackService.Initialize(ctx, paystack.InitializeRequest{
		Email:     req.Email,
		Amount:    pkg.Price,
		Currency:  pkg.Currency,
		Reference: internalTxID,
		Metadata:  metadata,
	})
	if err != nil {
		if errors.Is(err, domain.ErrGatewayMisconfigured) {
			return nil, err
		}
		log.Printf("paystack initialize error: %v", err)
		return nil, domain.ErrPaymentFailed
	}

	return &domain.InitiatePaystackResponse{
		Reference:        internalTxID,
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
	}, nil
}

func (s *paymentService) InitiateWaafi(ctx context.Context, req domain.InitiateWaafiRequest, userID string) (*domain.InitiateWaafiResponse, error) {
	pkg, err := s.walletRepository.GetCoinPackageByID(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}

	internalTxID := newInternalTxID()
	metadata := domain.InternalTransactionMetadata{
		UserID:         userID,
		Coins:          pkg.Coins,
		OriginalAmount: pkg.Price,
		Currency:       pkg.Currency,
		PackageName:    pkg.Name,
		InternalTxID:   internalTxID,
	}

	result, err := s.waafiService.Preauthorize(ctx, waafi.PreauthorizeRequest{
		PhoneNumber: req.PhoneNumber,
		Amount:      pkg.Price,
		Currency:    pkg.Currency,
		UserID:      userID,
		Metadata:    metadata,
	})
	if err != nil {
		if errors.Is(err, domain.ErrGatewayMisconfigured) {
			return nil, err
		}
		log.Printf("waafi preauthorize error: %v", err)
		return nil, domain.ErrPaymentFailed
	}

	return &domain.InitiateWaafiResponse{
		Reference:        internalTxID,
		Accepted:         result.Accepted,
		GatewayReference: result.GatewayReference,
	}, nil
}

func (s *paymentService) VerifyPaystack(ctx context.Context, reference string) (*domain.ReconcileResponse, error) {
	// Only the gateway's verify response is authoritative; a
	// client-reported success never credits anything.
	result, err := s.paystackService.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	meta := result.Metadata
	internalRef := meta.InternalTxID
	if internalRef == "" {
		internalRef = reference
	}

	if !isSuccessStatus(result.Status) {
		// Declined or still pending is a normal outcome, not an error.
		return &domain.ReconcileResponse{
			Reference: internalRef,
			Status:    result.Status,
		}, nil
	}

	return s.credit(ctx, meta, domain.PaymentRecord{
		Reference:            internalRef,
		Gateway:              domain.GatewayPaystack,
		Amount:               result.Amount,
		Currency:             result.Currency,
		Coins:                meta.Coins,
		Status:               domain.PaymentStatusSuccess,
		PackageName:          meta.PackageName,
		GatewayTransactionID: result.GatewayTransactionID,
	})
}

func (s *paymentService) HandlePaystackWebhook(ctx context.Context, body []byte, signature string) (*domain.ReconcileResponse, error) {
	if !s.paystackService.VerifyWebhookSignature(body, signature) {
		return nil, domain.ErrCallbackUnauthorized
	}

	var event struct {
		Event string `json:"event"`
		Data  struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &event); err != nil || event.Data.Reference == "" {
		return nil, domain.ErrInvalidCallbackMetadata
	}

	if event.Event != "charge.success" {
		return &domain.ReconcileResponse{
			Reference: event.Data.Reference,
			Status:    event.Event,
		}, nil
	}

	// Re-verify against the gateway rather than trusting the delivered
	// payload.
	return s.VerifyPaystack(ctx, event.Data.Reference)
}

func (s *paymentService) HandleWaafiCallback(ctx context.Context, body []byte, signature string) (*domain.ReconcileResponse, error) {
	if !s.waafiService.VerifyCallbackSignature(body, signature) {
		return nil, domain.ErrCallbackUnauthorized
	}

	payload, err := s.waafiService.ParseCallback(body)
	if err != nil {
		// Money may have moved at the gateway without being reflected
		// here; keep a trail for manual investigation.
		log.Printf("waafi callback rejected, unparsable metadata: %v", err)
		return nil, err
	}

	meta := payload.Metadata
	if !isSuccessStatus(payload.Status) {
		return &domain.ReconcileResponse{
			Reference: meta.InternalTxID,
			Status:    payload.Status,
		}, nil
	}

	return s.credit(ctx, meta, domain.PaymentRecord{
		Reference:            meta.InternalTxID,
		Gateway:              domain.GatewayWaafi,
		Amount:               payload.AmountPaid,
		Currency:             payload.Currency,
		Coins:                meta.Coins,
		Status:               domain.PaymentStatusSuccess,
		PackageName:          meta.PackageName,
		GatewayTransactionID: payload.TransactionID,
	})
}

func (s *paymentService) credit(ctx context.Context, meta domain.InternalTransactionMetadata, record domain.PaymentRecord) (*domain.ReconcileResponse, error) {
	credited, err := s.walletService.Credit(ctx, meta.UserID, meta.Coins, record)
	if err != nil {
		return nil, err
	}

	if credited {
		s.sendReceipt(ctx, meta, record)
	}

	return &domain.ReconcileResponse{
		Reference:     record.Reference,
		Status:        domain.PaymentStatusSuccess,
		Credited:      credited,
		AlreadyDone:   !credited,
		CoinsCredited: meta.Coins,
	}, nil
}

func (s *paymentService) sendReceipt(ctx context.Context, meta domain.InternalTransactionMetadata, record domain.PaymentRecord) {
	user, err := s.walletRepository.GetUserByID(ctx, meta.UserID)
	if err != nil || user.Email == "" {
		return
	}

	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your purchase of %d coins (%s) was successful. Reference: %s.</p>",
		user.Name, meta.Coins, meta.PackageName, record.Reference,
	)
	if err := mailing.SendMail(user.Email, "Your coin purchase receipt", body); err != nil {
		log.Printf("failed to send receipt email: %v", err)
	}
}

func isSuccessStatus(status string) bool {
	switch strings.ToLower(status) {
	case "success", "approved", "completed":
		return true
	default:
		return false
	}
}
