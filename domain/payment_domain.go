package domain

import (
	"errors"
)

const (
	GatewayPaystack = "paystack"
	GatewayWaafi    = "waafi"

	PaymentStatusSuccess = "success"
)

var (
	MessageSuccessInitiatePayment = "payment initiated successfully"
	MessageSuccessVerifyPayment   = "payment verified successfully"
	MessageSuccessCallback        = "callback processed"

	MessageFailedInitiatePayment = "failed to initiate payment"
	MessageFailedVerifyPayment   = "failed to verify payment"
	MessageFailedCallback        = "failed to process callback"

	ErrInvalidCoinPackage      = errors.New("invalid coin package")
	ErrPaymentFailed           = errors.New("payment processing failed")
	ErrGatewayMisconfigured    = errors.New("payment gateway is not configured")
	ErrInvalidCallbackMetadata = errors.New("invalid or missing callback metadata")
	ErrCallbackUnauthorized    = errors.New("callback authenticity check failed")
)

type (
	// InternalTransactionMetadata rides through the gateway's opaque
	// metadata channel and ties the eventual notification back to the
	// purchase intent. It must round-trip serialization unmodified.
	InternalTransactionMetadata struct {
		UserID         string  `json:"user_id"`
		Coins          int     `json:"coins"`
		OriginalAmount float64 `json:"original_amount"`
		Currency       string  `json:"currency"`
		PackageName    string  `json:"package_name"`
		InternalTxID   string  `json:"internal_tx_id"`
	}

	InitiatePaystackRequest struct {
		PackageID string `json:"package_id" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
	}

	InitiatePaystackResponse struct {
		Reference        string `json:"reference"`
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code,omitempty"`
	}

	InitiateWaafiRequest struct {
		PackageID   string `json:"package_id" validate:"required"`
		PhoneNumber string `json:"phone_number" validate:"required"`
	}

	InitiateWaafiResponse struct {
		Reference string `json:"reference"`
		// Accepted only means the gateway took the request; settlement
		// arrives later through the server-to-server callback.
		Accepted         bool   `json:"accepted"`
		GatewayReference string `json:"gateway_reference,omitempty"`
	}

	ReconcileResponse struct {
		Reference     string `json:"reference"`
		Status        string `json:"status"`
		Credited      bool   `json:"credited"`
		AlreadyDone   bool   `json:"already_done"`
		CoinsCredited int    `json:"coins_credited,omitempty"`
	}
)
