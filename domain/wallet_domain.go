package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetBalance      = "coin balance retrieved successfully"
	MessageSuccessGetCoinPackages = "coin packages retrieved successfully"
	MessageSuccessGetHistory      = "payment history retrieved successfully"

	MessageFailedGetBalance      = "failed to retrieve coin balance"
	MessageFailedGetCoinPackages = "failed to retrieve coin packages"
	MessageFailedGetHistory      = "failed to retrieve payment history"

	ErrInsufficientCoins             = errors.New("insufficient coins")
	ErrDuplicateTransactionReference = errors.New("payment reference already recorded")
)

type (
	CoinPackage struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Coins       int     `json:"coins"`
		Price       float64 `json:"price"`
		Currency    string  `json:"currency"`
		Description string  `json:"description,omitempty"`
		ImageURL    string  `json:"image_url,omitempty"`
		IsPopular   bool    `json:"is_popular"`
	}

	BalanceResponse struct {
		CoinBalance         int `json:"coin_balance"`
		FreeContentConsumed int `json:"free_content_consumed"`
		FreeContentLimit    int `json:"free_content_limit"`
	}

	PaymentRecord struct {
		Reference            string    `json:"reference"`
		Gateway              string    `json:"gateway"`
		Amount               float64   `json:"amount"`
		Currency             string    `json:"currency"`
		Coins                int       `json:"coins"`
		Status               string    `json:"status"`
		PackageName          string    `json:"package_name,omitempty"`
		GatewayTransactionID string    `json:"gateway_transaction_id,omitempty"`
		CreatedAt            time.Time `json:"created_at"`
	}
)
