package waafi

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"Maqal-Backend/domain"
)

const DefaultBaseURL = "https://api.waafipay.net/asm"

type (
	// WaafiService talks to the async mobile-money gateway. Preauthorize
	// only means the request was accepted; the user authorizes on their
	// handset and settlement arrives later through the server-to-server
	// callback.
	WaafiService interface {
		Preauthorize(ctx context.Context, req PreauthorizeRequest) (*PreauthorizeResult, error)
		ParseCallback(body []byte) (*CallbackPayload, error)
		VerifyCallbackSignature(body []byte, signature string) bool
	}

	PreauthorizeRequest struct {
		PhoneNumber string
		Amount      float64
		Currency    string
		UserID      string
		Metadata    domain.InternalTransactionMetadata
	}

	PreauthorizeResult struct {
		Accepted             bool
		TransactionReference string
		GatewayReference     string
	}

	// CallbackPayload is the gateway's settlement notification.
	// CustomReference carries the JSON-encoded
	// InternalTransactionMetadata we attached at initiation.
	CallbackPayload struct {
		Status          string  `json:"status"`
		TransactionID   string  `json:"transactionId"`
		AmountPaid      float64 `json:"amountPaid"`
		Currency        string  `json:"currency"`
		MSISDN          string  `json:"msisdn"`
		CustomReference string  `json:"customReference"`

		Metadata domain.InternalTransactionMetadata `json:"-"`
	}

	waafiService struct {
		merchantUID string
		apiUserID   string
		apiKey      string
		baseURL     string
		httpClient  *http.Client
	}
)

func NewWaafiService(merchantUID, apiUserID, apiKey, baseURL string) WaafiService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &waafiService{
		merchantUID: merchantUID,
		apiUserID:   apiUserID,
		apiKey:      apiKey,
		baseURL:     baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *waafiService) configured() bool {
	return s.merchantUID != "" && s.apiUserID != "" && s.apiKey != ""
}

func (s *waafiService) Preauthorize(ctx context.Context, req PreauthorizeRequest) (*PreauthorizeResult, error) {
	if !s.configured() {
		return nil, domain.ErrGatewayMisconfigured
	}

	customReference, err := json.Marshal(req.Metadata)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"merchantUid": s.merchantUID,
		"apiUserId":   s.apiUserID,
		"amount":      req.Amount,
		"currency":    req.Currency,
		"phoneNumber": req.PhoneNumber,
		"userId":      req.UserID,
		"metadata": map[string]any{
			"coins":                        req.Metadata.Coins,
			"packageName":                  req.Metadata.PackageName,
			"originalAmountSourceCurrency": req.Metadata.OriginalAmount,
		},
		"customReference": string(customReference),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed struct {
		Success              bool   `json:"success"`
		Message              string `json:"message"`
		TransactionReference string `json:"transactionReference"`
		GatewayReference     string `json:"gatewayReference"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK || !parsed.Success {
		return nil, fmt.Errorf("waafi preauthorize failed: %s", parsed.Message)
	}

	return &PreauthorizeResult{
		Accepted:             true,
		TransactionReference: parsed.TransactionReference,
		GatewayReference:     parsed.GatewayReference,
	}, nil
}

func (s *waafiService) ParseCallback(body []byte) (*CallbackPayload, error) {
	var payload CallbackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.ErrInvalidCallbackMetadata
	}

	if payload.CustomReference == "" {
		return nil, domain.ErrInvalidCallbackMetadata
	}

	var meta domain.InternalTransactionMetadata
	if err := json.Unmarshal([]byte(payload.CustomReference), &meta); err != nil {
		return nil, domain.ErrInvalidCallbackMetadata
	}
	if meta.UserID == "" || meta.Coins <= 0 {
		return nil, domain.ErrInvalidCallbackMetadata
	}

	payload.Metadata = meta
	return &payload, nil
}

// VerifyCallbackSignature checks the X-Waafi-Signature header, an
// HMAC-SHA256 of the raw callback body keyed with the merchant API key.
func (s *waafiService) VerifyCallbackSignature(body []byte, signature string) bool {
	if s.apiKey == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.apiKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
