package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"Maqal-Backend/domain"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://api.paystack.co"

type (
	// PaystackService talks to the redirect-style gateway. Initiation
	// returns an authorization URL the client opens; a client-side
	// success callback is never trusted, only Verify is.
	PaystackService interface {
		Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)
		Verify(ctx context.Context, reference string) (*VerifyResult, error)
		VerifyWebhookSignature(body []byte, signature string) bool
	}

	InitializeRequest struct {
		Email     string
		Amount    float64 // major currency unit
		Currency  string
		Reference string
		Metadata  domain.InternalTransactionMetadata
	}

	InitializeResult struct {
		AuthorizationURL string
		AccessCode       string
		Reference        string
	}

	VerifyResult struct {
		Status               string
		Amount               float64 // major currency unit
		Currency             string
		GatewayTransactionID string
		CustomerEmail        string
		Metadata             domain.InternalTransactionMetadata
	}

	paystackService struct {
		secretKey  string
		baseURL    string
		httpClient *http.Client
	}
)

func NewPaystackService(secretKey, baseURL string) PaystackService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &paystackService{
		secretKey: secretKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// toMinorUnit converts a major-unit amount to the gateway's minor unit
// without floating point drift.
func toMinorUnit(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func fromMinorUnit(amount int64) float64 {
	value, _ := decimal.NewFromInt(amount).Div(decimal.NewFromInt(100)).Float64()
	return value
}

func (s *paystackService) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	if s.secretKey == "" {
		return nil, domain.ErrGatewayMisconfigured
	}

	payload := map[string]any{
		"email":     req.Email,
		"amount":    toMinorUnit(req.Amount),
		"currency":  req.Currency,
		"reference": req.Reference,
		"metadata":  req.Metadata,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK || !parsed.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", parsed.Message)
	}

	return &InitializeResult{
		AuthorizationURL: parsed.Data.AuthorizationURL,
		AccessCode:       parsed.Data.AccessCode,
		Reference:        parsed.Data.Reference,
	}, nil
}

func (s *paystackService) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	if s.secretKey == "" {
		return nil, domain.ErrGatewayMisconfigured
	}

	url := fmt.Sprintf("%s/transaction/verify/%s", s.baseURL, reference)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			ID       int64           `json:"id"`
			Status   string          `json:"status"`
			Amount   int64           `json:"amount"` // minor unit
			Currency string          `json:"currency"`
			Metadata json.RawMessage `json:"metadata"`
			Customer struct {
				Email string `json:"email"`
			} `json:"customer"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK || !parsed.Status {
		return nil, fmt.Errorf("paystack verify failed: %s", parsed.Message)
	}

	metadata, err := ParseMetadata(parsed.Data.Metadata)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		Status:               parsed.Data.Status,
		Amount:               fromMinorUnit(parsed.Data.Amount),
		Currency:             parsed.Data.Currency,
		GatewayTransactionID: fmt.Sprintf("%d", parsed.Data.ID),
		CustomerEmail:        parsed.Data.Customer.Email,
		Metadata:             metadata,
	}, nil
}

// VerifyWebhookSignature checks the x-paystack-signature header, an
// HMAC-SHA512 of the raw request body keyed with the secret key.
func (s *paystackService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.secretKey == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(s.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
