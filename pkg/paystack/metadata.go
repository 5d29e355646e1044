package paystack

import (
	"encoding/json"
	"strconv"

	"Maqal-Backend/domain"
)

// The gateway stores metadata in whichever shape the initiating client
// used: either the flat object we send ourselves, or a custom_fields
// array when the payment was started from a hosted page. Both shapes
// are parsed at this boundary into the one canonical struct; anything
// that lacks a user id or a numeric coin count is rejected.

type customField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        any    `json:"value"`
}

func ParseMetadata(raw json.RawMessage) (domain.InternalTransactionMetadata, error) {
	var meta domain.InternalTransactionMetadata
	if len(raw) == 0 {
		return meta, domain.ErrInvalidCallbackMetadata
	}

	// Flat shape first.
	if err := json.Unmarshal(raw, &meta); err == nil {
		if meta.UserID != "" && meta.Coins > 0 {
			return meta, nil
		}
	}

	// custom_fields shape.
	var wrapper struct {
		CustomFields []customField `json:"custom_fields"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil || len(wrapper.CustomFields) == 0 {
		return domain.InternalTransactionMetadata{}, domain.ErrInvalidCallbackMetadata
	}

	meta = domain.InternalTransactionMetadata{}
	for _, field := range wrapper.CustomFields {
		switch field.VariableName {
		case "user_id":
			meta.UserID = asString(field.Value)
		case "coins":
			meta.Coins = asInt(field.Value)
		case "original_amount":
			meta.OriginalAmount = asFloat(field.Value)
		case "currency":
			meta.Currency = asString(field.Value)
		case "package_name":
			meta.PackageName = asString(field.Value)
		case "internal_tx_id":
			meta.InternalTxID = asString(field.Value)
		}
	}

	if meta.UserID == "" || meta.Coins <= 0 {
		return domain.InternalTransactionMetadata{}, domain.ErrInvalidCallbackMetadata
	}
	return meta, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch value := v.(type) {
	case float64:
		return int(value)
	case string:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
