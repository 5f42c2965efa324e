package request

import "encoding/json"

// ChargeOrderPaymentRequest is the payload for the card charge route.
//
// `provider_payload` is forwarded as raw JSON to support varying provider
// schemas; the amount inside is always overridden with the stored order total.

type ChargeOrderPaymentRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}
