package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts external card payment providers (e.g. Mercado Pago).
//
// The order-service uses it to charge a card order and persist the provider
// response payload for traceability.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
