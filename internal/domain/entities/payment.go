package entities

import (
	"encoding/json"
	"time"
)

// OrderPayment is a card payment recorded against an order.
//
// Storage model (DynamoDB):
//   - PK: id (provider payment id)
//   - GSI1 (order_number-index): order_number
//
// Provider payload:
//   - ProviderPayloadRaw keeps the original body (JSON) for traceability/audit.
//   - ProviderPayload is an optional parsed representation, useful for
//     querying/debugging. (Provider schemas vary, so both are persisted.)

type OrderPayment struct {
	ID          string        `json:"id"`
	OrderNumber string        `json:"order_number"`
	Date        time.Time     `json:"date"`
	Status      PaymentStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
