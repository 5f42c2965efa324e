package response

import (
	"time"

	"sevabazar/internal/domain/entities"
)

type OrderPaymentResponse struct {
	PaymentID   string    `json:"payment_id"`
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromOrderPayment(p entities.OrderPayment) OrderPaymentResponse {
	return OrderPaymentResponse{
		PaymentID:          p.ID,
		ID:                 p.ID,
		OrderNumber:        p.OrderNumber,
		Date:               p.Date,
		Status:             string(p.Status),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		ProviderPayload:    p.ProviderPayload,
	}
}
