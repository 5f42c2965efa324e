package interfaces

import (
	"context"
	"errors"

	"sevabazar/internal/domain/entities"
)

// ErrOrderNumberExists signals that Create lost the conditional write because
// an order with the same order number is already stored. The usecase resolves
// it by re-reading and returning the existing order, which makes creation
// idempotent without a read-modify-write race.
var ErrOrderNumberExists = errors.New("order number already exists")

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// The order-service must be able to:
//   - create an order from a validated cart snapshot (conditional on the
//     order number being unused)
//   - read an order by its number, and list a customer's orders
//   - update status (and optionally vendor assignment) by order number
//   - update payment status when a payment is recorded
//
// Reads return a zero-value Order (empty OrderNumber) when nothing matches.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (entities.Order, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status entities.OrderStatus, vendorID string) (entities.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderNumber string, status entities.PaymentStatus) (entities.Order, error)
}
