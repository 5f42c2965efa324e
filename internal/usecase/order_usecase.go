package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"sevabazar/internal/domain/entities"
	"sevabazar/internal/domain/pricing"
	"sevabazar/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrInvalidOrderNumber    = errors.New("invalid order number")
	ErrInvalidCustomerID     = errors.New("invalid customer id")
	ErrNoItems               = errors.New("order items are required")
	ErrInvalidItem           = errors.New("invalid order item")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidPromoDiscount  = errors.New("invalid promo discount")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrForbidden             = errors.New("caller is not allowed to perform this operation")
)

// CreateOrderCommand is the validated cart snapshot an order is created from.
// CustomerID is honored only for staff callers; customers always create
// orders for themselves.
type CreateOrderCommand struct {
	OrderNumber   string
	CustomerID    string
	Items         []entities.OrderItem
	PaymentMethod entities.PaymentMethod
	PromoCode     string
	PromoDiscount float64
	ScheduledDate string
	ScheduledTime string
	Address       string
	Notes         string
}

// IOrderUseCase exposes the order operations.
//
//   - CreateOrder: money computation + idempotent persist by order number
//   - UpdateStatus: staff-only lifecycle transition with optional vendor
//     assignment
//   - GetByNumber / ListByCustomer: read side, owner- or staff-scoped

type IOrderUseCase interface {
	CreateOrder(ctx context.Context, caller entities.Caller, cmd CreateOrderCommand) (entities.Order, error)
	UpdateStatus(ctx context.Context, caller entities.Caller, orderNumber string, status entities.OrderStatus, vendorID string) (entities.Order, error)
	GetByNumber(ctx context.Context, caller entities.Caller, orderNumber string) (entities.Order, error)
	ListByCustomer(ctx context.Context, caller entities.Caller, customerID string) ([]entities.Order, error)
}

type OrderUseCase struct {
	repo interfaces.IOrderRepository
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(repo interfaces.IOrderRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo}
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, caller entities.Caller, cmd CreateOrderCommand) (entities.Order, error) {
	if caller.ID == "" {
		return entities.Order{}, ErrForbidden
	}
	if len(cmd.Items) == 0 {
		return entities.Order{}, ErrNoItems
	}
	for _, it := range cmd.Items {
		if strings.TrimSpace(it.ServiceName) == "" || it.Quantity < 1 || it.Price <= 0 {
			return entities.Order{}, ErrInvalidItem
		}
	}
	if !cmd.PaymentMethod.Valid() {
		return entities.Order{}, ErrInvalidPaymentMethod
	}
	if cmd.PromoDiscount < 0 {
		return entities.Order{}, ErrInvalidPromoDiscount
	}

	customerID := caller.ID
	if caller.IsStaff() && strings.TrimSpace(cmd.CustomerID) != "" {
		customerID = strings.TrimSpace(cmd.CustomerID)
	}

	orderNumber := strings.TrimSpace(cmd.OrderNumber)
	if orderNumber == "" {
		orderNumber = newOrderNumber()
	} else {
		// Idempotent create: a resubmitted cart with a known order number
		// returns the already-stored order instead of failing.
		if existing, err := u.repo.GetByNumber(ctx, orderNumber); err != nil {
			return entities.Order{}, err
		} else if existing.OrderNumber != "" {
			return existing, nil
		}
	}

	lines := make([]pricing.Line, 0, len(cmd.Items))
	for _, it := range cmd.Items {
		lines = append(lines, pricing.LineFromFloats(it.Price, it.OriginalPrice, it.Quantity))
	}
	quote := pricing.Compute(
		lines,
		decimal.NewFromFloat(cmd.PromoDiscount),
		decimal.Zero, // additional cost: reserved, always 0 today
		decimal.Zero, // delivery charge: reserved, always 0 today
	)

	now := time.Now().UTC()
	o := entities.Order{
		OrderNumber:    orderNumber,
		CustomerID:     customerID,
		Items:          cmd.Items,
		Status:         entities.OrderStatusSubmitted,
		PaymentMethod:  cmd.PaymentMethod,
		PaymentStatus:  entities.PaymentStatusPending,
		Subtotal:       quote.Subtotal.InexactFloat64(),
		Discount:       quote.Discount.InexactFloat64(),
		PromoCode:      strings.TrimSpace(cmd.PromoCode),
		PromoDiscount:  quote.PromoDiscount.InexactFloat64(),
		AdditionalCost: quote.AdditionalCost.InexactFloat64(),
		DeliveryCharge: quote.DeliveryCharge.InexactFloat64(),
		Total:          quote.Total.InexactFloat64(),
		ScheduledDate:  strings.TrimSpace(cmd.ScheduledDate),
		ScheduledTime:  strings.TrimSpace(cmd.ScheduledTime),
		Address:        strings.TrimSpace(cmd.Address),
		Notes:          strings.TrimSpace(cmd.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		if errors.Is(err, interfaces.ErrOrderNumberExists) {
			// Lost the conditional write to a concurrent submit of the same
			// order number. Return the winner.
			existing, getErr := u.repo.GetByNumber(ctx, orderNumber)
			if getErr != nil {
				return entities.Order{}, getErr
			}
			if existing.OrderNumber != "" {
				return existing, nil
			}
		}
		return entities.Order{}, err
	}
	return created, nil
}

func (u *OrderUseCase) UpdateStatus(ctx context.Context, caller entities.Caller, orderNumber string, status entities.OrderStatus, vendorID string) (entities.Order, error) {
	if !caller.IsStaff() {
		return entities.Order{}, ErrForbidden
	}
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return entities.Order{}, ErrInvalidOrderNumber
	}
	if !status.Valid() {
		return entities.Order{}, ErrInvalidStatus
	}

	updated, err := u.repo.UpdateStatus(ctx, orderNumber, status, strings.TrimSpace(vendorID))
	if err != nil {
		return entities.Order{}, err
	}
	if updated.OrderNumber == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return updated, nil
}

func (u *OrderUseCase) GetByNumber(ctx context.Context, caller entities.Caller, orderNumber string) (entities.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return entities.Order{}, ErrInvalidOrderNumber
	}

	o, err := u.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return entities.Order{}, err
	}
	if o.OrderNumber == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	if !caller.IsStaff() && o.CustomerID != caller.ID {
		return entities.Order{}, ErrForbidden
	}
	return o, nil
}

func (u *OrderUseCase) ListByCustomer(ctx context.Context, caller entities.Caller, customerID string) ([]entities.Order, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		customerID = caller.ID
	}
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if !caller.IsStaff() && customerID != caller.ID {
		return nil, ErrForbidden
	}
	return u.repo.ListByCustomerID(ctx, customerID)
}

func newOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + raw[:10]
}
