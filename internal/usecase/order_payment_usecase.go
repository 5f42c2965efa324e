package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"sevabazar/internal/domain/entities"
	"sevabazar/internal/usecase/interfaces"
)

var (
	ErrOrderPaymentNotFound       = errors.New("order payment not found")
	ErrInvalidProviderPayload     = errors.New("invalid payment provider payload")
	ErrOrderNotCardPayment        = errors.New("order is not a card payment order")
	ErrOrderAlreadyPaid           = errors.New("order already paid")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
)

// IOrderPaymentUseCase encapsulates the "charge a card order" behavior.
//
// A charge is recorded as an OrderPayment row; an approved provider response
// additionally moves the order's payment status to paid. Status lifecycle
// updates never touch payment status, so this is the only writer.

type IOrderPaymentUseCase interface {
	ChargeCard(ctx context.Context, caller entities.Caller, orderNumber string, providerPayload json.RawMessage) (entities.OrderPayment, error)
	ListByOrderNumber(ctx context.Context, caller entities.Caller, orderNumber string) ([]entities.OrderPayment, error)
}

type OrderPaymentUseCase struct {
	repo      interfaces.IOrderPaymentRepository
	orderRepo interfaces.IOrderRepository
	gateway   interfaces.IPaymentGateway
}

var _ IOrderPaymentUseCase = (*OrderPaymentUseCase)(nil)

func NewOrderPaymentUseCase(repo interfaces.IOrderPaymentRepository, orderRepo interfaces.IOrderRepository, gateway interfaces.IPaymentGateway) *OrderPaymentUseCase {
	return &OrderPaymentUseCase{repo: repo, orderRepo: orderRepo, gateway: gateway}
}

func (u *OrderPaymentUseCase) ChargeCard(ctx context.Context, caller entities.Caller, orderNumber string, providerPayload json.RawMessage) (entities.OrderPayment, error) {
	log.Printf("[payment][usecase] charge start order_number=%q payload_len=%d", orderNumber, len(providerPayload))
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return entities.OrderPayment{}, ErrInvalidOrderNumber
	}
	if len(providerPayload) == 0 {
		providerPayload = json.RawMessage("{}")
	}
	if !json.Valid(providerPayload) {
		log.Printf("[payment][usecase] invalid payload (not-json) order_number=%s", orderNumber)
		return entities.OrderPayment{}, ErrInvalidProviderPayload
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured order_number=%s", orderNumber)
		return entities.OrderPayment{}, errors.New("payment gateway not configured")
	}

	o, err := u.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		log.Printf("[payment][usecase] failed loading order order_number=%s err=%v", orderNumber, err)
		return entities.OrderPayment{}, err
	}
	if o.OrderNumber == "" {
		return entities.OrderPayment{}, ErrOrderNotFound
	}
	if !caller.IsStaff() && o.CustomerID != caller.ID {
		return entities.OrderPayment{}, ErrForbidden
	}
	if o.PaymentMethod != entities.PaymentMethodCard {
		return entities.OrderPayment{}, ErrOrderNotCardPayment
	}
	if o.PaymentStatus == entities.PaymentStatusPaid {
		return entities.OrderPayment{}, ErrOrderAlreadyPaid
	}
	log.Printf("[payment][usecase] order loaded order_number=%s payment_status=%s total=%.2f", orderNumber, o.PaymentStatus, o.Total)

	// Tie the provider request to the order. The amount always comes from
	// the stored order, never from the client payload.
	var reqMap map[string]any
	if err := json.Unmarshal(providerPayload, &reqMap); err == nil {
		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = orderNumber
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Order %s", orderNumber)
		}
		reqMap["transaction_amount"] = o.Total
		if b, err := json.Marshal(reqMap); err == nil {
			providerPayload = b
		}
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, providerPayload)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed order_number=%s err=%v", orderNumber, err)
		if isGatewayUnauthorized(err) {
			return entities.OrderPayment{}, ErrPaymentGatewayUnauthorized
		}
		if isGatewayBadRequest(err) {
			return entities.OrderPayment{}, ErrPaymentGatewayBadRequest
		}
		return entities.OrderPayment{}, err
	}
	log.Printf("[payment][usecase] payment gateway success order_number=%s provider_payment_id=%s provider_status=%s", orderNumber, providerPaymentID, providerStatus)

	status := entities.PaymentStatusFailed
	if providerStatus == "approved" {
		status = entities.PaymentStatusPaid
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed order_number=%s err=%v", orderNumber, err)
	}

	p := entities.OrderPayment{
		ID:                 providerPaymentID,
		OrderNumber:        orderNumber,
		Date:               time.Now().UTC(),
		Status:             status,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed order_number=%s payment_id=%s err=%v", orderNumber, p.ID, err)
		return entities.OrderPayment{}, err
	}

	if status == entities.PaymentStatusPaid {
		if _, err := u.orderRepo.UpdatePaymentStatus(ctx, orderNumber, entities.PaymentStatusPaid); err != nil {
			log.Printf("[payment][usecase] order payment status update failed order_number=%s err=%v", orderNumber, err)
			return entities.OrderPayment{}, err
		}
	}
	log.Printf("[payment][usecase] charge success order_number=%s payment_id=%s status=%s", orderNumber, created.ID, created.Status)
	return created, nil
}

func (u *OrderPaymentUseCase) ListByOrderNumber(ctx context.Context, caller entities.Caller, orderNumber string) ([]entities.OrderPayment, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, ErrInvalidOrderNumber
	}

	o, err := u.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if o.OrderNumber == "" {
		return nil, ErrOrderNotFound
	}
	if !caller.IsStaff() && o.CustomerID != caller.ID {
		return nil, ErrForbidden
	}
	return u.repo.ListByOrderNumber(ctx, orderNumber)
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
