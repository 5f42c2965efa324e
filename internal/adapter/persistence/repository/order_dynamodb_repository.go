package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"sevabazar/internal/domain/entities"
	"sevabazar/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName = "orders"
	ordersCustomerIDIndex  = "customer_id-index"
)

type orderLineItem struct {
	ServiceID     string `dynamodbav:"service_id,omitempty"`
	ServiceName   string `dynamodbav:"service_name"`
	Quantity      int    `dynamodbav:"quantity"`
	Price         string `dynamodbav:"price"`
	OriginalPrice string `dynamodbav:"original_price,omitempty"`
	Details       string `dynamodbav:"details,omitempty"`
}

type orderItem struct {
	OrderNumber      string          `dynamodbav:"order_number"`
	CustomerID       string          `dynamodbav:"customer_id"`
	Items            []orderLineItem `dynamodbav:"items"`
	Status           string          `dynamodbav:"status"`
	PaymentMethod    string          `dynamodbav:"payment_method"`
	PaymentStatus    string          `dynamodbav:"payment_status"`
	Subtotal         string          `dynamodbav:"subtotal"`
	Discount         string          `dynamodbav:"discount"`
	PromoCode        string          `dynamodbav:"promo_code,omitempty"`
	PromoDiscount    string          `dynamodbav:"promo_discount"`
	AdditionalCost   string          `dynamodbav:"additional_cost"`
	DeliveryCharge   string          `dynamodbav:"delivery_charge"`
	Total            string          `dynamodbav:"total"`
	AssignedVendorID string          `dynamodbav:"assigned_vendor_id,omitempty"`
	ScheduledDate    string          `dynamodbav:"scheduled_date,omitempty"`
	ScheduledTime    string          `dynamodbav:"scheduled_time,omitempty"`
	Address          string          `dynamodbav:"address,omitempty"`
	Notes            string          `dynamodbav:"notes,omitempty"`
	CreatedAt        string          `dynamodbav:"created_at"`
	UpdatedAt        string          `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: order_number (string)
//   - GSI: customer_id-index (PK: customer_id)
//
// Money fields are stored as strings to survive round-trips without the
// precision drift of DynamoDB number coercion.

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	it := toOrderItem(o)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#order_number)"),
		ExpressionAttributeNames: map[string]string{
			"#order_number": "order_number",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, interfaces.ErrOrderNumberExists
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByNumber(ctx context.Context, orderNumber string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_number": &types.AttributeValueMemberS{Value: orderNumber},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersCustomerIDIndex),
		KeyConditionExpression: aws.String("customer_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID},
		},
	})
	if err != nil {
		return nil, err
	}

	orders := make([]entities.Order, 0, len(out.Items))
	for _, raw := range out.Items {
		var it orderItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		orders = append(orders, fromOrderItem(it))
	}
	return orders, nil
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, orderNumber string, status entities.OrderStatus, vendorID string) (entities.Order, error) {
	return r.update(ctx, orderNumber, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		if vendorID != "" {
			expr += ", #assigned_vendor_id = :vendor"
			vals[":vendor"] = &types.AttributeValueMemberS{Value: vendorID}
			names["#assigned_vendor_id"] = "assigned_vendor_id"
		}
		return expr, vals, names
	})
}

func (r *OrderDynamoRepository) UpdatePaymentStatus(ctx context.Context, orderNumber string, status entities.PaymentStatus) (entities.Order, error) {
	return r.update(ctx, orderNumber, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #payment_status = :payment_status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":payment_status": &types.AttributeValueMemberS{Value: string(status)},
			":updated_at":     &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#payment_status": "payment_status",
			"#updated_at":     "updated_at",
		}
		return expr, vals, names
	})
}

func (r *OrderDynamoRepository) update(
	ctx context.Context,
	orderNumber string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Order, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_number": &types.AttributeValueMemberS{Value: orderNumber},
		},
		ConditionExpression:       aws.String("attribute_exists(#order_number)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#order_number": "order_number"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Order{}, nil
		}
		return entities.Order{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	lines := make([]orderLineItem, 0, len(o.Items))
	for _, li := range o.Items {
		original := ""
		if li.OriginalPrice > 0 {
			original = floatToString(li.OriginalPrice)
		}
		lines = append(lines, orderLineItem{
			ServiceID:     li.ServiceID,
			ServiceName:   li.ServiceName,
			Quantity:      li.Quantity,
			Price:         floatToString(li.Price),
			OriginalPrice: original,
			Details:       li.Details,
		})
	}

	return orderItem{
		OrderNumber:      o.OrderNumber,
		CustomerID:       o.CustomerID,
		Items:            lines,
		Status:           string(o.Status),
		PaymentMethod:    string(o.PaymentMethod),
		PaymentStatus:    string(o.PaymentStatus),
		Subtotal:         floatToString(o.Subtotal),
		Discount:         floatToString(o.Discount),
		PromoCode:        o.PromoCode,
		PromoDiscount:    floatToString(o.PromoDiscount),
		AdditionalCost:   floatToString(o.AdditionalCost),
		DeliveryCharge:   floatToString(o.DeliveryCharge),
		Total:            floatToString(o.Total),
		AssignedVendorID: o.AssignedVendorID,
		ScheduledDate:    o.ScheduledDate,
		ScheduledTime:    o.ScheduledTime,
		Address:          o.Address,
		Notes:            o.Notes,
		CreatedAt:        o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	items := make([]entities.OrderItem, 0, len(it.Items))
	for _, li := range it.Items {
		price, _ := strconv.ParseFloat(li.Price, 64)
		original := 0.0
		if li.OriginalPrice != "" {
			original, _ = strconv.ParseFloat(li.OriginalPrice, 64)
		}
		items = append(items, entities.OrderItem{
			ServiceID:     li.ServiceID,
			ServiceName:   li.ServiceName,
			Quantity:      li.Quantity,
			Price:         price,
			OriginalPrice: original,
			Details:       li.Details,
		})
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	subtotal, _ := strconv.ParseFloat(it.Subtotal, 64)
	discount, _ := strconv.ParseFloat(it.Discount, 64)
	promoDiscount, _ := strconv.ParseFloat(it.PromoDiscount, 64)
	additionalCost, _ := strconv.ParseFloat(it.AdditionalCost, 64)
	deliveryCharge, _ := strconv.ParseFloat(it.DeliveryCharge, 64)
	total, _ := strconv.ParseFloat(it.Total, 64)

	return entities.Order{
		OrderNumber:      it.OrderNumber,
		CustomerID:       it.CustomerID,
		Items:            items,
		Status:           entities.OrderStatus(it.Status),
		PaymentMethod:    entities.PaymentMethod(it.PaymentMethod),
		PaymentStatus:    entities.PaymentStatus(it.PaymentStatus),
		Subtotal:         subtotal,
		Discount:         discount,
		PromoCode:        it.PromoCode,
		PromoDiscount:    promoDiscount,
		AdditionalCost:   additionalCost,
		DeliveryCharge:   deliveryCharge,
		Total:            total,
		AssignedVendorID: it.AssignedVendorID,
		ScheduledDate:    it.ScheduledDate,
		ScheduledTime:    it.ScheduledTime,
		Address:          it.Address,
		Notes:            it.Notes,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
