package repository

import (
	"context"
	"time"

	"sevabazar/internal/domain/entities"
	"sevabazar/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "order_payments"
	paymentsOrderNumberIndex = "order_number-index"
)

type orderPaymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	OrderNumber        string                 `dynamodbav:"order_number"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// OrderPaymentDynamoRepository persists OrderPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_number-index (PK: order_number)

type OrderPaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderPaymentRepository = (*OrderPaymentDynamoRepository)(nil)

func NewOrderPaymentDynamoRepository(ddb *dynamodb.Client) *OrderPaymentDynamoRepository {
	return &OrderPaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDER_PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *OrderPaymentDynamoRepository) Create(ctx context.Context, p entities.OrderPayment) (entities.OrderPayment, error) {
	it := toOrderPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.OrderPayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.OrderPayment{}, err
	}
	return p, nil
}

func (r *OrderPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.OrderPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.OrderPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.OrderPayment{}, nil
	}

	var it orderPaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.OrderPayment{}, err
	}
	return fromOrderPaymentItem(it), nil
}

func (r *OrderPaymentDynamoRepository) ListByOrderNumber(ctx context.Context, orderNumber string) ([]entities.OrderPayment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsOrderNumberIndex),
		KeyConditionExpression: aws.String("order_number = :onum"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":onum": &types.AttributeValueMemberS{Value: orderNumber},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.OrderPayment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it orderPaymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromOrderPaymentItem(it))
	}
	return items, nil
}

func toOrderPaymentItem(p entities.OrderPayment) orderPaymentItem {
	return orderPaymentItem{
		ID:                 p.ID,
		OrderNumber:        p.OrderNumber,
		Date:               p.Date.UTC().Format(time.RFC3339Nano),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromOrderPaymentItem(it orderPaymentItem) entities.OrderPayment {
	dt, _ := time.Parse(time.RFC3339Nano, it.Date)
	return entities.OrderPayment{
		ID:                 it.ID,
		OrderNumber:        it.OrderNumber,
		Date:               dt,
		Status:             entities.PaymentStatus(it.Status),
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: []byte(it.ProviderPayloadRaw),
	}
}
