package repository

import (
	"context"
	"time"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultOrdersTableName = "orders"

type orderItem struct {
	ID                string `dynamodbav:"id"`
	MontageID         string `dynamodbav:"montage_id"`
	CustomerID        string `dynamodbav:"customer_id"`
	ProductID         string `dynamodbav:"product_id"`
	Description       string `dynamodbav:"description"`
	Amount            int64  `dynamodbav:"amount"`
	Status            string `dynamodbav:"status"`
	PaymentLink       string `dynamodbav:"payment_link,omitempty"`
	ProviderPaymentID string `dynamodbav:"provider_payment_id,omitempty"`
	CreatedAt         string `dynamodbav:"created_at"`
	PaidAt            string `dynamodbav:"paid_at,omitempty"`
}

// OrderDynamoRepository persists measurement service orders in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

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
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
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
		if _, ok := conditionFailed(err); ok {
			return entities.Order{}, interfaces.ErrAlreadyExists
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": strAttr(id)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	return unmarshalOrder(out.Item)
}

func (r *OrderDynamoRepository) MarkPaid(ctx context.Context, id, providerPaymentID string, at time.Time) (entities.Order, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 map[string]types.AttributeValue{"id": strAttr(id)},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:    aws.String("SET #status = :paid, #paid_at = :paid_at, #provider_payment_id = :provider_payment_id"),
		ExpressionAttributeNames: map[string]string{
			"#id":                  "id",
			"#status":              "status",
			"#paid_at":             "paid_at",
			"#provider_payment_id": "provider_payment_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending":             strAttr(string(entities.OrderStatusPending)),
			":paid":                strAttr(string(entities.OrderStatusPaid)),
			":paid_at":             strAttr(formatTime(at)),
			":provider_payment_id": strAttr(providerPaymentID),
		},
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if old, ok := conditionFailed(err); ok {
			return unmarshalOrder(old)
		}
		return entities.Order{}, err
	}
	return unmarshalOrder(out.Attributes)
}

func unmarshalOrder(av map[string]types.AttributeValue) (entities.Order, error) {
	if len(av) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:                o.ID,
		MontageID:         o.MontageID,
		CustomerID:        o.CustomerID,
		ProductID:         o.ProductID,
		Description:       o.Description,
		Amount:            o.Amount,
		Status:            string(o.Status),
		PaymentLink:       o.PaymentLink,
		ProviderPaymentID: o.ProviderPaymentID,
		CreatedAt:         formatTime(o.CreatedAt),
		PaidAt:            formatTimePtr(o.PaidAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	return entities.Order{
		ID:                it.ID,
		MontageID:         it.MontageID,
		CustomerID:        it.CustomerID,
		ProductID:         it.ProductID,
		Description:       it.Description,
		Amount:            it.Amount,
		Status:            entities.OrderStatus(it.Status),
		PaymentLink:       it.PaymentLink,
		ProviderPaymentID: it.ProviderPaymentID,
		CreatedAt:         parseTime(it.CreatedAt),
		PaidAt:            parseTimePtr(it.PaidAt),
	}
}
