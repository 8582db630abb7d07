package repository

import (
	"context"
	"errors"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultCustomersTableName = "customers"
	defaultTaxIDsTableName    = "customer_tax_ids"
)

type customerItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	TaxID     string `dynamodbav:"tax_id,omitempty"`
	Email     string `dynamodbav:"email,omitempty"`
	Phone     string `dynamodbav:"phone,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
}

type taxIDGuardItem struct {
	TaxID      string `dynamodbav:"tax_id"`
	CustomerID string `dynamodbav:"customer_id"`
}

// CustomerDynamoRepository persists customers in DynamoDB.
//
// Table requirements:
//   - customers: PK id (string)
//   - customer_tax_ids: PK tax_id (string), one row per claimed tax id
//
// Customers with a tax id are written together with their guard row in a
// single transaction.

type CustomerDynamoRepository struct {
	ddb         *dynamodb.Client
	tableName   string
	taxIDsTable string
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb *dynamodb.Client) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{
		ddb:         ddb,
		tableName:   getenvDefault("CUSTOMERS_TABLE", defaultCustomersTableName),
		taxIDsTable: getenvDefault("CUSTOMER_TAX_IDS_TABLE", defaultTaxIDsTableName),
	}
}

func (r *CustomerDynamoRepository) Create(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	av, err := attributevalue.MarshalMap(customerItem{
		ID:        c.ID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: formatTime(c.CreatedAt),
	})
	if err != nil {
		return entities.Customer{}, err
	}

	if c.TaxID == "" {
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
				return entities.Customer{}, interfaces.ErrAlreadyExists
			}
			return entities.Customer{}, err
		}
		return c, nil
	}

	guard, err := attributevalue.MarshalMap(taxIDGuardItem{TaxID: c.TaxID, CustomerID: c.ID})
	if err != nil {
		return entities.Customer{}, err
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.taxIDsTable),
				Item:                     guard,
				ConditionExpression:      aws.String("attribute_not_exists(#tax_id)"),
				ExpressionAttributeNames: map[string]string{"#tax_id": "tax_id"},
			}},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for _, reason := range tce.CancellationReasons {
				if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
					return entities.Customer{}, interfaces.ErrAlreadyExists
				}
			}
		}
		return entities.Customer{}, err
	}
	return c, nil
}

func (r *CustomerDynamoRepository) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       map[string]types.AttributeValue{"id": strAttr(id)},
	})
	if err != nil {
		return entities.Customer{}, err
	}
	if len(out.Item) == 0 {
		return entities.Customer{}, nil
	}
	var it customerItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Customer{}, err
	}
	return entities.Customer{
		ID:        it.ID,
		Name:      it.Name,
		TaxID:     it.TaxID,
		Email:     it.Email,
		Phone:     it.Phone,
		CreatedAt: parseTime(it.CreatedAt),
	}, nil
}
