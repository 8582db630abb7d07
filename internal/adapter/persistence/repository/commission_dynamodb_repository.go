package repository

import (
	"context"
	"strconv"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCommissionsTableName = "commissions"

type commissionItem struct {
	ID              string `dynamodbav:"id"`
	MontageID       string `dynamodbav:"montage_id"`
	BeneficiaryType string `dynamodbav:"beneficiary_type"`
	BeneficiaryID   string `dynamodbav:"beneficiary_id"`
	Amount          int64  `dynamodbav:"amount"`
	Rate            string `dynamodbav:"rate"`
	Area            string `dynamodbav:"area"`
	Status          string `dynamodbav:"status"`
	CreatedAt       string `dynamodbav:"created_at"`
}

// CommissionDynamoRepository persists commissions in DynamoDB.
//
// Table requirements:
//   - PK: id (string) = "<montage_id>#<beneficiary_type>"

type CommissionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICommissionRepository = (*CommissionDynamoRepository)(nil)

func NewCommissionDynamoRepository(ddb *dynamodb.Client) *CommissionDynamoRepository {
	return &CommissionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("COMMISSIONS_TABLE", defaultCommissionsTableName),
	}
}

func (r *CommissionDynamoRepository) Get(ctx context.Context, montageID string, t entities.BeneficiaryType) (entities.Commission, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": strAttr(entities.CommissionID(montageID, t))},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Commission{}, err
	}
	if len(out.Item) == 0 {
		return entities.Commission{}, nil
	}
	var it commissionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Commission{}, err
	}
	return fromCommissionItem(it), nil
}

func (r *CommissionDynamoRepository) Create(ctx context.Context, c entities.Commission) (entities.Commission, error) {
	av, err := attributevalue.MarshalMap(toCommissionItem(c))
	if err != nil {
		return entities.Commission{}, err
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
			return entities.Commission{}, interfaces.ErrAlreadyExists
		}
		return entities.Commission{}, err
	}
	return c, nil
}

func toCommissionItem(c entities.Commission) commissionItem {
	return commissionItem{
		ID:              c.ID,
		MontageID:       c.MontageID,
		BeneficiaryType: string(c.BeneficiaryType),
		BeneficiaryID:   c.BeneficiaryID,
		Amount:          c.Amount,
		Rate:            floatToString(c.Rate),
		Area:            floatToString(c.Area),
		Status:          string(c.Status),
		CreatedAt:       formatTime(c.CreatedAt),
	}
}

func fromCommissionItem(it commissionItem) entities.Commission {
	rate, _ := strconv.ParseFloat(it.Rate, 64)
	area, _ := strconv.ParseFloat(it.Area, 64)
	return entities.Commission{
		ID:              it.ID,
		MontageID:       it.MontageID,
		BeneficiaryType: entities.BeneficiaryType(it.BeneficiaryType),
		BeneficiaryID:   it.BeneficiaryID,
		Amount:          it.Amount,
		Rate:            rate,
		Area:            area,
		Status:          entities.CommissionStatus(it.Status),
		CreatedAt:       parseTime(it.CreatedAt),
	}
}
