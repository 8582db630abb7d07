package repository

import (
	"context"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultUserRatesTableName = "user_rates"

type userRatesItem struct {
	UserID          string   `dynamodbav:"user_id"`
	MeasurementRate *float64 `dynamodbav:"measurement_rate,omitempty"`
	CommissionRate  *float64 `dynamodbav:"commission_rate,omitempty"`
}

// UserRatesDynamoRepository reads per-user financial rates. Rates are managed
// outside this service.
//
// Table requirements:
//   - PK: user_id (string)

type UserRatesDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IRateLookup = (*UserRatesDynamoRepository)(nil)

func NewUserRatesDynamoRepository(ddb *dynamodb.Client) *UserRatesDynamoRepository {
	return &UserRatesDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("USER_RATES_TABLE", defaultUserRatesTableName),
	}
}

func (r *UserRatesDynamoRepository) LookupRate(ctx context.Context, userID string) (entities.UserRates, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       map[string]types.AttributeValue{"user_id": strAttr(userID)},
	})
	if err != nil {
		return entities.UserRates{}, err
	}
	if len(out.Item) == 0 {
		return entities.UserRates{}, nil
	}
	var it userRatesItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.UserRates{}, err
	}
	return entities.UserRates{
		UserID:          it.UserID,
		MeasurementRate: it.MeasurementRate,
		CommissionRate:  it.CommissionRate,
	}, nil
}
