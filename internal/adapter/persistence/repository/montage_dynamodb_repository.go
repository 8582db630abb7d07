package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultMontagesTableName = "montages"
	defaultCountersTableName = "counters"
)

type montageItem struct {
	ID                  string  `dynamodbav:"id"`
	DisplayCode         string  `dynamodbav:"display_code"`
	CustomerID          string  `dynamodbav:"customer_id,omitempty"`
	Status              string  `dynamodbav:"status"`
	CompletedAt         string  `dynamodbav:"completed_at,omitempty"`
	InstallerID         string  `dynamodbav:"installer_id,omitempty"`
	MeasurerID          string  `dynamodbav:"measurer_id,omitempty"`
	ArchitectID         string  `dynamodbav:"architect_id,omitempty"`
	PartnerID           string  `dynamodbav:"partner_id,omitempty"`
	FloorArea           float64 `dynamodbav:"floor_area"`
	IsHousingVat        bool    `dynamodbav:"is_housing_vat"`
	MaterialDetails     string  `dynamodbav:"material_details,omitempty"`
	SampleStatus        string  `dynamodbav:"sample_status"`
	MeasurementDate     string  `dynamodbav:"measurement_date,omitempty"`
	InstallationDate    string  `dynamodbav:"installation_date,omitempty"`
	OrderID             string  `dynamodbav:"order_id,omitempty"`
	CustomerAccessToken string  `dynamodbav:"customer_access_token,omitempty"`
	CreatedAt           string  `dynamodbav:"created_at"`
	UpdatedAt           string  `dynamodbav:"updated_at"`
}

// MontageDynamoRepository persists Montage entities in DynamoDB.
//
// Table requirements:
//   - montages: PK id (string)
//   - counters: PK id (string); holds the yearly display code sequences
//
// Status updates are conditional on the previous status so that concurrent
// writers cannot overwrite each other's transition.

type MontageDynamoRepository struct {
	ddb           *dynamodb.Client
	tableName     string
	countersTable string
}

var _ interfaces.IMontageRepository = (*MontageDynamoRepository)(nil)

func NewMontageDynamoRepository(ddb *dynamodb.Client) *MontageDynamoRepository {
	return &MontageDynamoRepository{
		ddb:           ddb,
		tableName:     getenvDefault("MONTAGES_TABLE", defaultMontagesTableName),
		countersTable: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
	}
}

func (r *MontageDynamoRepository) Create(ctx context.Context, m entities.Montage) (entities.Montage, error) {
	av, err := attributevalue.MarshalMap(toMontageItem(m))
	if err != nil {
		return entities.Montage{}, err
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
			return entities.Montage{}, interfaces.ErrAlreadyExists
		}
		return entities.Montage{}, err
	}
	return m, nil
}

func (r *MontageDynamoRepository) GetByID(ctx context.Context, id string) (entities.Montage, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": strAttr(id)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Montage{}, err
	}
	if len(out.Item) == 0 {
		return entities.Montage{}, nil
	}
	return unmarshalMontage(out.Item)
}

func (r *MontageDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.Status, completedAt *time.Time) (entities.Montage, error) {
	values := map[string]types.AttributeValue{
		":from":       strAttr(string(from)),
		":to":         strAttr(string(to)),
		":updated_at": strAttr(nowString()),
	}
	names := map[string]string{
		"#id":           "id",
		"#status":       "status",
		"#updated_at":   "updated_at",
		"#completed_at": "completed_at",
	}
	expr := "SET #status = :to, #updated_at = :updated_at REMOVE #completed_at"
	if completedAt != nil {
		expr = "SET #status = :to, #updated_at = :updated_at, #completed_at = :completed_at"
		values[":completed_at"] = strAttr(formatTime(*completedAt))
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.tableName),
		Key:                                 map[string]types.AttributeValue{"id": strAttr(id)},
		ConditionExpression:                 aws.String("attribute_exists(#id) AND #status = :from"),
		UpdateExpression:                    aws.String(expr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            names,
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if old, ok := conditionFailed(err); ok {
			if len(old) == 0 {
				return entities.Montage{}, nil
			}
			return entities.Montage{}, interfaces.ErrStatusConflict
		}
		return entities.Montage{}, err
	}
	return unmarshalMontage(out.Attributes)
}

func (r *MontageDynamoRepository) AssignMeasurer(ctx context.Context, id, measurerID string) (entities.Montage, error) {
	return r.update(ctx, id, "SET #measurer_id = :measurer_id",
		map[string]types.AttributeValue{":measurer_id": strAttr(measurerID)},
		map[string]string{"#measurer_id": "measurer_id"})
}

func (r *MontageDynamoRepository) LinkOrder(ctx context.Context, id, orderID, accessToken string) (entities.Montage, error) {
	expr := "SET #order_id = :order_id"
	values := map[string]types.AttributeValue{":order_id": strAttr(orderID)}
	names := map[string]string{"#order_id": "order_id"}
	if accessToken != "" {
		expr += ", #token = :token"
		values[":token"] = strAttr(accessToken)
		names["#token"] = "customer_access_token"
	}
	return r.update(ctx, id, expr, values, names)
}

func (r *MontageDynamoRepository) UpdateSampleStatus(ctx context.Context, id string, status entities.SampleStatus) (entities.Montage, error) {
	return r.update(ctx, id, "SET #sample_status = :sample_status",
		map[string]types.AttributeValue{":sample_status": strAttr(string(status))},
		map[string]string{"#sample_status": "sample_status"})
}

// NextDisplaySequence atomically increments the montage counter of a year.
func (r *MontageDynamoRepository) NextDisplaySequence(ctx context.Context, year int) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.countersTable),
		Key:              map[string]types.AttributeValue{"id": strAttr(fmt.Sprintf("montage#%d", year))},
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": numAttr(1),
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter montage#%d: missing seq attribute", year)
	}
	return strconv.ParseInt(n.Value, 10, 64)
}

// update applies expr to an existing montage and bumps updated_at. A missing
// montage yields a zero Montage.
func (r *MontageDynamoRepository) update(ctx context.Context, id, expr string, values map[string]types.AttributeValue, names map[string]string) (entities.Montage, error) {
	values[":updated_at"] = strAttr(nowString())
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       map[string]types.AttributeValue{"id": strAttr(id)},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr + ", #updated_at = :updated_at"),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id", "#updated_at": "updated_at"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if _, ok := conditionFailed(err); ok {
			return entities.Montage{}, nil
		}
		return entities.Montage{}, err
	}
	return unmarshalMontage(out.Attributes)
}

func unmarshalMontage(av map[string]types.AttributeValue) (entities.Montage, error) {
	if len(av) == 0 {
		return entities.Montage{}, nil
	}
	var it montageItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Montage{}, err
	}
	return fromMontageItem(it), nil
}

func toMontageItem(m entities.Montage) montageItem {
	return montageItem{
		ID:                  m.ID,
		DisplayCode:         m.DisplayCode,
		CustomerID:          m.CustomerID,
		Status:              string(m.Status),
		CompletedAt:         formatTimePtr(m.CompletedAt),
		InstallerID:         m.InstallerID,
		MeasurerID:          m.MeasurerID,
		ArchitectID:         m.ArchitectID,
		PartnerID:           m.PartnerID,
		FloorArea:           m.FloorArea,
		IsHousingVat:        m.IsHousingVat,
		MaterialDetails:     m.MaterialDetails,
		SampleStatus:        string(m.SampleStatus),
		MeasurementDate:     formatTimePtr(m.MeasurementDate),
		InstallationDate:    formatTimePtr(m.InstallationDate),
		OrderID:             m.OrderID,
		CustomerAccessToken: m.CustomerAccessToken,
		CreatedAt:           formatTime(m.CreatedAt),
		UpdatedAt:           formatTime(m.UpdatedAt),
	}
}

func fromMontageItem(it montageItem) entities.Montage {
	return entities.Montage{
		ID:                  it.ID,
		DisplayCode:         it.DisplayCode,
		CustomerID:          it.CustomerID,
		Status:              entities.Status(it.Status),
		CompletedAt:         parseTimePtr(it.CompletedAt),
		InstallerID:         it.InstallerID,
		MeasurerID:          it.MeasurerID,
		ArchitectID:         it.ArchitectID,
		PartnerID:           it.PartnerID,
		FloorArea:           it.FloorArea,
		IsHousingVat:        it.IsHousingVat,
		MaterialDetails:     it.MaterialDetails,
		SampleStatus:        entities.SampleStatus(it.SampleStatus),
		MeasurementDate:     parseTimePtr(it.MeasurementDate),
		InstallationDate:    parseTimePtr(it.InstallationDate),
		OrderID:             it.OrderID,
		CustomerAccessToken: it.CustomerAccessToken,
		CreatedAt:           parseTime(it.CreatedAt),
		UpdatedAt:           parseTime(it.UpdatedAt),
	}
}
