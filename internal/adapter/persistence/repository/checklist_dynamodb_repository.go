package repository

import (
	"context"
	"sort"
	"time"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultChecklistTableName = "checklist_items"
	checklistMontageIDIndex   = "montage_id-index"
	dynamoBatchWriteMaxItems  = 25
)

type checklistItemRecord struct {
	ID           string `dynamodbav:"id"`
	MontageID    string `dynamodbav:"montage_id"`
	TemplateID   string `dynamodbav:"template_id,omitempty"`
	Label        string `dynamodbav:"label"`
	Completed    bool   `dynamodbav:"completed"`
	OrderIndex   int    `dynamodbav:"order_index"`
	AttachmentID string `dynamodbav:"attachment_id,omitempty"`
	CompletedAt  string `dynamodbav:"completed_at,omitempty"`
	CompletedBy  string `dynamodbav:"completed_by,omitempty"`
}

// ChecklistDynamoRepository persists checklist items in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: montage_id-index (PK: montage_id)

type ChecklistDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IChecklistRepository = (*ChecklistDynamoRepository)(nil)

func NewChecklistDynamoRepository(ddb *dynamodb.Client) *ChecklistDynamoRepository {
	return &ChecklistDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CHECKLIST_ITEMS_TABLE", defaultChecklistTableName),
	}
}

func (r *ChecklistDynamoRepository) CreateBatch(ctx context.Context, items []entities.ChecklistItem) error {
	for start := 0; start < len(items); start += dynamoBatchWriteMaxItems {
		end := start + dynamoBatchWriteMaxItems
		if end > len(items) {
			end = len(items)
		}
		reqs := make([]types.WriteRequest, 0, end-start)
		for _, it := range items[start:end] {
			av, err := attributevalue.MarshalMap(toChecklistRecord(it))
			if err != nil {
				return err
			}
			reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
		}

		pending := map[string][]types.WriteRequest{r.tableName: reqs}
		for len(pending[r.tableName]) > 0 {
			out, err := r.ddb.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return err
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}

func (r *ChecklistDynamoRepository) GetByID(ctx context.Context, id string) (entities.ChecklistItem, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"id": strAttr(id)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ChecklistItem{}, err
	}
	if len(out.Item) == 0 {
		return entities.ChecklistItem{}, nil
	}
	var rec checklistItemRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return entities.ChecklistItem{}, err
	}
	return fromChecklistRecord(rec), nil
}

// ListByMontageID returns the items of a montage ordered by OrderIndex.
func (r *ChecklistDynamoRepository) ListByMontageID(ctx context.Context, montageID string) ([]entities.ChecklistItem, error) {
	var (
		out     []entities.ChecklistItem
		lastKey map[string]types.AttributeValue
	)
	for {
		res, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(checklistMontageIDIndex),
			KeyConditionExpression: aws.String("#montage_id = :montage_id"),
			ExpressionAttributeNames: map[string]string{
				"#montage_id": "montage_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":montage_id": strAttr(montageID),
			},
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, err
		}
		var recs []checklistItemRecord
		if err := attributevalue.UnmarshalListOfMaps(res.Items, &recs); err != nil {
			return nil, err
		}
		for _, rec := range recs {
			out = append(out, fromChecklistRecord(rec))
		}
		if len(res.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = res.LastEvaluatedKey
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *ChecklistDynamoRepository) SetCompleted(ctx context.Context, id string, completed bool, actorID string, at time.Time) (entities.ChecklistItem, error) {
	values := map[string]types.AttributeValue{
		":completed": &types.AttributeValueMemberBOOL{Value: completed},
	}
	names := map[string]string{
		"#id":           "id",
		"#completed":    "completed",
		"#completed_at": "completed_at",
		"#completed_by": "completed_by",
	}
	expr := "SET #completed = :completed REMOVE #completed_at, #completed_by"
	if completed {
		expr = "SET #completed = :completed, #completed_at = :completed_at, #completed_by = :completed_by"
		values[":completed_at"] = strAttr(formatTime(at))
		values[":completed_by"] = strAttr(actorID)
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       map[string]types.AttributeValue{"id": strAttr(id)},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if _, ok := conditionFailed(err); ok {
			return entities.ChecklistItem{}, nil
		}
		return entities.ChecklistItem{}, err
	}
	var rec checklistItemRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return entities.ChecklistItem{}, err
	}
	return fromChecklistRecord(rec), nil
}

func toChecklistRecord(it entities.ChecklistItem) checklistItemRecord {
	return checklistItemRecord{
		ID:           it.ID,
		MontageID:    it.MontageID,
		TemplateID:   it.TemplateID,
		Label:        it.Label,
		Completed:    it.Completed,
		OrderIndex:   it.OrderIndex,
		AttachmentID: it.AttachmentID,
		CompletedAt:  formatTimePtr(it.CompletedAt),
		CompletedBy:  it.CompletedBy,
	}
}

func fromChecklistRecord(rec checklistItemRecord) entities.ChecklistItem {
	return entities.ChecklistItem{
		ID:           rec.ID,
		MontageID:    rec.MontageID,
		TemplateID:   rec.TemplateID,
		Label:        rec.Label,
		Completed:    rec.Completed,
		OrderIndex:   rec.OrderIndex,
		AttachmentID: rec.AttachmentID,
		CompletedAt:  parseTimePtr(rec.CompletedAt),
		CompletedBy:  rec.CompletedBy,
	}
}
