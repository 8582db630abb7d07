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

const (
	defaultAuditLogTableName = "audit_log"
	auditMontageIDIndex      = "montage_id-index"
)

type auditEntryItem struct {
	ID        string `dynamodbav:"id"`
	MontageID string `dynamodbav:"montage_id"`
	Action    string `dynamodbav:"action"`
	Message   string `dynamodbav:"message"`
	ActorID   string `dynamodbav:"actor_id,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
}

// AuditLogDynamoRepository is the append-only audit log.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: montage_id-index (PK: montage_id, SK: created_at)

type AuditLogDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAuditLogRepository = (*AuditLogDynamoRepository)(nil)

func NewAuditLogDynamoRepository(ddb *dynamodb.Client) *AuditLogDynamoRepository {
	return &AuditLogDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("AUDIT_LOG_TABLE", defaultAuditLogTableName),
	}
}

func (r *AuditLogDynamoRepository) Append(ctx context.Context, e entities.AuditEntry) error {
	av, err := attributevalue.MarshalMap(auditEntryItem{
		ID:        e.ID,
		MontageID: e.MontageID,
		Action:    string(e.Action),
		Message:   e.Message,
		ActorID:   e.ActorID,
		CreatedAt: formatTime(e.CreatedAt),
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

// ListByMontageID returns the entries of a montage, oldest first.
func (r *AuditLogDynamoRepository) ListByMontageID(ctx context.Context, montageID string) ([]entities.AuditEntry, error) {
	var (
		out     []entities.AuditEntry
		lastKey map[string]types.AttributeValue
	)
	for {
		res, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(auditMontageIDIndex),
			KeyConditionExpression: aws.String("#montage_id = :montage_id"),
			ExpressionAttributeNames: map[string]string{
				"#montage_id": "montage_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":montage_id": strAttr(montageID),
			},
			ScanIndexForward:  aws.Bool(true),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, err
		}
		var items []auditEntryItem
		if err := attributevalue.UnmarshalListOfMaps(res.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, entities.AuditEntry{
				ID:        it.ID,
				MontageID: it.MontageID,
				Action:    entities.ActionKind(it.Action),
				Message:   it.Message,
				ActorID:   it.ActorID,
				CreatedAt: parseTime(it.CreatedAt),
			})
		}
		if len(res.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = res.LastEvaluatedKey
	}
	return out, nil
}
