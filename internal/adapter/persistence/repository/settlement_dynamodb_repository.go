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

const defaultSettlementsTableName = "settlements"

type lineItemRecord struct {
	Kind        string `dynamodbav:"kind"`
	Amount      int64  `dynamodbav:"amount"`
	Description string `dynamodbav:"description"`
	UserID      string `dynamodbav:"user_id,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
}

type settlementItem struct {
	MontageID    string           `dynamodbav:"montage_id"`
	ID           string           `dynamodbav:"id"`
	InstallerID  string           `dynamodbav:"installer_id,omitempty"`
	Status       string           `dynamodbav:"status"`
	TotalAmount  int64            `dynamodbav:"total_amount"`
	Calculations []lineItemRecord `dynamodbav:"calculations"`
	RuleKinds    []string         `dynamodbav:"rule_kinds,stringset,omitempty"`
	CreatedAt    string           `dynamodbav:"created_at"`
	UpdatedAt    string           `dynamodbav:"updated_at"`
}

// SettlementDynamoRepository persists settlements in DynamoDB.
//
// Table requirements:
//   - PK: montage_id (string); one settlement per montage
//
// rule_kinds is a string set mirroring the kinds present in calculations; the
// append condition on it keeps at most one line item per kind.

type SettlementDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISettlementRepository = (*SettlementDynamoRepository)(nil)

func NewSettlementDynamoRepository(ddb *dynamodb.Client) *SettlementDynamoRepository {
	return &SettlementDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SETTLEMENTS_TABLE", defaultSettlementsTableName),
	}
}

func (r *SettlementDynamoRepository) GetByMontageID(ctx context.Context, montageID string) (entities.Settlement, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            map[string]types.AttributeValue{"montage_id": strAttr(montageID)},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Settlement{}, err
	}
	return unmarshalSettlement(out.Item)
}

func (r *SettlementDynamoRepository) Create(ctx context.Context, s entities.Settlement) (entities.Settlement, error) {
	av, err := attributevalue.MarshalMap(toSettlementItem(s))
	if err != nil {
		return entities.Settlement{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#montage_id)"),
		ExpressionAttributeNames: map[string]string{
			"#montage_id": "montage_id",
		},
	})
	if err != nil {
		if _, ok := conditionFailed(err); ok {
			return entities.Settlement{}, interfaces.ErrAlreadyExists
		}
		return entities.Settlement{}, err
	}
	return s, nil
}

func (r *SettlementDynamoRepository) AppendLineItem(ctx context.Context, montageID string, item entities.LineItem) (entities.Settlement, bool, error) {
	rec, err := attributevalue.Marshal([]lineItemRecord{toLineItemRecord(item)})
	if err != nil {
		return entities.Settlement{}, false, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key:       map[string]types.AttributeValue{"montage_id": strAttr(montageID)},
		ConditionExpression: aws.String(
			"attribute_exists(#montage_id) AND #status = :draft AND NOT contains(#rule_kinds, :kind)",
		),
		UpdateExpression: aws.String(
			"SET #calculations = list_append(if_not_exists(#calculations, :empty), :item), " +
				"#total_amount = if_not_exists(#total_amount, :zero) + :amount, " +
				"#updated_at = :updated_at " +
				"ADD #rule_kinds :kinds",
		),
		ExpressionAttributeNames: map[string]string{
			"#montage_id":   "montage_id",
			"#status":       "status",
			"#rule_kinds":   "rule_kinds",
			"#calculations": "calculations",
			"#total_amount": "total_amount",
			"#updated_at":   "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":draft":      strAttr(string(entities.SettlementStatusDraft)),
			":kind":       strAttr(string(item.Kind)),
			":kinds":      &types.AttributeValueMemberSS{Value: []string{string(item.Kind)}},
			":item":       rec,
			":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":zero":       numAttr(0),
			":amount":     numAttr(item.Amount),
			":updated_at": strAttr(nowString()),
		},
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if old, ok := conditionFailed(err); ok {
			s, uerr := unmarshalSettlement(old)
			return s, false, uerr
		}
		return entities.Settlement{}, false, err
	}
	s, err := unmarshalSettlement(out.Attributes)
	return s, err == nil, err
}

func unmarshalSettlement(av map[string]types.AttributeValue) (entities.Settlement, error) {
	if len(av) == 0 {
		return entities.Settlement{}, nil
	}
	var it settlementItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Settlement{}, err
	}
	return fromSettlementItem(it), nil
}

func toLineItemRecord(li entities.LineItem) lineItemRecord {
	return lineItemRecord{
		Kind:        string(li.Kind),
		Amount:      li.Amount,
		Description: li.Description,
		UserID:      li.UserID,
		CreatedAt:   formatTime(li.CreatedAt),
	}
}

func toSettlementItem(s entities.Settlement) settlementItem {
	it := settlementItem{
		MontageID:    s.MontageID,
		ID:           s.ID,
		InstallerID:  s.InstallerID,
		Status:       string(s.Status),
		TotalAmount:  s.TotalAmount,
		Calculations: make([]lineItemRecord, 0, len(s.Calculations)),
		CreatedAt:    formatTime(s.CreatedAt),
		UpdatedAt:    formatTime(s.UpdatedAt),
	}
	seen := make(map[entities.RuleKind]bool, len(s.Calculations))
	for _, li := range s.Calculations {
		it.Calculations = append(it.Calculations, toLineItemRecord(li))
		if !seen[li.Kind] {
			seen[li.Kind] = true
			it.RuleKinds = append(it.RuleKinds, string(li.Kind))
		}
	}
	return it
}

func fromSettlementItem(it settlementItem) entities.Settlement {
	s := entities.Settlement{
		ID:          it.ID,
		MontageID:   it.MontageID,
		InstallerID: it.InstallerID,
		Status:      entities.SettlementStatus(it.Status),
		TotalAmount: it.TotalAmount,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
	for _, rec := range it.Calculations {
		s.Calculations = append(s.Calculations, entities.LineItem{
			Kind:        entities.RuleKind(rec.Kind),
			Amount:      rec.Amount,
			Description: rec.Description,
			UserID:      rec.UserID,
			CreatedAt:   parseTime(rec.CreatedAt),
		})
	}
	return s
}
