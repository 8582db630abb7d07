package repository

import (
	"context"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultCalendarEventsTableName = "calendar_events"

type calendarEventItem struct {
	ID        string `dynamodbav:"id"`
	MontageID string `dynamodbav:"montage_id"`
	Kind      string `dynamodbav:"kind"`
	Title     string `dynamodbav:"title"`
	StartsAt  string `dynamodbav:"starts_at"`
	Assignee  string `dynamodbav:"assignee,omitempty"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// CalendarEventDynamoRepository stores the calendar entries derived from
// montage dates. Writes overwrite the previous event of the same kind.
//
// Table requirements:
//   - PK: id (string) = "<montage_id>#<kind>"

type CalendarEventDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICalendarSync = (*CalendarEventDynamoRepository)(nil)

func NewCalendarEventDynamoRepository(ddb *dynamodb.Client) *CalendarEventDynamoRepository {
	return &CalendarEventDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CALENDAR_EVENTS_TABLE", defaultCalendarEventsTableName),
	}
}

func (r *CalendarEventDynamoRepository) UpsertEvent(ctx context.Context, e entities.CalendarEvent) error {
	av, err := attributevalue.MarshalMap(calendarEventItem{
		ID:        e.ID,
		MontageID: e.MontageID,
		Kind:      string(e.Kind),
		Title:     e.Title,
		StartsAt:  formatTime(e.StartsAt),
		Assignee:  e.Assignee,
		UpdatedAt: formatTime(e.UpdatedAt),
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}
