package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"montage_service/internal/domain/workflow"
	"montage_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

var ErrUnknownTemplate = errors.New("unknown notification template")

type smsPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type emailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Notifier delivers customer notifications: email through SES and SMS through
// SNS. Each channel is used when the recipient has the matching contact.
type Notifier struct {
	cfg       *workflow.Config
	sms       smsPublisher
	email     emailSender
	fromEmail string
	mockMode  bool
}

var _ interfaces.INotifier = (*Notifier)(nil)

// NewNotifier builds the AWS-backed notifier. With NOTIFICATIONS_MOCK set,
// messages are rendered and logged instead of sent.
func NewNotifier(cfg *workflow.Config, awsCfg aws.Config) *Notifier {
	if isMockEnabled() {
		log.Printf("[notify][gateway] mock mode enabled")
		return &Notifier{cfg: cfg, mockMode: true}
	}
	return &Notifier{
		cfg:       cfg,
		sms:       sns.NewFromConfig(awsCfg),
		email:     sesv2.NewFromConfig(awsCfg),
		fromEmail: os.Getenv("SES_FROM_EMAIL"),
	}
}

func (n *Notifier) Send(ctx context.Context, templateID string, recipient interfaces.Recipient, variables map[string]string) error {
	tpl, ok := n.cfg.NotificationTemplate(templateID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, templateID)
	}
	subject, body, err := Render(tpl, variables)
	if err != nil {
		return err
	}

	if n.mockMode {
		log.Printf("[notify][gateway] mock send template=%s email=%s phone=%s subject=%q", templateID, recipient.Email, recipient.Phone, subject)
		return nil
	}

	var errs []error
	if recipient.Email != "" && n.email != nil && n.fromEmail != "" {
		if err := n.sendEmail(ctx, recipient.Email, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	if recipient.Phone != "" && n.sms != nil {
		if err := n.sendSMS(ctx, recipient.Phone, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := n.email.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.fromEmail),
		Destination:      &sestypes.Destination{ToAddresses: []string{to}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject), Charset: aws.String("UTF-8")},
				Body:    &sestypes.Body{Text: &sestypes.Content{Data: aws.String(body), Charset: aws.String("UTF-8")}},
			},
		},
	})
	if err != nil {
		log.Printf("[notify][email] send failed to=%s err=%v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (n *Notifier) sendSMS(ctx context.Context, phone, message string) error {
	out, err := n.sms.Publish(ctx, &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(phone),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	})
	if err != nil {
		log.Printf("[notify][sms] send failed phone=%s err=%v", phone, err)
		return fmt.Errorf("failed to send sms: %w", err)
	}
	log.Printf("[notify][sms] sent message_id=%s", aws.ToString(out.MessageId))
	return nil
}

func isMockEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("NOTIFICATIONS_MOCK"))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
