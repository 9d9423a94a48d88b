package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	toAddress   string
}

// NewSESSender creates an SES-backed AlertSender for front desk
// notifications.
func NewSESSender(region, fromAddress, fromName, toAddress string) (port.AlertSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
		toAddress:   toAddress,
	}, nil
}

func (s *sesSender) SendManualReviewAlert(ctx context.Context, record domain.ParcelRecord) error {
	subject := "Parcel needs manual entry: unit not recognized"
	textBody := fmt.Sprintf(
		"A parcel was logged without a recognizable unit and was not queued for valet registration.\n\n"+
			"Unit: %s\nName: %s\nSupplier: %s\nParcel type: %s\n\n"+
			"Please register it manually.\n",
		record.Unit, record.Name, record.Supplier, record.ParcelType)
	return s.send(ctx, subject, textBody)
}

func (s *sesSender) SendStaleQueueAlert(ctx context.Context, units []domain.PendingUnit) error {
	subject := fmt.Sprintf("Valet queue: %d unit(s) pending too long", len(units))

	var b strings.Builder
	b.WriteString("The following units have been waiting in the valet queue past the alert threshold:\n\n")
	for _, u := range units {
		fmt.Fprintf(&b, "Unit %s (%s, %s, %s) queued at %s\n",
			u.Unit, u.Name, u.Supplier, u.ParcelType, u.Timestamp)
	}
	b.WriteString("\nThe polling script may be down. Check the valet tablet.\n")
	return s.send(ctx, subject, b.String())
}

func (s *sesSender) send(ctx context.Context, subject, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
