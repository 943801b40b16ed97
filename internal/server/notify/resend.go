package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// ResendNotifier sends messages through the Resend transactional email API.
type ResendNotifier struct {
	client *resend.Client
}

func NewResendNotifier(apiKey string) *ResendNotifier {
	return &ResendNotifier{client: resend.NewClient(apiKey)}
}

func (n *ResendNotifier) Send(ctx context.Context, msg Message) error {

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	_, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend: %v: %w", err, common.ErrorDelivery)
	}

	return nil
}
