package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"giftdraw/internal/models"
)

// EmailService sends participant invitations via Amazon SES. The remote
// store handles assignment notification emails itself; the gateway only
// mails out invitation links carrying each participant's access token.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. Without a from address the
// service starts disabled and every send becomes a logged no-op.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// InvitationLink builds the participant's personal link into the party.
func (s *EmailService) InvitationLink(partyID, accessToken string) string {
	return fmt.Sprintf("%s/party/%s?token=%s", s.appBaseURL, partyID, accessToken)
}

// SendInvitationEmail mails a participant their personal party link.
func (s *EmailService) SendInvitationEmail(ctx context.Context, party models.Party, participant models.Participant, hostName string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): invitation to %s", participant.Email)
		return nil
	}

	link := s.InvitationLink(party.ID, participant.AccessToken)
	subject := fmt.Sprintf("%s invited you to a Secret Santa exchange", hostName)

	details := ""
	if party.PartyDate != nil && *party.PartyDate != "" {
		details += fmt.Sprintf("<p>When: %s</p>", *party.PartyDate)
	}
	if party.Location != nil && *party.Location != "" {
		details += fmt.Sprintf("<p>Where: %s</p>", *party.Location)
	}
	if party.MaxAmount != nil && *party.MaxAmount > 0 {
		details += fmt.Sprintf("<p>Gift budget: %.2f</p>", *party.MaxAmount)
	}
	if party.PersonalMessage != nil && *party.PersonalMessage != "" {
		details += fmt.Sprintf("<p>%s</p>", *party.PersonalMessage)
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #b3001b; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.button { display: inline-block; padding: 12px 30px; background-color: #b3001b; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>You're invited!</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>%s has invited you to join a Secret Santa gift exchange.</p>
			%s
			<p style="text-align: center;">
				<a href="%s" class="button">Open My Invitation</a>
			</p>
			<p>Or copy and paste this link into your browser:</p>
			<p style="word-break: break-all; font-size: 12px; color: #666;">%s</p>
			<p>This link is personal to you. Please don't share it with the other participants.</p>
		</div>
		<div class="footer">
			<p>This is an automated email from GiftDraw. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, participant.Name, hostName, details, link, link)

	textBody := fmt.Sprintf(`Hi %s,

%s has invited you to join a Secret Santa gift exchange.

Open your invitation:
%s

This link is personal to you. Please don't share it with the other participants.

---
This is an automated email from GiftDraw. Please do not reply.
`, participant.Name, hostName, link)

	return s.sendEmail(ctx, participant.Email, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
