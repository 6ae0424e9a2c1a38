package utils

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

func init() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// Forgot Password email sender
func SendResetEmail(to string, token string) error {
	subject := "RegenArdhi Password Reset Code"
	body := fmt.Sprintf("Your password reset code is: %s\n\nIt expires in one hour. Use it in the app to set a new password.", token)
	return sendEmail(to, subject, body)
}

// SendAlertEmail notifies a project owner about a critical monitoring alert.
func SendAlertEmail(to string, projectName string, message string) error {
	subject := fmt.Sprintf("Alert for %s", projectName)
	body := fmt.Sprintf("A monitoring check on your project %q raised an alert:\n\n%s\n\nOpen the dashboard to review the latest readings.", projectName, message)
	return sendEmail(to, subject, body)
}
