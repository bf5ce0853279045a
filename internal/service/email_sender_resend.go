package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendEmailSender delivers transactional mail through the Resend API.
type ResendEmailSender struct {
	Client *resend.Client
	From   string
}

func NewResendEmailSender(apiKey string, from string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client: resend.NewClient(apiKey),
		From:   from,
	}
}

func (s *ResendEmailSender) SendVerificationEmail(ctx context.Context, email string, link string) error {
	subject := "Confirm your email - KEMLabels"
	html := fmt.Sprintf(
		"<p>Thank you for signing up with us!</p>"+
			"<p>Please use the following link to confirm your email address: <a href=%q target=\"_blank\">%s</a></p>"+
			"<p>If you did not sign up for KEMLabels, you can safely ignore this email.</p>",
		link, link,
	)
	return s.send(ctx, email, subject, html)
}

func (s *ResendEmailSender) SendOTPEmail(ctx context.Context, email string, code int) error {
	subject := "KEMLabels Verification Code"
	html := fmt.Sprintf(
		"<p>You have requested to reset the password for your account.</p>"+
			"<p>To confirm your email address, please enter the 4 digit code below.</p>"+
			"<h1 style=\"letter-spacing: 5px\">%d</h1>"+
			"<p>If you did not initiate this request, you can safely ignore this email.</p>",
		code,
	)
	return s.send(ctx, email, subject, html)
}

func (s *ResendEmailSender) SendPasswordChangedEmail(ctx context.Context, email string) error {
	subject := "Password Has Been Changed - Ensure Your Account's Safety"
	html := "<h1>Did you change your password?</h1>" +
		"<p>We noticed the password for your KEMLabels account was recently changed. " +
		"If this was you, rest assured that your new password is now in effect and no further action is required.</p>" +
		"<p>However, if you did not request this change, please contact our support team immediately.</p>"
	return s.send(ctx, email, subject, html)
}

func (s *ResendEmailSender) send(ctx context.Context, to string, subject string, html string) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}
	_, err := s.Client.Emails.Send(params)
	return err
}
