package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// AsyncEmailSender dispatches each send on its own goroutine and always
// reports success to the caller. A failed send is logged and dropped;
// delivery is at-most-once and never blocks a response.
type AsyncEmailSender struct {
	Inner   EmailSender
	Log     *logrus.Logger
	Timeout time.Duration
}

func NewAsyncEmailSender(inner EmailSender, log *logrus.Logger) *AsyncEmailSender {
	return &AsyncEmailSender{
		Inner:   inner,
		Log:     log,
		Timeout: 30 * time.Second,
	}
}

func (s *AsyncEmailSender) SendVerificationEmail(ctx context.Context, email string, link string) error {
	s.dispatch("verification", email, func(ctx context.Context) error {
		return s.Inner.SendVerificationEmail(ctx, email, link)
	})
	return nil
}

func (s *AsyncEmailSender) SendOTPEmail(ctx context.Context, email string, code int) error {
	s.dispatch("otp", email, func(ctx context.Context) error {
		return s.Inner.SendOTPEmail(ctx, email, code)
	})
	return nil
}

func (s *AsyncEmailSender) SendPasswordChangedEmail(ctx context.Context, email string) error {
	s.dispatch("password_changed", email, func(ctx context.Context) error {
		return s.Inner.SendPasswordChangedEmail(ctx, email)
	})
	return nil
}

// dispatch runs the send with a context detached from the request, so the
// response completing does not cancel an in-flight delivery.
func (s *AsyncEmailSender) dispatch(kind string, email string, send func(ctx context.Context) error) {
	timeout := s.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := send(ctx); err != nil && s.Log != nil {
			s.Log.WithFields(logrus.Fields{
				"kind":  kind,
				"email": email,
			}).WithError(err).Error("email send failed")
		}
	}()
}
