package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

var ErrInvalidMessage = errors.New("gmail: message needs a recipient and a subject")

// Message is an outgoing HTML mail.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers transactional mail.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds the OAuth client and the refresh token of the sending account.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	From         string
}

func (c Config) configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != "" && c.From != ""
}

// New returns a Gmail API sender, or a mailer that only logs when the
// account is not configured.
func New(cfg Config, logger *zap.Logger) Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.configured() {
		logger.Warn("gmail sender not configured, mail will only be logged")
		return &LogMailer{logger: logger}
	}
	return NewService(cfg, logger)
}

type Service struct {
	cfg    Config
	oauth  *oauth2.Config
	logger *zap.Logger
}

func NewService(cfg Config, logger *zap.Logger) *Service {
	return &Service{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailSendScope},
		},
		logger: logger,
	}
}

// GetGmailService creates a Gmail client authorized by the refresh token.
func (s *Service) GetGmailService(ctx context.Context) (*gmail.Service, error) {
	token := &oauth2.Token{
		RefreshToken: s.cfg.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now(),
	}
	client := oauth2.NewClient(ctx, s.oauth.TokenSource(ctx, token))

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return srv, nil
}

func (s *Service) Send(ctx context.Context, msg Message) error {
	raw, err := Compose(s.cfg.From, msg, time.Now())
	if err != nil {
		return err
	}
	srv, err := s.GetGmailService(ctx)
	if err != nil {
		return err
	}

	_, err = srv.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to send email: %w", err)
	}
	s.logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

// Compose renders msg as a single-part text/html RFC 5322 message.
func Compose(from string, msg Message, date time.Time) ([]byte, error) {
	if msg.To == "" || msg.Subject == "" {
		return nil, ErrInvalidMessage
	}
	fromAddr, err := mail.ParseAddress(from)
	if err != nil {
		return nil, fmt.Errorf("gmail: sender address: %w", err)
	}
	toAddrs, err := mail.ParseAddressList(msg.To)
	if err != nil {
		return nil, fmt.Errorf("gmail: recipient address: %w", err)
	}

	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*mail.Address{fromAddr})
	h.SetAddressList("To", toAddrs)
	h.SetSubject(msg.Subject)
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, msg.HTML); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LogMailer writes mail to the log instead of sending it.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	if msg.To == "" || msg.Subject == "" {
		return ErrInvalidMessage
	}
	m.logger.Info("email not sent (mailer disabled)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.HTML),
	)
	return nil
}
