package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nikoksr/notify"
	"github.com/nikoksr/notify/service/telegram"
	"github.com/nikoksr/notify/service/twilio"
)

const DefaultSubject = "Bathroom Bot"

type (
	// Config holds the credentials for every service messages are broadcast to.
	// A service is skipped when its credentials are empty.
	Config struct {
		TelegramToken    string
		TelegramChatIDs  []int64
		TwilioAccountSID string
		TwilioAuthToken  string
		TwilioFromPhone  string
		TwilioToPhone    string
	}

	// Sender is implemented by *notify.Notify and by every notify service.
	Sender interface {
		Send(ctx context.Context, subject, message string) error
	}

	Notifier struct {
		sender  Sender
		subject string
	}
)

func New(sender Sender, subject string) *Notifier {
	if len(subject) == 0 {
		subject = DefaultSubject
	}

	return &Notifier{
		sender:  sender,
		subject: subject,
	}
}

// NewFromConfig wires the configured telegram and twilio services into a single
// notifier. It returns a notifier without a sender when nothing is configured.
func NewFromConfig(config Config) (*Notifier, error) {
	slog.Debug(">>NewFromConfig")
	defer slog.Debug("<<NewFromConfig")

	services := make([]notify.Notifier, 0, 2)

	if len(config.TelegramToken) != 0 {
		slog.Info("Telegram bot information present, configuring Notifier")

		telegramService, err := telegram.New(config.TelegramToken)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Telegram service: %w", err)
		}

		telegramService.AddReceivers(config.TelegramChatIDs...)
		services = append(services, telegramService)
	}

	if len(config.TwilioAccountSID) != 0 {
		slog.Info("Twilio account information present, configuring Notifier")

		twilioService, err := twilio.New(config.TwilioAccountSID, config.TwilioAuthToken, config.TwilioFromPhone)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Twilio service: %w", err)
		}

		twilioService.AddReceivers(config.TwilioToPhone)
		services = append(services, twilioService)
	}

	if len(services) == 0 {
		return New(nil, DefaultSubject), nil
	}

	n := notify.New()
	n.UseServices(services...)

	return New(n, DefaultSubject), nil
}

// Broadcast sends message to every configured service. Send failures are returned
// to the caller.
func (n *Notifier) Broadcast(ctx context.Context, message string) error {
	slog.Debug(">>Broadcast")
	defer slog.Debug("<<Broadcast")

	if n.sender == nil {
		slog.Warn("Notifier is not registered for notifications", "message", message)
		return nil
	}

	if err := n.sender.Send(ctx, n.subject, message); err != nil {
		return fmt.Errorf("failed to broadcast message: %w", err)
	}

	return nil
}

// ParseChatIDs reads a comma separated list of telegram chat ids.
func ParseChatIDs(value string) ([]int64, error) {
	ids := make([]int64, 0)
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if len(field) == 0 {
			continue
		}

		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid telegram chat id %q: %w", field, err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}
