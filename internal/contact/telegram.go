package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/pachgroup/pachsite/internal/telemetry/metrics"
	"github.com/pachgroup/pachsite/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

var (
	ErrNotConfigured       = errors.New("telegram notifier not configured")
	ErrAllDeliveriesFailed = errors.New("message not delivered to any chat")
)

// TelegramNotifier sends messages to a fixed set of Telegram chats through the Bot API.
type TelegramNotifier struct {
	httpClient     *http.Client
	apiURL         string
	botToken       string
	chatIDs        []string
	metricsManager *metrics.Manager
}

func NewTelegramNotifier(
	httpClient *http.Client,
	apiURL, botToken string,
	chatIDs []string,
	metricsManager *metrics.Manager,
) *TelegramNotifier {
	return &TelegramNotifier{
		httpClient:     httpClient,
		apiURL:         strings.TrimSuffix(apiURL, "/"),
		botToken:       botToken,
		chatIDs:        chatIDs,
		metricsManager: metricsManager,
	}
}

func (n *TelegramNotifier) Configured() bool {
	return n.botToken != "" && len(n.chatIDs) > 0
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Notify delivers text to every chat concurrently. It succeeds when at least
// one chat got the message; partial failures are only logged.
func (n *TelegramNotifier) Notify(ctx context.Context, text string) (err error) {
	if !n.Configured() {
		return ErrNotConfigured
	}

	ctx, span := tracing.Start(ctx, "telegramNotifier.notify")
	span.SetAttributes(attribute.Int("chats", len(n.chatIDs)))
	defer func() { tracing.EndSpan(span, err) }()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		delivered int
		sendErrs  error
	)
	for _, chatID := range n.chatIDs {
		wg.Add(1)
		go func(chatID string) {
			defer wg.Done()
			sendErr := n.send(ctx, chatID, text)

			mu.Lock()
			defer mu.Unlock()
			if sendErr != nil {
				n.count("error")
				sendErrs = multierr.Append(sendErrs, fmt.Errorf("chat %s: %w", chatID, sendErr))
				return
			}
			n.count("ok")
			delivered++
		}(chatID)
	}
	wg.Wait()

	if delivered == 0 {
		return multierr.Append(ErrAllDeliveriesFailed, sendErrs)
	}
	if sendErrs != nil {
		log.Warnf("telegram: delivered to %d/%d chats: %s", delivered, len(n.chatIDs), sendErrs)
	}

	return nil
}

func (n *TelegramNotifier) send(ctx context.Context, chatID, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		// the endpoint carries the bot token
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Errorf("send message: %w", urlErr.Err)
		}
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	respBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram api status %d: %s", resp.StatusCode, respBytes)
	}

	return nil
}

func (n *TelegramNotifier) count(result string) {
	if n.metricsManager == nil {
		return
	}
	n.metricsManager.CounterNotifications.WithLabelValues(result).Inc()
}
