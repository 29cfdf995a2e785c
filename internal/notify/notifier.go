package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	slackAPIBase   = "https://slack.com/api"
	sendPaceMillis = 1100
)

// Notifier posts per-type match messages, preferring the bot chat API
// (chat.postMessage) when a bot token and destination channel are
// available and falling back to a single preconfigured incoming webhook
// otherwise. Grounded on the teacher's AlertManager (webhook POST with
// gated severity) adapted here to Slack's bot API plus the spec's mandatory
// global inter-send pacing, modeled as a token-bucket limiter the way the
// pack's HTTP clients pace outbound calls.
type Notifier struct {
	botToken   string
	webhookURL string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewNotifier builds a Notifier. Either token may be empty; Send degrades
// to whichever transport is configured.
func NewNotifier(botToken, webhookURL string) *Notifier {
	return &Notifier{
		botToken:   botToken,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(sendPaceMillis*time.Millisecond), 1),
	}
}

// send applies the worker-wide pacing, then delivers via bot API or webhook.
// Non-ok responses come back as SendResult{OK:false} without an error: a
// dropped notification is not a processing failure (spec §4.7).
func (n *Notifier) send(ctx context.Context, channel, channelID string, msg slackMessage) (SendResult, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return SendResult{}, err
	}

	dest := channelID
	if dest == "" {
		dest = channel
	}

	if n.botToken != "" && dest != "" {
		return n.sendViaBotAPI(ctx, dest, msg)
	}
	if n.webhookURL != "" {
		return n.sendViaWebhook(ctx, channel, msg)
	}
	return SendResult{OK: false}, nil
}

func (n *Notifier) sendViaBotAPI(ctx context.Context, channel string, msg slackMessage) (SendResult, error) {
	msg.Channel = channel
	body, err := json.Marshal(msg)
	if err != nil {
		return SendResult{}, fmt.Errorf("marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, slackAPIBase+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return SendResult{}, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+n.botToken)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return SendResult{OK: false}, nil
	}
	defer resp.Body.Close()

	var out postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || resp.StatusCode != http.StatusOK {
		return SendResult{OK: false}, nil
	}
	if !out.OK {
		return SendResult{OK: false}, nil
	}
	return SendResult{OK: true, TS: out.TS, ChannelID: out.Channel}, nil
}

func (n *Notifier) sendViaWebhook(ctx context.Context, channel string, msg slackMessage) (SendResult, error) {
	msg.Channel = channel
	body, err := json.Marshal(msg)
	if err != nil {
		return SendResult{}, fmt.Errorf("marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return SendResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return SendResult{OK: false}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SendResult{OK: false}, nil
	}
	// Incoming webhooks carry no message-ts, so reaction tracking can't
	// resolve a webhook-delivered notification; only bot-API sends are
	// reaction-addressable.
	return SendResult{OK: true}, nil
}
