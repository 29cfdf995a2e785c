package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// TaskChannelStore is the subset of internal/db.Store ChannelProvisioner
// needs to persist a newly-provisioned channel back to its task row.
type TaskChannelStore interface {
	UpdateSlackChannel(ctx context.Context, taskID int64, channel, channelID string) error
}

// ChannelProvisioner implements spec §4.8: ensure every task has a Slack
// channel, creating and inviting default viewers on first use.
type ChannelProvisioner struct {
	botToken     string
	inviteUsers  []string
	httpClient   *http.Client
	store        TaskChannelStore
}

// NewChannelProvisioner wires the bot token, the comma-separated default
// viewer id list (SLACK_INVITE_USERS), and the task store.
func NewChannelProvisioner(botToken string, inviteUsers []string, store TaskChannelStore) *ChannelProvisioner {
	return &ChannelProvisioner{
		botToken:    botToken,
		inviteUsers: inviteUsers,
		httpClient:  &http.Client{},
		store:       store,
	}
}

// Ensure implements spec §4.8 steps 1-5. Failure is non-fatal: a task left
// without a channel is sent through the webhook path when SLACK_WEBHOOK_URL
// is set; there is no configured default channel to fall back to.
func (p *ChannelProvisioner) Ensure(ctx context.Context, task *models.Task) {
	if task.SlackChannel != "" {
		return
	}
	if p.botToken == "" {
		return
	}

	name := deriveChannelName(task.Name)
	if name == "" {
		return
	}

	channelID, err := p.createChannel(ctx, name)
	if err != nil {
		return
	}

	for _, userID := range p.inviteUsers {
		userID = strings.TrimSpace(userID)
		if userID == "" {
			continue
		}
		p.invite(ctx, channelID, userID) // errors (e.g. already_in_channel) are ignored
	}

	if err := p.store.UpdateSlackChannel(ctx, task.ID, name, channelID); err != nil {
		return
	}
	task.SlackChannel = name
	task.SlackChannelID = channelID
}

// deriveChannelName implements spec §4.8 step 2.
func deriveChannelName(taskName string) string {
	lower := strings.ToLower(taskName)
	var b strings.Builder
	var lastDash bool
	for _, r := range lower {
		allowed := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
		if !allowed {
			r = '-'
		}
		if r == '-' {
			if lastDash {
				continue
			}
			lastDash = true
		} else {
			lastDash = false
		}
		b.WriteRune(r)
	}
	name := strings.Trim(b.String(), "-")
	if len(name) > 80 {
		name = name[:80]
	}
	return name
}

type conversationsCreateResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
}

func (p *ChannelProvisioner) createChannel(ctx context.Context, name string) (string, error) {
	body, _ := json.Marshal(map[string]any{"name": name, "is_private": false})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, slackAPIBase+"/conversations.create", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.botToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out conversationsCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.OK {
		return out.Channel.ID, nil
	}
	if out.Error == "name_taken" {
		return p.lookupByName(ctx, name)
	}
	return "", fmt.Errorf("conversations.create: %s", out.Error)
}

type conversationsListResponse struct {
	OK       bool   `json:"ok"`
	Channels []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"channels"`
}

func (p *ChannelProvisioner) lookupByName(ctx context.Context, name string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, slackAPIBase+"/conversations.list?limit=1000", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.botToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out conversationsListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	for _, c := range out.Channels {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("channel %q not found after name_taken", name)
}

type conversationsInviteResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (p *ChannelProvisioner) invite(ctx context.Context, channelID, userID string) {
	body, _ := json.Marshal(map[string]any{"channel": channelID, "users": userID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, slackAPIBase+"/conversations.invite", bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.botToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	var out conversationsInviteResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	// already_in_channel and any other error are ignored per spec §4.8 step 4.
}
