package webhook

import (
	"context"
	"net/http"
	"strings"

	"github.com/dealhunter/ebay-hunter/pkg/models"
	"github.com/gin-gonic/gin"
)

// emojiStatus implements spec §4.12's emoji -> status map. Unknown emoji
// are acknowledged and ignored.
var emojiStatus = map[string]models.MatchStatus{
	"+1":               models.MatchPurchased,
	"thumbsup":         models.MatchPurchased,
	"white_check_mark": models.MatchPurchased,
	"heavy_check_mark": models.MatchPurchased,
	"-1":               models.MatchRejected,
	"thumbsdown":       models.MatchRejected,
	"x":                models.MatchRejected,
	"eyes":             models.MatchWatching,
	"question":         models.MatchReviewing,
}

// MatchResolver is the subset of internal/match.Store ReactionReceiver
// needs.
type MatchResolver interface {
	FindBySlackMessage(ctx context.Context, channelID, ts string) (models.ItemType, int64, bool, error)
	UpdateStatus(ctx context.Context, itemType models.ItemType, id int64, status models.MatchStatus) error
}

type slackEventEnvelope struct {
	Type      string          `json:"type"`
	Challenge string          `json:"challenge"`
	Event     slackInnerEvent `json:"event"`
}

type slackInnerEvent struct {
	Type     string `json:"type"`
	Reaction string `json:"reaction"`
	Item     struct {
		Type    string `json:"type"`
		Channel string `json:"channel"`
		TS      string `json:"ts"`
	} `json:"item"`
}

// ReactionReceiver implements spec §4.12: the reaction_added webhook,
// independent of the polling loop.
type ReactionReceiver struct {
	matches MatchResolver
}

// NewReactionReceiver wraps a MatchResolver.
func NewReactionReceiver(matches MatchResolver) *ReactionReceiver {
	return &ReactionReceiver{matches: matches}
}

// Handle is the Gin handler for the Slack Events API subscription URL.
func (r *ReactionReceiver) Handle(c *gin.Context) {
	var envelope slackEventEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if envelope.Type == "url_verification" {
		c.JSON(http.StatusOK, gin.H{"challenge": envelope.Challenge})
		return
	}

	if envelope.Event.Type != "reaction_added" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": "unhandled event type"})
		return
	}

	status, known := emojiStatus[strings.TrimSuffix(envelope.Event.Reaction, "::skin-tone-2")]
	if !known {
		c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": "unmapped emoji"})
		return
	}

	itemType, id, found, err := r.matches.FindBySlackMessage(c.Request.Context(), envelope.Event.Item.Channel, envelope.Event.Item.TS)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": "lookup failed"})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": "no matching message"})
		return
	}

	if err := r.matches.UpdateStatus(c.Request.Context(), itemType, id, status); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": "status update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "status": status})
}
