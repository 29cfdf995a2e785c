package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dealhunter/ebay-hunter/pkg/models"
	"github.com/gin-gonic/gin"
)

type fakeMatchResolver struct {
	itemType    models.ItemType
	id          int64
	found       bool
	lastStatus  models.MatchStatus
	updateCalls int
}

func (f *fakeMatchResolver) FindBySlackMessage(ctx context.Context, channelID, ts string) (models.ItemType, int64, bool, error) {
	return f.itemType, f.id, f.found, nil
}

func (f *fakeMatchResolver) UpdateStatus(ctx context.Context, itemType models.ItemType, id int64, status models.MatchStatus) error {
	f.updateCalls++
	f.lastStatus = status
	return nil
}

func newReactionRouter(resolver MatchResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	recv := NewReactionReceiver(resolver)
	r.POST("/slack/events", recv.Handle)
	return r
}

func postJSON(r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/slack/events", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReactionHandle_EchoesURLVerificationChallenge(t *testing.T) {
	r := newReactionRouter(&fakeMatchResolver{})
	w := postJSON(r, map[string]any{"type": "url_verification", "challenge": "abc123"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["challenge"] != "abc123" {
		t.Fatalf("expected the challenge to be echoed back, got %v", resp)
	}
}

func TestReactionHandle_ThumbsUpMarksPurchased(t *testing.T) {
	resolver := &fakeMatchResolver{itemType: models.ItemTypeJewelry, id: 42, found: true}
	r := newReactionRouter(resolver)
	w := postJSON(r, map[string]any{
		"type": "event_callback",
		"event": map[string]any{
			"type":     "reaction_added",
			"reaction": "+1",
			"item":     map[string]any{"type": "message", "channel": "C1", "ts": "123.456"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resolver.updateCalls != 1 || resolver.lastStatus != models.MatchPurchased {
		t.Fatalf("expected one UpdateStatus call with MatchPurchased, got calls=%d status=%q", resolver.updateCalls, resolver.lastStatus)
	}
}

func TestReactionHandle_UnmappedEmojiIgnored(t *testing.T) {
	resolver := &fakeMatchResolver{itemType: models.ItemTypeJewelry, id: 42, found: true}
	r := newReactionRouter(resolver)
	w := postJSON(r, map[string]any{
		"type": "event_callback",
		"event": map[string]any{
			"type":     "reaction_added",
			"reaction": "tada",
			"item":     map[string]any{"type": "message", "channel": "C1", "ts": "123.456"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resolver.updateCalls != 0 {
		t.Fatalf("expected unmapped emoji to skip UpdateStatus, got %d calls", resolver.updateCalls)
	}
}

func TestReactionHandle_NoMatchingMessageIsIgnored(t *testing.T) {
	resolver := &fakeMatchResolver{found: false}
	r := newReactionRouter(resolver)
	w := postJSON(r, map[string]any{
		"type": "event_callback",
		"event": map[string]any{
			"type":     "reaction_added",
			"reaction": "eyes",
			"item":     map[string]any{"type": "message", "channel": "C1", "ts": "999.111"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resolver.updateCalls != 0 {
		t.Fatalf("expected no UpdateStatus call when no message matches, got %d", resolver.updateCalls)
	}
}
