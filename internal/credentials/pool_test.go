package credentials

import (
	"testing"
	"time"

	"github.com/dealhunter/ebay-hunter/pkg/models"
)

func TestSelectCredential_NoCredentialsReturnsError(t *testing.T) {
	p := &Pool{strategy: models.RotationLeastUsed}
	_, err := p.selectCredential()
	if err != ErrNoCredential {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestSelectCredential_LeastUsedPicksLowestCallCount(t *testing.T) {
	p := &Pool{
		strategy: models.RotationLeastUsed,
		credentials: []models.Credential{
			{Label: "a", Status: models.CredentialActive, CallsToday: 10},
			{Label: "b", Status: models.CredentialActive, CallsToday: 2},
			{Label: "c", Status: models.CredentialActive, CallsToday: 7},
		},
	}
	cred, err := p.selectCredential()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Label != "b" {
		t.Fatalf("expected the least-used credential 'b', got %q", cred.Label)
	}
}

func TestSelectCredential_RoundRobinPicksOldestLastUsed(t *testing.T) {
	now := time.Now()
	p := &Pool{
		strategy: models.RotationRoundRobin,
		credentials: []models.Credential{
			{Label: "a", Status: models.CredentialActive, LastUsed: now},
			{Label: "b", Status: models.CredentialActive, LastUsed: now.Add(-time.Hour)},
			{Label: "c", Status: models.CredentialActive, LastUsed: now.Add(-time.Minute)},
		},
	}
	cred, err := p.selectCredential()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Label != "b" {
		t.Fatalf("expected the least-recently-used credential 'b', got %q", cred.Label)
	}
}

func TestSelectCredential_AllRateLimitedFallsBackToOldestRateLimit(t *testing.T) {
	oldest := time.Now().Add(-2 * time.Hour)
	newest := time.Now().Add(-10 * time.Minute)
	p := &Pool{
		strategy: models.RotationLeastUsed,
		credentials: []models.Credential{
			{Label: "a", Status: models.CredentialRateLimited, RateLimitedAt: &newest},
			{Label: "b", Status: models.CredentialRateLimited, RateLimitedAt: &oldest},
		},
	}
	cred, err := p.selectCredential()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cred.Label != "b" {
		t.Fatalf("expected the longest-cooling credential 'b' in the degenerate case, got %q", cred.Label)
	}
}

func TestCurrentCredentialLabel_EmptyWhenNothingCached(t *testing.T) {
	p := &Pool{}
	if got := p.CurrentCredentialLabel(); got != "" {
		t.Fatalf("expected empty label with no cached token, got %q", got)
	}
}

func TestCurrentCredentialLabel_ReturnsCachedLabel(t *testing.T) {
	p := &Pool{cached: &models.CachedToken{CredentialLabel: "a"}}
	if got := p.CurrentCredentialLabel(); got != "a" {
		t.Fatalf("expected cached label 'a', got %q", got)
	}
}
