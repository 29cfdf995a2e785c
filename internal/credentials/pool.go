// Package credentials implements the OAuth credential pool: rotation,
// rate-limit cooldown, and token minting/caching (spec §4.1).
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dealhunter/ebay-hunter/internal/db"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// ErrNoCredential is returned when the pool has no credential to offer at all.
var ErrNoCredential = errors.New("credentials: no credential configured")

// ErrTokenMintFailed is returned when minting a token against the OAuth
// endpoint fails; per spec §4.1 the credential itself is left untouched.
var ErrTokenMintFailed = errors.New("credentials: token mint failed")

const (
	rateLimitCooldown = 5 * time.Minute
	settingsKey       = "ebay_keys"
)

// Pool holds the credential set and the single cached bearer token, mutated
// on every acquire and every 429. Task processing is sequential (spec §5)
// so no internal lock is required for correctness against itself; the mutex
// here only guards against the pool being read from the webhook's /stats
// endpoint concurrently with the scheduler goroutine.
type Pool struct {
	store      *db.Store
	oauthURL   string
	httpClient *http.Client

	mu          sync.Mutex
	credentials []models.Credential
	strategy    models.RotationStrategy
	cached      *models.CachedToken
}

// NewPool loads the credential set from settings.ebay_keys.
func NewPool(ctx context.Context, store *db.Store, oauthURL string) (*Pool, error) {
	p := &Pool{
		store:      store,
		oauthURL:   oauthURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		strategy:   models.RotationLeastUsed,
	}
	if err := p.reload(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pool) reload(ctx context.Context) error {
	raw, err := p.store.GetSetting(ctx, settingsKey)
	if err != nil {
		return fmt.Errorf("load %s: %w", settingsKey, err)
	}
	var settings models.CredentialSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return fmt.Errorf("unmarshal %s: %w", settingsKey, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.credentials = settings.Keys
	if settings.RotationStrategy != "" {
		p.strategy = settings.RotationStrategy
	}
	return nil
}

func (p *Pool) persist(ctx context.Context) error {
	settings := models.CredentialSettings{Keys: p.credentials, RotationStrategy: p.strategy}
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return p.store.PutSetting(ctx, settingsKey, raw)
}

// AcquireToken returns a valid bearer token, reusing the cached one when its
// credential is still active and it isn't within 60s of expiry; otherwise it
// selects the next credential by rotation strategy and mints a fresh token.
func (p *Pool) AcquireToken(ctx context.Context) (string, error) {
	p.reinstateCooledLocked(ctx)

	p.mu.Lock()
	cached := p.cached
	p.mu.Unlock()

	if cached != nil && !cached.ExpiringSoon(time.Now()) {
		if p.credentialActive(cached.CredentialLabel) {
			return cached.Token, nil
		}
	}

	cred, err := p.selectCredential()
	if err != nil {
		return "", err
	}

	token, expiresAt, err := p.mintToken(ctx, cred)
	if err != nil {
		log.Printf("[CredentialPool] mint failed for %s: %v", cred.Label, err)
		return "", fmt.Errorf("%w: %v", ErrTokenMintFailed, err)
	}

	p.mu.Lock()
	for i := range p.credentials {
		if p.credentials[i].Label == cred.Label {
			p.credentials[i].LastUsed = time.Now()
			p.credentials[i].CallsToday++
		}
	}
	p.cached = &models.CachedToken{Token: token, ExpiresAt: expiresAt, CredentialLabel: cred.Label}
	p.mu.Unlock()

	if err := p.persist(ctx); err != nil {
		log.Printf("[CredentialPool] persist failed after acquire: %v", err)
	}
	return token, nil
}

func (p *Pool) credentialActive(label string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.credentials {
		if c.Label == label {
			return c.Status == models.CredentialActive
		}
	}
	return false
}

// selectCredential applies the configured rotation strategy, falling back to
// the degenerate all-rate-limited case (spec §4.1).
func (p *Pool) selectCredential() (models.Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.credentials) == 0 {
		return models.Credential{}, ErrNoCredential
	}

	var active []models.Credential
	for _, c := range p.credentials {
		if c.Status == models.CredentialActive {
			active = append(active, c)
		}
	}

	if len(active) == 0 {
		oldest := p.credentials[0]
		for _, c := range p.credentials[1:] {
			if c.RateLimitedAt != nil && (oldest.RateLimitedAt == nil || c.RateLimitedAt.Before(*oldest.RateLimitedAt)) {
				oldest = c
			}
		}
		return oldest, nil
	}

	switch p.strategy {
	case models.RotationLeastUsed:
		sort.Slice(active, func(i, j int) bool { return active[i].CallsToday < active[j].CallsToday })
	default: // round_robin / LRU
		sort.Slice(active, func(i, j int) bool { return active[i].LastUsed.Before(active[j].LastUsed) })
	}
	return active[0], nil
}

// CurrentCredentialLabel returns the label backing the currently cached
// token, or "" if there is none. Used by DetailFetcher to know which
// credential a 429 response applies to.
func (p *Pool) CurrentCredentialLabel() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached == nil {
		return ""
	}
	return p.cached.CredentialLabel
}

// MarkRateLimited transitions a credential to rate_limited and invalidates
// any cached token bound to it.
func (p *Pool) MarkRateLimited(ctx context.Context, label string) error {
	p.mu.Lock()
	now := time.Now()
	for i := range p.credentials {
		if p.credentials[i].Label == label {
			p.credentials[i].Status = models.CredentialRateLimited
			p.credentials[i].RateLimitedAt = &now
		}
	}
	if p.cached != nil && p.cached.CredentialLabel == label {
		p.cached = nil
	}
	p.mu.Unlock()

	return p.persist(ctx)
}

// ReinstateIfCooled reinstates a single credential if its cooldown elapsed.
func (p *Pool) ReinstateIfCooled(ctx context.Context, label string) error {
	p.mu.Lock()
	changed := false
	for i := range p.credentials {
		c := &p.credentials[i]
		if c.Label == label && c.Status == models.CredentialRateLimited && c.RateLimitedAt != nil {
			if time.Since(*c.RateLimitedAt) > rateLimitCooldown {
				c.Status = models.CredentialActive
				c.RateLimitedAt = nil
				changed = true
			}
		}
	}
	p.mu.Unlock()
	if !changed {
		return nil
	}
	return p.persist(ctx)
}

// reinstateCooledLocked runs ReinstateIfCooled against every rate-limited
// credential; called automatically at the top of every AcquireToken (spec §4.1).
func (p *Pool) reinstateCooledLocked(ctx context.Context) {
	p.mu.Lock()
	var toCheck []string
	now := time.Now()
	for _, c := range p.credentials {
		if c.Status == models.CredentialRateLimited && c.RateLimitedAt != nil && now.Sub(*c.RateLimitedAt) > rateLimitCooldown {
			toCheck = append(toCheck, c.Label)
		}
	}
	p.mu.Unlock()

	for _, label := range toCheck {
		if err := p.ReinstateIfCooled(ctx, label); err != nil {
			log.Printf("[CredentialPool] reinstate %s failed: %v", label, err)
		}
	}
}

// mintToken POSTs basic-auth client_credentials to the OAuth endpoint.
func (p *Pool) mintToken(ctx context.Context, cred models.Credential) (string, time.Time, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.oauthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, err
	}
	req.SetBasicAuth(cred.AppID, cred.CertID)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("oauth endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - 60*time.Second)
	return body.AccessToken, expiresAt, nil
}
