package webhook

import "testing"

func TestRateLimiter_AllowsUpToBurst(t *testing.T) {
	rl := &RateLimiter{rate: 1.0 / 60.0, burst: 3, buckets: make(map[string]*ipBucket)}
	for i := 0; i < 3; i++ {
		allowed, _ := rl.allow("1.2.3.4")
		if !allowed {
			t.Fatalf("expected request %d within burst to be allowed", i+1)
		}
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	rl := &RateLimiter{rate: 1.0 / 60.0, burst: 2, buckets: make(map[string]*ipBucket)}
	rl.allow("1.2.3.4")
	rl.allow("1.2.3.4")
	allowed, retryAfter := rl.allow("1.2.3.4")
	if allowed {
		t.Fatalf("expected the request beyond burst capacity to be rejected")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected a positive retry-after duration, got %v", retryAfter)
	}
}

func TestRateLimiter_TracksIPsIndependently(t *testing.T) {
	rl := &RateLimiter{rate: 1.0 / 60.0, burst: 1, buckets: make(map[string]*ipBucket)}
	rl.allow("1.2.3.4")
	allowed, _ := rl.allow("5.6.7.8")
	if !allowed {
		t.Fatalf("expected a distinct IP to have its own untouched bucket")
	}
}
