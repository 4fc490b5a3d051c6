package httpserver

import (
	"testing"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter_PerIP(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.001), 2)

	for i := 0; i < 2; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d denied within burst", i)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("third request allowed, want denied")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatal("other ip denied, want allowed")
	}
}
