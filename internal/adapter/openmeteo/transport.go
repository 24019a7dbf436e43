package openmeteo

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// NewHTTPClient builds the outbound client shared by both Open-Meteo endpoints.
// A zero timeout leaves requests unbounded except by the caller's context; a
// positive rps throttles every request through a token bucket.
func NewHTTPClient(timeout time.Duration, rps float64, burst int) *http.Client {
	var transport http.RoundTripper = http.DefaultTransport
	if rps > 0 {
		transport = &rateLimitedTransport{
			next:    transport,
			limiter: rate.NewLimiter(rate.Limit(rps), burst),
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// rateLimitedTransport waits for limiter permission before forwarding a request.
type rateLimitedTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return t.next.RoundTrip(req)
}
