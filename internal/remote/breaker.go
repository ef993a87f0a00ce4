package remote

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrBackendDown is returned while the circuit is open: the backend has
// failed enough times in a row that requests fail fast locally until it
// recovers.
var ErrBackendDown = errors.New("remote: backend unavailable")

// errUpstreamFault marks a 5xx inside the breaker so it counts as a
// failure without discarding the response.
var errUpstreamFault = errors.New("remote: upstream fault")

// breakerTransport trips after consecutive transport failures or 5xx
// responses. Business-rule statuses (4xx) never count as failures.
type breakerTransport struct {
	next http.RoundTripper
	cb   *gobreaker.CircuitBreaker[*http.Response]
}

func newBreakerTransport(next http.RoundTripper) *breakerTransport {
	settings := gobreaker.Settings{
		Name:        "storefront-api",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &breakerTransport{next: next, cb: gobreaker.NewCircuitBreaker[*http.Response](settings)}
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.cb.Execute(func() (*http.Response, error) {
		resp, err := t.next.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errUpstreamFault
		}
		return resp, nil
	})
	switch {
	case err == nil:
		return resp, nil
	case errors.Is(err, errUpstreamFault):
		// failure recorded, but the caller still gets the 5xx response
		return resp, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, ErrBackendDown
	default:
		return nil, err
	}
}
