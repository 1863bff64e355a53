package duckduckgo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sells-group/platleague/internal/resilience"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<div class="results">
  <div class="result results_links">
    <h2 class="result__title">
      <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fhowlongtobeat.com%2Fgame%2F26286&amp;rut=abc">How long is <b>Hollow Knight</b>? | HowLongToBeat</a>
    </h2>
    <a class="result__snippet" href="#">Main Story 26 Hours</a>
  </div>
  <div class="result results_links">
    <h2 class="result__title">
      <a rel="nofollow" class="result__a" href="https://example.com/hk">Hollow Knight wiki</a>
    </h2>
  </div>
</div>
</body></html>`

func newTestClient(srvURL string) Client {
	return NewClient(
		WithBaseURL(srvURL),
		WithRateLimiter(rate.NewLimiter(rate.Inf, 1)),
		WithRetry(resilience.RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}),
	)
}

func TestSearch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "site:howlongtobeat.com/game hollow knight", r.URL.Query().Get("q"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	results, err := newTestClient(srv.URL).Search(context.Background(), "site:howlongtobeat.com/game hollow knight")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "How long is Hollow Knight? | HowLongToBeat", results[0].Title)
	assert.Equal(t, "https://howlongtobeat.com/game/26286", results[0].URL)
	assert.Equal(t, "Hollow Knight wiki", results[1].Title)
	assert.Equal(t, "https://example.com/hk", results[1].URL)
}

func TestSearch_Blocked(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`<html><body><div class="anomaly-modal__title">Unfortunately, bots use DuckDuckGo too.</div></body></html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), "celeste")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked (anomaly)")
	assert.Equal(t, int32(1), calls.Load(), "blocks are not retried")
}

func TestSearch_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	results, err := newTestClient(srv.URL).Search(context.Background(), "hollow knight")
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSearch_PermanentStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), "hades")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearch_EmptyPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="no-results">No results.</div></body></html>`))
	}))
	defer srv.Close()

	results, err := newTestClient(srv.URL).Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDetectBlock(t *testing.T) {
	ok := &http.Response{StatusCode: http.StatusOK}
	blocked, kind := DetectBlock(ok, []byte(resultsPage))
	assert.False(t, blocked)
	assert.Equal(t, BlockNone, kind)

	blocked, kind = DetectBlock(&http.Response{StatusCode: http.StatusTooManyRequests}, nil)
	assert.True(t, blocked)
	assert.Equal(t, BlockRateLimit, kind)

	blocked, kind = DetectBlock(ok, []byte("please solve this CAPTCHA"))
	assert.True(t, blocked)
	assert.Equal(t, BlockCaptcha, kind)

	blocked, _ = DetectBlock(nil, nil)
	assert.False(t, blocked)
}

func TestUnwrapRedirect(t *testing.T) {
	assert.Equal(t, "https://howlongtobeat.com/game/1", unwrapRedirect("//duckduckgo.com/l/?uddg=https%3A%2F%2Fhowlongtobeat.com%2Fgame%2F1"))
	assert.Equal(t, "https://example.com", unwrapRedirect("https://example.com"))
}
