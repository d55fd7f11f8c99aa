package Controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"DocTools/SSE"
	"DocTools/Worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *SSE.WindowHub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := SSE.NewWindowHub()
	worker := Worker.New(nil, hub)
	worker.Start()
	t.Cleanup(worker.Terminate)

	PushWorker = worker
	MessagingHandle = nil // nil handle is inert; set per test where needed

	router := gin.New()
	router.POST("/api/ReceivePush", ReceivePush)
	router.POST("/api/NotificationClicked", NotificationClicked)
	return router, hub
}

func TestReceivePushAcceptedBeforeDisplaySettles(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"notification": {"title": "Hi"}, "data": {"url": "/a"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ReceivePush", strings.NewReader(body))
	router.ServeHTTP(w, req)

	// The inert channel still answers 202: a bad config means silence, not
	// errors surfaced to the backend.
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestReceivePushRejectsBadSecret(t *testing.T) {
	router, _ := newTestRouter(t)
	t.Setenv("PUSH_WEBHOOK_SECRET", "s3cret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ReceivePush", strings.NewReader(`{}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/ReceivePush", strings.NewReader(`{}`))
	req.Header.Set("X-Push-Secret", "s3cret")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestNotificationClickedRoutesToWindow(t *testing.T) {
	router, hub := newTestRouter(t)

	ch := hub.Attach("w1", "/reports")
	defer hub.Detach("w1", ch)

	body := `{"notification_id": "n1", "tag": "default", "data": {"url": "/reports"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/NotificationClicked", strings.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)

	// First the unconditional close, then the focus for the exact match.
	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case msg := <-ch:
			got = append(got, msg)
		case <-timeout:
			t.Fatalf("expected 2 window commands, got %d: %v", len(got), got)
		}
	}
	assert.Contains(t, got[0], `"close"`)
	assert.Contains(t, got[1], `"focus"`)
	assert.Contains(t, got[1], `"w1"`)
}

func TestNotificationClickedRejectsBadBody(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/NotificationClicked", strings.NewReader(`{`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceivePushMalformedPayloadStillAccepted(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/ReceivePush", strings.NewReader(`{"notification": {"title": 42}}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}
