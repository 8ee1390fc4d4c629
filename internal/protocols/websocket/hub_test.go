package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aniview/internal/auth"
	"aniview/pkg/models"
)

const (
	testSecret = "test-secret"
	testIssuer = "aniview"
)

func signToken(t *testing.T, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newTestStream(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	verifier := auth.NewVerifier(testSecret, testIssuer)

	router := gin.New()
	router.GET("/ws/progress", Handler(hub, verifier))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/progress?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStreamRejectsMissingToken(t *testing.T) {
	_, srv := newTestStream(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/progress"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestStreamDeliversOwnEvents(t *testing.T) {
	hub, srv := newTestStream(t)

	conn := dial(t, srv, signToken(t, "user-1"))

	require.Eventually(t, func() bool {
		return hub.SessionCount("user-1") == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish(models.ProgressEvent{
		Type:          models.EventEpisodeMarked,
		UserID:        "user-1",
		AnimeID:       20,
		EpisodeNumber: 3,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event models.ProgressEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, models.EventEpisodeMarked, event.Type)
	assert.Equal(t, int64(20), event.AnimeID)
}

func TestStreamIsolatesUsers(t *testing.T) {
	hub, srv := newTestStream(t)

	conn := dial(t, srv, signToken(t, "user-2"))

	require.Eventually(t, func() bool {
		return hub.SessionCount("user-2") == 1
	}, time.Second, 10*time.Millisecond)

	// Event for a different user must not arrive
	hub.Publish(models.ProgressEvent{
		Type:   models.EventEntryAdded,
		UserID: "someone-else",
	})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var event models.ProgressEvent
	assert.Error(t, conn.ReadJSON(&event))
}

func TestSessionCountDropsOnDisconnect(t *testing.T) {
	hub, srv := newTestStream(t)

	conn := dial(t, srv, signToken(t, "user-3"))
	require.Eventually(t, func() bool {
		return hub.SessionCount("user-3") == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool {
		return hub.SessionCount("user-3") == 0
	}, time.Second, 10*time.Millisecond)
}
