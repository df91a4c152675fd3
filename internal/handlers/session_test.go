package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/alimgiray/ghdash/internal/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSession(t *testing.T) {
	server := newTestServer(t)
	seedOctocat(server)
	server.fake.AddUser(testkit.User("hubot", 10, 1, time.Now()))

	t.Run("Fresh session", func(t *testing.T) {
		w := server.do(http.MethodGet, "/api/session")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, "none", body["mode"])
		assert.Equal(t, "idle", body["search"].(map[string]interface{})["state"])
		assert.NotContains(t, body, "profile")
	})

	t.Run("Loaded profile", func(t *testing.T) {
		require.Equal(t, http.StatusOK, server.do(http.MethodGet, "/api/profile/octocat").Code)

		body := decode(t, server.do(http.MethodGet, "/api/session"))
		assert.Equal(t, "single", body["mode"])
		assert.Equal(t, "loaded", body["search"].(map[string]interface{})["state"])
		assert.Equal(t, "octocat", body["profile"])
	})

	t.Run("Failed search", func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, server.do(http.MethodGet, "/api/profile/ghost").Code)

		body := decode(t, server.do(http.MethodGet, "/api/session"))
		search := body["search"].(map[string]interface{})
		assert.Equal(t, "none", body["mode"])
		assert.Equal(t, "errored", search["state"])
		assert.NotEmpty(t, search["error"])
		assert.NotContains(t, body, "profile")
	})

	t.Run("Battle", func(t *testing.T) {
		require.Equal(t, http.StatusOK, server.do(http.MethodGet, "/api/battle?left=octocat&right=hubot").Code)

		body := decode(t, server.do(http.MethodGet, "/api/session"))
		assert.Equal(t, "battle", body["mode"])
		battle := body["battle"].(map[string]interface{})
		assert.Equal(t, "left", battle["winner"])
	})

	t.Run("Same id across requests", func(t *testing.T) {
		assert.Equal(t, server.sessionID(), server.sessionID())
	})
}
