package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/alimgiray/ghdash/internal/session"
	"github.com/alimgiray/ghdash/internal/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBattle(t *testing.T) {
	server := newTestServer(t)
	server.fake.AddUser(testkit.User("strong", 900, 40, time.Now().AddDate(-8, 0, 0)))
	server.fake.AddUser(testkit.User("weak", 0, 1, time.Now()))
	server.fake.AddUser(testkit.User("weaker", 0, 1, time.Now()))

	t.Run("Winner", func(t *testing.T) {
		w := server.do(http.MethodGet, "/api/battle?left=weak&right=strong")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decode(t, w)
		assert.Equal(t, "right", body["winner"])
		assert.Equal(t, false, body["tie"])
		assert.Equal(t, true, body["right"].(map[string]interface{})["winner"])
	})

	t.Run("Tie", func(t *testing.T) {
		w := server.do(http.MethodGet, "/api/battle?left=weak&right=weaker")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, "", body["winner"])
		assert.Equal(t, true, body["tie"])
	})

	t.Run("Unknown user", func(t *testing.T) {
		w := server.do(http.MethodGet, "/api/battle?left=weak&right=ghost")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "One or both users not found", decode(t, w)["message"])
	})

	t.Run("Missing side", func(t *testing.T) {
		w := server.do(http.MethodGet, "/api/battle?left=weak")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_error", decode(t, w)["error"])
	})
}

func TestBattleReplacesSingleMode(t *testing.T) {
	server := newTestServer(t)
	seedOctocat(server)
	server.fake.AddUser(testkit.User("hubot", 10, 1, time.Now()))

	require.Equal(t, http.StatusOK, server.do(http.MethodGet, "/api/profile/octocat").Code)
	require.Equal(t, http.StatusOK, server.do(http.MethodGet, "/api/battle?left=octocat&right=hubot").Code)

	assert.Equal(t, http.StatusConflict, server.do(http.MethodGet, "/api/profile/repositories").Code,
		"the single result set is hidden in battle mode")

	sess := server.store.Get(server.sessionID())
	assert.Equal(t, session.ModeBattle, sess.Mode())
}
