package handlers

import (
	"net/http"
	"testing"

	"github.com/alimgiray/ghdash/internal/models"
	"github.com/alimgiray/ghdash/internal/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages(t *testing.T) {
	server := newTestServer(t)
	server.fake.SetLanguages("octocat", "hello", map[string]int{"Go": 3, "Shell": 1})
	path := "/api/repos/octocat/hello/languages"

	w := server.do(http.MethodGet, path)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unfetched", decode(t, w)["state"])

	for i := 0; i < 2; i++ {
		w = server.do(http.MethodPost, path)
		require.Equal(t, http.StatusOK, w.Code)
	}
	body := decode(t, w)
	assert.Equal(t, "done", body["state"])
	top := body["breakdown"].(map[string]interface{})["top"].([]interface{})
	assert.Equal(t, "Go", top[0].(map[string]interface{})["language"])
	assert.Equal(t, 75.0, top[0].(map[string]interface{})["percentage"])
	assert.Equal(t, 1, server.fake.Hits("/repos/octocat/hello/languages"))

	w = server.do(http.MethodGet, path)
	assert.Equal(t, "done", decode(t, w)["state"])
}

func TestLanguagesFailureIsScopedToTheCard(t *testing.T) {
	server := newTestServer(t)

	w := server.do(http.MethodPost, "/api/repos/octocat/missing/languages")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "failed", body["state"])
	assert.NotEmpty(t, body["error"])
}

func TestDirectoryTree(t *testing.T) {
	server := newTestServer(t)
	server.fake.SetContents("octocat", "hello", "src",
		testkit.Entry("src/z.go", models.EntryTypeFile),
		testkit.Entry("src/pkg", models.EntryTypeDir),
	)

	w := server.do(http.MethodPost, "/api/repos/octocat/hello/tree/expand?path=src")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "expanded", body["state"])
	entries := body["entries"].([]interface{})
	require.Len(t, entries, 2)
	assert.Equal(t, "pkg", entries[0].(map[string]interface{})["name"])

	w = server.do(http.MethodPost, "/api/repos/octocat/hello/tree/collapse?path=src")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "collapsed", decode(t, w)["state"])

	w = server.do(http.MethodPost, "/api/repos/octocat/hello/tree/expand?path=src")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "expanded", decode(t, w)["state"])
	assert.Equal(t, 1, server.fake.Hits("/repos/octocat/hello/contents/src"))

	w = server.do(http.MethodPost, "/api/repos/octocat/hello/tree/expand?path=docs")
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "failed", body["state"])
	assert.Equal(t, "error loading files", body["error"])

	w = server.do(http.MethodPost, "/api/repos/octocat/hello/tree/expand?path=../secrets")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
