package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/alimgiray/ghdash/internal/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seedOctocat(server *testServer) {
	server.fake.AddUser(testkit.User("octocat", 100, 3, time.Now().AddDate(-5, 0, 0)))
	server.fake.AddRepositories("octocat",
		testkit.Repository("octocat", "hello-world", "Python", 40, 4),
		testkit.Repository("octocat", "site", "HTML", 2, 0),
		testkit.Repository("octocat", "scratch", "", 0, 0),
	)
}

func TestGetProfile(t *testing.T) {
	server := newTestServer(t)
	seedOctocat(server)

	w := server.do(http.MethodGet, "/api/profile/octocat")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "octocat", body["user"].(map[string]interface{})["login"])
	assert.NotNil(t, body["score"])
	assert.NotEmpty(t, body["tier"])
	listing := body["listing"].(map[string]interface{})
	assert.Len(t, listing["repositories"], 3)
	assert.Equal(t, "All", listing["criteria"].(map[string]interface{})["language"])
	assert.Equal(t, "per_page=100&sort=updated", server.fake.Query("/users/octocat/repos"))
}

func TestGetProfileErrors(t *testing.T) {
	server := newTestServer(t)
	server.fake.AddUser(testkit.User("limited", 0, 0, time.Now()))
	server.fake.SetStatus("/users/limited", http.StatusForbidden)

	testCases := []struct {
		name    string
		path    string
		status  int
		kind    string
		message string
	}{
		{"Unknown user", "/api/profile/ghost", http.StatusNotFound, "not_found", "User not found"},
		{"Rate limited", "/api/profile/limited", http.StatusTooManyRequests, "rate_limited", "GitHub API rate limit exceeded. Please try again later."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := server.do(http.MethodGet, tc.path)
			assert.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, tc.kind, body["error"])
			assert.Equal(t, tc.message, body["message"])
		})
	}
}

func TestFilterRepositories(t *testing.T) {
	server := newTestServer(t)
	seedOctocat(server)

	w := server.do(http.MethodGet, "/api/profile/repositories?language=Python")
	assert.Equal(t, http.StatusConflict, w.Code, "filtering needs a displayed profile")

	require.Equal(t, http.StatusOK, server.do(http.MethodGet, "/api/profile/octocat").Code)
	hitsAfterSearch := server.fake.Hits("/users/octocat/repos")

	testCases := []struct {
		name     string
		query    string
		expected []string
		reason   string
	}{
		{"Language", "?language=HTML", []string{"site"}, ""},
		{"Other", "?language=Other", []string{"scratch"}, ""},
		{"Name is case insensitive", "?name=%20HELLO%20", []string{"hello-world"}, ""},
		{"Bad min stars means zero", "?min_stars=lots", []string{"hello-world", "site", "scratch"}, ""},
		{"No matches", "?min_stars=1000", []string{}, "no_matches"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := server.do(http.MethodGet, "/api/profile/repositories"+tc.query)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			listing := decode(t, w)["listing"].(map[string]interface{})
			names := []string{}
			for _, repo := range listing["repositories"].([]interface{}) {
				names = append(names, repo.(map[string]interface{})["name"].(string))
			}
			assert.Equal(t, tc.expected, names)
			if tc.reason == "" {
				assert.Nil(t, listing["empty_reason"])
			} else {
				assert.Equal(t, tc.reason, listing["empty_reason"])
			}
		})
	}

	assert.Equal(t, hitsAfterSearch, server.fake.Hits("/users/octocat/repos"), "filtering never refetches")
}

func TestClearFilters(t *testing.T) {
	server := newTestServer(t)
	seedOctocat(server)
	require.Equal(t, http.StatusOK, server.do(http.MethodGet, "/api/profile/octocat").Code)

	w := server.do(http.MethodDelete, "/api/profile/filters")
	require.Equal(t, http.StatusOK, w.Code)

	listing := decode(t, w)["listing"].(map[string]interface{})
	assert.Len(t, listing["repositories"], 3)
	criteria := listing["criteria"].(map[string]interface{})
	assert.Equal(t, "", criteria["name"])
	assert.Equal(t, "All", criteria["language"])
	assert.Equal(t, float64(0), criteria["min_stars"])
}

func TestExportRepositories(t *testing.T) {
	server := newTestServer(t)
	seedOctocat(server)
	require.Equal(t, http.StatusOK, server.do(http.MethodGet, "/api/profile/octocat").Code)

	w := server.do(http.MethodGet, "/api/profile/repositories/export?min_stars=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "octocat-repositories.xlsx")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Repositories")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus the two starred repositories")
	assert.Equal(t, "hello-world", rows[1][0])
}

func TestSessionsAreIsolated(t *testing.T) {
	server := newTestServer(t)
	seedOctocat(server)
	require.Equal(t, http.StatusOK, server.do(http.MethodGet, "/api/profile/octocat").Code)

	server.forget()
	w := server.do(http.MethodGet, "/api/profile/repositories")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 2, server.store.Len())
}
