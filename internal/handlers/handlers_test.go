package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alimgiray/ghdash/internal/repositories"
	"github.com/alimgiray/ghdash/internal/services"
	"github.com/alimgiray/ghdash/internal/session"
	"github.com/alimgiray/ghdash/internal/testkit"
	"github.com/alimgiray/ghdash/pkg/config"
	"github.com/alimgiray/ghdash/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// testServer drives the full route table against a fake GitHub API,
// replaying the session cookie like a browser would
type testServer struct {
	t      *testing.T
	router *gin.Engine
	fake   *testkit.FakeGitHub
	store  *session.Store
	cookie *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	require.NoError(t, config.Load())
	gin.SetMode(gin.TestMode)

	fake := testkit.NewFakeGitHub(t)
	db, err := database.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	githubService, err := services.NewGitHubService(fake.APIURL(), fake.RawURL(), nil)
	require.NoError(t, err)

	scoreService := services.NewScoreService()
	languageService := services.NewLanguageService()
	profileService := services.NewProfileService(
		githubService,
		scoreService,
		services.NewBadgeService(scoreService),
		services.NewRepositoryFilterService(),
		languageService,
	)
	store := session.NewStore(time.Hour)

	router := gin.New()
	SetupRoutes(router, store, time.Hour, Handlers{
		Health:   NewHealthHandler(store),
		Profile:  NewProfileHandler(profileService, services.NewExportService()),
		Battle:   NewBattleHandler(services.NewBattleService(githubService, profileService)),
		Explorer: NewExplorerHandler(services.NewExplorerService(githubService, languageService, repositories.NewFetchStateRepository(db))),
		Readme:   NewReadmeHandler(services.NewReadmeService(githubService)),
		Network:  NewNetworkHandler(services.NewNetworkService(githubService)),
		Session:  NewSessionHandler(),
		NotFound: NewNotFoundHandler(),
	})

	return &testServer{t: t, router: router, fake: fake, store: store}
}

func (s *testServer) do(method, path string) *httptest.ResponseRecorder {
	s.t.Helper()
	req, err := http.NewRequest(method, path, nil)
	require.NoError(s.t, err)
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session" {
			s.cookie = cookie
		}
	}
	return w
}

// forget drops the session cookie, like a fresh browser
func (s *testServer) forget() {
	s.cookie = nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// sessionID reads the id of the session the stored cookie belongs to
func (s *testServer) sessionID() string {
	s.t.Helper()
	require.NotNil(s.t, s.cookie)

	w := s.do(http.MethodGet, "/api/session")
	require.Equal(s.t, http.StatusOK, w.Code)
	return decode(s.t, w)["id"].(string)
}
