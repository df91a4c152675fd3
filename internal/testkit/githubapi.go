// Package testkit provides a fake GitHub API for tests
package testkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-github/v57/github"
)

// FakeGitHub serves the subset of the REST API and the raw file host the dashboard uses.
// Unknown resources answer 404.
type FakeGitHub struct {
	api *httptest.Server
	raw *httptest.Server

	mu        sync.Mutex
	users     map[string]*github.User
	repos     map[string][]*github.Repository
	languages map[string]map[string]int
	contents  map[string][]*github.RepositoryContent
	followers map[string][]*github.User
	readmes   map[string]string
	statuses  map[string]int
	gates     map[string]chan struct{}
	dropped   map[string]bool
	hits      map[string]int
	queries   map[string]string
}

// NewFakeGitHub starts the fake servers and closes them when the test ends
func NewFakeGitHub(t *testing.T) *FakeGitHub {
	t.Helper()

	f := &FakeGitHub{
		users:     make(map[string]*github.User),
		repos:     make(map[string][]*github.Repository),
		languages: make(map[string]map[string]int),
		contents:  make(map[string][]*github.RepositoryContent),
		followers: make(map[string][]*github.User),
		readmes:   make(map[string]string),
		statuses:  make(map[string]int),
		gates:     make(map[string]chan struct{}),
		dropped:   make(map[string]bool),
		hits:      make(map[string]int),
		queries:   make(map[string]string),
	}

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /users/{handle}", f.handleUser)
	apiMux.HandleFunc("GET /users/{handle}/repos", f.handleRepos)
	apiMux.HandleFunc("GET /users/{handle}/followers", f.handleFollowers)
	apiMux.HandleFunc("GET /repos/{owner}/{repo}/languages", f.handleLanguages)
	apiMux.HandleFunc("GET /repos/{owner}/{repo}/contents/{path...}", f.handleContents)

	rawMux := http.NewServeMux()
	rawMux.HandleFunc("GET /{owner}/{repo}/{rest...}", f.handleRaw)

	f.api = httptest.NewServer(f.intercept(apiMux))
	f.raw = httptest.NewServer(f.intercept(rawMux))
	t.Cleanup(func() {
		f.api.Close()
		f.raw.Close()
	})

	return f
}

// APIURL is the base URL of the fake REST API, with a trailing slash
func (f *FakeGitHub) APIURL() string {
	return f.api.URL + "/"
}

// RawURL is the base URL of the fake raw file host, with a trailing slash
func (f *FakeGitHub) RawURL() string {
	return f.raw.URL + "/"
}

// User builds a user fixture
func User(login string, followers, publicRepos int, createdAt time.Time) *github.User {
	return &github.User{
		Login:       github.String(login),
		AvatarURL:   github.String("https://avatars.example.com/" + login),
		HTMLURL:     github.String("https://github.com/" + login),
		Followers:   github.Int(followers),
		PublicRepos: github.Int(publicRepos),
		CreatedAt:   &github.Timestamp{Time: createdAt},
	}
}

// Repository builds a repository fixture
func Repository(owner, name, language string, stars, forks int) *github.Repository {
	repo := &github.Repository{
		Name:            github.String(name),
		FullName:        github.String(owner + "/" + name),
		Owner:           &github.User{Login: github.String(owner)},
		StargazersCount: github.Int(stars),
		ForksCount:      github.Int(forks),
		DefaultBranch:   github.String("main"),
		HTMLURL:         github.String("https://github.com/" + owner + "/" + name),
	}
	if language != "" {
		repo.Language = github.String(language)
	}
	return repo
}

// Entry builds a directory entry fixture; kind is "file" or "dir"
func Entry(path, kind string) *github.RepositoryContent {
	name := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		name = path[i+1:]
	}
	return &github.RepositoryContent{
		Name: github.String(name),
		Path: github.String(path),
		Type: github.String(kind),
	}
}

func (f *FakeGitHub) AddUser(user *github.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.GetLogin()] = user
}

func (f *FakeGitHub) AddRepositories(handle string, repos ...*github.Repository) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repos[handle] = append(f.repos[handle], repos...)
}

func (f *FakeGitHub) SetLanguages(owner, repo string, languages map[string]int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.languages[owner+"/"+repo] = languages
}

// SetContents registers the listing of path; an empty path is the repository root
func (f *FakeGitHub) SetContents(owner, repo, path string, entries ...*github.RepositoryContent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contents[owner+"/"+repo+":"+path] = entries
}

func (f *FakeGitHub) AddFollowers(handle string, followers ...*github.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.followers[handle] = append(f.followers[handle], followers...)
}

func (f *FakeGitHub) SetReadme(owner, repo, branch, markdown string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readmes[owner+"/"+repo+"@"+branch] = markdown
}

// SetStatus forces every request to path to answer with status
func (f *FakeGitHub) SetStatus(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[path] = status
}

// Drop closes the connection of every request to path without answering
func (f *FakeGitHub) Drop(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropped[path] = true
}

// Block holds requests to path until the returned function is called
func (f *FakeGitHub) Block(path string) (release func()) {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[path] = gate
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { close(gate) })
	}
}

// Hits returns how many requests reached path
func (f *FakeGitHub) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

// Query returns the raw query string of the last request to path
func (f *FakeGitHub) Query(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[path]
}

func (f *FakeGitHub) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		f.queries[r.URL.Path] = r.URL.RawQuery
		status, forced := f.statuses[r.URL.Path]
		gate := f.gates[r.URL.Path]
		dropped := f.dropped[r.URL.Path]
		f.mu.Unlock()

		if dropped {
			if hijacker, ok := w.(http.Hijacker); ok {
				if conn, _, err := hijacker.Hijack(); err == nil {
					conn.Close()
					return
				}
			}
			panic(http.ErrAbortHandler)
		}

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		if forced {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeGitHub) handleUser(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	user, ok := f.users[r.PathValue("handle")]
	f.mu.Unlock()
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (f *FakeGitHub) handleRepos(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	_, known := f.users[r.PathValue("handle")]
	repos := f.repos[r.PathValue("handle")]
	f.mu.Unlock()
	if !known {
		notFound(w)
		return
	}
	if repos == nil {
		repos = []*github.Repository{}
	}
	writeJSON(w, http.StatusOK, repos)
}

func (f *FakeGitHub) handleFollowers(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	_, known := f.users[r.PathValue("handle")]
	followers := f.followers[r.PathValue("handle")]
	f.mu.Unlock()
	if !known {
		notFound(w)
		return
	}
	if followers == nil {
		followers = []*github.User{}
	}
	writeJSON(w, http.StatusOK, followers)
}

func (f *FakeGitHub) handleLanguages(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	languages, ok := f.languages[r.PathValue("owner")+"/"+r.PathValue("repo")]
	f.mu.Unlock()
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, languages)
}

func (f *FakeGitHub) handleContents(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("owner") + "/" + r.PathValue("repo") + ":" + strings.Trim(r.PathValue("path"), "/")
	f.mu.Lock()
	entries, ok := f.contents[key]
	f.mu.Unlock()
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (f *FakeGitHub) handleRaw(w http.ResponseWriter, r *http.Request) {
	rest := r.PathValue("rest")
	branch, found := strings.CutSuffix(rest, "/README.md")
	if !found {
		http.NotFound(w, r)
		return
	}

	f.mu.Lock()
	markdown, ok := f.readmes[r.PathValue("owner")+"/"+r.PathValue("repo")+"@"+branch]
	f.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(markdown))
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
