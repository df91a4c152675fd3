package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/alimgiray/ghdash/internal/models"
	"github.com/google/go-github/v57/github"
)

// GitHubService is the only component talking to the GitHub API. Requests are
// unauthenticated; every 403 is reported as apperror.ErrRateLimited.
type GitHubService struct {
	client    *github.Client
	rawClient *github.Client
}

// NewGitHubService creates a service for the REST API at apiURL and raw file host at rawURL.
// Both URLs must end with a slash.
func NewGitHubService(apiURL, rawURL string, httpClient *http.Client) (*GitHubService, error) {
	client, err := newClient(apiURL, httpClient)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
	}

	rawClient, err := newClient(rawURL, httpClient)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub raw URL: %w", err)
	}

	return &GitHubService{
		client:    client,
		rawClient: rawClient,
	}, nil
}

func newClient(baseURL string, httpClient *http.Client) (*github.Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	client := github.NewClient(httpClient)
	client.BaseURL = parsed
	return client, nil
}

// GetUser fetches a user profile
func (s *GitHubService) GetUser(ctx context.Context, handle string) (*models.User, error) {
	user, resp, err := s.client.Users.Get(ctx, handle)
	if err != nil {
		return nil, classifyError(resp, err, "user "+handle)
	}
	return toUser(user), nil
}

// ListRepositories fetches the first page of a user's repositories, most recently updated first
func (s *GitHubService) ListRepositories(ctx context.Context, handle string) ([]*models.Repository, error) {
	opt := &github.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: models.RepositoryPageSize},
	}

	repos, resp, err := s.client.Repositories.List(ctx, handle, opt)
	if err != nil {
		return nil, classifyError(resp, err, "repositories of "+handle)
	}

	result := make([]*models.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, toRepository(repo))
	}
	return result, nil
}

// ListLanguages fetches the language byte counts of a repository
func (s *GitHubService) ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	languages, resp, err := s.client.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, classifyError(resp, err, "languages of "+owner+"/"+repo)
	}
	return languages, nil
}

// ListDirectory fetches the entries of one directory; an empty path is the root
func (s *GitHubService) ListDirectory(ctx context.Context, owner, repo, path string) ([]models.DirectoryEntry, error) {
	file, dir, resp, err := s.client.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil, classifyError(resp, err, "contents of "+owner+"/"+repo+"/"+path)
	}
	if file != nil {
		return nil, fmt.Errorf("%s is a file, not a directory", path)
	}

	entries := make([]models.DirectoryEntry, 0, len(dir))
	for _, content := range dir {
		entries = append(entries, models.DirectoryEntry{
			Name:    content.GetName(),
			Path:    content.GetPath(),
			Type:    content.GetType(),
			Size:    content.GetSize(),
			HTMLURL: content.GetHTMLURL(),
		})
	}
	return entries, nil
}

// ListFollowers fetches the first page of a user's followers
func (s *GitHubService) ListFollowers(ctx context.Context, handle string) ([]*models.User, error) {
	opt := &github.ListOptions{PerPage: models.FollowerPageSize}

	followers, resp, err := s.client.Users.ListFollowers(ctx, handle, opt)
	if err != nil {
		return nil, classifyError(resp, err, "followers of "+handle)
	}

	result := make([]*models.User, 0, len(followers))
	for _, follower := range followers {
		result = append(result, toUser(follower))
	}
	return result, nil
}

// GetRawReadme downloads README.md of a repository at the given branch
func (s *GitHubService) GetRawReadme(ctx context.Context, owner, repo, branch string) ([]byte, error) {
	path := fmt.Sprintf("%s/%s/%s/README.md", url.PathEscape(owner), url.PathEscape(repo), escapeBranch(branch))

	req, err := s.rawClient.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build README request: %w", err)
	}

	var buf bytes.Buffer
	resp, err := s.rawClient.Do(ctx, req, &buf)
	if err != nil {
		return nil, classifyError(resp, err, "README at "+branch)
	}
	return buf.Bytes(), nil
}

// classifyError turns a go-github failure into the error taxonomy:
// 403 is a rate limit, any other status is a not-found, everything else is transport
func classifyError(resp *github.Response, err error, resource string) error {
	if isRateLimited(resp, err) {
		return apperror.RateLimited()
	}
	if resp != nil && resp.Response != nil {
		return apperror.NotFound(fmt.Sprintf("GitHub returned %d for %s", resp.StatusCode, resource))
	}
	return fmt.Errorf("request for %s failed: %w", resource, err)
}

func isRateLimited(resp *github.Response, err error) bool {
	if resp != nil && resp.Response != nil && resp.StatusCode == http.StatusForbidden {
		return true
	}

	var rateLimitErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	return errors.As(err, &rateLimitErr) || errors.As(err, &abuseErr)
}

func escapeBranch(branch string) string {
	segments := strings.Split(branch, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

func toUser(user *github.User) *models.User {
	return &models.User{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         user.GetBio(),
		Location:    user.GetLocation(),
		Company:     user.GetCompany(),
		Blog:        user.GetBlog(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		PublicRepos: user.GetPublicRepos(),
		CreatedAt:   user.GetCreatedAt().Time,
		Hireable:    user.GetHireable(),
		HTMLURL:     user.GetHTMLURL(),
	}
}

func toRepository(repo *github.Repository) *models.Repository {
	return &models.Repository{
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Owner:         repo.GetOwner().GetLogin(),
		Description:   repo.GetDescription(),
		Language:      repo.GetLanguage(),
		Stars:         repo.GetStargazersCount(),
		Forks:         repo.GetForksCount(),
		UpdatedAt:     repo.GetUpdatedAt().Time,
		DefaultBranch: repo.GetDefaultBranch(),
		HTMLURL:       repo.GetHTMLURL(),
	}
}
