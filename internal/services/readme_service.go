package services

import (
	"bytes"
	"context"
	"strings"

	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/alimgiray/ghdash/internal/models"
	"github.com/alimgiray/ghdash/internal/session"
	"github.com/alimgiray/ghdash/pkg/logger"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// fallbackBranches are tried after the repository's default branch
var fallbackBranches = []string{"main", "master"}

type ReadmeService struct {
	githubService *GitHubService
	markdown      goldmark.Markdown
}

func NewReadmeService(githubService *GitHubService) *ReadmeService {
	return &ReadmeService{
		githubService: githubService,
		markdown:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Open shows the README of a repository in the session's detail view.
// When branch is empty the default branch of the last loaded result set is used.
func (s *ReadmeService) Open(ctx context.Context, sess *session.Session, owner, repo, branch string) (*models.Readme, error) {
	key := repositoryKey(owner, repo)

	if strings.TrimSpace(branch) == "" {
		if profile := sess.LastProfile(); profile != nil {
			if found := profile.FindRepository(owner, repo); found != nil {
				branch = found.DefaultBranch
			}
		}
	}

	ctx, ticket, done := sess.BeginView(ctx, session.SurfaceDetail, key)
	defer done()

	readme := s.Fetch(ctx, owner, repo, branch)
	if !sess.IsCurrent(ticket) {
		return nil, apperror.Stale(key)
	}
	return readme, nil
}

// Fetch tries each candidate branch in order and renders the first README found.
// When every candidate fails the placeholder is returned with the last reason.
func (s *ReadmeService) Fetch(ctx context.Context, owner, repo, defaultBranch string) *models.Readme {
	readme := &models.Readme{
		Repository:  repositoryKey(owner, repo),
		Placeholder: models.ReadmePlaceholder,
	}

	for _, branch := range Candidates(defaultBranch) {
		if ctx.Err() != nil {
			readme.Reason = ctx.Err().Error()
			return readme
		}

		content, err := s.githubService.GetRawReadme(ctx, owner, repo, branch)
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"repository": readme.Repository,
				"branch":     branch,
			}).WithError(err).Debug("README candidate unavailable")
			readme.Reason = err.Error()
			continue
		}

		html, err := s.Render(content)
		if err != nil {
			readme.Reason = err.Error()
			continue
		}

		readme.Available = true
		readme.Branch = branch
		readme.HTML = html
		readme.Placeholder = ""
		readme.Reason = ""
		return readme
	}

	return readme
}

// Render converts GitHub flavoured Markdown to HTML. Raw HTML in the source is omitted.
func (s *ReadmeService) Render(markdown []byte) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert(markdown, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Candidates lists the branches to try: the default branch, then main and master.
// Empty and repeated names are skipped.
func Candidates(defaultBranch string) []string {
	seen := make(map[string]bool)
	var candidates []string
	for _, branch := range append([]string{strings.TrimSpace(defaultBranch)}, fallbackBranches...) {
		if branch == "" || seen[branch] {
			continue
		}
		seen[branch] = true
		candidates = append(candidates, branch)
	}
	return candidates
}
