package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/alimgiray/ghdash/internal/models"
	"github.com/alimgiray/ghdash/internal/repositories"
	"github.com/alimgiray/ghdash/pkg/logger"
)

const directoryErrorMessage = "error loading files"

// ExplorerService performs the lazy per-repository fetches of a session:
// language bars and directory listings. Each is fetched at most once per session.
type ExplorerService struct {
	githubService   *GitHubService
	languageService *LanguageService
	fetchStates     *repositories.FetchStateRepository
}

func NewExplorerService(
	githubService *GitHubService,
	languageService *LanguageService,
	fetchStates *repositories.FetchStateRepository,
) *ExplorerService {
	return &ExplorerService{
		githubService:   githubService,
		languageService: languageService,
		fetchStates:     fetchStates,
	}
}

// RevealRepository handles a repository card becoming visible. Only the first
// trigger per session fetches; later ones return the stored card state.
func (s *ExplorerService) RevealRepository(ctx context.Context, sessionID, owner, repo string) (*models.LanguageCard, error) {
	key := repositoryKey(owner, repo)

	claimed, err := s.fetchStates.Claim(sessionID, models.FetchKindLanguages, key)
	if err != nil {
		return nil, fmt.Errorf("failed to claim language fetch: %w", err)
	}
	if claimed {
		s.fetchLanguages(context.WithoutCancel(ctx), sessionID, owner, repo)
	}

	return s.LanguageCard(sessionID, owner, repo)
}

func (s *ExplorerService) fetchLanguages(ctx context.Context, sessionID, owner, repo string) {
	key := repositoryKey(owner, repo)
	log := logger.WithFields(map[string]interface{}{
		"session_id": sessionID,
		"repository": key,
	})

	languages, err := s.githubService.ListLanguages(ctx, owner, repo)
	if err != nil {
		log.WithError(err).Warn("Language fetch failed")
		if markErr := s.fetchStates.MarkFailed(sessionID, models.FetchKindLanguages, key, err.Error()); markErr != nil {
			log.WithError(markErr).Error("Failed to record language fetch failure")
		}
		return
	}

	payload, err := json.Marshal(s.languageService.Breakdown(languages))
	if err != nil {
		log.WithError(err).Error("Failed to encode language breakdown")
		_ = s.fetchStates.MarkFailed(sessionID, models.FetchKindLanguages, key, err.Error())
		return
	}
	if err := s.fetchStates.MarkDone(sessionID, models.FetchKindLanguages, key, payload, false); err != nil {
		log.WithError(err).Error("Failed to store language breakdown")
	}
}

// LanguageCard returns the current language bar state without fetching
func (s *ExplorerService) LanguageCard(sessionID, owner, repo string) (*models.LanguageCard, error) {
	key := repositoryKey(owner, repo)
	card := &models.LanguageCard{
		Repository: key,
		State:      models.FetchStateUnfetched,
	}

	record, err := s.fetchStates.Get(sessionID, models.FetchKindLanguages, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load language state: %w", err)
	}
	if record == nil {
		return card, nil
	}

	card.State = record.State
	switch {
	case record.IsDone():
		var breakdown models.LanguageBreakdown
		if err := json.Unmarshal(record.Payload, &breakdown); err != nil {
			return nil, fmt.Errorf("failed to decode language breakdown: %w", err)
		}
		card.Breakdown = &breakdown
	case record.IsFailed():
		card.Error = record.Error
	}
	return card, nil
}

// ExpandDirectory opens a directory node. The listing is fetched on the first
// expand and after a failure; otherwise the cached listing is shown again.
func (s *ExplorerService) ExpandDirectory(ctx context.Context, sessionID, owner, repo, path string) (*models.DirectoryNode, error) {
	path, err := cleanTreePath(path)
	if err != nil {
		return nil, err
	}
	key := directoryKey(owner, repo, path)

	claimed, err := s.fetchStates.ClaimRetryable(sessionID, models.FetchKindDirectory, key)
	if err != nil {
		return nil, fmt.Errorf("failed to claim directory fetch: %w", err)
	}
	if claimed {
		s.fetchDirectory(context.WithoutCancel(ctx), sessionID, owner, repo, path)
	} else if _, err := s.fetchStates.SetExpanded(sessionID, models.FetchKindDirectory, key, true); err != nil {
		return nil, fmt.Errorf("failed to expand directory: %w", err)
	}

	return s.directoryNode(sessionID, owner, repo, path)
}

func (s *ExplorerService) fetchDirectory(ctx context.Context, sessionID, owner, repo, path string) {
	key := directoryKey(owner, repo, path)
	log := logger.WithFields(map[string]interface{}{
		"session_id": sessionID,
		"directory":  key,
	})

	entries, err := s.githubService.ListDirectory(ctx, owner, repo, path)
	if err != nil {
		log.WithError(err).Warn("Directory fetch failed")
		if markErr := s.fetchStates.MarkFailed(sessionID, models.FetchKindDirectory, key, directoryErrorMessage); markErr != nil {
			log.WithError(markErr).Error("Failed to record directory fetch failure")
		}
		return
	}

	SortEntries(entries)
	payload, err := json.Marshal(entries)
	if err != nil {
		log.WithError(err).Error("Failed to encode directory listing")
		_ = s.fetchStates.MarkFailed(sessionID, models.FetchKindDirectory, key, directoryErrorMessage)
		return
	}
	if err := s.fetchStates.MarkDone(sessionID, models.FetchKindDirectory, key, payload, true); err != nil {
		log.WithError(err).Error("Failed to store directory listing")
	}
}

// CollapseDirectory closes a directory node and keeps its cached listing.
// A failed node is reset so the next expand fetches again.
func (s *ExplorerService) CollapseDirectory(sessionID, owner, repo, path string) (*models.DirectoryNode, error) {
	path, err := cleanTreePath(path)
	if err != nil {
		return nil, err
	}
	key := directoryKey(owner, repo, path)

	record, err := s.fetchStates.Get(sessionID, models.FetchKindDirectory, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load directory state: %w", err)
	}

	if record != nil {
		switch {
		case record.IsDone():
			if _, err := s.fetchStates.SetExpanded(sessionID, models.FetchKindDirectory, key, false); err != nil {
				return nil, fmt.Errorf("failed to collapse directory: %w", err)
			}
		case record.IsFailed():
			if err := s.fetchStates.Delete(sessionID, models.FetchKindDirectory, key); err != nil {
				return nil, fmt.Errorf("failed to reset directory: %w", err)
			}
		}
	}

	return s.directoryNode(sessionID, owner, repo, path)
}

func (s *ExplorerService) directoryNode(sessionID, owner, repo, path string) (*models.DirectoryNode, error) {
	node := &models.DirectoryNode{
		Repository: repositoryKey(owner, repo),
		Path:       path,
		State:      models.NodeStateCollapsed,
	}

	record, err := s.fetchStates.Get(sessionID, models.FetchKindDirectory, directoryKey(owner, repo, path))
	if err != nil {
		return nil, fmt.Errorf("failed to load directory state: %w", err)
	}
	if record == nil {
		return node, nil
	}

	switch {
	case record.IsPending():
		node.State = models.NodeStateExpanding
	case record.IsFailed():
		node.State = models.NodeStateFailed
		node.Error = record.Error
	case record.IsDone():
		if err := json.Unmarshal(record.Payload, &node.Entries); err != nil {
			return nil, fmt.Errorf("failed to decode directory listing: %w", err)
		}
		if record.Expanded {
			node.State = models.NodeStateExpanded
		}
	}
	return node, nil
}

// SortEntries orders directories before files, each group by name
func SortEntries(entries []models.DirectoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name < entries[j].Name
	})
}

func cleanTreePath(path string) (string, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." || segment == "." {
			return "", apperror.ValidationFailed("invalid path: " + path)
		}
	}
	return path, nil
}

func repositoryKey(owner, repo string) string {
	return owner + "/" + repo
}

func directoryKey(owner, repo, path string) string {
	return repositoryKey(owner, repo) + ":" + path
}
