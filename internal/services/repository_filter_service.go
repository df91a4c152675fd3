package services

import (
	"strings"

	"github.com/alimgiray/ghdash/internal/models"
)

type RepositoryFilterService struct{}

func NewRepositoryFilterService() *RepositoryFilterService {
	return &RepositoryFilterService{}
}

// Filter returns the repositories matching every criterion, keeping input order
func (s *RepositoryFilterService) Filter(repos []*models.Repository, criteria models.FilterCriteria) []*models.Repository {
	pattern := strings.ToLower(strings.TrimSpace(criteria.Name))

	filtered := make([]*models.Repository, 0, len(repos))
	for _, repo := range repos {
		if s.Matches(repo, pattern, criteria) {
			filtered = append(filtered, repo)
		}
	}
	return filtered
}

// Matches applies the name, language and star predicates to one repository.
// pattern must already be trimmed and lower-cased.
func (s *RepositoryFilterService) Matches(repo *models.Repository, pattern string, criteria models.FilterCriteria) bool {
	return matchesName(repo, pattern) &&
		matchesLanguage(repo, criteria.Language) &&
		repo.Stars >= criteria.MinStars
}

// EmptyReason explains an empty filtered view
func (s *RepositoryFilterService) EmptyReason(all, filtered []*models.Repository) models.EmptyReason {
	switch {
	case len(all) == 0:
		return models.EmptyReasonNoRepositories
	case len(filtered) == 0:
		return models.EmptyReasonNoMatches
	default:
		return models.EmptyReasonNone
	}
}

func matchesName(repo *models.Repository, pattern string) bool {
	if pattern == "" {
		return true
	}
	return strings.Contains(strings.ToLower(repo.Name), pattern)
}

func matchesLanguage(repo *models.Repository, language string) bool {
	switch language {
	case "", models.LanguageAll:
		return true
	case models.LanguageOther:
		return !models.IsKnownLanguage(repo.Language)
	default:
		return repo.Language != "" && repo.Language == language
	}
}
