package services

import (
	"context"
	"errors"
	"strings"

	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/alimgiray/ghdash/internal/models"
	"github.com/alimgiray/ghdash/internal/session"
	"github.com/alimgiray/ghdash/pkg/logger"
	"golang.org/x/sync/errgroup"
)

type ProfileService struct {
	githubService   *GitHubService
	scoreService    *ScoreService
	badgeService    *BadgeService
	filterService   *RepositoryFilterService
	languageService *LanguageService
}

func NewProfileService(
	githubService *GitHubService,
	scoreService *ScoreService,
	badgeService *BadgeService,
	filterService *RepositoryFilterService,
	languageService *LanguageService,
) *ProfileService {
	return &ProfileService{
		githubService:   githubService,
		scoreService:    scoreService,
		badgeService:    badgeService,
		filterService:   filterService,
		languageService: languageService,
	}
}

// Search runs a primary query for the session. The result replaces the session's
// current result set unless a newer query started in the meantime.
func (s *ProfileService) Search(ctx context.Context, sess *session.Session, handle string) (*models.Profile, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, apperror.ValidationFailed("a GitHub username is required")
	}

	ctx, ticket, done := sess.BeginView(ctx, session.SurfaceResults, strings.ToLower(handle))
	defer done()
	sess.StartSearch()

	profile, err := s.LoadProfile(ctx, handle)
	if err != nil {
		if !sess.FailSearch(ticket, session.ModeSingle, err) {
			return nil, apperror.Stale(handle)
		}
		return nil, err
	}

	if !sess.CompleteProfile(ticket, profile) {
		return nil, apperror.Stale(handle)
	}
	return profile, nil
}

// LoadProfile fetches a user and their repository page concurrently
func (s *ProfileService) LoadProfile(ctx context.Context, handle string) (*models.Profile, error) {
	var user *models.User
	var repos []*models.Repository
	var userErr, reposErr error

	// Both requests must settle before either error is classified
	var g errgroup.Group
	g.Go(func() error {
		user, userErr = s.githubService.GetUser(ctx, handle)
		return nil
	})
	g.Go(func() error {
		repos, reposErr = s.githubService.ListRepositories(ctx, handle)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if errors.Is(userErr, apperror.ErrRateLimited) || errors.Is(reposErr, apperror.ErrRateLimited) {
		return nil, apperror.RateLimited()
	}
	if userErr != nil {
		return nil, userLookupError(userErr, "User not found")
	}
	if reposErr != nil {
		logger.WithError(reposErr).WithField("handle", handle).Warn("Repository list unavailable, continuing without it")
		repos = []*models.Repository{}
	}

	return &models.Profile{User: user, Repositories: repos}, nil
}

// Summarize derives the score, tier and badges of a profile
func (s *ProfileService) Summarize(profile *models.Profile) models.ProfileSummary {
	score := s.scoreService.CalculateScore(profile.User, profile.Repositories)
	tier := s.scoreService.Tier(score)
	return models.ProfileSummary{
		Score:     score,
		Tier:      tier,
		TierColor: tier.Color(),
		Badges:    s.badgeService.Badges(profile.User, profile.Repositories),
	}
}

// Listing filters the profile's repositories into cards
func (s *ProfileService) Listing(profile *models.Profile, criteria models.FilterCriteria) models.RepositoryListing {
	filtered := s.filterService.Filter(profile.Repositories, criteria)

	cards := make([]models.RepositoryCard, 0, len(filtered))
	for _, repo := range filtered {
		cards = append(cards, models.RepositoryCard{
			Repository:    repo,
			LanguageColor: s.languageService.Color(repo.Language),
		})
	}

	return models.RepositoryListing{
		Criteria:     criteria,
		Repositories: cards,
		Total:        len(profile.Repositories),
		Matched:      len(filtered),
		EmptyReason:  s.filterService.EmptyReason(profile.Repositories, filtered),
	}
}

// View builds the full response of a primary query
func (s *ProfileService) View(profile *models.Profile, criteria models.FilterCriteria) *models.ProfileView {
	return &models.ProfileView{
		User:           profile.User,
		ProfileSummary: s.Summarize(profile),
		Listing:        s.Listing(profile, criteria),
	}
}

// CurrentView filters the session's displayed result set
func (s *ProfileService) CurrentView(sess *session.Session, criteria models.FilterCriteria) (*models.ProfileView, error) {
	profile := sess.Profile()
	if profile == nil {
		return nil, apperror.NoActiveProfile()
	}
	return s.View(profile, criteria), nil
}

// userLookupError maps a failed user lookup: statuses become notFoundMessage,
// transport failures stay fetch failures
func userLookupError(err error, notFoundMessage string) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NotFound(notFoundMessage)
	}
	return apperror.FetchFailed("profile", err)
}
