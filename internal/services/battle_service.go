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

const battleNotFoundMessage = "One or both users not found"

// BattleService compares two profiles by score
type BattleService struct {
	githubService  *GitHubService
	profileService *ProfileService
}

func NewBattleService(githubService *GitHubService, profileService *ProfileService) *BattleService {
	return &BattleService{
		githubService:  githubService,
		profileService: profileService,
	}
}

// Compare runs a comparison for the session and displays it in battle mode,
// unless a newer query started in the meantime
func (s *BattleService) Compare(ctx context.Context, sess *session.Session, left, right string) (*models.BattleResult, error) {
	left = strings.TrimSpace(left)
	right = strings.TrimSpace(right)
	if left == "" || right == "" {
		return nil, apperror.ValidationFailed("two GitHub usernames are required")
	}

	key := strings.ToLower(left) + " vs " + strings.ToLower(right)
	ctx, ticket, done := sess.BeginView(ctx, session.SurfaceResults, key)
	defer done()
	sess.StartSearch()

	result, err := s.LoadBattle(ctx, left, right)
	if err != nil {
		if !sess.FailSearch(ticket, session.ModeBattle, err) {
			return nil, apperror.Stale(key)
		}
		return nil, err
	}

	if !sess.CompleteBattle(ticket, result) {
		return nil, apperror.Stale(key)
	}
	return result, nil
}

// LoadBattle fetches both users concurrently, then both repository pages concurrently
func (s *BattleService) LoadBattle(ctx context.Context, left, right string) (*models.BattleResult, error) {
	handles := [2]string{left, right}
	var users [2]*models.User
	var userErrs [2]error

	var userGroup errgroup.Group
	for i := range handles {
		userGroup.Go(func() error {
			users[i], userErrs[i] = s.githubService.GetUser(ctx, handles[i])
			return nil
		})
	}
	_ = userGroup.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range userErrs {
		if errors.Is(err, apperror.ErrRateLimited) {
			return nil, apperror.RateLimited()
		}
	}
	for _, err := range userErrs {
		if err != nil {
			return nil, userLookupError(err, battleNotFoundMessage)
		}
	}

	var repos [2][]*models.Repository
	var repoErrs [2]error
	var repoGroup errgroup.Group
	for i := range handles {
		repoGroup.Go(func() error {
			repos[i], repoErrs[i] = s.githubService.ListRepositories(ctx, users[i].Login)
			return nil
		})
	}
	_ = repoGroup.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range repoErrs {
		if errors.Is(err, apperror.ErrRateLimited) {
			return nil, apperror.RateLimited()
		}
		if err != nil {
			logger.WithError(err).WithField("handle", handles[i]).Warn("Repository list unavailable, continuing without it")
			repos[i] = []*models.Repository{}
		}
	}

	leftContender := s.contender(users[0], repos[0])
	rightContender := s.contender(users[1], repos[1])
	return Decide(leftContender, rightContender), nil
}

func (s *BattleService) contender(user *models.User, repos []*models.Repository) *models.Contender {
	profile := &models.Profile{User: user, Repositories: repos}
	return &models.Contender{
		Profile:        *profile,
		ProfileSummary: s.profileService.Summarize(profile),
	}
}

// Decide marks the contender with the higher score as winner; equal scores are a tie
func Decide(left, right *models.Contender) *models.BattleResult {
	result := &models.BattleResult{Left: left, Right: right}

	switch {
	case left.Score > right.Score:
		result.Winner = models.BattleSideLeft
		left.Winner = true
	case right.Score > left.Score:
		result.Winner = models.BattleSideRight
		right.Winner = true
	default:
		result.Winner = models.BattleSideNone
		result.Tie = true
	}
	return result
}
