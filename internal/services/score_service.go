package services

import (
	"time"

	"github.com/alimgiray/ghdash/internal/models"
)

const (
	profileFieldPoints = 5
	followersPerPoint  = 10
	pointsPerRepo      = 2
	pointsPerYear      = 10
	starsPerPoint      = 5
	forksPerPoint      = 10

	mediumTierThreshold = 50
	highTierThreshold   = 150
)

type ScoreService struct {
	now func() time.Time
}

func NewScoreService() *ScoreService {
	return &ScoreService{now: time.Now}
}

// NewScoreServiceWithClock creates a score service evaluated at the instant returned by now
func NewScoreServiceWithClock(now func() time.Time) *ScoreService {
	return &ScoreService{now: now}
}

// CalculateScore computes the profile score of a user and their repository page
func (s *ScoreService) CalculateScore(user *models.User, repos []*models.Repository) int {
	if user == nil {
		return 0
	}

	score := 0
	if user.Bio != "" {
		score += profileFieldPoints
	}
	if user.Location != "" {
		score += profileFieldPoints
	}
	if user.Blog != "" {
		score += profileFieldPoints
	}

	score += user.Followers / followersPerPoint
	score += user.PublicRepos * pointsPerRepo
	score += s.AccountAgeYears(user) * pointsPerYear

	if len(repos) > 0 {
		totalStars, totalForks := 0, 0
		for _, repo := range repos {
			totalStars += repo.Stars
			totalForks += repo.Forks
		}
		score += totalStars/starsPerPoint + totalForks/forksPerPoint
	}

	return score
}

// AccountAgeYears counts calendar years between account creation and now.
// A creation date in the future counts as zero years.
func (s *ScoreService) AccountAgeYears(user *models.User) int {
	years := s.now().Year() - user.CreatedAt.Year()
	if years < 0 {
		return 0
	}
	return years
}

// Tier maps a score to its display bucket
func (s *ScoreService) Tier(score int) models.Tier {
	switch {
	case score >= highTierThreshold:
		return models.TierHigh
	case score >= mediumTierThreshold:
		return models.TierMedium
	default:
		return models.TierLow
	}
}
