package services

import "github.com/alimgiray/ghdash/internal/models"

const (
	codeMachineRepoThreshold    = 20
	risingStarFollowerThreshold = 50
	veteranYears                = 3
)

type BadgeService struct {
	scoreService *ScoreService
}

func NewBadgeService(scoreService *ScoreService) *BadgeService {
	return &BadgeService{
		scoreService: scoreService,
	}
}

// Badges returns every badge the user qualifies for, in priority order
func (s *BadgeService) Badges(user *models.User, repos []*models.Repository) []models.Badge {
	badges := []models.Badge{}
	if user == nil {
		return badges
	}

	if user.PublicRepos > codeMachineRepoThreshold {
		badges = append(badges, models.BadgeCodeMachine)
	}
	if user.Followers > risingStarFollowerThreshold {
		badges = append(badges, models.BadgeRisingStar)
	}
	if s.scoreService.AccountAgeYears(user) >= veteranYears {
		badges = append(badges, models.BadgeVeteran)
	}
	if user.Hireable {
		badges = append(badges, models.BadgeOpenToWork)
	}

	return badges
}
