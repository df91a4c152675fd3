package services

import (
	"testing"
	"time"

	"github.com/alimgiray/ghdash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook(t *testing.T) {
	updated := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)
	view := &models.ProfileView{
		User: &models.User{Login: "octocat"},
		ProfileSummary: models.ProfileSummary{
			Score:  84,
			Tier:   models.TierMedium,
			Badges: []models.Badge{models.BadgeCodeMachine, models.BadgeVeteran},
		},
		Listing: models.RepositoryListing{
			Repositories: []models.RepositoryCard{
				{Repository: &models.Repository{Name: "hello", Language: "Go", Stars: 12, Forks: 3, UpdatedAt: updated, HTMLURL: "https://github.com/octocat/hello"}},
				{Repository: &models.Repository{Name: "notes"}},
			},
			Total:   5,
			Matched: 2,
		},
	}

	buf, err := NewExportService().Workbook(view)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RepositoriesSheet, ProfileSheet}, f.GetSheetList())

	rows, err := f.GetRows(RepositoriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Language", "Stars", "Forks", "Updated", "URL"}, rows[0])
	assert.Equal(t, []string{"hello", "Go", "12", "3", "2025-03-02T10:00:00Z", "https://github.com/octocat/hello"}, rows[1])
	assert.Equal(t, "notes", rows[2][0])

	badges, err := f.GetCellValue(ProfileSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Code Machine, Veteran", badges)

	score, err := f.GetCellValue(ProfileSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "84", score)
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "octocat-repositories.xlsx", NewExportService().FileName("octocat"))
}
