package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/alimgiray/ghdash/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	RepositoriesSheet = "Repositories"
	ProfileSheet      = "Profile"
)

var repositoryColumns = []interface{}{"Name", "Language", "Stars", "Forks", "Updated", "URL"}

// ExportService writes profile views as XLSX workbooks in memory
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Workbook builds a workbook with the filtered repositories and the profile summary
func (s *ExportService) Workbook(view *models.ProfileView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RepositoriesSheet); err != nil {
		return nil, fmt.Errorf("failed to name repositories sheet: %w", err)
	}
	if err := s.writeRepositories(f, view.Listing.Repositories); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(ProfileSheet); err != nil {
		return nil, fmt.Errorf("failed to create profile sheet: %w", err)
	}
	if err := s.writeProfile(f, view); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// FileName is the attachment name of an export for handle
func (s *ExportService) FileName(handle string) string {
	return fmt.Sprintf("%s-repositories.xlsx", handle)
}

func (s *ExportService) writeRepositories(f *excelize.File, cards []models.RepositoryCard) error {
	if err := f.SetSheetRow(RepositoriesSheet, "A1", &repositoryColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, card := range cards {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		updated := ""
		if !card.UpdatedAt.IsZero() {
			updated = card.UpdatedAt.UTC().Format(time.RFC3339)
		}
		row := []interface{}{card.Name, card.Language, card.Stars, card.Forks, updated, card.HTMLURL}
		if err := f.SetSheetRow(RepositoriesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s: %w", card.Name, err)
		}
	}
	return nil
}

func (s *ExportService) writeProfile(f *excelize.File, view *models.ProfileView) error {
	labels := make([]string, 0, len(view.Badges))
	for _, badge := range view.Badges {
		labels = append(labels, badge.Label)
	}

	rows := [][]interface{}{
		{"Login", view.User.Login},
		{"Score", view.Score},
		{"Tier", string(view.Tier)},
		{"Badges", strings.Join(labels, ", ")},
		{"Repositories shown", view.Listing.Matched},
		{"Repositories loaded", view.Listing.Total},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ProfileSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write profile row: %w", err)
		}
	}
	return nil
}
