package services

import (
	"math"
	"sort"

	"github.com/alimgiray/ghdash/internal/models"
)

const (
	noLanguageColor      = "#ff6666ff"
	unknownLanguageColor = "#821919ff"
	topLanguageCount     = 3
)

var languageColors = map[string]string{
	"JavaScript": "#f7df1e",
	"Python":     "#3572A5",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"TypeScript": "#2b7489",
	"Shell":      "#89e051",
}

type LanguageService struct{}

func NewLanguageService() *LanguageService {
	return &LanguageService{}
}

// Color returns the display color of a language
func (s *LanguageService) Color(language string) string {
	if language == "" {
		return noLanguageColor
	}
	if color, ok := languageColors[language]; ok {
		return color
	}
	return unknownLanguageColor
}

// Breakdown keeps the three largest languages by bytes with their share of the total
func (s *LanguageService) Breakdown(languages map[string]int) *models.LanguageBreakdown {
	total := 0
	for _, bytes := range languages {
		total += bytes
	}

	if total == 0 {
		return &models.LanguageBreakdown{Top: []models.LanguageShare{}, Empty: true}
	}

	shares := make([]models.LanguageShare, 0, len(languages))
	for language, bytes := range languages {
		shares = append(shares, models.LanguageShare{
			Language:   language,
			Bytes:      bytes,
			Percentage: roundToTenth(float64(bytes) / float64(total) * 100),
			Color:      s.Color(language),
		})
	}

	// Map iteration is random, so ties are broken by name
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Bytes != shares[j].Bytes {
			return shares[i].Bytes > shares[j].Bytes
		}
		return shares[i].Language < shares[j].Language
	})

	if len(shares) > topLanguageCount {
		shares = shares[:topLanguageCount]
	}

	return &models.LanguageBreakdown{
		Top:        shares,
		TotalBytes: total,
	}
}

func roundToTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
