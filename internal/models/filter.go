package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	LanguageAll   = "All"
	LanguageOther = "Other"
)

// KnownLanguages are the languages offered as explicit filter options
var KnownLanguages = []string{"JavaScript", "HTML", "CSS", "Python", "TypeScript", "Shell"}

// IsKnownLanguage reports whether language is one of KnownLanguages
func IsKnownLanguage(language string) bool {
	for _, known := range KnownLanguages {
		if known == language {
			return true
		}
	}
	return false
}

// FilterCriteria selects a view over the current result set
type FilterCriteria struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	MinStars int    `json:"min_stars"`
}

// DefaultCriteria matches every repository
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Language: LanguageAll}
}

// ParseMinStars maps unset, non-numeric or negative input to 0.
// Fractions round up and values beyond the int range saturate.
func ParseMinStars(value string) int {
	stars, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	if math.IsNaN(stars) || stars <= 0 {
		return 0
	}
	if stars >= math.MaxInt {
		return math.MaxInt
	}
	return int(math.Ceil(stars))
}

// EmptyReason tells an empty view apart from an empty result set
type EmptyReason string

const (
	EmptyReasonNone           EmptyReason = ""
	EmptyReasonNoRepositories EmptyReason = "no_repositories"
	EmptyReasonNoMatches      EmptyReason = "no_matches"
)
