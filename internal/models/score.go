package models

// Tier is the coarse display bucket of a score
type Tier string

const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

// Color returns the display color of the tier
func (t Tier) Color() string {
	switch t {
	case TierHigh:
		return "#22c55e"
	case TierMedium:
		return "#eab308"
	default:
		return "#ef4444"
	}
}

// Badge is a fixed icon and label pair awarded by a predicate
type Badge struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

var (
	BadgeCodeMachine = Badge{Icon: "💻", Label: "Code Machine"}
	BadgeRisingStar  = Badge{Icon: "🌟", Label: "Rising Star"}
	BadgeVeteran     = Badge{Icon: "🏆", Label: "Veteran"}
	BadgeOpenToWork  = Badge{Icon: "💼", Label: "Open to Work"}
)

// ProfileSummary holds the values derived from a user and their repositories.
// It is recomputed for every response and never stored.
type ProfileSummary struct {
	Score     int     `json:"score"`
	Tier      Tier    `json:"tier"`
	TierColor string  `json:"tier_color"`
	Badges    []Badge `json:"badges"`
}
