package models

type BattleSide string

const (
	BattleSideNone  BattleSide = ""
	BattleSideLeft  BattleSide = "left"
	BattleSideRight BattleSide = "right"
)

// Contender is one participant of a comparison
type Contender struct {
	Profile
	ProfileSummary
	Winner bool `json:"winner"`
}

// BattleResult compares two profiles; Winner is empty on a tie
type BattleResult struct {
	Left   *Contender `json:"left"`
	Right  *Contender `json:"right"`
	Winner BattleSide `json:"winner"`
	Tie    bool       `json:"tie"`
}
