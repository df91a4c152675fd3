package models

// LanguageShare is one bar segment of a repository's language breakdown
type LanguageShare struct {
	Language   string  `json:"language"`
	Bytes      int     `json:"bytes"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// LanguageBreakdown holds the top languages of a repository by byte count.
// Empty is set when the API reported zero bytes in total.
type LanguageBreakdown struct {
	Top        []LanguageShare `json:"top"`
	TotalBytes int             `json:"total_bytes"`
	Empty      bool            `json:"empty"`
}

// LanguageCard is the per-session state of one repository card's language bar
type LanguageCard struct {
	Repository string             `json:"repository"`
	State      FetchState         `json:"state"`
	Breakdown  *LanguageBreakdown `json:"breakdown,omitempty"`
	Error      string             `json:"error,omitempty"`
}
