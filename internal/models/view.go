package models

// RepositoryCard is a repository as shown in the grid
type RepositoryCard struct {
	*Repository
	LanguageColor string `json:"language_color"`
}

// RepositoryListing is a filtered view over the current result set
type RepositoryListing struct {
	Criteria     FilterCriteria   `json:"criteria"`
	Repositories []RepositoryCard `json:"repositories"`
	Total        int              `json:"total"`
	Matched      int              `json:"matched"`
	EmptyReason  EmptyReason      `json:"empty_reason,omitempty"`
}

// ProfileView is the response of a primary query
type ProfileView struct {
	User *User `json:"user"`
	ProfileSummary
	Listing RepositoryListing `json:"listing"`
}
