package models

const ReadmePlaceholder = "No README available"

// Readme is the rendered README of a repository detail view
type Readme struct {
	Repository  string `json:"repository"`
	Available   bool   `json:"available"`
	Branch      string `json:"branch,omitempty"`
	HTML        string `json:"html,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Reason      string `json:"reason,omitempty"`
}
