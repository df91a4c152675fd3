package models

import "time"

// Repository is a snapshot of one entry of a user's repository page
type Repository struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Owner         string    `json:"owner"`
	Description   string    `json:"description,omitempty"`
	Language      string    `json:"language,omitempty"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	UpdatedAt     time.Time `json:"updated_at"`
	DefaultBranch string    `json:"default_branch"`
	HTMLURL       string    `json:"html_url"`
}

// RepositoryPageSize is the only page requested; larger profiles are truncated
const RepositoryPageSize = 100

// Profile is the primary result set of a query: a user and their first repository page
type Profile struct {
	User         *User         `json:"user"`
	Repositories []*Repository `json:"repositories"`
}

// FindRepository looks a repository up by owner and name
func (p *Profile) FindRepository(owner, name string) *Repository {
	if p == nil {
		return nil
	}
	for _, repo := range p.Repositories {
		if repo.Owner == owner && repo.Name == name {
			return repo
		}
	}
	return nil
}
