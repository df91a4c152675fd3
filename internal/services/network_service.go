package services

import (
	"context"
	"errors"
	"strings"

	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/alimgiray/ghdash/internal/models"
)

type NetworkService struct {
	githubService *GitHubService
}

func NewNetworkService(githubService *GitHubService) *NetworkService {
	return &NetworkService{
		githubService: githubService,
	}
}

// FollowerNetwork builds a graph of the user and the first page of their followers
func (s *NetworkService) FollowerNetwork(ctx context.Context, handle string) (*models.NetworkGraph, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, apperror.ValidationFailed("a GitHub username is required")
	}

	followers, err := s.githubService.ListFollowers(ctx, handle)
	if err != nil {
		if errors.Is(err, apperror.ErrRateLimited) {
			return nil, err
		}
		return nil, apperror.FetchFailed("followers", err)
	}

	return BuildNetwork(handle, followers), nil
}

// BuildNetwork places the user at the centre and links every follower to it
func BuildNetwork(handle string, followers []*models.User) *models.NetworkGraph {
	graph := &models.NetworkGraph{
		Nodes: []models.NetworkNode{{
			ID:      handle,
			HTMLURL: "https://github.com/" + handle,
			Group:   models.NetworkGroupUser,
		}},
		Links: make([]models.NetworkLink, 0, len(followers)),
	}

	for _, follower := range followers {
		if follower.Login == "" || strings.EqualFold(follower.Login, handle) {
			continue
		}
		graph.Nodes = append(graph.Nodes, models.NetworkNode{
			ID:        follower.Login,
			AvatarURL: follower.AvatarURL,
			HTMLURL:   follower.HTMLURL,
			Group:     models.NetworkGroupFollower,
		})
		graph.Links = append(graph.Links, models.NetworkLink{
			Source: follower.Login,
			Target: handle,
		})
	}
	return graph
}
