package models

const FollowerPageSize = 20

const (
	NetworkGroupUser     = 0
	NetworkGroupFollower = 1
)

type NetworkNode struct {
	ID        string `json:"id"`
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
	Group     int    `json:"group"`
}

type NetworkLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// NetworkGraph is the follower network of one user, shaped for a force layout
type NetworkGraph struct {
	Nodes []NetworkNode `json:"nodes"`
	Links []NetworkLink `json:"links"`
}
