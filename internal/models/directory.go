package models

const (
	EntryTypeFile = "file"
	EntryTypeDir  = "dir"
)

// DirectoryEntry is one item of a repository directory listing
type DirectoryEntry struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Type    string `json:"type"`
	Size    int    `json:"size"`
	HTMLURL string `json:"html_url,omitempty"`
}

// IsDir reports whether the entry is a directory
func (e DirectoryEntry) IsDir() bool {
	return e.Type == EntryTypeDir
}

// NodeState is the lifecycle of one directory node in the file browser
type NodeState string

const (
	NodeStateCollapsed NodeState = "collapsed"
	NodeStateExpanding NodeState = "expanding"
	NodeStateExpanded  NodeState = "expanded"
	NodeStateFailed    NodeState = "failed"
)

// DirectoryNode is a repository path together with its cached listing
type DirectoryNode struct {
	Repository string           `json:"repository"`
	Path       string           `json:"path"`
	State      NodeState        `json:"state"`
	Entries    []DirectoryEntry `json:"entries,omitempty"`
	Error      string           `json:"error,omitempty"`
}
