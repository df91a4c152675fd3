package models

// FetchKind names the lazily fetched resources tracked per session
type FetchKind string

const (
	FetchKindLanguages FetchKind = "languages"
	FetchKindDirectory FetchKind = "directory"
)

// FetchState is the lifecycle of one lazy fetch
type FetchState string

const (
	FetchStateUnfetched FetchState = "unfetched"
	FetchStatePending   FetchState = "pending"
	FetchStateDone      FetchState = "done"
	FetchStateFailed    FetchState = "failed"
)

// FetchRecord is the stored state of one lazy fetch for one session
type FetchRecord struct {
	SessionID string
	Kind      FetchKind
	Key       string
	State     FetchState
	Expanded  bool
	Payload   []byte
	Error     string
}

// IsPending checks if the fetch is in flight
func (r *FetchRecord) IsPending() bool {
	return r.State == FetchStatePending
}

// IsDone checks if the fetch completed
func (r *FetchRecord) IsDone() bool {
	return r.State == FetchStateDone
}

// IsFailed checks if the fetch failed
func (r *FetchRecord) IsFailed() bool {
	return r.State == FetchStateFailed
}
