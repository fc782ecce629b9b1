package checker

// SessionState mirrors the backend's session flag. The client never mutates it.
type SessionState struct {
	Initialized  bool `json:"initialized"`
	DriverActive bool `json:"driver_active,omitempty"`
}

// CheckResult is one lookup outcome as reported by the backend.
type CheckResult struct {
	Number     string `json:"number"`
	Registered bool   `json:"registered"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
}

// BatchStatus is the latest snapshot of a backend batch job.
type BatchStatus struct {
	Running  bool          `json:"running"`
	Progress int           `json:"progress"`
	Total    int           `json:"total"`
	Results  []CheckResult `json:"results"`
}

type ResultKind string

const (
	KindSuccess ResultKind = "success"
	KindError   ResultKind = "error"
	KindInfo    ResultKind = "info"
)

// Row is a rendered result line: what the view shows for one number.
type Row struct {
	Number  string
	Message string
	Kind    ResultKind
}
