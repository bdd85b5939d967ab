package submit

// State enumerates the submission lifecycle.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Display messages surfaced through Status.Message.
const (
	MessageNoCollection = "Please select a collection"
	MessageSuccess      = "Submission successful!"
	MessageFailed       = "Upload failed."
)

// Tone values hint how a status line should be styled.
const (
	ToneNone        = ""
	ToneAffirmative = "affirmative"
	ToneNegative    = "negative"
)

// Status is the outcome of the most recent submission attempt. Seq is the
// attempt sequence number that produced it; zero means no attempt yet. Err
// carries the underlying cause for errors.Is/As and is never serialised.
type Status struct {
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
	Seq     uint64 `json:"seq"`
	Err     error  `json:"-"`
}

// Idle reports whether no outcome is being shown.
func (s Status) Idle() bool {
	return s.State == "" || s.State == StateIdle
}

// Tone returns ToneAffirmative for success, ToneNegative for errors and
// ToneNone otherwise.
func (s Status) Tone() string {
	switch s.State {
	case StateSuccess:
		return ToneAffirmative
	case StateError:
		return ToneNegative
	default:
		return ToneNone
	}
}

func idleStatus() Status {
	return Status{State: StateIdle}
}
