package form

// Status tracks where a submission workflow instance currently is. It is
// process-local, owned exclusively by the submission controller; observers
// only read it.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSubmitted
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSubmitted:
		return "submitted"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
