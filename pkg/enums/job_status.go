package enums

// JobStatus names the scheduling states a job moves through. The column is an
// open string and arbitrary values are accepted on create/update; these are the
// canonical states the API and clients agree on.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
)

// String implements fmt.Stringer.
func (s JobStatus) String() string {
	return string(s)
}
