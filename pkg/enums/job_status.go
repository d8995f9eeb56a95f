package enums

import "fmt"

// JobStatus describes the lifecycle of one ingestion run.
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

var validJobStatuses = []JobStatus{
	JobStatusPending,
	JobStatusCompleted,
	JobStatusFailed,
}

// String implements fmt.Stringer.
func (j JobStatus) String() string {
	return string(j)
}

// IsValid reports whether the value is a known JobStatus.
func (j JobStatus) IsValid() bool {
	for _, candidate := range validJobStatuses {
		if candidate == j {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the run has finished, successfully or not.
func (j JobStatus) IsTerminal() bool {
	return j == JobStatusCompleted || j == JobStatusFailed
}

// ParseJobStatus converts raw input into a JobStatus.
func ParseJobStatus(value string) (JobStatus, error) {
	for _, candidate := range validJobStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job status %q", value)
}
