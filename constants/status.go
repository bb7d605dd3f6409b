package constants

// JobStatus is the canonical status for rows in extract_job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusRunning   JobStatus = "RUNNING"   // in progress
	JobStatusExtracted JobStatus = "EXTRACTED" // text-based report fully processed
	JobStatusScanned   JobStatus = "SCANNED"   // scanned report, extraction skipped
	JobStatusFailed    JobStatus = "FAILED"    // terminal failure
)
