package port

type JobQueue interface {
	Enqueue(jobID, userID string)
	Cancel(jobID string) bool
}
