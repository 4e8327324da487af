package coordinator

// Messages are the fallback texts shown when the backend supplies none,
// and the batch summaries.
type Messages struct {
	DeleteSucceeded   string
	DeleteFailed      string
	DeleteUnavailable string
	// BatchSucceeded is a format string receiving the number of students.
	BatchSucceeded string
	BatchPartial   string
	BatchFailed    string
}

func DefaultMessages() Messages {
	return Messages{
		DeleteSucceeded:   "Student deleted",
		DeleteFailed:      "Failed to delete student",
		DeleteUnavailable: "Failed to delete student, please try again later",
		BatchSucceeded:    "Deleted %d students",
		BatchPartial:      "Some students could not be deleted; check whether they still have related records",
		BatchFailed:       "Batch delete failed",
	}
}
