package mule

// Outcome is the terminal state of a download.
type Outcome int

const (
	// Pending means the download has not finished yet.
	Pending Outcome = iota
	// Succeeded means the file is complete and passed the integrity check.
	Succeeded
	// Failed means the probe failed or the attempt budget is exhausted.
	Failed
	// Cancelled means the caller interrupted the download.
	// The partial file is kept for a later run to resume from.
	Cancelled
)

func (o Outcome) String() string {
	m := map[Outcome]string{
		Pending:   "Pending",
		Succeeded: "Succeeded",
		Failed:    "Failed",
		Cancelled: "Cancelled",
	}
	return m[o]
}
