package train

import "fmt"

// Stage is the progress of a training run.
type Stage int

const (
	Configured Stage = iota
	DataLoaded
	Cleaned
	Split
	Fitted
	Evaluated
	Persisted
)

var stageNames = [...]string{
	Configured: "configured",
	DataLoaded: "data_loaded",
	Cleaned:    "cleaned",
	Split:      "split",
	Fitted:     "fitted",
	Evaluated:  "evaluated",
	Persisted:  "persisted",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}
