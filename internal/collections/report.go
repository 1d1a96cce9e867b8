package collections

import "time"

// Status of one collection after a reconciliation pass.
type Status string

const (
	StatusSynced    Status = "synced"    // changes applied
	StatusUnchanged Status = "unchanged" // already in the desired state
	StatusPlanned   Status = "planned"   // dry run, changes computed but not applied
	StatusFailed    Status = "failed"    // compile or server error, see Err
	StatusSkipped   Status = "skipped"   // not attempted, see Err
)

// Result describes what happened to one collection.
type Result struct {
	Name     string
	Status   Status
	Created  bool // collection was (or would be) created
	Desired  int  // items the filter selects
	Observed int  // items currently in the collection
	Adds     int
	Removes  int
	Err      error
}

// Report is the outcome of one reconciliation pass.
type Report struct {
	Started  time.Time
	Finished time.Time
	DryRun   bool
	Results  []Result
}

// Failed counts the collections that did not reach their desired state.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Duration of the whole pass.
func (r *Report) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}
