package syncer

import "time"

// PhaseReport counts what one phase did during a cycle.
type PhaseReport struct {
	Name     string        `json:"name"`
	Pages    int           `json:"pages"`
	Upserted int           `json:"upserted"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// OK reports whether the phase walked every page.
func (r PhaseReport) OK() bool {
	return r.Error == ""
}

// ProjectionReport is the outcome of the rebuild closing a cycle.
type ProjectionReport struct {
	Published bool   `json:"published"`
	Groups    int    `json:"groups"`
	Error     string `json:"error,omitempty"`
}

// CycleReport summarizes one sync cycle.
type CycleReport struct {
	ID         string            `json:"id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Phases     []PhaseReport     `json:"phases"`
	Projection *ProjectionReport `json:"projection,omitempty"`
	Cancelled  bool              `json:"cancelled"`
}

// Phase returns the report of the named phase, if it ran.
func (r *CycleReport) Phase(name string) (PhaseReport, bool) {
	for _, p := range r.Phases {
		if p.Name == name {
			return p, true
		}
	}
	return PhaseReport{}, false
}
