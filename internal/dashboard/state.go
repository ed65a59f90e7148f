// Package dashboard turns evaluation results into the presentation state read
// by the dashboard views. A load cycle always ends in exactly one of Ready,
// Degraded or Failed.
package dashboard

import (
	"time"

	"github.com/idlab-discover/fraudboard-cli/internal/results"
)

// Status is the discriminator of a State.
type Status string

const (
	StatusLoading  Status = "loading"
	StatusReady    Status = "ready"
	StatusDegraded Status = "degraded"
	StatusFailed   Status = "failed"
)

// State is one of Loading, Ready, Degraded or Failed.
type State interface {
	Status() Status
}

// Loading is the state before a cycle has produced a result.
type Loading struct{}

// Ready carries real, validated results.
type Ready struct {
	Metrics results.PerformanceMetrics
	Curve   results.Curve
}

// Degraded carries fallback results and the reason real results were not shown.
type Degraded struct {
	Metrics results.PerformanceMetrics
	Curve   results.Curve
	Warning string
}

// Failed means nothing can be rendered.
type Failed struct {
	Error string
}

func (Loading) Status() Status  { return StatusLoading }
func (Ready) Status() Status    { return StatusReady }
func (Degraded) Status() Status { return StatusDegraded }
func (Failed) Status() Status   { return StatusFailed }

// ViewModel is the read-only projection handed to views. Values returned by
// the Machine are copies; mutating them has no effect on the Machine.
type ViewModel struct {
	Status  Status                      `json:"status"`
	Metrics *results.PerformanceMetrics `json:"metrics,omitempty"`
	Curve   results.Curve               `json:"curve,omitempty"`
	Warning string                      `json:"warning,omitempty"`
	Error   string                      `json:"error,omitempty"`

	CycleID    string    `json:"cycle_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
	Refreshing bool      `json:"refreshing,omitempty"`
}

// Project converts a State into a ViewModel.
func Project(s State) ViewModel {
	switch st := s.(type) {
	case Ready:
		m := st.Metrics
		return ViewModel{Status: StatusReady, Metrics: &m, Curve: st.Curve.Clone()}
	case Degraded:
		m := st.Metrics
		return ViewModel{Status: StatusDegraded, Metrics: &m, Curve: st.Curve.Clone(), Warning: st.Warning}
	case Failed:
		return ViewModel{Status: StatusFailed, Error: st.Error}
	default:
		return ViewModel{Status: StatusLoading}
	}
}

// Clone returns a deep copy.
func (v ViewModel) Clone() ViewModel {
	out := v
	if v.Metrics != nil {
		m := *v.Metrics
		out.Metrics = &m
	}
	out.Curve = v.Curve.Clone()
	return out
}

// Terminal reports whether the view model is the outcome of a finished cycle.
func (v ViewModel) Terminal() bool { return v.Status != StatusLoading && v.Status != "" }

// HasData reports whether there is something to plot.
func (v ViewModel) HasData() bool { return v.Metrics != nil && len(v.Curve) > 0 }
