// Package report collects per-step outcomes for a single run. Nothing is
// persisted, the summary exists only to be printed and logged.
package report

import (
	"github.com/samber/lo"

	"github.com/guangzhiyao/myzsh/internal/audit"
	"github.com/guangzhiyao/myzsh/internal/logger"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusWarned  Status = "warned"
	StatusFailed  Status = "failed"
)

// StepResult is the outcome of one provisioning step.
type StepResult struct {
	Name   string
	Status Status
	Detail string
}

// Report accumulates step results in execution order.
type Report struct {
	steps []StepResult
}

func New() *Report {
	return &Report{}
}

// Add records a step outcome and mirrors it into the audit log.
func (r *Report) Add(name string, status Status, detail string) {
	r.steps = append(r.steps, StepResult{Name: name, Status: status, Detail: detail})
	audit.Step(name, string(status), detail)
}

func (r *Report) Ok(name string)                { r.Add(name, StatusOK, "") }
func (r *Report) Skipped(name, detail string)   { r.Add(name, StatusSkipped, detail) }
func (r *Report) Warned(name string, err error) { r.Add(name, StatusWarned, errDetail(err)) }
func (r *Report) Failed(name string, err error) { r.Add(name, StatusFailed, errDetail(err)) }

// HasFailures reports whether any step failed hard.
func (r *Report) HasFailures() bool {
	return lo.SomeBy(r.steps, func(s StepResult) bool { return s.Status == StatusFailed })
}

// Steps returns the recorded results in execution order.
func (r *Report) Steps() []StepResult {
	return r.steps
}

// Print writes the human-readable run summary.
func (r *Report) Print() {
	if len(r.steps) == 0 {
		return
	}

	logger.Info("\nSummary:\n")
	for _, s := range r.steps {
		line := "  %-28s %s"
		switch s.Status {
		case StatusOK:
			logger.Success(line+"\n", s.Name, s.Status)
		case StatusFailed:
			logger.Error(line+"\n", s.Name, s.Status)
		case StatusWarned:
			logger.Warn(line+" (%s)\n", s.Name, s.Status, s.Detail)
		default:
			logger.Info(line+" (%s)\n", s.Name, s.Status, s.Detail)
		}
	}

	counts := lo.CountValuesBy(r.steps, func(s StepResult) Status { return s.Status })
	logger.Info("\n%d ok, %d skipped, %d warned, %d failed\n",
		counts[StatusOK], counts[StatusSkipped], counts[StatusWarned], counts[StatusFailed])
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
