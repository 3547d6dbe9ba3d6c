package ports

import (
	"context"
	"time"

	"github.com/viniapp/viniapp-node/internal/core/domain"
)

// LookupResult tells whether a pipeline step found its viniapp
type LookupResult int

const (
	LookupFound LookupResult = iota
	LookupNotFound
)

// PromptOutcome is the result of the prompt step
type PromptOutcome int

const (
	PromptApplied PromptOutcome = iota
	PromptSkippedMissingTemplate
)

// PipelineService runs the provisioning steps of a viniapp
type PipelineService interface {
	Execute(ctx context.Context, viniappID int64, step domain.PipelineStep) error
}

// PipelineScheduler queues a step to be run later by a PipelineService
type PipelineScheduler interface {
	Schedule(ctx context.Context, viniappID int64, step domain.PipelineStep) error
}

// Lease is a lock with an expiration. Acquire returns a token that must be passed to Release.
// ok is false when someone else holds the key.
type Lease interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key string, token string) error
}

// ProcessResult describes a finished external command
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// Successful tells if the command exited with code 0 before the timeout
func (r ProcessResult) Successful() bool {
	return r.ExitCode == 0 && !r.TimedOut
}

// ProcessRunner runs an external command in dir with extra environment variables
// appended to the inherited ones. A command that runs and fails is reported in the
// result. An error means the command could not be started.
type ProcessRunner interface {
	Run(ctx context.Context, dir string, env []string, command []string) (*ProcessResult, error)
}
