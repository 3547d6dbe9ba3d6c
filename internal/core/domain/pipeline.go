package domain

import "fmt"

// PipelineStep is one of the provisioning stages run for every new viniapp
type PipelineStep string

const (
	PipelineStepScaffold PipelineStep = "scaffold"
	PipelineStepPrompt   PipelineStep = "prompt"
	PipelineStepCodegen  PipelineStep = "codegen"
)

// FirstPipelineStep is enqueued right after a viniapp is created
const FirstPipelineStep = PipelineStepScaffold

// ParsePipelineStep returns the step named s
func ParsePipelineStep(s string) (PipelineStep, error) {
	switch step := PipelineStep(s); step {
	case PipelineStepScaffold, PipelineStepPrompt, PipelineStepCodegen:
		return step, nil
	default:
		return "", fmt.Errorf("unknown pipeline step <%s>", s)
	}
}

// Accepts tells whether the step can run for a viniapp in the given status.
// Events delivered twice or out of order fail this check.
func (p PipelineStep) Accepts(status ViniappStatus) bool {
	switch p {
	case PipelineStepScaffold:
		return status == ViniappStatusUnset
	case PipelineStepPrompt:
		return status == ViniappStatusRepositoryInitialized
	case PipelineStepCodegen:
		return status == ViniappStatusRepositoryInitialized || status == ViniappStatusPromptCreated
	}
	return false
}

// Next returns the step that follows p. ok is false for the last step.
func (p PipelineStep) Next() (next PipelineStep, ok bool) {
	switch p {
	case PipelineStepScaffold:
		return PipelineStepPrompt, true
	case PipelineStepPrompt:
		return PipelineStepCodegen, true
	}
	return "", false
}

// SuccessStatus is the status stored when the step completes
func (p PipelineStep) SuccessStatus() ViniappStatus {
	switch p {
	case PipelineStepScaffold:
		return ViniappStatusRepositoryInitialized
	case PipelineStepPrompt:
		return ViniappStatusPromptCreated
	case PipelineStepCodegen:
		return ViniappStatusDirectoryInitialized
	}
	return ViniappStatusFailed
}
