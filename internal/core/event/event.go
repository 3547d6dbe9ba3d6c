package event

import (
	"encoding/json"

	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/pkg/pubsub"
)

const (
	PipelineStepEvent = "pipelineStepEvent" // PipelineStepEvent asks a worker to run a provisioning step
)

// PipelineStep defines the pipelineStep data
type PipelineStep struct {
	ViniappID int64               `json:"viniappID"`
	Step      domain.PipelineStep `json:"step"`
}

// Marshal marshals the event into a pubsub.Message
func (ev *PipelineStep) Marshal() (msg pubsub.Message, err error) {
	return json.Marshal(ev)
}

// Unmarshal creates an event from that message
func (ev *PipelineStep) Unmarshal(msg pubsub.Message) error {
	if err := json.Unmarshal(msg, ev); err != nil {
		return err
	}
	_, err := domain.ParsePipelineStep(string(ev.Step))
	return err
}
