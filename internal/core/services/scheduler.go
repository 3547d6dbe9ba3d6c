package services

import (
	"context"

	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/core/event"
	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/pkg/pubsub"
)

type pubSubScheduler struct {
	publisher pubsub.Publisher
}

// NewPubSubScheduler schedules pipeline steps by publishing event.PipelineStepEvent
func NewPubSubScheduler(publisher pubsub.Publisher) ports.PipelineScheduler {
	return &pubSubScheduler{publisher: publisher}
}

func (s *pubSubScheduler) Schedule(ctx context.Context, viniappID int64, step domain.PipelineStep) error {
	return s.publisher.Publish(ctx, event.PipelineStepEvent, &event.PipelineStep{ViniappID: viniappID, Step: step})
}
