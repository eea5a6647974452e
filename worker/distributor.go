package worker

import (
	"context"

	"github.com/hibiken/asynq"
)

type TaskDistributor interface {
	DistributeTaskSendContactEmail(ctx context.Context, payload *PayloadSendContactEmail, opts ...asynq.Option) error
	DistributeTaskSendApplicationEmail(ctx context.Context, payload *PayloadSendApplicationEmail, opts ...asynq.Option) error
}

type RedisTaskDistributor struct {
	logger asynq.Logger
	client *asynq.Client
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt) TaskDistributor {
	client := asynq.NewClient(redisOpt)

	return &RedisTaskDistributor{
		logger: NewLogger(),
		client: client,
	}
}

func (rt *RedisTaskDistributor) enqueue(ctx context.Context, task *asynq.Task) error {
	taskInfo, err := rt.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	rt.logger.Info(
		"message", "enqueued task",
		"type", taskInfo.Type,
		"queue", taskInfo.Queue,
		"max_retry", taskInfo.MaxRetry,
	)

	return nil
}
