package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/roecybersecure/site-api/internal/mailer"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

type TaskProcessor interface {
	Start() error
	Close()
	ProcessTaskSendContactEmail(ctx context.Context, task *asynq.Task) error
	ProcessTaskSendApplicationEmail(ctx context.Context, task *asynq.Task) error
}

type RedisTaskProcessor struct {
	server     *asynq.Server
	logger     asynq.Logger
	mailClient mailer.Client
	inboxEmail string
}

// NewRedisTaskProcessor builds the asynq consumer. inboxEmail is where the
// contact and application messages land.
func NewRedisTaskProcessor(redisOpt asynq.RedisClientOpt, mailClient mailer.Client, inboxEmail string) TaskProcessor {
	logger := NewLogger()
	server := asynq.NewServer(redisOpt, asynq.Config{
		Queues: map[string]int{
			QueueCritical: 10,
			QueueDefault:  5,
		},

		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error(
				"message", "failed to process task", "type",
				task.Type(), "payload", task.Payload(),
				"err", err,
			)
		}),
		Concurrency: 10,
		Logger:      logger,
	})

	return &RedisTaskProcessor{
		server:     server,
		logger:     logger,
		mailClient: mailClient,
		inboxEmail: inboxEmail,
	}
}

func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskSendContactEmail, processor.ProcessTaskSendContactEmail)
	mux.HandleFunc(TaskSendApplicationEmail, processor.ProcessTaskSendApplicationEmail)

	return processor.server.Start(mux)
}

func (processor *RedisTaskProcessor) Close() {
	processor.server.Shutdown()
}
