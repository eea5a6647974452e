package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/roecybersecure/site-api/internal/mailer"
)

const TaskSendContactEmail = "task:send_contact_email"

type PayloadSendContactEmail struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (rt *RedisTaskDistributor) DistributeTaskSendContactEmail(ctx context.Context, payload *PayloadSendContactEmail, opts ...asynq.Option) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	return rt.enqueue(ctx, asynq.NewTask(TaskSendContactEmail, jsonPayload, opts...))
}

func (processor *RedisTaskProcessor) ProcessTaskSendContactEmail(ctx context.Context, task *asynq.Task) error {
	var payload PayloadSendContactEmail

	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	return processor.mailClient.Send(&mailer.MailOption{
		To:           []string{processor.inboxEmail},
		TemplateFile: mailer.ContactEmailTemplate,
	}, struct {
		Name    string
		Email   string
		Subject string
		Message string
	}{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Message: payload.Message,
	})
}
