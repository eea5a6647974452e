package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/roecybersecure/site-api/internal/mailer"
)

const TaskSendApplicationEmail = "task:send_application_email"

type PayloadSendApplicationEmail struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
	Message   string `json:"message"`
	ResumeURL string `json:"resume_url"`
}

func (rt *RedisTaskDistributor) DistributeTaskSendApplicationEmail(ctx context.Context, payload *PayloadSendApplicationEmail, opts ...asynq.Option) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	return rt.enqueue(ctx, asynq.NewTask(TaskSendApplicationEmail, jsonPayload, opts...))
}

func (processor *RedisTaskProcessor) ProcessTaskSendApplicationEmail(ctx context.Context, task *asynq.Task) error {
	var payload PayloadSendApplicationEmail

	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	return processor.mailClient.Send(&mailer.MailOption{
		To:           []string{processor.inboxEmail},
		TemplateFile: mailer.ApplicationEmailTemplate,
	}, struct {
		FirstName string
		LastName  string
		Email     string
		Phone     string
		Position  string
		Message   string
		ResumeURL string
	}{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Position:  payload.Position,
		Message:   payload.Message,
		ResumeURL: payload.ResumeURL,
	})
}
