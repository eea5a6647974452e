package main

import (
	"context"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/roecybersecure/site-api/worker"
)

type contactMessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (app *application) submitContactMessage(w http.ResponseWriter, r *http.Request) {
	var form contactMessageRequest

	if err := app.readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := validate.Struct(form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	payload := &worker.PayloadSendContactEmail{
		Name:    sanitizeText(form.Name),
		Email:   sanitizeText(form.Email),
		Subject: sanitizeText(form.Subject),
		Message: sanitizeText(form.Message),
	}

	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := app.taskDistributor.DistributeTaskSendContactEmail(ctx, payload,
			asynq.Queue(worker.QueueDefault),
			asynq.MaxRetry(3),
		)
		if err != nil {
			app.logger.Errorw("failed to enqueue contact email", "error", err)
		}
	})

	app.successResponse(w, http.StatusOK, envelope{
		"success": true,
		"message": app.localize(r, "contact.sent"),
	})
}
