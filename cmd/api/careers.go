package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/form/v4"
	"github.com/hibiken/asynq"
	"github.com/oklog/ulid/v2"
	"github.com/roecybersecure/site-api/internal/fileobject"
	"github.com/roecybersecure/site-api/worker"
)

var formDecoder = form.NewDecoder()

type applicationRequest struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Phone     string `form:"phone"`
	Position  string `form:"position" validate:"required"`
	Message   string `form:"message" validate:"required"`
}

// submitApplication accepts the careers multipart form. The resume is
// optional; when present it must be a real PDF under the size cap, and it is
// stored before the notification email is enqueued.
func (app *application) submitApplication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(int64(fileobject.MaxResumeSize) + 1*fileobject.MB); err != nil {
		app.badRequestResponse(w, r, errors.New("invalid multipart form"))
		return
	}

	var fields applicationRequest
	if err := formDecoder.Decode(&fields, r.MultipartForm.Value); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	fields.FirstName = sanitizeText(fields.FirstName)
	fields.LastName = sanitizeText(fields.LastName)
	fields.Email = sanitizeText(fields.Email)
	fields.Phone = sanitizeText(fields.Phone)
	fields.Position = sanitizeText(fields.Position)
	fields.Message = sanitizeText(fields.Message)

	if err := validate.Struct(fields); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	resumeURL := ""

	file, header, err := r.FormFile("resume")
	switch {
	case err == nil:
		defer file.Close()

		content, err := io.ReadAll(io.LimitReader(file, int64(fileobject.MaxResumeSize)+1))
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		if err := validateResume(content, header.Header.Get("Content-Type")); err != nil {
			app.badRequestResponse(w, r, errors.New(app.localize(r, "careers.resumeInvalid")))
			return
		}

		fileName := newResumeFileName()
		resumeURL, err = app.fileStore.UploadFile(r.Context(), fileobject.ResumeBucket, fileName, bytes.NewReader(content))
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

	case errors.Is(err, http.ErrMissingFile):
		// resume is optional

	default:
		app.badRequestResponse(w, r, err)
		return
	}

	payload := &worker.PayloadSendApplicationEmail{
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		Email:     fields.Email,
		Phone:     fields.Phone,
		Position:  fields.Position,
		Message:   fields.Message,
		ResumeURL: resumeURL,
	}

	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := app.taskDistributor.DistributeTaskSendApplicationEmail(ctx, payload,
			asynq.Queue(worker.QueueDefault),
			asynq.MaxRetry(3),
		)
		if err != nil {
			app.logger.Errorw("failed to enqueue application email", "error", err)
		}
	})

	app.successResponse(w, http.StatusOK, envelope{
		"success": true,
		"message": app.localize(r, "careers.sent"),
	})
}

// validateResume rejects anything that is not a non-empty PDF within the
// size cap. The %PDF magic check catches renamed files the content-type
// header would let through.
func validateResume(content []byte, contentType string) error {
	if len(content) == 0 {
		return errors.New("resume file is empty")
	}

	if len(content) > fileobject.MaxResumeSize {
		return errors.New("resume file exceeds the size limit")
	}

	if !strings.HasPrefix(contentType, "application/pdf") {
		return errors.New("resume must be a PDF file")
	}

	if !bytes.HasPrefix(content, []byte("%PDF")) {
		return errors.New("resume is not a valid PDF file")
	}

	return nil
}

func newResumeFileName() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String() + ".pdf"
}
