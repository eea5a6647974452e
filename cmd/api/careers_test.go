package main

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/roecybersecure/site-api/internal/fileobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicationForm(t *testing.T, resume []byte, resumeContentType string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"firstName": "A",
		"lastName":  "B",
		"email":     "a@b.com",
		"phone":     "+33612345678",
		"position":  "Security Analyst",
		"message":   "I would like to join the team.",
	}
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}

	if resume != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="resume"; filename="resume.pdf"`)
		header.Set("Content-Type", resumeContentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(resume))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func postApplication(t *testing.T, app *application, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/careers/apply", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept-Language", "en")
	req.RemoteAddr = "203.0.113.10:4000"

	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)
	return rec
}

func TestSubmitApplicationWithResume(t *testing.T) {
	t.Parallel()

	app, distributor := newTestApplication(t)
	app.fileStore = &fileobject.FileSystemStorage{
		BasePath: t.TempDir(),
		BaseURL:  "https://files.test",
	}

	body, contentType := applicationForm(t, []byte("%PDF-1.7 resume content"), "application/pdf")
	rec := postApplication(t, app, body, contentType)

	require.Equal(t, http.StatusOK, rec.Code)
	app.wg.Wait()

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, int64(1), distributor.applications.Load())
}

func TestSubmitApplicationWithoutResume(t *testing.T) {
	t.Parallel()

	app, distributor := newTestApplication(t)

	body, contentType := applicationForm(t, nil, "")
	rec := postApplication(t, app, body, contentType)

	require.Equal(t, http.StatusOK, rec.Code)
	app.wg.Wait()
	assert.Equal(t, int64(1), distributor.applications.Load())
}

func TestSubmitApplicationRejectsNonPDF(t *testing.T) {
	t.Parallel()

	app, distributor := newTestApplication(t)

	body, contentType := applicationForm(t, []byte("MZ not a pdf"), "application/pdf")
	rec := postApplication(t, app, body, contentType)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	app.wg.Wait()
	assert.Equal(t, int64(0), distributor.applications.Load())
}

func TestSubmitApplicationRejectsWrongContentType(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t)

	body, contentType := applicationForm(t, []byte("%PDF-1.7"), "application/octet-stream")
	rec := postApplication(t, app, body, contentType)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitApplicationMissingFields(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("firstName", "A"))
	require.NoError(t, writer.Close())

	rec := postApplication(t, app, &buf, writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateResume(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateResume([]byte("%PDF-1.4"), "application/pdf"))
	assert.Error(t, validateResume(nil, "application/pdf"))
	assert.Error(t, validateResume([]byte("plain text"), "application/pdf"))
	assert.Error(t, validateResume([]byte("%PDF-1.4"), "text/plain"))

	oversized := bytes.Repeat([]byte("a"), fileobject.MaxResumeSize+1)
	copy(oversized, "%PDF")
	assert.Error(t, validateResume(oversized, "application/pdf"))
}
