package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/adityarao/billsync-backend/api/responses"
	"github.com/adityarao/billsync-backend/internal/jobs"
	pkgerrors "github.com/adityarao/billsync-backend/pkg/errors"
	"github.com/adityarao/billsync-backend/pkg/logger"
)

const maxUploadBytes = 64 << 20

var allowedUploadExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
}

// IngestionService is the surface the ingestion endpoints depend on.
type IngestionService interface {
	Start(ctx context.Context, filePath string) string
	Status(jobID string) (jobs.State, bool)
}

// StartIngestion accepts a multipart upload, stages it on disk and kicks off
// a background run. The response carries only the job id; progress is polled.
func StartIngestion(svc IngestionService, uploadDir string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart upload"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file field is required"))
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedUploadExts[ext] {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported file type %q", ext)))
			return
		}

		path, err := stageUpload(uploadDir, ext, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stage upload"))
			return
		}

		jobID := svc.Start(r.Context(), path)
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"job_id": jobID})
	}
}

// GetIngestion returns the current tracker snapshot for a run.
func GetIngestion(svc IngestionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "jobID")
		state, ok := svc.Status(jobID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "unknown job id"))
			return
		}
		responses.WriteSuccess(w, state)
	}
}

func stageUpload(dir, ext string, src io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, uuid.NewString()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write staged file: %w", err)
	}
	return path, nil
}
