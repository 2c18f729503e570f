package files

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studykit-backend/internal/extract"
	"studykit-backend/internal/llm"
	"studykit-backend/internal/shared/config"
	"studykit-backend/internal/shared/storage/object"
	"studykit-backend/internal/shared/telemetry"
)

// Service sequences the upload pipeline (extract, summarize, persist) and the
// downstream ask/quiz/delete operations against stored summaries.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	LLM   llm.Client
	// SummaryMaxChars bounds the extracted-text prefix sent to the
	// summarizer. Documents longer than the cap are summarized from their
	// opening portion only.
	SummaryMaxChars int
}

// UploadFile is one entry in an upload batch.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadResult is the per-file outcome of a batch upload. Exactly one of
// Record and Err is set; one file's failure never aborts its siblings.
type UploadResult struct {
	FileName string
	Record   *Record
	Err      error
}

// UploadBatch runs the pipeline for each file independently. Results are
// returned in input order.
func (s *Service) UploadBatch(ctx context.Context, inputs []UploadFile) []UploadResult {
	results := make([]UploadResult, 0, len(inputs))
	for _, in := range inputs {
		rec, err := s.uploadOne(ctx, in)
		if err != nil {
			telemetry.Warn("upload.file_rejected", map[string]any{
				"file_name": in.Name,
				"error":     err.Error(),
			})
			results = append(results, UploadResult{FileName: in.Name, Err: err})
			continue
		}
		results = append(results, UploadResult{FileName: in.Name, Record: &rec})
	}
	return results
}

// uploadOne walks one file through extract, summarize, blob save and record
// create. Extraction and summarization run before anything durable exists, so
// a rejected file leaves no record and no blob. If record creation fails
// after the blob was written, the blob is removed again (best effort).
func (s *Service) uploadOne(ctx context.Context, in UploadFile) (Record, error) {
	if in.Name == "" || len(in.Data) == 0 {
		return Record{}, fmt.Errorf("%w: file name and content are required", ErrInvalidInput)
	}

	text, err := extract.Text(ctx, in.Data, in.Name)
	if err != nil {
		return Record{}, err
	}

	summary, err := s.LLM.Summarize(ctx, truncate(text, s.maxChars()))
	if err != nil {
		// No degraded record: a file whose summary cannot be produced is
		// rejected wholesale.
		return Record{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, in.Name, bytes.NewReader(in.Data))
	if err != nil {
		return Record{}, fmt.Errorf("%w: save blob: %v", ErrStorage, err)
	}

	rec := Record{
		ID:         uuid.NewString(),
		FileName:   in.Name,
		Summary:    summary,
		StorageKey: storageKey,
		SizeBytes:  size,
		MimeType:   mimeType,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		s.removeBlob(ctx, storageKey, rec.ID)
		return Record{}, err
	}

	return rec, nil
}

// Ask answers a free-form question against the stored summary. The original
// document text is never re-read.
func (s *Service) Ask(ctx context.Context, fileID, question string) (string, error) {
	if fileID == "" || question == "" {
		return "", fmt.Errorf("%w: fileId and question are required", ErrInvalidInput)
	}

	rec, err := s.Repo.GetByID(ctx, fileID)
	if err != nil {
		return "", err
	}

	return s.LLM.Answer(ctx, rec.Summary, question)
}

// GenerateQuiz produces the fixed quiz mixture from the stored summary.
// Quiz items are returned to the caller and never persisted.
func (s *Service) GenerateQuiz(ctx context.Context, fileID string) ([]llm.QuizItem, error) {
	if fileID == "" {
		return nil, fmt.Errorf("%w: fileId is required", ErrInvalidInput)
	}

	rec, err := s.Repo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	return s.LLM.GenerateQuiz(ctx, rec.Summary)
}

// Get returns a single record.
func (s *Service) Get(ctx context.Context, fileID string) (Record, error) {
	if fileID == "" {
		return Record{}, fmt.Errorf("%w: fileId is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, fileID)
}

// List returns all records.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.Repo.List(ctx)
}

// Delete removes the store record first, then best-effort removes the
// backing blob. A blob-removal failure is logged, not surfaced: once the
// record is gone the user-visible contract is met, and the delete stays
// idempotent (a second call yields ErrNotFound).
func (s *Service) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("%w: fileId is required", ErrInvalidInput)
	}

	rec, err := s.Repo.Delete(ctx, fileID)
	if err != nil {
		return err
	}

	if rec.StorageKey != "" {
		s.removeBlob(ctx, rec.StorageKey, rec.ID)
	}
	return nil
}

func (s *Service) removeBlob(ctx context.Context, storageKey, fileID string) {
	if err := s.Store.Delete(ctx, storageKey); err != nil {
		telemetry.Warn("blob.delete_failed", map[string]any{
			"file_id":     fileID,
			"storage_key": storageKey,
			"error":       err.Error(),
		})
	}
}

func (s *Service) maxChars() int {
	if s.SummaryMaxChars > 0 {
		return s.SummaryMaxChars
	}
	return config.DefaultSummaryMaxChars
}

func truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
