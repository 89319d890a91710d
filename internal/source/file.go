package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/fanpulse/backend/config"
	"github.com/fanpulse/backend/internal/models"
)

// csvHeaders is the column order of the spreadsheet export. The normalizer
// maps these back to canonical names on read.
var csvHeaders = []string{
	"ID",
	"First Name",
	"Last Name",
	"Main Category",
	"Sub Category",
	"Feedback",
	"Contact User",
	"Status",
	"Date Submitted",
	"Sentiment",
	"Last Updated By",
	"Last Updated Time",
}

// FileSource reads and rewrites the tabular export at a fixed path. When an
// S3 location is configured the export is refreshed from the bucket before
// reading; a failed download degrades to whatever local copy exists.
type FileSource struct {
	path   string
	s3cfg  *config.S3Config
	s3Key  string
	logger *zap.Logger
}

// NewFileSource creates a tabular-file adapter. s3cfg may be nil to read
// the local path only.
func NewFileSource(path string, s3cfg *config.S3Config, s3Key string, logger *zap.Logger) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{path: path, s3cfg: s3cfg, s3Key: s3Key, logger: logger}
}

// Name implements Fetcher.
func (s *FileSource) Name() string { return "file" }

// Fetch reads the export. A missing or unreadable path is
// ErrSourceUnavailable; an empty file is an empty row-set.
func (s *FileSource) Fetch(ctx context.Context) ([]models.Row, error) {
	if s.s3cfg != nil && s.s3Key != "" {
		if err := s.download(ctx); err != nil {
			s.logger.Warn("could not refresh export from S3, using local copy",
				zap.String("key", s.s3Key),
				zap.Error(err))
		}
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSourceUnavailable, s.path, err)
	}
	if len(records) == 0 {
		return []models.Row{}, nil
	}

	headers := records[0]
	rows := make([]models.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(models.Row, len(headers))
		for i, h := range headers {
			if i >= len(record) || record[i] == "" {
				continue
			}
			row[h] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteAll rewrites the export wholesale from canonical records. This is
// the fallback persistence path for edits.
func (s *FileSource) WriteAll(records []models.FeedbackRecord) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrSourceUnavailable, s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeaders); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for _, rec := range records {
		line := []string{
			fmt.Sprint(rec.ID),
			rec.FirstName,
			rec.LastName,
			rec.MainCategory,
			rec.SubCategory,
			rec.FeedbackText,
			rec.ContactUser,
			rec.Status,
			rec.DateSubmitted.Format(time.RFC3339),
			rec.Sentiment,
			rec.LastUpdatedBy,
			rec.LastUpdatedTime,
		}
		if err := w.Write(line); err != nil {
			return fmt.Errorf("write record %d: %w", rec.ID, err)
		}
	}
	w.Flush()
	return w.Error()
}

// AppendTracking appends email-tracking metadata to a sidecar file next to
// the export. Used when the warehouse cannot take the write.
func (s *FileSource) AppendTracking(tracking *models.EmailTracking) error {
	f, err := os.OpenFile(s.path+".tracking.csv", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open tracking sidecar: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		fmt.Sprint(tracking.FeedbackID),
		tracking.TrackingID,
		tracking.SentTime,
	}); err != nil {
		return fmt.Errorf("append tracking: %w", err)
	}
	w.Flush()
	return w.Error()
}

func (s *FileSource) download(ctx context.Context) error {
	obj, err := s.s3cfg.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.s3cfg.BucketName),
		Key:    aws.String(s.s3Key),
	})
	if err != nil {
		return err
	}
	defer obj.Body.Close()

	// Same directory as the target so the rename is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, obj.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
