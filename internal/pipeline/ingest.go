package pipeline

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"adoption-eda/internal/model"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultSource is the published AI tool adoption dataset.
const DefaultSource = "https://raw.githubusercontent.com/ANALYZE-IRONTHUNDER/ANALYZE-IRONTHUNDER/refs/heads/main/AI_ADOPTATION/ai_adoption_dataset.csv"

// ------------------- Loader -------------------

// Loader retrieves the dataset from a URL or a local file. It does not retry.
type Loader struct {
	Client *http.Client
}

// NewLoader creates a loader whose HTTP requests give up after timeout.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{Client: &http.Client{Timeout: timeout}}
}

// Load reads the whole source into a Dataset. Every failure is a *SourceError.
func (l *Loader) Load(ctx context.Context, source string) (model.Dataset, error) {
	log.WithField("source", source).Info("➡️ Loading dataset")

	rc, err := l.open(ctx, source)
	if err != nil {
		return model.Dataset{}, sourceUnavailable(source, err)
	}
	defer rc.Close()

	records, err := ParseCSV(ctx, rc)
	if err != nil {
		return model.Dataset{}, sourceUnavailable(source, err)
	}

	log.WithFields(log.Fields{"source": source, "records": len(records)}).Info("📄 CSV ingestion done")
	return model.Dataset{Source: source, Records: records}, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		file, err := os.Open(source)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open CSV file")
		}
		return file, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to GET CSV")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errors.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// ------------------- CSV Parsing -------------------

// ParseCSV decodes a headered CSV stream into records. Columns are located by header
// name; any malformed row fails the whole parse.
func ParseCSV(ctx context.Context, r io.Reader) ([]model.Record, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, errors.New("empty CSV: no header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV header")
	}

	index, err := newColumnIndex(headers)
	if err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, 1024)
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "CSV read error at line %d", line)
		}
		if isBlankRow(row) {
			continue
		}

		rec, err := index.decode(row)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		records = append(records, rec)
		if len(records)%50000 == 0 {
			log.Debugf("📄 CSV: Processed %d records", len(records))
		}
	}
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
