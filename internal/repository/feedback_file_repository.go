package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/formbricks/insight/internal/errors"
	"github.com/formbricks/insight/internal/models"
)

var (
	errMissingHeader         = errors.New("file has no header row")
	errMissingFeedbackColumn = fmt.Errorf("file has no %q column", models.FeedbackColumn)
	errMissingFeedbackCell   = fmt.Errorf("row has no %q value", models.FeedbackColumn)
)

// FeedbackFileRepository reads feedback records from a CSV file. The file is
// opened on every call; nothing is cached.
type FeedbackFileRepository struct {
	path string
}

// NewFeedbackFileRepository creates a repository backed by the CSV file at path.
func NewFeedbackFileRepository(path string) *FeedbackFileRepository {
	return &FeedbackFileRepository{path: path}
}

// Path returns the backing file path.
func (r *FeedbackFileRepository) Path() string {
	return r.path
}

// List reads every record of the backing file. CleanFeedback is left empty.
// Any failure is returned as a *errors.CorpusError.
func (r *FeedbackFileRepository) List(ctx context.Context) ([]models.FeedbackRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, apperrors.NewCorpusError(r.path, err)
	}
	defer f.Close()

	records, err := ReadFeedback(f)
	if err != nil {
		return nil, apperrors.NewCorpusError(r.path, err)
	}

	return records, nil
}

// ReadFeedback parses CSV with a header row that includes a feedback column.
// Rows shorter than the header are padded with empty values; only a row that
// ends before its feedback cell is an error.
func ReadFeedback(src io.Reader) ([]models.FeedbackRecord, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errMissingHeader
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := normalizeHeader(header)

	feedbackIdx := slices.Index(columns, models.FeedbackColumn)
	if feedbackIdx < 0 {
		return nil, errMissingFeedbackColumn
	}

	records := make([]models.FeedbackRecord, 0)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		line, _ := reader.FieldPos(0)

		switch {
		case len(row) > len(columns):
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(row), len(columns))
		case len(row) <= feedbackIdx:
			return nil, fmt.Errorf("line %d: %w", line, errMissingFeedbackCell)
		}

		values := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(row) {
				values[col] = row[i]
			} else {
				values[col] = ""
			}
		}

		records = append(records, models.FeedbackRecord{
			Columns: columns,
			Values:  values,
		})
	}

	return records, nil
}

// normalizeHeader trims names, drops a UTF-8 BOM and renames repeated names
// to name.1, name.2, ... skipping any suffix already taken by another column.
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	taken := make(map[string]bool, len(header))

	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}

		columns[i] = strings.TrimSpace(name)
		taken[columns[i]] = true
	}

	used := make(map[string]bool, len(columns))
	next := make(map[string]int)

	for i, name := range columns {
		if used[name] {
			n := max(next[name], 1)
			for taken[suffixed(name, n)] || used[suffixed(name, n)] {
				n++
			}

			next[name] = n + 1
			name = suffixed(name, n)
			columns[i] = name
		}

		used[name] = true
	}

	return columns
}

func suffixed(name string, n int) string {
	return name + "." + strconv.Itoa(n)
}
