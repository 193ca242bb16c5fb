package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/formbricks/insight/internal/errors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feedback.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFeedbackFileRepository_List(t *testing.T) {
	path := writeFile(t, "id,feedback,channel\n1,Great product. Support was slow.,email\n2,\"I love the UI! But, pricing is confusing.\",chat\n")
	repo := NewFeedbackFileRepository(path)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"id", "feedback", "channel"}, records[0].Columns)
	assert.Equal(t, "Great product. Support was slow.", records[0].Feedback())
	assert.Equal(t, "email", records[0].Values["channel"])
	assert.Equal(t, "I love the UI! But, pricing is confusing.", records[1].Feedback())
	assert.Empty(t, records[1].CleanFeedback)
	assert.Equal(t, path, repo.Path())
}

func TestFeedbackFileRepository_ReadsFreshEachCall(t *testing.T) {
	path := writeFile(t, "feedback\nfirst\n")
	repo := NewFeedbackFileRepository(path)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, os.WriteFile(path, []byte("feedback\nfirst\nsecond\n"), 0o600))

	records, err = repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFeedbackFileRepository_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantMsg string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") },
			wantMsg: "no such file",
		},
		{
			name:    "empty file",
			path:    func(t *testing.T) string { return writeFile(t, "") },
			wantMsg: "no header row",
		},
		{
			name:    "no feedback column",
			path:    func(t *testing.T) string { return writeFile(t, "id,comment\n1,hi\n") },
			wantMsg: `no "feedback" column`,
		},
		{
			name:    "row longer than header",
			path:    func(t *testing.T) string { return writeFile(t, "id,feedback\n1,hi,extra\n") },
			wantMsg: "line 2: 3 fields, header has 2",
		},
		{
			name:    "row ends before feedback",
			path:    func(t *testing.T) string { return writeFile(t, "id,feedback,channel\n1,hi,email\n2\n") },
			wantMsg: `line 3: row has no "feedback" value`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFeedbackFileRepository(tt.path(t))

			_, err := repo.List(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrCorpus))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFeedbackFileRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFeedbackFileRepository(writeFile(t, "feedback\nx\n")).List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadFeedback_Header(t *testing.T) {
	records, err := ReadFeedback(strings.NewReader("\ufeff id ,feedback,id\n1,hi,2\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, []string{"id", "feedback", "id.1"}, records[0].Columns)
	assert.Equal(t, "2", records[0].Values["id.1"])
}

func TestReadFeedback_ShortRowsArePadded(t *testing.T) {
	records, err := ReadFeedback(strings.NewReader("id,feedback,channel,rating\n1,Great product.,email,5\n2,Support was slow.\n3,Fast shipping.,chat\n"))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Support was slow.", records[1].Feedback())
	assert.Equal(t, map[string]string{"id": "2", "feedback": "Support was slow.", "channel": "", "rating": ""}, records[1].Values)
	assert.Equal(t, "chat", records[2].Values["channel"])
	assert.Equal(t, "", records[2].Values["rating"])
}

func TestNormalizeHeader_Duplicates(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"no duplicates", []string{"id", "feedback"}, []string{"id", "feedback"}},
		{"repeated name", []string{"a", "a", "a"}, []string{"a", "a.1", "a.2"}},
		{"suffix already present", []string{"feedback", "feedback.1", "feedback"}, []string{"feedback", "feedback.1", "feedback.2"}},
		{"suffix appears later", []string{"a", "a", "a.1"}, []string{"a", "a.2", "a.1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeHeader(tt.header))
		})
	}
}

func TestReadFeedback_DuplicateHeaderKeepsEveryValue(t *testing.T) {
	records, err := ReadFeedback(strings.NewReader("feedback,feedback.1,feedback\nfirst,second,third\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "first", records[0].Feedback())
	assert.Equal(t, map[string]string{"feedback": "first", "feedback.1": "second", "feedback.2": "third"}, records[0].Values)
}

func TestReadFeedback_HeaderOnly(t *testing.T) {
	records, err := ReadFeedback(strings.NewReader("feedback\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}
