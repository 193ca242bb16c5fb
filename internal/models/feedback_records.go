package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FeedbackColumn is the source column holding the raw feedback text.
const FeedbackColumn = "feedback"

// CleanFeedbackColumn is the derived column holding the cleaned feedback text.
const CleanFeedbackColumn = "clean_feedback"

// FeedbackRecord is one row of the feedback file: every source column plus the
// cleaned feedback text. It lives only for the duration of a request.
type FeedbackRecord struct {
	// Columns lists the source column names in file order.
	Columns []string
	// Values maps source column names to their raw cell values.
	Values map[string]string
	// CleanFeedback is the normalized form of Values[FeedbackColumn].
	CleanFeedback string
}

// Feedback returns the raw feedback text of the record.
func (r FeedbackRecord) Feedback() string {
	return r.Values[FeedbackColumn]
}

// MarshalJSON renders the record as one flat object: source columns in file
// order followed by clean_feedback.
func (r FeedbackRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for _, col := range r.Columns {
		if col == CleanFeedbackColumn {
			continue
		}

		if err := writeMember(&buf, col, r.Values[col]); err != nil {
			return nil, err
		}

		buf.WriteByte(',')
	}

	if err := writeMember(&buf, CleanFeedbackColumn, r.CleanFeedback); err != nil {
		return nil, err
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key, value string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("marshal key %q: %w", key, err)
	}

	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value of %q: %w", key, err)
	}

	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)

	return nil
}
