package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/formbricks/insight/internal/api/response"
)

// BodyLimitRecorder counts requests rejected by LimitBody.
type BodyLimitRecorder interface {
	RecordRequestBodyTooLarge(ctx context.Context)
}

// LimitBody caps the request body of the wrapped route at maxBytes. A declared
// Content-Length over the limit is answered with 413 before the handler runs.
// Otherwise the body is read through http.MaxBytesReader and the handler
// reports the *http.MaxBytesError it gets back. recorder may be nil. A
// maxBytes of zero or less disables the limit.
func LimitBody(maxBytes int64, recorder BodyLimitRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record := func() {
				if recorder != nil {
					recorder.RecordRequestBodyTooLarge(r.Context())
				}
			}

			if r.ContentLength > maxBytes {
				record()
				response.RespondBodyTooLarge(w, maxBytes)

				return
			}

			r.Body = &limitedBody{
				ReadCloser: http.MaxBytesReader(w, r.Body, maxBytes),
				onExceeded: record,
			}

			next.ServeHTTP(w, r)
		})
	}
}

// limitedBody calls onExceeded the first time the limit is hit.
type limitedBody struct {
	io.ReadCloser

	onExceeded func()
	exceeded   bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)

	var tooLarge *http.MaxBytesError
	if !b.exceeded && errors.As(err, &tooLarge) {
		b.exceeded = true
		b.onExceeded()
	}

	//nolint:wrapcheck // io.EOF and *http.MaxBytesError must reach the decoder as is
	return n, err
}
