package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cipware/securepay/pkg/sanitize"
)

// maxBodyBytes caps request bodies. Every payload this API accepts is a small
// flat object; anything larger is hostile.
const maxBodyBytes = 10 << 10 // 10 KiB

// SanitizeBody decodes the JSON request body, strips operator-style keys,
// escapes markup in every string, and hands the handler a rewritten body.
// Handlers therefore only ever decode already-sanitized input into their
// typed request structs.
func SanitizeBody() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
			if err != nil {
				WriteError(w, http.StatusBadRequest, "unreadable request body")
				return
			}
			_ = r.Body.Close()

			if int64(len(raw)) > maxBodyBytes {
				WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			var decoded any
			if err := json.Unmarshal(raw, &decoded); err != nil {
				WriteError(w, http.StatusBadRequest, "invalid JSON payload")
				return
			}

			clean, err := json.Marshal(sanitize.Body(decoded))
			if err != nil {
				WriteError(w, http.StatusBadRequest, "invalid JSON payload")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(clean))
			r.ContentLength = int64(len(clean))
			next.ServeHTTP(w, r)
		})
	}
}
