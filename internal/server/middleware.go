package server

import (
	"net/http"
	"time"

	"fjacquet/stmt-sorter/internal/logging"

	"github.com/go-chi/chi/v5/middleware"
)

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// requestLogger logs one structured line per request with the chi request
// id so server-side errors can be correlated with client reports.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(recorder, r)

			if recorder.status == 0 {
				recorder.status = http.StatusOK
			}
			logger.Info("Handled request",
				logging.Field{Key: logging.FieldRequestID, Value: middleware.GetReqID(r.Context())},
				logging.Field{Key: logging.FieldMethod, Value: r.Method},
				logging.Field{Key: logging.FieldPath, Value: r.URL.Path},
				logging.Field{Key: logging.FieldStatusCode, Value: recorder.status},
				logging.Field{Key: logging.FieldRemoteAddr, Value: r.RemoteAddr},
				logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
		})
	}
}
