package middleware

import (
	"net/http"
	"time"
)

// Logging пишет строку лога на каждый запрос
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newStatusRecorder(w)

			next.ServeHTTP(rw, r)

			requestID, _ := GetRequestID(r.Context())
			log.Info("HTTP %s %s status=%d bytes=%d duration=%s request_id=%s ip=%s",
				r.Method, r.URL.Path, rw.status, rw.bytesWritten, time.Since(start), requestID, r.RemoteAddr)
		})
	}
}
