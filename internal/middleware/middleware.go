package middleware

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
}

func WriteSuccessData(w http.ResponseWriter, r *http.Request, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = jsoniter.NewEncoder(w).Encode(Response{
		Data: data,
	})
}

func WriteErrorResponse(w http.ResponseWriter, r *http.Request, errCode int, err string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errCode)

	_ = jsoniter.NewEncoder(w).Encode(Response{
		Error: err,
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// LogRequests logs method, path, status and duration of every request.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("debug request")
	})
}
