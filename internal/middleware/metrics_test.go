package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// recordedStatuses はHTTPStatusRecorderのモック実装。
type recordedStatuses struct {
	statuses []int
}

func (r *recordedStatuses) RecordHTTPStatus(statusCode int) {
	r.statuses = append(r.statuses, statusCode)
}

func TestMetricsMiddleware_RecordsStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			"explicit 201",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
			},
			http.StatusCreated,
		},
		{
			"implicit 200",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("ok"))
			},
			http.StatusOK,
		},
		{
			"error 404",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &recordedStatuses{}
			mw := NewMetricsMiddleware(recorder)
			handler := mw(tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if len(recorder.statuses) != 1 {
				t.Fatalf("recorded statuses = %d, want 1", len(recorder.statuses))
			}
			if recorder.statuses[0] != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.statuses[0], tt.wantStatus)
			}
		})
	}
}

func TestMetricsMiddleware_RecordsEveryRequest(t *testing.T) {
	recorder := &recordedStatuses{}
	mw := NewMetricsMiddleware(recorder)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}

	if len(recorder.statuses) != 3 {
		t.Errorf("recorded statuses = %d, want 3", len(recorder.statuses))
	}
}
