package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		method     string
		wantStatus int
		wantCalled bool
	}{
		{http.MethodOptions, http.StatusNoContent, false},
		{http.MethodPost, http.StatusTeapot, true},
	}
	for _, tt := range tests {
		called = false
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, "/analyze", nil))
		if rec.Code != tt.wantStatus || called != tt.wantCalled {
			t.Errorf("%s: status %d called %v", tt.method, rec.Code, called)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("%s: missing allow-origin header", tt.method)
		}
	}
}
