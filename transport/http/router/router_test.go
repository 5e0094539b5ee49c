package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"innkeep/transport/http/router"
)

func TestRouter_Fallbacks(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		expectedCode int
	}{
		{
			name:         "unknown path",
			method:       http.MethodGet,
			path:         "/v1/suites",
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "wrong method on a known path",
			method:       http.MethodPost,
			path:         "/v1/pricing/quote",
			expectedCode: http.StatusMethodNotAllowed,
		},
		{
			name:         "menu items are mounted",
			method:       http.MethodPatch,
			path:         "/v1/service-items/m-1",
			expectedCode: http.StatusMethodNotAllowed,
		},
	}

	r := router.New(router.DomainHandlers{})
	mux := chi.NewRouter()
	r.SetupRoutes(mux)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			mux.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedCode, recorder.Code)

			body := map[string]string{}
			assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Contains(t, body["error"], tt.path)
		})
	}
}
