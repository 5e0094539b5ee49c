package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"innkeep/shared/failure"
	"innkeep/shared/outcome"
	"innkeep/transport/http/response"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	return body
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "coded failure", err: fmt.Errorf("hold: %w", failure.Conflict("room 101 is held")), wantCode: http.StatusConflict, wantBody: "room 101 is held"},
		{name: "uncoded error is masked", err: errors.New("pq: deadlock detected"), wantCode: http.StatusInternalServerError, wantBody: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantBody, decode(t, recorder)["error"])
		})
	}
}

func TestWithOutcome(t *testing.T) {
	type booked struct {
		BookingIDs []string `json:"booking_ids"`
	}

	tests := []struct {
		name      string
		res       outcome.Result
		wantCode  int
		wantData  bool
		wantError string
	}{
		{name: "success", res: outcome.OK("bk-1"), wantCode: http.StatusCreated, wantData: true},
		{name: "conflict", res: outcome.Conflict("room %s is held", "101"), wantCode: http.StatusConflict, wantError: "room 101 is held"},
		{name: "not found", res: outcome.NotFound("room %s not found", "999"), wantCode: http.StatusNotFound, wantError: "room 999 not found"},
		{name: "partial batch", res: outcome.Partial("bk-1", "room %s is occupied", "102"), wantCode: http.StatusMultiStatus, wantData: true, wantError: "room 102 is occupied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			response.WithOutcome(recorder, http.StatusCreated, tt.res, booked{BookingIDs: []string{"bk-1"}})

			assert.Equal(t, tt.wantCode, recorder.Code)

			body := decode(t, recorder)
			_, hasData := body["data"]
			assert.Equal(t, tt.wantData, hasData)

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestWithRequestLimitExceeded(t *testing.T) {
	recorder := httptest.NewRecorder()
	response.WithRequestLimitExceeded(recorder)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "REQUEST LIMIT EXCEEDED", decode(t, recorder)["message"])
}
