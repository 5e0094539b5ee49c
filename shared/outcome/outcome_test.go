package outcome_test

import (
	"net/http"
	"testing"

	"innkeep/shared/failure"
	"innkeep/shared/outcome"

	"github.com/stretchr/testify/assert"
)

func TestResult_Err(t *testing.T) {
	tests := []struct {
		name   string
		result outcome.Result
		code   int
		isNil  bool
	}{
		{
			name:   "success has no error",
			result: outcome.OK("bk-1"),
			isNil:  true,
		},
		{
			name:   "not found",
			result: outcome.NotFound("room %s not found", "101"),
			code:   http.StatusNotFound,
		},
		{
			name:   "conflict",
			result: outcome.Conflict("held by another session"),
			code:   http.StatusConflict,
		},
		{
			name:   "forbidden",
			result: outcome.Forbidden("booking %s was not placed by this session", "bk-1"),
			code:   http.StatusForbidden,
		},
		{
			name:   "invalid state",
			result: outcome.InvalidState("room is %s", "OCCUPIED"),
			code:   http.StatusUnprocessableEntity,
		},
		{
			name:   "validation",
			result: outcome.Invalid("duration must be positive"),
			code:   http.StatusBadRequest,
		},
		{
			name:   "partial",
			result: outcome.Partial("bk-1", "room 102: held by another session"),
			code:   http.StatusMultiStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Err()

			if tt.isNil {
				assert.NoError(t, err)
				assert.True(t, tt.result.Success)

				return
			}

			assert.Error(t, err)
			assert.False(t, tt.result.Success)
			assert.Equal(t, tt.code, failure.GetCode(err))
			assert.Equal(t, tt.result.Reason, err.Error())
		})
	}
}

func TestFail_FormatsReason(t *testing.T) {
	res := outcome.InvalidState("room %s is %s", "101", "DIRTY")

	assert.Equal(t, outcome.KindInvalidState, res.Kind)
	assert.Equal(t, "room 101 is DIRTY", res.Reason)
	assert.Empty(t, res.Payload)
}

func TestPartial_KeepsPayload(t *testing.T) {
	res := outcome.Partial("bk-1,bk-2", "1 room failed")

	assert.Equal(t, outcome.KindPartialFailure, res.Kind)
	assert.Equal(t, "bk-1,bk-2", res.Payload)
}
