package utils

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "travel-assistant/pkg/errors"
)

type sampleRequest struct {
	Query   string                 `json:"query" validate:"required"`
	Params  map[string]interface{} `json:"params" validate:"required,min=1"`
	Channel string                 `json:"channel,omitempty" validate:"omitempty,oneof=web app"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     sampleRequest
		wantErr string
	}{
		{name: "valid", req: sampleRequest{Query: "q", Params: map[string]interface{}{"a": 1}}},
		{name: "missing query", req: sampleRequest{Params: map[string]interface{}{"a": 1}}, wantErr: "Missing required parameter: query"},
		{name: "nil params", req: sampleRequest{Query: "q"}, wantErr: "Missing required parameter: params"},
		{name: "empty params", req: sampleRequest{Query: "q", Params: map[string]interface{}{}}, wantErr: "Missing required parameter: params"},
		{name: "first failure wins", req: sampleRequest{}, wantErr: "Missing required parameter: query"},
		{name: "bad enum", req: sampleRequest{Query: "q", Params: map[string]interface{}{"a": 1}, Channel: "fax"}, wantErr: "channel must be one of: web app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))

			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantErr, appErr.Message)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
		})
	}
}

func TestDates(t *testing.T) {
	in, err := ParseDate("2025-06-01")
	require.NoError(t, err)
	out, err := ParseDate("2025-06-04")
	require.NoError(t, err)

	assert.Equal(t, 3, NightsBetween(in, out))
	assert.Equal(t, -3, NightsBetween(out, in))
	assert.Equal(t, "2025-06-01T00:00:00", FormatLocal(in))

	_, err = ParseDate("06/01/2025")
	assert.Error(t, err)
}
