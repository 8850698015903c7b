package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestEnvelopeErrorHandler(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "http error passes through",
			err:             echo.NewHTTPError(http.StatusNotFound, "product not found"),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "product not found",
		},
		{
			name:            "plain error collapses to 500",
			err:             assert.AnError,
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			envelopeErrorHandler(tt.err, c)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.expectedMessage, body.Message)
		})
	}
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}

	type payload struct {
		Email string `validate:"required,email"`
	}

	assert.NoError(t, cv.Validate(&payload{Email: "user@example.com"}))
	assert.Error(t, cv.Validate(&payload{Email: "not-an-email"}))
	assert.Error(t, cv.Validate(&payload{}))
}
