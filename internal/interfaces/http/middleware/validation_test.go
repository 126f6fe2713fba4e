package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pyasti/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationErrorReportsFields(t *testing.T) {
	type input struct {
		Email string `json:"email" binding:"required,email"`
		Qty   int    `json:"qty" binding:"required,gt=0"`
	}

	SetupValidator()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/probe", func(c *gin.Context) {
		var req input
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/probe", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 2)

	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "qty")
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	assert.False(t, resp.Success)
	assert.Equal(t, "Request validation failed", resp.Error.Message)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Empty(t, resp.Error.Details)
}

func TestGetValidationMessage(t *testing.T) {
	type input struct {
		Email string `validate:"email"`
		Role  string `validate:"oneof=buyer seller admin"`
		Name  string `validate:"min=3"`
		Qty   int    `validate:"gt=0"`
	}

	v := validator.New()
	err := v.Struct(input{Email: "bad", Role: "owner", Name: "ab"})
	require.Error(t, err)

	messages := map[string]string{}
	for _, e := range err.(validator.ValidationErrors) {
		messages[e.Field()] = getValidationMessage(e)
	}

	assert.Equal(t, "Invalid email format", messages["Email"])
	assert.Equal(t, "Must be one of: buyer seller admin", messages["Role"])
	assert.Equal(t, "Must be at least 3 characters", messages["Name"])
	assert.Equal(t, "Must be greater than 0", messages["Qty"])
}
