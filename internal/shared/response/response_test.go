package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errThingNotFound = errors.New("thing not found")

var thingErrorMap = map[error]ErrorMapping{
	errThingNotFound: {Status: http.StatusNotFound, Code: "THING_NOT_FOUND", Message: "Thing not found"},
}

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, Response) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHandleDomainErrorMapsWrappedErrors(t *testing.T) {
	var handled bool
	w, body := record(func(c *gin.Context) {
		handled = HandleDomainError(c, fmt.Errorf("lookup: %w", errThingNotFound), thingErrorMap)
	})

	assert.True(t, handled)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "THING_NOT_FOUND", body.Error.Code)
}

func TestHandleDomainErrorUnknownIs500(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		HandleDomainError(c, errors.New("boom"), thingErrorMap)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
}

func TestHandleDomainErrorNil(t *testing.T) {
	var handled bool
	record(func(c *gin.Context) {
		handled = HandleDomainError(c, nil, thingErrorMap)
	})
	assert.False(t, handled)
}

func TestValidationFailed(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		ValidationFailed(c, validation.Errors{"email": errors.New("must be a valid email address")})
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, map[string]interface{}{"email": "must be a valid email address"}, body.Error.Details)

	w, body = record(func(c *gin.Context) {
		ValidationFailed(c, errors.New("bad json"))
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
}
