package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chabbasaad/4CITE-sub001/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordedContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestFromErrorCarriesMachineReadableCode(t *testing.T) {
	c, w := recordedContext(t)
	FromError(c, errors.NewNotFoundError(errors.ErrCodeHotelNotFound, "Không tìm thấy khách sạn"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, errors.ErrCodeHotelNotFound, body.Code)
	assert.Equal(t, "Không tìm thấy khách sạn", body.Message)
}

func TestFromErrorDomainRuleKeepsCodeAndFields(t *testing.T) {
	fields := errors.FieldErrors{}
	fields.Add("checkOutDate", "Ngày trả phòng phải sau ngày nhận phòng")

	c, w := recordedContext(t)
	FromError(c, errors.NewDomainRuleError(errors.ErrCodeInvalidDateRange, "Khoảng ngày không hợp lệ", fields))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, errors.ErrCodeInvalidDateRange, body.Code)
	assert.Contains(t, body.Errors, "checkOutDate")
}

func TestFromErrorHidesInternalCode(t *testing.T) {
	c, w := recordedContext(t)
	FromError(c, errors.NewAppError(errors.KindInternal, errors.ErrCodeDBError, "Lỗi truy vấn", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, errors.ErrCodeInternal, body.Code)
}

func TestFixedHelpersCarryCode(t *testing.T) {
	c, w := recordedContext(t)
	Unauthorized(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errors.ErrCodeUnauthorized, decodeBody(t, w).Code)

	c, w = recordedContext(t)
	Forbidden(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, errors.ErrCodeForbidden, decodeBody(t, w).Code)

	c, w = recordedContext(t)
	NotFound(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errors.ErrCodeNotFound, decodeBody(t, w).Code)
}

func TestSuccessHasNoCode(t *testing.T) {
	c, w := recordedContext(t)
	Success(c, gin.H{"ok": true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"code"`)
}
