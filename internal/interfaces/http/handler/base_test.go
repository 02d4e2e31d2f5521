package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/preschool/backend/internal/domain/shared"
	"github.com/preschool/backend/internal/interfaces/http/dto"
	"github.com/preschool/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())
	c, w := newTestContext(t)

	h.Success(c, gin.H{"hello": "world"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())
	c, w := newTestContext(t)

	h.SuccessWithMeta(c, []string{"a", "b"}, 2, 20, 45)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            shared.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   dto.ErrCodeNotFound,
		},
		{
			name:           "invoice with payments",
			err:            shared.NewDomainError("INVOICE_HAS_PAYMENTS", "Cannot delete an invoice with recorded payments"),
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeConflict,
		},
		{
			name:           "refund on non-completed payment",
			err:            shared.NewDomainError("PAYMENT_NOT_REFUNDABLE", "Only a completed payment can be refunded"),
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrCodeConflict,
		},
		{
			name:           "wrapped domain error",
			err:            shared.WrapDomainError("PAYMENT_NOT_RECORDED", "Payment could not be recorded", errors.New("db down")),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeTransaction,
		},
		{
			name:           "plain error becomes internal",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestBaseHandlerErrorCarriesRequestID(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())
	c, w := newTestContext(t)
	c.Set(middleware.RequestIDKey, "req-42")

	h.NotFound(c, "Invoice not found")

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}

func TestBaseHandlerIdentityHelpers(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())

	t.Run("parses jwt ids from context", func(t *testing.T) {
		c, _ := newTestContext(t)
		userID := uuid.New()
		schoolID := uuid.New()
		c.Set(middleware.JWTUserIDKey, userID.String())
		c.Set(middleware.JWTSchoolIDKey, schoolID.String())

		assert.Equal(t, userID, h.getUserID(c))
		assert.Equal(t, schoolID, h.getSchoolID(c))
	})

	t.Run("returns nil uuid when unauthenticated", func(t *testing.T) {
		c, _ := newTestContext(t)
		assert.Equal(t, uuid.Nil, h.getUserID(c))
		assert.Equal(t, uuid.Nil, h.getSchoolID(c))
	})

	t.Run("rejects malformed path id", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		_, ok := h.bindID(c)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBaseHandlerBindList(t *testing.T) {
	h := NewBaseHandler(zap.NewNop())

	t.Run("binds pagination and allowed sort column", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet,
			"/?page=2&page_size=50&order_by=due_date&order_dir=asc", nil)

		list, ok := h.bindList(c, "created_at", "due_date")

		require.True(t, ok)
		assert.Equal(t, 2, list.Page)
		assert.Equal(t, 50, list.PageSize)
		assert.Equal(t, "due_date", list.OrderBy)
		assert.Equal(t, "asc", list.OrderDir)
	})

	t.Run("drops sort column outside the allowed set", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/?order_by=notes", nil)

		list, ok := h.bindList(c, "created_at", "due_date")

		require.True(t, ok)
		assert.Empty(t, list.OrderBy)
	})

	t.Run("applies defaults when parameters are absent", func(t *testing.T) {
		c, _ := newTestContext(t)

		list, ok := h.bindList(c, "created_at")

		require.True(t, ok)
		assert.Equal(t, 1, list.Page)
		assert.Equal(t, 20, list.PageSize)
		assert.Equal(t, "desc", list.OrderDir)
	})

	t.Run("rejects an invalid order direction", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/?order_dir=sideways", nil)

		_, ok := h.bindList(c, "created_at")

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
