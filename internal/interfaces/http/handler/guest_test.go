package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	visitorapp "github.com/clubgate/backend/internal/application/visitor"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/clubgate/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGuestTestRouter(guests *mockGuestRepository, visits *mockVisitRepository) *gin.Engine {
	svc := visitorapp.NewGuestService(guests, visits, zap.NewNop())
	h := NewGuestHandler(svc)

	r := gin.New()
	r.POST("/guests", h.Create)
	r.GET("/guests", h.List)
	r.GET("/guests/:id", h.Get)
	r.PUT("/guests/:id", h.Update)
	r.DELETE("/guests/:id", h.Delete)
	r.POST("/guests/:id/suspend", h.Suspend)
	return r
}

func testGuest(t *testing.T) *visitor.Guest {
	t.Helper()
	guest, err := visitor.NewGuest("", "Jane Wambui", "12345678", "+254700000001")
	require.NoError(t, err)
	guest.ClearDomainEvents()
	return guest
}

func TestGuestHandler_Create(t *testing.T) {
	t.Run("registers a guest", func(t *testing.T) {
		guests := new(mockGuestRepository)
		visits := new(mockVisitRepository)
		guests.On("FindByPhone", mock.Anything, "+254700000001").Return(nil, shared.ErrNotFound)
		guests.On("Save", mock.Anything, mock.AnythingOfType("*visitor.Guest")).Return(nil)

		r := newGuestTestRouter(guests, visits)

		body, _ := json.Marshal(gin.H{
			"full_name": "Jane Wambui",
			"phone":     "+254700000001",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guests", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Jane Wambui", data["full_name"])
		assert.Equal(t, "approved", data["status"])
		guests.AssertExpectations(t)
	})

	t.Run("rejects missing phone", func(t *testing.T) {
		r := newGuestTestRouter(new(mockGuestRepository), new(mockVisitRepository))

		body, _ := json.Marshal(gin.H{"full_name": "Jane Wambui"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guests", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects duplicate phone", func(t *testing.T) {
		guests := new(mockGuestRepository)
		existing := testGuest(t)
		guests.On("FindByPhone", mock.Anything, "+254700000001").Return(existing, nil)

		r := newGuestTestRouter(guests, new(mockVisitRepository))

		body, _ := json.Marshal(gin.H{
			"full_name": "Jane Wambui",
			"phone":     "+254700000001",
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guests", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGuestHandler_Get(t *testing.T) {
	t.Run("returns guest", func(t *testing.T) {
		guests := new(mockGuestRepository)
		guest := testGuest(t)
		guests.On("FindByID", mock.Anything, guest.ID).Return(guest, nil)

		r := newGuestTestRouter(guests, new(mockVisitRepository))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guests/"+guest.ID.String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid ID returns 400", func(t *testing.T) {
		r := newGuestTestRouter(new(mockGuestRepository), new(mockVisitRepository))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guests/not-a-uuid", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown guest returns 404", func(t *testing.T) {
		guests := new(mockGuestRepository)
		id := uuid.New()
		guests.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		r := newGuestTestRouter(guests, new(mockVisitRepository))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/guests/"+id.String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGuestHandler_List(t *testing.T) {
	guests := new(mockGuestRepository)
	guest := testGuest(t)
	guests.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return([]visitor.Guest{*guest}, nil)
	guests.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	r := newGuestTestRouter(guests, new(mockVisitRepository))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guests?status=approved&page=1&page_size=10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.PageSize)
}

func TestGuestHandler_Delete(t *testing.T) {
	t.Run("deletes guest without visits", func(t *testing.T) {
		guests := new(mockGuestRepository)
		visits := new(mockVisitRepository)
		guest := testGuest(t)
		guests.On("FindByID", mock.Anything, guest.ID).Return(guest, nil)
		visits.On("CountByGuest", mock.Anything, guest.ID).Return(int64(0), nil)
		guests.On("Delete", mock.Anything, guest.ID).Return(nil)

		r := newGuestTestRouter(guests, visits)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/guests/"+guest.ID.String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		guests.AssertExpectations(t)
	})

	t.Run("guest with visits returns 422", func(t *testing.T) {
		guests := new(mockGuestRepository)
		visits := new(mockVisitRepository)
		guest := testGuest(t)
		guests.On("FindByID", mock.Anything, guest.ID).Return(guest, nil)
		visits.On("CountByGuest", mock.Anything, guest.ID).Return(int64(3), nil)

		r := newGuestTestRouter(guests, visits)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/guests/"+guest.ID.String(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeCannotDelete, resp.Error.Code)
	})
}

func TestGuestHandler_Suspend(t *testing.T) {
	guests := new(mockGuestRepository)
	guest := testGuest(t)
	guests.On("FindByID", mock.Anything, guest.ID).Return(guest, nil)
	guests.On("Save", mock.Anything, guest).Return(nil)

	r := newGuestTestRouter(guests, new(mockVisitRepository))

	body, _ := json.Marshal(gin.H{"reason": "unpaid bar bill"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guests/"+guest.ID.String()+"/suspend", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "suspended", data["status"])
	assert.Equal(t, "unpaid bar bill", data["status_reason"])
}
