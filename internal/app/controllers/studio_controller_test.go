package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

type stubStudioService struct {
	services.StudioService
	createFn func(ctx context.Context, ownerID int64, req *dto.CreateStudioRequest, cover *multipart.FileHeader) (*dto.StudioCard, error)
	rateFn   func(ctx context.Context, studioID, userID int64, rating int) (float64, error)
	getFn    func(ctx context.Context, studioID, viewerID int64) (*dto.StudioDetailResponse, error)
}

func (s *stubStudioService) CreateStudio(ctx context.Context, ownerID int64, req *dto.CreateStudioRequest, cover *multipart.FileHeader) (*dto.StudioCard, error) {
	return s.createFn(ctx, ownerID, req, cover)
}

func (s *stubStudioService) RateStudio(ctx context.Context, studioID, userID int64, rating int) (float64, error) {
	return s.rateFn(ctx, studioID, userID, rating)
}

func (s *stubStudioService) GetStudio(ctx context.Context, studioID, viewerID int64) (*dto.StudioDetailResponse, error) {
	return s.getFn(ctx, studioID, viewerID)
}

func newStudioRouter(stub *stubStudioService) *gin.Engine {
	router := newTestRouter()
	controller := NewStudioController(stub)
	router.POST("/studios/create", controller.CreateStudio)
	router.GET("/studios/:id", controller.GetStudio)
	router.POST("/studios/:id/rate", controller.RateStudio)
	return router
}

func studioForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCreateStudio_Created(t *testing.T) {
	stub := &stubStudioService{
		createFn: func(_ context.Context, ownerID int64, req *dto.CreateStudioRequest, _ *multipart.FileHeader) (*dto.StudioCard, error) {
			assert.Equal(t, testUserID, ownerID)
			assert.Equal(t, "Night Owl Audio", req.Name)
			return &dto.StudioCard{ID: 7, Name: req.Name}, nil
		},
	}
	router := newStudioRouter(stub)

	body, contentType := studioForm(t, map[string]string{
		"name":        "Night Owl Audio",
		"description": "Mixing and mastering from scratch",
	})
	req := httptest.NewRequest(http.MethodPost, "/studios/create", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusCreated, recorder.Code)
	var card dto.StudioCard
	envelope := decodeResponse(t, recorder, &card)
	assert.True(t, envelope.Success)
	assert.Equal(t, int64(7), card.ID)
}

func TestCreateStudio_AlreadyOwned(t *testing.T) {
	stub := &stubStudioService{
		createFn: func(_ context.Context, _ int64, _ *dto.CreateStudioRequest, _ *multipart.FileHeader) (*dto.StudioCard, error) {
			return nil, apperrors.ErrStudioAlreadyOwned
		},
	}
	router := newStudioRouter(stub)

	body, contentType := studioForm(t, map[string]string{
		"name":        "Second Studio",
		"description": "One per user",
	})
	req := httptest.NewRequest(http.MethodPost, "/studios/create", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	requireErrorCode(t, recorder, http.StatusBadRequest, dto.ErrorCodeValidationFailed)
}

func TestCreateStudio_MissingName(t *testing.T) {
	router := newStudioRouter(&stubStudioService{})

	body, contentType := studioForm(t, map[string]string{"description": "no name"})
	req := httptest.NewRequest(http.MethodPost, "/studios/create", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	requireErrorCode(t, recorder, http.StatusBadRequest, dto.ErrorCodeValidationFailed)
}

func TestGetStudio_InvalidIDParam(t *testing.T) {
	router := newStudioRouter(&stubStudioService{})

	recorder := performRequest(t, router, http.MethodGet, "/studios/abc", nil)

	requireErrorCode(t, recorder, http.StatusBadRequest, dto.ErrorCodeValidationFailed)
}

func TestGetStudio_NotFound(t *testing.T) {
	stub := &stubStudioService{
		getFn: func(_ context.Context, _, _ int64) (*dto.StudioDetailResponse, error) {
			return nil, apperrors.ErrStudioNotFound
		},
	}
	router := newStudioRouter(stub)

	recorder := performRequest(t, router, http.MethodGet, "/studios/99", nil)

	requireErrorCode(t, recorder, http.StatusNotFound, dto.ErrorCodeResourceNotFound)
}

func TestRateStudio(t *testing.T) {
	stub := &stubStudioService{
		rateFn: func(_ context.Context, studioID, userID int64, rating int) (float64, error) {
			assert.Equal(t, int64(7), studioID)
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, 4, rating)
			return 4.5, nil
		},
	}
	router := newStudioRouter(stub)

	body := jsonBody(t, dto.RateStudioRequest{Rating: 4})
	recorder := performRequest(t, router, http.MethodPost, "/studios/7/rate", body)

	require.Equal(t, http.StatusOK, recorder.Code)
	var result map[string]float64
	decodeResponse(t, recorder, &result)
	assert.InDelta(t, 4.5, result["averageRating"], 0.001)
}

func TestRateStudio_OutOfRange(t *testing.T) {
	router := newStudioRouter(&stubStudioService{})

	// binding rejects ratings above 5 before the service runs
	body := jsonBody(t, dto.RateStudioRequest{Rating: 9})
	recorder := performRequest(t, router, http.MethodPost, "/studios/7/rate", body)

	requireErrorCode(t, recorder, http.StatusBadRequest, dto.ErrorCodeValidationFailed)
}

func TestRateStudio_SelfRating(t *testing.T) {
	stub := &stubStudioService{
		rateFn: func(_ context.Context, _, _ int64, _ int) (float64, error) {
			return 0, apperrors.NewBadRequestError("You cannot rate your own studio")
		},
	}
	router := newStudioRouter(stub)

	body := jsonBody(t, dto.RateStudioRequest{Rating: 5})
	recorder := performRequest(t, router, http.MethodPost, "/studios/7/rate", body)

	requireErrorCode(t, recorder, http.StatusBadRequest, dto.ErrorCodeValidationFailed)
}
