package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

type stubExploreService struct {
	services.ExploreService
	searchFn      func(ctx context.Context, req *dto.ExploreRequest) (interface{}, error)
	searchUsersFn func(ctx context.Context, query string, limit int) ([]dto.UserResponse, error)
}

func (s *stubExploreService) Search(ctx context.Context, req *dto.ExploreRequest) (interface{}, error) {
	return s.searchFn(ctx, req)
}

func (s *stubExploreService) SearchUsers(ctx context.Context, query string, limit int) ([]dto.UserResponse, error) {
	return s.searchUsersFn(ctx, query, limit)
}

func newExploreRouter(stub *stubExploreService) *gin.Engine {
	router := newTestRouter()
	controller := NewExploreController(stub)
	router.GET("/explore", controller.Search)
	router.GET("/users/search", controller.SearchUsers)
	return router
}

func TestExploreSearch_Studios(t *testing.T) {
	stub := &stubExploreService{
		searchFn: func(_ context.Context, req *dto.ExploreRequest) (interface{}, error) {
			assert.Equal(t, "studio", req.Type)
			assert.Equal(t, "audio", req.Query)
			assert.Equal(t, []string{"music"}, req.Tags)
			return &dto.ExploreStudioResponse{
				Type:    "studio",
				Results: []dto.StudioCard{{ID: 7, Name: "Night Owl Audio"}},
			}, nil
		},
	}
	router := newExploreRouter(stub)

	recorder := performRequest(t, router, http.MethodGet, "/explore?q=audio&tags=music", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	var result dto.ExploreStudioResponse
	decodeResponse(t, recorder, &result)
	assert.Equal(t, "studio", result.Type)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "Night Owl Audio", result.Results[0].Name)
}

func TestExploreSearch_DefaultsToStudio(t *testing.T) {
	var gotType string
	stub := &stubExploreService{
		searchFn: func(_ context.Context, req *dto.ExploreRequest) (interface{}, error) {
			gotType = req.Type
			return &dto.ExploreStudioResponse{Type: "studio"}, nil
		},
	}
	router := newExploreRouter(stub)

	recorder := performRequest(t, router, http.MethodGet, "/explore", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "studio", gotType)
}

func TestExploreSearch_UnknownType(t *testing.T) {
	stub := &stubExploreService{
		searchFn: func(_ context.Context, _ *dto.ExploreRequest) (interface{}, error) {
			return nil, apperrors.ErrInvalidSearchType
		},
	}
	router := newExploreRouter(stub)

	recorder := performRequest(t, router, http.MethodGet, "/explore?type=podcast", nil)

	requireErrorCode(t, recorder, http.StatusBadRequest, dto.ErrorCodeValidationFailed)
}

func TestSearchUsers_LimitHandling(t *testing.T) {
	var gotLimit int
	stub := &stubExploreService{
		searchUsersFn: func(_ context.Context, query string, limit int) ([]dto.UserResponse, error) {
			assert.Equal(t, "selin", query)
			gotLimit = limit
			return []dto.UserResponse{{ID: 3, Username: "selin"}}, nil
		},
	}
	router := newExploreRouter(stub)

	recorder := performRequest(t, router, http.MethodGet, "/users/search?q=selin&limit=50", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 50, gotLimit)

	// out-of-range limits fall back to the default
	performRequest(t, router, http.MethodGet, "/users/search?q=selin&limit=500", nil)
	assert.Equal(t, 20, gotLimit)
}
