package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nexload-backend/internal/domains/resource/handler"
	"nexload-backend/internal/domains/resource/model"
	"nexload-backend/internal/domains/resource/service/mocks"
	"nexload-backend/internal/shared/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(svc *mocks.ResourceServiceMock, userID string) *gin.Engine {
	h := handler.NewResourceHandler(svc)

	router := gin.New()
	if userID != "" {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.CtxUserID, userID)
			c.Next()
		})
	}

	router.GET("/api/resources", h.List)
	router.GET("/api/resources/:id", h.GetByID)
	router.GET("/api/resources/:id/download", h.Download)
	router.GET("/api/search", h.Search)
	router.GET("/api/stats", h.Stats)
	router.POST("/api/upload", h.Upload)
	router.POST("/api/upload/sign", h.SignUpload)
	router.GET("/api/user/resources", h.ListMine)
	router.PUT("/api/resources/:id", h.Update)
	router.DELETE("/api/resources/:id", h.Delete)

	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
	} `json:"meta"`
}

func doRequest(router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestListHandler(t *testing.T) {
	svc := new(mocks.ResourceServiceMock)
	svc.On("List", mock.Anything, 1, 8).
		Return([]model.Resource{{ID: 1, Title: "Kit"}}, nil)

	router := setupRouter(svc, "")

	w, env := doRequest(router, http.MethodGet, "/api/resources?page=1&limit=8", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	svc.AssertExpectations(t)
}

func TestListHandlerBadParamsFallBack(t *testing.T) {
	svc := new(mocks.ResourceServiceMock)
	svc.On("List", mock.Anything, 0, 8).Return([]model.Resource{}, nil)

	router := setupRouter(svc, "")

	w, _ := doRequest(router, http.MethodGet, "/api/resources?page=abc&limit=-5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListHandlerMetaReportsEffectivePaging(t *testing.T) {
	svc := new(mocks.ResourceServiceMock)
	svc.On("List", mock.Anything, 0, 100).Return([]model.Resource{}, nil)

	router := setupRouter(svc, "")

	w, env := doRequest(router, http.MethodGet, "/api/resources?page=0&limit=1000", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 0, env.Meta.Page)
	assert.Equal(t, 100, env.Meta.Limit)
	svc.AssertExpectations(t)
}

func TestGetByIDHandler(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)
		svc.On("Get", mock.Anything, int64(3)).
			Return(&model.ResourceWithOwner{Resource: model.Resource{ID: 3}}, nil)

		w, env := doRequest(setupRouter(svc, ""), http.MethodGet, "/api/resources/3", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
	})

	t.Run("Not found", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)
		svc.On("Get", mock.Anything, int64(99)).Return(nil, model.ErrResourceNotFound)

		w, env := doRequest(setupRouter(svc, ""), http.MethodGet, "/api/resources/99", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("Invalid id", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)

		w, _ := doRequest(setupRouter(svc, ""), http.MethodGet, "/api/resources/abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestSearchHandler(t *testing.T) {
	t.Run("Empty query yields empty array", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)
		svc.On("Search", mock.Anything, "").Return([]model.Resource{}, nil)

		w, env := doRequest(setupRouter(svc, ""), http.MethodGet, "/api/search", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "[]", string(env.Data))
	})

	t.Run("Matches", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)
		svc.On("Search", mock.Anything, "icons").
			Return([]model.Resource{{ID: 1, Title: "Icon pack"}}, nil)

		w, _ := doRequest(setupRouter(svc, ""), http.MethodGet, "/api/search?q=icons", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDownloadHandler(t *testing.T) {
	svc := new(mocks.ResourceServiceMock)
	svc.On("IssueDownload", mock.Anything, int64(3)).
		Return(&model.DownloadGrant{URL: "http://signed/download", Downloads: 12}, nil)

	w, env := doRequest(setupRouter(svc, ""), http.MethodGet, "/api/resources/3/download", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var grant model.DownloadGrant
	require.NoError(t, json.Unmarshal(env.Data, &grant))
	assert.Equal(t, "http://signed/download", grant.URL)
	assert.Equal(t, int64(12), grant.Downloads)
}

func TestUploadHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Requires authentication", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)

		w, env := doRequest(setupRouter(svc, ""), http.MethodPost, "/api/upload", model.UploadRequest{})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("Validation error maps to 400", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)
		svc.On("Upload", mock.Anything, userID, mock.Anything).
			Return(nil, model.NewValidationError("file and image info are required"))

		w, env := doRequest(setupRouter(svc, userID.String()), http.MethodPost, "/api/upload", model.UploadRequest{Title: "x"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, model.ErrCodeValidation, env.Error.Code)
	})

	t.Run("Created", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)
		svc.On("Upload", mock.Anything, userID, mock.Anything).
			Return(&model.Resource{ID: 42, Title: "Kit"}, nil)

		w, env := doRequest(setupRouter(svc, userID.String()), http.MethodPost, "/api/upload", model.UploadRequest{
			Title:    "Kit",
			ImageURL: "http://x/b/i.png",
			FilePath: "http://x/b/f.zip",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
	})
}

func TestUpdateHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Non-owner maps to 403", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)
		svc.On("Update", mock.Anything, userID, int64(7), mock.Anything).
			Return(nil, model.ErrNotOwner)

		title := "x"
		w, env := doRequest(setupRouter(svc, userID.String()), http.MethodPut, "/api/resources/7", model.UpdateRequest{Title: &title})

		assert.Equal(t, http.StatusForbidden, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("Updated", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)
		svc.On("Update", mock.Anything, userID, int64(7), mock.Anything).
			Return(&model.Resource{ID: 7, Title: "New"}, nil)

		title := "New"
		w, _ := doRequest(setupRouter(svc, userID.String()), http.MethodPut, "/api/resources/7", model.UpdateRequest{Title: &title})

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDeleteHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Deleted", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)
		svc.On("Delete", mock.Anything, userID, int64(7)).Return(nil)

		w, env := doRequest(setupRouter(svc, userID.String()), http.MethodDelete, "/api/resources/7", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
	})

	t.Run("Not found maps to 404", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)
		svc.On("Delete", mock.Anything, userID, int64(99)).Return(model.ErrResourceNotFound)

		w, _ := doRequest(setupRouter(svc, userID.String()), http.MethodDelete, "/api/resources/99", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Requires authentication", func(t *testing.T) {
		svc := new(mocks.ResourceServiceMock)

		w, _ := doRequest(setupRouter(svc, ""), http.MethodDelete, "/api/resources/7", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListMineHandler(t *testing.T) {
	userID := uuid.New()

	svc := new(mocks.ResourceServiceMock)
	svc.On("ListByUser", mock.Anything, userID).
		Return([]model.Resource{{ID: 1}}, nil)

	w, env := doRequest(setupRouter(svc, userID.String()), http.MethodGet, "/api/user/resources", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	svc.AssertExpectations(t)
}

func TestStatsHandler(t *testing.T) {
	svc := new(mocks.ResourceServiceMock)
	svc.On("Stats", mock.Anything).
		Return(&model.Stats{Resources: 10, Users: 4, Downloads: 250}, nil)

	w, env := doRequest(setupRouter(svc, ""), http.MethodGet, "/api/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats model.Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(250), stats.Downloads)
}
