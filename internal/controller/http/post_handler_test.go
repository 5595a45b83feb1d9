package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkpress/internal/entity"
	"inkpress/internal/usecase"
	"inkpress/pkg/logger"
)

type mockPostUseCase struct {
	mock.Mock
}

func (m *mockPostUseCase) CreatePost(input usecase.CreatePostInput, image *multipart.FileHeader) (*entity.Post, error) {
	args := m.Called(input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *mockPostUseCase) ListPosts(page, limit int, category, tag string) ([]*entity.Post, int64, error) {
	args := m.Called(page, limit, category, tag)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostUseCase) GetPostBySlug(slug string) (*entity.Post, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *mockPostUseCase) UpdatePost(id string, input usecase.UpdatePostInput, image *multipart.FileHeader) (*entity.Post, error) {
	args := m.Called(id, input, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *mockPostUseCase) DeletePost(id string) error {
	return m.Called(id).Error(0)
}

func setupPostRouter(uc usecase.PostUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewPostHandler(uc, logger.New())

	router := gin.New()
	router.POST("/api/blogs", handler.CreatePost)
	router.GET("/api/blogs", handler.GetBlogs)
	router.GET("/api/blogs/:slug", handler.GetBlog)
	router.PUT("/api/blogs/:id", handler.UpdatePost)
	router.DELETE("/api/blogs/:id", handler.DeletePost)
	return router
}

// multipartBody builds a form body; an "image" file part is added when
// imageName is non-empty.
func multipartBody(t *testing.T, fields map[string][]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, values := range fields {
		for _, value := range values {
			require.NoError(t, writer.WriteField(key, value))
		}
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return resp
}

func TestCreatePost_Handler_Success(t *testing.T) {
	uc := new(mockPostUseCase)
	var gotInput usecase.CreatePostInput
	uc.On("CreatePost", mock.AnythingOfType("usecase.CreatePostInput"), mock.Anything).
		Run(func(args mock.Arguments) { gotInput = args.Get(0).(usecase.CreatePostInput) }).
		Return(&entity.Post{Title: "My Post", Slug: "my-post"}, nil)

	body, contentType := multipartBody(t, map[string][]string{
		"title":      {"My Post"},
		"summary":    {"Summary"},
		"content":    {"Content body"},
		"categories": {"Engineering", "Databases"},
		"tags":       {`["go"]`},
	}, "cover.png")

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	setupPostRouter(uc).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.True(t, resp.Success)
	assert.Equal(t, "Blog created successfully", resp.Message)
	assert.Equal(t, []string{"Engineering", "Databases"}, gotInput.Categories)
	assert.Equal(t, `["go"]`, gotInput.TagsJSON)
}

func TestCreatePost_Handler_ValidationErrorIs400(t *testing.T) {
	uc := new(mockPostUseCase)
	uc.On("CreatePost", mock.Anything, mock.Anything).
		Return(nil, &usecase.ValidationError{Message: "Blog image is required"})

	body, contentType := multipartBody(t, map[string][]string{
		"title":      {"My Post"},
		"summary":    {"Summary"},
		"content":    {"Content body"},
		"categories": {"Engineering"},
	}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/blogs", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	setupPostRouter(uc).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.False(t, resp.Success)
	assert.Equal(t, "Blog image is required", resp.Message)
}

func TestGetBlogs_Handler_Pagination(t *testing.T) {
	uc := new(mockPostUseCase)
	uc.On("ListPosts", 2, 10, "", "").
		Return([]*entity.Post{{Slug: "one"}, {Slug: "two"}}, int64(25), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs?page=2", nil)
	recorder := httptest.NewRecorder()
	setupPostRouter(uc).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 2, resp.Pagination.Current)
	assert.Equal(t, 3, resp.Pagination.Pages)
	assert.Equal(t, int64(25), resp.Pagination.Total)
}

func TestGetBlogs_Handler_FiltersPassedThrough(t *testing.T) {
	uc := new(mockPostUseCase)
	uc.On("ListPosts", 1, 10, "Engineering", "go").
		Return([]*entity.Post{}, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs?category=Engineering&tag=go", nil)
	recorder := httptest.NewRecorder()
	setupPostRouter(uc).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	uc.AssertExpectations(t)
}

func TestGetBlog_Handler_NotFound(t *testing.T) {
	uc := new(mockPostUseCase)
	uc.On("GetPostBySlug", "missing").Return(nil, usecase.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs/missing", nil)
	recorder := httptest.NewRecorder()
	setupPostRouter(uc).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.False(t, resp.Success)
	assert.Equal(t, "Blog post not found", resp.Message)
}

func TestGetBlog_Handler_Success(t *testing.T) {
	uc := new(mockPostUseCase)
	uc.On("GetPostBySlug", "my-post").
		Return(&entity.Post{Slug: "my-post", Title: "My Post", Views: 5}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/blogs/my-post", nil)
	recorder := httptest.NewRecorder()
	setupPostRouter(uc).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "my-post", data["slug"])
}

func TestUpdatePost_Handler_OnlySuppliedFieldsSet(t *testing.T) {
	uc := new(mockPostUseCase)
	var gotInput usecase.UpdatePostInput
	uc.On("UpdatePost", "abc", mock.AnythingOfType("usecase.UpdatePostInput"), mock.Anything).
		Run(func(args mock.Arguments) { gotInput = args.Get(1).(usecase.UpdatePostInput) }).
		Return(&entity.Post{Slug: "updated"}, nil)

	body, contentType := multipartBody(t, map[string][]string{
		"title": {"Updated Title"},
	}, "")

	req := httptest.NewRequest(http.MethodPut, "/api/blogs/abc", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	setupPostRouter(uc).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, gotInput.Title)
	assert.Equal(t, "Updated Title", *gotInput.Title)
	assert.Nil(t, gotInput.Summary)
	assert.Nil(t, gotInput.Content)
	assert.Nil(t, gotInput.Status)
	assert.Nil(t, gotInput.Categories)

	resp := decodeResponse(t, recorder)
	assert.Equal(t, "Blog updated successfully", resp.Message)
}

func TestUpdatePost_Handler_InvalidID(t *testing.T) {
	uc := new(mockPostUseCase)
	uc.On("UpdatePost", "nope", mock.Anything, mock.Anything).
		Return(nil, &usecase.ValidationError{Message: "Invalid blog ID format"})

	body, contentType := multipartBody(t, map[string][]string{}, "")
	req := httptest.NewRequest(http.MethodPut, "/api/blogs/nope", body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	setupPostRouter(uc).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDeletePost_Handler_Success(t *testing.T) {
	uc := new(mockPostUseCase)
	uc.On("DeletePost", "abc").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/blogs/abc", nil)
	recorder := httptest.NewRecorder()
	setupPostRouter(uc).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.True(t, resp.Success)
	assert.Equal(t, "Blog deleted successfully", resp.Message)
}

func TestDeletePost_Handler_NotFound(t *testing.T) {
	uc := new(mockPostUseCase)
	uc.On("DeletePost", "abc").Return(usecase.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/blogs/abc", nil)
	recorder := httptest.NewRecorder()
	setupPostRouter(uc).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.Equal(t, "Blog post not found", resp.Message)
}
