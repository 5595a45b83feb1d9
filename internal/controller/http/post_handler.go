package http

import (
	"errors"
	"net/http"
	"strconv"

	"inkpress/internal/usecase"
	"inkpress/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type createPostRequest struct {
	Title           string   `form:"title"`
	Slug            string   `form:"slug"`
	Summary         string   `form:"summary"`
	Content         string   `form:"content"`
	Categories      []string `form:"categories"`
	Tags            string   `form:"tags"`
	MetaDescription string   `form:"metaDescription"`
	Status          string   `form:"status"`
	Author          string   `form:"author"`
}

// CreatePost godoc
// @Summary      Create a blog post
// @Description  Create a blog post from a multipart form with an image file. Tags are sent as a JSON-encoded string array.
// @Tags         blogs
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Post title (max 100 chars)"
// @Param        slug formData string false "Explicit slug; derived from title when omitted"
// @Param        summary formData string true "Post summary (max 200 chars)"
// @Param        content formData string true "Full post body"
// @Param        categories formData []string true "Category labels" collectionFormat(multi)
// @Param        tags formData string false "JSON array of tags"
// @Param        metaDescription formData string false "Meta description (max 160 chars)"
// @Param        status formData string false "draft or published" Enums(draft, published)
// @Param        author formData string false "Author name"
// @Param        image formData file true "Blog image"
// @Success      201  {object}  Response
// @Failure      400  {object}  Response
// @Failure      500  {object}  Response
// @Router       /blogs [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	post, err := h.postUseCase.CreatePost(usecase.CreatePostInput{
		Title:           req.Title,
		Slug:            req.Slug,
		Summary:         req.Summary,
		Content:         req.Content,
		Categories:      req.Categories,
		TagsJSON:        req.Tags,
		MetaDescription: req.MetaDescription,
		Status:          req.Status,
		Author:          req.Author,
	}, image)
	if err != nil {
		if usecase.IsValidation(err) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Create blog error: %v", err)
		respondErrorDetail(c, http.StatusInternalServerError, "Error creating blog post", err.Error())
		return
	}

	respondMessage(c, http.StatusCreated, "Blog created successfully", post)
}

// GetBlogs godoc
// @Summary      List published blog posts
// @Description  Paginated list of published posts, newest first, content excluded. Optional category and tag filters.
// @Tags         blogs
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(10)
// @Param        category query string false "Category filter"
// @Param        tag query string false "Tag filter"
// @Success      200  {object}  Response
// @Failure      500  {object}  Response
// @Router       /blogs [get]
func (h *PostHandler) GetBlogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	posts, total, err := h.postUseCase.ListPosts(page, limit, c.Query("category"), c.Query("tag"))
	if err != nil {
		h.logger.Error("Get blogs error: %v", err)
		respondErrorDetail(c, http.StatusInternalServerError, "Error fetching blogs", err.Error())
		return
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    posts,
		Pagination: &Pagination{
			Current: page,
			Pages:   pages,
			Total:   total,
		},
	})
}

// GetBlog godoc
// @Summary      Get one published blog post
// @Description  Fetch a published post by slug; increments its view counter.
// @Tags         blogs
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200  {object}  Response
// @Failure      404  {object}  Response
// @Router       /blogs/{slug} [get]
func (h *PostHandler) GetBlog(c *gin.Context) {
	post, err := h.postUseCase.GetPostBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Blog post not found")
			return
		}
		h.logger.Error("Get blog error: %v", err)
		respondErrorDetail(c, http.StatusInternalServerError, "Error fetching blog post", err.Error())
		return
	}

	respondData(c, http.StatusOK, post)
}

// UpdatePost godoc
// @Summary      Update a blog post
// @Description  Partial update via multipart form; only supplied fields change. A new image replaces the old one.
// @Tags         blogs
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        image formData file false "Replacement blog image"
// @Success      200  {object}  Response
// @Failure      400  {object}  Response
// @Failure      404  {object}  Response
// @Router       /blogs/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	input := usecase.UpdatePostInput{
		Title:           postFormPtr(c, "title"),
		Slug:            postFormPtr(c, "slug"),
		Summary:         postFormPtr(c, "summary"),
		Content:         postFormPtr(c, "content"),
		TagsJSON:        postFormPtr(c, "tags"),
		MetaDescription: postFormPtr(c, "metaDescription"),
		Status:          postFormPtr(c, "status"),
		Author:          postFormPtr(c, "author"),
	}
	if categories, ok := c.GetPostFormArray("categories"); ok {
		input.Categories = categories
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	post, err := h.postUseCase.UpdatePost(c.Param("id"), input, image)
	if err != nil {
		switch {
		case usecase.IsValidation(err):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrNotFound):
			respondError(c, http.StatusNotFound, "Blog post not found")
		default:
			h.logger.Error("Edit blog error: %v", err)
			respondErrorDetail(c, http.StatusInternalServerError, "Error updating blog post", err.Error())
		}
		return
	}

	respondMessage(c, http.StatusOK, "Blog updated successfully", post)
}

// DeletePost godoc
// @Summary      Delete a blog post
// @Description  Removes the post and makes a best-effort attempt to delete its stored image.
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  Response
// @Failure      400  {object}  Response
// @Failure      404  {object}  Response
// @Router       /blogs/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	err := h.postUseCase.DeletePost(c.Param("id"))
	if err != nil {
		switch {
		case usecase.IsValidation(err):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrNotFound):
			respondError(c, http.StatusNotFound, "Blog post not found")
		default:
			h.logger.Error("Delete blog error: %v", err)
			respondErrorDetail(c, http.StatusInternalServerError, "Error deleting blog post", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Message: "Blog deleted successfully"})
}

// postFormPtr distinguishes an absent form field from an empty one.
func postFormPtr(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok {
		return &value
	}
	return nil
}
