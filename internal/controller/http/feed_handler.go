package http

import (
	"net/http"

	"inkpress/internal/feed"
	"inkpress/pkg/logger"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	collection *feed.Collection
	logger     *logger.Logger
}

// NewFeedHandler serves the static collection. A nil collection means the
// load failed at startup; the pipeline never runs in that case.
func NewFeedHandler(collection *feed.Collection, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		collection: collection,
		logger:     logger,
	}
}

// GetFeed godoc
// @Summary      Browse the blog collection
// @Description  Runs the search/filter/sort pipeline over the static collection and returns the featured and general display regions.
// @Tags         feed
// @Produce      json
// @Param        search query string false "Free-text search over title, description, tags and categories"
// @Param        category query string false "Category filter; 'all' or empty disables it"
// @Param        sort query string false "Sort mode" Enums(newest, oldest, title-asc, title-desc)
// @Success      200  {object}  Response
// @Failure      500  {object}  Response
// @Router       /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	if h.collection == nil {
		respondError(c, http.StatusInternalServerError, "Error loading blog data")
		return
	}

	state := feed.DefaultState()
	state.Search = c.Query("search")
	if filter := c.Query("category"); filter != "" {
		state.Filter = filter
	}
	switch mode := feed.SortMode(c.Query("sort")); mode {
	case feed.SortNewest, feed.SortOldest, feed.SortTitleAsc, feed.SortTitleDesc:
		state.Sort = mode
	}

	respondData(c, http.StatusOK, feed.Recompute(h.collection.Blogs, state))
}
