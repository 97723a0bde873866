package search

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gatherly/core/router"
	"gatherly/core/types"
)

type SearchController struct {
	Service *SearchService
}

func NewSearchController(service *SearchService) *SearchController {
	return &SearchController{Service: service}
}

func (c *SearchController) Routes(router *router.RouterGroup) {
	router.GET("/search/global", c.Global)
	router.GET("/search/meetings", c.Meetings)
	router.GET("/search/posts", c.Posts)
	router.GET("/search/comments", c.Comments)
	router.GET("/search/users", c.Users)
	router.GET("/search/suggestions", c.Suggestions)
	router.GET("/search/popular-terms", c.PopularTerms)
}

// parseFilters reads the shared filter query parameters. Returns a
// client-facing message when a value cannot be parsed.
func parseFilters(ctx *router.Context) (*SearchFilters, string) {
	filters := DefaultFilters()

	if typesParam := ctx.Query("types"); typesParam != "" {
		for _, raw := range strings.Split(typesParam, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			searchType, ok := ParseSearchType(strings.ToLower(raw))
			if !ok || searchType == SearchTypeGlobal {
				return nil, "Unknown search type: " + raw
			}
			filters.Types = append(filters.Types, searchType)
		}
	}

	if fromParam := ctx.Query("from_date"); fromParam != "" {
		from, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			return nil, "Invalid from_date, expected RFC3339"
		}
		filters.FromDate = &from
	}

	if toParam := ctx.Query("to_date"); toParam != "" {
		to, err := time.Parse(time.RFC3339, toParam)
		if err != nil {
			return nil, "Invalid to_date, expected RFC3339"
		}
		filters.ToDate = &to
	}

	if authorsParam := ctx.Query("authors"); authorsParam != "" {
		for _, raw := range strings.Split(authorsParam, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, "Invalid author id: " + raw
			}
			filters.Authors = append(filters.Authors, uint(id))
		}
	}

	if activeParam := ctx.Query("active_only"); activeParam != "" {
		active, err := strconv.ParseBool(activeParam)
		if err != nil {
			return nil, "Invalid active_only, expected true or false"
		}
		filters.ActiveOnly = active
	}

	filters.SortBy = ctx.Query("sort")
	filters.SortDirection = ctx.Query("order")

	return filters, ""
}

func parsePaging(ctx *router.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	return page, pageSize
}

// requestContext attaches best-effort audit metadata to the request context.
func requestContext(ctx *router.Context) context.Context {
	info := RequestInfo{
		IpAddress: ctx.ClientIP(),
		UserAgent: ctx.Request.UserAgent(),
	}
	if userId := ctx.GetUint("user_id"); userId != 0 {
		info.UserId = &userId
	}
	return WithRequestInfo(ctx.Request.Context(), info)
}

// Global godoc
// @Summary Search across all content
// @Description Search meetings, posts, comments and users in one merged, ranked page
// @Tags App/Search
// @Accept json
// @Produce json
// @Param q query string true "Search query"
// @Param types query string false "Comma-separated subset of meeting,post,comment,user"
// @Param page query int false "Page number"
// @Param page_size query int false "Number of items per page"
// @Param sort query string false "Sort key (relevance, date, title)"
// @Param order query string false "Sort order (asc, desc)"
// @Success 200 {object} search.SearchResultsPage
// @Failure 400 {object} types.ErrorResponse
// @Router /search/global [get]
func (c *SearchController) Global(ctx *router.Context) error {
	filters, msg := parseFilters(ctx)
	if msg != "" {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
	}
	page, pageSize := parsePaging(ctx)

	result, err := c.Service.GlobalSearch(requestContext(ctx), ctx.Query("q"), filters, page, pageSize)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, result)
}

// Meetings godoc
// @Summary Search meetings
// @Description Search meetings by title and description
// @Tags App/Search
// @Accept json
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number"
// @Param page_size query int false "Number of items per page"
// @Success 200 {array} search.MeetingSearchResult
// @Failure 400 {object} types.ErrorResponse
// @Router /search/meetings [get]
func (c *SearchController) Meetings(ctx *router.Context) error {
	filters, msg := parseFilters(ctx)
	if msg != "" {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
	}
	page, pageSize := parsePaging(ctx)

	results, err := c.Service.SearchMeetings(requestContext(ctx), ctx.Query("q"), filters, page, pageSize)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, results)
}

// Posts godoc
// @Summary Search posts
// @Description Search posts by title and content
// @Tags App/Search
// @Accept json
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number"
// @Param page_size query int false "Number of items per page"
// @Success 200 {array} search.PostSearchResult
// @Failure 400 {object} types.ErrorResponse
// @Router /search/posts [get]
func (c *SearchController) Posts(ctx *router.Context) error {
	filters, msg := parseFilters(ctx)
	if msg != "" {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
	}
	page, pageSize := parsePaging(ctx)

	results, err := c.Service.SearchPosts(requestContext(ctx), ctx.Query("q"), filters, page, pageSize)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, results)
}

// Comments godoc
// @Summary Search comments
// @Description Search comments by content
// @Tags App/Search
// @Accept json
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number"
// @Param page_size query int false "Number of items per page"
// @Success 200 {array} search.CommentSearchResult
// @Failure 400 {object} types.ErrorResponse
// @Router /search/comments [get]
func (c *SearchController) Comments(ctx *router.Context) error {
	filters, msg := parseFilters(ctx)
	if msg != "" {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
	}
	page, pageSize := parsePaging(ctx)

	results, err := c.Service.SearchComments(requestContext(ctx), ctx.Query("q"), filters, page, pageSize)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, results)
}

// Users godoc
// @Summary Search users
// @Description Search users by name and email
// @Tags App/Search
// @Accept json
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page number"
// @Param page_size query int false "Number of items per page"
// @Success 200 {array} search.UserSearchResult
// @Failure 400 {object} types.ErrorResponse
// @Router /search/users [get]
func (c *SearchController) Users(ctx *router.Context) error {
	filters, msg := parseFilters(ctx)
	if msg != "" {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
	}
	page, pageSize := parsePaging(ctx)

	results, err := c.Service.SearchUsers(requestContext(ctx), ctx.Query("q"), filters, page, pageSize)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, results)
}

// Suggestions godoc
// @Summary Autocomplete suggestions
// @Description Suggest completions for a partial query from titles, names and locations
// @Tags App/Search
// @Accept json
// @Produce json
// @Param q query string true "Partial query"
// @Param max query int false "Maximum number of suggestions"
// @Success 200 {array} search.Suggestion
// @Failure 400 {object} types.ErrorResponse
// @Router /search/suggestions [get]
func (c *SearchController) Suggestions(ctx *router.Context) error {
	max, err := strconv.Atoi(ctx.DefaultQuery("max", "10"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid max"})
	}

	suggestions, err := c.Service.GetSearchSuggestions(ctx.Request.Context(), ctx.Query("q"), max)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, suggestions)
}

// PopularTerms godoc
// @Summary Popular search terms
// @Description Frequency-ranked query tokens from the trailing 30 days
// @Tags App/Search
// @Accept json
// @Produce json
// @Param count query int false "Maximum number of terms"
// @Success 200 {array} string
// @Failure 400 {object} types.ErrorResponse
// @Router /search/popular-terms [get]
func (c *SearchController) PopularTerms(ctx *router.Context) error {
	count, err := strconv.Atoi(ctx.DefaultQuery("count", "10"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Invalid count"})
	}

	terms, err := c.Service.GetPopularSearchTerms(ctx.Request.Context(), count)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
	}

	return ctx.JSON(http.StatusOK, terms)
}
