package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params are the list-query parameters every paginated endpoint accepts.
// "first" is the page size, named after the query vocabulary the frontend
// already uses.
type Params struct {
	Page    int
	PerPage int
	Search  string
}

// Info is the paginator block returned alongside every page of data.
type Info struct {
	CurrentPage  int  `json:"current_page"`
	LastPage     int  `json:"last_page"`
	PerPage      int  `json:"per_page"`
	Total        int  `json:"total"`
	HasMorePages bool `json:"has_more_pages"`
}

// FromQuery reads page/first/search from the request, clamping to sane bounds.
func FromQuery(c *gin.Context) Params {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("first", strconv.Itoa(DefaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Params{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search"),
	}
}

// Offset is the SQL offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewInfo derives the paginator block from a total row count.
func NewInfo(p Params, total int) Info {
	lastPage := total / p.PerPage
	if total%p.PerPage != 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}

	return Info{
		CurrentPage:  p.Page,
		LastPage:     lastPage,
		PerPage:      p.PerPage,
		Total:        total,
		HasMorePages: p.Page < lastPage,
	}
}

// Envelope is the uniform list response: rows plus paginator info.
func Envelope(data any, info Info) gin.H {
	return gin.H{
		"data":           data,
		"paginator_info": info,
	}
}
