package response

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Page struct {
	Page     int
	PageSize int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p Page) Limit() int {
	return p.PageSize
}

// ParsePage reads page and page_size from the query string, falling back to
// the defaults on missing or malformed values and clamping to MaxPageSize.
func ParsePage(c *gin.Context) Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Page: page, PageSize: size}
}

type PaginationMeta struct {
	Page         int   `json:"page"`
	PageSize     int   `json:"page_size"`
	Total        int64 `json:"total"`
	NextPage     *int  `json:"next_page"`
	PreviousPage *int  `json:"previous_page"`
}

func NewPaginationMeta(total int64, p Page) PaginationMeta {
	meta := PaginationMeta{
		Page:     p.Page,
		PageSize: p.PageSize,
		Total:    total,
	}
	if int64(p.Page*p.PageSize) < total {
		next := p.Page + 1
		meta.NextPage = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		meta.PreviousPage = &prev
	}
	return meta
}
