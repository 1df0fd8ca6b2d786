package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  response.Page
	}{
		{"defaults", "", response.Page{Page: 1, PageSize: 10}},
		{"explicit", "page=3&page_size=25", response.Page{Page: 3, PageSize: 25}},
		{"clamped", "page_size=500", response.Page{Page: 1, PageSize: 100}},
		{"garbage", "page=x&page_size=-4", response.Page{Page: 1, PageSize: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, response.ParsePage(contextWithQuery(tt.query)))
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := response.NewPaginationMeta(25, response.Page{Page: 2, PageSize: 10})
	assert.Equal(t, 3, *meta.NextPage)
	assert.Equal(t, 1, *meta.PreviousPage)

	last := response.NewPaginationMeta(25, response.Page{Page: 3, PageSize: 10})
	assert.Nil(t, last.NextPage)

	first := response.NewPaginationMeta(5, response.Page{Page: 1, PageSize: 10})
	assert.Nil(t, first.PreviousPage)
	assert.Nil(t, first.NextPage)
}
