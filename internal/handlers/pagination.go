package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/dtos"
)

const vacanciesPerPage = 20

// queryPage reads ?page=; a missing value is page 1.
func queryPage(c *gin.Context) (int, bool) {
	raw := c.Query("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

func lastPage(total int64, perPage int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func pageURL(c *gin.Context, page int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := c.Request.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: q.Encode(),
	}
	s := u.String()
	return &s
}

// paginate builds the listing envelope. It answers 404 and returns false when
// page is past the last one.
func paginate[T any](c *gin.Context, page int, total int64, perPage int, results []T) (dtos.Paginated[T], bool) {
	last := lastPage(total, perPage)
	if page > last {
		respondMessage(c, http.StatusNotFound, "Invalid page.")
		return dtos.Paginated[T]{}, false
	}

	out := dtos.Paginated[T]{Count: total, Results: results}
	if page < last {
		out.Next = pageURL(c, page+1)
	}
	if page > 1 {
		out.Previous = pageURL(c, page-1)
	}
	return out, true
}
