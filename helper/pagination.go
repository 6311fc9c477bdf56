package helper

import (
	"math"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetPagingUrl returns the current URL with page and limit replaced, keeping
// the other query parameters.
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	query := url.Values{}
	for key, values := range r.URL.Query() {
		query[key] = values
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	return scheme + "://" + r.Host + r.URL.Path + "?" + query.Encode()
}

// GeneratePaging builds the pagination block of a list response.
func (u *HTTPHelper) GeneratePaging(c *gin.Context, limit, page, totalRecord int) map[string]interface{} {
	prevURL, nextURL, firstURL, lastURL := "", "", "", ""

	totalPages := 1
	if limit > 0 {
		totalPages = int(math.Ceil(float64(totalRecord) / float64(limit)))
	}

	if page > 1 && page <= totalPages {
		prevURL = u.GetPagingUrl(c, page-1, limit)
		firstURL = u.GetPagingUrl(c, 1, limit)
	}

	if totalPages > page {
		nextURL = u.GetPagingUrl(c, page+1, limit)
		lastURL = u.GetPagingUrl(c, totalPages, limit)
	}

	return map[string]interface{}{
		"totalRecords": totalRecord,
		"perPage":      limit,
		"currentPage":  page,
		"totalPages":   totalPages,
		"links": map[string]interface{}{
			"previous": prevURL,
			"next":     nextURL,
			"first":    firstURL,
			"last":     lastURL,
		},
	}
}
