package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPerPage = 100

// pageParams reads and clamps ?page= and ?per_page= so the response
// echoes the values actually used by the query.
func pageParams(c *gin.Context, defaultPerPage int) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}
	return page, perPage
}
