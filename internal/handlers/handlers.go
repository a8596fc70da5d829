package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medwatch/internal/responses"
	"medwatch/internal/services"
)

// pageParams reads pageNumber/pageSize from the query string. Anything
// absent, unparseable or non-positive falls back to the defaults.
func pageParams(c *gin.Context) (int, int) {
	pageNumber, _ := strconv.Atoi(c.Query("pageNumber"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	return services.NormalizePage(pageNumber, pageSize)
}

// setPaginationHeaders exposes the list metadata out-of-band; the body stays
// a plain array.
func setPaginationHeaders(c *gin.Context, total int64, pageNumber, pageSize int) {
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.Header("X-Page-Number", strconv.Itoa(pageNumber))
	c.Header("X-Page-Size", strconv.Itoa(pageSize))
}

// writeServiceError maps the service sentinels onto the response contract.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		responses.Message(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrIDMismatch):
		responses.Message(c, http.StatusBadRequest, "Path id and body id do not match")
	case errors.Is(err, services.ErrBadReference):
		responses.Message(c, http.StatusBadRequest, "Referenced patient or device does not exist")
	case errors.Is(err, services.ErrConflict):
		responses.Message(c, http.StatusInternalServerError, "Concurrent modification conflict")
	default:
		responses.ServerError(c)
	}
}
