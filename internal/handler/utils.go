package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive integer path parameter. On failure it writes a
// 400 with the given code and returns false.
func parseID(c *gin.Context, param, code, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 0)
	if err != nil || id == 0 {
		writeError(c, http.StatusBadRequest, code, message)
		return 0, false
	}
	return uint(id), true
}

func created(c *gin.Context, family string, id uint, body any) {
	c.Header("Location", fmt.Sprintf("/api/%s/%d", family, id))
	c.JSON(http.StatusCreated, body)
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
