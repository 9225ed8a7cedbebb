package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的 :id 参数
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
