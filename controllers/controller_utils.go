package controllers

import (
	"fmt"
	"strconv"

	"bedbook/config"
	"bedbook/services"
	"bedbook/utils"

	"github.com/gin-gonic/gin"
)

// currentUser lấy danh tính đã được AuthMiddleware xác thực từ context
func currentUser(c *gin.Context) (uint, int) {
	return c.GetUint("userID"), c.GetInt("userRole")
}

// parsePagination lấy page/limit từ query, mặc định page 0 limit 10
func parsePagination(c *gin.Context) (int, int) {
	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p >= 0 {
			page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	return page, limit
}

// invalidatePropertyCaches xóa các cache liên quan tới một property sau khi
// topology, khoảng chặn hoặc reservation của nó thay đổi
func invalidatePropertyCaches(propertyID uint) {
	rdb, err := config.ConnectRedis()
	if err != nil {
		utils.LogError("Không thể kết nối Redis để xóa cache: %v", err)
		return
	}
	if err := services.DeleteFromRedis(config.Ctx, rdb, "properties:active"); err != nil {
		utils.LogError("Lỗi khi xóa cache danh sách property: %v", err)
	}
	patterns := []string{
		fmt.Sprintf("calendar:%d:*", propertyID),
		fmt.Sprintf("availability:%d:*", propertyID),
	}
	for _, pattern := range patterns {
		if err := services.DeleteKeysByPattern(config.Ctx, rdb, pattern); err != nil {
			utils.LogError("Lỗi khi xóa cache theo pattern %s: %v", pattern, err)
		}
	}
}
