package controllers

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"bedbook/config"
	"bedbook/dto"
	"bedbook/models"
	"bedbook/response"
	"bedbook/services"
	"bedbook/validator"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/gin-gonic/gin"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"
)

func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len(a))
	if float64(len(b)) > maxLen {
		maxLen = float64(len(b))
	}

	if maxLen == 0 {
		return 1.0 // Nếu cả hai chuỗi đều rỗng, tương đồng là 100%
	}

	similarity := 1.0 - float64(distance)/maxLen
	return similarity
}

func prepareUniqueList(properties []models.Property, field string) []string {
	uniqueValues := make(map[string]bool)

	for _, p := range properties {
		var value string
		switch field {
		case "province":
			value = p.Province
		case "district":
			value = p.District
		}
		if value != "" {
			uniqueValues[normalizeInput(value)] = true
		}
	}

	uniqueList := make([]string, 0, len(uniqueValues))
	for val := range uniqueValues {
		uniqueList = append(uniqueList, val)
	}
	return uniqueList
}

func calculateScore(query string, p models.Property, cmProvince, cmDistrict *closestmatch.ClosestMatch) int {
	normalizedQuery := normalizeInput(query)
	score := 0

	if calculateSimilarity(normalizedQuery, normalizeInput(p.Name)) > 0.6 {
		score += 20
	}
	if strings.Contains(normalizeInput(p.Name), normalizedQuery) {
		score += 10
	}
	score += calculateLocationScore(normalizedQuery, p, cmProvince, cmDistrict)

	return score
}

func calculateLocationScore(query string, p models.Property, cmProvince, cmDistrict *closestmatch.ClosestMatch) int {
	score := 0
	if cmProvince.Closest(query) == normalizeInput(p.Province) {
		score += 13
	}
	if cmDistrict.Closest(query) == normalizeInput(p.District) {
		score += 1
	}
	return score
}

func filterAndScoreProperties(
	query string,
	properties []models.Property,
	cmProvince, cmDistrict *closestmatch.ClosestMatch,
) []dto.ScoredProperty {
	var filteredProperties []dto.ScoredProperty
	scoreCh := make(chan dto.ScoredProperty, len(properties))
	var wg sync.WaitGroup

	for _, p := range properties {
		wg.Add(1)
		go func(p models.Property) {
			defer wg.Done()
			score := calculateScore(query, p, cmProvince, cmDistrict)
			if score > 0 {
				scoreCh <- dto.ScoredProperty{
					Property: p,
					Score:    score,
				}
			}
		}(p)
	}

	go func() {
		wg.Wait()
		close(scoreCh)
	}()

	for scored := range scoreCh {
		filteredProperties = append(filteredProperties, scored)
	}

	sort.SliceStable(filteredProperties, func(i, j int) bool {
		return filteredProperties[i].Score > filteredProperties[j].Score
	})
	return filteredProperties
}

// getActiveProperties lấy danh sách property đang hoạt động, ưu tiên cache
func getActiveProperties() ([]models.Property, error) {
	var properties []models.Property
	cacheKey := "properties:active"

	rdb, err := config.ConnectRedis()
	if err == nil {
		if err := services.GetFromRedis(config.Ctx, rdb, cacheKey, &properties); err == nil && len(properties) > 0 {
			return properties, nil
		}
	}

	if err := config.DB.Preload("Rooms.Beds").
		Where("is_active = ?", true).
		Find(&properties).Error; err != nil {
		return nil, err
	}

	if rdb != nil {
		if err := services.SetToRedis(config.Ctx, rdb, cacheKey, properties, 60*time.Minute); err != nil {
			log.Printf("Lỗi khi lưu danh sách property vào Redis: %v", err)
		}
	}
	return properties, nil
}

func toPropertyResponse(p models.Property) dto.PropertyResponse {
	return dto.PropertyResponse{
		ID:               p.ID,
		HostID:           p.HostID,
		Name:             p.Name,
		Address:          p.Address,
		Province:         p.Province,
		District:         p.District,
		ShortDescription: p.ShortDescription,
		Avatar:           p.Avatar,
		PricePerNight:    p.PricePerNight,
		IsActive:         p.IsActive,
		NumRooms:         len(p.Rooms),
		NumBeds:          p.TotalBeds(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toRoomResponse(r models.Room) dto.RoomResponse {
	beds := make([]dto.BedResponse, 0, len(r.Beds))
	for _, b := range r.Beds {
		beds = append(beds, dto.BedResponse{
			BedID:         b.BedID,
			RoomID:        b.RoomID,
			Position:      b.Position,
			Label:         b.Label,
			PricePerNight: b.PricePerNight,
			IsAvailable:   b.IsAvailable,
		})
	}
	return dto.RoomResponse{
		RoomID:    r.RoomID,
		RoomName:  r.RoomName,
		Position:  r.Position,
		IsPrivate: r.IsPrivate,
		Beds:      beds,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// GetAllPropertiesForUser lấy danh sách property công khai cho khách, hỗ trợ
// tìm kiếm gần đúng theo tên/tỉnh/quận và phân trang
func GetAllPropertiesForUser(c *gin.Context) {
	properties, err := getActiveProperties()
	if err != nil {
		log.Printf("Lỗi khi lấy danh sách property: %v", err)
		response.ServerError(c)
		return
	}

	query := c.Query("search")
	province := c.Query("province")
	district := c.Query("district")

	if province != "" || district != "" {
		var filtered []models.Property
		for _, p := range properties {
			if province != "" && normalizeInput(p.Province) != normalizeInput(province) {
				continue
			}
			if district != "" && normalizeInput(p.District) != normalizeInput(district) {
				continue
			}
			filtered = append(filtered, p)
		}
		properties = filtered
	}

	if query != "" {
		cmProvince := createMatcher(prepareUniqueList(properties, "province"))
		cmDistrict := createMatcher(prepareUniqueList(properties, "district"))
		scored := filterAndScoreProperties(query, properties, cmProvince, cmDistrict)

		properties = make([]models.Property, 0, len(scored))
		for _, s := range scored {
			properties = append(properties, s.Property)
		}
	}

	page, limit := parsePagination(c)
	total := len(properties)
	start := page * limit
	end := start + limit
	if start >= total {
		properties = []models.Property{}
	} else {
		if end > total {
			end = total
		}
		properties = properties[start:end]
	}

	results := make([]dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		results = append(results, toPropertyResponse(p))
	}

	response.SuccessWithPagination(c, results, page, limit, total)
}

// GetAllProperties lấy danh sách property của chủ nhà hiện tại
func GetAllProperties(c *gin.Context) {
	hostID, _ := currentUser(c)

	var properties []models.Property
	if err := config.DB.Preload("Rooms.Beds").
		Where("host_id = ?", hostID).
		Find(&properties).Error; err != nil {
		log.Printf("Lỗi khi lấy danh sách property của chủ nhà %d: %v", hostID, err)
		response.ServerError(c)
		return
	}

	page, limit := parsePagination(c)
	total := len(properties)
	start := page * limit
	end := start + limit
	if start >= total {
		properties = []models.Property{}
	} else {
		if end > total {
			end = total
		}
		properties = properties[start:end]
	}

	results := make([]dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		results = append(results, toPropertyResponse(p))
	}

	response.SuccessWithPagination(c, results, page, limit, total)
}

// CreateProperty tạo property mới cho chủ nhà hiện tại. Property mới chưa có
// phòng nên IsActive mặc định false cho tới khi có ít nhất một phòng.
func CreateProperty(c *gin.Context) {
	hostID, _ := currentUser(c)

	var req dto.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	property := models.Property{
		HostID:           hostID,
		Name:             req.Name,
		Address:          req.Address,
		Province:         req.Province,
		District:         req.District,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Avatar:           req.Avatar,
		Img:              req.Img,
		PricePerNight:    req.PricePerNight,
		IsActive:         false,
	}

	if err := validator.ValidateProperty(&property); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := config.DB.Create(&property).Error; err != nil {
		log.Printf("Lỗi khi tạo property: %v", err)
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(property.ID)
	response.Success(c, toPropertyResponse(property))
}

// GetPropertyDetail lấy chi tiết property kèm topology phòng/giường
func GetPropertyDetail(c *gin.Context) {
	var property models.Property
	if err := config.DB.Preload("Rooms", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Rooms.Beds", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&property, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	rooms := make([]dto.RoomResponse, 0, len(property.Rooms))
	for _, r := range property.Rooms {
		rooms = append(rooms, toRoomResponse(r))
	}

	response.Success(c, dto.PropertyDetailResponse{
		PropertyResponse: toPropertyResponse(property),
		Description:      property.Description,
		Img:              property.Img,
		Rooms:            rooms,
	})
}

// UpdateProperty cập nhật thông tin property, chỉ chủ nhà sở hữu mới được sửa
func UpdateProperty(c *gin.Context) {
	hostID, _ := currentUser(c)

	var req dto.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	var property models.Property
	if err := config.DB.First(&property, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if property.HostID != hostID {
		response.Forbidden(c)
		return
	}

	if req.Name != "" {
		property.Name = req.Name
	}
	if req.Address != "" {
		property.Address = req.Address
	}
	if req.Province != "" {
		property.Province = req.Province
	}
	if req.District != "" {
		property.District = req.District
	}
	if req.ShortDescription != "" {
		property.ShortDescription = req.ShortDescription
	}
	if req.Description != "" {
		property.Description = req.Description
	}
	if req.Avatar != "" {
		property.Avatar = req.Avatar
	}
	if req.Img != nil {
		property.Img = req.Img
	}
	if req.PricePerNight > 0 {
		property.PricePerNight = req.PricePerNight
	}

	if err := config.DB.Save(&property).Error; err != nil {
		log.Printf("Lỗi khi cập nhật property %d: %v", property.ID, err)
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(property.ID)
	response.Success(c, toPropertyResponse(property))
}

// ChangePropertyStatus bật/tắt property. Property không có phòng thì không
// được bật lại.
func ChangePropertyStatus(c *gin.Context) {
	hostID, _ := currentUser(c)

	var req struct {
		ID       uint `json:"id" binding:"required"`
		IsActive bool `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	var property models.Property
	if err := config.DB.Preload("Rooms").First(&property, req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	if property.HostID != hostID {
		response.Forbidden(c)
		return
	}

	if req.IsActive && len(property.Rooms) == 0 {
		response.BadRequest(c, "Property chưa có phòng, không thể mở nhận đặt chỗ")
		return
	}

	property.IsActive = req.IsActive
	if err := config.DB.Save(&property).Error; err != nil {
		response.ServerError(c)
		return
	}

	invalidatePropertyCaches(property.ID)
	response.Success(c, toPropertyResponse(property))
}
