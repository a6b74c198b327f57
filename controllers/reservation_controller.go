package controllers

import (
	"fmt"
	"log"
	"net/http"

	"bedbook/constants"
	"bedbook/dto"
	apperrors "bedbook/errors"
	"bedbook/models"
	"bedbook/response"
	"bedbook/services"
	"bedbook/services/notification"
	"bedbook/validator"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ReservationController gom các handler vòng đời reservation; giữ melody để
// broadcast sự kiện trạng thái cho client đang mở websocket
type ReservationController struct {
	db     *gorm.DB
	redis  *redis.Client
	melody *melody.Melody
	facade *services.ReservationFacade
}

func NewReservationController(db *gorm.DB, redisCli *redis.Client, m *melody.Melody) *ReservationController {
	return &ReservationController{
		db:     db,
		redis:  redisCli,
		melody: m,
		facade: services.NewReservationFacade(db),
	}
}

func toMessageResponse(m models.ReservationMessage) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func toReservationResponse(r *models.Reservation) dto.ReservationResponse {
	beds := make([]dto.BookedBedResponse, 0, len(r.BookedBeds))
	for _, bb := range r.BookedBeds {
		beds = append(beds, dto.BookedBedResponse{
			RoomID:   bb.RoomID,
			BedID:    bb.BedID,
			BedLabel: bb.BedLabel,
		})
	}
	messages := make([]dto.MessageResponse, 0, len(r.Messages))
	for _, m := range r.Messages {
		messages = append(messages, toMessageResponse(m))
	}
	return dto.ReservationResponse{
		ID:            r.ID,
		PropertyID:    r.PropertyID,
		PropertyName:  r.Property.Name,
		GuestID:       r.GuestID,
		HostID:        r.HostID,
		CheckInDate:   r.CheckInDate.Format(constants.DateLayout),
		CheckOutDate:  r.CheckOutDate.Format(constants.DateLayout),
		Status:        r.Status,
		TotalPrice:    r.TotalPrice,
		BookedBeds:    beds,
		Messages:      messages,
		UnreadByGuest: r.UnreadByGuest,
		UnreadByHost:  r.UnreadByHost,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// respondAppError ánh xạ AppError sang HTTP status tương ứng
func respondAppError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		log.Printf("Lỗi không xác định: %v", err)
		response.ServerError(c)
		return
	}
	switch appErr.Code {
	case apperrors.ErrCodeConflict:
		response.Conflict(c, appErr.Message)
	case apperrors.ErrCodeState:
		response.StateError(c, appErr.Message)
	case apperrors.ErrCodeForbidden:
		response.Forbidden(c)
	case apperrors.ErrCodeNotFound, apperrors.ErrCodePropertyNotFound,
		apperrors.ErrCodeRoomNotFound, apperrors.ErrCodeBedNotFound,
		apperrors.ErrCodeReservationNotFound:
		response.NotFound(c)
	case apperrors.ErrCodeDBError:
		log.Printf("Lỗi DB: %v", appErr.Err)
		response.ServerError(c)
	default:
		response.BadRequest(c, appErr.Message)
	}
}

// broadcast gửi sự kiện reservation qua websocket, lỗi chỉ log
func (ctrl *ReservationController) broadcast(r *models.Reservation, event string) {
	notificationService := notification.NewMelodyService(ctrl.melody)
	message := notification.NewReservationEventBuilder(r.ID, r.PropertyID, event).Build()
	if err := notificationService.SendMessage(message); err != nil {
		log.Printf("Lỗi gửi thông báo websocket: %v", err)
	}
}

// notifyStatusByEmail gửi email trạng thái cho một bên, chạy nền
func (ctrl *ReservationController) notifyStatusByEmail(userID uint, r *models.Reservation) {
	go func() {
		var user models.User
		if err := ctrl.db.First(&user, userID).Error; err != nil || user.Email == "" {
			return
		}
		if err := services.SendReservationStatusEmail(user.Email, r.ID, r.Status); err != nil {
			log.Printf("Gửi email không thành công: %v", err)
		}
	}()
}

// CreateReservation khách gửi yêu cầu đặt chỗ. Kiểm tra xung đột và insert
// được tuần tự hóa theo property trong services.TryReserve; giá tính lại từ
// DB nên client không tự định giá được.
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	guestID, _ := currentUser(c)

	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	checkIn, err := validator.ParseISODate(req.CheckInDate)
	if err != nil {
		response.BadRequest(c, "checkInDate không hợp lệ, định dạng yyyy-mm-dd")
		return
	}
	checkOut, err := validator.ParseISODate(req.CheckOutDate)
	if err != nil {
		response.BadRequest(c, "checkOutDate không hợp lệ, định dạng yyyy-mm-dd")
		return
	}

	reservation, err := services.TryReserve(ctrl.db, services.ReserveInput{
		PropertyID:   req.PropertyID,
		GuestID:      guestID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		BedIDs:       req.BedIDs,
	})
	if err != nil {
		respondAppError(c, err)
		return
	}

	// Báo chủ nhà qua websocket và email, không chặn response
	ctrl.broadcast(reservation, "yêu cầu đặt chỗ mới")
	go func() {
		var host models.User
		if err := ctrl.db.First(&host, reservation.HostID).Error; err != nil || host.Email == "" {
			return
		}
		if err := services.SendReservationEmail(host.Email, reservation.ID, reservation.TotalPrice,
			reservation.CheckInDate, reservation.CheckOutDate); err != nil {
			log.Printf("Gửi email không thành công: %v", err)
		}
	}()

	invalidatePropertyCaches(reservation.PropertyID)
	response.Success(c, toReservationResponse(reservation))
}

// GetReservationsByProperty trả về danh sách reservation đang giữ chỗ của một
// property. Endpoint công khai: chỉ lộ khoảng ngày và trạng thái để client vẽ
// lịch, không lộ thông tin khách.
func (ctrl *ReservationController) GetReservationsByProperty(c *gin.Context) {
	propertyID := c.Query("propertyId")
	if propertyID == "" {
		response.BadRequest(c, "propertyId là bắt buộc")
		return
	}

	var reservations []models.Reservation
	if err := ctrl.db.
		Where("property_id = ? AND status IN ?", propertyID,
			[]int{models.ReservationStatusPending, models.ReservationStatusConfirmed}).
		Order("check_in_date ASC").
		Find(&reservations).Error; err != nil {
		response.ServerError(c)
		return
	}

	results := make([]dto.ReservationPublicResponse, 0, len(reservations))
	for _, r := range reservations {
		results = append(results, dto.ReservationPublicResponse{
			CheckInDate:  r.CheckInDate.Format(constants.DateLayout),
			CheckOutDate: r.CheckOutDate.Format(constants.DateLayout),
			Status:       r.Status,
		})
	}
	response.Success(c, results)
}

// GetReservationDetail lấy chi tiết reservation; chỉ khách đặt hoặc chủ nhà
// xem được. Mở chi tiết đồng thời tắt cờ chưa đọc của bên xem.
func (ctrl *ReservationController) GetReservationDetail(c *gin.Context) {
	userID, _ := currentUser(c)

	var id uint
	if _, err := fmt.Sscanf(c.Param("id"), "%d", &id); err != nil {
		response.BadRequest(c, "id không hợp lệ")
		return
	}

	reservation, err := ctrl.facade.GetByID(id)
	if err != nil {
		respondAppError(c, err)
		return
	}

	if userID != reservation.GuestID && userID != reservation.HostID {
		response.Forbidden(c)
		return
	}

	if err := ctrl.facade.MarkRead(id, userID); err != nil {
		log.Printf("Lỗi khi tắt cờ chưa đọc của reservation %d: %v", id, err)
	}

	response.Success(c, toReservationResponse(reservation))
}

// ConfirmReservation chủ nhà xác nhận reservation pending
func (ctrl *ReservationController) ConfirmReservation(c *gin.Context) {
	hostID, _ := currentUser(c)

	var req struct {
		ID uint `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	reservation, err := ctrl.facade.Confirm(req.ID, hostID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	ctrl.broadcast(reservation, "đã xác nhận")
	ctrl.notifyStatusByEmail(reservation.GuestID, reservation)
	invalidatePropertyCaches(reservation.PropertyID)
	response.Success(c, toReservationResponse(reservation))
}

// RejectReservation chủ nhà từ chối reservation pending
func (ctrl *ReservationController) RejectReservation(c *gin.Context) {
	hostID, _ := currentUser(c)

	var req struct {
		ID uint `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	reservation, err := ctrl.facade.Reject(req.ID, hostID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	ctrl.broadcast(reservation, "đã từ chối")
	ctrl.notifyStatusByEmail(reservation.GuestID, reservation)
	invalidatePropertyCaches(reservation.PropertyID)
	response.Success(c, toReservationResponse(reservation))
}

// CancelReservation khách hủy reservation; hủy trùng lặp trả về thành công
func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	guestID, _ := currentUser(c)

	var req struct {
		ID uint `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	reservation, err := ctrl.facade.Cancel(req.ID, guestID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	ctrl.broadcast(reservation, "đã hủy")
	ctrl.notifyStatusByEmail(reservation.HostID, reservation)
	invalidatePropertyCaches(reservation.PropertyID)
	response.Success(c, toReservationResponse(reservation))
}

// PostMessage gửi tin nhắn trong reservation, báo bên kia qua email nền
func (ctrl *ReservationController) PostMessage(c *gin.Context) {
	senderID, _ := currentUser(c)

	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	message, err := ctrl.facade.PostMessage(req.ReservationID, senderID, req.Content)
	if err != nil {
		respondAppError(c, err)
		return
	}

	reservation, err := ctrl.facade.GetByID(req.ReservationID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	ctrl.broadcast(reservation, "tin nhắn mới")

	recipientID := reservation.GuestID
	if senderID == reservation.GuestID {
		recipientID = reservation.HostID
	}
	go func() {
		var recipient models.User
		if err := ctrl.db.First(&recipient, recipientID).Error; err != nil || recipient.Email == "" {
			return
		}
		if err := services.SendMessageEmail(recipient.Email, reservation.ID); err != nil {
			log.Printf("Gửi email không thành công: %v", err)
		}
	}()

	response.Success(c, toMessageResponse(*message))
}

// MarkReservationRead tắt cờ chưa đọc của bên gọi
func (ctrl *ReservationController) MarkReservationRead(c *gin.Context) {
	userID, _ := currentUser(c)

	var req struct {
		ID uint `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu đầu vào không hợp lệ")
		return
	}

	if err := ctrl.facade.MarkRead(req.ID, userID); err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetUnreadCount đếm số reservation có tin nhắn chưa đọc của user hiện tại
func (ctrl *ReservationController) GetUnreadCount(c *gin.Context) {
	userID, _ := currentUser(c)

	count, err := ctrl.facade.UnreadCount(userID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 1, "mess": "Thành công", "data": gin.H{"unread": count}})
}

// GetReservationHistory lấy lịch sử reservation của user hiện tại: khách thấy
// đơn mình đặt, chủ nhà thấy đơn trên property của mình. Lọc theo status và
// propertyId, phân trang in-memory.
func (ctrl *ReservationController) GetReservationHistory(c *gin.Context) {
	userID, role := currentUser(c)

	query := ctrl.db.Preload("BookedBeds").Preload("Property").Order("created_at DESC")
	if role == constants.RoleHost {
		query = query.Where("host_id = ?", userID)
	} else {
		query = query.Where("guest_id = ?", userID)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		log.Printf("Lỗi khi lấy lịch sử reservation của user %d: %v", userID, err)
		response.ServerError(c)
		return
	}

	statusFilter := c.Query("status")
	propertyFilter := c.Query("propertyId")
	if statusFilter != "" || propertyFilter != "" {
		var filtered []models.Reservation
		for _, r := range reservations {
			if statusFilter != "" && fmt.Sprintf("%d", r.Status) != statusFilter {
				continue
			}
			if propertyFilter != "" && fmt.Sprintf("%d", r.PropertyID) != propertyFilter {
				continue
			}
			filtered = append(filtered, r)
		}
		reservations = filtered
	}

	page, limit := parsePagination(c)
	total := len(reservations)
	start := page * limit
	end := start + limit
	if start >= total {
		reservations = []models.Reservation{}
	} else {
		if end > total {
			end = total
		}
		reservations = reservations[start:end]
	}

	results := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		results = append(results, toReservationResponse(&reservations[i]))
	}
	response.SuccessWithPagination(c, results, page, limit, total)
}
