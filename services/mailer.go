package services

import (
	"fmt"
	"net/smtp"
	"os"
	"time"

	"bedbook/constants"
)

// Email thông báo là side effect fire-and-forget: gửi lỗi chỉ log lại, không
// bao giờ rollback chuyển trạng thái reservation.

func smtpConfig() (from, password, host, port string) {
	from = os.Getenv("SMTP_FROM")
	password = os.Getenv("SMTP_PASSWORD")
	host = os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port = os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return
}

func sendMail(to, subject, body string) error {
	from, password, host, port := smtpConfig()
	if from == "" || password == "" {
		return fmt.Errorf("thiếu cấu hình SMTP_FROM/SMTP_PASSWORD")
	}

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	auth := smtp.PlainAuth("", from, password, host)
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, msg)
}

// SendReservationEmail gửi email báo tạo reservation mới
func SendReservationEmail(to string, reservationID uint, totalPrice float64, checkIn, checkOut time.Time) error {
	subject := fmt.Sprintf("Yêu cầu đặt chỗ #%d đã được ghi nhận", reservationID)
	body := fmt.Sprintf("Yêu cầu đặt chỗ của bạn từ %s đến %s đang chờ chủ nhà duyệt. Tổng giá: %.2f.",
		checkIn.Format(constants.DateLayout), checkOut.Format(constants.DateLayout), totalPrice)
	return sendMail(to, subject, body)
}

// SendReservationStatusEmail gửi email khi reservation đổi trạng thái
// (xác nhận, từ chối, hủy)
func SendReservationStatusEmail(to string, reservationID uint, status int) error {
	var action string
	switch status {
	case constants.ReservationStatusConfirmed:
		action = "đã được chủ nhà xác nhận"
	case constants.ReservationStatusRejected:
		action = "đã bị chủ nhà từ chối"
	case constants.ReservationStatusCancelled:
		action = "đã được hủy"
	default:
		action = "đã được cập nhật"
	}
	subject := fmt.Sprintf("Đặt chỗ #%d %s", reservationID, action)
	body := fmt.Sprintf("Đặt chỗ #%d %s.", reservationID, action)
	return sendMail(to, subject, body)
}

// SendMessageEmail gửi email báo có tin nhắn mới trong reservation
func SendMessageEmail(to string, reservationID uint) error {
	subject := fmt.Sprintf("Tin nhắn mới trong đặt chỗ #%d", reservationID)
	body := fmt.Sprintf("Bạn có tin nhắn mới trong đặt chỗ #%d. Đăng nhập để xem chi tiết.", reservationID)
	return sendMail(to, subject, body)
}
