package constants

// User role
const (
	RoleGuest = 0
	RoleHost  = 1
)

// User status
const (
	UserStatusInactive = 0
	UserStatusActive   = 1
)

// Reservation status
const (
	ReservationStatusPending   = 0
	ReservationStatusConfirmed = 1
	ReservationStatusCancelled = 2
	ReservationStatusRejected  = 3
)

// Block type của BlockedPeriod
const (
	BlockTypeEntire = 0
	BlockTypeRoom   = 1
	BlockTypeBed    = 2
)

// Trạng thái giường theo ngày, số càng lớn độ ưu tiên càng cao
const (
	DayStatusAvailable = 0
	DayStatusPending   = 1
	DayStatusBooked    = 2
	DayStatusBlocked   = 3
)

// DateLayout là định dạng ngày ISO dùng trong toàn bộ API
const DateLayout = "2006-01-02"
