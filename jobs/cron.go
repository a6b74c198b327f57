package jobs

import (
	"log"
	"time"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// CalendarCacheRebuilder định nghĩa interface cho việc dựng lại cache lịch
// availability; implementation nằm ở tầng controller/service để tránh import
// vòng với config.
type CalendarCacheRebuilder interface {
	RebuildCalendarCache() error
}

var calendarCacheRebuilder CalendarCacheRebuilder

// SetCalendarCacheRebuilder thiết lập implementation cho CalendarCacheRebuilder
func SetCalendarCacheRebuilder(rebuilder CalendarCacheRebuilder) {
	calendarCacheRebuilder = rebuilder
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, m *melody.Melody) error {
	// Dựng lại cache lịch lúc 0h mỗi ngày, cửa sổ lịch trượt theo ngày
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		log.Printf("Đang dựng lại cache lịch availability lúc: %v", now)
		if calendarCacheRebuilder == nil {
			log.Printf("Lỗi: CalendarCacheRebuilder chưa được thiết lập")
			return
		}
		if err := calendarCacheRebuilder.RebuildCalendarCache(); err != nil {
			log.Printf("Lỗi khi dựng lại cache lịch: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
