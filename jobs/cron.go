package jobs

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Giữ post/comment soft delete 30 ngày trước khi xóa hẳn.
const purgeRetention = 30 * 24 * time.Hour

// DeletedContentPurger xóa hẳn nội dung soft delete quá hạn giữ.
type DeletedContentPurger interface {
	PurgeDeletedBefore(cutoff time.Time) (int64, error)
}

// BookingCompleter chuyển booking confirmed đã qua ngày trả phòng sang
// completed.
type BookingCompleter interface {
	CompletePastBookings(now time.Time) (int64, error)
}

var (
	postPurger       DeletedContentPurger
	commentPurger    DeletedContentPurger
	bookingCompleter BookingCompleter
)

func SetPostPurger(p DeletedContentPurger)    { postPurger = p }
func SetCommentPurger(p DeletedContentPurger) { commentPurger = p }
func SetBookingCompleter(b BookingCompleter)  { bookingCompleter = b }

// InitCronJobs khởi tạo các cron jobs chạy lúc 0h mỗi ngày.
func InitCronJobs(c *cron.Cron) error {
	_, err := c.AddFunc("0 0 * * *", func() {
		now := time.Now()
		cutoff := now.Add(-purgeRetention)

		if postPurger != nil {
			if n, err := postPurger.PurgeDeletedBefore(cutoff); err != nil {
				log.Printf("Lỗi purge post: %v", err)
			} else if n > 0 {
				log.Printf("Đã purge %d post quá hạn giữ", n)
			}
		}
		if commentPurger != nil {
			if n, err := commentPurger.PurgeDeletedBefore(cutoff); err != nil {
				log.Printf("Lỗi purge comment: %v", err)
			} else if n > 0 {
				log.Printf("Đã purge %d comment quá hạn giữ", n)
			}
		}
		if bookingCompleter != nil {
			if n, err := bookingCompleter.CompletePastBookings(now); err != nil {
				log.Printf("Lỗi auto-complete booking: %v", err)
			} else if n > 0 {
				log.Printf("Đã chuyển %d booking sang completed", n)
			}
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
