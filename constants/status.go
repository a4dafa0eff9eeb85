package constants

// Booking status
const (
	BookingStatusPending   = 0
	BookingStatusConfirmed = 1
	BookingStatusCompleted = 2
	BookingStatusCancelled = 3
)

// IsValidBookingStatus kiểm tra status booking hợp lệ.
func IsValidBookingStatus(status int) bool {
	return status >= BookingStatusPending && status <= BookingStatusCancelled
}

// Profile type của user bên social
const (
	ProfileTypePublic  = "public"
	ProfileTypePrivate = "private"
)
