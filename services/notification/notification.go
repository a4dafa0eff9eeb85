package notification

import (
	"fmt"

	"github.com/chabbasaad/4CITE-sub001/constants"

	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// BookingStatusMessage thông báo khi trạng thái booking thay đổi.
type BookingStatusMessage struct {
	userID    uint
	bookingID uint
	status    int
}

func NewBookingStatusMessage(userID, bookingID uint, status int) *BookingStatusMessage {
	return &BookingStatusMessage{
		userID:    userID,
		bookingID: bookingID,
		status:    status,
	}
}

func (b *BookingStatusMessage) Build() string {
	return fmt.Sprintf("🔔 Booking %d của user %d chuyển sang trạng thái %s.",
		b.bookingID, b.userID, statusLabel(b.status))
}

func statusLabel(status int) string {
	switch status {
	case constants.BookingStatusPending:
		return "chờ xác nhận"
	case constants.BookingStatusConfirmed:
		return "đã xác nhận"
	case constants.BookingStatusCompleted:
		return "hoàn thành"
	case constants.BookingStatusCancelled:
		return "đã hủy"
	default:
		return fmt.Sprintf("%d", status)
	}
}

// CommentMessage thông báo cho chủ bài viết khi có comment mới.
type CommentMessage struct {
	postOwnerID uint
	postID      uint
	authorName  string
}

func NewCommentMessage(postOwnerID, postID uint, authorName string) *CommentMessage {
	return &CommentMessage{
		postOwnerID: postOwnerID,
		postID:      postID,
		authorName:  authorName,
	}
}

func (b *CommentMessage) Build() string {
	return fmt.Sprintf("🔔 %s vừa bình luận vào bài viết %d của bạn.", b.authorName, b.postID)
}
