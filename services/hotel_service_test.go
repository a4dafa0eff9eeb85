package services

import (
	"context"
	"testing"

	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/errors"
	"github.com/chabbasaad/4CITE-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHotelService(t *testing.T) *HotelService {
	db := newTestDB(t)
	return NewHotelService(HotelServiceOptions{DB: db, Logger: testLogger()})
}

func TestCreateHotelRequiresAdmin(t *testing.T) {
	hotels := newHotelService(t)
	employee := seedUser(t, hotels.db, constants.RoleEmployee)

	_, err := hotels.Create(context.Background(), actorFor(employee), dto.CreateHotelRequest{
		Name:           "Khách sạn Biển",
		Location:       "Nha Trang",
		PricePerNight:  500000,
		TotalRooms:     10,
		AvailableRooms: 5,
	})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindAuthorization))
}

func TestCreateHotelRoomsInvariant(t *testing.T) {
	hotels := newHotelService(t)
	admin := seedUser(t, hotels.db, constants.RoleAdmin)

	_, err := hotels.Create(context.Background(), actorFor(admin), dto.CreateHotelRequest{
		Name:           "Khách sạn Biển",
		Location:       "Nha Trang",
		PricePerNight:  500000,
		TotalRooms:     10,
		AvailableRooms: 12,
	})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindDomainRule))

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Fields, "availableRooms")
}

func TestUpdateHotelRoomsInvariantOnMergedValues(t *testing.T) {
	hotels := newHotelService(t)
	admin := seedUser(t, hotels.db, constants.RoleAdmin)
	hotel := seedHotel(t, hotels.db, "Khách sạn Biển", 500000)

	// total_rooms = 10, gửi mỗi available_rooms = 11: vi phạm sau merge
	eleven := 11
	_, err := hotels.Update(context.Background(), actorFor(admin), hotel.ID, dto.UpdateHotelRequest{
		AvailableRooms: &eleven,
	})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindDomainRule))

	// Gửi kèm total_rooms mới đủ lớn thì hợp lệ
	twenty := 20
	updated, err := hotels.Update(context.Background(), actorFor(admin), hotel.ID, dto.UpdateHotelRequest{
		AvailableRooms: &eleven,
		TotalRooms:     &twenty,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, updated.AvailableRooms)
	assert.Equal(t, 20, updated.TotalRooms)
}

func TestListSearchAndPriceFilter(t *testing.T) {
	hotels := newHotelService(t)
	seedHotel(t, hotels.db, "Khách sạn Hoa Sen", 300000)
	seedHotel(t, hotels.db, "Resort Bãi Dài", 900000)

	list, total, err := hotels.List(context.Background(), dto.HotelListQuery{Search: "hoa sen"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Khách sạn Hoa Sen", list[0].Name)

	maxPrice := 500000.0
	list, total, err = hotels.List(context.Background(), dto.HotelListQuery{MaxPrice: &maxPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Khách sạn Hoa Sen", list[0].Name)
}

func TestListSortAllowListFallback(t *testing.T) {
	hotels := newHotelService(t)
	first := seedHotel(t, hotels.db, "A", 100)
	second := seedHotel(t, hotels.db, "B", 200)

	// Sort theo giá tăng dần
	list, _, err := hotels.List(context.Background(), dto.HotelListQuery{
		SortBy: "price_per_night", Order: "asc",
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	// Field ngoài allow-list rơi về created_at desc, không lỗi
	list, _, err = hotels.List(context.Background(), dto.HotelListQuery{
		SortBy: "password; DROP TABLE hotels", Order: "asc",
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestListClampsLimit(t *testing.T) {
	hotels := newHotelService(t)
	for i := 0; i < 3; i++ {
		seedHotel(t, hotels.db, "Khách sạn", 100)
	}

	query := dto.HotelListQuery{}
	query.Limit = 100000
	list, total, err := hotels.List(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 3)

	query = dto.HotelListQuery{}
	query.Limit = 2
	list, total, err = hotels.List(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)
}

func TestDeleteHotelCascadesBookings(t *testing.T) {
	hotels := newHotelService(t)
	admin := seedUser(t, hotels.db, constants.RoleAdmin)
	user := seedUser(t, hotels.db, constants.RoleUser)
	hotel := seedHotel(t, hotels.db, "Khách sạn Biển", 500000)

	booking := models.Booking{
		UserID:      user.ID,
		HotelID:     hotel.ID,
		Status:      constants.BookingStatusPending,
		GuestsCount: 1,
		GuestNames:  []string{"Trần Văn A"},
	}
	require.NoError(t, hotels.db.Create(&booking).Error)

	require.NoError(t, hotels.Delete(context.Background(), actorFor(admin), hotel.ID))

	var count int64
	hotels.db.Model(&models.Booking{}).Where("hotel_id = ?", hotel.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	err := hotels.Delete(context.Background(), actorFor(admin), hotel.ID)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestSuggestMatchesWithoutDiacritics(t *testing.T) {
	hotels := newHotelService(t)
	seedHotel(t, hotels.db, "Khách sạn Hoa Sen", 300000)
	seedHotel(t, hotels.db, "Resort Bãi Dài", 900000)

	suggestions, err := hotels.Suggest("hoa sen", 5)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Khách sạn Hoa Sen", suggestions[0])
}
