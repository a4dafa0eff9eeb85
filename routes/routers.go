package routes

import (
	"context"
	"net/http"

	"github.com/chabbasaad/4CITE-sub001/config"
	"github.com/chabbasaad/4CITE-sub001/constants"
	"github.com/chabbasaad/4CITE-sub001/controllers"
	middlewares "github.com/chabbasaad/4CITE-sub001/middleware"
	"github.com/chabbasaad/4CITE-sub001/services"
	"github.com/chabbasaad/4CITE-sub001/services/logger"
	"github.com/chabbasaad/4CITE-sub001/services/notification"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody) {
	log := logger.NewFromEnv()
	notifier := notification.NewMelodyService(m)

	authService := services.NewAuthService(db, log)
	userService := services.NewUserService(services.UserServiceOptions{DB: db, Logger: log})
	hotelService := services.NewHotelService(services.HotelServiceOptions{DB: db, Redis: redisCli, Logger: log})
	bookingService := services.NewBookingService(services.BookingServiceOptions{DB: db, Logger: log, Notifier: notifier})
	postService := services.NewPostService(services.PostServiceOptions{DB: db, Redis: redisCli, Logger: log})
	commentService := services.NewCommentService(services.CommentServiceOptions{DB: db, Logger: log, Notifier: notifier})
	socialService := services.NewSocialService(services.SocialServiceOptions{DB: db, Logger: log})

	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	hotelController := controllers.NewHotelController(hotelService)
	bookingController := controllers.NewBookingController(bookingService)
	postController := controllers.NewPostController(postService)
	commentController := controllers.NewCommentController(commentService)
	socialController := controllers.NewSocialController(socialService)

	staff := []constants.Role{constants.RoleAdmin, constants.RoleEmployee}

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", authController.Register)
	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/google", authController.LoginWithGoogle)
	v1.DELETE("/auth/logout", authController.Logout)

	v1.GET("/profile", middlewares.AuthMiddleware(), userController.GetProfile)
	v1.GET("/users", middlewares.AuthMiddleware(constants.RoleAdmin), userController.GetUsers)
	v1.POST("/users", middlewares.AuthMiddleware(staff...), userController.CreateUser)
	v1.GET("/users/:id", middlewares.AuthMiddleware(), userController.GetUser)
	v1.PUT("/users/:id", middlewares.AuthMiddleware(), userController.UpdateUser)
	v1.DELETE("/users/:id", middlewares.AuthMiddleware(constants.RoleAdmin), userController.DeleteUser)
	v1.POST("/users/:id/restore", middlewares.AuthMiddleware(constants.RoleAdmin), userController.RestoreUser)

	v1.POST("/users/:id/follow", middlewares.AuthMiddleware(), socialController.FollowUser)
	v1.DELETE("/users/:id/follow", middlewares.AuthMiddleware(), socialController.UnfollowUser)
	v1.GET("/users/:id/followers", middlewares.OptionalAuthMiddleware(), socialController.GetFollowers)
	v1.GET("/users/:id/following", middlewares.OptionalAuthMiddleware(), socialController.GetFollowing)

	v1.GET("/hotels", hotelController.GetHotels)
	v1.GET("/hotels/suggestions", hotelController.SuggestHotels)
	v1.GET("/hotels/:id", hotelController.GetHotel)
	v1.POST("/hotels", middlewares.AuthMiddleware(constants.RoleAdmin), hotelController.CreateHotel)
	v1.PUT("/hotels/:id", middlewares.AuthMiddleware(constants.RoleAdmin), hotelController.UpdateHotel)
	v1.DELETE("/hotels/:id", middlewares.AuthMiddleware(constants.RoleAdmin), hotelController.DeleteHotel)

	v1.GET("/bookings", middlewares.AuthMiddleware(), bookingController.GetBookings)
	v1.POST("/bookings", middlewares.AuthMiddleware(), bookingController.CreateBooking)
	v1.GET("/bookings/:id", middlewares.AuthMiddleware(), bookingController.GetBooking)
	v1.PUT("/bookings/:id", middlewares.AuthMiddleware(), bookingController.UpdateBooking)
	v1.DELETE("/bookings/:id", middlewares.AuthMiddleware(), bookingController.DeleteBooking)

	v1.GET("/posts", middlewares.OptionalAuthMiddleware(), postController.GetPosts)
	v1.GET("/posts/:id", middlewares.OptionalAuthMiddleware(), postController.GetPost)
	v1.POST("/posts", middlewares.AuthMiddleware(staff...), postController.CreatePost)
	v1.PUT("/posts/:id", middlewares.AuthMiddleware(), postController.UpdatePost)
	v1.DELETE("/posts/:id", middlewares.AuthMiddleware(), postController.DeletePost)
	v1.POST("/posts/:id/restore", middlewares.AuthMiddleware(constants.RoleAdmin), postController.RestorePost)
	v1.DELETE("/posts/:id/force", middlewares.AuthMiddleware(constants.RoleAdmin), postController.ForceDeletePost)

	v1.POST("/posts/:id/like", middlewares.AuthMiddleware(), socialController.LikePost)
	v1.DELETE("/posts/:id/like", middlewares.AuthMiddleware(), socialController.UnlikePost)

	v1.GET("/posts/:id/comments", middlewares.OptionalAuthMiddleware(), commentController.GetComments)
	v1.POST("/posts/:id/comments", middlewares.AuthMiddleware(), commentController.CreateComment)
	v1.GET("/comments/:id", middlewares.OptionalAuthMiddleware(), commentController.GetComment)
	v1.PUT("/comments/:id", middlewares.AuthMiddleware(), commentController.UpdateComment)
	v1.DELETE("/comments/:id", middlewares.AuthMiddleware(), commentController.DeleteComment)
	v1.POST("/comments/:id/restore", middlewares.AuthMiddleware(constants.RoleAdmin), commentController.RestoreComment)
	v1.DELETE("/comments/:id/force", middlewares.AuthMiddleware(constants.RoleAdmin), commentController.ForceDeleteComment)

	v1.POST("/img/multi-upload", middlewares.AuthMiddleware(), func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}

		var urls []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Lỗi khi mở file"})
				return
			}
			defer src.Close()

			ctx := context.Background()
			resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "uploads"})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
				return
			}
			urls = append(urls, resp.SecureURL)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload thành công",
			"urls":    urls,
		})
	})

	v1.POST("/img/upload", middlewares.AuthMiddleware(), func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lỗi khi mở file"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "avatars"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload avatar thành công",
			"url":     resp.SecureURL,
		})
	})

	v1.GET("/test-broadcast", middlewares.AuthMiddleware(constants.RoleAdmin), func(c *gin.Context) {
		message := []byte("Thông báo từ backend: Tin nhắn mới!")
		m.Broadcast(message)
		c.String(200, "Broadcast message sent!")
	})
}
