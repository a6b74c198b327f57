package routes

import (
	"context"
	"net/http"

	"bedbook/constants"
	"bedbook/controllers"
	middlewares "bedbook/middleware"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/redis/go-redis/v9"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody) {

	reservationController := controllers.NewReservationController(db, redisCli, m)

	v1 := router.Group("/api/v1")

	v1.GET("/propertyUser", controllers.GetAllPropertiesForUser)
	v1.GET("/property", middlewares.AuthMiddleware(constants.RoleHost), controllers.GetAllProperties)
	v1.POST("/property", middlewares.AuthMiddleware(constants.RoleHost), controllers.CreateProperty)
	v1.GET("/property/:id", controllers.GetPropertyDetail)
	v1.PUT("/propertyUpdate", middlewares.AuthMiddleware(constants.RoleHost), controllers.UpdateProperty)
	v1.PUT("/propertyStatus", middlewares.AuthMiddleware(constants.RoleHost), controllers.ChangePropertyStatus)

	v1.POST("/room", middlewares.AuthMiddleware(constants.RoleHost), controllers.CreateRoom)
	v1.PUT("/roomUpdate", middlewares.AuthMiddleware(constants.RoleHost), controllers.UpdateRoom)
	v1.DELETE("/room/:id", middlewares.AuthMiddleware(constants.RoleHost), controllers.DeleteRoom)

	v1.POST("/bed", middlewares.AuthMiddleware(constants.RoleHost), controllers.CreateBed)
	v1.PUT("/bedUpdate", middlewares.AuthMiddleware(constants.RoleHost), controllers.UpdateBed)
	v1.DELETE("/bed/:id", middlewares.AuthMiddleware(constants.RoleHost), controllers.DeleteBed)

	v1.POST("/block", middlewares.AuthMiddleware(constants.RoleHost), controllers.CreateBlockedPeriod)
	v1.GET("/block", middlewares.AuthMiddleware(constants.RoleHost), controllers.GetBlockedPeriods)
	v1.DELETE("/block/:id", middlewares.AuthMiddleware(constants.RoleHost), controllers.DeleteBlockedPeriod)

	v1.GET("/availability", controllers.GetAvailability)
	v1.GET("/calendar", controllers.GetCalendar)

	v1.POST("/reservation", middlewares.AuthMiddleware(constants.RoleGuest, constants.RoleHost), reservationController.CreateReservation)
	v1.GET("/reservations", reservationController.GetReservationsByProperty)
	v1.GET("/reservation/:id", middlewares.AuthMiddleware(constants.RoleGuest, constants.RoleHost), reservationController.GetReservationDetail)
	v1.PUT("/reservationConfirm", middlewares.AuthMiddleware(constants.RoleHost), reservationController.ConfirmReservation)
	v1.PUT("/reservationReject", middlewares.AuthMiddleware(constants.RoleHost), reservationController.RejectReservation)
	v1.PUT("/reservationCancel", middlewares.AuthMiddleware(constants.RoleGuest, constants.RoleHost), reservationController.CancelReservation)
	v1.POST("/reservationMessage", middlewares.AuthMiddleware(constants.RoleGuest, constants.RoleHost), reservationController.PostMessage)
	v1.PUT("/reservationRead", middlewares.AuthMiddleware(constants.RoleGuest, constants.RoleHost), reservationController.MarkReservationRead)
	v1.GET("/unreadCount", middlewares.AuthMiddleware(constants.RoleGuest, constants.RoleHost), reservationController.GetUnreadCount)
	v1.GET("/reservationHistory", middlewares.AuthMiddleware(constants.RoleGuest, constants.RoleHost), reservationController.GetReservationHistory)

	v1.POST("/img/multi-upload", func(c *gin.Context) {
		form, er := c.MultipartForm()
		if er != nil {
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
			resp, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "uploads"})
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

	v1.POST("/img/upload", func(c *gin.Context) {
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
		resp, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "avatars"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload thành công",
			"url":     resp.SecureURL,
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	//ws
	v1.GET("/test-broadcast", func(c *gin.Context) {
		message := []byte("Thông báo từ backend: Tin nhắn mới!")
		m.Broadcast(message)
		c.String(200, "Broadcast message sent!")
	})
}
