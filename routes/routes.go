package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nikgav1/calorie-tracking-app/controllers"
	"github.com/nikgav1/calorie-tracking-app/middlewares"
)

// Deps carries everything the router needs; nothing is reached through
// package globals.
type Deps struct {
	DB        *gorm.DB
	JWTSecret string

	Auth     *controllers.AuthController
	Users    *controllers.UserController
	FoodLog  *controllers.FoodLogController
	Analysis *controllers.AnalysisController
	Realtime *controllers.RealtimeController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	requireAuth := middlewares.AuthMiddleware(d.DB, d.JWTSecret)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", d.Auth.Signup)
		auth.POST("/login", d.Auth.Login)
		auth.POST("/forgot-password", d.Auth.ForgotPassword)
		auth.POST("/reset-password", d.Auth.ResetPassword)
	}

	// Profile
	data := r.Group("/data")
	data.Use(requireAuth)
	{
		data.GET("/user", d.Users.GetProfile)
		data.PUT("/user", d.Users.UpdateProfile)
	}

	// Food log ledger
	log := r.Group("/log")
	log.Use(requireAuth)
	{
		log.POST("/foodLog", d.FoodLog.LogFood)
		log.GET("/days", d.FoodLog.ListDays)
		log.GET("/days/:date", d.FoodLog.GetDay)
		log.PUT("/days/:date/:meal/:logId", d.FoodLog.UpdateLog)
		log.DELETE("/days/:date/:meal/:logId", d.FoodLog.DeleteLog)
	}

	// Photo analysis
	api := r.Group("/api")
	api.Use(requireAuth)
	{
		api.POST("/analyze", d.Analysis.Analyze)
	}

	// Realtime updates
	ws := r.Group("/ws")
	ws.Use(requireAuth)
	{
		ws.GET("/updates", d.Realtime.UpdatesWS)
	}

	return r
}
