package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekremsevim/studiohub/internal/app/controllers"
	"github.com/ekremsevim/studiohub/internal/middleware"
)

// SetupRouter configures all application routes.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	exploreController *controllers.ExploreController,
	studioController *controllers.StudioController,
	lessonController *controllers.LessonController,
	postController *controllers.PostController,
	meetingController *controllers.MeetingController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/explore", exploreController.Search)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/user", authController.GetCurrentUser)
		authenticated.DELETE("/users/delete", authController.DeleteAccount)
		authenticated.GET("/users/search", exploreController.SearchUsers)

		profile := authenticated.Group("/profile")
		{
			profile.GET("", profileController.GetProfile)
			profile.PUT("/update", profileController.UpdateProfile)
			profile.POST("/upload-cv", profileController.UploadCV)
			profile.DELETE("/upload-cv", profileController.DeleteCV)
		}

		// Public studio views and member actions
		studios := authenticated.Group("/studios")
		{
			studios.POST("/create", studioController.CreateStudio)
			studios.GET("/:id", studioController.GetStudio)
			studios.POST("/:id/subscribe", studioController.Subscribe)
			studios.POST("/:id/unsubscribe", studioController.Unsubscribe)
			studios.POST("/:id/rate", studioController.RateStudio)
		}

		// Owner-only studio management
		studio := authenticated.Group("/studio")
		{
			studio.GET("", studioController.GetOwnStudio)
			studio.PUT("/update", studioController.UpdateStudio)
			studio.PUT("/cover/update", studioController.UpdateCover)
			studio.DELETE("/delete", studioController.DeleteStudio)
			studio.GET("/dashboard", studioController.GetDashboard)
			studio.GET("/subscribers", studioController.ListSubscribers)
			studio.DELETE("/subscribers/:id/block", studioController.RemoveSubscriber)
			studio.GET("/my-courses", lessonController.ListOwnLessons)
			studio.POST("/courses/create", lessonController.CreateLesson)
			studio.GET("/courses/:id", lessonController.GetLesson)
			studio.PUT("/courses/:id/update", lessonController.UpdateLesson)
			studio.DELETE("/courses/:id/delete", lessonController.DeleteLesson)
		}

		posts := authenticated.Group("/posts")
		{
			posts.GET("", postController.ListPosts)
			posts.POST("", postController.CreatePost)
			posts.GET("/mine", postController.ListOwnPosts)
			posts.GET("/:id", postController.GetPost)
			posts.DELETE("/:id", postController.DeletePost)
			posts.POST("/:id/like", postController.TogglePostLike)
			posts.POST("/:id/comments", postController.CreateComment)
		}

		comments := authenticated.Group("/comments")
		{
			comments.DELETE("/:id", postController.DeleteComment)
			comments.POST("/:id/like", postController.ToggleCommentLike)
		}

		authenticated.POST("/meetings/create", meetingController.CreateMeeting)
		authenticated.GET("/meetings/:id", meetingController.GetMeeting)
		authenticated.GET("/invitations", meetingController.ListInvitations)
		authenticated.PUT("/invitations/:id", meetingController.RespondToInvitation)
	}
}
