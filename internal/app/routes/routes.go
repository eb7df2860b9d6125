package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/messdesk/internal/app/controllers"
	"github.com/yigit/messdesk/internal/app/models"
	"github.com/yigit/messdesk/internal/middleware"
	"github.com/yigit/messdesk/internal/pkg/websocket"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth         *controllers.AuthController
	Users        *controllers.UserController
	Assignments  *controllers.AssignmentController
	Complaints   *controllers.ComplaintController
	MenuRequests *controllers.MenuRequestController
	Health       *controllers.HealthController
	WebSocket    *websocket.Handler
	Metrics      http.Handler
	MetricsPath  string
}

var (
	staffRoles = []models.RoleType{
		models.RoleCoordinator,
		models.RoleDirector,
		models.RoleAuthority,
		models.RoleAdmin,
	}
	// roles that see the directory and mess worklists
	officeRoles     = append([]models.RoleType{models.RoleSupervisor}, staffRoles...)
	studentRoles    = []models.RoleType{models.RoleStudent, models.RoleRepresentative}
	assignmentRoles = []models.RoleType{models.RoleCoordinator, models.RoleAdmin}
	accountRoles    = []models.RoleType{models.RoleCoordinator, models.RoleDirector, models.RoleAdmin}
)

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if h.Metrics != nil {
		path := h.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(h.Metrics))
	}
	if h.WebSocket != nil {
		router.GET("/ws/messes/:messId", authMiddleware.JWTAuth(), h.WebSocket.HandleConnection)
	}

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", h.Health.Health)

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/auth/me", h.Auth.Me)

	users := authenticated.Group("/users")
	{
		users.PATCH("/:id/profile", h.Users.UpdateProfile)

		usersOffice := users.Group("")
		usersOffice.Use(authMiddleware.RoleRequired(officeRoles...))
		{
			usersOffice.GET("/lookup", h.Users.Lookup)
			usersOffice.GET("/:id", h.Users.GetUser)
		}

		users.POST("", authMiddleware.RoleRequired(accountRoles...), h.Users.CreateUser)
		users.DELETE("/:id", authMiddleware.RoleRequired(models.RoleAdmin), h.Users.DeleteUser)
	}

	assignments := authenticated.Group("/assignments")
	assignments.Use(authMiddleware.RoleRequired(assignmentRoles...))
	{
		assignments.PUT("/students/college/:collegeId", h.Assignments.AssignByCollegeID)
		assignments.PUT("/students/:userId", h.Assignments.AssignByUserID)
		assignments.PUT("/batches/:batch", h.Assignments.AssignBatch)
		assignments.PUT("/supervisors/:supervisorId", h.Assignments.AssignSupervisor)
	}

	messes := authenticated.Group("/messes/:messId")
	{
		// scope is checked per mess by the complaint service
		messes.GET("/complaints", h.Complaints.ListForMess)
		messes.GET("/supervisors", h.Assignments.ListSupervisors)
	}

	complaints := authenticated.Group("/complaints")
	{
		complaints.GET("/:id", h.Complaints.GetComplaint)
		complaints.GET("/:id/route", h.Complaints.GetRoute)
		// role and edge policy are checked by the complaint service
		complaints.PATCH("/:id/status", h.Complaints.UpdateStatus)

		complaintsStudent := complaints.Group("")
		complaintsStudent.Use(authMiddleware.RoleRequired(studentRoles...))
		{
			complaintsStudent.POST("", h.Complaints.CreateComplaint)
			complaintsStudent.GET("/mine", h.Complaints.ListMine)
		}
	}

	menuRequests := authenticated.Group("/menu-requests")
	menuRequests.Use(authMiddleware.RoleRequired(officeRoles...))
	{
		menuRequests.GET("", h.MenuRequests.ListRequests)
		menuRequests.GET("/:id", h.MenuRequests.GetRequest)
		menuRequests.DELETE("/:id", h.MenuRequests.DeleteRequest)

		menuRequestsSupervisor := menuRequests.Group("")
		menuRequestsSupervisor.Use(authMiddleware.RoleRequired(models.RoleSupervisor))
		{
			menuRequestsSupervisor.POST("", h.MenuRequests.CreateRequest)
		}
	}
}
