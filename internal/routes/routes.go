package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realty-api/internal/audit"
	"github.com/BruksfildServices01/realty-api/internal/auth"
	"github.com/BruksfildServices01/realty-api/internal/config"
	"github.com/BruksfildServices01/realty-api/internal/handlers"
	"github.com/BruksfildServices01/realty-api/internal/infra/cache"
	"github.com/BruksfildServices01/realty-api/internal/infra/imaging"
	infraRepo "github.com/BruksfildServices01/realty-api/internal/infra/repository"
	"github.com/BruksfildServices01/realty-api/internal/infra/storage"
	"github.com/BruksfildServices01/realty-api/internal/middleware"
	"github.com/BruksfildServices01/realty-api/internal/timezone"
	ucAccount "github.com/BruksfildServices01/realty-api/internal/usecase/account"
	ucProperty "github.com/BruksfildServices01/realty-api/internal/usecase/property"
)

// Infra holds the process wide collaborators built by main.
type Infra struct {
	Storage storage.Storage
	Cache   cache.TokenCache
	Audit   *audit.Dispatcher
	Log     logrus.FieldLogger
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	accountStore := infraRepo.NewAccountStore(db)
	propertyRepo := infraRepo.NewPropertyGormRepository(db)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	clock := timezone.NewClock(cfg.Timezone)
	processor := imaging.NewProcessor(cfg.ImageMaxWidth, cfg.ImageQuality)

	pictures := ucAccount.NewPictures(processor, infra.Storage, infra.Log)
	images := ucProperty.NewImages(processor, infra.Storage, infra.Log)

	// ======================================================
	// USE CASES: ACCOUNTS
	// ======================================================
	authenticateUC := ucAccount.NewAuthenticate(accountStore, issuer, infra.Cache, infra.Log)

	registerUC := ucAccount.NewRegister(accountStore, issuer, pictures, infra.Audit, cfg.CheckEmailDomain)
	loginUC := ucAccount.NewLogin(accountStore, issuer, infra.Cache, infra.Log)
	logoutUC := ucAccount.NewLogout(accountStore.Tokens(), infra.Cache, infra.Log)
	changePasswordUC := ucAccount.NewChangePassword(accountStore, issuer, infra.Cache, infra.Audit, infra.Log)

	updateProfileUC := ucAccount.NewUpdateProfile(accountStore, pictures, infra.Audit)
	listUsersUC := ucAccount.NewListUsers(accountStore.Users())
	getUserUC := ucAccount.NewGetUser(accountStore.Users())
	adminUpdateUserUC := ucAccount.NewAdminUpdateUser(accountStore, infra.Cache, infra.Audit, infra.Log)
	deleteUserUC := ucAccount.NewDeleteUser(accountStore, infra.Cache, pictures, infra.Audit, infra.Log)

	// ======================================================
	// USE CASES: PROPERTIES
	// ======================================================
	createPropertyUC := ucProperty.NewCreateProperty(propertyRepo, images, clock, infra.Audit)
	updatePropertyUC := ucProperty.NewUpdateProperty(propertyRepo, images, clock, infra.Audit)
	getPropertyUC := ucProperty.NewGetProperty(propertyRepo)
	listPropertiesUC := ucProperty.NewListProperties(propertyRepo)
	deletePropertyUC := ucProperty.NewDeleteProperty(propertyRepo, images, infra.Audit)
	deleteImageUC := ucProperty.NewDeletePropertyImage(propertyRepo, images, infra.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, logoutUC, changePasswordUC, infra.Storage)
	profileHandler := handlers.NewProfileHandler(updateProfileUC, infra.Storage)
	userHandler := handlers.NewUserHandler(listUsersUC, getUserUC, adminUpdateUserUC, deleteUserUC, infra.Storage)
	propertyHandler := handlers.NewPropertyHandler(
		createPropertyUC,
		updatePropertyUC,
		getPropertyUC,
		listPropertiesUC,
		deletePropertyUC,
		deleteImageUC,
		infra.Storage,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	requireAuth := middleware.AuthMiddleware(authenticateUC)
	readAuth := requireAuth
	if cfg.PublicPropertyRead {
		readAuth = middleware.OptionalAuthMiddleware(authenticateUC)
	}
	adminOnly := middleware.AdminOnly()

	// ======================================================
	// MEDIA (local storage only)
	// ======================================================
	if local, ok := infra.Storage.(*storage.LocalStorage); ok {
		r.Static(cfg.MediaURL, local.Root())
	}

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/register/", authHandler.Register)
		api.POST("/login/", authHandler.Login)
		api.GET("/users/", userHandler.List)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(requireAuth)
		{
			secured.POST("/logout/", authHandler.Logout)
			secured.POST("/password/change/", authHandler.ChangePassword)

			secured.GET("/profile/", profileHandler.Get)
			secured.PATCH("/profile/", profileHandler.Update)
			secured.GET("/profile/update/", profileHandler.Get)
			secured.PUT("/profile/update/", profileHandler.Update)
			secured.PATCH("/profile/update/", profileHandler.Update)

			secured.POST("/properties/", propertyHandler.Create)
			secured.PUT("/properties/:pid/", propertyHandler.Update)
			secured.PATCH("/properties/:pid/", propertyHandler.Update)
			secured.DELETE("/properties/:pid/", propertyHandler.Delete)
			secured.DELETE("/properties/:pid/images/:imageID/", propertyHandler.DeleteImage)
		}

		// ------------------------------
		// PROPERTY READS (public per deployment)
		// ------------------------------
		reads := api.Group("/properties")
		reads.Use(readAuth)
		{
			reads.GET("/", propertyHandler.List)
			reads.GET("/ongoing/", propertyHandler.Ongoing)
			reads.GET("/sold/", propertyHandler.Sold)
			reads.GET("/:pid/", propertyHandler.Get)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(requireAuth, adminOnly)
		{
			admin.GET("/users/:id/", userHandler.Get)
			admin.PATCH("/users/:id/", userHandler.Update)
			admin.DELETE("/users/:id/", userHandler.Delete)
			admin.DELETE("/delete-user/:id/", userHandler.Delete)
			admin.GET("/audit-logs/", auditLogsHandler.List)
		}
	}
}
