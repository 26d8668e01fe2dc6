package handlers

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/justsurfingit/job-board/internal/ratelimit"
	"github.com/justsurfingit/job-board/internal/services"
	"gorm.io/gorm"
)

// Services are the dependencies the HTTP layer calls into.
type Services struct {
	Companies  *services.CompanyService
	Vacancies  *services.VacancyService
	Auth       *services.AuthService
	Responses  *services.ResponseService
	Reviews    *services.ReviewService
	Profiles   *services.ProfileService
	References *services.ReferenceService
	LLM        *services.LLMService
	Matcher    *services.MatcherService
}

type RouterConfig struct {
	DB               *gorm.DB
	Tokens           *auth.TokenManager
	Throttle         ratelimit.Limiter
	AuthThrottle     ratelimit.Limiter
	CORSAllowOrigins []string
}

func clientIP(c *gin.Context) string { return "ip:" + c.ClientIP() }

// NewRouter wires every /api/v1 route.
func NewRouter(cfg RouterConfig, svc Services) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowOrigins) == 0 || slices.Contains(cfg.CORSAllowOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(corsConfig))

	companyHandler := NewCompanyHandler(svc.Companies)
	vacancyHandler := NewVacancyHandler(svc.Vacancies, svc.LLM, svc.Matcher)
	authHandler := NewAuthHandler(svc.Auth)
	responseHandler := NewResponseHandler(svc.Responses)
	reviewHandler := NewReviewHandler(svc.Reviews)
	profileHandler := NewProfileHandler(svc.Profiles)
	referenceHandler := NewReferenceHandler(svc.References)

	authenticated := auth.Authenticate(cfg.Tokens)
	throttled := ratelimit.Middleware(cfg.Throttle, auth.ThrottleKey)
	authThrottled := ratelimit.Middleware(cfg.AuthThrottle, clientIP)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck(cfg.DB))
		api.GET("/references/", referenceHandler.ListReferences)

		// Auth Routes
		authGroup := api.Group("/auth", authThrottled)
		authGroup.POST("/register/", authHandler.Register)
		authGroup.GET("/confirm/", authHandler.Confirm)
		authGroup.POST("/login/", authHandler.Login)

		// Vacancy Routes
		vacancies := api.Group("/vacancies")
		vacancies.GET("/", vacancyHandler.SearchVacancies)
		vacancies.POST("/", authenticated, auth.RequirePermission(models.PermAddVacancy), vacancyHandler.CreateVacancy)
		vacancies.POST("/extract", authenticated, auth.RequirePermission(models.PermAddVacancy), vacancyHandler.ExtractVacancy)
		vacancies.GET("/:id/", vacancyHandler.GetVacancy)
		vacancies.POST("/:id/apply/", authenticated, auth.RequirePermission(models.PermApplyToVacancy), responseHandler.Apply)
		vacancies.GET("/:id/responses/", authenticated, auth.RequirePermission(models.PermAddVacancy), responseHandler.ListVacancyResponses)

		// Company Routes
		companies := api.Group("/companies")
		companies.GET("/", companyHandler.ListCompanies)
		companies.POST("/", authenticated, auth.RequirePermission(models.PermAddCompany), companyHandler.CreateCompany)
		companies.GET("/:id/", auth.Identify(cfg.Tokens), throttled, companyHandler.GetCompany)
		companies.GET("/:id/profile/", companyHandler.GetCompanyProfile)
		companies.GET("/:id/vacancies/", companyHandler.ListCompanyVacancies)
		companies.GET("/:id/reviews/", reviewHandler.ListReviews)
		companies.POST("/:id/reviews/", authenticated, reviewHandler.AddReview)

		api.POST("/reviews/:id/like/", authenticated, reviewHandler.Like)
		api.POST("/reviews/:id/dislike/", authenticated, reviewHandler.Dislike)

		api.GET("/responses/", authenticated, responseHandler.ListMine)
		api.PATCH("/responses/:id/", authenticated, auth.RequirePermission(models.PermAddVacancy), responseHandler.UpdateStatus)

		api.GET("/profile/", authenticated, profileHandler.GetProfile)
		api.PUT("/profile/", authenticated, profileHandler.UpdateProfile)
	}
	return r, nil
}
