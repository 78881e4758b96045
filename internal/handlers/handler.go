package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/service"
)

type TokenParser interface {
	Parse(raw string) (*domain.Principal, error)
}

type Handler struct {
	services       *service.Services
	tokens         TokenParser
	allowedOrigins []string
	logger         zerolog.Logger
}

func NewHandler(services *service.Services, tokens TokenParser, allowedOrigins []string, logger zerolog.Logger) *Handler {
	return &Handler{
		services:       services,
		tokens:         tokens,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}

	router := gin.New()

	router.Use(h.requestID(), h.requestLogger(), h.recovery())
	router.Use(cors.New(h.corsConfig()))

	router.GET("/health", h.Health)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", h.authRequired(), h.Me)
	}

	api := router.Group("/", h.authRequired())

	teams := api.Group("/teams")
	{
		teams.GET("", h.ListTeams)
		teams.POST("", h.CreateTeam)
		teams.GET("/:id", h.GetTeam)
		teams.PUT("/:id", h.UpdateTeam)
		teams.DELETE("/:id", h.DeleteTeam)
		teams.POST("/:id/players", h.AddPlayer)
		teams.DELETE("/:id/players/:playerId", h.RemovePlayer)
		teams.POST("/:id/results", h.adminOnly(), h.RecordResult)
	}

	leagues := api.Group("/leagues")
	{
		leagues.GET("", h.ListLeagues)
		leagues.POST("", h.adminOnly(), h.CreateLeague)
		leagues.GET("/:id", h.GetLeague)
		leagues.PUT("/:id", h.adminOnly(), h.UpdateLeague)
		leagues.DELETE("/:id", h.adminOnly(), h.DeleteLeague)
		leagues.POST("/:id/join", h.JoinLeague)
	}

	grounds := api.Group("/grounds")
	{
		grounds.GET("", h.ListGrounds)
		grounds.POST("", h.adminOnly(), h.CreateGround)
		grounds.GET("/:id", h.GetGround)
		grounds.PUT("/:id", h.adminOnly(), h.UpdateGround)
		grounds.DELETE("/:id", h.adminOnly(), h.DeleteGround)
		grounds.GET("/:id/reviews", h.ListReviews)
		grounds.POST("/:id/reviews", h.AddReview)
	}

	matches := api.Group("/matches")
	{
		matches.GET("", h.ListMatches)
		matches.POST("", h.adminOnly(), h.CreateMatch)
		matches.GET("/:id", h.GetMatch)
		matches.PUT("/:id", h.UpdateMatch)
		matches.DELETE("/:id", h.DeleteMatch)
		matches.POST("/:id/join", h.JoinMatch)
		matches.DELETE("/:id/join", h.LeaveMatch)
	}

	bookings := api.Group("/bookings")
	{
		bookings.GET("", h.adminOnly(), h.ListBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/user", h.ListUserBookings)
		bookings.DELETE("/:id", h.CancelBooking)
	}

	api.GET("/stats", h.adminOnly(), h.GetStatistics)

	return router
}

func (h *Handler) corsConfig() cors.Config {
	config := cors.DefaultConfig()
	if len(h.allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = h.allowedOrigins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.ExposeHeaders = []string{requestIDHeader}
	return config
}

// handleError writes the JSON error for err. Domain errors keep their code
// and message; anything else is logged and reported as an internal error.
func (h *Handler) handleError(c *gin.Context, err error) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		h.errorResponse(c, statusFor(derr.Kind), derr.Code, derr.Message)
		return
	}

	zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	h.errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, domain.ErrInvalidInput), errors.Is(kind, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(kind, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// bindError reports a request body that failed to decode or validate.
func (h *Handler) bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, describeField(fe))
	}
	h.errorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details...)
}

func describeField(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// jsonFieldName makes validation errors name fields the way clients send them.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func (h *Handler) errorResponse(c *gin.Context, status int, code, message string, details ...string) {
	zerolog.Ctx(c.Request.Context()).Warn().
		Int("status", status).
		Str("code", code).
		Str("message", message).
		Msg("handler error")
	c.AbortWithStatusJSON(status, domain.ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func (h *Handler) successResponse(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
