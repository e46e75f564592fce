package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/Astemirdum/book-circle/lending/swagger"
	mw "github.com/Astemirdum/book-circle/pkg/middleware"
	"github.com/Astemirdum/book-circle/pkg/validate"
)

type Handler struct {
	lendingSvc LendingService
	log        *zap.Logger
}

func New(lendingSvc LendingService, log *zap.Logger) *Handler {
	return &Handler{
		lendingSvc: lendingSvc,
		log:        log.Named("handler"),
	}
}

// NewRouter builds the lending API.
// @title book-circle lending API
// @version 1.0
// @description Book lending lifecycle and handoff coordination.
// @BasePath /api/v1
func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, mw.XMemberID},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
		mw.MemberID,
	)
	h.register(api)

	return e
}

func (h *Handler) register(api *echo.Group) {
	api.POST("/books", h.RegisterBook)
	api.GET("/books/:bookId", h.GetBook)
	api.DELETE("/books/:bookId", h.RemoveBook)
	api.POST("/books/:bookId/borrow", h.RequestBorrow)
	api.POST("/books/:bookId/done", h.MarkDoneReading)
	api.GET("/books/:bookId/queue", h.GetQueue)
	api.POST("/books/:bookId/queue", h.JoinQueue)
	api.DELETE("/books/:bookId/queue", h.LeaveQueue)

	api.GET("/members/:memberId/books", h.MemberBooks)
	api.GET("/members/:memberId/handoffs", h.MemberHandoffs)
	api.PUT("/members/:memberId", h.UpsertMember)

	api.GET("/handoffs/:handoffId", h.HandoffStatus)
	api.POST("/handoffs/:handoffId/confirm", h.ConfirmHandoff)
	api.POST("/handoffs/:handoffId/cancel", h.CancelHandoff)
	api.POST("/handoffs/:handoffId/finalize", h.FinalizeHandoff)
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
