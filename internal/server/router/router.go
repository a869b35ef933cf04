package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/access"
	"github.com/mamadbah2/procurement/internal/domain/models"
	"github.com/mamadbah2/procurement/internal/server/handlers"
	"github.com/mamadbah2/procurement/internal/server/middleware"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Indents     *handlers.IndentHandler
	Procurement *handlers.ProcurementHandler
	Reports     *handlers.ReportHandler
	Pages       *handlers.PageHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, sessions middleware.SessionRestorer, guard middleware.RouteGuard, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Session(sessions, logger))
	r.Use(middleware.Logger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", h.Pages.Home)
	r.GET(access.LoginPath, h.Auth.LoginView)

	pages := middleware.RequirePage(guard, logger)
	for _, role := range models.Roles {
		group := r.Group(access.Prefix(role), pages)
		group.GET("/dashboard", h.Pages.Dashboard)
	}

	api := r.Group("/api")
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)

	secured := api.Group("", middleware.RequireSession())
	secured.GET("/auth/me", h.Auth.Me)

	secured.GET("/indents", h.Indents.List)
	secured.POST("/indents", h.Indents.Create)
	secured.GET("/indents/:id", h.Indents.Get)
	secured.POST("/indents/:id/submit", h.Indents.Submit)
	secured.POST("/indents/:id/approve", h.Indents.Approve)
	secured.POST("/indents/:id/reject", h.Indents.Reject)
	secured.GET("/indents/:id/history", h.Indents.History)
	secured.POST("/indents/:id/enquiries", h.Procurement.SendEnquiry)
	secured.POST("/indents/:id/purchase-orders", h.Procurement.IssuePurchaseOrder)

	secured.GET("/vendors", h.Procurement.Vendors)
	secured.GET("/enquiries", h.Procurement.Enquiries)
	secured.GET("/enquiries/:id", h.Procurement.Enquiry)
	secured.GET("/enquiries/:id/quotes", h.Procurement.Quotes)
	secured.POST("/enquiries/:id/quotes", h.Procurement.SubmitQuote)
	secured.GET("/purchase-orders", h.Procurement.PurchaseOrders)

	secured.GET("/reports/pending", h.Reports.Pending)
	secured.GET("/reports/spend", h.Reports.Spend)

	r.NoRoute(handlers.NotFound)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}
