package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/handwerkos/backend/internal/infrastructure/auth"
	"github.com/handwerkos/backend/internal/infrastructure/config"
	"github.com/handwerkos/backend/internal/infrastructure/logger"
	"github.com/handwerkos/backend/internal/interfaces/http/handler"
	"github.com/handwerkos/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the resource handlers mounted by Setup.
type Handlers struct {
	Quotes        *handler.QuoteHandler
	Offers        *handler.OfferHandler
	Orders        *handler.OrderHandler
	Projects      *handler.ProjectHandler
	Timesheets    *handler.TimesheetHandler
	Expenses      *handler.ExpenseHandler
	Materials     *handler.MaterialHandler
	Invoices      *handler.InvoiceHandler
	Documents     *handler.DocumentHandler
	Notifications *handler.NotificationHandler
}

// Setup builds the HTTP engine with all middleware and routes mounted.
func Setup(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Authenticate(jwtService))

	quotes := api.Group("/quotes")
	{
		quotes.POST("", h.Quotes.Create)
		quotes.GET("", h.Quotes.List)
		quotes.GET("/:id", h.Quotes.Get)
		quotes.PUT("/:id", h.Quotes.Update)
		quotes.DELETE("/:id", h.Quotes.Delete)
		quotes.POST("/:id/items", h.Quotes.AddItem)
		quotes.DELETE("/:id/items/:itemId", h.Quotes.RemoveItem)
		quotes.POST("/:id/send", h.Quotes.Send)
		quotes.POST("/:id/accept", h.Quotes.Accept)
		quotes.POST("/:id/reject", h.Quotes.Reject)
		quotes.POST("/:id/expire", h.Quotes.Expire)
	}

	offers := api.Group("/offers")
	{
		offers.POST("", h.Offers.Create)
		offers.GET("", h.Offers.List)
		offers.GET("/:id", h.Offers.Get)
		offers.POST("/:id/items", h.Offers.AddItem)
		offers.DELETE("/:id/items/:itemId", h.Offers.RemoveItem)
		offers.PUT("/:id/targets", h.Offers.SetTargets)
		offers.POST("/:id/send", h.Offers.Send)
		offers.POST("/:id/accept", h.Offers.Accept)
		offers.POST("/:id/reject", h.Offers.Reject)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", h.Orders.Create)
		orders.GET("", h.Orders.List)
		orders.GET("/:id", h.Orders.Get)
		orders.DELETE("/:id", h.Orders.Delete)
		orders.POST("/:id/start", h.Orders.Start)
		orders.POST("/:id/complete", h.Orders.Complete)
		orders.POST("/:id/cancel", h.Orders.Cancel)
	}

	projects := api.Group("/projects")
	{
		projects.POST("", h.Projects.Create)
		projects.GET("", h.Projects.List)
		projects.GET("/:id", h.Projects.Get)
		projects.DELETE("/:id", h.Projects.Delete)
		projects.POST("/:id/activate", h.Projects.Activate)
		projects.POST("/:id/block", h.Projects.Block)
		projects.POST("/:id/unblock", h.Projects.Unblock)
		projects.POST("/:id/complete", h.Projects.Complete)
		projects.POST("/:id/cancel", h.Projects.Cancel)
		projects.PUT("/:id/team", h.Projects.AssignTeam)
		projects.PUT("/:id/dates", h.Projects.SetDates)
		projects.GET("/:id/costs", h.Projects.CostSummary)
		projects.GET("/:id/timesheets", h.Timesheets.ListByProject)
		projects.GET("/:id/expenses", h.Expenses.ListByProject)
	}

	timesheets := api.Group("/timesheets")
	{
		timesheets.POST("", h.Timesheets.Record)
		timesheets.GET("/:id", h.Timesheets.Get)
		timesheets.PUT("/:id/hours", h.Timesheets.UpdateHours)
		timesheets.POST("/:id/approve", h.Timesheets.Approve)
		timesheets.POST("/:id/reject", h.Timesheets.Reject)
	}

	expenses := api.Group("/expenses")
	{
		expenses.POST("", h.Expenses.Record)
		expenses.POST("/:id/approve", h.Expenses.Approve)
		expenses.POST("/:id/reject", h.Expenses.Reject)
	}

	materials := api.Group("/materials")
	{
		materials.POST("", h.Materials.Create)
		materials.GET("", h.Materials.List)
		materials.GET("/:id", h.Materials.Get)
		materials.DELETE("/:id", h.Materials.Delete)
		materials.POST("/:id/adjust", h.Materials.AdjustStock)
		materials.GET("/:id/movements", h.Materials.MovementHistory)
		materials.PUT("/:id/minimum-stock", h.Materials.SetMinimumStock)
	}

	invoices := api.Group("/invoices")
	{
		invoices.POST("", h.Invoices.Create)
		invoices.GET("", h.Invoices.List)
		invoices.GET("/:id", h.Invoices.Get)
		invoices.DELETE("/:id", h.Invoices.Delete)
		invoices.PUT("/:id/amount", h.Invoices.UpdateAmount)
		invoices.POST("/:id/send", h.Invoices.Send)
		invoices.POST("/:id/pay", h.Invoices.MarkPaid)
		invoices.POST("/:id/overdue", h.Invoices.MarkOverdue)
	}

	documents := api.Group("/documents")
	{
		documents.POST("", h.Documents.Register)
		documents.GET("", h.Documents.List)
		documents.GET("/:id", h.Documents.Get)
		documents.DELETE("/:id", h.Documents.Delete)
		documents.POST("/:id/attach", h.Documents.Attach)
		documents.GET("/entity/:entityType/:entityId", h.Documents.ListByEntity)
		documents.GET("/category/:category", h.Documents.ListByCategory)
	}

	notifications := api.Group("/notifications")
	{
		notifications.POST("", h.Notifications.Push)
		notifications.GET("", h.Notifications.List)
		notifications.GET("/unread-count", h.Notifications.UnreadCount)
		notifications.POST("/:id/read", h.Notifications.MarkRead)
		notifications.POST("/read-all", h.Notifications.MarkAllRead)
		notifications.POST("/:id/archive", h.Notifications.Archive)
	}

	return engine
}
