package router

import (
	"net/http"

	"github.com/fatoora/backend/internal/infrastructure/config"
	"github.com/fatoora/backend/internal/infrastructure/logger"
	"github.com/fatoora/backend/internal/interfaces/http/handler"
	"github.com/fatoora/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles the API handlers the router wires up
type Handlers struct {
	Invoice    *handler.InvoiceHandler
	Quote      *handler.QuoteHandler
	Proforma   *handler.ProformaHandler
	CreditNote *handler.CreditNoteHandler
	Payment    *handler.PaymentHandler
	Product    *handler.ProductHandler
	Client     *handler.ClientHandler
	Stock      *handler.StockHandler
	StockCount *handler.StockCountHandler
	Tax        *handler.TaxHandler
	Report     *handler.ReportHandler
	Settings   *handler.SettingsHandler
}

// New builds the gin engine with all middleware and routes registered
func New(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	_ = r.SetTrustedProxies(cfg.HTTP.TrustedProxies)

	r.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		}),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RequireCompany())

	registerBillingRoutes(api, h)
	registerCatalogRoutes(api, h)
	registerPartnerRoutes(api, h)
	registerInventoryRoutes(api, h)
	registerTaxRoutes(api, h)
	registerReportRoutes(api, h)

	api.GET("/settings", h.Settings.Get)
	api.PUT("/settings", h.Settings.Update)

	return r
}

func registerBillingRoutes(api *gin.RouterGroup, h Handlers) {
	invoices := api.Group("/billing/invoices")
	{
		invoices.POST("", h.Invoice.Create)
		invoices.GET("", h.Invoice.List)
		invoices.GET("/by-number/:number", h.Invoice.GetByNumber)
		invoices.GET("/by-client/:clientId", h.Invoice.ListByClient)
		invoices.GET("/:id", h.Invoice.GetByID)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.POST("/:id/fiscal-stamp", h.Invoice.SetFiscalStamp)
		invoices.POST("/:id/deposit", h.Invoice.MarkAsDeposit)
		invoices.POST("/:id/send", h.Invoice.Send)
		invoices.POST("/:id/mark-paid", h.Invoice.MarkPaid)
		invoices.POST("/:id/cancel", h.Invoice.Cancel)
	}

	quotes := api.Group("/billing/quotes")
	{
		quotes.POST("", h.Quote.Create)
		quotes.GET("", h.Quote.List)
		quotes.GET("/:id", h.Quote.GetByID)
		quotes.PUT("/:id", h.Quote.Update)
		quotes.DELETE("/:id", h.Quote.Delete)
		quotes.POST("/:id/submit", h.Quote.SubmitForValidation)
		quotes.POST("/:id/approve", h.Quote.ApproveValidation)
		quotes.POST("/:id/reject-validation", h.Quote.RejectValidation)
		quotes.POST("/:id/send", h.Quote.Send)
		quotes.POST("/:id/accept", h.Quote.Accept)
		quotes.POST("/:id/reject", h.Quote.Reject)
		quotes.POST("/:id/expire", h.Quote.Expire)
		quotes.POST("/:id/convert", h.Quote.Convert)
	}

	proformas := api.Group("/billing/proformas")
	{
		proformas.POST("", h.Proforma.Create)
		proformas.GET("", h.Proforma.List)
		proformas.GET("/:id", h.Proforma.GetByID)
		proformas.PUT("/:id", h.Proforma.Update)
		proformas.DELETE("/:id", h.Proforma.Delete)
		proformas.POST("/:id/send", h.Proforma.Send)
		proformas.POST("/:id/expire", h.Proforma.Expire)
		proformas.POST("/:id/cancel", h.Proforma.Cancel)
		proformas.POST("/:id/convert", h.Proforma.Convert)
	}

	creditNotes := api.Group("/billing/credit-notes")
	{
		creditNotes.POST("", h.CreditNote.Create)
		creditNotes.GET("", h.CreditNote.List)
		creditNotes.GET("/by-invoice/:invoiceId", h.CreditNote.ListByInvoice)
		creditNotes.GET("/:id", h.CreditNote.GetByID)
		creditNotes.PUT("/:id", h.CreditNote.Update)
		creditNotes.DELETE("/:id", h.CreditNote.Delete)
		creditNotes.POST("/:id/issue", h.CreditNote.Issue)
		creditNotes.POST("/:id/apply", h.CreditNote.Apply)
		creditNotes.POST("/:id/cancel", h.CreditNote.Cancel)
	}

	payments := api.Group("/billing/payments")
	{
		payments.POST("", h.Payment.Create)
		payments.GET("/by-invoice/:invoiceId", h.Payment.ListByInvoice)
		payments.GET("/:id", h.Payment.GetByID)
		payments.DELETE("/:id", h.Payment.Delete)
	}
}

func registerCatalogRoutes(api *gin.RouterGroup, h Handlers) {
	products := api.Group("/catalog/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/by-code/:code", h.Product.GetByCode)
		products.GET("/:id", h.Product.GetByID)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/deactivate", h.Product.Deactivate)
	}

	categories := api.Group("/catalog/categories")
	{
		categories.POST("", h.Product.CreateCategory)
		categories.GET("", h.Product.ListCategories)
		categories.DELETE("/:id", h.Product.DeleteCategory)
	}
}

func registerPartnerRoutes(api *gin.RouterGroup, h Handlers) {
	clients := api.Group("/partners/clients")
	{
		clients.POST("", h.Client.Create)
		clients.GET("", h.Client.List)
		clients.GET("/:id", h.Client.GetByID)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
		clients.POST("/:id/deactivate", h.Client.Deactivate)
	}

	categories := api.Group("/partners/categories")
	{
		categories.POST("", h.Client.CreateCategory)
		categories.GET("", h.Client.ListCategories)
		categories.DELETE("/:id", h.Client.DeleteCategory)
	}
}

func registerInventoryRoutes(api *gin.RouterGroup, h Handlers) {
	movements := api.Group("/inventory/movements")
	{
		movements.POST("", h.Stock.RecordMovement)
		movements.GET("", h.Stock.ListMovements)
		movements.GET("/by-product/:productId", h.Stock.ListMovementsByProduct)
		movements.GET("/by-reference/:referenceId", h.Stock.ListMovementsByReference)
	}

	api.POST("/inventory/check", h.Stock.CheckStock)

	counts := api.Group("/inventory/counts")
	{
		counts.POST("", h.StockCount.Create)
		counts.GET("", h.StockCount.List)
		counts.GET("/:id", h.StockCount.GetByID)
		counts.DELETE("/:id", h.StockCount.Delete)
		counts.POST("/:id/start", h.StockCount.Start)
		counts.POST("/:id/record", h.StockCount.RecordCount)
		counts.POST("/:id/complete", h.StockCount.Complete)
		counts.POST("/:id/cancel", h.StockCount.Cancel)
	}
}

func registerTaxRoutes(api *gin.RouterGroup, h Handlers) {
	taxes := api.Group("/taxes")
	{
		taxes.POST("", h.Tax.CreateTax)
		taxes.GET("", h.Tax.ListTaxes)
		taxes.GET("/resolve", h.Tax.Resolve)
		taxes.POST("/rules", h.Tax.CreateRule)
		taxes.GET("/rules", h.Tax.ListRules)
		taxes.POST("/rules/:id/deactivate", h.Tax.DeactivateRule)
		taxes.DELETE("/rules/:id", h.Tax.DeleteRule)
		taxes.GET("/:id", h.Tax.GetTax)
		taxes.POST("/:id/set-default", h.Tax.SetDefault)
		taxes.POST("/:id/deactivate", h.Tax.DeactivateTax)
	}
}

func registerReportRoutes(api *gin.RouterGroup, h Handlers) {
	reports := api.Group("/reports")
	{
		reports.GET("/vat", h.Report.VATByPeriod)
		reports.GET("/top-clients", h.Report.TopClients)
		reports.GET("/advance-payments", h.Report.AdvancePayments)
		reports.GET("/low-stock", h.Report.LowStock)
	}
}
