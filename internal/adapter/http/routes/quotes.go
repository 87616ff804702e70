package routes

import (
	"agency_quotes/internal/adapter/http/handlers"
	"agency_quotes/internal/adapter/http/middleware"
	"agency_quotes/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const PathQuotes = "/quotes"

func addQuoteRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler) {
	operators := middleware.RequireRoles(entities.RoleStaff, entities.RoleAdmin)

	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", operators, h.CreateQuote)
		quotes.POST("/standalone", operators, h.CreateStandaloneQuote)
		quotes.POST("/:quote_id/resend", operators, h.ResendQuote)
		quotes.DELETE("/:quote_id", operators, h.DeleteQuote)

		// Ownership is checked by the use case.
		quotes.POST("/:quote_id/sign", h.SignQuote)
		quotes.GET("/:quote_id", h.GetQuote)
		quotes.GET("/:quote_id/deposit", h.GetLatestDeposit)
	}
}
