package routes

import (
	"database/sql"

	"finance-api/handlers"
	"finance-api/services"

	"github.com/gin-gonic/gin"
)

// SetupCategoryRoutes registers the category CRUD routes.
func SetupCategoryRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.CategoryHandler{Service: services.NewCategoryService(db)}

	rg.GET("/categories", h.List)
	rg.POST("/categories", h.Create)
	rg.PUT("/categories/:id", h.Update)
	rg.DELETE("/categories/:id", h.Delete)
}

// SetupExpenseRoutes registers the expense CRUD routes.
func SetupExpenseRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.ExpenseHandler{Service: services.NewExpenseService(db)}

	rg.GET("/expenses", h.List)
	rg.POST("/expenses", h.Create)
	rg.GET("/expenses/:id", h.Get)
	rg.PUT("/expenses/:id", h.Update)
	rg.DELETE("/expenses/:id", h.Delete)
}

// SetupIncomeRoutes registers the income CRUD routes.
func SetupIncomeRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.IncomeHandler{Service: services.NewIncomeService(db)}

	rg.GET("/incomes", h.List)
	rg.POST("/incomes", h.Create)
	rg.GET("/incomes/:id", h.Get)
	rg.PUT("/incomes/:id", h.Update)
	rg.DELETE("/incomes/:id", h.Delete)
}

// SetupSummaryRoutes registers the report and alert routes.
func SetupSummaryRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.SummaryHandler{Service: services.NewSummaryService(services.NewStore(db))}

	rg.GET("/summary", h.Range)
	rg.GET("/summary/monthly", h.Monthly)
	rg.GET("/summary/alerts", h.Alerts)
}
