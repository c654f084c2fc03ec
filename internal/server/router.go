package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	accountcontroller "dcreamy/internal/account/controller"
	"dcreamy/internal/auth"
	"dcreamy/internal/product"
	reportcontroller "dcreamy/internal/report/controller"
	stockcontroller "dcreamy/internal/stock/controller"
	transactioncontroller "dcreamy/internal/transaction/controller"
	warungcontroller "dcreamy/internal/warung/controller"
)

type Controllers struct {
	Account     *accountcontroller.AccountController
	Warung      *warungcontroller.WarungController
	Product     *product.Controller
	Stock       *stockcontroller.StockController
	Transaction *transactioncontroller.TransactionController
	Report      *reportcontroller.ReportController
}

func NewRouter(controllers Controllers, tokens *auth.TokenManager) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", controllers.Account.Register)
		r.Post("/auth/login", controllers.Account.Login)

		// The banner is public so the storefront can show the countdown
		// before login.
		r.Get("/reports/business-day", controllers.Report.BusinessDay)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))

			r.Get("/auth/me", controllers.Account.Me)

			r.Get("/warung", controllers.Warung.Get)

			r.Get("/products", controllers.Product.HandleList)
			r.Get("/products/{id}/stock-usage", controllers.Product.HandleGetUsage)

			r.Get("/stock-items", controllers.Stock.List)
			r.Post("/stock-items/{id}/restock", controllers.Stock.Restock)

			r.Get("/transactions", controllers.Transaction.List)
			r.Post("/transactions", controllers.Transaction.Create)

			r.Get("/reports/daily", controllers.Report.Daily)
			r.Get("/reports/weekly", controllers.Report.Weekly)

			// Catalog changes, stock definitions and staffing stay with
			// the owner.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireOwner)

				r.Post("/warung", controllers.Warung.Create)
				r.Put("/warung", controllers.Warung.Update)

				r.Post("/products", controllers.Product.HandleCreate)
				r.Put("/products/{id}", controllers.Product.HandleUpdate)
				r.Delete("/products/{id}", controllers.Product.HandleDelete)
				r.Put("/products/{id}/stock-usage", controllers.Product.HandleSetUsage)

				r.Post("/stock-items", controllers.Stock.Create)
				r.Put("/stock-items/{id}", controllers.Stock.Update)
				r.Delete("/stock-items/{id}", controllers.Stock.Delete)

				r.Delete("/transactions/{id}", controllers.Transaction.Delete)

				r.Post("/staff", controllers.Account.CreateStaff)
				r.Get("/staff", controllers.Account.ListStaff)
				r.Delete("/staff/{id}", controllers.Account.RemoveStaff)
			})
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
