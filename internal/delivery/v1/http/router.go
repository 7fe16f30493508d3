package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	_ "github.com/velum-tech/pricing-backend/docs" // Импорт сгенерированных файлов
	"github.com/velum-tech/pricing-backend/internal/usecase"
	"github.com/velum-tech/pricing-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(prUC usecase.ProductUC, priceUC usecase.PriceUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(prUC, r.logger)
		priceHandler := NewPriceHandler(priceUC, r.logger)
		registerProductRoutes(v1, prHandler, priceHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler, priceHandler *PriceHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", prHandler.createProduct)
		pr.Get("/{id}", prHandler.getProduct)
		pr.Post("/{id}/prices", priceHandler.addPrice)
		pr.Get("/{id}/prices", priceHandler.getPrices)
	})
}
