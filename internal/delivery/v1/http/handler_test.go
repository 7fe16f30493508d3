package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velum-tech/pricing-backend/internal/domain"
	"github.com/velum-tech/pricing-backend/internal/usecase"
	"github.com/velum-tech/pricing-backend/pkg/e"
)

type fakeProductUC struct {
	createFunc func(ctx context.Context, req *usecase.CreateProductReq) (*domain.Product, error)
	getFunc    func(ctx context.Context, productID int64) (*domain.Product, error)
}

func (f *fakeProductUC) CreateProduct(ctx context.Context, req *usecase.CreateProductReq) (*domain.Product, error) {
	return f.createFunc(ctx, req)
}

func (f *fakeProductUC) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	return f.getFunc(ctx, productID)
}

type fakePriceUC struct {
	addFunc     func(ctx context.Context, req *usecase.AddPriceReq) (*domain.Price, error)
	historyFunc func(ctx context.Context, req *usecase.PriceHistoryReq) (*usecase.PriceHistoryRes, error)
	activeFunc  func(ctx context.Context, req *usecase.ActivePricesReq) ([]*domain.Price, error)
}

func (f *fakePriceUC) AddPrice(ctx context.Context, req *usecase.AddPriceReq) (*domain.Price, error) {
	return f.addFunc(ctx, req)
}

func (f *fakePriceUC) GetPriceHistory(ctx context.Context, req *usecase.PriceHistoryReq) (*usecase.PriceHistoryRes, error) {
	return f.historyFunc(ctx, req)
}

func (f *fakePriceUC) GetActivePrices(ctx context.Context, req *usecase.ActivePricesReq) ([]*domain.Price, error) {
	return f.activeFunc(ctx, req)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any)        {}
func (noopLogger) Infof(string, ...any)         {}
func (noopLogger) Warnf(string, ...any)         {}
func (noopLogger) Errorf(error, string, ...any) {}

func newTestRouter(prUC usecase.ProductUC, priceUC usecase.PriceUC) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1", func(v1 chi.Router) {
		registerProductRoutes(v1, NewProductHandler(prUC, noopLogger{}), NewPriceHandler(priceUC, noopLogger{}))
	})
	return r
}

func doRequest(t *testing.T, router *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestCreateProductHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		prUC := &fakeProductUC{
			createFunc: func(_ context.Context, req *usecase.CreateProductReq) (*domain.Product, error) {
				return domain.ProductOf(1, req.Name, req.Description), nil
			},
		}
		router := newTestRouter(prUC, &fakePriceUC{})

		rec := doRequest(t, router, http.MethodPost, "/api/v1/products", `{"name":"Laptop","description":"portable"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var res ProductResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, int64(1), res.ID)
		assert.Equal(t, "Laptop", res.Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newTestRouter(&fakeProductUC{}, &fakePriceUC{})

		rec := doRequest(t, router, http.MethodPost, "/api/v1/products", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		prUC := &fakeProductUC{
			createFunc: func(_ context.Context, req *usecase.CreateProductReq) (*domain.Product, error) {
				return nil, e.NewProductAlreadyExistsError(req.Name)
			},
		}
		router := newTestRouter(prUC, &fakePriceUC{})

		rec := doRequest(t, router, http.MethodPost, "/api/v1/products", `{"name":"Laptop"}`)
		require.Equal(t, http.StatusConflict, rec.Code)

		var res ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, http.StatusConflict, res.Code)
		assert.Contains(t, res.Message, "Laptop")
	})
}

func TestGetProductHandler(t *testing.T) {
	prUC := &fakeProductUC{
		getFunc: func(_ context.Context, productID int64) (*domain.Product, error) {
			if productID != 1 {
				return nil, e.NewProductNotFoundError(productID)
			}
			return domain.ProductOf(1, "Laptop", ""), nil
		},
	}
	router := newTestRouter(prUC, &fakePriceUC{})

	t.Run("found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/products/1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/products/99", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/v1/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAddPriceHandler(t *testing.T) {
	t.Run("created with open end date", func(t *testing.T) {
		priceUC := &fakePriceUC{
			addFunc: func(_ context.Context, req *usecase.AddPriceReq) (*domain.Price, error) {
				assert.Equal(t, int64(1), req.ProductID)
				assert.True(t, req.Value.Equal(decimal.NewFromFloat(99.99)))
				assert.Nil(t, req.EndDate)
				return domain.PriceOf(10, req.ProductID, req.Value, "EUR", req.InitDate, nil), nil
			},
		}
		router := newTestRouter(&fakeProductUC{}, priceUC)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/products/1/prices",
			`{"value":99.99,"currency":"EUR","initDate":"2025-01-01","endDate":null}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var res PriceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, int64(10), res.ID)
		assert.Equal(t, "2025-01-01", res.InitDate)
		assert.Nil(t, res.EndDate)
	})

	t.Run("overlap conflicts", func(t *testing.T) {
		priceUC := &fakePriceUC{
			addFunc: func(_ context.Context, req *usecase.AddPriceReq) (*domain.Price, error) {
				return nil, e.NewPriceOverlapError(req.ProductID, req.InitDate, req.EndDate)
			},
		}
		router := newTestRouter(&fakeProductUC{}, priceUC)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/products/1/prices",
			`{"value":5,"currency":"EUR","initDate":"2025-01-15","endDate":"2025-02-15"}`)
		require.Equal(t, http.StatusConflict, rec.Code)

		var res ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Contains(t, res.Message, "[2025-01-15, 2025-02-15]")
	})

	t.Run("invalid value", func(t *testing.T) {
		router := newTestRouter(&fakeProductUC{}, &fakePriceUC{})

		rec := doRequest(t, router, http.MethodPost, "/api/v1/products/1/prices",
			`{"value":"abc","currency":"EUR","initDate":"2025-01-01"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid date format", func(t *testing.T) {
		router := newTestRouter(&fakeProductUC{}, &fakePriceUC{})

		rec := doRequest(t, router, http.MethodPost, "/api/v1/products/1/prices",
			`{"value":5,"currency":"EUR","initDate":"01/15/2025"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing init date", func(t *testing.T) {
		router := newTestRouter(&fakeProductUC{}, &fakePriceUC{})

		rec := doRequest(t, router, http.MethodPost, "/api/v1/products/1/prices",
			`{"value":5,"currency":"EUR"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid currency", func(t *testing.T) {
		priceUC := &fakePriceUC{
			addFunc: func(_ context.Context, req *usecase.AddPriceReq) (*domain.Price, error) {
				return nil, e.NewInvalidCurrencyError(req.Currency)
			},
		}
		router := newTestRouter(&fakeProductUC{}, priceUC)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/products/1/prices",
			`{"value":5,"currency":"EURO","initDate":"2025-01-01"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetPricesHandler(t *testing.T) {
	laptop := domain.ProductOf(1, "Laptop", "portable")
	eur := domain.PriceOf(1, 1, decimal.NewFromInt(10), "EUR", date(2025, 1, 1), datePtr(2025, 1, 31))
	usd := domain.PriceOf(2, 1, decimal.NewFromInt(12), "USD", date(2025, 1, 1), nil)

	t.Run("history without date", func(t *testing.T) {
		priceUC := &fakePriceUC{
			historyFunc: func(_ context.Context, req *usecase.PriceHistoryReq) (*usecase.PriceHistoryRes, error) {
				assert.Empty(t, req.Currency)
				return usecase.NewPriceHistoryRes(laptop, []*domain.Price{usd, eur}), nil
			},
		}
		router := newTestRouter(&fakeProductUC{}, priceUC)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/products/1/prices", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var res PriceHistoryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Laptop", res.Name)
		require.Len(t, res.Prices, 2)
		assert.Nil(t, res.Prices[0].EndDate)
		require.NotNil(t, res.Prices[1].EndDate)
		assert.Equal(t, "2025-01-31", *res.Prices[1].EndDate)
	})

	t.Run("active prices for date", func(t *testing.T) {
		priceUC := &fakePriceUC{
			activeFunc: func(_ context.Context, req *usecase.ActivePricesReq) ([]*domain.Price, error) {
				assert.Equal(t, date(2025, 1, 15), req.Date)
				return []*domain.Price{eur, usd}, nil
			},
		}
		router := newTestRouter(&fakeProductUC{}, priceUC)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/products/1/prices?date=2025-01-15", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var res []PriceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Len(t, res, 2)
	})

	t.Run("single price for date and currency", func(t *testing.T) {
		priceUC := &fakePriceUC{
			activeFunc: func(_ context.Context, req *usecase.ActivePricesReq) ([]*domain.Price, error) {
				assert.Equal(t, "EUR", req.Currency)
				return []*domain.Price{eur}, nil
			},
		}
		router := newTestRouter(&fakeProductUC{}, priceUC)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/products/1/prices?date=2025-01-15&currency=EUR", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var res PriceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, int64(1), res.ID)
		assert.Equal(t, "EUR", res.Currency)
	})

	t.Run("no price on date", func(t *testing.T) {
		priceUC := &fakePriceUC{
			activeFunc: func(_ context.Context, req *usecase.ActivePricesReq) ([]*domain.Price, error) {
				return nil, e.NewPriceNotFoundError(req.ProductID, req.Date)
			},
		}
		router := newTestRouter(&fakeProductUC{}, priceUC)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/products/1/prices?date=2030-01-01", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid date query", func(t *testing.T) {
		router := newTestRouter(&fakeProductUC{}, &fakePriceUC{})

		rec := doRequest(t, router, http.MethodGet, "/api/v1/products/1/prices?date=15-01-2025", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
