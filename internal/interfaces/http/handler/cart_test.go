package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/shopfront/backend/internal/application/cart"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopfront/backend/internal/infrastructure/cache"
	"github.com/shopfront/backend/internal/infrastructure/config"
	"github.com/shopfront/backend/internal/interfaces/http/dto"
	"github.com/shopfront/backend/internal/interfaces/http/middleware"
)

// stubProductRepository serves a fixed set of products
type stubProductRepository struct {
	products map[uuid.UUID]*catalog.Product
}

func (r *stubProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubProductRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *stubProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *stubProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *stubProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return nil
}

func (r *stubProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	return nil
}

func (r *stubProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *stubProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

func newCartTestProduct(t *testing.T, name string, price string, stock int) *catalog.Product {
	t.Helper()
	money, err := valueobject.NewMoneyEURFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(name, "", money, stock)
	require.NoError(t, err)
	return product
}

func newCartTestRouter(t *testing.T, products ...*catalog.Product) *gin.Engine {
	t.Helper()

	repo := &stubProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}

	store := cache.NewInMemoryCartStore(time.Hour)
	service := cartapp.NewCartService(store, repo)

	engine := gin.New()
	engine.Use(middleware.CartSession(config.CartConfig{
		SessionCookie:    "shop_session",
		SessionCookieAge: 3600,
	}))

	handler := NewCartHandler(service)
	handler.RegisterRoutes(engine.Group("/api/v1"))

	return engine
}

func doCartRequest(t *testing.T, engine *gin.Engine, sessionID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeaderKey, sessionID)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeCartResponse(t *testing.T, w *httptest.ResponseRecorder) cartapp.CartResponse {
	t.Helper()

	var resp struct {
		Success bool                 `json:"success"`
		Data    cartapp.CartResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func TestCartHandler_GetEmptyCart(t *testing.T) {
	engine := newCartTestRouter(t)

	w := doCartRequest(t, engine, "session-1", "GET", "/api/v1/cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	cart := decodeCartResponse(t, w)
	assert.Equal(t, "session-1", cart.SessionID)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, 0, cart.TotalItems)
}

func TestCartHandler_MintsSessionWhenMissing(t *testing.T) {
	engine := newCartTestRouter(t)

	w := doCartRequest(t, engine, "", "GET", "/api/v1/cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	minted := w.Header().Get(middleware.SessionHeaderKey)
	require.NotEmpty(t, minted)
	_, err := uuid.Parse(minted)
	assert.NoError(t, err)
}

func TestCartHandler_AddItem(t *testing.T) {
	product := newCartTestProduct(t, "Ceramic Mug", "12.50", 10)
	engine := newCartTestRouter(t, product)

	w := doCartRequest(t, engine, "session-1", "POST", "/api/v1/cart/items",
		cartapp.AddItemRequest{ProductID: product.ID, Quantity: 2})

	assert.Equal(t, http.StatusOK, w.Code)
	cart := decodeCartResponse(t, w)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, "25", cart.TotalPrice.String())

	// Adding the same product again merges the line
	w = doCartRequest(t, engine, "session-1", "POST", "/api/v1/cart/items",
		cartapp.AddItemRequest{ProductID: product.ID, Quantity: 3})

	assert.Equal(t, http.StatusOK, w.Code)
	cart = decodeCartResponse(t, w)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
}

func TestCartHandler_AddItemExceedingStock(t *testing.T) {
	product := newCartTestProduct(t, "Ceramic Mug", "12.50", 3)
	engine := newCartTestRouter(t, product)

	w := doCartRequest(t, engine, "session-1", "POST", "/api/v1/cart/items",
		cartapp.AddItemRequest{ProductID: product.ID, Quantity: 5})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "OUT_OF_STOCK", resp.Error.Code)
}

func TestCartHandler_AddUnknownProduct(t *testing.T) {
	engine := newCartTestRouter(t)

	w := doCartRequest(t, engine, "session-1", "POST", "/api/v1/cart/items",
		cartapp.AddItemRequest{ProductID: uuid.New(), Quantity: 1})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PRODUCT_UNAVAILABLE", resp.Error.Code)
}

func TestCartHandler_UpdateQuantityToZeroRemovesLine(t *testing.T) {
	product := newCartTestProduct(t, "Ceramic Mug", "12.50", 10)
	engine := newCartTestRouter(t, product)

	w := doCartRequest(t, engine, "session-1", "POST", "/api/v1/cart/items",
		cartapp.AddItemRequest{ProductID: product.ID, Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doCartRequest(t, engine, "session-1", "PUT",
		fmt.Sprintf("/api/v1/cart/items/%s", product.ID),
		cartapp.UpdateQuantityRequest{Quantity: 0})

	assert.Equal(t, http.StatusOK, w.Code)
	cart := decodeCartResponse(t, w)
	assert.Empty(t, cart.Lines)
}

func TestCartHandler_SessionsAreIsolated(t *testing.T) {
	product := newCartTestProduct(t, "Ceramic Mug", "12.50", 10)
	engine := newCartTestRouter(t, product)

	w := doCartRequest(t, engine, "session-1", "POST", "/api/v1/cart/items",
		cartapp.AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doCartRequest(t, engine, "session-2", "GET", "/api/v1/cart", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	cart := decodeCartResponse(t, w)
	assert.Empty(t, cart.Lines)
}

func TestCartHandler_Clear(t *testing.T) {
	product := newCartTestProduct(t, "Ceramic Mug", "12.50", 10)
	engine := newCartTestRouter(t, product)

	w := doCartRequest(t, engine, "session-1", "POST", "/api/v1/cart/items",
		cartapp.AddItemRequest{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doCartRequest(t, engine, "session-1", "DELETE", "/api/v1/cart", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doCartRequest(t, engine, "session-1", "GET", "/api/v1/cart", nil)
	cart := decodeCartResponse(t, w)
	assert.Empty(t, cart.Lines)
}
