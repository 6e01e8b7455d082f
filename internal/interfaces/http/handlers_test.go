package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/orders"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/orderflow"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/bodega-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/bodega-api/internal/interfaces/http"
)

const (
	sellerID = "acc-seller"
	buyerID  = "acc-buyer"
)

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
	now   time.Time
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	productRepo := memory.NewProductRepository(store)
	orderRepo := memory.NewOrderRepository(store)
	movements := inventory.NewRegisterMovementUseCase(tx, productRepo, memory.NewMovementRepository(store))
	orderUC := orders.NewOrderUseCase(tx, orderRepo, movements, orderflow.DefaultStockPolicy(), nil, zerolog.Nop())
	f := &apiFixture{store: store, now: time.Now()}
	sweeper := orders.NewCompletionSweeper(orderUC, orderRepo, orders.SweeperConfig{
		Interval:    time.Minute,
		GracePeriod: 72 * time.Hour,
	}, zerolog.Nop()).WithClock(func() time.Time { return f.now })

	f.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(zerolog.Nop())})
	apphttp.Router(f.app, apphttp.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(productRepo),
		RegisterMovement: movements,
		LowStock:         inventory.NewLowStockUseCase(productRepo),
		OrderUC:          orderUC,
		OrderDocs:        orders.NewDocumentUseCase(orderUC, productRepo, pdf.NewMarotoPDFGenerator()),
		Sweeper:          sweeper,
		JWTSecret:        testJWTSecret,
		JWTIssuer:        testIssuer,
		Log:              zerolog.Nop(),
	})
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, auth string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (f *apiFixture) createProduct(t *testing.T, auth, name string, price int64) dto.ProductResponse {
	t.Helper()
	var p dto.ProductResponse
	status := f.do(t, http.MethodPost, "/api/products", auth, dto.CreateProductRequest{Name: name, Price: decimal.NewFromInt(price)}, &p)
	require.Equal(t, http.StatusCreated, status)
	return p
}

func TestAPI_SinTokenRetorna401(t *testing.T) {
	f := newAPI(t)
	var e dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/orders", "", nil, &e))
	assert.Equal(t, "MISSING_TOKEN", e.Code)
}

func TestAPI_MovimientosYErrores(t *testing.T) {
	f := newAPI(t)
	seller := tokenFor(t, sellerID, entity.RoleCustomer)
	p := f.createProduct(t, seller, "Clavo", 1)
	assert.EqualValues(t, 0, p.Cantidad)

	var mov dto.MovementResponse
	status := f.do(t, http.MethodPost, "/api/inventory/movements", seller, dto.RegisterMovementRequest{ProductID: p.ID, Kind: "in", Quantity: 10}, &mov)
	require.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, 10, mov.NewQuantity)
	assert.NotEmpty(t, mov.MovementID)

	status = f.do(t, http.MethodPost, "/api/inventory/movements", seller, dto.RegisterMovementRequest{ProductID: p.ID, Kind: "out", Quantity: 10}, &mov)
	require.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, 0, mov.NewQuantity)

	var e dto.ErrorResponse
	status = f.do(t, http.MethodPost, "/api/inventory/movements", seller, dto.RegisterMovementRequest{ProductID: p.ID, Kind: "out", Quantity: 1}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)

	status = f.do(t, http.MethodPost, "/api/inventory/movements", seller, dto.RegisterMovementRequest{ProductID: p.ID, Kind: "in", Quantity: 0}, &e)
	assert.Equal(t, http.StatusBadRequest, status)

	status = f.do(t, http.MethodPost, "/api/inventory/movements", seller, dto.RegisterMovementRequest{ProductID: "nope", Kind: "in", Quantity: 1}, &e)
	assert.Equal(t, http.StatusNotFound, status)

	buyer := tokenFor(t, buyerID, entity.RoleCustomer)
	status = f.do(t, http.MethodPost, "/api/inventory/movements", buyer, dto.RegisterMovementRequest{ProductID: p.ID, Kind: "in", Quantity: 1}, &e)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", e.Code)

	var history dto.MovementListResponse
	status = f.do(t, http.MethodGet, "/api/products/"+p.ID+"/movements?limit=1", seller, nil, &history)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, history.Items, 1)
	assert.Equal(t, "out", history.Items[0].Kind)
	assert.Equal(t, 1, history.Page.Limit)
}

func TestAPI_ProductoPrecioYStockBajo(t *testing.T) {
	f := newAPI(t)
	seller := tokenFor(t, sellerID, entity.RoleCustomer)
	p := f.createProduct(t, seller, "Arandela", 2)

	var updated dto.ProductResponse
	status := f.do(t, http.MethodPatch, "/api/products/"+p.ID+"/price", seller, dto.UpdatePriceRequest{Price: decimal.NewFromInt(4)}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decimal.NewFromInt(4).Equal(updated.Price))

	var low struct {
		Total int                   `json:"total"`
		Items []dto.ProductResponse `json:"items"`
	}
	status = f.do(t, http.MethodGet, "/api/products/low-stock", seller, nil, &low)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, low.Total)
	assert.Equal(t, p.ID, low.Items[0].ID)

	var got dto.ProductResponse
	status = f.do(t, http.MethodGet, "/api/products/"+p.ID, seller, nil, &got)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, got.LowStock)
}

// Flujo completo de una venta por HTTP: crear, pagar, enviar, barrido manual del admin.
func TestAPI_FlujoDeOrden(t *testing.T) {
	f := newAPI(t)
	seller := tokenFor(t, sellerID, entity.RoleCustomer)
	buyer := tokenFor(t, buyerID, entity.RoleCustomer)
	admin := tokenFor(t, "acc-admin", entity.RoleAdmin)
	a := f.createProduct(t, seller, "A", 5)
	b := f.createProduct(t, seller, "B", 9)

	var order dto.OrderResponse
	status := f.do(t, http.MethodPost, "/api/orders", buyer, dto.CreateOrderRequest{Lines: []dto.OrderLineRequest{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: b.ID, Quantity: 1},
	}}, &order)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, decimal.NewFromInt(19).Equal(order.Total))
	assert.Equal(t, entity.OrderStatusPending, order.Status)

	for _, next := range []string{entity.OrderStatusAwaitingPayment, entity.OrderStatusShipped} {
		status = f.do(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", buyer, dto.TransitionOrderRequest{Status: next}, &order)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, next, order.Status)
	}

	var e dto.ErrorResponse
	status = f.do(t, http.MethodPatch, "/api/orders/"+order.ID+"/status", buyer, dto.TransitionOrderRequest{Status: entity.OrderStatusCanceled}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", e.Code)

	status = f.do(t, http.MethodDelete, "/api/orders/"+order.ID, buyer, nil, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_STATE", e.Code)

	// solo admin puede lanzar el barrido
	status = f.do(t, http.MethodPost, "/api/admin/sweeps", buyer, nil, &e)
	assert.Equal(t, http.StatusForbidden, status)

	f.now = time.Now().Add(73 * time.Hour)
	var sweep map[string]int
	status = f.do(t, http.MethodPost, "/api/admin/sweeps", admin, nil, &sweep)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, sweep["completed"])

	status = f.do(t, http.MethodGet, "/api/orders/"+order.ID, buyer, nil, &order)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	assert.Len(t, order.Lines, 2)
	assert.EqualValues(t, 2, f.store.Product(a.ID).Cantidad)
	assert.EqualValues(t, 1, f.store.Product(b.ID).Cantidad)

	var list dto.OrderListResponse
	status = f.do(t, http.MethodGet, "/api/orders?status=completed", buyer, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list.Items, 1)

	status = f.do(t, http.MethodGet, "/api/orders", seller, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list.Items)

	status = f.do(t, http.MethodGet, "/api/orders/"+order.ID, seller, nil, &e)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAPI_EliminarOrdenPendiente(t *testing.T) {
	f := newAPI(t)
	seller := tokenFor(t, sellerID, entity.RoleCustomer)
	p := f.createProduct(t, seller, "A", 5)

	var order dto.OrderResponse
	status := f.do(t, http.MethodPost, "/api/orders", seller, dto.CreateOrderRequest{Kind: "restock", Lines: []dto.OrderLineRequest{{ProductID: p.ID, Quantity: 3}}}, &order)
	require.Equal(t, http.StatusCreated, status)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/orders/"+order.ID, seller, nil, nil))

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/orders/"+order.ID, seller, nil, &e))
}

func TestAPI_ComprobantePDF(t *testing.T) {
	f := newAPI(t)
	buyer := tokenFor(t, buyerID, entity.RoleCustomer)
	p := f.createProduct(t, tokenFor(t, sellerID, entity.RoleCustomer), "Codo", 12)

	var order dto.OrderResponse
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/orders", buyer, dto.CreateOrderRequest{Lines: []dto.OrderLineRequest{{ProductID: p.ID, Quantity: 2}}}, &order))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+order.ID+"/pdf", nil)
	req.Header.Set("Authorization", buyer)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/api/orders/"+order.ID+"/pdf", tokenFor(t, "acc-x", entity.RoleCustomer), nil, &e))
}

func TestAPI_CuerpoInvalido(t *testing.T) {
	f := newAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenFor(t, buyerID, entity.RoleCustomer))
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
