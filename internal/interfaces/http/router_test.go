package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/foodcart-api/internal/application/auth"
	"github.com/jhoicas/foodcart-api/internal/application/checkout"
	"github.com/jhoicas/foodcart-api/internal/application/dto"
	"github.com/jhoicas/foodcart-api/internal/application/usecase"
	"github.com/jhoicas/foodcart-api/internal/infrastructure/memory"
	"github.com/jhoicas/foodcart-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/foodcart-api/internal/interfaces/http"
)

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

// newAPI arma la app completa sobre el almacenamiento en memoria; "chef" administra el catálogo.
func newAPI(t *testing.T, health func(context.Context) error) *apiClient {
	t.Helper()
	st := memory.NewStore()
	users := memory.NewUserRepository(st)
	categories := memory.NewCategoryRepository(st)
	items := memory.NewItemRepository(st)
	cart := memory.NewCartRepository(st)
	purchases := memory.NewPurchaseRepository(st)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, auth.JWTConfig{
			Secret:     testJWTSecret,
			ExpMinutes: testExpMin,
			Issuer:     testIssuer,
		}).WithBcryptCost(bcrypt.MinCost),
		UserUC:         usecase.NewUserUseCase(users),
		CategoryUC:     usecase.NewCategoryUseCase(categories),
		ItemUC:         usecase.NewItemUseCase(items, categories),
		CartUC:         usecase.NewCartUseCase(cart, items),
		CheckoutUC:     checkout.NewUseCase(memory.NewTxRunner(st), purchases, nil),
		ReceiptUC:      checkout.NewReceiptUseCase(purchases, users, pdf.NewReceiptGenerator("")),
		JWTSecret:      testJWTSecret,
		AdminUsernames: []string{"chef"},
		ServiceName:    "foodcart-test",
		Health:         health,
	})
	return &apiClient{t: t, app: app}
}

func (a *apiClient) do(method, path, token string, body interface{}) *http.Response {
	a.t.Helper()
	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

// call ejecuta la petición, verifica el status y decodifica el cuerpo en out (si no es nil).
func (a *apiClient) call(method, path, token string, body interface{}, wantStatus int, out interface{}) {
	a.t.Helper()
	resp := a.do(method, path, token, body)
	defer resp.Body.Close()
	if !assert.Equal(a.t, wantStatus, resp.StatusCode, "%s %s", method, path) {
		var e dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		a.t.Fatalf("respuesta inesperada: %+v", e)
	}
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
}

func (a *apiClient) errorCode(method, path, token string, body interface{}, wantStatus int) dto.ErrorResponse {
	a.t.Helper()
	var e dto.ErrorResponse
	a.call(method, path, token, body, wantStatus, &e)
	return e
}

func (a *apiClient) signup(username string) string {
	a.t.Helper()
	email := username + "@example.com"
	a.call(http.MethodPost, "/api/v1/register", "", dto.RegisterRequest{Username: username, Email: email, Password: "password123"}, http.StatusCreated, nil)
	var login dto.LoginResponse
	a.call(http.MethodPost, "/api/v1/login", "", dto.LoginRequest{Email: email, Password: "password123"}, http.StatusOK, &login)
	require.NotEmpty(a.t, login.Token)
	return login.Token
}

func (a *apiClient) seedMenu(chef string) (burger, fries dto.ItemResponse) {
	a.t.Helper()
	var cat dto.CategoryResponse
	a.call(http.MethodPost, "/api/v1/postCategory", chef, dto.CreateCategoryRequest{CategoryName: "Main"}, http.StatusCreated, &cat)
	a.call(http.MethodPost, "/api/v1/postItem", chef, dto.CreateItemRequest{
		ItemName: "Burger", CategoryID: cat.CategoryID, Price: decimal.RequireFromString("8.50"), StockQuantity: 10,
	}, http.StatusCreated, &burger)
	a.call(http.MethodPost, "/api/v1/postItem", chef, dto.CreateItemRequest{
		ItemName: "Fries", CategoryID: cat.CategoryID, Price: decimal.RequireFromString("3.25"), StockQuantity: 5,
	}, http.StatusCreated, &fries)
	return burger, fries
}

func TestRouter_FlujoCompraCompleto(t *testing.T) {
	api := newAPI(t, nil)
	chef := api.signup("chef")
	ana := api.signup("ana")
	burger, fries := api.seedMenu(chef)

	var first, second dto.CartEntryResponse
	api.call(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: burger.ItemID}, http.StatusCreated, &first)
	api.call(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: burger.ItemID}, http.StatusOK, &second)
	assert.Equal(t, first.CartItemID, second.CartItemID)
	assert.Equal(t, 2, second.Quantity)
	api.call(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: fries.ItemID}, http.StatusCreated, nil)

	var summary dto.CartSummaryResponse
	api.call(http.MethodGet, "/api/v1/getCartSummary", ana, nil, http.StatusOK, &summary)
	assert.Equal(t, 3, summary.ItemCount)
	assert.True(t, decimal.RequireFromString("20.25").Equal(summary.TotalAmount), "total=%s", summary.TotalAmount)

	var out dto.CheckoutResponse
	api.call(http.MethodPost, "/api/v1/checkout", ana, dto.CheckoutRequest{PaymentMethod: "credit-card"}, http.StatusOK, &out)
	assert.True(t, decimal.RequireFromString("20.25").Equal(out.TotalAmount))
	require.NotEmpty(t, out.PurchaseID)

	e := api.errorCode(http.MethodGet, "/api/v1/getCartItems", ana, nil, http.StatusNotFound)
	assert.Equal(t, "No items found in user's cart", e.Message)

	var item dto.ItemResponse
	api.call(http.MethodGet, "/api/v1/getItem/"+burger.ItemID, "", nil, http.StatusOK, &item)
	assert.Equal(t, 8, item.StockQuantity)
	api.call(http.MethodGet, "/api/v1/getItem/"+fries.ItemID, "", nil, http.StatusOK, &item)
	assert.Equal(t, 4, item.StockQuantity)

	var history []dto.PurchaseResponse
	api.call(http.MethodGet, "/api/v1/getPurchases", ana, nil, http.StatusOK, &history)
	require.Len(t, history, 1)
	assert.Equal(t, out.PurchaseID, history[0].PurchaseID)
	assert.Equal(t, "credit-card", history[0].PaymentMethod)
	assert.Len(t, history[0].Items, 2)

	var detail dto.PurchaseResponse
	api.call(http.MethodGet, "/api/v1/getPurchase/"+out.PurchaseID, ana, nil, http.StatusOK, &detail)
	assert.Equal(t, out.PurchaseID, detail.PurchaseID)

	// Otro usuario no ve la compra.
	api.errorCode(http.MethodGet, "/api/v1/getPurchase/"+out.PurchaseID, chef, nil, http.StatusNotFound)
	api.errorCode(http.MethodGet, "/api/v1/getPurchases", chef, nil, http.StatusNotFound)
}

func TestRouter_CheckoutDosBurgers(t *testing.T) {
	api := newAPI(t, nil)
	chef := api.signup("chef")
	ana := api.signup("ana")

	var cat dto.CategoryResponse
	api.call(http.MethodPost, "/api/v1/postCategory", chef, dto.CreateCategoryRequest{CategoryName: "Main"}, http.StatusCreated, &cat)
	var burger dto.ItemResponse
	api.call(http.MethodPost, "/api/v1/postItem", chef, dto.CreateItemRequest{
		ItemName: "Burger", CategoryID: cat.CategoryID, Price: decimal.RequireFromString("7.99"), StockQuantity: 5,
	}, http.StatusCreated, &burger)

	api.call(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: burger.ItemID}, http.StatusCreated, nil)
	api.call(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: burger.ItemID}, http.StatusOK, nil)

	var out dto.CheckoutResponse
	api.call(http.MethodPost, "/api/v1/checkout", ana, dto.CheckoutRequest{PaymentMethod: "credit-card"}, http.StatusOK, &out)
	assert.True(t, decimal.RequireFromString("15.98").Equal(out.TotalAmount), "total=%s", out.TotalAmount)

	var item dto.ItemResponse
	api.call(http.MethodGet, "/api/v1/getItem/"+burger.ItemID, "", nil, http.StatusOK, &item)
	assert.Equal(t, 3, item.StockQuantity)
	api.errorCode(http.MethodGet, "/api/v1/getCartItems", ana, nil, http.StatusNotFound)
}

func TestRouter_CheckoutErrores(t *testing.T) {
	api := newAPI(t, nil)
	chef := api.signup("chef")
	ana := api.signup("ana")
	_, fries := api.seedMenu(chef)

	e := api.errorCode(http.MethodPost, "/api/v1/checkout", ana, dto.CheckoutRequest{PaymentMethod: "paypal"}, http.StatusBadRequest)
	assert.Equal(t, "EMPTY_CART", e.Code)

	api.call(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: fries.ItemID}, http.StatusCreated, nil)
	for i := 0; i < 5; i++ {
		api.call(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: fries.ItemID}, http.StatusOK, nil)
	}

	e = api.errorCode(http.MethodPost, "/api/v1/checkout", ana, dto.CheckoutRequest{PaymentMethod: "  "}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "Payment method is required", e.Message)

	e = api.errorCode(http.MethodPost, "/api/v1/checkout", ana, dto.CheckoutRequest{PaymentMethod: "paypal"}, http.StatusBadRequest)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.Equal(t, "Not enough stock for item: fries", e.Message)

	// Nada cambió: stock intacto y carrito conservado.
	var item dto.ItemResponse
	api.call(http.MethodGet, "/api/v1/getItem/"+fries.ItemID, "", nil, http.StatusOK, &item)
	assert.Equal(t, 5, item.StockQuantity)
	var lines []dto.CartLineResponse
	api.call(http.MethodGet, "/api/v1/getCartItems", ana, nil, http.StatusOK, &lines)
	require.Len(t, lines, 1)
	assert.Equal(t, 6, lines[0].Quantity)

	resp := api.do(http.MethodPost, "/api/v1/checkout", ana, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_AdminCatalogo(t *testing.T) {
	api := newAPI(t, nil)
	chef := api.signup("chef")
	ana := api.signup("ana")

	e := api.errorCode(http.MethodPost, "/api/v1/postCategory", ana, dto.CreateCategoryRequest{CategoryName: "Drinks"}, http.StatusForbidden)
	assert.Equal(t, "FORBIDDEN", e.Code)
	api.errorCode(http.MethodPost, "/api/v1/postCategory", "", dto.CreateCategoryRequest{CategoryName: "Drinks"}, http.StatusUnauthorized)

	var cat dto.CategoryResponse
	api.call(http.MethodPost, "/api/v1/postCategory", chef, dto.CreateCategoryRequest{CategoryName: "Drinks"}, http.StatusCreated, &cat)
	assert.Equal(t, "drinks", cat.CategoryName)
	e = api.errorCode(http.MethodPost, "/api/v1/postCategory", chef, dto.CreateCategoryRequest{CategoryName: " DRINKS "}, http.StatusBadRequest)
	assert.Equal(t, "DUPLICATE", e.Code)

	var cats []dto.CategoryResponse
	api.call(http.MethodGet, "/api/v1/getCategories", "", nil, http.StatusOK, &cats)
	require.Len(t, cats, 1)

	// Mismo nombre, precio y categoría: repone stock.
	req := dto.CreateItemRequest{ItemName: "Soda", CategoryID: cat.CategoryID, Price: decimal.RequireFromString("1.999"), StockQuantity: 4}
	var soda, restocked dto.ItemResponse
	api.call(http.MethodPost, "/api/v1/postItem", chef, req, http.StatusCreated, &soda)
	assert.True(t, decimal.RequireFromString("2.00").Equal(soda.Price))
	req.ItemName = "  soda"
	api.call(http.MethodPost, "/api/v1/postItem", chef, req, http.StatusOK, &restocked)
	assert.Equal(t, soda.ItemID, restocked.ItemID)
	assert.Equal(t, 8, restocked.StockQuantity)

	e = api.errorCode(http.MethodPost, "/api/v1/postItem", chef, dto.CreateItemRequest{
		ItemName: "Water", CategoryID: uuid.New().String(), Price: decimal.NewFromInt(1), StockQuantity: 1,
	}, http.StatusNotFound)
	assert.Equal(t, "Category not found", e.Message)
	e = api.errorCode(http.MethodPost, "/api/v1/postItem", chef, dto.CreateItemRequest{
		ItemName: "Water", CategoryID: cat.CategoryID, Price: decimal.NewFromInt(-1), StockQuantity: 1,
	}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", e.Code)

	var byCat []dto.ItemResponse
	api.call(http.MethodGet, "/api/v1/getItemsByCategory/"+cat.CategoryID, "", nil, http.StatusOK, &byCat)
	require.Len(t, byCat, 1)
	e = api.errorCode(http.MethodGet, "/api/v1/getItemsByCategory/"+uuid.New().String(), "", nil, http.StatusNotFound)
	assert.Equal(t, "No items found for this category", e.Message)

	// Categoría con ítems no se puede borrar.
	e = api.errorCode(http.MethodDelete, "/api/v1/deleteCategory/"+cat.CategoryID, chef, nil, http.StatusConflict)
	assert.Equal(t, "CONFLICT", e.Code)

	var msg struct {
		Message string           `json:"message"`
		Item    dto.ItemResponse `json:"item"`
	}
	api.call(http.MethodDelete, "/api/v1/deleteItem/"+soda.ItemID, chef, nil, http.StatusOK, &msg)
	assert.Equal(t, "Item deleted successfully", msg.Message)
	assert.Equal(t, soda.ItemID, msg.Item.ItemID)
	api.errorCode(http.MethodDelete, "/api/v1/deleteItem/"+soda.ItemID, chef, nil, http.StatusNotFound)
	api.errorCode(http.MethodGet, "/api/v1/getItem/not-a-uuid", "", nil, http.StatusNotFound)

	api.call(http.MethodDelete, "/api/v1/deleteCategory/"+cat.CategoryID, chef, nil, http.StatusOK, nil)
	api.call(http.MethodGet, "/api/v1/getCategories", "", nil, http.StatusOK, &cats)
	assert.Empty(t, cats)
}

func TestRouter_QuitarDelCarrito(t *testing.T) {
	api := newAPI(t, nil)
	chef := api.signup("chef")
	ana := api.signup("ana")
	burger, _ := api.seedMenu(chef)

	var entry dto.CartEntryResponse
	api.call(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: burger.ItemID}, http.StatusCreated, &entry)
	api.call(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: burger.ItemID}, http.StatusOK, nil)

	// Otro usuario no puede tocar la línea.
	api.errorCode(http.MethodDelete, "/api/v1/deleteCartItem/"+entry.CartItemID, chef, nil, http.StatusNotFound)

	var msg struct {
		Message string                `json:"message"`
		Item    dto.CartEntryResponse `json:"item"`
	}
	api.call(http.MethodDelete, "/api/v1/deleteCartItem/"+entry.CartItemID, ana, nil, http.StatusOK, &msg)
	assert.Equal(t, "Item quantity decreased", msg.Message)
	assert.Equal(t, 1, msg.Item.Quantity)
	api.call(http.MethodDelete, "/api/v1/deleteCartItem/"+entry.CartItemID, ana, nil, http.StatusOK, &msg)
	assert.Equal(t, "Item deleted from cart", msg.Message)
	api.errorCode(http.MethodDelete, "/api/v1/deleteCartItem/"+entry.CartItemID, ana, nil, http.StatusNotFound)

	e := api.errorCode(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: uuid.New().String()}, http.StatusNotFound)
	assert.Equal(t, "Item not found", e.Message)
}

func TestRouter_RegistroYLogin(t *testing.T) {
	api := newAPI(t, nil)
	token := api.signup("ana")

	var me dto.UserResponse
	api.call(http.MethodGet, "/api/v1/me", token, nil, http.StatusOK, &me)
	assert.Equal(t, "ana", me.Username)
	assert.Equal(t, "ana@example.com", me.Email)

	e := api.errorCode(http.MethodPost, "/api/v1/register", "", dto.RegisterRequest{Username: "other", Email: "ANA@example.com", Password: "password123"}, http.StatusBadRequest)
	assert.Equal(t, "EMAIL_EXISTS", e.Code)
	e = api.errorCode(http.MethodPost, "/api/v1/register", "", dto.RegisterRequest{Username: "ana", Email: "ana2@example.com", Password: "password123"}, http.StatusBadRequest)
	assert.Equal(t, "USERNAME_EXISTS", e.Code)
	e = api.errorCode(http.MethodPost, "/api/v1/register", "", dto.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "short"}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", e.Code)
	e = api.errorCode(http.MethodPost, "/api/v1/register", "", dto.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: strings.Repeat("a", 80)}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION", e.Code)

	e = api.errorCode(http.MethodPost, "/api/v1/login", "", dto.LoginRequest{Email: "ana@example.com", Password: "wrong-password"}, http.StatusUnauthorized)
	assert.Equal(t, "UNAUTHORIZED", e.Code)

	resp := api.do(http.MethodPost, "/api/v1/login", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	api.errorCode(http.MethodGet, "/api/v1/me", "", nil, http.StatusUnauthorized)
}

func TestRouter_Comprobante(t *testing.T) {
	api := newAPI(t, nil)
	chef := api.signup("chef")
	ana := api.signup("ana")
	burger, _ := api.seedMenu(chef)
	api.call(http.MethodPost, "/api/v1/addToCart", ana, dto.AddToCartRequest{ItemID: burger.ItemID}, http.StatusCreated, nil)
	var out dto.CheckoutResponse
	api.call(http.MethodPost, "/api/v1/checkout", ana, dto.CheckoutRequest{PaymentMethod: "paypal"}, http.StatusOK, &out)

	resp := api.do(http.MethodGet, "/api/v1/getPurchaseReceipt/"+out.PurchaseID, ana, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment;"))

	api.errorCode(http.MethodGet, "/api/v1/getPurchaseReceipt/"+out.PurchaseID, chef, nil, http.StatusNotFound)
}

func TestRouter_Health(t *testing.T) {
	var body map[string]string
	newAPI(t, nil).call(http.MethodGet, "/health", "", nil, http.StatusOK, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "foodcart-test", body["service"])

	down := newAPI(t, func(context.Context) error { return errors.New("connection refused") })
	e := down.errorCode(http.MethodGet, "/health", "", nil, http.StatusServiceUnavailable)
	assert.Equal(t, "UNAVAILABLE", e.Code)
}

func TestErrorHandler_OcultaErroresInternos(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(nil)})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("pq: connection reset") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "teapot") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "Internal server error", e.Message)
	assert.NotContains(t, e.Message, "pq")

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp2.StatusCode)
}
