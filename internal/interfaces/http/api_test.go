package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bioinventario-api/internal/application/auth"
	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/application/inventory"
	"github.com/jhoicas/bioinventario-api/internal/application/order"
	"github.com/jhoicas/bioinventario-api/internal/application/reference"
	"github.com/jhoicas/bioinventario-api/internal/application/usecase"
	"github.com/jhoicas/bioinventario-api/internal/infrastructure/memory"
	"github.com/jhoicas/bioinventario-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/bioinventario-api/internal/interfaces/http"
)

const testAdminPassword = "s3cret-admin"

// newTestApp arma la API completa sobre el almacenamiento en memoria.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	partners := memory.NewPartnerRepository(store)
	resolver := reference.NewResolver(products, partners)

	deps := apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(products),
		PartnerUC: usecase.NewPartnerUseCase(partners),
		LedgerUC: inventory.NewLedgerUseCase(
			memory.NewTxRunner(store),
			memory.NewInventoryLineRepository(store),
			memory.NewInventoryTransactionRepository(store),
			resolver, log,
		),
		OrderUC: order.NewUseCase(memory.NewOrderRepository(store), resolver, pdf.NewOrderDocumentGenerator("test"), log),
		AuthUC: auth.NewAuthUseCase(memory.NewUserRepository(store), auth.JWTConfig{
			Secret: "test-secret", ExpMinutes: 60, Issuer: "test",
		}, "", log),
		Info: dto.InfoResponse{Name: "bioinventario-api", Version: "test"},
	}
	return apphttp.NewApp(apphttp.AppConfig{Name: "test", Log: log}, deps)
}

type apiResponse struct {
	status int
	header http.Header
	body   []byte
}

func (r apiResponse) decode(t *testing.T, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, out), string(r.body))
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) apiResponse {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return apiResponse{status: resp.StatusCode, header: resp.Header, body: b}
}

// adminToken crea el admin inicial y devuelve su token.
func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	r := call(t, app, http.MethodPost, "/api/auth/init-admin", "", fiber.Map{"password": testAdminPassword})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	r = call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "admin", "password": testAdminPassword})
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	var tok dto.TokenResponse
	r.decode(t, &tok)
	assert.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func createProduct(t *testing.T, app *fiber.App, token, code string) dto.ProductResponse {
	t.Helper()
	r := call(t, app, http.MethodPost, "/api/products/", token, fiber.Map{
		"name": "Proteína " + code, "product_code": code, "product_type": "PROTEIN",
	})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var p dto.ProductResponse
	r.decode(t, &p)
	return p
}

func createPartner(t *testing.T, app *fiber.App, token, code, typ string) dto.PartnerResponse {
	t.Helper()
	r := call(t, app, http.MethodPost, "/api/partners/", token, fiber.Map{
		"name": "Socio " + code, "partner_code": code, "partner_type": typ,
	})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var p dto.PartnerResponse
	r.decode(t, &p)
	return p
}

func TestRootAndHealth(t *testing.T) {
	app := newTestApp(t)

	r := call(t, app, http.MethodGet, "/api", "", nil)
	require.Equal(t, http.StatusOK, r.status)
	var info dto.InfoResponse
	r.decode(t, &info)
	assert.Equal(t, "bioinventario-api", info.Name)

	for _, path := range []string{"/health", "/api/health"} {
		r = call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, r.status, path)
	}

	r = call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, r.status)
	assert.Contains(t, string(r.body), "bioinventario_http_requests_total")
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)

	r := call(t, app, http.MethodPost, "/api/auth/init-admin", "", nil)
	assert.Equal(t, http.StatusConflict, r.status)

	r = call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, r.status)
	var me dto.UserResponse
	r.decode(t, &me)
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, "admin", me.Role)

	r = call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "admin", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, r.status)

	r = call(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{"username": "ana", "password": "123456", "is_active": false})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	r = call(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{"username": "ana", "password": "123456"})
	assert.Equal(t, http.StatusConflict, r.status)
	r = call(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "ana", "password": "123456"})
	assert.Equal(t, http.StatusForbidden, r.status)

	r = call(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{"username": "bo", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, r.status)
}

func TestProducts(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)

	r := call(t, app, http.MethodPost, "/api/products/", "", fiber.Map{"name": "X", "product_code": "X", "product_type": "OTHER"})
	assert.Equal(t, http.StatusUnauthorized, r.status)

	p := createProduct(t, app, token, "PRO-001")
	assert.Equal(t, "unidad", p.Unit)

	r = call(t, app, http.MethodPost, "/api/products/", token, fiber.Map{"name": "Otra", "product_code": "PRO-001", "product_type": "PROTEIN"})
	assert.Equal(t, http.StatusConflict, r.status)

	r = call(t, app, http.MethodPost, "/api/products/", token, fiber.Map{"name": "Mal", "product_code": "M-1", "product_type": "VIRUS"})
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = call(t, app, http.MethodGet, "/api/products/"+p.ID, "", nil)
	require.Equal(t, http.StatusOK, r.status)
	var got dto.ProductResponse
	r.decode(t, &got)
	assert.Equal(t, p, got)

	r = call(t, app, http.MethodGet, "/api/products/no-es-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, r.status)
	var e dto.ErrorResponse
	r.decode(t, &e)
	assert.Equal(t, apphttp.CodeInvalidID, e.Code)

	r = call(t, app, http.MethodGet, "/api/products/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, r.status)

	r = call(t, app, http.MethodPut, "/api/products/"+p.ID, token, fiber.Map{"category": "recombinantes"})
	require.Equal(t, http.StatusOK, r.status)
	r.decode(t, &got)
	assert.Equal(t, "recombinantes", got.Category)
	assert.Equal(t, p.Name, got.Name)

	r = call(t, app, http.MethodGet, "/api/products/?search=pro-0", "", nil)
	require.Equal(t, http.StatusOK, r.status)
	var list []dto.ProductResponse
	r.decode(t, &list)
	assert.Len(t, list, 1)

	r = call(t, app, http.MethodDelete, "/api/products/"+p.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, r.status)
	r = call(t, app, http.MethodDelete, "/api/products/"+p.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, r.status)
}

func TestPartners_SupplierAndCustomerViews(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)

	createPartner(t, app, token, "SUP-1", "SUPPLIER")
	createPartner(t, app, token, "CUS-1", "CUSTOMER")
	createPartner(t, app, token, "BOTH-1", "BOTH")

	var list []dto.PartnerResponse
	r := call(t, app, http.MethodGet, "/api/partners/suppliers", "", nil)
	require.Equal(t, http.StatusOK, r.status)
	r.decode(t, &list)
	assert.Len(t, list, 2)

	r = call(t, app, http.MethodGet, "/api/partners/customers", "", nil)
	require.Equal(t, http.StatusOK, r.status)
	r.decode(t, &list)
	assert.Len(t, list, 2)

	r = call(t, app, http.MethodGet, "/api/partners/?partner_type=CUSTOMER", "", nil)
	require.Equal(t, http.StatusOK, r.status)
	r.decode(t, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "CUS-1", list[0].PartnerCode)
}

func TestInventory_LedgerOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)
	p := createProduct(t, app, token, "AB-01")

	r := call(t, app, http.MethodPost, "/api/inventory/", token, fiber.Map{"product_id": p.ID, "quantity": 0, "unit_price": 12.5})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var line dto.InventoryResponse
	r.decode(t, &line)
	assert.Equal(t, "principal", line.Warehouse)
	assert.Equal(t, p.Name, line.ProductName)

	r = call(t, app, http.MethodPost, "/api/inventory/out", token, fiber.Map{"inventory_id": line.ID, "quantity": 5})
	assert.Equal(t, http.StatusBadRequest, r.status)
	var e dto.ErrorResponse
	r.decode(t, &e)
	assert.Equal(t, apphttp.CodeInsufficientStock, e.Code)
	assert.Contains(t, e.Detail, "stock actual: 0")

	r = call(t, app, http.MethodPost, "/api/inventory/in", token, fiber.Map{"inventory_id": line.ID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = call(t, app, http.MethodPost, "/api/inventory/in", token, fiber.Map{"inventory_id": line.ID, "quantity": 10})
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	var tx dto.TransactionResponse
	r.decode(t, &tx)
	assert.Equal(t, "IN", tx.OperationType)
	assert.Equal(t, 10, tx.Quantity)
	assert.Equal(t, "admin", tx.Operator)

	r = call(t, app, http.MethodPost, "/api/inventory/out", token, fiber.Map{"inventory_id": line.ID, "quantity": 4})
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	r.decode(t, &tx)
	assert.Equal(t, -4, tx.Quantity)

	r = call(t, app, http.MethodPut, "/api/inventory/"+line.ID, token, fiber.Map{"quantity": 8})
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	r.decode(t, &line)
	assert.Equal(t, 8, line.Quantity)

	r = call(t, app, http.MethodPost, "/api/inventory/out", token, fiber.Map{"inventory_id": uuid.NewString(), "quantity": 1})
	assert.Equal(t, http.StatusNotFound, r.status)

	// Paginación por cursor: tres movimientos en dos páginas, sin repetidos
	var page []dto.TransactionResponse
	r = call(t, app, http.MethodGet, "/api/inventory/records?limit=2", "", nil)
	require.Equal(t, http.StatusOK, r.status)
	r.decode(t, &page)
	require.Len(t, page, 2)
	cursor := r.header.Get(apphttp.HeaderNextCursor)
	require.NotEmpty(t, cursor)
	seen := []string{page[0].OperationType, page[1].OperationType}
	ids := map[string]bool{page[0].ID: true, page[1].ID: true}

	r = call(t, app, http.MethodGet, "/api/inventory/records?limit=2&cursor="+cursor, "", nil)
	require.Equal(t, http.StatusOK, r.status)
	r.decode(t, &page)
	require.Len(t, page, 1)
	assert.False(t, ids[page[0].ID])
	assert.Empty(t, r.header.Get(apphttp.HeaderNextCursor))
	assert.ElementsMatch(t, []string{"IN", "OUT", "ADJUST"}, append(seen, page[0].OperationType))

	r = call(t, app, http.MethodGet, "/api/inventory/records?cursor=bm9waXBl", "", nil)
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = call(t, app, http.MethodGet, "/api/inventory/records?operation_type=OUT", "", nil)
	require.Equal(t, http.StatusOK, r.status)
	r.decode(t, &page)
	assert.Len(t, page, 1)
}

func TestPurchases_Workflow(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)
	p := createProduct(t, app, token, "PRO-001")
	sup := createPartner(t, app, token, "SUP-1", "SUPPLIER")

	r := call(t, app, http.MethodPost, "/api/purchases/", token, fiber.Map{
		"supplier_id": sup.ID,
		"items":       []fiber.Map{{"product_id": p.ID, "quantity": 10, "unit_price": 5.0}},
	})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var o dto.OrderResponse
	r.decode(t, &o)
	assert.Equal(t, "50", o.TotalAmount.String())
	assert.Equal(t, "DRAFT", o.Status)
	assert.Equal(t, sup.Name, o.SupplierName)
	assert.Equal(t, "admin", o.CreatedBy)
	assert.Regexp(t, regexp.MustCompile(`^PO\d{14}[A-Z0-9]{4}$`), o.OrderNumber)
	require.Len(t, o.Items, 1)
	assert.Equal(t, p.Name, o.Items[0].ProductName)

	r = call(t, app, http.MethodPost, "/api/purchases/"+o.ID+"/approve", token, nil)
	assert.Equal(t, http.StatusBadRequest, r.status)
	var e dto.ErrorResponse
	r.decode(t, &e)
	assert.Equal(t, apphttp.CodeInvalidTransition, e.Code)

	r = call(t, app, http.MethodPut, "/api/purchases/"+o.ID, token, fiber.Map{"status": "SHIPPED"})
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = call(t, app, http.MethodPut, "/api/purchases/"+o.ID, token, fiber.Map{
		"status": "PENDING",
		"items":  []fiber.Map{{"product_id": p.ID, "quantity": 3, "unit_price": 2.5}, {"product_id": p.ID, "quantity": 1, "unit_price": 0.1}},
	})
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	r.decode(t, &o)
	assert.Equal(t, "7.6", o.TotalAmount.String())

	r = call(t, app, http.MethodPost, "/api/purchases/"+o.ID+"/approve", token, nil)
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	r.decode(t, &o)
	assert.Equal(t, "APPROVED", o.Status)

	r = call(t, app, http.MethodGet, "/api/purchases/"+o.ID+"/pdf", "", nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "application/pdf", r.header.Get("Content-Type"))
	assert.Contains(t, r.header.Get("Content-Disposition"), o.OrderNumber+".pdf")

	// Una compra no es visible como venta
	r = call(t, app, http.MethodGet, "/api/sales/"+o.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, r.status)

	r = call(t, app, http.MethodDelete, "/api/purchases/"+o.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, r.status)
	r = call(t, app, http.MethodGet, "/api/purchases/"+o.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, r.status)
}

func TestSales_CounterpartyRole(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t, app)
	p := createProduct(t, app, token, "AG-1")
	sup := createPartner(t, app, token, "SUP-1", "SUPPLIER")
	cus := createPartner(t, app, token, "CUS-1", "BOTH")
	items := []fiber.Map{{"product_id": p.ID, "quantity": 2, "unit_price": 100}}

	r := call(t, app, http.MethodPost, "/api/sales/", token, fiber.Map{"customer_id": sup.ID, "items": items})
	assert.Equal(t, http.StatusNotFound, r.status)

	r = call(t, app, http.MethodPost, "/api/sales/", token, fiber.Map{"customer_id": cus.ID, "items": []fiber.Map{}})
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = call(t, app, http.MethodPost, "/api/sales/", token, fiber.Map{
		"customer_id": cus.ID, "items": items, "shipping_address": "Calle 10 #5-20",
	})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var o dto.OrderResponse
	r.decode(t, &o)
	assert.Regexp(t, `^SO\d{14}[A-Z0-9]{4}$`, o.OrderNumber)
	assert.Equal(t, cus.Name, o.CustomerName)
	assert.Equal(t, "Calle 10 #5-20", o.ShippingAddress)
	assert.Equal(t, "200", o.TotalAmount.String())

	r = call(t, app, http.MethodGet, "/api/sales/?customer_id="+cus.ID, "", nil)
	require.Equal(t, http.StatusOK, r.status)
	var list []dto.OrderResponse
	r.decode(t, &list)
	assert.Len(t, list, 1)
}
