package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcordero/bodega-api/internal/application/auth"
	"github.com/jcordero/bodega-api/internal/application/inventory"
	"github.com/jcordero/bodega-api/internal/application/usecase"
	"github.com/jcordero/bodega-api/internal/domain"
	"github.com/jcordero/bodega-api/internal/domain/entity"
	"github.com/jcordero/bodega-api/internal/domain/repository"
	apphttp "github.com/jcordero/bodega-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "bodega-api-test"
	testUsername  = "jperez"
	testPassword  = "contrasena-segura"
)

// apiStore base de datos en memoria detrás de la API completa. Run restaura el
// snapshot si fn falla, reproduciendo el rollback, y el mutex serializa las
// transacciones como el bloqueo de fila en PostgreSQL.
type apiStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	users     map[string]*entity.User
}

func newAPIStore() *apiStore {
	return &apiStore{
		products: make(map[string]*entity.Product),
		users:    make(map[string]*entity.User),
	}
}

func (s *apiStore) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapProducts := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		snapProducts[id] = &cp
	}
	snapMovements := append([]*entity.StockMovement(nil), s.movements...)

	if err := fn(&apiMovementRepo{store: s}, &apiProductRepo{store: s}); err != nil {
		s.products = snapProducts
		s.movements = snapMovements
		return err
	}
	return nil
}

// seedProduct inserta un producto directamente y devuelve su ID.
func (s *apiStore) seedProduct(t *testing.T, name string, stock, stockMin int) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	id := "prod-" + name
	s.products[id] = &entity.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(10),
		Stock:    stock,
		StockMin: stockMin,
	}
	return id
}

// seedUser registra un usuario con la contraseña de prueba.
func (s *apiStore) seedUser(t *testing.T, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = &entity.User{
		ID:           "user-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Name:         "Usuario de prueba",
	}
}

type apiProductRepo struct{ store *apiStore }

func (r *apiProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *apiProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *apiProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *apiProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *apiProductRepo) UpdateStock(id string, stock int) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *apiProductRepo) UpdateImage(id, imagePath string) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ImagePath = imagePath
	return nil
}

func (r *apiProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *apiProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.NeedsRestock() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *apiProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}

type apiMovementRepo struct{ store *apiStore }

func (r *apiMovementRepo) Create(m *entity.StockMovement) error {
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *apiMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.store.movements) - 1; i >= 0; i-- {
		if r.store.movements[i].ProductID == productID {
			out = append(out, r.store.movements[i])
		}
	}
	return out, nil
}

func (r *apiMovementRepo) DeleteByProduct(productID string) error {
	kept := r.store.movements[:0]
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.store.movements = kept
	return nil
}

type apiUserRepo struct{ store *apiStore }

func (r *apiUserRepo) GetByUsername(username string) (*entity.User, error) {
	u, ok := r.store.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type noopImageStore struct{}

func (noopImageStore) Save(string, []byte) (string, error) {
	return "products/imagen.png", nil
}

type noopReportGen struct{}

func (noopReportGen) Generate(_ context.Context, _ []*entity.Product) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

// buildTestApp levanta la API completa sobre el store en memoria, con el mismo
// cableado de rutas que producción.
func buildTestApp(store *apiStore) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC: usecase.NewProductUseCase(
			store, &apiProductRepo{store: store}, &apiMovementRepo{store: store},
			noopImageStore{}, noopReportGen{},
		),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store),
		AdjustStock:      inventory.NewAdjustStockUseCase(store),
		AuthUC: auth.NewAuthUseCase(&apiUserRepo{store: store}, auth.JWTConfig{
			Secret:     testJWTSecret,
			ExpMinutes: 60,
			Issuer:     testIssuer,
		}),
		JWTSecret: testJWTSecret,
	})
	return app
}

// doJSON lanza una petición con body JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody decodifica el body JSON de la respuesta en out.
func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
}
