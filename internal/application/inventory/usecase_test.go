package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcordero/bodega-api/internal/application/inventory"
	"github.com/jcordero/bodega-api/internal/domain"
	"github.com/jcordero/bodega-api/internal/domain/entity"
	"github.com/jcordero/bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore simula la base de datos: un mapa de productos y el libro de
// movimientos. Run toma un snapshot antes de ejecutar fn y lo restaura si fn
// falla, reproduciendo la semántica Commit/Rollback. El mutex se mantiene
// durante toda la transacción, igual que el bloqueo de fila serializa a los
// escritores concurrentes en PostgreSQL.
type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{products: make(map[string]*entity.Product)}
}

func (s *memStore) Run(_ context.Context, fn func(
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

	if err := fn(&memMovementRepo{store: s}, &memProductRepo{store: s}); err != nil {
		s.products = snapProducts
		s.movements = snapMovements
		return err
	}
	return nil
}

// seed inserta un producto con el stock indicado y devuelve su ID.
func (s *memStore) seed(t *testing.T, stock int) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	id := "prod-" + t.Name()
	s.products[id] = &entity.Product{
		ID:       id,
		Name:     "Producto de prueba",
		Price:    decimal.NewFromInt(10),
		Stock:    stock,
		StockMin: 5,
	}
	return id
}

func (s *memStore) stockOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].Stock
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate en memoria es igual a GetByID: el mutex del store ya serializa.
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *memProductRepo) UpdateStock(id string, stock int) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *memProductRepo) UpdateImage(id, imagePath string) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ImagePath = imagePath
	return nil
}

func (r *memProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}

type memMovementRepo struct{ store *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.store.movements = append(r.store.movements, m)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) DeleteByProduct(productID string) error {
	kept := r.store.movements[:0]
	for _, m := range r.store.movements {
		if m.ProductID != productID {
			kept = append(kept, m)
		}
	}
	r.store.movements = kept
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	store := newMemStore()
	id := store.seed(t, 10)
	uc := inventory.NewRegisterMovementUseCase(store)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: id,
		Type:      entity.MovementTypeEntrada,
		Quantity:  7,
		Reason:    "Compra a proveedor",
		CreatedBy: "jperez",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.Equal(t, 17, store.stockOf(id), "el stock debe subir en la cantidad de la entrada")
	assert.Equal(t, entity.MovementTypeEntrada, mov.Type)
	assert.Equal(t, 7, mov.Quantity)
	assert.Equal(t, "jperez", mov.CreatedBy)
	assert.NotEmpty(t, mov.ID)
	assert.False(t, mov.Date.IsZero())
}

func TestRegisterMovement_SalidaRestaStock(t *testing.T) {
	store := newMemStore()
	id := store.seed(t, 10)
	uc := inventory.NewRegisterMovementUseCase(store)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: id,
		Type:      entity.MovementTypeSalida,
		Quantity:  4,
		Reason:    "Venta",
		CreatedBy: "jperez",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, store.stockOf(id))
	assert.Equal(t, 4, mov.Quantity, "la cantidad del movimiento siempre es positiva")
}

// Una salida exacta hasta cero es válida: el invariante es stock >= 0.
func TestRegisterMovement_SalidaHastaCero(t *testing.T) {
	store := newMemStore()
	id := store.seed(t, 5)
	uc := inventory.NewRegisterMovementUseCase(store)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: id,
		Type:      entity.MovementTypeSalida,
		Quantity:  5,
		CreatedBy: "jperez",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, store.stockOf(id))
}

// Una salida mayor al disponible falla con el error tipado y no deja ningún
// artefacto a medias: ni stock tocado ni movimiento en el libro.
func TestRegisterMovement_SalidaInsuficienteNoDejaRastro(t *testing.T) {
	store := newMemStore()
	id := store.seed(t, 3)
	uc := inventory.NewRegisterMovementUseCase(store)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: id,
		Type:      entity.MovementTypeSalida,
		Quantity:  10,
		CreatedBy: "jperez",
	})
	require.Error(t, err)
	assert.Nil(t, mov)

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, 10, insErr.Requested)
	assert.Equal(t, 3, insErr.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 3, store.stockOf(id), "el stock no debe cambiar")
	assert.Equal(t, 0, store.movementCount(), "no debe registrarse movimiento")
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := inventory.NewRegisterMovementUseCase(store)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "no-existe",
		Type:      entity.MovementTypeEntrada,
		Quantity:  1,
		CreatedBy: "jperez",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_ValidaEntrada(t *testing.T) {
	store := newMemStore()
	id := store.seed(t, 10)
	uc := inventory.NewRegisterMovementUseCase(store)

	cases := []struct {
		name  string
		input inventory.MovementInput
		field string
	}{
		{
			name:  "producto requerido",
			input: inventory.MovementInput{Type: entity.MovementTypeEntrada, Quantity: 1, CreatedBy: "u"},
			field: "product_id",
		},
		{
			name:  "tipo desconocido",
			input: inventory.MovementInput{ProductID: id, Type: "traslado", Quantity: 1, CreatedBy: "u"},
			field: "type",
		},
		{
			name:  "ajuste no se acepta como movimiento directo",
			input: inventory.MovementInput{ProductID: id, Type: entity.MovementTypeAjuste, Quantity: 1, CreatedBy: "u"},
			field: "type",
		},
		{
			name:  "cantidad cero",
			input: inventory.MovementInput{ProductID: id, Type: entity.MovementTypeEntrada, Quantity: 0, CreatedBy: "u"},
			field: "quantity",
		},
		{
			name:  "cantidad negativa",
			input: inventory.MovementInput{ProductID: id, Type: entity.MovementTypeSalida, Quantity: -5, CreatedBy: "u"},
			field: "quantity",
		},
		{
			name:  "motivo demasiado largo",
			input: inventory.MovementInput{ProductID: id, Type: entity.MovementTypeEntrada, Quantity: 1, Reason: longString(201), CreatedBy: "u"},
			field: "reason",
		},
		{
			name:  "actor requerido",
			input: inventory.MovementInput{ProductID: id, Type: entity.MovementTypeEntrada, Quantity: 1},
			field: "created_by",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(context.Background(), tc.input)
			require.Error(t, err)
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr), "debe ser un error de validación")
			assert.Equal(t, tc.field, vErr.Field)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 10, store.stockOf(id), "la validación no debe tocar el stock")
		})
	}
}

// Dos salidas concurrentes que juntas exceden el stock: exactamente una debe
// ganar. El libro y el stock quedan consistentes con la ganadora.
func TestRegisterMovement_SalidasConcurrentes(t *testing.T) {
	store := newMemStore()
	id := store.seed(t, 5)
	uc := inventory.NewRegisterMovementUseCase(store)

	quantities := []int{5, 3}
	errs := make([]error, len(quantities))

	var wg sync.WaitGroup
	for i, q := range quantities {
		wg.Add(1)
		go func(i, q int) {
			defer wg.Done()
			_, errs[i] = uc.RegisterMovement(context.Background(), inventory.MovementInput{
				ProductID: id,
				Type:      entity.MovementTypeSalida,
				Quantity:  q,
				CreatedBy: "jperez",
			})
		}(i, q)
	}
	wg.Wait()

	var winners, losers int
	var wonQuantity int
	for i, err := range errs {
		if err == nil {
			winners++
			wonQuantity = quantities[i]
		} else {
			losers++
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	require.Equal(t, 1, winners, "exactamente una salida debe aplicarse")
	require.Equal(t, 1, losers)

	assert.Equal(t, 5-wonQuantity, store.stockOf(id))
	assert.Equal(t, 1, store.movementCount(), "solo la ganadora deja movimiento")
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
