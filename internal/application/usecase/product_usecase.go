package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcordero/bodega-api/internal/application/dto"
	"github.com/jcordero/bodega-api/internal/application/inventory"
	"github.com/jcordero/bodega-api/internal/application/ports"
	"github.com/jcordero/bodega-api/internal/domain"
	"github.com/jcordero/bodega-api/internal/domain/entity"
	"github.com/jcordero/bodega-api/internal/domain/repository"
)

// Límites del modelo de producto.
const (
	maxNameLen        = 50
	maxDescriptionLen = 200
	defaultStockMin   = 5
)

// InitialStockReason motivo del movimiento sintetizado al crear un producto
// con stock inicial.
const InitialStockReason = "Stock inicial"

// ProductUseCase casos de uso CRUD del catálogo. Stock queda fuera de Update:
// todo cambio de stock pasa por el motor de movimientos.
type ProductUseCase struct {
	txRunner    inventory.TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	images      ports.ImageStore
	reportGen   ports.LowStockReportGenerator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	images ports.ImageStore,
	reportGen ports.LowStockReportGenerator,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		images:      images,
		reportGen:   reportGen,
	}
}

// Create crea un producto. Si el stock inicial es mayor que cero, sintetiza un
// movimiento entrada "Stock inicial" en la misma transacción que el insert,
// de modo que el libro y el stock nacen consistentes.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, createdBy string) (*dto.ProductResponse, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "price", Message: "debe ser mayor que cero"}
	}
	if in.Stock < 0 {
		return nil, &domain.ValidationError{Field: "stock", Message: "no puede ser negativo"}
	}
	stockMin := defaultStockMin
	if in.StockMin != nil {
		if *in.StockMin < 0 {
			return nil, &domain.ValidationError{Field: "stock_min", Message: "no puede ser negativo"}
		}
		stockMin = *in.StockMin
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		StockMin:    stockMin,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.Stock > 0 {
			return movRepo.Create(&entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				Type:      entity.MovementTypeEntrada,
				Quantity:  in.Stock,
				Reason:    InitialStockReason,
				Date:      now,
				CreatedBy: createdBy,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, descripción, precio y stock mínimo. El stock no es
// editable por esta vía: el contrato público lo excluye.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		if err := validateName(*in.Name); err != nil {
			return nil, err
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return nil, err
		}
		product.Description = *in.Description
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, &domain.ValidationError{Field: "price", Message: "debe ser mayor que cero"}
		}
		product.Price = *in.Price
	}
	if in.StockMin != nil {
		if *in.StockMin < 0 {
			return nil, &domain.ValidationError{Field: "stock_min", Message: "no puede ser negativo"}
		}
		product.StockMin = *in.StockMin
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto y sus movimientos en cascada, en una transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := movRepo.DeleteByProduct(id); err != nil {
			return err
		}
		return productRepo.Delete(id)
	})
}

// List lista el catálogo con búsqueda de texto libre (insensible a tildes) y
// filtro de stock bajo.
func (uc *ProductUseCase) List(search string, lowStock bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.List(repository.ProductFilter{
		Search:   search,
		LowStock: lowStock,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListLowStock devuelve los productos con stock < stock_min, los más agotados
// primero. Se deriva en cada llamada: una vista de triaje no admite caché.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	list, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// LowStockReportPDF genera el reporte PDF de stock bajo.
func (uc *ProductUseCase) LowStockReportPDF(ctx context.Context) ([]byte, error) {
	list, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	return uc.reportGen.Generate(ctx, list)
}

// ListMovements devuelve el historial de movimientos del producto, más
// recientes primero.
func (uc *ProductUseCase) ListMovements(productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			Date:      m.Date,
			CreatedBy: m.CreatedBy,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AttachImage guarda la imagen en el colaborador de almacenamiento y persiste
// la referencia devuelta en el producto.
func (uc *ProductUseCase) AttachImage(id, filename string, data []byte) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	ref, err := uc.images.Save(filename, data)
	if err != nil {
		return nil, err
	}
	if err := uc.productRepo.UpdateImage(id, ref); err != nil {
		return nil, err
	}
	product.ImagePath = ref
	return toProductResponse(product), nil
}

func validateName(name string) error {
	if name == "" {
		return &domain.ValidationError{Field: "name", Message: "es requerido"}
	}
	if len(name) > maxNameLen {
		return &domain.ValidationError{Field: "name", Message: "máximo 50 caracteres"}
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > maxDescriptionLen {
		return &domain.ValidationError{Field: "description", Message: "máximo 200 caracteres"}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		StockMin:     p.StockMin,
		NeedsRestock: p.NeedsRestock(),
		Image:        p.ImagePath,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
