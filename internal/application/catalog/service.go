package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/spicetrade/backend/internal/domain/catalog"
	"github.com/spicetrade/backend/internal/domain/shared"
	"github.com/spicetrade/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// Service handles catalog management operations
type Service struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	batchRepo    catalog.StockBatchRepository
	logger       *zap.Logger
}

// NewService creates a new catalog Service
func NewService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	batchRepo catalog.StockBatchRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		batchRepo:    batchRepo,
		logger:       logger,
	}
}

// ==================== Categories ====================

// CreateCategory creates a new category
func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A category with this name already exists")
	}

	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// ListCategories retrieves all categories
func (s *Service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// ==================== Products ====================

// CreateProduct creates a new product
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A product with this code already exists")
	}

	baseUnit, err := valueobject.ParseUnitCode(req.BaseUnit)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Code, req.Name, baseUnit)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(product.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.AssignCategory(*req.CategoryID)
	}
	if req.GSTPercentage != nil {
		if err := product.SetGSTPercentage(*req.GSTPercentage); err != nil {
			return nil, err
		}
	}
	if req.PurchasePrice != nil || req.SellingPrice != nil {
		purchasePrice := valueobject.NewMoneyINR(product.PurchasePrice)
		sellingPrice := valueobject.NewMoneyINR(product.SellingPrice)
		if req.PurchasePrice != nil {
			purchasePrice = valueobject.NewMoneyINR(*req.PurchasePrice)
		}
		if req.SellingPrice != nil {
			sellingPrice = valueobject.NewMoneyINR(*req.SellingPrice)
		}
		if err := product.SetPrices(purchasePrice, sellingPrice); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.String("code", product.Code), zap.String("base_unit", string(product.BaseUnit)))

	response := ToProductResponse(product)
	return &response, nil
}

// GetProduct retrieves a product by ID
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// ListProducts retrieves products with pagination
func (s *Service) ListProducts(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	repoFilter.Search = filter.Search
	if filter.Status != "" {
		repoFilter.Filters["status"] = filter.Status
	}
	if filter.CategoryID != nil {
		repoFilter.Filters["category_id"] = *filter.CategoryID
	}

	products, err := s.productRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}

	result := shared.NewPaginated(items, total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// UpdateProduct updates a product. Only the provided fields change.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.AssignCategory(*req.CategoryID)
	}
	if req.GSTPercentage != nil {
		if err := product.SetGSTPercentage(*req.GSTPercentage); err != nil {
			return nil, err
		}
	}
	if req.PurchasePrice != nil || req.SellingPrice != nil {
		purchasePrice := valueobject.NewMoneyINR(product.PurchasePrice)
		sellingPrice := valueobject.NewMoneyINR(product.SellingPrice)
		if req.PurchasePrice != nil {
			purchasePrice = valueobject.NewMoneyINR(*req.PurchasePrice)
		}
		if req.SellingPrice != nil {
			sellingPrice = valueobject.NewMoneyINR(*req.SellingPrice)
		}
		if err := product.SetPrices(purchasePrice, sellingPrice); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Showcase puts a product on the public storefront
func (s *Service) Showcase(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Showcase(); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Unshowcase removes a product from the public storefront
func (s *Service) Unshowcase(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Unshowcase()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// ListLowStock retrieves products at or below their stock alert level
func (s *Service) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, nil
}

// ListBatches retrieves the stock batches of a product
func (s *Service) ListBatches(ctx context.Context, productID uuid.UUID) ([]StockBatchResponse, error) {
	batches, err := s.batchRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]StockBatchResponse, len(batches))
	for i := range batches {
		responses[i] = ToStockBatchResponse(&batches[i])
	}
	return responses, nil
}
