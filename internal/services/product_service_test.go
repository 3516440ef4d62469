package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// MockCatalogRepository is a mock implementation of CatalogRepositoryInterface
type MockCatalogRepository struct {
	mock.Mock
}

var _ repository.CatalogRepositoryInterface = (*MockCatalogRepository)(nil)

func (m *MockCatalogRepository) WithTransaction(ctx context.Context, fn func(repo repository.CatalogRepositoryInterface) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

func (m *MockCatalogRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetProduct(ctx context.Context, tenantID string, id int64) (*models.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalogRepository) MarkProductDeleted(ctx context.Context, tenantID string, id int64, deletedBy string) error {
	args := m.Called(ctx, tenantID, id, deletedBy)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context, tenantID string, filter models.ProductFilter, offset, limit int) ([]models.Product, int64, error) {
	args := m.Called(ctx, tenantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockCatalogRepository) CreateImageMapping(ctx context.Context, mapping *models.ImageMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetImageMapping(ctx context.Context, productID int64) (*models.ImageMapping, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImageMapping), args.Error(1)
}

func (m *MockCatalogRepository) DeleteImageMapping(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreateCategoryMappings(ctx context.Context, mappings []models.CategoryMapping) error {
	args := m.Called(ctx, mappings)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetCategoryMappings(ctx context.Context, productID int64) ([]models.CategoryMapping, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryMapping), args.Error(1)
}

func (m *MockCatalogRepository) DeleteCategoryMappings(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockCatalogRepository) CreateVariant(ctx context.Context, variant *models.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetVariants(ctx context.Context, tenantID string, productID int64) ([]models.Variant, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Variant), args.Error(1)
}

func (m *MockCatalogRepository) CountVariantsByProduct(ctx context.Context, productIDs []int64) (map[int64]int, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockCatalogRepository) CreateVariantLocation(ctx context.Context, location *models.VariantLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetVariantLocation(ctx context.Context, variantID int64) (*models.VariantLocation, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantLocation), args.Error(1)
}

func (m *MockCatalogRepository) CreateVariantTax(ctx context.Context, tax *models.VariantTax) error {
	args := m.Called(ctx, tax)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetVariantTax(ctx context.Context, variantID int64) (*models.VariantTax, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VariantTax), args.Error(1)
}

func (m *MockCatalogRepository) CreateUomMappings(ctx context.Context, mappings []models.UomMapping) error {
	args := m.Called(ctx, mappings)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetUomMappings(ctx context.Context, variantID int64) ([]models.UomMapping, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UomMapping), args.Error(1)
}

func (m *MockCatalogRepository) CreateAttributeMapping(ctx context.Context, mapping *models.AttributeMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetAttributeMappings(ctx context.Context, variantID int64) ([]models.AttributeMapping, error) {
	args := m.Called(ctx, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttributeMapping), args.Error(1)
}

func (m *MockCatalogRepository) CreateAttributeValues(ctx context.Context, values []models.AttributeValue) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetAttributeValues(ctx context.Context, mappingID int64) ([]models.AttributeValue, error) {
	args := m.Called(ctx, mappingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttributeValue), args.Error(1)
}

func (m *MockCatalogRepository) DeleteVariantGraph(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetUom(ctx context.Context, id int64) (*models.Uom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Uom), args.Error(1)
}

func (m *MockCatalogRepository) UomNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *MockCatalogRepository) CategoryNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *MockCatalogRepository) AttributeNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *MockCatalogRepository) AttributeValueNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *MockCatalogRepository) MasterValueNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *MockCatalogRepository) ListUoms(ctx context.Context) ([]models.Uom, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Uom), args.Error(1)
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCatalogRepository) ListAttributes(ctx context.Context) ([]models.Attribute, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attribute), args.Error(1)
}

func (m *MockCatalogRepository) ListAttributeValueRefs(ctx context.Context) ([]models.AttributeValueRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttributeValueRef), args.Error(1)
}

func (m *MockCatalogRepository) ListMasterValues(ctx context.Context, masterID int) ([]models.MasterValue, error) {
	args := m.Called(ctx, masterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MasterValue), args.Error(1)
}

func (m *MockCatalogRepository) CreateWastage(ctx context.Context, wastage *models.Wastage) error {
	args := m.Called(ctx, wastage)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateWastage(ctx context.Context, wastage *models.Wastage) error {
	args := m.Called(ctx, wastage)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetWastage(ctx context.Context, tenantID string, id int64) (*models.Wastage, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wastage), args.Error(1)
}

func (m *MockCatalogRepository) MarkWastageDeleted(ctx context.Context, tenantID string, id int64, deletedBy string) error {
	args := m.Called(ctx, tenantID, id, deletedBy)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListWastages(ctx context.Context, tenantID string, filter models.WastageFilter) ([]models.Wastage, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Wastage), args.Get(1).(int64), args.Error(2)
}

func (m *MockCatalogRepository) CreateWastageAttachments(ctx context.Context, attachments []models.WastageAttachment) error {
	args := m.Called(ctx, attachments)
	return args.Error(0)
}

func (m *MockCatalogRepository) GetWastageAttachments(ctx context.Context, wastageID int64) ([]models.WastageAttachment, error) {
	args := m.Called(ctx, wastageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WastageAttachment), args.Error(1)
}

func (m *MockCatalogRepository) DeleteWastageAttachments(ctx context.Context, wastageID int64) error {
	args := m.Called(ctx, wastageID)
	return args.Error(0)
}

func (m *MockCatalogRepository) InvalidateProductCache(ctx context.Context, tenantID string, id int64) {
	m.Called(ctx, tenantID, id)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testActor() models.Actor {
	return models.Actor{UserID: "user-1", TenantID: "tenant-1"}
}

func singleVariantRequest() *models.ProductRequest {
	return &models.ProductRequest{
		Name:   "Arabica Beans",
		Config: models.ProductConfigFinishedGood,
		UomID:  5,
		Variant: &models.VariantInput{
			Name: "Standard",
			PurchaseUoms: []models.PurchaseUomInput{
				{UomID: 5, IsDefault: true},
				{UomID: 6},
			},
		},
	}
}

// expectAggregateRead wires the mock calls the view assembly makes for
// a product whose variants are supplied by the caller.
func expectAggregateRead(mockRepo *MockCatalogRepository, product *models.Product, variants []models.Variant) {
	mockRepo.On("GetProduct", mock.Anything, product.TenantID, product.ID).Return(product, nil)
	mockRepo.On("UomNames", mock.Anything, mock.Anything).Return(map[int64]string{5: "Kg", 6: "Box"}, nil)
	mockRepo.On("GetImageMapping", mock.Anything, product.ID).Return(nil, nil)
	mockRepo.On("GetCategoryMappings", mock.Anything, product.ID).Return([]models.CategoryMapping{}, nil)
	mockRepo.On("GetVariants", mock.Anything, product.TenantID, product.ID).Return(variants, nil)
	for _, v := range variants {
		mockRepo.On("GetVariantLocation", mock.Anything, v.ID).Return(nil, nil)
		mockRepo.On("GetVariantTax", mock.Anything, v.ID).Return(nil, nil)
		mockRepo.On("GetAttributeMappings", mock.Anything, v.ID).Return([]models.AttributeMapping{}, nil)
	}
}

func TestCreateProduct_SingleVariantShape(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())
	actor := testActor()
	req := singleVariantRequest()

	var createdUoms []models.UomMapping

	mockRepo.On("GetUom", mock.Anything, int64(5)).Return(&models.Uom{ID: 5, Name: "Kg"}, nil)
	mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			product := args.Get(1).(*models.Product)
			product.ID = 100
			assert.False(t, product.HasVariant)
			assert.Equal(t, "tenant-1", product.TenantID)
		}).Return(nil)
	mockRepo.On("CreateCategoryMappings", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("CreateVariant", mock.Anything, mock.AnythingOfType("*models.Variant")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Variant).ID = 200
		}).Return(nil)
	mockRepo.On("CreateUomMappings", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			createdUoms = args.Get(1).([]models.UomMapping)
		}).Return(nil)
	mockRepo.On("InvalidateProductCache", mock.Anything, "tenant-1", int64(100)).Return()

	product := &models.Product{ID: 100, Name: "Arabica Beans", Config: models.ProductConfigFinishedGood, UomID: 5, TenantID: "tenant-1"}
	variant := models.Variant{ID: 200, ProductID: 100, Name: "Standard", PurchasePrice: "0", SalesPrice: "0", ReconPrice: "0", NormalLoss: "0"}
	expectAggregateRead(mockRepo, product, []models.Variant{variant})
	mockRepo.On("GetUomMappings", mock.Anything, int64(200)).Return([]models.UomMapping{
		{ID: 1, VariantID: 200, UomID: 5, UomType: models.UomTypePurchase, IsDefault: true},
		{ID: 2, VariantID: 200, UomID: 6, UomType: models.UomTypePurchase},
	}, nil)

	view, err := service.CreateProduct(context.Background(), actor, req)

	assert.NoError(t, err)
	assert.NotNil(t, view)
	assert.Equal(t, "100", view.ID)
	assert.NotNil(t, view.Variant)
	assert.Nil(t, view.Variants)
	assert.Len(t, view.Variant.PurchaseUoms, 2)
	assert.Nil(t, view.Variant.ConsumptionUom)

	// both submitted purchase UOMs got the purchase discriminator
	assert.Len(t, createdUoms, 2)
	for _, u := range createdUoms {
		assert.Equal(t, models.UomTypePurchase, u.UomType)
	}
	mockRepo.AssertExpectations(t)
}

func TestCreateProduct_MultiVariantShape(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())
	actor := testActor()

	req := &models.ProductRequest{
		Name:   "House Blend",
		Config: models.ProductConfigFinishedGood,
		UomID:  5,
		Variants: []models.VariantInput{
			{Name: "250g"},
			{Name: "1kg"},
		},
	}

	nextVariantID := int64(200)
	mockRepo.On("GetUom", mock.Anything, int64(5)).Return(&models.Uom{ID: 5, Name: "Kg"}, nil)
	mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("CreateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			product := args.Get(1).(*models.Product)
			product.ID = 100
			assert.True(t, product.HasVariant)
		}).Return(nil)
	mockRepo.On("CreateCategoryMappings", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("CreateVariant", mock.Anything, mock.AnythingOfType("*models.Variant")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Variant).ID = nextVariantID
			nextVariantID++
		}).Return(nil)
	mockRepo.On("CreateUomMappings", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("InvalidateProductCache", mock.Anything, "tenant-1", int64(100)).Return()

	product := &models.Product{ID: 100, Name: "House Blend", Config: models.ProductConfigFinishedGood, UomID: 5, TenantID: "tenant-1", HasVariant: true}
	variants := []models.Variant{
		{ID: 200, ProductID: 100, Name: "250g"},
		{ID: 201, ProductID: 100, Name: "1kg"},
	}
	expectAggregateRead(mockRepo, product, variants)
	mockRepo.On("GetUomMappings", mock.Anything, mock.Anything).Return([]models.UomMapping{}, nil)

	view, err := service.CreateProduct(context.Background(), actor, req)

	assert.NoError(t, err)
	assert.True(t, view.HasVariant)
	assert.Nil(t, view.Variant)
	assert.Len(t, view.Variants, 2)
	mockRepo.AssertExpectations(t)
}

func TestCreateProduct_ConsumptionUomIsSingleAndDefault(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())
	actor := testActor()

	req := singleVariantRequest()
	req.Variant.ConsumptionUom = &models.ConsumptionUomInput{UomID: 7}

	var createdUoms []models.UomMapping
	mockRepo.On("GetUom", mock.Anything, int64(5)).Return(&models.Uom{ID: 5, Name: "Kg"}, nil)
	mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("CreateProduct", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Product).ID = 100 }).Return(nil)
	mockRepo.On("CreateCategoryMappings", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("CreateVariant", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Variant).ID = 200 }).Return(nil)
	mockRepo.On("CreateUomMappings", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			createdUoms = args.Get(1).([]models.UomMapping)
		}).Return(nil)
	mockRepo.On("InvalidateProductCache", mock.Anything, "tenant-1", int64(100)).Return()

	product := &models.Product{ID: 100, Name: "Arabica Beans", Config: models.ProductConfigFinishedGood, UomID: 5, TenantID: "tenant-1"}
	variant := models.Variant{ID: 200, ProductID: 100, Name: "Standard"}
	expectAggregateRead(mockRepo, product, []models.Variant{variant})
	mockRepo.On("GetUomMappings", mock.Anything, int64(200)).Return([]models.UomMapping{}, nil)

	_, err := service.CreateProduct(context.Background(), actor, req)
	assert.NoError(t, err)

	consumptionRows := 0
	for _, u := range createdUoms {
		if u.UomType == models.UomTypeConsumption {
			consumptionRows++
			assert.True(t, u.IsDefault)
			assert.Equal(t, int64(7), u.UomID)
		}
	}
	assert.Equal(t, 1, consumptionRows)
}

func TestCreateProduct_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		req   *models.ProductRequest
		field string
	}{
		{
			name:  "missing name",
			req:   &models.ProductRequest{Config: 14, UomID: 5, Variant: &models.VariantInput{Name: "Std"}},
			field: "proname",
		},
		{
			name:  "missing config",
			req:   &models.ProductRequest{Name: "P", UomID: 5, Variant: &models.VariantInput{Name: "Std"}},
			field: "proconfig",
		},
		{
			name:  "missing uom",
			req:   &models.ProductRequest{Name: "P", Config: 14, Variant: &models.VariantInput{Name: "Std"}},
			field: "prouom",
		},
		{
			name:  "no variant",
			req:   &models.ProductRequest{Name: "P", Config: 14, UomID: 5},
			field: "variant",
		},
		{
			name: "two default purchase uoms",
			req: &models.ProductRequest{
				Name: "P", Config: 14, UomID: 5,
				Variant: &models.VariantInput{
					Name: "Std",
					PurchaseUoms: []models.PurchaseUomInput{
						{UomID: 5, IsDefault: true},
						{UomID: 6, IsDefault: true},
					},
				},
			},
			field: "purchaseUoms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCatalogRepository)
			service := NewProductService(mockRepo, newTestLogger())

			_, err := service.CreateProduct(context.Background(), testActor(), tt.req)

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			mockRepo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateProduct_UnknownUomRef(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())

	mockRepo.On("GetUom", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)

	_, err := service.CreateProduct(context.Background(), testActor(), singleVariantRequest())

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "prouom", validationErr.Field)
	mockRepo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
}

func TestCreateProduct_ChildFailureAbortsTransaction(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())

	mockRepo.On("GetUom", mock.Anything, int64(5)).Return(&models.Uom{ID: 5, Name: "Kg"}, nil)
	mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("CreateProduct", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Product).ID = 100 }).Return(nil)
	mockRepo.On("CreateCategoryMappings", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("CreateVariant", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Variant).ID = 200 }).Return(nil)
	mockRepo.On("CreateUomMappings", mock.Anything, mock.Anything).Return(errors.New("constraint violation"))

	_, err := service.CreateProduct(context.Background(), testActor(), singleVariantRequest())

	assert.Error(t, err)
	// the failure propagated out of the transaction callback; nothing
	// was read back or invalidated afterwards
	mockRepo.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "InvalidateProductCache", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProduct_ReplacesChildrenAndReshapes(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())
	actor := testActor()

	// the product previously had two variants; the update submits one
	req := singleVariantRequest()

	mockRepo.On("GetUom", mock.Anything, int64(5)).Return(&models.Uom{ID: 5, Name: "Kg"}, nil)
	mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("UpdateProduct", mock.Anything, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			product := args.Get(1).(*models.Product)
			assert.Equal(t, int64(100), product.ID)
			assert.False(t, product.HasVariant)
		}).Return(nil)
	mockRepo.On("DeleteImageMapping", mock.Anything, int64(100)).Return(nil)
	mockRepo.On("DeleteCategoryMappings", mock.Anything, int64(100)).Return(nil)
	mockRepo.On("CreateCategoryMappings", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("DeleteVariantGraph", mock.Anything, int64(100)).Return(nil)
	mockRepo.On("CreateVariant", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Variant).ID = 300 }).Return(nil)
	mockRepo.On("CreateUomMappings", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("InvalidateProductCache", mock.Anything, "tenant-1", int64(100)).Return()

	product := &models.Product{ID: 100, Name: "Arabica Beans", Config: models.ProductConfigFinishedGood, UomID: 5, TenantID: "tenant-1"}
	variant := models.Variant{ID: 300, ProductID: 100, Name: "Standard"}
	expectAggregateRead(mockRepo, product, []models.Variant{variant})
	mockRepo.On("GetUomMappings", mock.Anything, int64(300)).Return([]models.UomMapping{}, nil)

	view, err := service.UpdateProduct(context.Background(), actor, 100, req)

	assert.NoError(t, err)
	assert.NotNil(t, view.Variant)
	assert.Nil(t, view.Variants)
	mockRepo.AssertCalled(t, "DeleteVariantGraph", mock.Anything, int64(100))
	mockRepo.AssertExpectations(t)
}

func TestUpdateProduct_SameInputTwiceRepeatsFullReplace(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())
	actor := testActor()
	req := singleVariantRequest()

	mockRepo.On("GetUom", mock.Anything, int64(5)).Return(&models.Uom{ID: 5, Name: "Kg"}, nil)
	mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("UpdateProduct", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("DeleteImageMapping", mock.Anything, int64(100)).Return(nil)
	mockRepo.On("DeleteCategoryMappings", mock.Anything, int64(100)).Return(nil)
	mockRepo.On("CreateCategoryMappings", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("DeleteVariantGraph", mock.Anything, int64(100)).Return(nil)
	mockRepo.On("CreateVariant", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Variant).ID = 300 }).Return(nil)
	mockRepo.On("CreateUomMappings", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("InvalidateProductCache", mock.Anything, "tenant-1", int64(100)).Return()

	product := &models.Product{ID: 100, Name: "Arabica Beans", Config: models.ProductConfigFinishedGood, UomID: 5, TenantID: "tenant-1"}
	variant := models.Variant{ID: 300, ProductID: 100, Name: "Standard"}
	expectAggregateRead(mockRepo, product, []models.Variant{variant})
	mockRepo.On("GetUomMappings", mock.Anything, int64(300)).Return([]models.UomMapping{}, nil)

	_, err := service.UpdateProduct(context.Background(), actor, 100, req)
	assert.NoError(t, err)
	_, err = service.UpdateProduct(context.Background(), actor, 100, req)
	assert.NoError(t, err)

	// every replay purges then recreates: one delete and one variant
	// insert per call, no accumulation
	deletes := 0
	creates := 0
	for _, call := range mockRepo.Calls {
		switch call.Method {
		case "DeleteVariantGraph":
			deletes++
		case "CreateVariant":
			creates++
		}
	}
	assert.Equal(t, 2, deletes)
	assert.Equal(t, 2, creates)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())

	mockRepo.On("GetUom", mock.Anything, int64(5)).Return(&models.Uom{ID: 5, Name: "Kg"}, nil)
	mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("UpdateProduct", mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	_, err := service.UpdateProduct(context.Background(), testActor(), 999, singleVariantRequest())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteProduct_ReturnsSnapshotAndCascades(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())
	actor := testActor()

	product := &models.Product{ID: 100, Name: "Arabica Beans", Config: models.ProductConfigFinishedGood, UomID: 5, TenantID: "tenant-1"}
	variant := models.Variant{ID: 200, ProductID: 100, Name: "Standard"}
	expectAggregateRead(mockRepo, product, []models.Variant{variant})
	mockRepo.On("GetUomMappings", mock.Anything, int64(200)).Return([]models.UomMapping{}, nil)

	mockRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("MarkProductDeleted", mock.Anything, "tenant-1", int64(100), "user-1").Return(nil)
	mockRepo.On("DeleteCategoryMappings", mock.Anything, int64(100)).Return(nil)
	mockRepo.On("DeleteVariantGraph", mock.Anything, int64(100)).Return(nil)
	mockRepo.On("InvalidateProductCache", mock.Anything, "tenant-1", int64(100)).Return()

	snapshot, err := service.DeleteProduct(context.Background(), actor, 100)

	assert.NoError(t, err)
	assert.Equal(t, "100", snapshot.ID)
	assert.NotNil(t, snapshot.Variant)
	mockRepo.AssertExpectations(t)
}

func TestGetProduct_NotFoundAfterDelete(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())

	mockRepo.On("GetProduct", mock.Anything, "tenant-1", int64(100)).Return(nil, repository.ErrNotFound)

	_, err := service.GetProduct(context.Background(), "tenant-1", 100)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFilterProducts_PaginationDuality(t *testing.T) {
	makeProducts := func(n int) []models.Product {
		products := make([]models.Product, n)
		for i := range products {
			products[i] = models.Product{ID: int64(i + 1), Name: "P", UomID: 5, TenantID: "tenant-1"}
		}
		return products
	}

	t.Run("paged", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		service := NewProductService(mockRepo, newTestLogger())

		page, limit := 1, 10
		filter := models.ProductFilter{Page: &page, Limit: &limit}

		mockRepo.On("ListProducts", mock.Anything, "tenant-1", filter, 0, 10).
			Return(makeProducts(10), int64(25), nil)
		mockRepo.On("UomNames", mock.Anything, mock.Anything).Return(map[int64]string{5: "Kg"}, nil)
		mockRepo.On("CountVariantsByProduct", mock.Anything, mock.Anything).Return(map[int64]int{}, nil)
		mockRepo.On("GetCategoryMappings", mock.Anything, mock.Anything).Return([]models.CategoryMapping{}, nil)

		result, err := service.FilterProducts(context.Background(), "tenant-1", filter)

		assert.NoError(t, err)
		assert.Len(t, result.Records, 10)
		assert.Equal(t, int64(25), result.Pagination.TotalItems)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.Equal(t, 10, result.Pagination.ItemsPerPage)
		assert.Equal(t, 1, result.Pagination.CurrentPage)
	})

	t.Run("unpaged returns everything as one page", func(t *testing.T) {
		mockRepo := new(MockCatalogRepository)
		service := NewProductService(mockRepo, newTestLogger())

		filter := models.ProductFilter{}
		mockRepo.On("ListProducts", mock.Anything, "tenant-1", filter, 0, 0).
			Return(makeProducts(25), int64(25), nil)
		mockRepo.On("UomNames", mock.Anything, mock.Anything).Return(map[int64]string{5: "Kg"}, nil)
		mockRepo.On("CountVariantsByProduct", mock.Anything, mock.Anything).Return(map[int64]int{}, nil)
		mockRepo.On("GetCategoryMappings", mock.Anything, mock.Anything).Return([]models.CategoryMapping{}, nil)

		result, err := service.FilterProducts(context.Background(), "tenant-1", filter)

		assert.NoError(t, err)
		assert.Len(t, result.Records, 25)
		assert.Equal(t, int64(25), result.Pagination.TotalItems)
		assert.Equal(t, 1, result.Pagination.TotalPages)
		assert.Equal(t, 25, result.Pagination.ItemsPerPage)
		assert.Equal(t, 1, result.Pagination.CurrentPage)
	})
}

func TestGetProduct_StringifiesIdentifiersAndDecimals(t *testing.T) {
	mockRepo := new(MockCatalogRepository)
	service := NewProductService(mockRepo, newTestLogger())

	product := &models.Product{ID: 9007199254740993, Name: "Big", Config: models.ProductConfigRawMaterial, UomID: 5, TenantID: "tenant-1"}
	variant := models.Variant{ID: 200, ProductID: product.ID, Name: "Std", PurchasePrice: "12.3456", SalesPrice: "99.99", ReconPrice: "0", NormalLoss: "1.5"}

	mockRepo.On("GetProduct", mock.Anything, "tenant-1", product.ID).Return(product, nil)
	mockRepo.On("UomNames", mock.Anything, mock.Anything).Return(map[int64]string{5: "Kg", 6: "Box"}, nil)
	mockRepo.On("GetImageMapping", mock.Anything, product.ID).Return(nil, nil)
	mockRepo.On("GetCategoryMappings", mock.Anything, product.ID).Return([]models.CategoryMapping{}, nil)
	mockRepo.On("GetVariants", mock.Anything, "tenant-1", product.ID).Return([]models.Variant{variant}, nil)
	mockRepo.On("GetVariantLocation", mock.Anything, int64(200)).Return(&models.VariantLocation{
		ID: 7, VariantID: 200, SafetyLevel: 2.5, ReorderLevel: 10,
		MinStockUomID: 5, ParStockUomID: 6, OpeningStock: 100.25,
	}, nil)
	mockRepo.On("GetVariantTax", mock.Anything, int64(200)).Return(nil, nil)
	mockRepo.On("GetUomMappings", mock.Anything, int64(200)).Return([]models.UomMapping{}, nil)
	mockRepo.On("GetAttributeMappings", mock.Anything, int64(200)).Return([]models.AttributeMapping{}, nil)

	view, err := service.GetProduct(context.Background(), "tenant-1", product.ID)

	assert.NoError(t, err)
	assert.Equal(t, "9007199254740993", view.ID)
	assert.Equal(t, "5", view.UomID)
	assert.Equal(t, "12.3456", view.Variant.PurchasePrice)
	assert.Equal(t, "2.5", view.Variant.Location.SafetyLevel)
	assert.Equal(t, "100.25", view.Variant.Location.OpeningStock)
	assert.Equal(t, "Kg", view.Variant.Location.MinStockUomName)
	assert.Equal(t, []int{}, view.Variant.Location.ClosingStockOn)
}
