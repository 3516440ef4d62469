package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// ProductService is the transactional root for the product aggregate.
// Creates, updates and soft-deletes run the whole sub-entity graph
// inside one repository transaction; updates replace all variant-scoped
// children rather than diffing them.
type ProductService struct {
	repo   repository.CatalogRepositoryInterface
	logger *logrus.Entry
}

func NewProductService(repo repository.CatalogRepositoryInterface, logger *logrus.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger.WithField("component", "product-service"),
	}
}

// CreateProduct creates the product row, its category/image mappings
// and every submitted variant with its sub-entities in one transaction.
// Any sub-step failure rolls back the whole write.
func (s *ProductService) CreateProduct(ctx context.Context, actor models.Actor, req *models.ProductRequest) (*models.ProductView, error) {
	inputs := req.VariantInputs()
	if err := s.validateRequest(ctx, req, inputs); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Config:       req.Config,
		UomID:        req.UomID,
		TenantID:     actor.TenantID,
		IsFixedAsset: req.IsFixedAsset || req.Config == models.ProductConfigFixedAsset,
		HasVariant:   len(inputs) >= 2,
		CreatedBy:    actor.UserID,
		UpdatedBy:    actor.UserID,
	}

	err := s.repo.WithTransaction(ctx, func(txRepo repository.CatalogRepositoryInterface) error {
		if err := txRepo.CreateProduct(ctx, product); err != nil {
			return err
		}
		if req.ImageID != nil {
			if err := txRepo.CreateImageMapping(ctx, &models.ImageMapping{ProductID: product.ID, ImageID: *req.ImageID}); err != nil {
				return err
			}
		}
		if err := txRepo.CreateCategoryMappings(ctx, categoryMappings(product.ID, req.CategoryIDs)); err != nil {
			return err
		}
		for i := range inputs {
			if err := s.createVariantGraph(ctx, txRepo, actor, product.ID, &inputs[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.repo.InvalidateProductCache(ctx, actor.TenantID, product.ID)
	s.logger.WithFields(logrus.Fields{
		"productId": product.ID,
		"tenantId":  actor.TenantID,
		"variants":  len(inputs),
	}).Info("Product created")

	return s.GetProduct(ctx, actor.TenantID, product.ID)
}

// UpdateProduct replaces the aggregate: product scalars are updated,
// the has-variant flag is recomputed from the submitted count, and all
// variant-scoped children are deleted and recreated from the current
// submission. The re-read happens inside the same transaction so the
// returned view is the committed state.
func (s *ProductService) UpdateProduct(ctx context.Context, actor models.Actor, id int64, req *models.ProductRequest) (*models.ProductView, error) {
	inputs := req.VariantInputs()
	if err := s.validateRequest(ctx, req, inputs); err != nil {
		return nil, err
	}

	var view *models.ProductView
	err := s.repo.WithTransaction(ctx, func(txRepo repository.CatalogRepositoryInterface) error {
		product := &models.Product{
			ID:           id,
			Name:         req.Name,
			Description:  req.Description,
			Config:       req.Config,
			UomID:        req.UomID,
			TenantID:     actor.TenantID,
			IsFixedAsset: req.IsFixedAsset || req.Config == models.ProductConfigFixedAsset,
			HasVariant:   len(inputs) >= 2,
			UpdatedBy:    actor.UserID,
		}
		if err := txRepo.UpdateProduct(ctx, product); err != nil {
			return err
		}

		if err := txRepo.DeleteImageMapping(ctx, id); err != nil {
			return err
		}
		if req.ImageID != nil {
			if err := txRepo.CreateImageMapping(ctx, &models.ImageMapping{ProductID: id, ImageID: *req.ImageID}); err != nil {
				return err
			}
		}

		if err := txRepo.DeleteCategoryMappings(ctx, id); err != nil {
			return err
		}
		if err := txRepo.CreateCategoryMappings(ctx, categoryMappings(id, req.CategoryIDs)); err != nil {
			return err
		}

		if err := txRepo.DeleteVariantGraph(ctx, id); err != nil {
			return err
		}
		for i := range inputs {
			if err := s.createVariantGraph(ctx, txRepo, actor, id, &inputs[i]); err != nil {
				return err
			}
		}

		rebuilt, err := s.buildProductView(ctx, txRepo, actor.TenantID, id)
		if err != nil {
			return err
		}
		view = rebuilt
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.repo.InvalidateProductCache(ctx, actor.TenantID, id)
	s.logger.WithFields(logrus.Fields{
		"productId": id,
		"tenantId":  actor.TenantID,
		"variants":  len(inputs),
	}).Info("Product updated")
	return view, nil
}

// DeleteProduct re-reads the aggregate, then marks the product deleted
// and physically removes its mappings and variant graph. The pre-delete
// snapshot is returned.
func (s *ProductService) DeleteProduct(ctx context.Context, actor models.Actor, id int64) (*models.ProductView, error) {
	snapshot, err := s.GetProduct(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repository.CatalogRepositoryInterface) error {
		if err := txRepo.MarkProductDeleted(ctx, actor.TenantID, id, actor.UserID); err != nil {
			return err
		}
		if err := txRepo.DeleteCategoryMappings(ctx, id); err != nil {
			return err
		}
		return txRepo.DeleteVariantGraph(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}

	s.repo.InvalidateProductCache(ctx, actor.TenantID, id)
	s.logger.WithFields(logrus.Fields{
		"productId": id,
		"tenantId":  actor.TenantID,
	}).Info("Product deleted")
	return snapshot, nil
}

// GetProduct loads the full aggregate and reshapes it into the
// canonical view.
func (s *ProductService) GetProduct(ctx context.Context, tenantID string, id int64) (*models.ProductView, error) {
	return s.buildProductView(ctx, s.repo, tenantID, id)
}

// FilterProducts lists products by criteria. With page and limit both
// absent it returns every matching row and collapses the pagination
// metadata to a single page spanning the full result.
func (s *ProductService) FilterProducts(ctx context.Context, tenantID string, filter models.ProductFilter) (*models.ProductListResponse, error) {
	unpaged := filter.Page == nil && filter.Limit == nil

	var products []models.Product
	var total int64
	var err error
	var pagination models.PaginationInfo

	if unpaged {
		products, total, err = s.repo.ListProducts(ctx, tenantID, filter, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		pagination = models.PaginationInfo{
			TotalItems:   total,
			CurrentPage:  1,
			TotalPages:   1,
			ItemsPerPage: int(total),
		}
	} else {
		page := 1
		if filter.Page != nil && *filter.Page > 0 {
			page = *filter.Page
		}
		limit := 10
		if filter.Limit != nil && *filter.Limit > 0 {
			limit = *filter.Limit
		}
		products, total, err = s.repo.ListProducts(ctx, tenantID, filter, (page-1)*limit, limit)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		pagination = models.PaginationInfo{
			TotalItems:   total,
			CurrentPage:  page,
			TotalPages:   int((total + int64(limit) - 1) / int64(limit)),
			ItemsPerPage: limit,
		}
	}

	records, err := s.buildListItems(ctx, products)
	if err != nil {
		return nil, err
	}
	return &models.ProductListResponse{Records: records, Pagination: pagination}, nil
}

// GetProductModal bundles the reference data that drives the product
// form: UOMs, categories, attributes with their values, and the
// product-type and closing-stock-type master lists.
func (s *ProductService) GetProductModal(ctx context.Context) (*models.ProductModalView, error) {
	uoms, err := s.repo.ListUoms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list uoms: %w", err)
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	attributes, err := s.repo.ListAttributes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	valueRefs, err := s.repo.ListAttributeValueRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attribute values: %w", err)
	}
	productTypes, err := s.repo.ListMasterValues(ctx, models.MasterListProductTypes)
	if err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}
	closingTypes, err := s.repo.ListMasterValues(ctx, models.MasterListClosingStockType)
	if err != nil {
		return nil, fmt.Errorf("list closing stock types: %w", err)
	}

	valuesByAttribute := make(map[int64][]models.AttributeValueRef)
	for _, ref := range valueRefs {
		valuesByAttribute[ref.AttributeID] = append(valuesByAttribute[ref.AttributeID], ref)
	}
	entries := make([]models.AttributeModalEntry, 0, len(attributes))
	for _, attr := range attributes {
		values := valuesByAttribute[attr.ID]
		if values == nil {
			values = []models.AttributeValueRef{}
		}
		entries = append(entries, models.AttributeModalEntry{Attribute: attr, Values: values})
	}

	return &models.ProductModalView{
		Uoms:             uoms,
		Categories:       categories,
		Attributes:       entries,
		ProductTypes:     productTypes,
		ClosingStockType: closingTypes,
	}, nil
}

func (s *ProductService) validateRequest(ctx context.Context, req *models.ProductRequest, inputs []models.VariantInput) error {
	if req.Name == "" {
		return &ValidationError{Field: "proname", Message: "product name is required"}
	}
	if req.Config == 0 {
		return &ValidationError{Field: "proconfig", Message: "product configuration is required"}
	}
	if req.UomID == 0 {
		return &ValidationError{Field: "prouom", Message: "unit of measure is required"}
	}
	if len(inputs) == 0 {
		return &ValidationError{Field: "variant", Message: "at least one variant is required"}
	}
	for i := range inputs {
		defaults := 0
		for _, p := range inputs[i].PurchaseUoms {
			if p.IsDefault {
				defaults++
			}
		}
		if defaults > 1 {
			return &ValidationError{Field: "purchaseUoms", Message: "at most one purchase UOM may be flagged default"}
		}
	}
	if _, err := s.repo.GetUom(ctx, req.UomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &ValidationError{Field: "prouom", Message: "unit of measure not found"}
		}
		return fmt.Errorf("resolve uom: %w", err)
	}
	return nil
}

// createVariantGraph writes one variant and its sub-entities. The UOM
// type discriminator is assigned here from the populated input section:
// purchaseUoms rows become purchase mappings, consumptionUom becomes
// the single consumption mapping and is always the default.
func (s *ProductService) createVariantGraph(ctx context.Context, repo repository.CatalogRepositoryInterface, actor models.Actor, productID int64, in *models.VariantInput) error {
	variant := &models.Variant{
		ProductID:     productID,
		Name:          in.Name,
		Description:   in.Description,
		Barcode:       in.Barcode,
		PurchasePrice: defaultDecimal(in.PurchasePrice),
		SalesPrice:    defaultDecimal(in.SalesPrice),
		ReconPrice:    defaultDecimal(in.ReconPrice),
		NormalLoss:    defaultDecimal(in.NormalLoss),
		TenantID:      actor.TenantID,
		CreatedBy:     actor.UserID,
		UpdatedBy:     actor.UserID,
	}
	if err := repo.CreateVariant(ctx, variant); err != nil {
		return err
	}

	if in.Location != nil {
		schedule := in.Location.ClosingStockOn
		if schedule == nil {
			schedule = []int{}
		}
		scheduleJSON, err := json.Marshal(schedule)
		if err != nil {
			return err
		}
		location := &models.VariantLocation{
			VariantID:      variant.ID,
			SafetyLevel:    in.Location.SafetyLevel,
			ReorderLevel:   in.Location.ReorderLevel,
			MinStockUomID:  in.Location.MinStockUomID,
			ParStockUomID:  in.Location.ParStockUomID,
			OpeningStock:   in.Location.OpeningStock,
			ClosingStock:   in.Location.ClosingStock,
			ClosingStockOn: datatypes.JSON(scheduleJSON),
			AutoRenew:      in.Location.AutoRenew,
		}
		if err := repo.CreateVariantLocation(ctx, location); err != nil {
			return err
		}
	}

	if in.Tax != nil {
		tax := &models.VariantTax{
			VariantID: variant.ID,
			TaxRate:   defaultDecimal(in.Tax.TaxRate),
			HsnCode:   in.Tax.HsnCode,
		}
		if err := repo.CreateVariantTax(ctx, tax); err != nil {
			return err
		}
	}

	var uomRows []models.UomMapping
	for _, p := range in.PurchaseUoms {
		uomRows = append(uomRows, models.UomMapping{
			VariantID: variant.ID,
			UomID:     p.UomID,
			UomType:   models.UomTypePurchase,
			IsDefault: p.IsDefault,
		})
	}
	if in.ConsumptionUom != nil {
		uomRows = append(uomRows, models.UomMapping{
			VariantID: variant.ID,
			UomID:     in.ConsumptionUom.UomID,
			UomType:   models.UomTypeConsumption,
			IsDefault: true,
		})
	}
	if err := repo.CreateUomMappings(ctx, uomRows); err != nil {
		return err
	}

	for _, am := range in.AttributeMappings {
		mapping := &models.AttributeMapping{
			VariantID:    variant.ID,
			AttributeID:  am.AttributeID,
			Prompt:       am.Prompt,
			IsRequired:   am.IsRequired,
			ControlType:  am.ControlType,
			DisplayOrder: am.DisplayOrder,
		}
		if err := repo.CreateAttributeMapping(ctx, mapping); err != nil {
			return err
		}
		values := make([]models.AttributeValue, 0, len(am.Values))
		for _, v := range am.Values {
			values = append(values, models.AttributeValue{
				MappingID:        mapping.ID,
				AttributeValueID: v.AttributeValueID,
				Color:            v.Color,
				ImageID:          v.ImageID,
				DisplayOrder:     v.DisplayOrder,
			})
		}
		if err := repo.CreateAttributeValues(ctx, values); err != nil {
			return err
		}
	}
	return nil
}

// buildProductView assembles the canonical aggregate view: reference
// names joined in, identifiers and decimals string-ified, and the
// single-vs-array variant shape applied from the live variant count.
func (s *ProductService) buildProductView(ctx context.Context, repo repository.CatalogRepositoryInterface, tenantID string, id int64) (*models.ProductView, error) {
	product, err := repo.GetProduct(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	view := &models.ProductView{
		ID:           formatID(product.ID),
		Name:         product.Name,
		Description:  product.Description,
		Config:       product.Config,
		UomID:        formatID(product.UomID),
		IsFixedAsset: product.IsFixedAsset,
		HasVariant:   product.HasVariant,
		Categories:   []models.CategoryView{},
	}

	uomNames, err := repo.UomNames(ctx, []int64{product.UomID})
	if err != nil {
		return nil, err
	}
	view.UomName = uomNames[product.UomID]

	image, err := repo.GetImageMapping(ctx, id)
	if err != nil {
		return nil, err
	}
	if image != nil {
		imageID := formatID(image.ImageID)
		view.ImageID = &imageID
	}

	mappings, err := repo.GetCategoryMappings(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(mappings) > 0 {
		ids := make([]int64, 0, len(mappings))
		for _, m := range mappings {
			ids = append(ids, m.CategoryID)
		}
		names, err := repo.CategoryNames(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, m := range mappings {
			view.Categories = append(view.Categories, models.CategoryView{
				ID:   formatID(m.CategoryID),
				Name: names[m.CategoryID],
			})
		}
	}

	variants, err := repo.GetVariants(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	variantViews := make([]models.VariantView, 0, len(variants))
	for i := range variants {
		vv, err := s.buildVariantView(ctx, repo, &variants[i])
		if err != nil {
			return nil, err
		}
		variantViews = append(variantViews, *vv)
	}

	switch len(variantViews) {
	case 0:
		s.logger.WithFields(logrus.Fields{
			"productId": id,
			"tenantId":  tenantID,
		}).Warn("Product has no live variants")
	case 1:
		view.Variant = &variantViews[0]
	default:
		view.Variants = variantViews
	}
	return view, nil
}

func (s *ProductService) buildVariantView(ctx context.Context, repo repository.CatalogRepositoryInterface, variant *models.Variant) (*models.VariantView, error) {
	view := &models.VariantView{
		ID:                formatID(variant.ID),
		ProductID:         formatID(variant.ProductID),
		Name:              variant.Name,
		Description:       variant.Description,
		Barcode:           variant.Barcode,
		PurchasePrice:     variant.PurchasePrice,
		SalesPrice:        variant.SalesPrice,
		ReconPrice:        variant.ReconPrice,
		NormalLoss:        variant.NormalLoss,
		PurchaseUoms:      []models.UomMappingView{},
		AttributeMappings: []models.AttributeMappingView{},
	}

	location, err := repo.GetVariantLocation(ctx, variant.ID)
	if err != nil {
		return nil, err
	}
	if location != nil {
		names, err := repo.UomNames(ctx, []int64{location.MinStockUomID, location.ParStockUomID})
		if err != nil {
			return nil, err
		}
		view.Location = &models.LocationView{
			ID:              formatID(location.ID),
			SafetyLevel:     formatDecimal(location.SafetyLevel),
			ReorderLevel:    formatDecimal(location.ReorderLevel),
			MinStockUomID:   formatID(location.MinStockUomID),
			MinStockUomName: names[location.MinStockUomID],
			ParStockUomID:   formatID(location.ParStockUomID),
			ParStockUomName: names[location.ParStockUomID],
			OpeningStock:    formatDecimal(location.OpeningStock),
			ClosingStock:    formatDecimal(location.ClosingStock),
			ClosingStockOn:  closingStockSchedule(location.ClosingStockOn),
			AutoRenew:       location.AutoRenew,
		}
	}

	tax, err := repo.GetVariantTax(ctx, variant.ID)
	if err != nil {
		return nil, err
	}
	if tax != nil {
		view.Tax = &models.TaxView{
			ID:      formatID(tax.ID),
			TaxRate: tax.TaxRate,
			HsnCode: tax.HsnCode,
		}
	}

	uomMappings, err := repo.GetUomMappings(ctx, variant.ID)
	if err != nil {
		return nil, err
	}
	if len(uomMappings) > 0 {
		ids := make([]int64, 0, len(uomMappings))
		for _, m := range uomMappings {
			ids = append(ids, m.UomID)
		}
		names, err := repo.UomNames(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, m := range uomMappings {
			mv := models.UomMappingView{
				ID:        formatID(m.ID),
				UomID:     formatID(m.UomID),
				UomName:   names[m.UomID],
				IsDefault: m.IsDefault,
			}
			if m.UomType == models.UomTypeConsumption {
				consumption := mv
				view.ConsumptionUom = &consumption
			} else {
				view.PurchaseUoms = append(view.PurchaseUoms, mv)
			}
		}
	}

	attrMappings, err := repo.GetAttributeMappings(ctx, variant.ID)
	if err != nil {
		return nil, err
	}
	if len(attrMappings) > 0 {
		attrIDs := make([]int64, 0, len(attrMappings))
		for _, m := range attrMappings {
			attrIDs = append(attrIDs, m.AttributeID)
		}
		attrNames, err := repo.AttributeNames(ctx, attrIDs)
		if err != nil {
			return nil, err
		}
		for _, m := range attrMappings {
			values, err := repo.GetAttributeValues(ctx, m.ID)
			if err != nil {
				return nil, err
			}
			valueViews := make([]models.AttributeValueView, 0, len(values))
			if len(values) > 0 {
				valueIDs := make([]int64, 0, len(values))
				for _, v := range values {
					valueIDs = append(valueIDs, v.AttributeValueID)
				}
				valueNames, err := repo.AttributeValueNames(ctx, valueIDs)
				if err != nil {
					return nil, err
				}
				for _, v := range values {
					vv := models.AttributeValueView{
						ID:                 formatID(v.ID),
						AttributeValueID:   formatID(v.AttributeValueID),
						AttributeValueName: valueNames[v.AttributeValueID],
						Color:              v.Color,
						DisplayOrder:       v.DisplayOrder,
					}
					if v.ImageID != nil {
						imageID := formatID(*v.ImageID)
						vv.ImageID = &imageID
					}
					valueViews = append(valueViews, vv)
				}
			}
			view.AttributeMappings = append(view.AttributeMappings, models.AttributeMappingView{
				ID:            formatID(m.ID),
				AttributeID:   formatID(m.AttributeID),
				AttributeName: attrNames[m.AttributeID],
				Prompt:        m.Prompt,
				IsRequired:    m.IsRequired,
				ControlType:   m.ControlType,
				DisplayOrder:  m.DisplayOrder,
				Values:        valueViews,
			})
		}
	}
	return view, nil
}

func (s *ProductService) buildListItems(ctx context.Context, products []models.Product) ([]models.ProductListItem, error) {
	items := make([]models.ProductListItem, 0, len(products))
	if len(products) == 0 {
		return items, nil
	}

	productIDs := make([]int64, 0, len(products))
	uomIDs := make([]int64, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
		uomIDs = append(uomIDs, p.UomID)
	}
	uomNames, err := s.repo.UomNames(ctx, uomIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountVariantsByProduct(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		categories := []models.CategoryView{}
		mappings, err := s.repo.GetCategoryMappings(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if len(mappings) > 0 {
			ids := make([]int64, 0, len(mappings))
			for _, m := range mappings {
				ids = append(ids, m.CategoryID)
			}
			names, err := s.repo.CategoryNames(ctx, ids)
			if err != nil {
				return nil, err
			}
			for _, m := range mappings {
				categories = append(categories, models.CategoryView{
					ID:   formatID(m.CategoryID),
					Name: names[m.CategoryID],
				})
			}
		}
		items = append(items, models.ProductListItem{
			ID:           formatID(p.ID),
			Name:         p.Name,
			Description:  p.Description,
			Config:       p.Config,
			UomID:        formatID(p.UomID),
			UomName:      uomNames[p.UomID],
			IsFixedAsset: p.IsFixedAsset,
			HasVariant:   p.HasVariant,
			VariantCount: counts[p.ID],
			Categories:   categories,
		})
	}
	return items, nil
}

func categoryMappings(productID int64, categoryIDs []int64) []models.CategoryMapping {
	mappings := make([]models.CategoryMapping, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		mappings = append(mappings, models.CategoryMapping{ProductID: productID, CategoryID: categoryID})
	}
	return mappings
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func defaultDecimal(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func closingStockSchedule(data datatypes.JSON) []int {
	if len(data) == 0 {
		return []int{}
	}
	var days []int
	if err := json.Unmarshal(data, &days); err != nil {
		return []int{}
	}
	return days
}
