package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	// or is soft-deleted.
	ErrNotFound = errors.New("record not found")
)

const (
	productCacheTTL = 5 * time.Minute
)

// CatalogRepositoryInterface is the persistence boundary for the
// product aggregate and the wastage ledger. WithTransaction yields a
// repository scoped to one transaction; every call made through it
// commits or rolls back together.
type CatalogRepositoryInterface interface {
	WithTransaction(ctx context.Context, fn func(repo CatalogRepositoryInterface) error) error

	// Product aggregate root
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, tenantID string, id int64) (*models.Product, error)
	MarkProductDeleted(ctx context.Context, tenantID string, id int64, deletedBy string) error
	ListProducts(ctx context.Context, tenantID string, filter models.ProductFilter, offset, limit int) ([]models.Product, int64, error)

	// Product-owned mappings
	CreateImageMapping(ctx context.Context, mapping *models.ImageMapping) error
	GetImageMapping(ctx context.Context, productID int64) (*models.ImageMapping, error)
	DeleteImageMapping(ctx context.Context, productID int64) error
	CreateCategoryMappings(ctx context.Context, mappings []models.CategoryMapping) error
	GetCategoryMappings(ctx context.Context, productID int64) ([]models.CategoryMapping, error)
	DeleteCategoryMappings(ctx context.Context, productID int64) error

	// Variant graph
	CreateVariant(ctx context.Context, variant *models.Variant) error
	GetVariants(ctx context.Context, tenantID string, productID int64) ([]models.Variant, error)
	CountVariantsByProduct(ctx context.Context, productIDs []int64) (map[int64]int, error)
	CreateVariantLocation(ctx context.Context, location *models.VariantLocation) error
	GetVariantLocation(ctx context.Context, variantID int64) (*models.VariantLocation, error)
	CreateVariantTax(ctx context.Context, tax *models.VariantTax) error
	GetVariantTax(ctx context.Context, variantID int64) (*models.VariantTax, error)
	CreateUomMappings(ctx context.Context, mappings []models.UomMapping) error
	GetUomMappings(ctx context.Context, variantID int64) ([]models.UomMapping, error)
	CreateAttributeMapping(ctx context.Context, mapping *models.AttributeMapping) error
	GetAttributeMappings(ctx context.Context, variantID int64) ([]models.AttributeMapping, error)
	CreateAttributeValues(ctx context.Context, values []models.AttributeValue) error
	GetAttributeValues(ctx context.Context, mappingID int64) ([]models.AttributeValue, error)
	DeleteVariantGraph(ctx context.Context, productID int64) error

	// Reference data
	GetUom(ctx context.Context, id int64) (*models.Uom, error)
	UomNames(ctx context.Context, ids []int64) (map[int64]string, error)
	CategoryNames(ctx context.Context, ids []int64) (map[int64]string, error)
	AttributeNames(ctx context.Context, ids []int64) (map[int64]string, error)
	AttributeValueNames(ctx context.Context, ids []int64) (map[int64]string, error)
	MasterValueNames(ctx context.Context, ids []int64) (map[int64]string, error)
	ListUoms(ctx context.Context) ([]models.Uom, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListAttributes(ctx context.Context) ([]models.Attribute, error)
	ListAttributeValueRefs(ctx context.Context) ([]models.AttributeValueRef, error)
	ListMasterValues(ctx context.Context, masterID int) ([]models.MasterValue, error)

	// Wastage ledger
	CreateWastage(ctx context.Context, wastage *models.Wastage) error
	UpdateWastage(ctx context.Context, wastage *models.Wastage) error
	GetWastage(ctx context.Context, tenantID string, id int64) (*models.Wastage, error)
	MarkWastageDeleted(ctx context.Context, tenantID string, id int64, deletedBy string) error
	ListWastages(ctx context.Context, tenantID string, filter models.WastageFilter) ([]models.Wastage, int64, error)
	CreateWastageAttachments(ctx context.Context, attachments []models.WastageAttachment) error
	GetWastageAttachments(ctx context.Context, wastageID int64) ([]models.WastageAttachment, error)
	DeleteWastageAttachments(ctx context.Context, wastageID int64) error

	InvalidateProductCache(ctx context.Context, tenantID string, id int64)
}

// CatalogRepository implements CatalogRepositoryInterface on gorm with
// an optional redis read cache for product rows.
type CatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

func NewCatalogRepository(db *gorm.DB, redisClient *redis.Client) *CatalogRepository {
	return &CatalogRepository{db: db, redis: redisClient}
}

// WithTransaction runs fn against a transaction-scoped repository.
// Any error returned by fn rolls the whole transaction back.
// Transaction-scoped repositories bypass the redis cache so in-flight
// writes are never read back stale.
func (r *CatalogRepository) WithTransaction(ctx context.Context, fn func(repo CatalogRepositoryInterface) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CatalogRepository{db: tx})
	})
}

func productCacheKey(tenantID string, id int64) string {
	return fmt.Sprintf("catalog:product:%s:%d", tenantID, id)
}

// CreateProduct inserts the product row and backfills the generated id.
func (r *CatalogRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// UpdateProduct writes the product scalar fields, including flags that
// may be toggling to their zero value.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("proid = ? AND tenant_id = ? AND is_deleted = ?", product.ID, product.TenantID, false).
		Updates(map[string]interface{}{
			"proname":    product.Name,
			"prodesc":    product.Description,
			"proconfig":  product.Config,
			"prouom":     product.UomID,
			"isfa":       product.IsFixedAsset,
			"hasvarient": product.HasVariant,
			"updated_by": product.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, tenantID string, id int64) (*models.Product, error) {
	cacheKey := productCacheKey(tenantID, id)
	if r.redis != nil {
		if cached, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(cached), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	err := r.db.WithContext(ctx).
		Where("proid = ? AND tenant_id = ? AND is_deleted = ?", id, tenantID, false).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(&product); err == nil {
			r.redis.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return &product, nil
}

func (r *CatalogRepository) MarkProductDeleted(ctx context.Context, tenantID string, id int64, deletedBy string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("proid = ? AND tenant_id = ? AND is_deleted = ?", id, tenantID, false).
		Updates(map[string]interface{}{
			"is_deleted":   true,
			"deleted_by":   deletedBy,
			"deleted_date": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context, tenantID string, filter models.ProductFilter, offset, limit int) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("tenant_id = ? AND is_deleted = ?", tenantID, false)
	query = applyProductFilters(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("proid DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func applyProductFilters(query *gorm.DB, filter models.ProductFilter) *gorm.DB {
	if filter.Name != "" {
		query = query.Where("proname ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Config != nil {
		query = query.Where("proconfig = ?", *filter.Config)
	}
	if filter.IsFixedAsset != nil {
		query = query.Where("isfa = ?", *filter.IsFixedAsset)
	}
	if filter.CategoryID != nil {
		query = query.Where("proid IN (SELECT proid FROM procategorymappings WHERE categoryid = ?)", *filter.CategoryID)
	}
	return query
}

func (r *CatalogRepository) CreateImageMapping(ctx context.Context, mapping *models.ImageMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

func (r *CatalogRepository) GetImageMapping(ctx context.Context, productID int64) (*models.ImageMapping, error) {
	var mapping models.ImageMapping
	err := r.db.WithContext(ctx).Where("proid = ?", productID).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

func (r *CatalogRepository) DeleteImageMapping(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).Where("proid = ?", productID).Delete(&models.ImageMapping{}).Error
}

func (r *CatalogRepository) CreateCategoryMappings(ctx context.Context, mappings []models.CategoryMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&mappings).Error
}

func (r *CatalogRepository) GetCategoryMappings(ctx context.Context, productID int64) ([]models.CategoryMapping, error) {
	var mappings []models.CategoryMapping
	err := r.db.WithContext(ctx).Where("proid = ?", productID).Find(&mappings).Error
	return mappings, err
}

func (r *CatalogRepository) DeleteCategoryMappings(ctx context.Context, productID int64) error {
	return r.db.WithContext(ctx).Where("proid = ?", productID).Delete(&models.CategoryMapping{}).Error
}

func (r *CatalogRepository) CreateVariant(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *CatalogRepository) GetVariants(ctx context.Context, tenantID string, productID int64) ([]models.Variant, error) {
	var variants []models.Variant
	err := r.db.WithContext(ctx).
		Where("proid = ? AND tenant_id = ? AND is_deleted = ?", productID, tenantID, false).
		Order("pvid ASC").
		Find(&variants).Error
	return variants, err
}

func (r *CatalogRepository) CountVariantsByProduct(ctx context.Context, productIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(productIDs))
	if len(productIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ProductID int64 `gorm:"column:proid"`
		Count     int   `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).Model(&models.Variant{}).
		Select("proid, COUNT(*) AS count").
		Where("proid IN ? AND is_deleted = ?", productIDs, false).
		Group("proid").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProductID] = row.Count
	}
	return counts, nil
}

func (r *CatalogRepository) CreateVariantLocation(ctx context.Context, location *models.VariantLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *CatalogRepository) GetVariantLocation(ctx context.Context, variantID int64) (*models.VariantLocation, error) {
	var location models.VariantLocation
	err := r.db.WithContext(ctx).Where("pvid = ?", variantID).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (r *CatalogRepository) CreateVariantTax(ctx context.Context, tax *models.VariantTax) error {
	return r.db.WithContext(ctx).Create(tax).Error
}

func (r *CatalogRepository) GetVariantTax(ctx context.Context, variantID int64) (*models.VariantTax, error) {
	var tax models.VariantTax
	err := r.db.WithContext(ctx).Where("pvid = ?", variantID).First(&tax).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tax, nil
}

func (r *CatalogRepository) CreateUomMappings(ctx context.Context, mappings []models.UomMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&mappings).Error
}

func (r *CatalogRepository) GetUomMappings(ctx context.Context, variantID int64) ([]models.UomMapping, error) {
	var mappings []models.UomMapping
	err := r.db.WithContext(ctx).Where("pvid = ?", variantID).Order("id ASC").Find(&mappings).Error
	return mappings, err
}

func (r *CatalogRepository) CreateAttributeMapping(ctx context.Context, mapping *models.AttributeMapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

func (r *CatalogRepository) GetAttributeMappings(ctx context.Context, variantID int64) ([]models.AttributeMapping, error) {
	var mappings []models.AttributeMapping
	err := r.db.WithContext(ctx).Where("pvid = ?", variantID).Order("display_order ASC, pvamid ASC").Find(&mappings).Error
	return mappings, err
}

func (r *CatalogRepository) CreateAttributeValues(ctx context.Context, values []models.AttributeValue) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&values).Error
}

func (r *CatalogRepository) GetAttributeValues(ctx context.Context, mappingID int64) ([]models.AttributeValue, error) {
	var values []models.AttributeValue
	err := r.db.WithContext(ctx).Where("pvamid = ?", mappingID).Order("display_order ASC, pvamvid ASC").Find(&values).Error
	return values, err
}

// DeleteVariantGraph physically removes every variant-scoped row for a
// product, leaf tables first so no orphan survives: locations, taxes,
// UOM mappings, attribute values, attribute mappings, then the
// variants themselves. Used by the replace-all update and the delete
// cascade.
func (r *CatalogRepository) DeleteVariantGraph(ctx context.Context, productID int64) error {
	db := r.db.WithContext(ctx)

	variantIDs := func() *gorm.DB {
		return db.Session(&gorm.Session{NewDB: true}).Model(&models.Variant{}).
			Select("pvid").Where("proid = ?", productID)
	}

	if err := db.Where("pvid IN (?)", variantIDs()).Delete(&models.VariantLocation{}).Error; err != nil {
		return err
	}
	if err := db.Where("pvid IN (?)", variantIDs()).Delete(&models.VariantTax{}).Error; err != nil {
		return err
	}
	if err := db.Where("pvid IN (?)", variantIDs()).Delete(&models.UomMapping{}).Error; err != nil {
		return err
	}
	mappingIDs := db.Session(&gorm.Session{NewDB: true}).Model(&models.AttributeMapping{}).
		Select("pvamid").Where("pvid IN (?)", variantIDs())
	if err := db.Where("pvamid IN (?)", mappingIDs).Delete(&models.AttributeValue{}).Error; err != nil {
		return err
	}
	if err := db.Where("pvid IN (?)", variantIDs()).Delete(&models.AttributeMapping{}).Error; err != nil {
		return err
	}
	return db.Where("proid = ?", productID).Delete(&models.Variant{}).Error
}

func (r *CatalogRepository) GetUom(ctx context.Context, id int64) (*models.Uom, error) {
	var uom models.Uom
	err := r.db.WithContext(ctx).Where("uomid = ?", id).First(&uom).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &uom, nil
}

func (r *CatalogRepository) UomNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	var uoms []models.Uom
	if err := r.findByIDs(ctx, ids, "uomid", &uoms); err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(uoms))
	for _, u := range uoms {
		names[u.ID] = u.Name
	}
	return names, nil
}

func (r *CatalogRepository) CategoryNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	var categories []models.Category
	if err := r.findByIDs(ctx, ids, "categoryid", &categories); err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (r *CatalogRepository) AttributeNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	var attributes []models.Attribute
	if err := r.findByIDs(ctx, ids, "attributeid", &attributes); err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(attributes))
	for _, a := range attributes {
		names[a.ID] = a.Name
	}
	return names, nil
}

func (r *CatalogRepository) AttributeValueNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	var refs []models.AttributeValueRef
	if err := r.findByIDs(ctx, ids, "avid", &refs); err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(refs))
	for _, v := range refs {
		names[v.ID] = v.Name
	}
	return names, nil
}

func (r *CatalogRepository) MasterValueNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	var values []models.MasterValue
	if err := r.findByIDs(ctx, ids, "mvid", &values); err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(values))
	for _, v := range values {
		names[v.ID] = v.Name
	}
	return names, nil
}

func (r *CatalogRepository) findByIDs(ctx context.Context, ids []int64, column string, dest interface{}) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where(column+" IN ?", ids).Find(dest).Error
}

func (r *CatalogRepository) ListUoms(ctx context.Context) ([]models.Uom, error) {
	var uoms []models.Uom
	err := r.db.WithContext(ctx).Order("uomname ASC").Find(&uoms).Error
	return uoms, err
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("categoryname ASC").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) ListAttributes(ctx context.Context) ([]models.Attribute, error) {
	var attributes []models.Attribute
	err := r.db.WithContext(ctx).Order("attributename ASC").Find(&attributes).Error
	return attributes, err
}

func (r *CatalogRepository) ListAttributeValueRefs(ctx context.Context) ([]models.AttributeValueRef, error) {
	var refs []models.AttributeValueRef
	err := r.db.WithContext(ctx).Order("avid ASC").Find(&refs).Error
	return refs, err
}

func (r *CatalogRepository) ListMasterValues(ctx context.Context, masterID int) ([]models.MasterValue, error) {
	var values []models.MasterValue
	err := r.db.WithContext(ctx).Where("masterid = ?", masterID).Order("mvid ASC").Find(&values).Error
	return values, err
}

func (r *CatalogRepository) CreateWastage(ctx context.Context, wastage *models.Wastage) error {
	return r.db.WithContext(ctx).Create(wastage).Error
}

func (r *CatalogRepository) UpdateWastage(ctx context.Context, wastage *models.Wastage) error {
	result := r.db.WithContext(ctx).Model(&models.Wastage{}).
		Where("wastageid = ? AND tenant_id = ? AND is_deleted = ?", wastage.ID, wastage.TenantID, false).
		Updates(map[string]interface{}{
			"wastageno":    wastage.WastageNo,
			"seriesid":     wastage.SeriesID,
			"proid":        wastage.ProductID,
			"pvid":         wastage.VariantID,
			"proisfa":      wastage.IsFixedAsset,
			"wastageqty":   wastage.Quantity,
			"wastagevalue": wastage.Value,
			"wastagedate":  wastage.WastageDate,
			"dom":          wastage.DOM,
			"doe":          wastage.DOE,
			"bcode":        wastage.BatchCode,
			"fcode":        wastage.FactoryCode,
			"remarks":      wastage.Remarks,
			"uomid":        wastage.UomID,
			"uoid":         wastage.OrgUnitID,
			"uaid":         wastage.OrgAddressID,
			"wastagetype":  wastage.WastageTypeID,
			"updated_by":   wastage.UpdatedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) GetWastage(ctx context.Context, tenantID string, id int64) (*models.Wastage, error) {
	var wastage models.Wastage
	err := r.db.WithContext(ctx).
		Where("wastageid = ? AND tenant_id = ? AND is_deleted = ?", id, tenantID, false).
		First(&wastage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wastage, nil
}

func (r *CatalogRepository) MarkWastageDeleted(ctx context.Context, tenantID string, id int64, deletedBy string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&models.Wastage{}).
		Where("wastageid = ? AND tenant_id = ? AND is_deleted = ?", id, tenantID, false).
		Updates(map[string]interface{}{
			"is_deleted":   true,
			"deleted_by":   deletedBy,
			"deleted_date": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) ListWastages(ctx context.Context, tenantID string, filter models.WastageFilter) ([]models.Wastage, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Wastage{}).
		Where("tenant_id = ? AND is_deleted = ?", tenantID, false)
	if filter.IsFixedAsset != nil {
		query = query.Where("proisfa = ?", *filter.IsFixedAsset)
	}
	if filter.ProductID != nil {
		query = query.Where("proid = ?", *filter.ProductID)
	}
	if filter.VariantID != nil {
		query = query.Where("pvid = ?", *filter.VariantID)
	}
	if filter.WastageType != nil {
		query = query.Where("wastagetype = ?", *filter.WastageType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var wastages []models.Wastage
	err := query.Order("wastageid DESC").Offset(offset).Limit(filter.Limit).Find(&wastages).Error
	if err != nil {
		return nil, 0, err
	}
	return wastages, total, nil
}

func (r *CatalogRepository) CreateWastageAttachments(ctx context.Context, attachments []models.WastageAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&attachments).Error
}

func (r *CatalogRepository) GetWastageAttachments(ctx context.Context, wastageID int64) ([]models.WastageAttachment, error) {
	var attachments []models.WastageAttachment
	err := r.db.WithContext(ctx).Where("wastageid = ?", wastageID).Order("id ASC").Find(&attachments).Error
	return attachments, err
}

func (r *CatalogRepository) DeleteWastageAttachments(ctx context.Context, wastageID int64) error {
	return r.db.WithContext(ctx).Where("wastageid = ?", wastageID).Delete(&models.WastageAttachment{}).Error
}

// InvalidateProductCache drops the cached product row after a write.
func (r *CatalogRepository) InvalidateProductCache(ctx context.Context, tenantID string, id int64) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, productCacheKey(tenantID, id))
}
