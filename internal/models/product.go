package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product configuration categories
const (
	ProductConfigRawMaterial  = 12
	ProductConfigSemiFinished = 13
	ProductConfigFinishedGood = 14
	ProductConfigFixedAsset   = 15
)

// UOM mapping type discriminators. Assigned by the variant writer based
// on which input section was populated, never chosen by callers.
const (
	UomTypePurchase    = 21
	UomTypeConsumption = 22
)

// Master value list identifiers for the product modal payload
const (
	MasterListProductTypes     = 3
	MasterListClosingStockType = 6
)

// Product is the aggregate root. It owns variants, category mappings
// and at most one image mapping.
type Product struct {
	ID           int64      `json:"proid" gorm:"column:proid;primaryKey;autoIncrement"`
	Name         string     `json:"proname" gorm:"column:proname;not null;index"`
	Description  string     `json:"prodesc" gorm:"column:prodesc"`
	Config       int        `json:"proconfig" gorm:"column:proconfig;not null;index"`
	UomID        int64      `json:"prouom" gorm:"column:prouom;not null"`
	TenantID     string     `json:"tenant_id" gorm:"column:tenant_id;not null;index"`
	IsFixedAsset bool       `json:"isfa" gorm:"column:isfa;default:false"`
	HasVariant   bool       `json:"hasvarient" gorm:"column:hasvarient;default:false"`
	IsDeleted    bool       `json:"is_deleted" gorm:"column:is_deleted;default:false;index"`
	DeletedBy    *string    `json:"deleted_by,omitempty" gorm:"column:deleted_by"`
	DeletedDate  *time.Time `json:"deleted_date,omitempty" gorm:"column:deleted_date"`
	CreatedBy    string     `json:"created_by" gorm:"column:created_by"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedBy    string     `json:"updated_by" gorm:"column:updated_by"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

// Variant is one sellable configuration (SKU) of a product. Prices are
// carried as strings end to end and stored as numeric columns.
type Variant struct {
	ID            int64      `json:"pvid" gorm:"column:pvid;primaryKey;autoIncrement"`
	ProductID     int64      `json:"proid" gorm:"column:proid;not null;index"`
	Name          string     `json:"pvname" gorm:"column:pvname;not null"`
	Description   string     `json:"pvdesc" gorm:"column:pvdesc"`
	Barcode       string     `json:"pvbarcode" gorm:"column:pvbarcode"`
	PurchasePrice string     `json:"pvpurchaseprice" gorm:"column:pvpurchaseprice;type:decimal(18,4);default:0"`
	SalesPrice    string     `json:"pvsalesprice" gorm:"column:pvsalesprice;type:decimal(18,4);default:0"`
	ReconPrice    string     `json:"pvreconprice" gorm:"column:pvreconprice;type:decimal(18,4);default:0"`
	NormalLoss    string     `json:"normalloss" gorm:"column:normalloss;type:decimal(9,4);default:0"`
	TenantID      string     `json:"tenant_id" gorm:"column:tenant_id;not null;index"`
	IsDeleted     bool       `json:"is_deleted" gorm:"column:is_deleted;default:false;index"`
	DeletedBy     *string    `json:"deleted_by,omitempty" gorm:"column:deleted_by"`
	DeletedDate   *time.Time `json:"deleted_date,omitempty" gorm:"column:deleted_date"`
	CreatedBy     string     `json:"created_by" gorm:"column:created_by"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedBy     string     `json:"updated_by" gorm:"column:updated_by"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Variant) TableName() string {
	return "provariants"
}

// VariantLocation carries the stock thresholds for one variant.
// ClosingStockOn holds the day-of-month recompute triggers as a JSON
// array of integers.
type VariantLocation struct {
	ID             int64          `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	VariantID      int64          `json:"pvid" gorm:"column:pvid;not null;index"`
	SafetyLevel    float64        `json:"safety_level" gorm:"column:safety_level;default:0"`
	ReorderLevel   float64        `json:"reorder_level" gorm:"column:reorder_level;default:0"`
	MinStockUomID  int64          `json:"min_stock_uom" gorm:"column:min_stock_uom"`
	ParStockUomID  int64          `json:"par_stock_uom" gorm:"column:par_stock_uom"`
	OpeningStock   float64        `json:"opening_stock" gorm:"column:opening_stock;default:0"`
	ClosingStock   float64        `json:"closing_stock" gorm:"column:closing_stock;default:0"`
	ClosingStockOn datatypes.JSON `json:"closing_stock_on" gorm:"column:closing_stock_on;type:jsonb"`
	AutoRenew      bool           `json:"auto_renew" gorm:"column:auto_renew;default:false"`
	CreatedAt      time.Time      `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (VariantLocation) TableName() string {
	return "pvlocations"
}

// VariantTax holds the tax rate and HSN classification for one variant.
type VariantTax struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	VariantID int64     `json:"pvid" gorm:"column:pvid;not null;index"`
	TaxRate   string    `json:"tax_rate" gorm:"column:tax_rate;type:decimal(9,4);default:0"`
	HsnCode   string    `json:"hsn_code" gorm:"column:hsn_code"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (VariantTax) TableName() string {
	return "pvtaxes"
}

// UomMapping links a variant to a unit of measure, tagged purchase or
// consumption via UomType.
type UomMapping struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	VariantID int64     `json:"pvid" gorm:"column:pvid;not null;index"`
	UomID     int64     `json:"uomid" gorm:"column:uomid;not null"`
	UomType   int       `json:"uom_type" gorm:"column:uom_type;not null"`
	IsDefault bool      `json:"is_default" gorm:"column:is_default;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (UomMapping) TableName() string {
	return "pvummappings"
}

// AttributeMapping attaches an attribute definition to a variant.
type AttributeMapping struct {
	ID           int64     `json:"pvamid" gorm:"column:pvamid;primaryKey;autoIncrement"`
	VariantID    int64     `json:"pvid" gorm:"column:pvid;not null;index"`
	AttributeID  int64     `json:"attributeid" gorm:"column:attributeid;not null"`
	Prompt       string    `json:"prompt" gorm:"column:prompt"`
	IsRequired   bool      `json:"is_required" gorm:"column:is_required;default:false"`
	ControlType  int       `json:"control_type" gorm:"column:control_type"`
	DisplayOrder int       `json:"display_order" gorm:"column:display_order;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (AttributeMapping) TableName() string {
	return "pvamappings"
}

// AttributeValue is one selectable value under an attribute mapping.
type AttributeValue struct {
	ID               int64     `json:"pvamvid" gorm:"column:pvamvid;primaryKey;autoIncrement"`
	MappingID        int64     `json:"pvamid" gorm:"column:pvamid;not null;index"`
	AttributeValueID int64     `json:"avid" gorm:"column:avid;not null"`
	Color            *string   `json:"color,omitempty" gorm:"column:color"`
	ImageID          *int64    `json:"imageid,omitempty" gorm:"column:imageid"`
	DisplayOrder     int       `json:"display_order" gorm:"column:display_order;default:0"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (AttributeValue) TableName() string {
	return "pvamvalues"
}

// CategoryMapping links a product to a category.
type CategoryMapping struct {
	ID         int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ProductID  int64     `json:"proid" gorm:"column:proid;not null;index"`
	CategoryID int64     `json:"categoryid" gorm:"column:categoryid;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (CategoryMapping) TableName() string {
	return "procategorymappings"
}

// ImageMapping links a product to its image media ref. At most one row
// per product.
type ImageMapping struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ProductID int64     `json:"proid" gorm:"column:proid;not null;uniqueIndex"`
	ImageID   int64     `json:"imageid" gorm:"column:imageid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (ImageMapping) TableName() string {
	return "proimagemappings"
}

// Reference data entities, consumed read-only.

type Uom struct {
	ID   int64  `json:"uomid" gorm:"column:uomid;primaryKey;autoIncrement"`
	Name string `json:"uomname" gorm:"column:uomname;not null"`
}

func (Uom) TableName() string {
	return "uoms"
}

type Category struct {
	ID   int64  `json:"categoryid" gorm:"column:categoryid;primaryKey;autoIncrement"`
	Name string `json:"categoryname" gorm:"column:categoryname;not null"`
}

func (Category) TableName() string {
	return "categories"
}

type Attribute struct {
	ID   int64  `json:"attributeid" gorm:"column:attributeid;primaryKey;autoIncrement"`
	Name string `json:"attributename" gorm:"column:attributename;not null"`
}

func (Attribute) TableName() string {
	return "attributes"
}

// AttributeValueRef is the master list of selectable values per attribute.
type AttributeValueRef struct {
	ID          int64  `json:"avid" gorm:"column:avid;primaryKey;autoIncrement"`
	AttributeID int64  `json:"attributeid" gorm:"column:attributeid;not null;index"`
	Name        string `json:"avname" gorm:"column:avname;not null"`
}

func (AttributeValueRef) TableName() string {
	return "attributevalues"
}

// MasterValue is a generic labelled value belonging to a master list.
type MasterValue struct {
	ID       int64  `json:"mvid" gorm:"column:mvid;primaryKey;autoIncrement"`
	MasterID int    `json:"masterid" gorm:"column:masterid;not null;index"`
	Name     string `json:"mvname" gorm:"column:mvname;not null"`
}

func (MasterValue) TableName() string {
	return "mastervalues"
}

// Request DTOs. Insert payloads are built from these typed structs with
// named optional fields; unknown fields are dropped at bind time, never
// forwarded to the store.

type LocationInput struct {
	SafetyLevel    float64 `json:"safety_level"`
	ReorderLevel   float64 `json:"reorder_level"`
	MinStockUomID  int64   `json:"min_stock_uom" binding:"required"`
	ParStockUomID  int64   `json:"par_stock_uom" binding:"required"`
	OpeningStock   float64 `json:"opening_stock"`
	ClosingStock   float64 `json:"closing_stock"`
	ClosingStockOn []int   `json:"closing_stock_on"`
	AutoRenew      bool    `json:"auto_renew"`
}

type TaxInput struct {
	TaxRate string `json:"tax_rate"`
	HsnCode string `json:"hsn_code"`
}

type PurchaseUomInput struct {
	UomID     int64 `json:"uomid" binding:"required"`
	IsDefault bool  `json:"is_default"`
}

type ConsumptionUomInput struct {
	UomID int64 `json:"uomid" binding:"required"`
}

type AttributeValueInput struct {
	AttributeValueID int64   `json:"avid" binding:"required"`
	Color            *string `json:"color"`
	ImageID          *int64  `json:"imageid"`
	DisplayOrder     int     `json:"display_order"`
}

type AttributeMappingInput struct {
	AttributeID  int64                 `json:"attributeid" binding:"required"`
	Prompt       string                `json:"prompt"`
	IsRequired   bool                  `json:"is_required"`
	ControlType  int                   `json:"control_type"`
	DisplayOrder int                   `json:"display_order"`
	Values       []AttributeValueInput `json:"pvamvaluemodels"`
}

type VariantInput struct {
	Name              string                  `json:"pvname" binding:"required"`
	Description       string                  `json:"pvdesc"`
	Barcode           string                  `json:"pvbarcode"`
	PurchasePrice     string                  `json:"pvpurchaseprice"`
	SalesPrice        string                  `json:"pvsalesprice"`
	ReconPrice        string                  `json:"pvreconprice"`
	NormalLoss        string                  `json:"normalloss"`
	Location          *LocationInput          `json:"location"`
	Tax               *TaxInput               `json:"tax"`
	PurchaseUoms      []PurchaseUomInput      `json:"purchaseUoms"`
	ConsumptionUom    *ConsumptionUomInput    `json:"consumptionUom"`
	AttributeMappings []AttributeMappingInput `json:"pvamappings"`
}

// ProductRequest is shared by create and update. Callers supply either
// a single variant or a variants list; the has-variant flag is always
// recomputed server side from the submitted count.
type ProductRequest struct {
	Name         string         `json:"proname" binding:"required"`
	Description  string         `json:"prodesc"`
	Config       int            `json:"proconfig" binding:"required"`
	UomID        int64          `json:"prouom" binding:"required"`
	IsFixedAsset bool           `json:"isfa"`
	HasVariant   bool           `json:"hasvarient"`
	CategoryIDs  []int64        `json:"categories"`
	ImageID      *int64         `json:"proimage"`
	Variant      *VariantInput  `json:"variant"`
	Variants     []VariantInput `json:"variants"`
}

// VariantInputs normalizes the single/multi shape into one slice.
func (r *ProductRequest) VariantInputs() []VariantInput {
	if len(r.Variants) > 0 {
		return r.Variants
	}
	if r.Variant != nil {
		return []VariantInput{*r.Variant}
	}
	return nil
}

// ProductFilter carries the list criteria. Page and Limit are nil when
// the caller asked for the unpaged mode.
type ProductFilter struct {
	Name         string
	Config       *int
	CategoryID   *int64
	IsFixedAsset *bool
	Page         *int
	Limit        *int
}
