package models

// Canonical output views. Every identifier and decimal field is
// rendered as a string so values survive the wire without precision or
// overflow loss; booleans and small integers pass through natively.

type UomMappingView struct {
	ID        string `json:"id"`
	UomID     string `json:"uomid"`
	UomName   string `json:"uomname"`
	IsDefault bool   `json:"is_default"`
}

type LocationView struct {
	ID              string `json:"id"`
	SafetyLevel     string `json:"safety_level"`
	ReorderLevel    string `json:"reorder_level"`
	MinStockUomID   string `json:"min_stock_uom"`
	MinStockUomName string `json:"min_stock_uom_name"`
	ParStockUomID   string `json:"par_stock_uom"`
	ParStockUomName string `json:"par_stock_uom_name"`
	OpeningStock    string `json:"opening_stock"`
	ClosingStock    string `json:"closing_stock"`
	ClosingStockOn  []int  `json:"closing_stock_on"`
	AutoRenew       bool   `json:"auto_renew"`
}

type TaxView struct {
	ID      string `json:"id"`
	TaxRate string `json:"tax_rate"`
	HsnCode string `json:"hsn_code"`
}

type AttributeValueView struct {
	ID                 string  `json:"pvamvid"`
	AttributeValueID   string  `json:"avid"`
	AttributeValueName string  `json:"avname"`
	Color              *string `json:"color,omitempty"`
	ImageID            *string `json:"imageid,omitempty"`
	DisplayOrder       int     `json:"display_order"`
}

type AttributeMappingView struct {
	ID            string               `json:"pvamid"`
	AttributeID   string               `json:"attributeid"`
	AttributeName string               `json:"attributename"`
	Prompt        string               `json:"prompt"`
	IsRequired    bool                 `json:"is_required"`
	ControlType   int                  `json:"control_type"`
	DisplayOrder  int                  `json:"display_order"`
	Values        []AttributeValueView `json:"pvamvaluemodels"`
}

type VariantView struct {
	ID                string                 `json:"pvid"`
	ProductID         string                 `json:"proid"`
	Name              string                 `json:"pvname"`
	Description       string                 `json:"pvdesc"`
	Barcode           string                 `json:"pvbarcode"`
	PurchasePrice     string                 `json:"pvpurchaseprice"`
	SalesPrice        string                 `json:"pvsalesprice"`
	ReconPrice        string                 `json:"pvreconprice"`
	NormalLoss        string                 `json:"normalloss"`
	Location          *LocationView          `json:"location"`
	Tax               *TaxView               `json:"tax"`
	PurchaseUoms      []UomMappingView       `json:"purchaseUoms"`
	ConsumptionUom    *UomMappingView        `json:"consumptionUom"`
	AttributeMappings []AttributeMappingView `json:"pvamappings"`
}

type CategoryView struct {
	ID   string `json:"categoryid"`
	Name string `json:"categoryname"`
}

// ProductView is the canonical aggregate shape. With one live variant
// the Variant field is set; with two or more, Variants. Never both.
type ProductView struct {
	ID           string         `json:"proid"`
	Name         string         `json:"proname"`
	Description  string         `json:"prodesc"`
	Config       int            `json:"proconfig"`
	UomID        string         `json:"prouom"`
	UomName      string         `json:"prouomname"`
	IsFixedAsset bool           `json:"isfa"`
	HasVariant   bool           `json:"hasvarient"`
	ImageID      *string        `json:"proimage,omitempty"`
	Categories   []CategoryView `json:"categories"`
	Variant      *VariantView   `json:"variant,omitempty"`
	Variants     []VariantView  `json:"variants,omitempty"`
}

// ProductListItem is the row shape of the filtered list. The full
// variant graph is not expanded here; callers fetch it per product.
type ProductListItem struct {
	ID           string         `json:"proid"`
	Name         string         `json:"proname"`
	Description  string         `json:"prodesc"`
	Config       int            `json:"proconfig"`
	UomID        string         `json:"prouom"`
	UomName      string         `json:"prouomname"`
	IsFixedAsset bool           `json:"isfa"`
	HasVariant   bool           `json:"hasvarient"`
	VariantCount int            `json:"variant_count"`
	Categories   []CategoryView `json:"categories"`
}

type ProductListResponse struct {
	Records    []ProductListItem `json:"records"`
	Pagination PaginationInfo    `json:"pagination"`
}

// ProductModalView bundles the reference data needed to populate the
// product form in one payload.
type ProductModalView struct {
	Uoms             []Uom                 `json:"uoms"`
	Categories       []Category            `json:"categories"`
	Attributes       []AttributeModalEntry `json:"attributes"`
	ProductTypes     []MasterValue         `json:"productTypes"`
	ClosingStockType []MasterValue         `json:"closingStockTypes"`
}

type AttributeModalEntry struct {
	Attribute
	Values []AttributeValueRef `json:"values"`
}
