package models

import "time"

// Wastage records a loss event against a product or variant. It is an
// independent aggregate; product and variant refs are lookups only.
type Wastage struct {
	ID            int64      `json:"wastageid" gorm:"column:wastageid;primaryKey;autoIncrement"`
	WastageNo     string     `json:"wastageno" gorm:"column:wastageno;not null"`
	SeriesID      int64      `json:"seriesid" gorm:"column:seriesid"`
	ProductID     int64      `json:"proid" gorm:"column:proid;not null;index"`
	VariantID     *int64     `json:"pvid,omitempty" gorm:"column:pvid;index"`
	IsFixedAsset  bool       `json:"proisfa" gorm:"column:proisfa;default:false"`
	Quantity      string     `json:"wastageqty" gorm:"column:wastageqty;type:decimal(18,4);default:0"`
	Value         string     `json:"wastagevalue" gorm:"column:wastagevalue;type:decimal(18,4);default:0"`
	WastageDate   time.Time  `json:"wastagedate" gorm:"column:wastagedate;not null"`
	DOM           *time.Time `json:"dom,omitempty" gorm:"column:dom"`
	DOE           *time.Time `json:"doe,omitempty" gorm:"column:doe"`
	BatchCode     string     `json:"bcode" gorm:"column:bcode"`
	FactoryCode   string     `json:"fcode" gorm:"column:fcode"`
	Remarks       string     `json:"remarks" gorm:"column:remarks"`
	UomID         int64      `json:"uomid" gorm:"column:uomid"`
	OrgUnitID     int64      `json:"uoid" gorm:"column:uoid"`
	OrgAddressID  int64      `json:"uaid" gorm:"column:uaid"`
	WastageTypeID int64      `json:"wastagetype" gorm:"column:wastagetype"`
	TenantID      string     `json:"tenant_id" gorm:"column:tenant_id;not null;index"`
	IsDeleted     bool       `json:"is_deleted" gorm:"column:is_deleted;default:false;index"`
	DeletedBy     *string    `json:"deleted_by,omitempty" gorm:"column:deleted_by"`
	DeletedDate   *time.Time `json:"deleted_date,omitempty" gorm:"column:deleted_date"`
	CreatedBy     string     `json:"created_by" gorm:"column:created_by"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedBy     string     `json:"updated_by" gorm:"column:updated_by"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Wastage) TableName() string {
	return "prowastages"
}

// WastageAttachment is an opaque media ref created with its record.
type WastageAttachment struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	WastageID int64     `json:"wastageid" gorm:"column:wastageid;not null;index"`
	MediaID   int64     `json:"mediaid" gorm:"column:mediaid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (WastageAttachment) TableName() string {
	return "prowastageattachments"
}

// WastageRequest is shared by create and update.
type WastageRequest struct {
	WastageNo     string     `json:"wastageno" binding:"required"`
	SeriesID      int64      `json:"seriesid"`
	ProductID     int64      `json:"proid" binding:"required"`
	VariantID     *int64     `json:"pvid"`
	Quantity      string     `json:"wastageqty" binding:"required"`
	Value         string     `json:"wastagevalue"`
	WastageDate   time.Time  `json:"wastagedate" binding:"required"`
	DOM           *time.Time `json:"dom"`
	DOE           *time.Time `json:"doe"`
	BatchCode     string     `json:"bcode"`
	FactoryCode   string     `json:"fcode"`
	Remarks       string     `json:"remarks"`
	UomID         int64      `json:"uomid" binding:"required"`
	OrgUnitID     int64      `json:"uoid"`
	OrgAddressID  int64      `json:"uaid"`
	WastageTypeID int64      `json:"wastagetype"`
	Attachments   []int64    `json:"attachments"`
}

// WastageView is the read shape, enriched with display names and
// string-ified identifiers and decimals.
type WastageView struct {
	ID              string     `json:"wastageid"`
	WastageNo       string     `json:"wastageno"`
	SeriesID        string     `json:"seriesid"`
	ProductID       string     `json:"proid"`
	ProductName     string     `json:"proname"`
	VariantID       *string    `json:"pvid,omitempty"`
	VariantName     string     `json:"pvname,omitempty"`
	IsFixedAsset    bool       `json:"proisfa"`
	Quantity        string     `json:"wastageqty"`
	Value           string     `json:"wastagevalue"`
	WastageDate     time.Time  `json:"wastagedate"`
	DOM             *time.Time `json:"dom,omitempty"`
	DOE             *time.Time `json:"doe,omitempty"`
	BatchCode       string     `json:"bcode"`
	FactoryCode     string     `json:"fcode"`
	Remarks         string     `json:"remarks"`
	UomID           string     `json:"uomid"`
	UomName         string     `json:"uomname"`
	OrgUnitID       string     `json:"uoid"`
	OrgAddressID    string     `json:"uaid"`
	WastageTypeID   string     `json:"wastagetype"`
	WastageTypeName string     `json:"wastagetypename"`
	Attachments     []string   `json:"attachments"`
}

// WastageFilter carries the wastage list criteria.
type WastageFilter struct {
	IsFixedAsset *bool
	ProductID    *int64
	VariantID    *int64
	WastageType  *int64
	Page         int
	Limit        int
}

type WastageListResponse struct {
	Records    []WastageView  `json:"records"`
	Pagination PaginationInfo `json:"pagination"`
}
