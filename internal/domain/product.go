package domain

// Product a catalog item. The article is supplied by the user and never changes.
type Product struct {
	Article      string  `gorm:"primaryKey" json:"article"`
	Name         string  `gorm:"not null" json:"name"`
	Unit         string  `gorm:"not null" json:"unit"`
	Cost         float64 `gorm:"not null;check:chk_product_cost,cost >= 0" json:"cost"`
	MaxDiscount  int     `gorm:"not null;check:chk_product_max_discount,max_discount BETWEEN 0 AND 100" json:"max_discount"`
	Manufacturer string  `gorm:"not null" json:"manufacturer"`
	Supplier     string  `gorm:"not null" json:"supplier"`
	Category     string  `gorm:"not null" json:"category"`
	Discount     int     `gorm:"not null;check:chk_product_discount,discount BETWEEN 0 AND 100" json:"discount"`
	Quantity     int     `gorm:"not null;check:chk_product_quantity,quantity >= 0" json:"quantity"`
	Description  string  `gorm:"not null" json:"description"`
	ImagePath    *string `json:"image_path"` // relative to the application root
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}
