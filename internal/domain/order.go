package domain

// PickupPoint where a client collects an order
type PickupPoint struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Address string `gorm:"not null" json:"address"`
}

// TableName Specify table name
func (PickupPoint) TableName() string {
	return "pickup_point"
}

// Order ids are assigned by the caller. Dates are YYYY-MM-DD text.
type Order struct {
	ID            int64        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OrderDate     string       `gorm:"not null" json:"order_date"`
	DeliveryDate  string       `gorm:"not null" json:"delivery_date"`
	PickupPointID int64        `gorm:"not null" json:"pickup_point_id"`
	PickupPoint   *PickupPoint `gorm:"foreignKey:PickupPointID" json:"pickup_point,omitempty"`
	ClientName    *string      `json:"client_name"`
	PickupCode    int          `gorm:"not null" json:"pickup_code"`
	Status        string       `gorm:"not null" json:"status"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "order"
}

// OrderProduct an order line item. Rows go away with their order; a referenced
// product cannot be removed.
type OrderProduct struct {
	OrderID        int64    `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	Order          *Order   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	ProductArticle string   `gorm:"primaryKey" json:"product_article"`
	Product        *Product `gorm:"foreignKey:ProductArticle;references:Article" json:"-"`
	Quantity       int      `gorm:"not null;check:chk_order_product_quantity,quantity > 0" json:"quantity"`
}

// TableName Specify table name
func (OrderProduct) TableName() string {
	return "order_product"
}
