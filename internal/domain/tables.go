package domain

// Tables in dependency order
var Tables = []interface{}{
	&Role{},
	&User{},
	&Product{},
	&PickupPoint{},
	&Order{},
	&OrderProduct{},
}
