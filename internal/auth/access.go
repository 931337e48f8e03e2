package auth

import "github.com/talkincode/flowershop/internal/domain"

// Action a role-gated operation on one of the screens
type Action int

const (
	ViewCatalog Action = iota
	EditProduct
	ViewOrders
	EditOrder
	ExportCatalog
	Import
)

func (a Action) String() string {
	switch a {
	case ViewCatalog:
		return "view_catalog"
	case EditProduct:
		return "edit_product"
	case ViewOrders:
		return "view_orders"
	case EditOrder:
		return "edit_order"
	case ExportCatalog:
		return "export_catalog"
	case Import:
		return "import"
	}
	return "unknown"
}

// Permitted reports whether role may perform action. Administrators may do
// everything, managers may also look at orders and export the catalog,
// everybody else only browses.
func Permitted(role string, action Action) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleManager:
		return action == ViewCatalog || action == ViewOrders || action == ExportCatalog
	default:
		return action == ViewCatalog
	}
}
