package service

import "github.com/alimarchal/maharat-sub001/internal/query"

const defaultSort = "-created_at"

// Query allow-lists, one per listable resource.
var (
	BrandAllow = query.AllowList{
		ExactFilters:   []string{"id", "is_active"},
		PartialFilters: []string{"name"},
		Sorts:          []string{"name", "created_at"},
		Includes:       []string{"products"},
		DefaultSort:    defaultSort,
	}
	ProductAllow = query.AllowList{
		ExactFilters:   []string{"id", "brand_id", "status_id", "sku"},
		PartialFilters: []string{"name"},
		Sorts:          []string{"name", "sku", "unit_price", "created_at"},
		Includes:       []string{"brand", "status", "inventories"},
		DefaultSort:    defaultSort,
	}
	WarehouseAllow = query.AllowList{
		ExactFilters:   []string{"id", "code", "is_active"},
		PartialFilters: []string{"name"},
		Sorts:          []string{"name", "code", "created_at"},
		Includes:       []string{"inventories"},
		DefaultSort:    defaultSort,
	}
	InventoryAllow = query.AllowList{
		ExactFilters: []string{"id", "product_id", "warehouse_id"},
		Sorts:        []string{"quantity", "reorder_level", "created_at"},
		Includes:     []string{"product", "warehouse", "transactions"},
		DefaultSort:  defaultSort,
	}
	InventoryTransactionAllow = query.AllowList{
		ExactFilters: []string{"inventory_id", "user_id", "transaction_type", "reference_id"},
		Sorts:        []string{"quantity", "created_at"},
		Includes:     []string{"inventory", "user"},
		DefaultSort:  defaultSort,
	}
	InventoryTransferAllow = query.AllowList{
		ExactFilters:   []string{"product_id", "from_warehouse_id", "to_warehouse_id", "status_id"},
		PartialFilters: []string{"reason"},
		Sorts:          []string{"quantity", "transfer_date", "created_at"},
		Includes:       []string{"product", "from_warehouse", "to_warehouse", "status"},
		DefaultSort:    defaultSort,
	}
	SupplierAllow = query.AllowList{
		ExactFilters:   []string{"id", "status_id", "is_active"},
		PartialFilters: []string{"name", "email"},
		Sorts:          []string{"name", "created_at"},
		Includes:       []string{"status", "contacts"},
		DefaultSort:    defaultSort,
	}
	SupplierContactAllow = query.AllowList{
		ExactFilters:   []string{"supplier_id"},
		PartialFilters: []string{"name", "email"},
		Sorts:          []string{"name", "created_at"},
		Includes:       []string{"supplier"},
		DefaultSort:    defaultSort,
	}
	StatusAllow = query.AllowList{
		ExactFilters:   []string{"id", "type", "code"},
		PartialFilters: []string{"name"},
		Sorts:          []string{"name", "type", "created_at"},
		DefaultSort:    defaultSort,
	}
	FiscalYearAllow = query.AllowList{
		ExactFilters:   []string{"id", "is_closed"},
		PartialFilters: []string{"name"},
		Sorts:          []string{"name", "start_date", "end_date"},
		DefaultSort:    defaultSort,
	}
	AccountCodeAllow = query.AllowList{
		ExactFilters:   []string{"id", "account_type", "parent_id", "is_active"},
		PartialFilters: []string{"code", "name"},
		Sorts:          []string{"code", "name", "created_at"},
		Includes:       []string{"parent", "children"},
		DefaultSort:    defaultSort,
	}
	NotificationTypeAllow = query.AllowList{
		ExactFilters:   []string{"id", "key", "is_active"},
		PartialFilters: []string{"name"},
		Sorts:          []string{"key", "name", "created_at"},
		DefaultSort:    defaultSort,
	}
	NotificationChannelAllow = query.AllowList{
		ExactFilters:   []string{"id", "key", "is_active"},
		PartialFilters: []string{"name"},
		Sorts:          []string{"key", "name", "created_at"},
		DefaultSort:    defaultSort,
	}
	PermissionAllow = query.AllowList{
		ExactFilters:   []string{"id"},
		PartialFilters: []string{"name"},
		Sorts:          []string{"name", "created_at"},
		Includes:       []string{"roles"},
		DefaultSort:    defaultSort,
	}
	RoleAllow = query.AllowList{
		ExactFilters:   []string{"id"},
		PartialFilters: []string{"name"},
		Sorts:          []string{"name", "created_at"},
		Includes:       []string{"permissions", "subordinates"},
		DefaultSort:    defaultSort,
	}
	UserAllow = query.AllowList{
		ExactFilters:   []string{"id", "is_active"},
		PartialFilters: []string{"name", "email"},
		Sorts:          []string{"name", "email", "created_at"},
		Includes:       []string{"roles"},
		DefaultSort:    defaultSort,
	}
	RFQAllow = query.AllowList{
		ExactFilters:   []string{"id", "supplier_id", "status_id", "fiscal_year_id"},
		PartialFilters: []string{"rfq_number"},
		Sorts:          []string{"rfq_number", "request_date", "closing_date", "created_at"},
		Includes:       []string{"supplier", "status", "items", "items.product"},
		DefaultSort:    defaultSort,
	}
	RFQItemAllow = query.AllowList{
		ExactFilters: []string{"rfq_id", "product_id"},
		Sorts:        []string{"quantity", "created_at"},
		Includes:     []string{"rfq", "product"},
		DefaultSort:  defaultSort,
	}
	FileAllow = query.AllowList{
		ExactFilters:   []string{"id", "folder", "type", "uploaded_by"},
		PartialFilters: []string{"original_name"},
		Sorts:          []string{"original_name", "size", "created_at"},
		Includes:       []string{"uploader"},
		DefaultSort:    defaultSort,
	}
)
