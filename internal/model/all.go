package model

// All lists every persisted model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Permission{},
		&Role{},
		&User{},
		&NotificationType{},
		&NotificationChannel{},
		&NotificationSetting{},
		&Status{},
		&Brand{},
		&Product{},
		&Warehouse{},
		&Inventory{},
		&InventoryTransaction{},
		&InventoryTransfer{},
		&Supplier{},
		&SupplierContact{},
		&FiscalYear{},
		&AccountCode{},
		&RFQ{},
		&RFQItem{},
		&File{},
	}
}
