package models

// Item is the persisted shape of a catalog item row.
type Item struct {
	ItemID string `db:"item_id"`
	Title  string `db:"title"`
	Author string `db:"author"`
	AuditFields
}
