// Package model holds the catalog entities shared by the repository,
// service and handler layers.
//
// Entities carry both their gorm mapping and their JSON shape, so a row read
// from the database is exactly what the API returns.
package model

// MutationResult reports how many rows an update or delete touched.
//
//	{ "affected_rows": 1 }
type MutationResult struct {
	AffectedRows int64 `json:"affected_rows"`
}

// Models lists every entity in dependency order, for schema bootstrapping in
// tests and local tooling.
func Models() []any {
	return []any{&Category{}, &Product{}, &Tag{}, &ProductTag{}}
}
