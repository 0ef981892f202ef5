// Package model holds the gorm entities of the catalog.
package model

// AllModels returns every entity in dependency order for auto-migration.
func AllModels() []any {
	return []any{
		&Country{},
		&Author{},
		&Book{},
		&BookAuthor{},
		&Reviewer{},
		&Review{},
	}
}
