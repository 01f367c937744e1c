// Package models contains GORM persistence models that map to database tables.
// They are kept apart from the domain entities so the domain stays free of ORM tags.
//
// - base.go: shared identity columns
// - catalog.go: clients and items
// - trade.go: sales orders and their lines
// - outbox.go: transactional outbox for domain events
package models
