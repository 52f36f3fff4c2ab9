// Package postgres provides the PostgreSQL implementations of the store
// interfaces, on top of database/sql with the pgx stdlib driver. Partial
// updates are built with squirrel, driver errors are mapped to store errors
// with pgerrcode, and the schema is managed by embedded goose migrations.
package postgres
