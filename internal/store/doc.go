// Package store defines the persistence contracts for papers and users.
// Implementations live under internal/platform (MongoDB and PostgreSQL);
// this package holds only the interfaces and the errors they share, so
// handlers stay independent of the database in use.
package store
