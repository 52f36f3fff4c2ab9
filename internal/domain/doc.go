// Package domain contains the core business entities of the application:
// papers, their authors, and users. It holds the entity types, their JSON
// shapes and validation rules, independent of any specific store or delivery
// mechanism.
package domain
