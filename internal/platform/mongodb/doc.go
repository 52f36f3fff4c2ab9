// Package mongodb provides the MongoDB implementations of the store
// interfaces. Papers and users live in their own collections; a paper's
// author is stored as the user's ObjectID and resolved with a second query
// when a read asks for population.
package mongodb
