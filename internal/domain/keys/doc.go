// Package keys defines the metadata model and service contracts for stored
// key material: generation, metadata queries, downloads and the vault that
// holds the raw material.
package keys
