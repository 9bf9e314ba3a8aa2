// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - Ledger: moves balance between two users, validating both sides first
package services
