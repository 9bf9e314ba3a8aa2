// Package kernel holds value objects shared by the user and item aggregates.
//
// The package includes:
//   - Date: a calendar day used for sending and receiving dates
//   - UUID: identifier for sessions and published events
package kernel
