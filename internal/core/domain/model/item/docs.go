// Package item provides the Item aggregate, the shipped parcel whose lifecycle
// runs from sending to receiving.
//
// State transitions:
//
//	PendingReceiving ──receive (by recipient, once due)──> Received
//
// Received is terminal. Cost is fixed at sending time from the category's
// unit price and the shipped amount.
package item
