// Package shipment implements the Shipment aggregate and its lifecycle.
//
// A shipment is booked, moves in transit and ends Delivered, or is Cancelled
// before delivery:
//
//	Booked ──> In Transit ──> Delivered
//	  │            │
//	  └────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal. Every status change, including the
// initial booking, appends exactly one HistoryEntry to the aggregate's pending
// history, which the repository writes in the same transaction as the
// shipment row. The ledger is append-only.
package shipment
