// Package kernel provides the shared domain primitives of the freight system.
//
// The package includes:
//   - ID: server-generated integer identity of shipments, invoices and history entries
//   - IDGenerator: source of new identities, backed by a snowflake node
//   - TransportMode: the Air, Sea and Road enumeration used by pricing and shipments
//   - Round2 and amount validation helpers over shopspring/decimal
//
// All values are immutable and safe for concurrent use.
package kernel
