// Package document formats and parses the business numbers printed on
// shipments and invoices.
//
// A number has the shape PREFIX-yyyyMMdd-NNN. The counter NNN is scoped by
// (prefix, UTC calendar day) and starts at 1 every day. The counter itself is
// owned by persistence; this package only turns a counter value into a
// number and rejects values that no longer fit three digits.
package document
