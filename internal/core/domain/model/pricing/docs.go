// Package pricing holds the per-transport-mode rate configuration.
//
// A Rule carries the base rate per kilogram, the distance multiplier and the
// minimum charge of one transport mode. Exactly one rule is active per mode;
// the catalog lookup is therefore unambiguous. Rules are read-only to the
// rest of the domain.
package pricing
