// Package rules is the catalogue of Java conformance rules.
//
// Every rule has a stable name (used by dialect layers and configuration to
// add or remove it) and reports fixed, user-facing messages. Dialects in
// internal/dialect are assembled from these values; nothing here depends on
// a particular language level.
package rules
