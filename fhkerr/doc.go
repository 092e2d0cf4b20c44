// Package fhkerr holds the shared error vocabulary that package reduce and
// package solver report through (package builder returns its own sentinel
// errors instead): a terminal status
// code, a location tag, and up to two (entity-kind, value) pairs identifying
// the offending variable, model, group, mapping or instance.
//
// It is the Go-struct counterpart of the original's packed fhk_sarg.s_ei
// bitfield (4-bit code, 4-bit where, two 4-bit tags, two 16-bit values) --
// there is no wire budget to respect here, so Status is a plain struct
// rather than a bitfield, but it carries exactly the same information.
package fhkerr
