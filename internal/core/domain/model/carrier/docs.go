// Package carrier provides the static Carrier Capability/Cost Table.
//
// A Table maps (source location, destination region) to the carriers able to
// serve that route, each with a base cost, a per-unit cost, a transit time in
// business days and an optional unit capacity. Region keys are "COUNTRY-STATE",
// "COUNTRY" or the wildcard "*"; lookups fall back in that order.
package carrier
