// Package filter resolves photometric filter tokens to transmission curves.
//
// A [Catalog] maps canonical tokens to resource descriptors. It is built
// once (from YAML or in code) and injected into a [Resolver], which walks
// an ordered list of [Dialect] recognizers to pick a loader for the
// resource: the LCO Imaging Lab CSV dialect, the SVO Filter Profile
// Service, and finally plain ASCII tables.
//
// Two-character tokens ending in "p" ("zp", "gp") alias their base filter.
package filter
