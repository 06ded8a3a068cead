// Package units provides the small set of physical-quantity conversions the
// throughput chain needs.
//
// Wavelengths are tagged with a [Length] unit and converted to nanometers, the
// canonical unit for every curve in this module. Efficiency samples are tagged
// with a dimensionless [Value] unit: a plain fraction or a percentage.
package units
