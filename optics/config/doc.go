// Package config reads observatory descriptions and service settings.
//
// An observatory is a TOML document with [site], [telescope],
// [instrument] and [catalog] tables. Efficiencies that may be either a
// number or a data file (site transmission, mirror reflectivity, detector
// QE) are told apart by the TOML value type: numbers are scalars, strings
// are file references. Keys present in the file may be overridden from
// the environment with an ETC_ prefix, e.g. ETC_TELESCOPE_NUM_MIRRORS.
//
// Remote-service settings come from the environment only; see [Service].
package config
