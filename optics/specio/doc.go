// Package specio reads tabulated spectral efficiency data.
//
// Every reader returns a [Table]: a header of provenance strings, the
// wavelength samples with their [units.Length], and the dimensionless
// values. Supported sources:
//
//   - [ReadASCII]: whitespace or comma separated two/three-column text.
//   - [ReadLCOCSV]: the LCO Imaging Lab v1 CSV dialect, with 64 keyword
//     rows ahead of the data.
//   - [ReadNamedTable]: text tables whose first row names the columns,
//     used for atmospheric transmission models.
//   - [SVOClient]: the SVO Filter Profile Service, fetched over HTTP with a
//     bounded retry policy.
//
// Readers never guess units. Callers state them, and tables in descending
// wavelength order are reversed so curves always see increasing axes.
package specio
