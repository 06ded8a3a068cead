// Package bandpass computes photometric properties of throughput curves:
// equivalent width, mean and pivot wavelength, RMS width and FWHM.
//
// Integrals use the trapezoid rule on the curve's native, possibly
// non-uniform, grid. All wavelengths are in nanometers.
package bandpass
