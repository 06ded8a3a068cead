// Package curve implements wavelength-sampled efficiency curves and their
// algebra.
//
// A [Curve] is an immutable sequence of (wavelength, value) samples with a
// strictly increasing wavelength axis stored in nanometers. Values are
// dimensionless ratios: transmission, reflectivity, or quantum efficiency.
// Between samples a curve is evaluated by linear interpolation; outside its
// native domain the behavior is selected by an explicit [Policy].
//
// Composition never writes into an operand:
//
//   - [Curve.Multiply] and [Curve.Divide] return a curve defined on the
//     intersection of the operand domains, sampled on the union of their
//     wavelength grids restricted to that intersection. Evaluating such a
//     curve combines the operands' own values, so (a*b)(x) == a(x)*b(x)
//     between samples too.
//   - [Curve.Scale] and [Curve.DivideScalar] keep the grid and scale values.
//   - [Product] folds any number of curves with Multiply.
//
// Composite optical paths transmit nothing outside the characterized range of
// any single element, so products never extrapolate.
package curve
