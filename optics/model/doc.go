// Package model describes the physical subsystems along an observation's
// light path and folds their curves into composite throughput.
//
// [Site], [Telescope], [Instrument] and [Detector] each own their curves
// and never modify them; [Multiply] and [Divide] return new curves, so one
// component can take part in any number of composite products. A [System]
// strings the subsystems together for a given filter.
//
// Inputs that may be a number or a data file are expressed as an [Input]:
//
//	tel, err := model.NewTelescope(model.TelescopeConfig{
//		Name:         "0.35m",
//		NumMirrors:   2,
//		Reflectivity: model.File("$ETC_DATA/al_mirror.dat"),
//	})
package model
