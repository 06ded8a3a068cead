package model

import (
	"fmt"
	"strconv"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputScalar
	inputFile
)

// Input is either a scalar efficiency, a reference to a data file, or
// nothing. The zero value is nothing.
type Input struct {
	kind   inputKind
	scalar float64
	path   string
}

// Scalar is a wavelength-independent efficiency.
func Scalar(v float64) Input { return Input{kind: inputScalar, scalar: v} }

// File refers to a data table. Environment variables in path are expanded
// when the file is opened.
func File(path string) Input { return Input{kind: inputFile, path: path} }

// IsSet reports whether the input holds a scalar or a file.
func (in Input) IsSet() bool { return in.kind != inputNone }

// Scalar returns the scalar value and whether the input is a scalar.
func (in Input) Scalar() (float64, bool) { return in.scalar, in.kind == inputScalar }

// Path returns the file reference and whether the input is a file.
func (in Input) Path() (string, bool) { return in.path, in.kind == inputFile }

// Or returns in when set, otherwise fallback.
func (in Input) Or(fallback Input) Input {
	if in.IsSet() {
		return in
	}
	return fallback
}

func (in Input) String() string {
	switch in.kind {
	case inputScalar:
		return strconv.FormatFloat(in.scalar, 'g', -1, 64)
	case inputFile:
		return fmt.Sprintf("file(%s)", in.path)
	default:
		return "none"
	}
}
