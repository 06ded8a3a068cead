package model

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-etc/optics/curve"
)

// Component tokens understood by [System.Component].
const (
	TokenSite       = "site"
	TokenTelescope  = "telescope"
	TokenInstrument = "instrument"
	TokenDetector   = "detector"
)

// System is the full light path of one observatory configuration.
// Site may be nil or transparent.
type System struct {
	Site       *Site
	Telescope  *Telescope
	Instrument *Instrument
}

// Throughput returns site × telescope × instrument total throughput for
// filter. A site without transmission is skipped.
func (s *System) Throughput(filter string) (*curve.Curve, error) {
	tokens := []string{TokenTelescope, TokenInstrument, TokenDetector}
	if s.Site != nil && s.Site.HasTransmission() {
		tokens = append([]string{TokenSite}, tokens...)
	}
	return s.Chain(filter, tokens...)
}

// Component returns the subsystem named by token.
func (s *System) Component(token string) (Component, error) {
	var c Component
	switch strings.ToLower(strings.TrimSpace(token)) {
	case TokenSite:
		if s.Site != nil {
			c = s.Site
		}
	case TokenTelescope:
		if s.Telescope != nil {
			c = s.Telescope
		}
	case TokenInstrument:
		if s.Instrument != nil {
			c = s.Instrument
		}
	case TokenDetector:
		if s.Instrument != nil {
			c = s.Instrument.Detector()
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentToken, token)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: no %s configured", ErrMissingCurve, token)
	}
	return c, nil
}

// Chain multiplies the filter curve with the named components, in order.
func (s *System) Chain(filter string, tokens ...string) (*curve.Curve, error) {
	if s.Instrument == nil {
		return nil, fmt.Errorf("%w: no instrument configured", ErrMissingCurve)
	}
	acc, err := s.Instrument.Filter(filter)
	if err != nil {
		return nil, err
	}
	for _, tok := range tokens {
		c, err := s.Component(tok)
		if err != nil {
			return nil, err
		}
		acc, err = Multiply(acc, c)
		if err != nil {
			return nil, fmt.Errorf("filter %s × %s: %w", filter, c.Name(), err)
		}
	}
	return acc, nil
}
