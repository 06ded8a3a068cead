package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-etc/optics/model"
)

// ErrInvalid reports a configuration value of the wrong shape.
var ErrInvalid = errors.New("config: invalid value")

// Observatory is the decoded TOML document.
type Observatory struct {
	Site       SiteSection       `mapstructure:"site"`
	Telescope  TelescopeSection  `mapstructure:"telescope"`
	Instrument InstrumentSection `mapstructure:"instrument"`
	Catalog    CatalogSection    `mapstructure:"catalog"`

	// dir is the directory of the file the document was read from.
	dir string
}

// SiteSection is the [site] table.
type SiteSection struct {
	Name         string  `mapstructure:"name"`
	Altitude     float64 `mapstructure:"altitude"`
	Latitude     float64 `mapstructure:"latitude"`
	Longitude    float64 `mapstructure:"longitude"`
	Transmission any     `mapstructure:"transmission"`
}

// TelescopeSection is the [telescope] table. Unset pointer fields keep
// their model defaults.
type TelescopeSection struct {
	Name         string  `mapstructure:"name"`
	Size         float64 `mapstructure:"size"`
	Area         float64 `mapstructure:"area"`
	NumMirrors   *int    `mapstructure:"num_mirrors"`
	Reflectivity any     `mapstructure:"reflectivity"`
}

// InstrumentSection is the [instrument] table.
type InstrumentSection struct {
	Name               string   `mapstructure:"name"`
	Type               string   `mapstructure:"inst_type"`
	NumARCoatings      *int     `mapstructure:"num_ar_coatings"`
	NumLenses          *int     `mapstructure:"num_inst_lenses"`
	NumMirrors         *int     `mapstructure:"num_inst_mirrors"`
	LensTransmission   *float64 `mapstructure:"inst_lens_trans"`
	MirrorReflectivity *float64 `mapstructure:"inst_mirror_refl"`
	ARCoating          *float64 `mapstructure:"inst_ar_coating_refl"`
	Filters            []string `mapstructure:"filterlist"`
	CCD                any      `mapstructure:"ccd"`
}

// CatalogSection is the [catalog] table. Without a file the built-in SVO
// catalog is used.
type CatalogSection struct {
	File     string   `mapstructure:"file"`
	DataDirs []string `mapstructure:"data_dirs"`
}

// Load reads an observatory description from path. Relative data files
// are looked up next to it.
func Load(path string) (*Observatory, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	o, err := decode(v)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	o.dir = filepath.Dir(path)
	return o, nil
}

// Read decodes an observatory description in the given format ("toml",
// "yaml", ...).
func Read(r io.Reader, format string) (*Observatory, error) {
	v := newViper()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ETC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Observatory, error) {
	var o Observatory
	if err := v.Unmarshal(&o); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// Validate checks value shapes that decoding cannot.
func (o *Observatory) Validate() error {
	for key, raw := range map[string]any{
		"site.transmission":      o.Site.Transmission,
		"telescope.reflectivity": o.Telescope.Reflectivity,
		"instrument.ccd":         o.Instrument.CCD,
	} {
		if _, err := inputOf(key, raw); err != nil {
			return err
		}
	}
	return nil
}

// Dir returns the directory the document was loaded from, or "".
func (o *Observatory) Dir() string { return o.dir }

// inputOf discriminates on the decoded value type: numbers are scalars,
// strings are file references.
func inputOf(key string, raw any) (model.Input, error) {
	switch v := raw.(type) {
	case nil:
		return model.Input{}, nil
	case float64:
		return model.Scalar(v), nil
	case float32:
		return model.Scalar(float64(v)), nil
	case int64:
		return model.Scalar(float64(v)), nil
	case int:
		return model.Scalar(float64(v)), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return model.Input{}, nil
		}
		return model.File(v), nil
	default:
		return model.Input{}, fmt.Errorf("%w: %s must be a number or a file path, got %T", ErrInvalid, key, raw)
	}
}

// SiteConfig converts the [site] table.
func (o *Observatory) SiteConfig() (model.SiteConfig, error) {
	in, err := inputOf("site.transmission", o.Site.Transmission)
	if err != nil {
		return model.SiteConfig{}, err
	}
	return model.SiteConfig{
		Name:         o.Site.Name,
		Altitude:     o.Site.Altitude,
		Latitude:     o.Site.Latitude,
		Longitude:    o.Site.Longitude,
		Transmission: in,
	}, nil
}

// TelescopeConfig converts the [telescope] table over the model defaults.
func (o *Observatory) TelescopeConfig() (model.TelescopeConfig, error) {
	cfg := model.DefaultTelescopeConfig()
	t := o.Telescope
	cfg.Name, cfg.Size, cfg.Area = t.Name, t.Size, t.Area
	if t.NumMirrors != nil {
		cfg.NumMirrors = *t.NumMirrors
	}
	in, err := inputOf("telescope.reflectivity", t.Reflectivity)
	if err != nil {
		return model.TelescopeConfig{}, err
	}
	cfg.Reflectivity = in.Or(cfg.Reflectivity)
	return cfg, nil
}

// InstrumentConfig converts the [instrument] table over the model
// defaults.
func (o *Observatory) InstrumentConfig() (model.InstrumentConfig, error) {
	cfg := model.DefaultInstrumentConfig()
	s := o.Instrument
	cfg.Name = s.Name
	cfg.Type = model.ParseInstrumentType(s.Type)
	setInt(&cfg.NumARCoatings, s.NumARCoatings)
	setInt(&cfg.NumLenses, s.NumLenses)
	setInt(&cfg.NumMirrors, s.NumMirrors)
	setFloat(&cfg.ARCoating, s.ARCoating)
	setFloat(&cfg.LensTransmission, s.LensTransmission)
	setFloat(&cfg.MirrorReflectivity, s.MirrorReflectivity)
	cfg.Filters = append([]string(nil), s.Filters...)

	in, err := inputOf("instrument.ccd", s.CCD)
	if err != nil {
		return model.InstrumentConfig{}, err
	}
	cfg.Detector = in.Or(cfg.Detector)
	return cfg, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
