package options

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Configuration is read from a YAML (or any format viper understands)
// file such as
//
//	input:
//	  preset: tsv
//	output:
//	  kind: fixed
//	  lineTerminator: LF
//	  columns:
//	    - "10"
//	    - {width: 8, justify: right, pad: "0"}
//
// Values from the file become flag defaults, so command line flags take
// precedence.
const (
	// defaultConfigurationName is the default name of configuration
	defaultConfigurationName = "tabconv"
	// defaultConfigurationPath the default location of the configuration file
	defaultConfigurationPath = "$HOME/.tabconv"
)

// TryLoadFromDisk loads configuration from the file named by the
// TABCONV_CONFIG environment variable, or else from tabconv.yaml in the
// default location or the working directory. The returned error is a
// viper.ConfigFileNotFoundError when no file was found.
func TryLoadFromDisk() (*TabconvOptions, error) {
	v := viper.New()
	v.SetEnvPrefix("tabconv")
	if err := v.BindEnv("config"); err != nil {
		return nil, err
	}
	return load(v, v.GetString("config"))
}

// LoadFromFile loads configuration from path.
func LoadFromFile(path string) (*TabconvOptions, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*TabconvOptions, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigurationName)
		v.AddConfigPath(defaultConfigurationPath)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, err
		}
		return nil, errors.Wrap(err, "error parsing configuration file")
	}

	conf := NewTabconvOptions()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.DecodeHookFuncType(columnSpecHook),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(conf, hook); err != nil {
		return nil, errors.Wrapf(err, "error decoding configuration file %s", v.ConfigFileUsed())
	}
	return conf, nil
}

// columnSpecHook accepts a fixed-width column written as a mapping and
// turns it into the width[:justify[:pad]] spec used on the command line.
func columnSpecHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.Map || to.Kind() != reflect.String {
		return data, nil
	}
	m, ok := data.(map[string]interface{})
	if !ok {
		return data, nil
	}
	width, ok := m["width"]
	if !ok {
		return nil, fmt.Errorf("column %v has no width", m)
	}
	spec := fmt.Sprint(width)
	justify, hasJustify := m["justify"]
	pad, hasPad := m["pad"]
	if hasJustify || hasPad {
		spec += ":"
		if hasJustify {
			spec += fmt.Sprint(justify)
		}
	}
	if hasPad {
		spec += ":" + fmt.Sprint(pad)
	}
	return spec, nil
}
