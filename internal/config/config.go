// Package config layers svgmap settings from defaults, an optional config
// file, SVGMAP_* environment variables and command-line flags.
package config

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variable of every option.
const EnvPrefix = "SVGMAP"

// Options are the resolved settings of a run.
type Options struct {
	Template  string
	OutDir    string
	Workers   int
	PNG       bool
	PNGWidth  int
	LogLevel  string
	LogFormat string
}

type option struct {
	name, shorthand, usage string
	defaultVal             interface{}
}

var options = []option{
	{
		name:       "config",
		usage:      "configuration file (toml, yaml or json)",
		defaultVal: "",
	},
	{
		name:       "template",
		shorthand:  "t",
		usage:      "SVG template file; the built-in template is used when empty",
		defaultVal: "",
	},
	{
		name:       "out",
		shorthand:  "o",
		usage:      "output directory; files are written next to their input when empty",
		defaultVal: "",
	},
	{
		name:       "workers",
		shorthand:  "w",
		usage:      "documents converted concurrently (0 = one per CPU)",
		defaultVal: runtime.NumCPU(),
	},
	{
		name:       "png",
		usage:      "also write a PNG preview of every map",
		defaultVal: false,
	},
	{
		name:       "png-width",
		usage:      "width in pixels of PNG previews",
		defaultVal: 1024,
	},
	{
		name:       "log-level",
		usage:      "log level (debug, info, warn, error)",
		defaultVal: "info",
	},
	{
		name:       "log-format",
		usage:      "log format (text or json)",
		defaultVal: "text",
	},
}

// New returns a viper instance reading SVGMAP_* variables, with every
// option at its default.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, o := range options {
		v.SetDefault(o.name, o.defaultVal)
	}
	return v
}

// Bind declares every option on set and binds it to v.
func Bind(v *viper.Viper, set *pflag.FlagSet) error {
	for _, o := range options {
		switch d := o.defaultVal.(type) {
		case string:
			set.StringP(o.name, o.shorthand, d, o.usage)
		case bool:
			set.BoolP(o.name, o.shorthand, d, o.usage)
		case int:
			set.IntP(o.name, o.shorthand, d, o.usage)
		default:
			panic("invalid argument type")
		}
		if err := v.BindPFlag(o.name, set.Lookup(o.name)); err != nil {
			return err
		}
	}
	return nil
}

// ReadConfigFile merges the file named by the "config" option, if any.
func ReadConfigFile(v *viper.Viper) error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("svgmap: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Load resolves and validates the options held by v.
func Load(v *viper.Viper) (Options, error) {
	o := Options{
		Template:  v.GetString("template"),
		OutDir:    v.GetString("out"),
		Workers:   v.GetInt("workers"),
		PNG:       v.GetBool("png"),
		PNGWidth:  v.GetInt("png-width"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
	}
	if o.Workers < 0 {
		return Options{}, fmt.Errorf("svgmap: workers must be >= 0, got %d", o.Workers)
	}
	if o.PNGWidth <= 0 {
		return Options{}, fmt.Errorf("svgmap: png-width must be > 0, got %d", o.PNGWidth)
	}
	if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
		return Options{}, fmt.Errorf("svgmap: %v", err)
	}
	switch o.LogFormat {
	case "text", "json":
	default:
		return Options{}, fmt.Errorf("svgmap: unknown log format %q", o.LogFormat)
	}
	return o, nil
}

// NewLogger builds the logger described by o, writing to w.
func (o Options) NewLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	if lvl, err := logrus.ParseLevel(o.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if o.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return log
}
