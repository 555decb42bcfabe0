// Package options holds the knobs shared by a mapper configuration and its engine.
//
// Values come from three places, applied in order: Defaults, environment
// variables read by FromEnv, and functional Option values passed in code.
package options

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"

	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"

	"object-mapper/primitive"
)

// Factory builds resolvers, formatters and converters declared by type only.
type Factory func(t reflect.Type) (any, error)

type Options struct {
	// MapNullSourceValuesAsNull is the null policy of the default profile.
	MapNullSourceValuesAsNull bool `env:"MAP_NULL_AS_NULL" envDefault:"true"`
	// Conversions lists the scalar conversion families the type converter may use.
	Conversions primitive.CategoryEnum `env:"CONVERSIONS" envDefault:"default"`
	// LogLevel is only used when no logger is given explicitly.
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	Logger     *slog.Logger         `env:"-"`
	Registerer prometheus.Registerer `env:"-"`
	Factory    Factory              `env:"-"`
}

type Option func(*Options)

// EnvPrefix prefixes every variable read by FromEnv.
const EnvPrefix = "OBJECT_MAPPER_"

// Defaults returns the options used when nothing else is configured.
func Defaults() Options {
	return Options{
		MapNullSourceValuesAsNull: true,
		Conversions:               primitive.CategoryDefault,
		LogLevel:                  slog.LevelInfo,
	}
}

// FromEnv reads OBJECT_MAPPER_* variables on top of Defaults.
func FromEnv() (Options, error) {
	opts := Defaults()

	if err := env.ParseWithOptions(&opts, env.Options{Prefix: EnvPrefix}); err != nil {
		return Options{}, fmt.Errorf("parse env: %w", err)
	}

	return opts, nil
}

// Apply folds opts over o and fills in the logger.
func (o Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(&o)
	}

	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: o.LogLevel}))
	}

	return o
}

// New is Defaults().Apply(opts...).
func New(opts ...Option) Options {
	return Defaults().Apply(opts...)
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithMetrics registers engine metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *Options) { o.Registerer = reg }
}

func WithConversions(allowed primitive.CategoryEnum) Option {
	return func(o *Options) { o.Conversions = allowed }
}

func WithNullSourceAsNull(enabled bool) Option {
	return func(o *Options) { o.MapNullSourceValuesAsNull = enabled }
}

// WithFactory sets how types given to ResolveUsingType, AddFormatterType and
// ConvertUsingType are instantiated. The default calls reflect.New.
func WithFactory(factory Factory) Option {
	return func(o *Options) { o.Factory = factory }
}

// WithOptions replaces everything with a prepared value, e.g. one from FromEnv.
func WithOptions(prepared Options) Option {
	return func(o *Options) { *o = prepared }
}
