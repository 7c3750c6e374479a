package xnb

import "github.com/sirupsen/logrus"

type readConfig struct {
	limits     Limits
	log        logrus.FieldLogger
	registry   *Registry
	strictSize bool
}

type ReadOption func(*readConfig)

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if cfg.log == nil {
		cfg.log = logrus.StandardLogger()
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}
	return cfg
}

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithLogger sets the side channel for non-fatal anomalies.
// The default is logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) ReadOption {
	return func(c *readConfig) { c.log = log }
}

// WithRegistry selects the registry the type reader table is resolved against.
// The default is DefaultRegistry().
func WithRegistry(r *Registry) ReadOption {
	return func(c *readConfig) { c.registry = r }
}

// WithStrictSize makes a mismatch between the header's declared size and the
// input length fatal instead of a logged anomaly.
func WithStrictSize(v bool) ReadOption {
	return func(c *readConfig) { c.strictSize = v }
}
