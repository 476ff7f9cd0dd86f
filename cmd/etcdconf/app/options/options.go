// Package options aggregates all CLI options for the etcdconf command.
package options

import (
	"github.com/spf13/pflag"

	etcdv2options "github.com/kart-io/etcdconf/pkg/options/etcdv2"
	loggeroptions "github.com/kart-io/etcdconf/pkg/options/logger"
)

// Options holds all configuration for the etcdconf command.
type Options struct {
	Etcd *etcdv2options.Options `json:"etcd" mapstructure:"etcd"`
	Log  *loggeroptions.Options `json:"log" mapstructure:"log"`
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	return &Options{
		Etcd: etcdv2options.NewOptions(),
		Log:  loggeroptions.NewOptions(),
	}
}

// AddFlags adds all option flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.Etcd.AddFlags(fs, "etcd")
	o.Log.AddFlags(fs, "log")
}

// Complete completes all options with defaults and environment lookups.
func (o *Options) Complete() error {
	if err := o.Etcd.Complete(); err != nil {
		return err
	}
	return o.Log.Complete()
}

// Validate validates all options.
func (o *Options) Validate() error {
	if err := o.Etcd.Validate(); err != nil {
		return err
	}
	return o.Log.Validate()
}
