// Package app provides the etcdconf command-line application.
package app

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kart-io/etcdconf/cmd/etcdconf/app/options"
	"github.com/kart-io/etcdconf/pkg/app"
	componentetcd "github.com/kart-io/etcdconf/pkg/component/etcdv2"
	"github.com/kart-io/etcdconf/pkg/confsource"
	"github.com/kart-io/etcdconf/pkg/etcdv2"
)

const (
	// Name is the name of the application.
	Name = "etcdconf"

	commandDesc = `etcdconf bridges an etcd v2 key space into flat configuration
properties.

Each command performs exactly one HTTP round-trip against the etcd v2
keys API and prints the flattened result, one key=value pair per line.
Synthetic metadata entries (_key.source, _key.createdIndex, ...) travel
alongside the values.`
)

// NewApp creates and returns a new App object with default parameters.
func NewApp() *app.App {
	opts := options.NewOptions()
	return app.NewApp(
		app.WithName(Name),
		app.WithShortDescription("Bridge an etcd v2 key space into flat configuration properties"),
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithSubcommands(
			newVersionCommand(opts),
			newGetCommand(opts),
			newSetCommand(opts),
			newDeleteCommand(opts),
			newListCommand(opts),
			newConfigCommand(opts),
			newStatusCommand(opts),
		),
	)
}

// setup initializes the global logger and builds the accessor from the
// completed options.
func setup(opts *options.Options) (*etcdv2.Accessor, error) {
	if err := opts.Log.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	acc, err := etcdv2.New(opts.Etcd.ServerURL, etcdv2.WithTimeout(opts.Etcd.RequestTimeout))
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func newVersionCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the etcd server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acc, err := setup(opts)
			if err != nil {
				return err
			}
			v, err := acc.Version(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newGetCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Fetch a single key with its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := setup(opts)
			if err != nil {
				return err
			}
			return printResult(cmd, acc.Get(cmd.Context(), args[0]))
		},
	}
}

func newSetCommand(opts *options.Options) *cobra.Command {
	var ttl int
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Create or update a key, optionally with a TTL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := setup(opts)
			if err != nil {
				return err
			}
			var ttlSeconds *int
			if cmd.Flags().Changed("ttl") {
				ttlSeconds = &ttl
			}
			return printResult(cmd, acc.Set(cmd.Context(), args[0], args[1], ttlSeconds))
		},
	}
	cmd.Flags().IntVar(&ttl, "ttl", 0, "Time to live in seconds")
	return cmd
}

func newDeleteCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := setup(opts)
			if err != nil {
				return err
			}
			return printResult(cmd, acc.Delete(cmd.Context(), args[0]))
		},
	}
}

func newListCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [DIRECTORY]",
		Short: "Flatten a directory into properties",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := setup(opts)
			if err != nil {
				return err
			}
			directory := opts.Etcd.Directory
			if len(args) == 1 {
				directory = args[0]
			}
			return printResult(cmd, acc.GetProperties(cmd.Context(), directory, opts.Etcd.Recursive))
		},
	}
}

// newConfigCommand assembles the merged configuration view: the etcd
// directory is registered as a property source and flattened through the
// provider, so the output is what a consuming service would observe.
func newConfigCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration built from the etcd source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acc, err := setup(opts)
			if err != nil {
				return err
			}
			source := confsource.NewEtcdSource(acc, opts.Etcd.Directory, opts.Etcd.Recursive)
			provider := confsource.NewProvider(source)
			config := provider.Reload(cmd.Context())
			printProperties(cmd, config.Properties())
			return nil
		},
	}
}

// newStatusCommand reports server reachability through the component
// health check, including the observed round-trip latency.
func newStatusCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connectivity and report the health of the etcd server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Log.Init(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			client, err := componentetcd.NewWithContext(cmd.Context(), opts.Etcd)
			if err != nil {
				return err
			}
			defer client.Close()
			status := client.CheckHealth(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "name=%s healthy=%t latency=%s\n",
				status.Name, status.Healthy, status.Latency)
			if status.Error != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "error=%v\n", status.Error)
				return fmt.Errorf("etcd server unhealthy: %w", status.Error)
			}
			return nil
		},
	}
}

// printResult writes the result's flat-map projection sorted by key, one
// key=value pair per line. A failed call still prints its projection
// (the source marker and the _key.error entry) before the error return.
func printResult(cmd *cobra.Command, res *etcdv2.Result) error {
	printProperties(cmd, res.Map())
	return res.Err
}

func printProperties(cmd *cobra.Command, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", k, m[k])
	}
}
