package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naveenspark/islendingabok/internal/config"
	"github.com/naveenspark/islendingabok/internal/logging"
	"github.com/naveenspark/islendingabok/pkg/client"
)

type rootOptions struct {
	username string
	password string
	apiURL   string
	envFile  string
	output   string
	logLevel string
}

// app carries what subcommands share once flags are parsed.
type app struct {
	opts *rootOptions
	cfg  config.Config
	log  zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "islbok",
		Short:         "Command-line client for Íslendingabók",
		Long:          "islbok logs in to Íslendingabók and queries people, searches and family relations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var files []string
			if opts.envFile != "" {
				files = append(files, opts.envFile)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg.Override(opts.username, opts.password, opts.apiURL)
			if opts.logLevel != "" {
				a.cfg.LogLevel = opts.logLevel
			}
			a.log = logging.New(logging.Config{
				Level:  a.cfg.LogLevel,
				Format: a.cfg.LogFormat,
				Output: cmd.ErrOrStderr(),
			})
			return validateOutput(opts.output)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.username, "username", "u", "", "username (defaults to "+client.EnvUser+")")
	flags.StringVarP(&opts.password, "password", "p", "", "password (defaults to "+client.EnvPassword+")")
	flags.StringVar(&opts.apiURL, "api-url", "", "service base URL (defaults to "+config.EnvAPIURL+" or "+client.DefaultBaseURL+")")
	flags.StringVar(&opts.envFile, "env-file", "", "read environment from this file instead of .env")
	flags.StringVarP(&opts.output, "output", "o", "table", "output format: table, json")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (defaults to "+config.EnvLogLevel+")")

	root.AddCommand(
		newMeCmd(a),
		newPersonCmd(a),
		newFindCmd(a),
		newRelationCmd(a),
		newWhoisCmd(a),
		newBrowseCmd(a),
		newDemoCmd(a),
		newWebCmd(),
		newVersionCmd(),
	)
	for _, rel := range client.Relations() {
		if rel == client.RelationGet {
			continue
		}
		root.AddCommand(newNamedRelationCmd(a, rel))
	}
	return root
}

// connect logs in with the resolved configuration.
func (a *app) connect(ctx context.Context) (*client.Client, error) {
	c, err := client.New(ctx, a.cfg.Username, a.cfg.Password,
		client.WithBaseURL(a.cfg.APIURL),
		client.WithLogger(a.log),
	)
	if err != nil {
		return nil, err
	}
	a.log.Info().Str("person_id", c.PersonID()).Msg("logged in")
	return c, nil
}
