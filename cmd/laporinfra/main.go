package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/laporinfra/laporinfra/internal/app"
	"github.com/laporinfra/laporinfra/internal/report"
	"github.com/laporinfra/laporinfra/internal/schema"
	"github.com/laporinfra/laporinfra/internal/session"
	"github.com/laporinfra/laporinfra/pkg/config"
	"github.com/laporinfra/laporinfra/pkg/i18n"
	"github.com/laporinfra/laporinfra/pkg/logger"
	"github.com/laporinfra/laporinfra/pkg/messaging"
	"github.com/spf13/cobra"
)

const serviceName = "laporinfra"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "laporinfra: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	sessionID  string
	lang       string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "laporinfra",
		Short: "Infrastructure damage reporting client",
		Long: `laporinfra files infrastructure reports with the public works reporting API.
Save the reporter identity once, then submit spatial planning, building,
water resource, road or bridge reports with photos.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (defaults to ./config/laporinfra.yaml)")
	cmd.PersistentFlags().StringVar(&opts.sessionID, "session", "", "Form session ID to scope the stored identity")
	cmd.PersistentFlags().StringVar(&opts.lang, "lang", "", "Message language (id or en)")
	cmd.AddCommand(
		newIdentityCmd(opts),
		newReportCmd(opts),
		newCategoriesCmd(),
		newGPSCmd(),
	)
	return cmd
}

// runtime is everything a command needs after configuration is loaded
type runtime struct {
	cfg   *config.Config
	log   *logger.Logger
	deps  report.Deps
	l     *i18n.Localizer
	store *app.Store
	rmq   *messaging.RabbitMQ
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(serviceName, o.configPath)
	} else {
		cfg, err = config.Load(serviceName)
	}
	if err != nil {
		return nil, err
	}
	if o.lang != "" {
		cfg.Locale = o.lang
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *rootOptions) open(cmd *cobra.Command) (*runtime, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(cmd.ErrOrStderr(), serviceName, cfg.Server.Environment).SetLevel(cfg.LogLevel)
	if o.sessionID != "" {
		log = log.WithSessionID(o.sessionID)
	}

	store, err := app.OpenStore(cmd.Context(), &cfg.Store, log)
	if err != nil {
		return nil, err
	}

	notifier, rmq, err := app.Notifier(&cfg.RabbitMQ, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	deps := app.Deps(cfg, store, notifier, log)
	deps.SessionKey = session.Key(cfg.Store.Key, o.sessionID)

	return &runtime{cfg: cfg, log: log, deps: deps, l: deps.Localizer, store: store, rmq: rmq}, nil
}

func (rt *runtime) Close() {
	if rt.rmq != nil {
		if err := rt.rmq.Close(); err != nil {
			rt.log.Warn().Err(err).Msg("failed to close rabbitmq connection")
		}
	}
	if err := rt.store.Close(); err != nil {
		rt.log.Warn().Err(err).Msg("failed to close session store")
	}
}

// printFieldErrors writes one "field: message" line per error in field order
func printFieldErrors(cmd *cobra.Command, errs schema.FieldErrors) {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", k, errs[k])
	}
}
