package main

import (
	"strconv"
	"time"

	"github.com/alecthomas/kingpin"
)

const (
	descriptionArg          = "Plots time series from metric backends on the terminal."
	defPanelsPath           = "plotterm.yml"
	defLogPath              = "plotterm.log"
	defQueryTimeout         = 10 * time.Second
	defCacheTTL             = 10 * time.Second
	defMaxConcurrentQueries = 10
)

type cmdFlags struct {
	cfg                  string
	refreshInterval      time.Duration
	relativeDur          time.Duration
	debug                bool
	logPath              string
	plain                bool
	plainTicks           int
	metricsListenAddress string
	queryTimeout         time.Duration
	cacheTTL             time.Duration
	maxConcurrentQueries int
}

func newCmdFlags(args []string) (*cmdFlags, error) {
	flags := &cmdFlags{}
	app := kingpin.New("plotterm", descriptionArg)
	app.Version(Version)
	app.DefaultEnvars()

	app.Flag("cfg", "the path to the panels configuration file.").Short('c').Default(defPanelsPath).StringVar(&flags.cfg)
	app.Flag("refresh-interval", "the interval the panels are refreshed, 0 uses the interval of each panel.").Short('r').Default("0").DurationVar(&flags.refreshInterval)
	app.Flag("relative-duration", "the relative time range of the panels from now, 0 uses the range of each panel.").Short('d').Default("0").DurationVar(&flags.relativeDur)
	app.Flag("debug", "enable debug mode, it writes the logs on the log path.").BoolVar(&flags.debug)
	app.Flag("log-path", "the path where the debug logs are written.").Default(defLogPath).StringVar(&flags.logPath)
	app.Flag("plain", "print the panels as text on the standard output instead of drawing them.").BoolVar(&flags.plain)
	app.Flag("plain-ticks", "on plain mode, exit after every panel has been printed this number of times, 0 runs until interrupted.").Default("1").IntVar(&flags.plainTicks)
	app.Flag("metrics-listen-address", "the address where the prometheus metrics of the app are served, empty disables them.").StringVar(&flags.metricsListenAddress)
	app.Flag("query-timeout", "the timeout of every datasource query.").Default(defQueryTimeout.String()).DurationVar(&flags.queryTimeout)
	app.Flag("cache-ttl", "the time a query result is cached, 0 disables the cache.").Default(defCacheTTL.String()).DurationVar(&flags.cacheTTL)
	app.Flag("max-concurrent-queries", "the maximum number of datasource queries running at the same time.").Default(strconv.Itoa(defMaxConcurrentQueries)).IntVar(&flags.maxConcurrentQueries)

	_, err := app.Parse(args)
	if err != nil {
		return nil, err
	}

	return flags, nil
}
