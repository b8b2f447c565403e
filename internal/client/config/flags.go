package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
)

// parseFlags populates Config from command-line flags:
//
//	-a string   blog server URL
//	-s string   path of the local session store
//	-t int      request timeout (seconds)
//	-l string   log level
//
// Only these flags are looked at (flagx.FilterArgs), so -c/-config can sit
// on the same command line.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "blog server URL")
	fs.StringVar(&cfg.StorePath, "s", cfg.StorePath, "session store path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
