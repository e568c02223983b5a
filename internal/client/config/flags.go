package config

import (
	"flag"
	"os"
	"time"

	"github.com/ecosync/ecosync-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string      base URL of the EcoSync API (default from Config)
//	-t int         request timeout in seconds (default from Config)
//	-i int         online check interval in seconds (default from Config)
//	-d string      path of the local state database
//	-front string  snapshot path of the front camera
//	-rear string   snapshot path of the rear camera
//
// The function filters os.Args to only the flags it knows about, using
// flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i", "-d", "-front", "-rear"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the EcoSync API")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.StateDBPath, "d", cfg.StateDBPath, "path of the local state database")
	fs.StringVar(&cfg.FrontCameraSource, "front", cfg.FrontCameraSource, "snapshot path of the front camera")
	fs.StringVar(&cfg.RearCameraSource, "rear", cfg.RearCameraSource, "snapshot path of the rear camera")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
