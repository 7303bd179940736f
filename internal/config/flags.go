package config

import (
	"flag"
	"fmt"
	"time"
)

// parseFlags parses the client command-line flags.
//
// Flags:
//
//	-a REST API base URL (e.g. http://localhost:9002/api)
//	-d session database DSN
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-refresh-interval task board refresh interval (e.g., "1m")
//	-page-size tasks/users per page
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		address         string
		databaseDSN     string
		jsonConfigPath  string
		requestTimeout  time.Duration
		refreshInterval time.Duration
		pageSize        int
	)

	fs := flag.NewFlagSet("go-task-client", flag.ContinueOnError)
	fs.StringVar(&address, "a", "", "REST API base URL")
	fs.StringVar(&databaseDSN, "d", "", "Session database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Task board refresh interval (e.g., 1m)")
	fs.IntVar(&pageSize, "page-size", 0, "Tasks and users per page")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{PageSize: pageSize},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
		},
		Workers:      Workers{BoardRefreshInterval: refreshInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}
