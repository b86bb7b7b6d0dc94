// Command cas is an interactive computer algebra system CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/asiyen02/cas/internal/config"
	"github.com/asiyen02/cas/pkg/cas"
)

func main() {
	var (
		evalStr    = flag.String("e", "", "Run a single command and exit (e.g. 'diff x^2')")
		dbPath     = flag.String("db", "", "SQLite database path for named definitions")
		configPath = flag.String("config", "", "YAML configuration file")
	)

	flag.Parse()

	// The -config flag wins over the CAS_CONFIG environment variable
	path := *configPath
	if path == "" {
		path = os.Getenv("CAS_CONFIG")
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// The -db flag overrides the configuration file
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	opts := []cas.Option{}
	if cfg.Database.Path != "" {
		opts = append(opts, cas.WithSQLiteStore(cfg.Database.Path))
	} else {
		opts = append(opts, cas.WithMemoryStore())
	}

	engine := cas.New(opts...)
	defer engine.Close()

	r := newREPL(engine, cfg, os.Stdout)

	if *evalStr != "" {
		r.dispatch(*evalStr)
		return
	}

	runREPL(r)
}
