package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/emrgen/bookbrainz/internal/config"
	"github.com/emrgen/bookbrainz/internal/resolver"
	"github.com/emrgen/bookbrainz/internal/store"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// openStore loads the configuration and connects to the database.
func openStore() (*config.Config, *store.GormStore, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := config.SetupLogging(cfg); err != nil {
		return nil, nil, err
	}

	db, err := config.GetDb(cfg)
	if err != nil {
		return nil, nil, err
	}

	return cfg, store.NewGormStore(db), nil
}

func newResolver(cfg *config.Config, s store.Store) *resolver.Resolver {
	return resolver.NewResolver(s, resolver.Options{
		MaxRedirectHops: cfg.Resolver.MaxRedirectHops,
		FanOut:          cfg.Resolver.FanOut,
	})
}

func fail(err error) {
	color.Red("error: %v", err)
	os.Exit(1)
}

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Print(label)
	color.Unset()
	fmt.Printf(": %s\n", value)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail(err)
	}
	fmt.Println(string(data))
}

// checkMissingFlags reports the required flags that were not set and returns true
// when any is missing.
func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if !cmd.Flag(required).Changed {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) == 0 {
		return false
	}

	var msg string
	for _, f := range missingFlags {
		msg += fmt.Sprintf("--%s ", f)
	}

	color.Red("missing: %s\n", msg)
	if len(providedFlags) > 0 {
		color.Green("provide: %s\n", strings.Join(providedFlags, " "))
	}

	cmd.Println("")
	_ = cmd.Usage()

	return true
}
