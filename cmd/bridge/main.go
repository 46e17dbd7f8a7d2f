package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/deepnoodle-ai/bridge"
	"github.com/fatih/color"
)

// CLI configuration
type Config struct {
	ConfigFile string
	ScriptFile string
	Timeout    time.Duration
	Verbose    bool
	JSON       bool
}

func main() {
	flags := parseFlags()

	cfg := bridge.DefaultConfig()
	if flags.ConfigFile != "" {
		var err error
		cfg, err = bridge.LoadConfig(flags.ConfigFile)
		if err != nil {
			color.Red("Error: %v", err)
			os.Exit(1)
		}
	}
	if flags.ScriptFile != "" {
		cfg.Script = flags.ScriptFile
	}
	if flags.Verbose {
		cfg.LogLevel = "debug"
	}
	if flags.JSON {
		cfg.LogFormat = "json"
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("Invalid logging configuration: %v", err)
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		log.Fatalf("Invalid timeout: %v", err)
	}
	if flags.Timeout > 0 {
		timeout = flags.Timeout
	}

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
		color.Yellow("Timeout: %v", timeout)
	}

	// Load() would ignore the configured logger.
	ns := bridge.NewNamespace(bridge.NamespaceOptions{Logger: logger})

	if cfg.Script == "" {
		if err := runDemo(ctx, ns); err != nil {
			color.Red("Error: %v", err)
			os.Exit(1)
		}
		return
	}
	if err := runScript(ctx, ns, cfg.Script, flags.JSON, logger); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.ConfigFile, "config", "", "Path to a YAML configuration file (optional)")
	flag.StringVar(&config.ConfigFile, "c", "", "Path to a YAML configuration file (shorthand)")

	flag.StringVar(&config.ScriptFile, "script", "", "Path to a Risor script to run with the bridge module (optional)")
	flag.StringVar(&config.ScriptFile, "s", "", "Path to a Risor script (shorthand)")

	flag.DurationVar(&config.Timeout, "timeout", 0, "Execution timeout (e.g., 30s, 5m)")
	flag.DurationVar(&config.Timeout, "t", 0, "Execution timeout (shorthand)")

	flag.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&config.Verbose, "v", false, "Enable debug logging (shorthand)")

	flag.BoolVar(&config.JSON, "json", false, "Log and print results in JSON format")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bridge CLI - Exercise the bridge module from Risor

Usage: %s [options]

Examples:
  # Run the built-in demonstration
  %s

  # Run a script with the bridge module available as "bridge"
  %s -script hello.risor

Options:
`, os.Args[0], os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()
	return config
}

func runDemo(ctx context.Context, ns *bridge.Namespace) error {
	color.Cyan("Module: %s %v", ns.Name(), ns.Names())
	color.White("%s.%s = %d", ns.Name(), bridge.AnswerName, ns.Answer())

	e := ns.New()
	color.White("%s().%s() = %q", bridge.TypeName, bridge.NativeGreetingName, e.NativeGreeting())

	text, err := e.HostGreeting(ctx)
	if err != nil {
		return err
	}
	color.White("%s().%s() = %q", bridge.TypeName, bridge.HostGreetingName, text)
	color.Green("Demonstration successful!")
	return nil
}

func runScript(ctx context.Context, ns *bridge.Namespace, path string, asJSON bool, logger *slog.Logger) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	color.Blue("Running script: %s", path)

	startTime := time.Now()
	result, err := ns.Run(ctx, string(source))
	logger.Debug("script finished", "path", path, "duration", time.Since(startTime))
	if err != nil {
		return err
	}

	if asJSON {
		resultBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}
		fmt.Println(string(resultBytes))
		return nil
	}
	color.Magenta("Result:")
	fmt.Printf("  %v\n", result)
	return nil
}
