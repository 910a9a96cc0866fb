package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pystart/internal/app"
	"pystart/internal/bootstrap"
	"pystart/internal/catalog"
	"pystart/internal/config"
	"pystart/internal/logging"
)

var (
	version    = "0.1.0"
	cfgFile    string
	pythonBin  string
	runDir     string
	runLibs    string
	categories []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pystart",
		Short: "Bootstrap Python project workspaces",
		Long: `Pystart sets up a new Python project folder: it creates a virtual
environment, upgrades pip, creates a src folder and installs the libraries
you pick from a categorized catalog, reporting progress in a live log panel.`,
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/pystart/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&pythonBin, "python", "", "python interpreter used to create the venv (default is python3)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a setup without the TUI",
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&runDir, "dir", "", "target project directory (falls back to PYSTART_DIR)")
	runCmd.Flags().StringVar(&runLibs, "libs", "", "comma separated libraries to install")
	runCmd.Flags().StringSliceVar(&categories, "category", nil, "install every library of a catalog category (repeatable)")
	rootCmd.AddCommand(runCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "catalog",
		Short: "Print the library catalog",
		Run: func(cmd *cobra.Command, args []string) {
			printCatalog()
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pystart version %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Version = version

	if pythonBin != "" {
		cfg.Setup.Python = pythonBin
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Logging.File {
		if err := os.MkdirAll(config.ConfigDir(), 0700); err == nil {
			// Best effort; the TUI works without a log file.
			_ = logging.EnableFileLogging(config.ConfigDir(), logging.ParseLevel(cfg.Logging.Level))
		}
	}
	defer logging.Close()

	initialDir := cfg.Setup.DefaultDir
	if initialDir == "" {
		initialDir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	application, err := app.New(cfg, initialDir)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return application.Run()
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logging.Configure(logging.ParseLevel(cfg.Logging.Level), os.Stderr)

	if runDir == "" {
		runDir = cfg.Setup.DefaultDir
	}
	if runDir == "" {
		return fmt.Errorf("no target directory: pass --dir or set PYSTART_DIR")
	}

	cat := cfg.EffectiveCatalog()
	var selected []string
	for _, want := range categories {
		found := false
		for _, c := range cat.Categories {
			if !strings.EqualFold(c.Name, want) {
				continue
			}
			found = true
			for _, lib := range c.Libraries {
				selected = append(selected, lib.Name)
			}
		}
		if !found {
			return fmt.Errorf("unknown catalog category %q", want)
		}
	}

	req := bootstrap.Request{
		TargetDir: runDir,
		Selected:  selected,
		Custom:    catalog.ParseCustom(runLibs),
	}
	return app.RunHeadless(context.Background(), cfg, req, os.Stdout)
}

func printCatalog() {
	cat := catalog.Default()
	for _, c := range cat.Categories {
		fmt.Println(c.Name)
		for _, lib := range c.Libraries {
			mark := " "
			if lib.Default {
				mark = "*"
			}
			fmt.Printf("  %s %s\n", mark, lib.Name)
		}
	}
	fmt.Println("\n* installed by default")
}
