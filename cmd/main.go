package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tmoretti/depot/config"
	"github.com/tmoretti/depot/repository"
	"github.com/tmoretti/depot/repository/file"
	"github.com/tmoretti/depot/transfer"
)

var rootCmd = &cobra.Command{
	Use:   "depot",
	Short: "depot - filesystem-backed artifact repository",
	Long: `depot moves artifacts to and from a repository rooted at an ordinary
filesystem directory, using the same provider contract a transfer
orchestrator would use for remote protocols.`,
}

var getCmd = &cobra.Command{
	Use:   "get <resource> [local-file]",
	Short: "Fetch a resource from the repository",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runGet,
}

var putCmd = &cobra.Command{
	Use:   "put <local-file> <resource>",
	Short: "Store a local file in the repository",
	Args:  cobra.ExactArgs(2),
	RunE:  runPut,
}

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "List the immediate children of a repository directory",
	Long:  "List the immediate children of a repository directory. Subdirectories are suffixed with \"/\".",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLs,
}

var existsCmd = &cobra.Command{
	Use:   "exists <name>",
	Short: "Check whether a resource exists",
	Long:  "Check whether a resource exists. A name ending in \"/\" matches only a directory.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExists,
}

var putDirCmd = &cobra.Command{
	Use:   "put-dir <source-dir> [dest-dir]",
	Short: "Copy a local directory tree into the repository",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runPutDir,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long:  "Validate the depot configuration and display the loaded settings",
	RunE:  validateConfig,
}

var (
	configFilePath string
	baseDirFlag    string
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&baseDirFlag, "basedir", "d", "", "Repository base directory (overrides configuration)")

	configCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(getCmd, putCmd, lsCmd, existsCmd, putDirCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// session loads configuration, builds the logger, and opens a connected
// provider for a single command invocation.
func session() (*file.Provider, *transfer.Client, *zap.Logger, error) {
	cfg, err := config.LoadConfigFromFile(configFilePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if baseDirFlag != "" {
		cfg.Repository.BaseDir = baseDirFlag
	}

	logger, err := initializeLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	provider := file.NewProvider(&repository.Repository{BaseDir: cfg.Repository.BaseDir}, logger)
	if err := provider.Connect(context.Background()); err != nil {
		return nil, nil, nil, err
	}

	return provider, transfer.NewClient(provider, logger), logger, nil
}

func runGet(cmd *cobra.Command, args []string) error {
	provider, client, logger, err := session()
	if err != nil {
		return err
	}
	defer closeSession(provider, logger)

	resource := args[0]
	localPath := filepath.Base(resource)
	if len(args) == 2 {
		localPath = args[1]
	}

	return client.GetFile(context.Background(), resource, localPath)
}

func runPut(cmd *cobra.Command, args []string) error {
	provider, client, logger, err := session()
	if err != nil {
		return err
	}
	defer closeSession(provider, logger)

	return client.PutFile(context.Background(), args[0], args[1])
}

func runLs(cmd *cobra.Command, args []string) error {
	provider, _, logger, err := session()
	if err != nil {
		return err
	}
	defer closeSession(provider, logger)

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	list, err := provider.FileList(context.Background(), dir)
	if err != nil {
		return err
	}
	for _, name := range list {
		fmt.Println(name)
	}
	return nil
}

func runExists(cmd *cobra.Command, args []string) error {
	provider, _, logger, err := session()
	if err != nil {
		return err
	}
	defer closeSession(provider, logger)

	ok, err := provider.ResourceExists(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(ok)
	return nil
}

func runPutDir(cmd *cobra.Command, args []string) error {
	provider, _, logger, err := session()
	if err != nil {
		return err
	}
	defer closeSession(provider, logger)

	dest := "."
	if len(args) == 2 {
		dest = args[1]
	}

	return provider.PutDirectory(context.Background(), args[0], dest)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigFromFile(configFilePath)
	if err != nil {
		return err
	}

	fmt.Println("Configuration is valid")
	fmt.Printf("  repository.base_dir: %q\n", cfg.Repository.BaseDir)
	fmt.Printf("  log.level:           %s\n", cfg.Log.Level)
	fmt.Printf("  log.format:          %s\n", cfg.Log.Format)
	return nil
}

func closeSession(provider *file.Provider, logger *zap.Logger) {
	if err := provider.Disconnect(); err != nil {
		logger.Error("Failed to disconnect", zap.Error(err))
	}
	if err := logger.Sync(); err != nil {
		// Log to stderr since the logger may not be working
		fmt.Fprintf(os.Stderr, "Failed to sync logger: %v\n", err)
	}
}

// initializeLogger creates a zap logger based on configuration
func initializeLogger(logCfg config.LogConfig) (*zap.Logger, error) {
	var cfg zap.Config

	if logCfg.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	switch logCfg.Level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return cfg.Build()
}
