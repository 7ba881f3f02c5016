package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidyops/workmaid/constants/lipgloss"
)

// ErrInvalidConfig marks a configuration rejected before any phase runs.
var ErrInvalidConfig = errors.New("invalid configuration")

// Retention bounds for keep_days.
const (
	MinKeepDays = 1
	MaxKeepDays = 3650
)

// WorkspaceConfig describes how the workspace root is recognized and which
// paths the audit phase archives.
type WorkspaceConfig struct {
	MarkerDir    string   `mapstructure:"marker_dir"`
	ArchivePaths []string `mapstructure:"archive_paths"`
}

// ClassifierConfig holds the fixed names and suffixes that make an entry
// disposable.
type ClassifierConfig struct {
	CacheDirName string   `mapstructure:"cache_dir_name"`
	BackupSuffix string   `mapstructure:"backup_suffix"`
	LogExts      []string `mapstructure:"log_exts"`
	TempExts     []string `mapstructure:"temp_exts"`
}

// AuditConfig holds inventory settings.
type AuditConfig struct {
	HashExts []string `mapstructure:"hash_exts"`
}

// Config represents the structure of the configuration file. One immutable
// value is built per invocation and passed explicitly to every component.
type Config struct {
	Version     string            `mapstructure:"version"`
	Root        string            `mapstructure:"root"`
	AuditOnly   bool              `mapstructure:"audit_only"`
	StashOnly   bool              `mapstructure:"stash_only"`
	Purge       bool              `mapstructure:"purge"`
	KeepDays    int               `mapstructure:"keep_days"`
	IncludeLogs bool              `mapstructure:"include_logs"`
	IncludeTemp bool              `mapstructure:"include_temp"`
	Simulate    bool              `mapstructure:"simulate"`
	Force       bool              `mapstructure:"force"`
	ReportFile  string            `mapstructure:"report_file"`
	Workspace   *WorkspaceConfig  `mapstructure:"workspace"`
	Classifier  *ClassifierConfig `mapstructure:"classifier"`
	Audit       *AuditConfig      `mapstructure:"audit"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:  "1.2.0",
	KeepDays: 3,
	Workspace: &WorkspaceConfig{
		MarkerDir:    "app",
		ArchivePaths: []string{"app", "requirements.txt", "README.md"},
	},
	Classifier: &ClassifierConfig{
		CacheDirName: "__pycache__",
		BackupSuffix: ".bak",
		LogExts:      []string{".log"},
		TempExts:     []string{".tmp", ".temp"},
	},
	Audit: &AuditConfig{
		HashExts: []string{".py", ".txt", ".md", ".json", ".cfg", ".ini", ".toml", ".yaml", ".yml"},
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the workspace root
		viper.SetConfigName("workmaid-config")
		viper.AddConfigPath(cwd)

		// Support both YAML and JSON formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			// If YAML fails, try JSON
			viper.SetConfigType("json")
			// If both fail, we continue with defaults
			_ = viper.ReadInConfig()
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// Validate rejects configurations that must not reach any phase.
func (c *Config) Validate() error {
	if c.KeepDays < MinKeepDays || c.KeepDays > MaxKeepDays {
		return fmt.Errorf("%w: keep_days must be between %d and %d, got %d",
			ErrInvalidConfig, MinKeepDays, MaxKeepDays, c.KeepDays)
	}
	if c.AuditOnly && c.StashOnly {
		return fmt.Errorf("%w: audit-only and stash-only are mutually exclusive", ErrInvalidConfig)
	}
	if c.Workspace == nil || c.Workspace.MarkerDir == "" {
		return fmt.Errorf("%w: workspace.marker_dir must not be empty", ErrInvalidConfig)
	}
	if c.Classifier == nil || c.Classifier.CacheDirName == "" {
		return fmt.Errorf("%w: classifier.cache_dir_name must not be empty", ErrInvalidConfig)
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("keep_days", DefaultConfig.KeepDays)
	viper.SetDefault("workspace.marker_dir", DefaultConfig.Workspace.MarkerDir)
	viper.SetDefault("workspace.archive_paths", DefaultConfig.Workspace.ArchivePaths)
	viper.SetDefault("classifier.cache_dir_name", DefaultConfig.Classifier.CacheDirName)
	viper.SetDefault("classifier.backup_suffix", DefaultConfig.Classifier.BackupSuffix)
	viper.SetDefault("classifier.log_exts", DefaultConfig.Classifier.LogExts)
	viper.SetDefault("classifier.temp_exts", DefaultConfig.Classifier.TempExts)
	viper.SetDefault("audit.hash_exts", DefaultConfig.Audit.HashExts)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("keep_days", "WORKMAID_KEEP_DAYS")
	_ = viper.BindEnv("workspace.marker_dir", "WORKMAID_MARKER_DIR")
	_ = viper.BindEnv("classifier.cache_dir_name", "WORKMAID_CACHE_DIR_NAME")
	_ = viper.BindEnv("classifier.backup_suffix", "WORKMAID_BACKUP_SUFFIX")
	_ = viper.BindEnv("report_file", "WORKMAID_REPORT_FILE")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("audit_only", rootCmd.PersistentFlags().Lookup("audit-only"))
	_ = viper.BindPFlag("stash_only", rootCmd.PersistentFlags().Lookup("stash-only"))
	_ = viper.BindPFlag("purge", rootCmd.PersistentFlags().Lookup("purge"))
	_ = viper.BindPFlag("keep_days", rootCmd.PersistentFlags().Lookup("keep-days"))
	_ = viper.BindPFlag("include_logs", rootCmd.PersistentFlags().Lookup("include-logs"))
	_ = viper.BindPFlag("include_temp", rootCmd.PersistentFlags().Lookup("include-temp"))
	_ = viper.BindPFlag("simulate", rootCmd.PersistentFlags().Lookup("simulate"))
	_ = viper.BindPFlag("force", rootCmd.PersistentFlags().Lookup("force"))
	_ = viper.BindPFlag("report_file", rootCmd.PersistentFlags().Lookup("report-file"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("root", "", "Workspace root to maintain. Defaults to the current working directory.")
	rootCmd.PersistentFlags().Bool("audit-only", false, "Run only the audit phase (inventory snapshot).")
	rootCmd.PersistentFlags().Bool("stash-only", false, "Run only the stash phase (quarantine disposable artifacts).")
	rootCmd.PersistentFlags().Bool("purge", false, "Enable the retention purger. Deletion only ever happens with this flag.")
	rootCmd.PersistentFlags().Int("keep-days", DefaultConfig.KeepDays, fmt.Sprintf("Retention threshold in days for audit/stash folders (%d-%d).", MinKeepDays, MaxKeepDays))
	rootCmd.PersistentFlags().Bool("include-logs", false, "Treat log files as disposable during stash.")
	rootCmd.PersistentFlags().Bool("include-temp", false, "Treat temp files as disposable during stash.")
	rootCmd.PersistentFlags().Bool("simulate", false, "Dry run: report every decision but perform zero filesystem mutations.")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip the confirmation prompt before purging.")
	rootCmd.PersistentFlags().String("report-file", "", "Write the run report to this path as YAML.")
}
