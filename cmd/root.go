package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tidyops/workmaid/config"
	"github.com/tidyops/workmaid/constants/lipgloss"
	"github.com/tidyops/workmaid/maintenance"
	"github.com/tidyops/workmaid/maintenance/contracts"
)

// RootDependencies holds everything a run needs; built once per invocation.
// The orchestrator itself is constructed later, once the run configuration is
// final.
type RootDependencies struct {
	Root    string
	Config  *config.Config
	Mutator contracts.IFileMutator
}

var rootCmd = &cobra.Command{
	Use:   "workmaid",
	Short: "Workspace maintenance: audit, stash, and purge housekeeping artifacts.",
	Long: `workmaid keeps a project workspace tidy without risking data loss.

It runs up to three phases, always in this order:
  audit  - snapshot the workspace: file inventory, content hashes, source archive
  stash  - move disposable artifacts (caches, backup files) into a quarantine folder
  purge  - delete audit/stash folders older than the retention threshold

Nothing is ever permanently deleted unless --purge is given, and --simulate
previews any run without touching the filesystem.

Examples:
  workmaid                        # audit then stash
  workmaid --audit-only           # inventory snapshot only
  workmaid --simulate             # preview without mutations
  workmaid --purge --keep-days 7  # also delete artifact folders older than 7 days`,
	Version:       config.DefaultConfig.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		return handleRunCommand(rootDependencies)
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// handleRootCommand resolves the workspace root, loads the run configuration,
// and selects the mutator (real or dry-run) injected into every component.
func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		root = cwd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	cfg := config.LoadConfigs(cmd, root)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var mutator contracts.IFileMutator
	if cfg.Simulate {
		mutator = &maintenance.DryRunFileMutator{}
	} else {
		mutator = maintenance.OSFileMutator{}
	}

	return &RootDependencies{
		Root:    root,
		Config:  cfg,
		Mutator: mutator,
	}, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
