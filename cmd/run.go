package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/tidyops/workmaid/config"
	"github.com/tidyops/workmaid/constants/lipgloss"
	"github.com/tidyops/workmaid/maintenance"
	"github.com/tidyops/workmaid/maintenance/models"
	"github.com/tidyops/workmaid/utils"
	"gopkg.in/yaml.v3"
)

// handleRunCommand drives the phases and owns all console interaction; the
// orchestrator itself never prints.
func handleRunCommand(rootDependencies *RootDependencies) error {
	cfg := rootDependencies.Config

	// Purge enablement is settled before anything downstream is built, so the
	// configuration the orchestrator sees never changes afterwards.
	if err := resolvePurge(cfg, bufio.NewReader(os.Stdin)); err != nil {
		return err
	}

	orchestrator := maintenance.NewOrchestrator(rootDependencies.Root, cfg, rootDependencies.Mutator)

	var report *models.RunReport
	var runErr error

	if cfg.Simulate {
		fmt.Println(lipgloss.BoxStyle.Render("Simulation mode: no filesystem mutations will be performed"))
		orchestrator.Status = func(msg string) {
			fmt.Println(lipgloss.BlueSky.Render("-- " + msg))
		}
		report, runErr = orchestrator.Run()
	} else {
		spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
			WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
			WithDelay(100).WithRemoveWhenDone(true)

		spinnerInstance, _ := spinner.Start("Validating workspace...")
		orchestrator.Status = func(msg string) {
			spinnerInstance.UpdateText(msg + "...")
		}
		report, runErr = orchestrator.Run()
		spinnerInstance.Stop()
		fmt.Print("\r")
	}

	if report != nil {
		printSummary(report)

		if cfg.ReportFile != "" {
			if err := writeReportFile(cfg.ReportFile, report); err != nil {
				if runErr == nil {
					runErr = err
				} else {
					fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
				}
			} else {
				fmt.Println(lipgloss.Gray.Render("Report written to " + cfg.ReportFile))
			}
		}
	}

	if runErr == nil {
		fmt.Println(lipgloss.Green.Render("Workspace maintenance complete."))
	}

	return runErr
}

// resolvePurge confirms destructive deletion up front. A declined
// confirmation disables the phase for the whole run; a simulated purge
// deletes nothing, so it never prompts.
func resolvePurge(cfg *config.Config, in *bufio.Reader) error {
	if !cfg.Purge || cfg.Force || cfg.Simulate {
		return nil
	}

	message := fmt.Sprintf("Permanently delete audit/stash folders older than %d day(s)?", cfg.KeepDays)
	confirmed, err := utils.ConfirmPrompt(message, in)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println(lipgloss.Yellow.Render("Purge cancelled."))
		cfg.Purge = false
	}
	return nil
}

// printSummary renders the end-of-run box: artifact folders created, items
// moved, folders purged.
func printSummary(report *models.RunReport) {
	var lines []string

	mode := ""
	if report.Simulated {
		mode = " (simulated)"
	}
	lines = append(lines, lipgloss.Info.Render(fmt.Sprintf("Workspace: %s%s", report.Root, mode)))
	lines = append(lines, "Run ID: "+report.RunID)

	if report.Snapshot != nil {
		lines = append(lines, fmt.Sprintf("Audit snapshot: %s", report.Snapshot.Dir))
		lines = append(lines, fmt.Sprintf("  %d files, %d hashed, %d duplicate group(s)",
			report.Snapshot.FileCount, report.Snapshot.HashCount, report.Snapshot.DuplicateGroups))
		if len(report.Snapshot.UnreadablePaths) > 0 {
			lines = append(lines, fmt.Sprintf("  %d unreadable file(s) skipped", len(report.Snapshot.UnreadablePaths)))
		}
	}

	if report.StashDir != "" {
		lines = append(lines, fmt.Sprintf("Stash folder: %s", report.StashDir))
	}
	lines = append(lines, fmt.Sprintf("Items moved: %d", report.MovedCount))
	failed := len(report.Moves) - report.MovedCount
	if failed > 0 {
		lines = append(lines, fmt.Sprintf("Failed moves: %d", failed))
	}

	if report.PurgeResult != nil {
		lines = append(lines, fmt.Sprintf("Folders purged: %d", report.PurgeResult.RemovedCount))
		for _, failure := range report.PurgeResult.Failures {
			lines = append(lines, "  purge failed: "+failure)
		}
	}

	fmt.Println(lipgloss.BoxStyle.Render(strings.Join(lines, "\n")))
}

// writeReportFile serialises the run report as YAML. The report is operator
// output, not a workspace mutation, so it is written even in simulation.
func writeReportFile(path string, report *models.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}
	return nil
}
