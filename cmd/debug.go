package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harsift/harsift/internal/extractor"
	"github.com/harsift/harsift/internal/urlnorm"
)

const debugCandidateCap = 500

var debugCmd = &cobra.Command{
	Use:   "debug [file]",
	Short: "Debug information about scan patterns and raw candidates",
	Long: `Display the scan patterns, or dump every raw URL candidate a capture
yields next to its cleaned-up form, before any keyword filtering.

Useful for working out why an expected link is missing: if it shows up
here but not in extract output, the keywords are dropping it.

Examples:
  harsift debug --patterns
  harsift debug capture.har
  harsift debug --search invoice capture.har`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDebug,
}

var (
	debugListPatterns bool
	debugSearch       string
)

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.Flags().BoolVarP(&debugListPatterns, "patterns", "p", false, "list the scan patterns and exit")
	debugCmd.Flags().StringVarP(&debugSearch, "search", "s", "", "only show candidates containing this text (case-insensitive)")
}

func runDebug(cmd *cobra.Command, args []string) error {
	if debugListPatterns {
		listPatterns()
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a capture file, or --patterns to list scan patterns")
	}

	return dumpCandidates(args[0])
}

func listPatterns() {
	patterns := extractor.Patterns()

	fmt.Println("=== Scan Patterns ===")
	fmt.Printf("Found %d pattern(s):\n\n", len(patterns))

	for _, p := range patterns {
		fmt.Printf("📁 %s\n", p.Name)
		fmt.Printf("   Description: %s\n", p.Description)
		fmt.Printf("   Regex: %s\n", p.Regex.String())

		if len(p.Examples) > 0 {
			fmt.Printf("   Examples:\n")
			for _, ex := range p.Examples {
				fmt.Printf("     - %s\n", ex)
			}
		}
		fmt.Println()
	}
}

func dumpCandidates(filename string) error {
	candidates, err := rawCandidates(filename)
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", filename, err)
	}

	search := strings.ToLower(debugSearch)

	fmt.Printf("=== Raw Candidates: %s ===\n", filename)

	shown := 0
	for _, raw := range candidates {
		if search != "" && !strings.Contains(strings.ToLower(raw), search) {
			continue
		}

		if shown >= debugCandidateCap {
			fmt.Printf("... and more (use --search to narrow down)\n")
			break
		}
		shown++

		cleaned := urlnorm.Normalize(raw)
		status := "✅"
		if cleaned == "" {
			status = "❌"
			cleaned = "(rejected)"
		}

		fmt.Printf("%s %s\n", status, raw)
		if cleaned != raw {
			fmt.Printf("   → %s\n", cleaned)
		}
	}

	fmt.Printf("\nShowed %d of %d candidates\n", shown, len(candidates))

	return nil
}
