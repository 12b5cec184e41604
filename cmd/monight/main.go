package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/studiowebux/monight/internal/cli"
	"github.com/studiowebux/monight/internal/config"
	"github.com/studiowebux/monight/internal/keybinds"
	"github.com/studiowebux/monight/internal/recents"
	"github.com/studiowebux/monight/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "monight [files...]",
	Short: "monight - terminal PDF reader",
	Long: `monight is a multi-tab PDF reader for the terminal.

Pass one or more PDF files to open them in tabs. When an instance is
already running, the files open there instead of starting a second UI.

Examples:
  monight                              # Start with an empty window
  monight report.pdf                   # Open one document
  monight a.pdf b.pdf c.pdf            # Open each in its own tab
  monight report.pdf --page 42         # Jump to a page after opening
  monight keybinds export              # Write the default keybind table
  monight recents list                 # Show recently opened documents`,
	Version: version,
	Args:    cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		if len(args) > 0 && cli.TryHandOff(args, flagPage) {
			fmt.Printf("Opened %d file(s) in the running instance\n", len(args))
			return nil
		}

		return tui.Run(tui.Options{
			Paths:   args,
			Page:    flagPage,
			DPR:     flagDPR,
			Version: version,
		})
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Inspect and manage keybind configuration",
}

var keybindsExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the default keybind table as an editable JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		} else {
			var err error
			path, err = keybinds.GetDefaultConfigPath()
			if err != nil {
				return err
			}
		}

		if err := keybinds.CreateExampleConfig(path); err != nil {
			return fmt.Errorf("failed to write keybinds: %w", err)
		}
		fmt.Printf("Wrote default keybinds to %s\n", path)
		return nil
	},
}

var keybindsValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check a keybind file for unknown actions and conflicts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := keybinds.LoadConfig(args[0])
		if err != nil {
			return err
		}

		v := keybinds.NewValidator(keybinds.IsMacPlatform())
		result := v.ValidateConfig(cfg)
		fmt.Print(result.String())

		if result.HasErrors() {
			return fmt.Errorf("%s has errors", args[0])
		}
		return nil
	},
}

var recentsCmd = &cobra.Command{
	Use:   "recents",
	Short: "Inspect the recently opened documents list",
}

var recentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recently opened documents, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openRecents()
		if err != nil {
			return err
		}
		defer mgr.Close()

		entries, err := mgr.List(flagLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No recent documents")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  %-30s page %s/%d  %s\n",
				e.LastOpened.Format("2006-01-02 15:04"),
				e.Title,
				strconv.Itoa(e.LastPage), e.Pages,
				e.Path)
		}
		return nil
	},
}

var recentsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the recently opened documents list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := openRecents()
		if err != nil {
			return err
		}
		defer mgr.Close()

		if err := mgr.Clear(); err != nil {
			return err
		}
		fmt.Println("Cleared recent documents")
		return nil
	},
}

// Flags for the root command
var (
	flagPage int
	flagDPR  float64
)

// Flags for recents list
var (
	flagLimit int
)

func init() {
	rootCmd.Flags().IntVar(&flagPage, "page", 0, "Jump to this page after opening")
	rootCmd.Flags().Float64Var(&flagDPR, "dpr", 0, "Override the device pixel ratio")

	recentsListCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Maximum entries to show")

	keybindsCmd.AddCommand(keybindsExportCmd)
	keybindsCmd.AddCommand(keybindsValidateCmd)
	recentsCmd.AddCommand(recentsListCmd)
	recentsCmd.AddCommand(recentsClearCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(recentsCmd)
}

// openRecents initializes the config paths and opens the recents database
func openRecents() (*recents.Manager, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return recents.NewManager(config.DatabasePath)
}
