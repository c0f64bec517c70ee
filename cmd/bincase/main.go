package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/retroware/bincase/pkg/logging"
	"github.com/retroware/bincase/pkg/project"
	"github.com/retroware/bincase/pkg/project/format"
	"github.com/retroware/bincase/pkg/symbols"
)

const version = "0.2.0"

var (
	logLevel    string
	dataPath    string
	outputPath  string
	rootCmd     *cobra.Command
	versionFlag bool
)

func newLogger() hclog.Logger {
	level := logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	return logging.NewLogger("bincase", level, os.Stderr)
}

// loadForCommand loads a project file and optionally verifies the backing
// blob's identity against it.
func loadForCommand(path string, logger hclog.Logger) (*project.Project, *format.Report, error) {
	p := &project.Project{}
	rep, err := format.LoadWithLogger(path, p, logger)
	if err != nil {
		return nil, rep, err
	}
	if dataPath != "" {
		data, err := os.ReadFile(dataPath)
		if err != nil {
			return nil, rep, fmt.Errorf("reading data file: %w", err)
		}
		if !p.MatchesData(data) {
			rep.Add(format.SevError, "dataFile", dataPath,
				"length or CRC-32 does not match the project's stored identity")
		}
	}
	return p, rep, nil
}

func runInfo(cmd *cobra.Command, args []string) {
	logger := newLogger()
	p, rep, err := loadForCommand(args[0], logger)
	if err != nil {
		logger.Error("load failed", "path", args[0], "error", err)
		renderReport(os.Stdout, rep)
		os.Exit(1)
	}
	renderInfo(os.Stdout, args[0], p)
	renderReport(os.Stdout, rep)
}

func runValidate(cmd *cobra.Command, args []string) {
	logger := newLogger()
	_, rep, err := loadForCommand(args[0], logger)
	if err != nil {
		logger.Error("load failed", "path", args[0], "error", err)
		renderReport(os.Stdout, rep)
		os.Exit(1)
	}
	renderReport(os.Stdout, rep)
	if rep.HasProblems() {
		os.Exit(1)
	}
	fmt.Println("project file is valid")
}

func runResave(cmd *cobra.Command, args []string) {
	logger := newLogger()
	p, rep, err := loadForCommand(args[0], logger)
	if err != nil {
		logger.Error("load failed", "path", args[0], "error", err)
		renderReport(os.Stdout, rep)
		os.Exit(1)
	}
	renderReport(os.Stdout, rep)

	dest := outputPath
	if dest == "" {
		dest = args[0]
	}
	if err := format.SaveWithLogger(p, dest, logger); err != nil {
		logger.Error("save failed", "path", dest, "error", err)
		os.Exit(1)
	}
	fmt.Printf("re-saved project to %s\n", dest)
}

func runSymbols(cmd *cobra.Command, args []string) {
	logger := newLogger()
	platform, syms, err := symbols.LoadPlatformFile(args[0], logger)
	if err != nil {
		logger.Error("load failed", "path", args[0], "error", err)
		os.Exit(1)
	}
	renderSymbols(os.Stdout, platform, syms)
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "bincase",
		Short: "Inspect and maintain bincase project files",
		Long:  `Inspect and maintain bincase project files`,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to the backing binary; verifies length and CRC-32")
	rootCmd.PersistentFlags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	infoCmd := &cobra.Command{
		Use:   "info <project-file>",
		Short: "Show identity, version and collection counts",
		Args:  cobra.ExactArgs(1),
		Run:   runInfo,
	}
	validateCmd := &cobra.Command{
		Use:   "validate <project-file>",
		Short: "Load a project file and report every issue found",
		Args:  cobra.ExactArgs(1),
		Run:   runValidate,
	}
	resaveCmd := &cobra.Command{
		Use:   "resave <project-file>",
		Short: "Load then save a project file, normalizing and migrating it",
		Args:  cobra.ExactArgs(1),
		Run:   runResave,
	}
	resaveCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination path (defaults to the input file)")

	symbolsCmd := &cobra.Command{
		Use:   "symbols <platform-symbol-file>",
		Short: "List the symbols defined by a platform symbol file",
		Args:  cobra.ExactArgs(1),
		Run:   runSymbols,
	}

	rootCmd.AddCommand(infoCmd, validateCmd, resaveCmd, symbolsCmd)
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("bincase %s\n", version)
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
