// Package main is the replkit demonstration interpreter: the framework's
// builtin command set wired to a readline-backed terminal session.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"replkit/internal/commands/builtin"
	"replkit/internal/engine"
	"replkit/internal/lineio"
	"replkit/internal/logger"
	"replkit/internal/output"
	"replkit/internal/version"
	"replkit/pkg/repltypes"
)

var (
	logLevel    string
	logFile     string
	testMode    bool
	historyFile string
	rcFiles     []string
	topicsFile  string
	scriptFile  string
)

var rootCmd = &cobra.Command{
	Use:   "replkit",
	Short: "replkit - a line-oriented command interpreter",
	Long: `replkit is a framework for building line-oriented command interpreters.
This binary runs the demonstration shell built on it: readline editing,
history, tab completion, help, and the builtin command set.`,
	Run: runShell,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell (default)",
	Run:   runShell,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.Formatted())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")
	rootCmd.PersistentFlags().StringVar(&historyFile, "history-file", defaultHistoryPath(), "History file path (empty to disable)")
	rootCmd.PersistentFlags().StringArrayVar(&rcFiles, "rcfile", defaultRCPaths(), "RC file to load; repeatable, later files override earlier")
	rootCmd.PersistentFlags().StringVar(&topicsFile, "topics", "", "YAML file of supplemental help topics")
	rootCmd.PersistentFlags().StringVar(&scriptFile, "script", "", "Run the lines of this file instead of reading the terminal")

	for _, flag := range []string{"log-level", "log-file", "test-mode", "history-file", "topics", "script"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(logLevel, logFile, testMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("starting replkit", "version", version.Version)

	// A local .env seeds the shell's instance environment. Absence is
	// fine; the shell starts empty.
	seed, err := godotenv.Read()
	if err != nil {
		seed = map[string]string{}
	}

	reader, err := newReader()
	if err != nil {
		logger.Fatal("could not initialize line reader", "error", err)
	}
	defer func() { _ = reader.Close() }()

	printerOpts := []output.Option{}
	if testMode {
		printerOpts = append(printerOpts, output.PlainText())
	}

	sh, err := engine.New(
		repltypes.Options{
			repltypes.OptHistoryFile: historyFile,
			repltypes.OptRCFiles:     rcFiles,
		},
		engine.WithReader(reader),
		engine.WithSink(output.NewPrinter(printerOpts...)),
		engine.WithCommands(builtin.All(reader)...),
		engine.WithEnviron(seed),
		engine.WithIntro(fmt.Sprintf("%s — type 'help' for topics, 'quit' to leave.", version.Formatted())),
		engine.WithHooks(engine.Hooks{
			Outro: func() string { return "goodbye" },
		}),
	)
	if err != nil {
		logger.Fatal("could not construct shell", "error", err)
	}

	if topicsFile != "" {
		if err := sh.Help().LoadTopicsFile(topicsFile); err != nil {
			logger.Warn("could not load help topics", "error", err)
		}
	}

	if rl, ok := reader.(*lazyReadline); ok {
		rl.bind(sh)
	}

	if err := sh.Run(); err != nil {
		logger.Fatal("shell terminated abnormally", "error", err)
	}
}

// newReader picks the line reader: a script reader when --script is
// given, otherwise the readline terminal reader.
func newReader() (repltypes.LineReader, error) {
	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			return nil, err
		}
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		return lineio.NewScriptReader(lines), nil
	}
	return newLazyReadline(historyFile)
}

// lazyReadline defers completion candidates until the shell exists, since
// the reader must be constructed before the shell that owns the registry.
type lazyReadline struct {
	*lineio.ReadlineReader
	sh *engine.Shell
}

func newLazyReadline(historyFile string) (*lazyReadline, error) {
	lr := &lazyReadline{}
	rl, err := lineio.NewReadline(historyFile, lr.completions)
	if err != nil {
		return nil, err
	}
	lr.ReadlineReader = rl
	return lr, nil
}

func (l *lazyReadline) bind(sh *engine.Shell) { l.sh = sh }

func (l *lazyReadline) completions() []string {
	if l.sh == nil {
		return nil
	}
	// Special routes complete alongside registered commands.
	return append(l.sh.Registry().Completions(), "help", "quit", "exit")
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.replkit_history"
}

func defaultRCPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{home + "/.replkitrc", ".replkitrc"}
}
