package main

import (
	"fmt"
	"os"

	"chartspec/internal/config"
	"chartspec/internal/options"
	"chartspec/internal/storage"
	"chartspec/internal/tabular"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "chartspec",
		Short: "Compile chart options into visualization specs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initTracing(traceLevel)
		},
	}
	configPath string
	dbPath     string
	traceLevel string
)

// packages that trace through schuko
var traceKeys = []string{
	"chartspec.builder", "chartspec.bar", "chartspec.line", "chartspec.legend",
	"chartspec.axis", "chartspec.scale", "chartspec.signal", "chartspec.dataset",
	"chartspec.trendline", "chartspec.crawler",
}

func main() {
	initDisplay()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "chartspec.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the build history database (SQLite)")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "Error", "Trace level [Debug|Info|Error]")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(diffCmd)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func initTracing(level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		pterm.Error.Printf("error configuring tracing: %v\n", err)
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func fatalf(format string, args ...any) {
	pterm.Error.Printf(format+"\n", args...)
	os.Exit(1)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
	}
	return cfg
}

// initStore opens the build history named by the configuration.
func initStore(cfg *config.Config) *storage.SQLiteStore {
	store, err := storage.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		fatalf("Failed to initialize database: %v", err)
	}
	return store
}

// readChart decodes a chart file and fills what it leaves open from the
// configuration. Rows from a spreadsheet replace inline data.
func readChart(path string, cfg *config.Config, xlsx, sheet string) ([]byte, options.ChartOptions) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fatalf("Failed to read %s: %v", path, err)
	}
	chart, err := options.Decode(raw)
	if err != nil {
		fatalf("%v", err)
	}
	if chart.ColorScheme == "" {
		chart.ColorScheme = cfg.Chart.ColorScheme
	}
	if chart.Locale == "" {
		chart.Locale = cfg.Chart.Locale
	}
	chart.Strict = chart.Strict || cfg.Chart.Strict
	if xlsx != "" {
		rows, err := tabular.LoadXLSX(xlsx, sheet)
		if err != nil {
			fatalf("Failed to load data: %v", err)
		}
		chart.Values = rows
	}
	return raw, chart
}
