package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"chartspec/internal/builder"
	"chartspec/internal/crawler"
	"chartspec/internal/graph"
	"chartspec/internal/ir"
	"chartspec/internal/options"
	"chartspec/internal/storage"
	"chartspec/internal/validate"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	outPath   string
	pretty    bool
	save      bool
	xlsxPath  string
	sheetName string
)

func init() {
	buildCmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the spec to this file instead of stdout")
	buildCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the emitted JSON")
	buildCmd.Flags().BoolVar(&save, "save", false, "Record the build in the history database")
	buildCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Load the chart rows from a spreadsheet")
	buildCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read with --xlsx (default: first sheet)")

	scanCmd.Flags().BoolVar(&save, "save", false, "Record every build in the history database")
}

var buildCmd = &cobra.Command{
	Use:   "build <chart.yaml>",
	Short: "Compile a chart file into a spec",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		raw, chart := readChart(args[0], cfg, xlsxPath, sheetName)

		r, key := compile(chart)
		for _, err := range r.Skipped {
			pterm.Warning.Println(err.Error())
		}

		out, err := ir.Marshal(r.Spec, pretty)
		if err != nil {
			fatalf("Failed to encode spec: %v", err)
		}

		if save {
			store := initStore(cfg)
			defer store.Close()
			record(cmd.Context(), store, key, chart, raw, out, r)
			pterm.Success.Printf("Saved build %s\n", key[:12])
		}

		if outPath == "" {
			os.Stdout.Write(append(out, '\n'))
			return
		}
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			fatalf("Failed to write %s: %v", outPath, err)
		}
		pterm.Success.Printf("Spec written to %s\n", outPath)
	},
}

var schemaPath string

func init() {
	validateCmd.Flags().StringVar(&schemaPath, "schema", "", "Validate against this JSON Schema instead of the builtin one")
}

var validateCmd = &cobra.Command{
	Use:   "validate <spec.json>",
	Short: "Validate an emitted spec against a JSON Schema",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := os.ReadFile(args[0])
		if err != nil {
			fatalf("Failed to read %s: %v", args[0], err)
		}

		var schema *validate.Schema
		if schemaPath != "" {
			schema, err = validate.LoadSchema(schemaPath)
		} else {
			schema, err = validate.Builtin()
		}
		if err != nil {
			fatalf("Failed to load schema: %v", err)
		}

		if err := schema.Validate(doc); err != nil {
			fatalf("%s is invalid: %v", args[0], err)
		}
		pterm.Success.Printf("%s is valid\n", args[0])
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Compile every *.chart.yaml below a directory",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		cfg := loadConfig()
		cache, err := builder.NewCache(cfg.Cache.Size)
		if err != nil {
			fatalf("%v", err)
		}

		var store *storage.SQLiteStore
		if save {
			store = initStore(cfg)
			defer store.Close()
		}

		pterm.Info.Printf("Scanning directory: %s\n", root)
		data := pterm.TableData{{"File", "Chart", "Marks", "Skipped", "Digest"}}
		failed := 0
		cr := crawler.NewCrawler()
		err = cr.ScanDir(root, func(path string, chart options.ChartOptions) {
			r, key, err := cache.Build(chart)
			if err != nil {
				pterm.Error.Printf("%s: %v\n", path, err)
				failed++
				return
			}
			rel, _ := filepath.Rel(root, path)
			data = append(data, []string{rel, chart.Name, strconv.Itoa(len(r.Spec.Marks)), strconv.Itoa(len(r.Skipped)), key[:12]})
			if store != nil {
				raw, _ := os.ReadFile(path)
				out, err := ir.Marshal(r.Spec, false)
				if err != nil {
					pterm.Error.Printf("%s: %v\n", path, err)
					return
				}
				record(cmd.Context(), store, key, chart, raw, out, r)
			}
		}, func(path string, err error) {
			pterm.Error.Printf("%v\n", err)
			failed++
		})
		if err != nil {
			fatalf("Scan failed: %v", err)
		}

		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		pterm.Info.Printf("%d charts compiled, %d failed\n", len(data)-1, failed)
	},
}

// compile builds chart once. The digest is the history key.
func compile(chart options.ChartOptions) (builder.Result, string) {
	key, err := builder.Digest(chart)
	if err != nil {
		fatalf("Failed to build: %v", err)
	}
	return builder.Build(chart), key
}

func record(ctx context.Context, store storage.Store, key string, chart options.ChartOptions, raw, out []byte, r builder.Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	b := storage.Build{
		ID:      key,
		Chart:   chart.Name,
		Options: raw,
		Spec:    out,
		Skipped: len(r.Skipped),
	}
	if err := store.SaveBuild(ctx, b); err != nil {
		fatalf("Failed to save build: %v", err)
	}
	if err := store.SaveGraph(ctx, key, graph.FromSpec(r.Spec)); err != nil {
		fatalf("Failed to save graph: %v", err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
