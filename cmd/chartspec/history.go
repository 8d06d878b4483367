package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"chartspec/internal/analysis"
	"chartspec/internal/graph"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [chart]",
	Short: "List recorded builds, newest first",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		chart := ""
		if len(args) > 0 {
			chart = args[0]
		}
		store := initStore(loadConfig())
		defer store.Close()

		builds, err := store.ListBuilds(context.Background(), chart)
		if err != nil {
			fatalf("Failed to list builds: %v", err)
		}
		if len(builds) == 0 {
			pterm.Info.Println("No builds recorded.")
			return
		}

		data := pterm.TableData{{"Digest", "Chart", "Created", "Skipped", "Bytes"}}
		for _, b := range builds {
			data = append(data, []string{
				b.ID[:min(12, len(b.ID))], b.Chart, b.CreatedAt.Format("2006-01-02 15:04:05"),
				strconv.Itoa(b.Skipped), strconv.Itoa(len(b.Spec)),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var (
	buildID string
	fenced  bool
)

func init() {
	graphCmd.Flags().StringVar(&buildID, "id", "", "Load the graph of a recorded build instead of compiling a chart file")
	graphCmd.Flags().BoolVar(&fenced, "fenced", false, "Wrap the diagram in a markdown code fence")
}

var graphCmd = &cobra.Command{
	Use:   "graph [chart.yaml]",
	Short: "Print the reference graph of a spec as a Mermaid diagram",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		var g *graph.Graph
		switch {
		case buildID != "":
			store := initStore(cfg)
			defer store.Close()
			ctx := context.Background()
			if _, err := store.GetBuild(ctx, buildID); err != nil {
				if isNotFound(err) {
					fatalf("No build with id %s", buildID)
				}
				fatalf("Failed to load build: %v", err)
			}
			loaded, err := store.LoadGraph(ctx, buildID)
			if err != nil {
				fatalf("Failed to load graph: %v", err)
			}
			g = loaded
		case len(args) == 1:
			_, chart := readChart(args[0], cfg, "", "")
			r, _ := compile(chart)
			g = graph.FromSpec(r.Spec)
		default:
			fatalf("graph needs a chart file or --id")
		}

		for reason, n := range g.UnresolvedReasonCounts() {
			pterm.Warning.Printf("%d unresolved references (%s)\n", n, reason)
		}
		fmt.Fprintln(os.Stdout, graph.Mermaid(g, fenced))
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <before-id> <after-id>",
	Short: "Report which IR artifacts changed between two recorded builds",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		store := initStore(loadConfig())
		defer store.Close()
		ctx := context.Background()

		before, err := store.LoadGraph(ctx, args[0])
		if err != nil {
			fatalf("Failed to load graph %s: %v", args[0], err)
		}
		after, err := store.LoadGraph(ctx, args[1])
		if err != nil {
			fatalf("Failed to load graph %s: %v", args[1], err)
		}

		changed := analysis.Changed(before, after)
		if len(changed) == 0 {
			pterm.Success.Println("No changes detected.")
			return
		}
		pterm.Info.Printf("Detected %d changed artifacts.\n", len(changed))

		report := analysis.NewAnalyzer(after).AnalyzeImpact(changed)
		data := pterm.TableData{{"Artifact", "Impact"}}
		for _, n := range report.DirectlyAffected {
			data = append(data, []string{n.ID, "changed"})
		}
		for _, id := range report.Missing {
			data = append(data, []string{id, "removed"})
		}
		for _, n := range report.IndirectlyAffected {
			data = append(data, []string{n.ID, "dependent"})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}
