// assetprobe runs a single asset query through the daemon's aggregation
// pipeline and prints the result, bypassing the session layer. Useful for
// poking at the fetchers without a WebSocket client.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hkanpak21/StellarAW/internal/app"
	"github.com/hkanpak21/StellarAW/internal/info"
	"github.com/hkanpak21/StellarAW/internal/infra"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the daemon config file")
	asJSON := flag.Bool("json", false, "print the raw aggregated report as JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: assetprobe [-config path] [-json] <asset query>")
		os.Exit(2)
	}
	query := flag.Arg(0)

	cfg, err := infra.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	pipeline := app.BuildPipeline(cfg)

	reply, err := pipeline.GetAssetInfo(context.Background(), query)
	if err != nil {
		if errors.Is(err, info.ErrAssetNotFound) {
			fmt.Fprintf(os.Stderr, "asset not found: %s\n", query)
		} else {
			fmt.Fprintf(os.Stderr, "lookup failed: %v\n", err)
		}
		os.Exit(1)
	}

	if *asJSON {
		out, _ := json.MarshalIndent(reply, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Printf("=== %s ===\n\n", reply.Asset)
	fmt.Println(reply.Report)
	fmt.Println()
	if reply.Partial {
		fmt.Println("⚠️  Partial result: one or more data sources were unavailable.")
	}
	fmt.Println("Sources:")
	for _, src := range reply.Sources {
		fmt.Printf("  - %s\n", src)
	}
}
