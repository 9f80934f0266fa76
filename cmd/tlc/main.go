package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/config"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/dataset"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/urlstate"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/version"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/viewerstate"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/views"
	"github.com/allen-cell-animated/timelapse-colorizer-sub000/pkg/watcher"
)

func usage() {
	fmt.Println("Usage: tlc <command> [options]")
	fmt.Println()
	fmt.Println("Inspect timelapse colorizer datasets and shareable view strings.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  inspect <dataset-dir>   Load a dataset and print its schema")
	fmt.Println("  decode <query>          Normalize a view string against a dataset")
	fmt.Println("  views <list|save|get|delete> [args]")
	fmt.Println("                          Manage saved views")
	fmt.Println("  watch <dataset-dir>     Watch a dataset manifest for changes")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Usage = usage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("tlc %s\n", version.Version)
		os.Exit(0)
	}
	if *help || flag.NArg() == 0 {
		usage()
		os.Exit(0)
	}

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "inspect":
		err = runInspect(flag.Args()[1:])
	case "decode":
		err = runDecode(flag.Args()[1:])
	case "views":
		err = runViews(flag.Args()[1:])
	case "watch":
		err = runWatch(flag.Args()[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runInspect loads a dataset directory and prints its schema.
func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	timeout := fs.Duration("timeout", 2*time.Minute, "Dataset load timeout")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tlc inspect <dataset-dir>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ds, err := dataset.Load(ctx, fs.Arg(0))
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	fmt.Printf("Dataset: %s\n", fs.Arg(0))
	fmt.Printf("  Objects:  %d\n", ds.NumObjects())
	fmt.Printf("  Frames:   %d\n", ds.Frames())
	fmt.Printf("  Channels: %d\n", ds.Channels())
	fmt.Printf("  Features:\n")
	for _, key := range ds.FeatureKeys() {
		f := ds.FeatureData(key)
		switch f.Type {
		case dataset.FeatureCategorical:
			fmt.Printf("    %-24s %s (%d categories)\n", key, f.Type, len(f.Categories))
		default:
			unit := f.Unit
			if unit == "" {
				unit = "-"
			}
			fmt.Printf("    %-24s %s [%g, %g] %s\n", key, f.Type, f.Min, f.Max, unit)
		}
	}
	if backdrops := ds.Backdrops(); len(backdrops) > 0 {
		fmt.Printf("  Backdrops:\n")
		for _, b := range backdrops {
			fmt.Printf("    %-24s %s\n", b.Key, b.Name)
		}
	}
	return nil
}

// runDecode applies a view string to a store and prints the canonical
// serialized form, optionally validating against a loaded dataset.
func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	dataDir := fs.String("data", "", "Dataset directory to validate against")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tlc decode [--data <dataset-dir>] <query>")
	}

	values, err := url.ParseQuery(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("parsing query: %w", err)
	}

	store := viewerstate.NewStore()
	if *dataDir != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		ds, err := dataset.Load(ctx, *dataDir)
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}
		gen := store.BeginDatasetLoad()
		store.CommitDataset(gen, filepath.Base(*dataDir), ds)
	}

	if loc := urlstate.ParseLocation(values); !loc.IsZero() {
		fmt.Printf("Location: collection=%q dataset=%q\n", loc.CollectionPath, loc.DatasetKey)
	}
	urlstate.Apply(values, store)

	canonical := urlstate.Serialize(store.Snapshot())
	keys := make([]string, 0, len(canonical))
	for k := range canonical {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, canonical.Get(k))
	}
	return nil
}

// runViews manages the saved-view database.
func runViews(args []string) error {
	fs := flag.NewFlagSet("views", flag.ExitOnError)
	dbPath := fs.String("db", config.ViewsPath(), "Saved views database path")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: tlc views <list|save|get|delete> [args]")
	}
	if *dbPath == "" {
		return fmt.Errorf("cannot determine views database path")
	}

	store, err := views.Open(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch sub := fs.Arg(0); sub {
	case "list":
		list, err := store.List()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No saved views.")
			return nil
		}
		for _, v := range list {
			fmt.Printf("%-24s %s\n", v.Name, v.UpdatedAt.Local().Format(time.DateTime))
		}
		return nil

	case "save":
		if fs.NArg() != 3 {
			return fmt.Errorf("usage: tlc views save <name> <query>")
		}
		values, err := url.ParseQuery(fs.Arg(2))
		if err != nil {
			return fmt.Errorf("parsing query: %w", err)
		}
		return store.Save(fs.Arg(1), values)

	case "get":
		if fs.NArg() != 2 {
			return fmt.Errorf("usage: tlc views get <name>")
		}
		v, err := store.Get(fs.Arg(1))
		if err != nil {
			return err
		}
		fmt.Println(v.Params.Encode())
		return nil

	case "delete":
		if fs.NArg() != 2 {
			return fmt.Errorf("usage: tlc views delete <name>")
		}
		return store.Delete(fs.Arg(1))

	default:
		return fmt.Errorf("unknown views subcommand: %s", sub)
	}
}

// runWatch watches a dataset manifest and prints change events until
// interrupted.
func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	poll := fs.Bool("poll", false, "Force polling mode")
	pollInterval := fs.Duration("poll-interval", watcher.DefaultPollInterval, "Polling interval")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tlc watch <dataset-dir>")
	}

	manifest := filepath.Join(fs.Arg(0), dataset.ManifestName)
	w, err := watcher.New(manifest,
		watcher.WithForcePoll(*poll),
		watcher.WithPollInterval(*pollInterval),
		watcher.WithOnError(func(err error) {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		}),
	)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	mode := "fsnotify"
	if w.IsPolling() {
		mode = "polling"
	}
	fmt.Printf("Watching %s (%s mode). Ctrl-C to stop.\n", w.Path(), mode)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-w.Changed():
			fmt.Printf("%s manifest changed\n", time.Now().Format(time.TimeOnly))
		case <-sigCh:
			fmt.Println("\nStopping.")
			return nil
		}
	}
}
