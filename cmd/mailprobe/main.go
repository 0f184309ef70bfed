package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"mailprobe/pkg/analytics"
	"mailprobe/pkg/charts"
	"mailprobe/pkg/classify"
	"mailprobe/pkg/config"
	"mailprobe/pkg/corpus"
	"mailprobe/pkg/reddit"
	"mailprobe/pkg/report"
	"mailprobe/pkg/store"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"MAILPROBE_CONFIG" default:"mailprobe.yml" description:"config file"`

	Collect CollectCommand `command:"collect" description:"collect posts for the configured searches"`
	Analyze AnalyzeCommand `command:"analyze" description:"analyze a corpus file and generate the report"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// CollectCommand runs the collection pass and exports the corpus snapshot
type CollectCommand struct {
	Out string `short:"o" long:"out" description:"corpus CSV path (default: timestamped name)"`
}

// AnalyzeCommand runs the analysis pass over a corpus file
type AnalyzeCommand struct {
	Input    string `short:"i" long:"input" default:"corpus.csv" description:"corpus CSV file to analyze"`
	KeepAll  bool   `long:"keep-all" description:"skip relevance filtering, analyze every post"`
	NoCharts bool   `long:"no-charts" description:"skip chart rendering"`
}

var revision = "unknown"

var opts Opts

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		setupLog(opts.Debug)
		log.Printf("[INFO] starting mailprobe version %s", revision)
		return command.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		if opts.Version {
			fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// Execute runs the collection pass. An interrupt mid-run still persists and
// exports everything collected so far.
func (cmd *CollectCommand) Execute(_ []string) error {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	st, err := store.New(store.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("open corpus store: %w", err)
	}
	defer st.Close() //nolint:errcheck // nothing to do on close failure

	client := reddit.New(reddit.Config{
		BaseURL:   cfg.Source.BaseURL,
		UserAgent: cfg.Source.UserAgent,
		Timeout:   cfg.Source.Timeout,
		RateLimit: cfg.Source.RateLimit,
		Limit:     cfg.Source.Limit,
	})

	log.Printf("[INFO] collecting posts for %d searches", len(cfg.Searches))
	posts, collectErr := client.CollectAll(ctx, cfg.Searches)
	if collectErr != nil {
		log.Printf("[WARN] collection interrupted: %v", collectErr)
	}

	// persist on a fresh context so an interrupt never loses collected posts
	inserted, err := st.AddPosts(context.Background(), posts)
	if err != nil {
		return fmt.Errorf("persist posts: %w", err)
	}
	log.Printf("[INFO] collected %d posts, %d new, %d duplicates", len(posts), inserted, len(posts)-inserted)

	all, err := st.ListPosts(context.Background())
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	out := cmd.Out
	if out == "" {
		out = fmt.Sprintf("mailprobe_corpus_%s.csv", time.Now().Format("20060102_1504"))
	}
	if err := corpus.Write(out, all); err != nil {
		return fmt.Errorf("export corpus: %w", err)
	}
	log.Printf("[INFO] corpus of %d posts saved to %s", len(all), out)
	return nil
}

// Execute runs the analysis pass: filter, tag, aggregate, report, charts
func (cmd *AnalyzeCommand) Execute(_ []string) error {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}

	posts, err := corpus.Read(cmd.Input)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			log.Printf("[ERROR] corpus file %s not found, no data to analyze - run collect first", cmd.Input)
			return err
		}
		log.Printf("[ERROR] corpus file %s unreadable, no data to analyze", cmd.Input)
		return err
	}
	log.Printf("[INFO] loaded %d posts from %s", len(posts), cmd.Input)

	kept := posts
	if !cmd.KeepAll {
		filter := classify.NewFilter(cfg.Rules)
		kept = filter.Apply(posts)
		log.Printf("[INFO] relevance filter kept %d of %d posts", len(kept), len(posts))
	}

	tagger, err := classify.NewTagger(cfg.Categories.Problems, cfg.Categories.Solutions)
	if err != nil {
		return fmt.Errorf("build tagger: %w", err)
	}

	analyzer := analytics.New(tagger, cfg.Analysis)
	stats := analyzer.Aggregate(kept)
	if stats.TotalPosts == 0 {
		log.Printf("[WARN] no posts left to analyze, generating the no-data report")
	}

	rep := report.NewBuilder(cfg.Report).Build(stats)
	path, err := report.Save(rep, cfg.Report.OutputDir)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	log.Printf("[INFO] report saved to %s", path)

	if cfg.Report.Charts && !cmd.NoCharts {
		chartPath, err := charts.Save(stats, cfg.Report.OutputDir, rep.GeneratedAt)
		if err != nil {
			log.Printf("[WARN] chart rendering failed, keeping text report: %v", err)
		} else {
			log.Printf("[INFO] charts saved to %s", chartPath)
		}
	}
	return nil
}

// loadConfig reads the YAML config, falling back to built-in defaults when
// the file does not exist
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[WARN] config file %s not found, using built-in defaults", path)
			return config.Default(), nil
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
