package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/app"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/config"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/watch"
)

const version = "0.1"

// flagKeys maps command line flags onto config keys. Only flags given
// explicitly override the loaded config.
var flagKeys = map[string]string{
	"namelist":     "files.namelist",
	"renamechance": "renamer.rename_chance",
	"mindistance":  "renamer.min_distance",
	"map":          "files.map",
	"seed":         "renamer.seed",
	"report":       "report.path",
	"watch":        "watch.enabled",
	"log-level":    "logging.level",
}

func main() {
	fs := flag.NewFlagSet("provincerenamer", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "ProvinceRenamer v%s: A tool to randomly rename provinces on Dominions maps!\n\n", version)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "Path to config file")
	env := fs.String("env", "", "Environment overlay, merges provincerenamer.<env>.yaml")
	fs.String("namelist", "namelist.txt", "File containing a list of names to use to rename provinces with")
	fs.Float64("renamechance", 0.03, "Chance to rename each province")
	fs.Int("mindistance", 2, "Prevent renaming of provinces if they are this far apart (or less) from another renamed province")
	fs.String("map", "", "Dominions .map file to modify")
	fs.Int64("seed", 0, "Random seed (0 seeds from the clock)")
	fs.String("report", "", "Write a YAML report of the run to this path")
	fs.Bool("watch", false, "Rerun whenever the map or namelist changes")
	fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	_ = fs.Parse(os.Args[1:])

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}

	interactive := len(os.Args) == 1
	if interactive {
		if err := guided(newPrompter(os.Stdin, os.Stdout), config.Get()); err != nil {
			log.Fatal().Err(err).Msg("Failed to read options")
		}
	} else {
		var ferr error
		fs.Visit(func(f *flag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok || ferr != nil {
				return
			}
			ferr = config.Set(key, f.Value.(flag.Getter).Get())
		})
		if ferr != nil {
			log.Fatal().Err(ferr).Msg("Invalid option")
		}
	}

	cfg := config.Get()
	setupLogging(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := app.NewRunner(zerolog.DebugLevel, cfg.Logging)
	sum, err := runner.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Renaming failed")
	}
	logSummary(runner, sum)

	if cfg.Watch.Enabled {
		if err := watchAndRerun(ctx, runner, cfg); err != nil {
			log.Fatal().Err(err).Msg("Watch failed")
		}
		return
	}

	if interactive {
		fmt.Println("Complete. Press ENTER to exit.")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}
}

// guided asks for each option in turn, writing the answers into the config.
func guided(p *prompter, cfg *config.Config) error {
	fmt.Fprintf(p.out, "ProvinceRenamer v%s: A tool to randomly rename provinces on Dominions maps!\n", version)
	fmt.Fprintln(p.out, "This program can also be run from command line, pass -h for info.")
	fmt.Fprintln(p.out, "Pressing ENTER without writing anything will accept the option's default value.")

	namelist, err := p.String("File containing a list of names to use to rename provinces with", cfg.Files.Namelist)
	if err != nil {
		return err
	}
	chance, err := p.Float("Chance to rename each province", cfg.Renamer.RenameChance)
	if err != nil {
		return err
	}
	minDist, err := p.Int("Prevent renaming of provinces if they are this far apart (or less) from another renamed province", cfg.Renamer.MinDistance)
	if err != nil {
		return err
	}
	mapPath, err := p.String("Dominions .map file to modify", cfg.Files.Map)
	if err != nil {
		return err
	}

	for key, value := range map[string]interface{}{
		"files.namelist":        namelist,
		"renamer.rename_chance": chance,
		"renamer.min_distance":  minDist,
		"files.map":             mapPath,
	} {
		if err := config.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}

func watchAndRerun(ctx context.Context, runner *app.Runner, cfg *config.Config) error {
	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(_ *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Ignoring invalid config change")
				return
			}
			log.Info().Str("path", config.ConfigFilePath()).Msg("Config reloaded")
		})
	}

	w, err := watch.New([]string{cfg.Files.Map, cfg.Files.Namelist},
		time.Duration(cfg.Watch.DebounceMs)*time.Millisecond)
	if err != nil {
		return err
	}
	return w.Run(ctx, func(ctx context.Context) error {
		sum, err := runner.Run(ctx, config.Get())
		if err != nil {
			return err
		}
		logSummary(runner, sum)
		return nil
	})
}

func logSummary(runner *app.Runner, sum *app.Summary) {
	ev := log.Info().
		Str("run_id", sum.RunID).
		Int64("seed", sum.Seed).
		Int("renamed", sum.Renamed).
		Int("provinces", sum.Provinces).
		Str("output", sum.OutputPath)
	if runs := runner.Stats().Runs(); runs > 1 {
		totals := zerolog.Dict()
		for outcome, n := range runner.Stats().Counts() {
			totals.Int(outcome.String(), n)
		}
		ev.Int("runs", runs).Dict("totals", totals)
	}
	ev.Msg("Renaming complete")
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))
	log.Logger = newLogger(os.Stdout, format)
}

func newLogger(out io.Writer, format string) zerolog.Logger {
	if format == "json" || os.Getenv("APP_ENV") == "production" {
		return zerolog.New(out).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}
