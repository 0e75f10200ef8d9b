package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/esimov/flowicon"
	"github.com/esimov/flowicon/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┬  ┌─┐┬ ┬┬┌─┐┌─┐┌┐┌
├┤ │  │ ││││││  │ ││││
└  ┴─┘└─┘└┴┘┴└─┘└─┘┘└┘

Procedural icon family generator.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	destination = flag.String("out", ".", "Destination directory")
	iconName    = flag.String("name", "", "Icon name, used as the file name prefix")
	masterSize  = flag.Int("size", flowicon.DefaultMasterSize, "Master canvas size")
	sizes       = flag.String("sizes", "", "Comma separated list of icon sizes")
	configFile  = flag.String("config", "", "YAML or TOML configuration file")
	filter      = flag.String("filter", "", "Resampling filter: lanczos, box, catmullrom, linear")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of icons resized concurrently")
	debug       = flag.Bool("debug", false, "Log the pipeline stages")
)

// spinner used to instantiate and call the progress indicator.
var spinner *utils.Spinner

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	isTerm := term.IsTerminal(int(os.Stderr.Fd()))
	utils.NoColor = !isTerm

	flowicon.SetLogger(newLogger(*debug, isTerm))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Invalid configuration: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	sink, err := newDirSink(*destination)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Unable to prepare the destination: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	gen, err := flowicon.NewGenerator(cfg, sink)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Invalid configuration: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
	gen.Workers = *workers

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ FLOWICON", utils.StatusMessage),
		utils.DecorateText("is generating the icon family...", utils.DefaultMessage))
	spinner = utils.NewSpinner(os.Stderr, spinnerText, time.Millisecond*100, true)

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	now := time.Now()
	// The spinner would interleave with the debug output.
	showSpinner := isTerm && !*debug
	if showSpinner {
		spinner.Start()
	}
	family, err := gen.Generate(*masterSize)
	if showSpinner {
		spinner.StopMsg = fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ FLOWICON", utils.StatusMessage),
			utils.DecorateText("is generating the icon family... ✔", utils.DefaultMessage))
		if err != nil {
			spinner.StopMsg = fmt.Sprintf("%s %s",
				utils.DecorateText("⚡ FLOWICON", utils.StatusMessage),
				utils.DecorateText("generating the icon family failed ✘", utils.ErrorMessage))
		}
		spinner.Stop()
	}
	printStatus(family, cfg.Current, err)

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
}

// loadConfig applies the command line flags over the configuration file, or the defaults.
func loadConfig() (flowicon.Config, error) {
	cfg := flowicon.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = flowicon.LoadConfig(*configFile); err != nil {
			return cfg, err
		}
	}
	if *iconName != "" {
		cfg.Name = *iconName
	}
	if *filter != "" {
		cfg.Filter = *filter
	}
	if *sizes != "" {
		s, err := utils.ParseSizes(*sizes)
		if err != nil {
			return cfg, errors.Wrapf(err, "malformed size list %q", *sizes)
		}
		cfg.Sizes = s
	}
	return cfg, cfg.Validate()
}

// newLogger returns a console logger on stderr. Without the debug flag only
// warnings, like the switch to the static fallback, are shown.
func newLogger(debug, color bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !color, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// printStatus displays the relevant information about the generated icon family.
func printStatus(family *flowicon.IconFamily, current string, err error) {
	if err != nil {
		log.Fatalf(
			utils.DecorateText("\nError generating the icon family: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}

	if family.Fallback != nil {
		fmt.Fprintf(os.Stderr, "\n%s %s\n",
			utils.DecorateText("No raster support, the static icon has been saved as:", utils.WarningMessage),
			utils.DecorateText(filepath.Join(*destination, family.Fallback.Name), utils.SuccessMessage),
		)
		return
	}

	fmt.Fprintf(os.Stderr, "\nThe icons have been saved in %s:\n", utils.DecorateText(*destination, utils.SuccessMessage))
	for _, icon := range family.Icons {
		fmt.Fprintf(os.Stderr, "\t%s\n", utils.DecorateText(icon.Name, utils.DefaultMessage))
	}
	if current != "" {
		fmt.Fprintf(os.Stderr, "\t%s\n", utils.DecorateText(flowicon.CurrentName(current), utils.DefaultMessage))
	}
}
