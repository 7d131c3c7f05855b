package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ogier/pflag"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/comalice/turingx/builder"
	"github.com/comalice/turingx/internal/config"
	"github.com/comalice/turingx/internal/core"
	"github.com/comalice/turingx/internal/primitives"
	"github.com/comalice/turingx/internal/production"
)

var (
	optProgram     = pflag.StringP("program", "p", "", "Program file (YAML or JSON)")
	optBuiltin     = pflag.StringP("builtin", "b", "", "Run a built-in program instead of a file: "+strings.Join(builder.Names(), ", "))
	optInput       = pflag.StringP("input", "i", "", "Initial tape contents; the program's blank alias is accepted")
	optConfig      = pflag.StringP("config", "c", defaultConfigPath(), "Settings file (TOML)")
	optMaxSteps    = pflag.IntP("max-steps", "m", 0, "Override run.max-steps from the settings file")
	optInteractive = pflag.BoolP("interactive", "t", false, "Step through the run in a terminal UI")
	optDot         = pflag.BoolP("dot", "d", false, "Print the program's state diagram as Graphviz DOT and exit")
	optResume      = pflag.BoolP("resume", "r", false, "Resume from the program's last snapshot in snapshot.dir")
	optVerbose     = pflag.BoolP("verbose", "v", false, "Log at debug level")
	optTrace       = pflag.StringP("trace", "x", "", "Write every step to this CSV file")
	optProfile     = pflag.String("profile", "", "Write a cpu or heap profile to the current directory")
	optSample      = pflag.Bool("sample-config", false, "Print a sample settings file and exit")
)

// Exit codes for batch runs.
const (
	exitOK       = 0
	exitError    = 1
	exitRejected = 2
	exitLimit    = 3
)

func main() {
	pflag.Parse()

	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}

func run() (int, error) {
	if *optSample {
		fmt.Print(config.Sample())
		return exitOK, nil
	}
	if *optProgram == "" && *optBuiltin == "" {
		fmt.Fprintln(os.Stderr, "Usage: turing -p <program.yaml> [-i input] [-t] [-c settings.toml]")
		fmt.Fprintln(os.Stderr, "       turing -b <builtin> [-i input]")
		fmt.Fprintln(os.Stderr, "       turing -p <program.yaml> --dot")
		pflag.PrintDefaults()
		return exitError, nil
	}

	if stop := startProfiling(*optProfile); stop != nil {
		defer stop()
	}

	settings, err := config.Load(*optConfig)
	if err != nil {
		return exitError, err
	}
	if *optMaxSteps > 0 {
		settings.Run.MaxSteps = *optMaxSteps
	}
	if *optVerbose {
		settings.Log.Level = "debug"
		settings.Log.Development = true
	}

	logger, err := settings.Log.Build()
	if err != nil {
		return exitError, err
	}
	defer logger.Sync()
	if *optInteractive && !*optVerbose {
		// Log lines would tear the alternate screen.
		logger = zap.NewNop()
	}
	core.SetLogger(logger)

	program, err := loadProgram()
	if err != nil {
		return exitError, err
	}

	visualizer := &production.DefaultVisualizer{}
	if *optDot {
		fmt.Print(visualizer.ExportDOT(program, program.Initial))
		return exitOK, nil
	}

	opts := []core.Option{
		core.WithMaxSteps(settings.Run.MaxSteps),
		core.WithVisualizer(visualizer),
	}
	var persister core.Persister
	if settings.Snapshot.Dir != "" {
		persister, err = production.NewPersister(settings.Snapshot.Dir, settings.Snapshot.Format)
		if err != nil {
			return exitError, err
		}
		opts = append(opts,
			core.WithPersister(persister),
			core.WithCheckpointEvery(settings.Run.CheckpointEvery))
	}

	if *optTrace != "" {
		f, err := os.Create(*optTrace)
		if err != nil {
			return exitError, err
		}
		trace := production.NewCSVTracePublisher(f)
		defer trace.Close()
		opts = append(opts, core.WithPublisher(trace))
	}

	m := core.NewMachine(program, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := prepare(ctx, m, persister, *optResume, *optInput); err != nil {
		return exitError, err
	}

	if *optInteractive {
		if err := runInteractive(m, settings.Display.Radius); err != nil {
			return exitError, err
		}
		return exitOK, nil
	}

	res, err := m.Run(ctx)
	printResult(program, res)
	return exitCode(res, err), err
}

// prepare starts m on input, or with resume set, restores it from the last
// snapshot persister holds for it.
func prepare(ctx context.Context, m *core.Machine, persister core.Persister, resume bool, input string) error {
	if !resume {
		return m.Start(input)
	}
	if persister == nil {
		return errors.New("--resume needs snapshot.dir in the settings file")
	}
	snap, err := persister.Load(ctx, m.ID())
	if err != nil {
		return err
	}
	if err := m.Restore(snap); err != nil {
		return err
	}
	core.Logger().Info("resumed from snapshot",
		zap.String("machine", m.ID()),
		zap.Int("steps", snap.Steps),
		zap.String("verdict", string(snap.Verdict)))
	return nil
}

// exitCode maps the outcome of a batch run to the process exit status.
func exitCode(res core.Result, err error) int {
	switch {
	case errors.Is(err, core.ErrStepLimit):
		return exitLimit
	case err != nil:
		return exitError
	case res.Verdict == core.Rejected:
		return exitRejected
	}
	return exitOK
}

func loadProgram() (primitives.ProgramConfig, error) {
	if *optBuiltin != "" {
		return builder.ByName(*optBuiltin)
	}
	return production.LoadProgramFile(*optProgram)
}

func printResult(program primitives.ProgramConfig, res core.Result) {
	fmt.Printf("Program: %s\n", program.ID)
	fmt.Printf("Verdict: %s (state %s)\n", res.Verdict, res.State)
	fmt.Printf("Steps:   %d\n", res.Steps)
	fmt.Printf("Tape:    %s\n", program.Display(res.Output))
}

// startProfiling starts a pkg/profile session for "cpu" or "heap" and
// returns its stop function, or nil.
func startProfiling(what string) func() {
	switch strings.ToLower(what) {
	case "cpu":
		return profile.Start(profile.ProfilePath("."), profile.Quiet).Stop
	case "heap", "mem":
		return profile.Start(profile.MemProfileHeap, profile.ProfilePath("."), profile.Quiet).Stop
	}
	return nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "turingx", "settings.toml")
}
