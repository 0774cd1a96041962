package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/cpu"
	"github.com/thelolagemann/sm83/pkg/emulator"
	"github.com/thelolagemann/sm83/pkg/inspect"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/utils"
)

func main() {
	configFile := flag.String("config", "", "The YAML config file to load")
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	steps := flag.Uint64("steps", 0, "Stop after this many instructions, 0 runs until the CPU halts")
	rate := flag.Uint64("rate", emulator.DefaultRate, "Instructions per second, 0 runs unthrottled")
	trace := flag.Bool("trace", false, "Log every instruction before it is executed")
	inspectAddr := flag.String("inspect", "", "Serve the inspector on this address, e.g. localhost:8083")
	state := flag.String("state", "", "The state file to resume from and save to on exit")
	watch := flag.Bool("watch", false, "Reload the rom whenever it changes on disk")
	audit := flag.Bool("audit", false, "Decode every opcode, report any malformed instruction and exit")
	logLevel := flag.String("log-level", "info", "The log level: debug, info, warn or error")
	flag.Parse()

	if *audit {
		if err := cpu.Audit(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("all 512 opcodes decoded")
		return
	}

	cfg := emulator.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = emulator.LoadConfig(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	// flags given on the command line take precedence over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rom":
			cfg.ROM = *romFile
		case "boot":
			cfg.Boot = *bootROM
		case "steps":
			cfg.Steps = *steps
		case "rate":
			cfg.Rate = *rate
		case "trace":
			cfg.Trace = *trace
		case "inspect":
			cfg.Inspect = *inspectAddr
		case "state":
			cfg.State = *state
		case "watch":
			cfg.Watch = *watch
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := log.New(log.WithLevel(cfg.LogLevel))

	// open the rom file
	rom, err := utils.LoadFile(cfg.ROM)
	if err != nil {
		logger.Fatal(err.Error())
	}

	opts := []emulator.Opt{emulator.WithLogger(logger)}
	// open the boot rom file
	if cfg.Boot != "" {
		b, err := utils.LoadFile(cfg.Boot)
		if err != nil {
			logger.Fatal(err.Error())
		}
		br, err := boot.LoadBootROM(b)
		if err != nil {
			logger.Fatal(err.Error())
		}
		logger.Infof("using %s boot rom (%s)", br.Model(), br.Checksum())
		opts = append(opts, emulator.WithBootROM(br))
	}
	if cfg.Trace {
		opts = append(opts, emulator.WithTrace(func(pc uint16, i cpu.Instruction) {
			logger.Infof("%04X  %s", pc, i)
		}))
	}

	m, err := emulator.NewMachine(rom, cfg, opts...)
	if err != nil {
		logger.Fatal(err.Error())
	}
	if cfg.State != "" {
		if _, err := os.Stat(cfg.State); err == nil {
			if err := m.LoadState(cfg.State); err != nil {
				logger.Fatal(err.Error())
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Inspect != "" {
		srv := inspect.NewServer(m, inspect.WithLogger(logger), inspect.WithCacheSize(16))
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Inspect); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("inspect: %v", err)
			}
		}()
	}
	if cfg.Watch {
		go func() {
			if err := emulator.WatchROM(ctx, cfg.ROM, m, logger); err != nil {
				logger.Errorf("%v", err)
			}
		}()
	}

	runErr := m.Run(ctx)
	stop()

	snap := m.Snapshot()
	fmt.Println(snap)
	fmt.Printf("%s after %d instructions, last %s\n", m.Status(), snap.Steps, snap.Last)

	if cfg.State != "" {
		if err := m.SaveState(cfg.State); err != nil {
			logger.Errorf("%v", err)
		} else {
			logger.Infof("saved state to %s", cfg.State)
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Errorf("%v", runErr)
		os.Exit(1)
	}
	if m.Status().IsErrored() {
		os.Exit(1)
	}
}
