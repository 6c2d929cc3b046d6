package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"ezhuthu/internal/config"
	"ezhuthu/internal/editor"
	"ezhuthu/internal/log"
	"ezhuthu/internal/terminal"
)

type app struct {
	version string
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
}

func newRootCmd(version string) *cobra.Command {
	a := &app{version: version, v: viper.New()}

	root := &cobra.Command{
		Use:           "ezhuthu [file]",
		Short:         "A minimal terminal text viewer",
		Long:          `ezhuthu opens a file, or an empty buffer, in a full-screen raw-mode terminal view. Arrow keys, Home/End and PageUp/PageDown move the cursor; Ctrl-Q quits.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
		RunE: a.run,
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ./"+config.LocalConfigFile+" or <user config dir>/ezhuthu/config.yaml)")
	root.PersistentFlags().Bool("debug", false, "write a debug log")
	root.PersistentFlags().String("log-file", "", "debug log path")
	root.PersistentFlags().String("log-level", "", "minimum log level: debug, info, warn, error")
	root.Flags().String("quit-key", "", "key that quits, e.g. ctrl-q")
	root.Flags().Bool("no-status", false, "leave the bottom status row blank")

	_ = a.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = a.v.BindPFlag("log_file", root.PersistentFlags().Lookup("log-file"))
	_ = a.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("quit_key", root.Flags().Lookup("quit-key"))

	root.AddCommand(newConfigCmd(a))
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if noStatus, _ := cmd.Flags().GetBool("no-status"); noStatus {
		cfg.StatusLine = false
	}
	a.cfg = cfg
	return nil
}

// startLogging opens the debug log when enabled. The returned cleanup is
// always safe to call.
func (a *app) startLogging() (func(), error) {
	if !a.cfg.Debug {
		return func() {}, nil
	}
	cleanup, err := log.Init(a.cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	level, _ := log.ParseLevel(a.cfg.LogLevel)
	log.SetMinLevel(level)
	return cleanup, nil
}

func (a *app) run(_ *cobra.Command, args []string) (err error) {
	stopLogging, err := a.startLogging()
	if err != nil {
		return err
	}
	defer stopLogging()
	log.Info(log.CatEditor, "starting", "version", a.version, "args", args)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("requires a TTY on stdout")
	}
	t, err := terminal.New(os.Stdin, os.Stdout)
	if errors.Is(err, terminal.ErrNotTerminal) {
		return errors.New("requires a TTY on stdin")
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := t.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			_ = t.Restore()
			fmt.Fprintf(os.Stderr, "ezhuthu panic: %v\n", r)
			_, _ = os.Stderr.Write(debug.Stack())
			os.Exit(2)
		}
	}()

	// ISIG is off, so only external signals get here.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sig)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case s := <-sig:
			_ = t.Restore()
			log.Warn(log.CatTerm, "terminated by signal", "signal", s)
			os.Exit(128 + int(s.(syscall.Signal)))
		case <-done:
		}
	}()

	ed := editor.New(t, args, a.version,
		editor.WithQuitKey(a.cfg.QuitKeyValue()),
		editor.WithStatusLine(a.cfg.StatusLine),
	)
	if err := ed.Run(); err != nil {
		log.ErrorErr(log.CatEditor, "fatal terminal error", err)
		t.ClearScreen()
		t.CursorPosition(terminal.Position{})
		_ = t.Flush()
		return err
	}
	return nil
}
