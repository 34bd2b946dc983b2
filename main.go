package main

import (
	"context"
	_ "embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/echocat/slf4g"
	"github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/consumer"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"
	"github.com/getlantern/systray"

	"github.com/blaubaer/focus-volume/pkg/app"
	"github.com/blaubaer/focus-volume/pkg/control"
	"github.com/blaubaer/focus-volume/pkg/status"
)

func main() {
	consumer.Default = consumer.NewWriter(os.Stdout)

	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(func(v *formatter.Text) {
			bv := true
			v.AllowMultiLineMessage = &bv
			v.MultiLineMessageAfterFields = &bv
		}),
		"json": formatter.NewJson(),
	}

	a := app.NewApp()
	tray := &status.Systray{
		IconIdle:   iconIdle,
		IconActive: iconActive,
		IconFailed: iconFailed,
	}
	a.Reporters = control.Reporters{tray}

	cmd := kingpin.New("focus-volume", "Applies the volume keys to the application owning the keyboard focus instead of the master volume.")
	a.SetupConfiguration(cmd)

	cmd.Flag("log.level", "").
		SetValue(lv.Level)
	cmd.Flag("log.format", "").
		Default("text").
		SetValue(lv.Consumer.Formatter)
	cmd.Flag("log.color", "").
		Default("always").
		SetValue(lv.Consumer.Formatter.ColorMode)

	cmd.Command("run", "Intercepts the volume keys and shows the status in the system tray.").
		Default().
		Action(func(*kingpin.ParseContext) error {
			return run(a, tray)
		})
	cmd.Command("sessions", "Lists the audio sessions of the default output device.").
		Action(func(*kingpin.ParseContext) error {
			return sessions(a)
		})

	kingpin.MustParse(cmd.Parse(os.Args[1:]))
}

func run(a *app.App, tray *status.Systray) error {
	if err := a.Initialize(); err != nil {
		return err
	}

	errs := make(chan error, 1)
	systray.Run(func() {
		if err := tray.Initialize(); err != nil {
			errs <- err
			systray.Quit()
			return
		}
		systray.SetTitle(status.Title)
		resetMi := systray.AddMenuItem("Reset acceleration", "Forgets the timing of the recent key presses.")
		quitMi := systray.AddMenuItem("Exit", "Exit focus volume")

		ctx, cancel := context.WithCancel(context.Background())

		go func() {
			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(c)
			for {
				select {
				case <-ctx.Done():
					return
				case <-resetMi.ClickedCh:
					a.ResetAcceleration()
					log.Info("Acceleration reset.")
				case <-c:
					log.Info("Terminated. Going down...")
					cancel()
				case <-quitMi.ClickedCh:
					log.Info("Exit clicked. Going down...")
					cancel()
				}
			}
		}()

		go func() {
			defer systray.Quit()
			defer cancel()
			if err := a.Run(ctx); err != nil {
				errs <- err
			}
		}()
	}, func() {
		_ = tray.Dispose()
		_ = a.Dispose()
	})

	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}

func sessions(a *app.App) error {
	if err := a.Initialize(); err != nil {
		return err
	}
	defer func() { _ = a.Dispose() }()

	infos, err := a.ListSessions()
	if err != nil {
		return err
	}
	for _, info := range infos {
		log.With("pid", info.Pid).
			With("executable", info.ExecutablePath).
			With("level", info.Level).
			With("muted", info.Muted).
			Info("Session found.")
	}
	log.With("count", len(infos)).
		Info("All sessions listed.")
	return nil
}

var (
	//go:embed assets/idle.ico
	iconIdle []byte
	//go:embed assets/active.ico
	iconActive []byte
	//go:embed assets/failed.ico
	iconFailed []byte
)
