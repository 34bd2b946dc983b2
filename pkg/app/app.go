package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/focus-volume/pkg/acceleration"
	"github.com/blaubaer/focus-volume/pkg/audio"
	"github.com/blaubaer/focus-volume/pkg/common"
	"github.com/blaubaer/focus-volume/pkg/control"
	"github.com/blaubaer/focus-volume/pkg/focus"
	"github.com/blaubaer/focus-volume/pkg/keyboard"
	"github.com/blaubaer/focus-volume/pkg/process"
)

func NewApp() *App {
	return &App{
		config: NewConfiguration(),
	}
}

type App struct {
	AudioStack audio.Stack
	// Provider of audio sessions; AudioStack if nil.
	Provider audio.Provider
	// Focus of the current window; focus.Foreground if nil.
	Focus             focus.Resolver
	Reporters         control.Reporters
	ConfigurationFile string

	configFromFlags Configuration
	config          Configuration
	engine          *acceleration.Engine
	handler         *control.Handler
	mutex           sync.Mutex
}

func (this *App) SetupConfiguration(using common.FlagHolder) {
	this.configFromFlags.SetupConfiguration(using)

	using.Flag("configuration", "Defines the file from which the configuration should be loaded and/or stored to.").
		Short('c').
		Envar("FV_CONFIGURATION").
		StringVar(&this.ConfigurationFile)
}

func (this *App) Initialize() (rErr error) {
	success := false
	defer func() {
		if !success {
			if err := this.Dispose(); err != nil && rErr == nil {
				rErr = err
			}
		}
	}()

	this.config = NewConfiguration()
	if err := this.config.loadFromFile(this.configurationFile(), true); err != nil {
		return err
	}
	if err := this.config.mergeFrom(this.configFromFlags); err != nil {
		return fmt.Errorf("cannot merge configuration: %w", err)
	}
	if err := this.config.Validate(); err != nil {
		return fmt.Errorf("illegal configuration: %w", err)
	}

	if err := this.AudioStack.Initialize(); err != nil {
		return err
	}

	engine, err := acceleration.NewEngine(this.config.Acceleration)
	if err != nil {
		return err
	}
	this.engine = engine
	this.handler = &control.Handler{
		Resolver: &control.Resolver{
			Focus: this.focus(),
			Directory: &audio.Directory{
				Provider:     this.provider(),
				ExecutableOf: process.ExecutableOf,
			},
			MatchBy:  this.config.MatchBy,
			Excluded: this.config.ExcludedExecutables,
		},
		Engine:   engine,
		Reporter: append(control.Reporters{control.LogReporter{}}, this.Reporters...),
	}

	if err := this.saveConf(false); err != nil {
		return err
	}

	log.With("matchBy", this.config.MatchBy).
		With("acceleration", this.config.Acceleration).
		Debug("Initialized.")

	success = true
	return nil
}

// Run intercepts the volume keys until ctx is done. The keyboard hook is
// removed on every way out.
func (this *App) Run(ctx context.Context) error {
	handler := this.handler
	if handler == nil {
		return fmt.Errorf("not initialized")
	}

	hook, err := keyboard.Install(this.config.Keys, handler.OnVolumeKey)
	if err != nil {
		return err
	}
	defer func() {
		if err := hook.Close(); err != nil {
			log.WithError(err).
				Warn("Cannot remove keyboard hook.")
		}
	}()

	<-ctx.Done()
	log.Debug("Run interrupted.")
	return nil
}

// OnVolumeKey handles key as if it was intercepted.
func (this *App) OnVolumeKey(key keyboard.Key) {
	if v := this.handler; v != nil {
		v.OnVolumeKey(key)
	}
}

// SetAccelerationParameters takes effect with the next key and is persisted
// unless auto save is prevented.
func (this *App) SetAccelerationParameters(maxMultiplier, minMultiplier, decay float32) error {
	return this.tune(func(e *acceleration.Engine) error {
		return e.SetAccelerationParameters(maxMultiplier, minMultiplier, decay)
	})
}

// SetBaseIncrement takes effect with the next key and is persisted unless
// auto save is prevented.
func (this *App) SetBaseIncrement(v float32) error {
	return this.tune(func(e *acceleration.Engine) error {
		return e.SetBaseIncrement(v)
	})
}

func (this *App) ResetAcceleration() {
	if e := this.engine; e != nil {
		e.Reset()
	}
}

func (this *App) tune(fn func(*acceleration.Engine) error) error {
	e := this.engine
	if e == nil {
		return fmt.Errorf("not initialized")
	}
	if err := fn(e); err != nil {
		return err
	}

	this.mutex.Lock()
	this.config.Acceleration = e.Parameters()
	this.mutex.Unlock()

	log.With("acceleration", e.Parameters()).
		Info("Acceleration parameters changed.")

	return this.saveConf(true)
}

func (this *App) Configuration() Configuration {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.config
}

func (this *App) saveConf(always bool) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.config.PreventAutoSave {
		log.Debug("Automatically save of configuration disabled.")
		return nil
	}

	fn := this.configurationFile()
	if !always {
		_, err := os.Stat(fn)
		if os.IsNotExist(err) {
			log.With("file", fn).Info("Configuration absent.")
			// Ok, we should save...
		} else if err != nil {
			return err
		} else {
			// Does exist, skip...
			return nil
		}
	}

	if err := this.config.saveToFile(fn); err != nil {
		return err
	}

	log.With("file", fn).Info("Configuration saved.")

	return nil
}

func (this *App) configurationFile() string {
	if v := this.ConfigurationFile; v != "" {
		return v
	}
	return defaultConfigurationFile()
}

func (this *App) provider() audio.Provider {
	if v := this.Provider; v != nil {
		return v
	}
	return &this.AudioStack
}

func (this *App) focus() focus.Resolver {
	if v := this.Focus; v != nil {
		return v
	}
	return focus.Foreground{}
}

func (this *App) Dispose() error {
	this.handler = nil
	this.engine = nil
	return this.AudioStack.Dispose()
}
