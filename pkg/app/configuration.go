package app

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"reflect"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/blaubaer/focus-volume/pkg/acceleration"
	"github.com/blaubaer/focus-volume/pkg/common"
	"github.com/blaubaer/focus-volume/pkg/control"
	"github.com/blaubaer/focus-volume/pkg/keyboard"
)

const appName = "focus-volume"

func NewConfiguration() Configuration {
	return Configuration{
		false,

		acceleration.NewParameters(),

		control.MatchDefault,
		keyboard.Keys{},

		common.Regexp{},
	}
}

type Configuration struct {
	PreventAutoSave bool `yaml:"preventAutoSave"`

	Acceleration acceleration.Parameters `yaml:"acceleration"`

	MatchBy control.MatchStrategy `yaml:"matchBy"`
	Keys    keyboard.Keys         `yaml:"keys,omitempty"`

	ExcludedExecutables common.Regexp `yaml:"excludedExecutables,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("preventAutoSave", "If provided configuration will NOT automatically be saved upon changes.").
		Envar("FV_PREVENT_AUTO_SAVE").
		BoolVar(&this.PreventAutoSave)
	using.Flag("matchBy", "How the focused application is matched with its audio session. Possible values: "+control.AllMatchStrategies.String()).
		Envar("FV_MATCH_BY").
		SetValue(&this.MatchBy)
	using.Flag("keys", "Which volume keys are intercepted. All if empty. Possible values: "+keyboard.AllKeys.String()).
		Envar("FV_KEYS").
		SetValue(&this.Keys)
	using.Flag("excludedExecutables", "Focused applications whose executable path matches this regex are not adjusted.").
		Envar("FV_EXCLUDED_EXECUTABLES").
		SetValue(&this.ExcludedExecutables)

	this.Acceleration.SetupConfiguration(using)
}

func (this *Configuration) Validate() error {
	if err := this.Acceleration.Validate(); err != nil {
		return err
	}
	if _, err := this.MatchBy.MarshalText(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidParameter, err)
	}
	return nil
}

// mergeFrom applies every explicitly set value of other over this.
func (this *Configuration) mergeFrom(other Configuration) error {
	return mergo.Merge(this, other, mergo.WithOverride, mergo.WithTransformers(configurationTransformers{}))
}

type configurationTransformers struct{}

// Transformer handles values mergo cannot see into, because all their
// fields are unexported.
func (configurationTransformers) Transformer(t reflect.Type) func(dst, src reflect.Value) error {
	if t == reflect.TypeOf(common.Regexp{}) {
		return func(dst, src reflect.Value) error {
			if v, ok := src.Interface().(common.Regexp); ok && v.HasContent() && dst.CanSet() {
				dst.Set(src)
			}
			return nil
		}
	}
	return nil
}

func (this *Configuration) loadFrom(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(this); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (this *Configuration) loadFromFile(fn string, ignoreNotFound bool) error {
	f, err := os.Open(fn)
	if os.IsNotExist(err) && ignoreNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.loadFrom(f); err != nil {
		return fmt.Errorf("cannot load configuration file %q: %w", fn, err)
	}

	return nil
}

func (this *Configuration) saveTo(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(this); err != nil {
		return err
	}
	return enc.Close()
}

func (this *Configuration) saveToFile(fn string) error {
	_ = os.MkdirAll(filepath.Dir(fn), 0700)

	f, err := os.OpenFile(fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("cannot open configuration file %q: %w", fn, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := this.saveTo(f); err != nil {
		return fmt.Errorf("cannot write file %q: %w", fn, err)
	}

	return nil
}

func defaultConfigurationFile() string {
	if appData := os.Getenv("APPDATA"); appData != "" {
		fs, err := os.Stat(appData)
		if err == nil && fs.IsDir() {
			return filepath.Join(appData, appName, "configuration.yml")
		}
	}

	u, err := user.Current()
	if err != nil {
		return "configuration.yml"
	}

	return filepath.Join(u.HomeDir, ".config", appName, "configuration.yml")
}
