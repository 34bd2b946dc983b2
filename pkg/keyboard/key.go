package keyboard

import (
	"fmt"
	"strings"
)

// Key is one of the three logical volume keys.
type Key uint8

const (
	KeyVolumeUp   = Key(0)
	KeyVolumeDown = Key(1)
	KeyMute       = Key(2)
)

// Virtual key codes as delivered by the platform.
const (
	vkVolumeMute = uint32(0xAD)
	vkVolumeDown = uint32(0xAE)
	vkVolumeUp   = uint32(0xAF)
)

var (
	AllKeys = Keys{
		KeyVolumeUp,
		KeyVolumeDown,
		KeyMute,
	}
)

// KeyOfVirtualCode translates a platform virtual key code. ok is false for
// every code other than the three volume keys.
func KeyOfVirtualCode(vkCode uint32) (_ Key, ok bool) {
	switch vkCode {
	case vkVolumeUp:
		return KeyVolumeUp, true
	case vkVolumeDown:
		return KeyVolumeDown, true
	case vkVolumeMute:
		return KeyMute, true
	default:
		return 0, false
	}
}

func (this *Key) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "up", "volumeup", "volume-up":
		*this = KeyVolumeUp
		return nil
	case "down", "volumedown", "volume-down":
		*this = KeyVolumeDown
		return nil
	case "mute":
		*this = KeyMute
		return nil
	default:
		return fmt.Errorf("illegal-key: %s", plain)
	}
}

func (this Key) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-key-%d", this)
	}
	return string(v)
}

func (this Key) MarshalText() (text []byte, err error) {
	switch this {
	case KeyVolumeUp:
		return []byte("up"), nil
	case KeyVolumeDown:
		return []byte("down"), nil
	case KeyMute:
		return []byte("mute"), nil
	default:
		return nil, fmt.Errorf("illegal key: %d", this)
	}
}

func (this *Key) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

// Keys is a set of keys. An empty set means all keys.
type Keys []Key

func (this *Keys) Set(plain string) error {
	for _, plain := range strings.Split(plain, ",") {
		plain = strings.TrimSpace(plain)
		if plain != "" {
			var v Key
			if err := v.Set(plain); err != nil {
				return err
			}
			if !this.contains(v) {
				*this = append(*this, v)
			}
		}
	}
	return nil
}

func (this Keys) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this Keys) String() string {
	return strings.Join(this.Strings(), ",")
}

func (this Keys) IsCumulative() bool {
	return true
}

func (this Keys) Has(v Key) bool {
	if len(this) == 0 {
		return true
	}
	return this.contains(v)
}

func (this Keys) contains(v Key) bool {
	for _, candidate := range this {
		if v == candidate {
			return true
		}
	}
	return false
}
