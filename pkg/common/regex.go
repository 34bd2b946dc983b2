package common

import (
	"fmt"
	"regexp"
)

func NewRegexp(plain string) (result Regexp, err error) {
	err = result.Set(plain)
	return result, err
}

func MustNewRegexp(plain string) Regexp {
	result, err := NewRegexp(plain)
	if err != nil {
		panic(err)
	}
	return result
}

// Regexp is a case-insensitive pattern usable as flag and yaml value. It is
// used to match executable paths, which are case-insensitive on Windows.
type Regexp struct {
	plain string
	v     *regexp.Regexp
}

func (this *Regexp) Set(plain string) error {
	if plain == "" {
		*this = Regexp{}
		return nil
	}

	buf, err := regexp.Compile("(?i)" + plain)
	if err != nil {
		return fmt.Errorf("%w: illegal-regexp: %s", ErrInvalidParameter, plain)
	}

	*this = Regexp{plain, buf}
	return nil
}

func (this Regexp) String() string {
	return this.plain
}

// MatchString reports whether s matches. An empty Regexp matches nothing.
func (this Regexp) MatchString(s string) bool {
	if v := this.v; v != nil {
		return v.MatchString(s)
	}
	return false
}

func (this Regexp) MarshalText() (text []byte, err error) {
	return []byte(this.String()), nil
}

func (this *Regexp) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

func (this Regexp) IsZero() bool {
	return this.v == nil
}

func (this Regexp) HasContent() bool {
	return !this.IsZero()
}
