package control

import (
	"fmt"
	"strings"
)

// MatchStrategy decides how the focused process is joined with its audio
// session. It is chosen once and used for every key event.
type MatchStrategy uint8

// The zero value means unset and behaves like MatchDefault.
const (
	MatchByPid  = MatchStrategy(1)
	MatchByPath = MatchStrategy(2)

	MatchDefault = MatchByPid
)

var (
	AllMatchStrategies = MatchStrategies{
		MatchByPid,
		MatchByPath,
	}
)

func (this *MatchStrategy) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "pid":
		*this = MatchByPid
		return nil
	case "path", "executable":
		*this = MatchByPath
		return nil
	default:
		return fmt.Errorf("illegal-match-strategy: %s", plain)
	}
}

func (this MatchStrategy) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-match-strategy-%d", this)
	}
	return string(v)
}

func (this MatchStrategy) MarshalText() (text []byte, err error) {
	switch this {
	case MatchByPid:
		return []byte("pid"), nil
	case MatchByPath:
		return []byte("path"), nil
	default:
		return nil, fmt.Errorf("illegal match strategy: %d", this)
	}
}

func (this *MatchStrategy) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type MatchStrategies []MatchStrategy

func (this MatchStrategies) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this MatchStrategies) String() string {
	return strings.Join(this.Strings(), ",")
}
