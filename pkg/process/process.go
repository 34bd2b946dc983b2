package process

import (
	"fmt"

	"github.com/shirou/gopsutil/process"
)

// ExecutableOf returns the full path of the executable of the process pid.
func ExecutableOf(pid uint32) (string, error) {
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", fmt.Errorf("cannot access process %d: %w", pid, err)
	}
	exe, err := p.Exe()
	if err != nil {
		return "", fmt.Errorf("cannot get executable of process %d: %w", pid, err)
	}
	return exe, nil
}
