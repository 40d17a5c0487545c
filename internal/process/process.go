// Package process finds other running kboard processes. It is used to
// explain why the board database is locked.
package process

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/gops/goprocess"
)

type Process struct {
	procList []Process

	PID  int
	Exec string
	Path string
	Name string
}

func NewProcess() *Process {
	return &Process{}
}

// ListProcesses snapshots the running Go processes.
func (p *Process) ListProcesses() error {
	p.procList = p.procList[:0]

	for _, proc := range goprocess.FindAll() {
		p.procList = append(p.procList, Process{
			PID:  proc.PID,
			Exec: proc.Exec,
			Path: proc.Path,
			Name: strings.TrimSuffix(filepath.Base(proc.Path), ".exe"),
		})
	}

	return nil
}

func (p *Process) IsProcessRunning(pid int) bool {
	for _, proc := range p.procList {
		if proc.PID == pid {
			return true
		}
	}

	return false
}

func (p *Process) ProcessExists(pid int, name string) bool {
	for _, proc := range p.procList {
		if proc.PID == pid {
			return matches(proc, name)
		}
	}

	return false
}

// Others returns the processes named name, excluding this one.
func (p *Process) Others(name string) []Process {
	self := os.Getpid()

	var out []Process

	for _, proc := range p.procList {
		if proc.PID != self && matches(proc, name) {
			out = append(out, proc)
		}
	}

	return out
}

func matches(proc Process, name string) bool {
	return strings.EqualFold(proc.Name, name) || strings.EqualFold(proc.Exec, name)
}
