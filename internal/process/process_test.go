package process

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProcess(t *testing.T) {
	p := NewProcess()
	assert.NotNil(t, p)

	assert.Equal(t, 0, len(p.procList))

	err := p.ListProcesses()
	assert.NoError(t, err)
}

func TestOthers_ExcludesSelf(t *testing.T) {
	self := os.Getpid()

	p := &Process{procList: []Process{
		{PID: self, Exec: "kboard", Name: "kboard"},
		{PID: self + 1, Exec: "kboard", Name: "kboard"},
		{PID: self + 2, Exec: "KBOARD", Name: "KBOARD"},
		{PID: self + 3, Exec: "gopls", Name: "gopls"},
	}}

	others := p.Others("kboard")
	assert.Len(t, others, 2)

	for _, o := range others {
		assert.NotEqual(t, self, o.PID)
	}

	assert.True(t, p.IsProcessRunning(self+3))
	assert.True(t, p.ProcessExists(self+1, "kboard"))
	assert.False(t, p.ProcessExists(self+3, "kboard"))
	assert.False(t, p.ProcessExists(self+9, "kboard"))
}
