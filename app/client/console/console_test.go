package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Lines(t *testing.T) {
	c := NewWithIO(strings.NewReader("hello\n/exit\nlast"), &bytes.Buffer{})
	c.Start()
	c.Start()

	var lines []string
	for line := range c.Lines() {
		lines = append(lines, line)
	}

	assert.Equal(t, []string{"hello", "/exit", "last"}, lines)
}

func TestClient_LongLine(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	c := NewWithIO(strings.NewReader(long+"\n/intents\n"), &bytes.Buffer{})
	c.Start()

	var lines []string
	for line := range c.Lines() {
		lines = append(lines, line)
	}

	assert.Equal(t, []string{long, "/intents"}, lines)
}

func TestClient_Output(t *testing.T) {
	var out bytes.Buffer
	c := NewWithIO(strings.NewReader(""), &out)

	c.Prompt("> ")
	c.Print("Hi!")

	assert.Equal(t, "> Hi!\n", out.String())
}
