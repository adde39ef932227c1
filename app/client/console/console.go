package console

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/samber/do"
)

const (
	bufferSize = 64

	initialLineSize = 64 * 1024
	maxLineSize     = 64 * 1024 * 1024
)

type Client struct {
	in  io.Reader
	out io.Writer

	lines chan string
	once  sync.Once
	mu    sync.Mutex
}

func NewClient(_ *do.Injector) (*Client, error) {
	return NewWithIO(os.Stdin, os.Stdout), nil
}

func NewWithIO(in io.Reader, out io.Writer) *Client {
	return &Client{
		in:    in,
		out:   out,
		lines: make(chan string, bufferSize),
	}
}

// Start launches the reader goroutine. The channel returned by Lines is
// closed at end of input.
func (c *Client) Start() {
	c.once.Do(func() {
		go c.readLoop()
	})
}

func (c *Client) readLoop() {
	defer close(c.lines)

	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, initialLineSize), maxLineSize)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}

	if err := scanner.Err(); err != nil {
		slog.Warn("Console read failed", "error", err)
	}
}

func (c *Client) Lines() <-chan string {
	return c.lines
}

func (c *Client) Print(text string) {
	c.write(text + "\n")
}

func (c *Client) Prompt(prompt string) {
	c.write(prompt)
}

func (c *Client) write(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := fmt.Fprint(c.out, text); err != nil {
		slog.Warn("Console write failed", "error", err)
	}
}
