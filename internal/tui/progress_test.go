package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_PlainOutputWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "Processing PDFs")
	p.Update(1, 2)
	p.Update(2, 2)
	p.Done()
	assert.Equal(t, "Processing PDFs [1/2]\nProcessing PDFs [2/2]\n", buf.String())
}

func TestProgress_TerminalRendersBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "Processing PDFs")
	p.tty = true
	p.Update(1, 4)
	p.Done()
	out := buf.String()
	assert.Contains(t, out, "\r")
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "Processing PDFs")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestProgress_DoneWithoutUpdates(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "x")
	p.tty = true
	p.Done()
	assert.Empty(t, buf.String())
}
