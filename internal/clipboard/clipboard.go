// Package clipboard abstracts the system clipboard, the one I/O boundary of
// the export/import flow.
package clipboard

import "github.com/atotto/clipboard"

// Clipboard reads and writes plain text. Implementations are not expected to
// coordinate concurrent access; callers treat a round trip as a single step.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// System is the real OS clipboard.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (*System) Read() (string, error) {
	return clipboard.ReadAll()
}

func (*System) Write(text string) error {
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard for tests and non-interactive use.
type Memory struct {
	text string
	err  error
}

func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

// NewFailing returns a Memory clipboard whose operations fail with err.
func NewFailing(err error) *Memory {
	return &Memory{err: err}
}

func (m *Memory) Read() (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func (m *Memory) Write(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}
