package bookmarks

import (
	"errors"
	"log"
	"sync"
)

// ErrSlotEmpty is returned by a Slot when nothing has been written under a key yet.
var ErrSlotEmpty = errors.New("bookmarks: slot is empty")

// Diagnostic operation names passed to Diagnostics.Report.
const (
	OpLoad = "load"
	OpSave = "save"
)

// Slot reads and writes a named blob.
type Slot interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// Diagnostics receives failures that the store recovers from on its own.
type Diagnostics interface {
	Report(op string, err error)
}

// DiagnosticsFunc adapts a function to the Diagnostics interface.
type DiagnosticsFunc func(op string, err error)

func (f DiagnosticsFunc) Report(op string, err error) {
	f(op, err)
}

// LogDiagnostics reports failures through the standard logger.
type LogDiagnostics struct{}

func (LogDiagnostics) Report(op string, err error) {
	log.Printf("[BOOKMARKS] %s failed: %v", op, err)
}

// Tee fans a report out to every non-nil sink.
func Tee(sinks ...Diagnostics) Diagnostics {
	return DiagnosticsFunc(func(op string, err error) {
		for _, s := range sinks {
			if s != nil {
				s.Report(op, err)
			}
		}
	})
}

type discardDiagnostics struct{}

func (discardDiagnostics) Report(string, error) {}

// MemorySlot is a Slot kept in process memory.
type MemorySlot struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemorySlot creates an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: make(map[string][]byte)}
}

func (m *MemorySlot) Read(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.data[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemorySlot) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	m.data[key] = buf
	return nil
}
