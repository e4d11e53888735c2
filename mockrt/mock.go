package mockrt

import (
	"fmt"
	"strings"
)

// Entry is one recorded method invocation.
type Entry struct {
	MethodName string
	Args       []any
}

// String renders the entry as "Name(a1, a2)", each argument in its
// natural string form.
func (e Entry) String() string {
	var sb strings.Builder

	sb.WriteString(e.MethodName)
	sb.WriteByte('(')

	for i, a := range e.Args {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(fmt.Sprint(a))
	}

	sb.WriteByte(')')

	return sb.String()
}

// Mock is the state shared by every generated mock.
type Mock struct {
	// ReturnDefaultIfNotMocked makes unconfigured members return zero
	// values instead of panicking.
	ReturnDefaultIfNotMocked bool

	history []Entry
}

// New returns a Mock with the given fallback mode.
func New(returnDefaultIfNotMocked bool) Mock {
	return Mock{ReturnDefaultIfNotMocked: returnDefaultIfNotMocked}
}

// Record appends an invocation to the history. Arguments are kept as passed.
func (m *Mock) Record(name string, args ...any) {
	m.history = append(m.history, Entry{MethodName: name, Args: args})
}

// HistoryEntries returns the recorded invocations, oldest first.
func (m *Mock) HistoryEntries() []Entry {
	return append([]Entry(nil), m.history...)
}

// History returns the string form of every recorded invocation.
func (m *Mock) History() []string {
	out := make([]string, 0, len(m.history))
	for _, e := range m.history {
		out = append(out, e.String())
	}

	return out
}

// Calls returns the recorded invocations of one method.
func (m *Mock) Calls(name string) []Entry {
	var out []Entry

	for _, e := range m.history {
		if e.MethodName == name {
			out = append(out, e)
		}
	}

	return out
}

// Reset clears the history.
func (m *Mock) Reset() {
	m.history = nil
}
