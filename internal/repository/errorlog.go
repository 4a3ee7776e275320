package repository

import (
	"fmt"
	"strings"
)

// ErrorLog accumulates the diagnostics of the most recent public operation
// of a repository. It is cleared when the next operation starts.
type ErrorLog struct {
	messages []string
}

func (l *ErrorLog) Clear() {
	l.messages = l.messages[:0]
}

func (l *ErrorLog) Append(message string) {
	l.messages = append(l.messages, message)
}

func (l *ErrorLog) Appendf(format string, args ...interface{}) {
	l.Append(fmt.Sprintf(format, args...))
}

// Messages returns a copy of the recorded messages, oldest first.
func (l *ErrorLog) Messages() []string {
	out := make([]string, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *ErrorLog) Len() int {
	return len(l.messages)
}

func (l *ErrorLog) Empty() bool {
	return len(l.messages) == 0
}

// String joins the messages one per line.
func (l *ErrorLog) String() string {
	return strings.Join(l.messages, "\n")
}
