package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes leveled messages. All levels go to Out, which defaults to
// stderr so stdout only carries command output.
type Logger struct {
	Verbose bool
	Debug   bool
	Out     io.Writer
}

var (
	infoPrefix  = color.New(color.FgGreen).SprintFunc()
	debugPrefix = color.New(color.FgCyan).SprintFunc()
	warnPrefix  = color.New(color.FgYellow).SprintFunc()
	errorPrefix = color.New(color.FgRed).SprintFunc()
)

func (l Logger) writer() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stderr
}

func (l Logger) printf(prefix string, msg string, args ...any) {
	fmt.Fprintf(l.writer(), prefix+" "+msg+"\n", args...)
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.printf(infoPrefix("[info]"), msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.printf(debugPrefix("[debug]"), msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.printf(warnPrefix("[warn]"), msg, args...)
	}
}

// WarnfAlways prints regardless of verbosity. Use it for warnings the user must see.
func (l Logger) WarnfAlways(msg string, args ...any) {
	l.printf(warnPrefix("[warn]"), msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	if l.Debug {
		l.printf(errorPrefix("[error]"), msg, args...)
	}
}

// ErrorfAndReturn logs the message at error level and returns it as an error.
// %w verbs are preserved.
func (l Logger) ErrorfAndReturn(msg string, args ...any) error {
	err := fmt.Errorf(msg, args...)
	l.Errorf("%s", err.Error())
	return err
}
