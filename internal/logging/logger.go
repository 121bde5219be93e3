package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/manishiitg/deepseek-chat-go/interfaces"
)

// SimpleLogger is a basic leveled logger writing formatted lines to a
// single destination
type SimpleLogger struct {
	output io.Writer
	level  string
}

// New creates a logger writing to stderr, or to logFile when non-empty.
// Debugf output is emitted only when level is "debug".
func New(logFile string, level string) interfaces.Logger {
	var output io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			output = file
		}
	}
	return &SimpleLogger{output: output, level: level}
}

// Noop returns a logger that discards everything. The interactive chat
// command uses it by default so log lines never interleave with streamed
// model output.
func Noop() interfaces.Logger {
	return &SimpleLogger{output: io.Discard}
}

func (l *SimpleLogger) Infof(format string, v ...any) {
	_, _ = fmt.Fprintf(l.output, "[INFO] "+format+"\n", v...)
}

func (l *SimpleLogger) Errorf(format string, v ...any) {
	_, _ = fmt.Fprintf(l.output, "[ERROR] "+format+"\n", v...)
}

func (l *SimpleLogger) Debugf(format string, args ...interface{}) {
	if l.level == "debug" {
		_, _ = fmt.Fprintf(l.output, "[DEBUG] "+format+"\n", args...)
	}
}
