package main

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// multilineDelimiter toggles multi-line capture: a line containing only
// this marker starts a block, a second one submits it.
const multilineDelimiter = `"""`

// readInput reads one submission from the prompt: a single trimmed line,
// or a multi-line block delimited by `"""` lines. Returns io.EOF when the
// input is exhausted (Ctrl+D).
func readInput(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}

	text := strings.TrimSpace(line)
	if text != multilineDelimiter {
		return text, nil
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			// Ctrl+D inside a block submits what was captured
			if errors.Is(err, io.EOF) {
				if trimmed := strings.TrimRight(line, "\r\n"); trimmed != "" {
					lines = append(lines, trimmed)
				}
				break
			}
			return "", err
		}
		if strings.TrimSpace(line) == multilineDelimiter {
			break
		}
		lines = append(lines, strings.TrimRight(line, "\r\n"))
	}
	return strings.Join(lines, "\n"), nil
}
