// Package include expands @file(path) inclusion directives in user input
// by substituting the referenced file's contents before the message is
// sent to the model.
package include

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// directivePattern matches @file(<path>) markers; multiple directives may
// appear in one input, inline or on their own lines.
var directivePattern = regexp.MustCompile(`@file\(([^)]*)\)`)

// Notice records one directive resolution attempt, successful or not,
// so the caller can surface what was read.
type Notice struct {
	Path string
	Err  error
}

// Expand resolves every inclusion directive in input, left to right.
// A readable UTF-8 file replaces its directive with a delimited block
// carrying the path and full contents; a directive that cannot be
// resolved is replaced with an inline error marker and never dropped
// silently. Paths are resolved by the OS relative to the process working
// directory. Expand never fails: file access problems are reported in
// the returned notices and inside the transformed text.
//
// No size cap is applied; keeping included files reasonable is up to the
// operator.
func Expand(input string) (string, []Notice) {
	if !strings.Contains(input, "@file(") {
		return input, nil
	}

	var notices []Notice
	expanded := directivePattern.ReplaceAllStringFunc(input, func(directive string) string {
		path := strings.TrimSpace(directivePattern.FindStringSubmatch(directive)[1])
		if path == "" {
			err := fmt.Errorf("empty path")
			notices = append(notices, Notice{Path: path, Err: err})
			return errorMarker(path, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			notices = append(notices, Notice{Path: path, Err: err})
			return errorMarker(path, err)
		}
		if !utf8.Valid(data) {
			err := fmt.Errorf("not valid UTF-8 text")
			notices = append(notices, Notice{Path: path, Err: err})
			return errorMarker(path, err)
		}

		notices = append(notices, Notice{Path: path})
		return fileBlock(path, string(data))
	})

	return expanded, notices
}

// fileBlock delimits injected file content so the model can tell it apart
// from conversational text
func fileBlock(path, content string) string {
	return fmt.Sprintf("\n===== BEGIN FILE %s =====\n%s\n===== END FILE %s =====\n", path, content, path)
}

func errorMarker(path string, err error) string {
	return fmt.Sprintf("[could not read file %s: %v]", path, err)
}
