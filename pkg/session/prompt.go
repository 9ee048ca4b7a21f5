/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package session

import (
	"regexp"
	"strings"
)

var (
	anyPromptRe    = regexp.MustCompile(`(?:\A|[\r\n])([^\r\n#>]+?)([>#])[ \t]*\z`)
	configModeRe   = regexp.MustCompile(`\([^)]*\)\s*$`)
	passwordRe     = regexp.MustCompile(`(?i)password:[ \t]*\z`)
	pressAnyKeyRe  = regexp.MustCompile(`(?i)press any key to continue[^\r\n]*\z`)
	lineEndingsRep = strings.NewReplacer("\r\n", "\n", "\r", "")
)

// prompt is the learned CLI prompt of a device.
type prompt struct {
	base string
	re   *regexp.Regexp
}

// learnPrompt extracts the prompt at the end of text. mode is '>' for user
// exec and '#' for privileged exec.
func learnPrompt(text string) (*prompt, byte, bool) {
	m := anyPromptRe.FindStringSubmatch(text)
	if m == nil {
		return nil, 0, false
	}

	base := strings.TrimSpace(configModeRe.ReplaceAllString(m[1], ""))
	if base == "" {
		return nil, 0, false
	}

	return newPrompt(base), m[2][0], true
}

func newPrompt(base string) *prompt {
	return &prompt{
		base: base,
		re:   regexp.MustCompile(`(?:\A|[\r\n])` + regexp.QuoteMeta(base) + `(?:\([^)\r\n]*\))?[>#][ \t]*\z`),
	}
}

// promptMode returns the privilege marker that ends a prompt line.
func promptMode(text string) byte {
	text = strings.TrimRight(text, " \t")
	if text == "" {
		return 0
	}

	return text[len(text)-1]
}

// cleanOutput normalises line endings, then drops the trailing prompt line
// and, when present, the echoed command line.
func cleanOutput(raw, command string) string {
	out := lineEndingsRep.Replace(raw)

	if i := strings.LastIndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	} else {
		return ""
	}

	first, rest, found := strings.Cut(out, "\n")
	if strings.TrimSpace(first) == strings.TrimSpace(command) {
		if !found {
			return ""
		}

		out = rest
	}

	return strings.TrimLeft(out, "\n")
}
