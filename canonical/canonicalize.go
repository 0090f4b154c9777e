// Copyright 2025 Lokapal
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package canonical

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Structural rules are line-oriented and spacing-sensitive, so they run
// against the original line content before any whitespace trimming.
var (
	horizontalRegexp  = regexp.MustCompile(`^[ \t]*(\*([ \t]*\*){2,}|-([ \t]*-){2,}|_([ \t]*_){2,})[ \t]*$`)
	boldRegexp        = regexp.MustCompile(`__([^_]+)__`)
	italicRegexp      = regexp.MustCompile(`\b_([^_]+)_\b`)
	bulletRegexp      = regexp.MustCompile(`^([ \t]*)[*+][ \t]+(.*)$`)
	orderedRegexp     = regexp.MustCompile(`^([ \t]*)(\d+)\.[ \t]+(.*)$`)
	linkSpacingRegexp = regexp.MustCompile(`\][ \t]+\(`)
)

// Canonicalize maps raw markdown text to its canonical byte form. Two
// passes run in order: structural normalization of markdown markers
// per line, then textual normalization over the whole document. The
// result is stable under repeated application.
func Canonicalize(text string) string {
	if text == "" {
		return ""
	}
	// Unicode preparation happens up front so marker detection sees
	// composed text without a BOM in the way.
	text = strings.TrimPrefix(text, "\uFEFF")
	text = norm.NFC.String(text)
	// Line terminators collapse to LF before any per-line handling.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = normalizeLine(line)
	}
	return normalizeDocument(lines)
}

// normalizeLine applies the structural markdown rules to a single line.
func normalizeLine(line string) string {
	// Horizontal rules are matched first: a line of bare marker
	// characters carries no prose, and the emphasis rules below would
	// otherwise mangle runs of underscores before the rule could be
	// recognized.
	if horizontalRegexp.MatchString(line) {
		return "---"
	}
	// ATX headings: exactly one space between the hashes and the text
	if hashes := len(line) - len(strings.TrimLeft(line, "#")); hashes >= 1 && hashes <= 6 {
		rest := strings.TrimLeft(line[hashes:], " \t")
		if rest == "" {
			line = line[:hashes]
		} else {
			line = line[:hashes] + " " + rest
		}
	}
	// Emphasis: underscores rewrite to asterisks, italics only at word
	// boundaries so snake_case identifiers survive
	line = boldRegexp.ReplaceAllString(line, "**$1**")
	line = italicRegexp.ReplaceAllString(line, "*$1*")
	// Unordered list markers unify on "- "
	if m := bulletRegexp.FindStringSubmatch(line); m != nil {
		line = m[1] + "- " + m[2]
	}
	// Ordered list markers: exactly one space after the period
	if m := orderedRegexp.FindStringSubmatch(line); m != nil {
		line = m[1] + m[2] + ". " + m[3]
	}
	// No gap between link text and target
	line = linkSpacingRegexp.ReplaceAllString(line, "](")
	// Tilde code fences become backtick fences
	if strings.HasPrefix(line, "~~~") {
		line = "```" + line[3:]
	}
	return line
}

// normalizeDocument applies the textual whole-document rules to the
// structurally-normalized lines and reassembles the result.
func normalizeDocument(lines []string) string {
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		line = strings.ReplaceAll(line, "\t", "    ")
		lines[i] = line
	}
	// Drop leading blank lines
	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	// Drop trailing blank lines
	end := len(lines)
	for end > start && lines[end-1] == "" {
		end--
	}
	if start == end {
		return ""
	}
	// Collapse interior blank-line runs to a single blank line
	out := make([]string, 0, end-start)
	blank := false
	for _, line := range lines[start:end] {
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n") + "\n"
}
