// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package file

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// Option configures the Parser.
type Option func(*Parser)

// Parser parses small configuration and proc files with customizable settings.
type Parser struct {
	maxSize      int
	skipComments bool
	kvDelimiter  string
}

// WithMaxSize sets the maximum size (in bytes) of the file to be parsed.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether to skip comment lines. Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key-value delimiter used in GetMap. Default is ":".
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = kvDelim
	}
}

// NewParser creates a new file parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxSize:      1 << 20, // 1MB default
		skipComments: true,
		kvDelimiter:  ":",
	}

	// Apply options
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetValue reads the file at the given path and returns its content as a
// single trimmed string. Intended for one-value kernel interface files such
// as /sys/devices/system/clocksource/clocksource0/current_clocksource.
func (p *Parser) GetValue(path string) (string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("file %q is empty", path)
	}
	return lines[0], nil
}

// GetLines reads the file at the given path and returns its non-empty,
// whitespace-trimmed lines. An error is returned if the file cannot be
// read, exceeds the maximum size, or contains invalid UTF-8 content.
func (p *Parser) GetLines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	parts := strings.Split(string(b), "\n")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		cleanPart := strings.TrimSpace(part)
		if cleanPart == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(cleanPart, "#") {
			continue
		}
		result = append(result, cleanPart)
	}

	return result, nil
}

// GetMap reads the file at the given path and parses each line into a
// key-value pair split on the configured delimiter. Lines without the
// delimiter are skipped. Later duplicate keys overwrite earlier ones,
// which collapses the per-CPU repetition in files like /proc/cpuinfo.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]string, len(lines))
	for _, line := range lines {
		kv := strings.SplitN(line, p.kvDelimiter, 2)
		if len(kv) != 2 {
			continue
		}
		result[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}

	return result, nil
}
