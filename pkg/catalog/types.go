/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package catalog

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/perf-advisor/pkg/header"
)

// Category groups diagnostic entries by the resource they probe.
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryMemory      Category = "memory"
	CategoryIO          Category = "io"
	CategoryNetwork     Category = "network"
	CategoryTimekeeping Category = "timekeeping"
)

// Categories is the list of all catalog categories.
var Categories = []Category{
	CategoryCPU,
	CategoryMemory,
	CategoryIO,
	CategoryNetwork,
	CategoryTimekeeping,
}

var (
	titleCaser = cases.Title(language.English)
	upperCaser = cases.Upper(language.English)
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// Display returns the category name in title case for table headings.
func (c Category) Display() string {
	if c == CategoryCPU || c == CategoryIO {
		return upperCaser.String(string(c))
	}
	return titleCaser.String(string(c))
}

// IsValid checks if the Category is one of the recognized categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Entry is one diagnostic command with its interpretation notes.
type Entry struct {
	// Name is a short stable identifier (e.g. "vmstat").
	Name string `json:"name" yaml:"name"`

	// Category groups the entry by probed resource.
	Category Category `json:"category" yaml:"category"`

	// Command is the one-liner to run.
	Command string `json:"command" yaml:"command"`

	// Description says what the command shows and what to look for.
	Description string `json:"description" yaml:"description"`

	// Caution notes overhead or side effects, when any.
	Caution string `json:"caution,omitempty" yaml:"caution,omitempty"`
}

// Catalog is the serializable resource wrapping a list of entries.
type Catalog struct {
	header.Header `json:",inline" yaml:",inline"`

	// Entries are the diagnostic commands, sorted by category then name.
	Entries []Entry `json:"entries" yaml:"entries"`
}
