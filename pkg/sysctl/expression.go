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

package sysctl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NVIDIA/perf-advisor/pkg/errors"
)

// Operator represents a comparison operator in recommendation expressions.
type Operator string

const (
	// OperatorGTE represents ">=" (greater than or equal).
	OperatorGTE Operator = ">="

	// OperatorLTE represents "<=" (less than or equal).
	OperatorLTE Operator = "<="

	// OperatorGT represents ">" (greater than).
	OperatorGT Operator = ">"

	// OperatorLT represents "<" (less than).
	OperatorLT Operator = "<"

	// OperatorEQ represents "==" (exact match).
	OperatorEQ Operator = "=="

	// OperatorNE represents "!=" (not equal).
	OperatorNE Operator = "!="

	// OperatorExact represents no operator (exact string match).
	OperatorExact Operator = ""
)

// ParsedExpression represents a parsed recommendation expression.
type ParsedExpression struct {
	// Operator is the comparison operator (or empty for exact match).
	Operator Operator

	// Value is the expected value after the operator.
	Value string
}

// ParseExpression parses a recommendation value expression.
// Examples:
//   - ">= 262144" -> {Operator: ">=", Value: "262144"}
//   - "1"         -> {Operator: "", Value: "1"}
//   - "== always" -> {Operator: "==", Value: "always"}
func ParseExpression(expr string) (*ParsedExpression, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "expression cannot be empty")
	}

	pe := &ParsedExpression{}

	// Check operators longest first to avoid matching ">" when ">=" is intended.
	operators := []Operator{OperatorGTE, OperatorLTE, OperatorNE, OperatorEQ, OperatorGT, OperatorLT}
	for _, op := range operators {
		if strings.HasPrefix(expr, string(op)) {
			pe.Operator = op
			pe.Value = strings.TrimSpace(strings.TrimPrefix(expr, string(op)))
			break
		}
	}

	if pe.Operator == "" {
		pe.Operator = OperatorExact
		pe.Value = expr
	}

	if pe.Value == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("expression %q has no value", expr))
	}

	return pe, nil
}

// Evaluate compares an actual value against the expression. Ordering
// operators require both sides to parse as numbers; equality operators
// fall back to string comparison when either side is non-numeric.
func (pe *ParsedExpression) Evaluate(actual string) (bool, error) {
	actual = strings.TrimSpace(actual)

	expectedNum, expErr := strconv.ParseFloat(pe.Value, 64)
	actualNum, actErr := strconv.ParseFloat(actual, 64)
	numeric := expErr == nil && actErr == nil

	switch pe.Operator {
	case OperatorGTE, OperatorLTE, OperatorGT, OperatorLT:
		if !numeric {
			return false, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"ordering comparison requires numeric values",
				map[string]any{"expected": pe.Value, "actual": actual})
		}
		switch pe.Operator {
		case OperatorGTE:
			return actualNum >= expectedNum, nil
		case OperatorLTE:
			return actualNum <= expectedNum, nil
		case OperatorGT:
			return actualNum > expectedNum, nil
		default:
			return actualNum < expectedNum, nil
		}
	case OperatorNE:
		if numeric {
			return actualNum != expectedNum, nil
		}
		return actual != pe.Value, nil
	case OperatorEQ, OperatorExact:
		if numeric {
			return actualNum == expectedNum, nil
		}
		return actual == pe.Value, nil
	default:
		return false, errors.New(errors.ErrCodeInternal,
			fmt.Sprintf("unknown operator %q", pe.Operator))
	}
}
