// mafkit: a toolkit for analyzing multiple alignment format (MAF) files.
// Copyright (c) 2021 the mafkit authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License along with this program. If not, see
// <https://github.com/compgen/mafkit/blob/master/LICENSE.txt>.

package maf

import (
	"errors"
	"fmt"
)

// ErrPrematureEndOfInput is reported by drivers when the input ends
// before any MAF item is found.
var ErrPrematureEndOfInput = errors.New("premature end of input: no MAF items found")

// An UnexpectedLineError reports a line that is not valid at its
// position: a stray line at the top level, or an "i" line with no
// matching preceding "s" line.
type UnexpectedLineError struct {
	Line   string
	Reason string
}

func (err *UnexpectedLineError) Error() string {
	return fmt.Sprintf("unexpected line %q: %v", err.Line, err.Reason)
}

// A MetadataError reports a block header token that is not a
// key=value pair.
type MetadataError struct {
	Token string
}

func (err *MetadataError) Error() string {
	return fmt.Sprintf("malformed metadata token %q in block header", err.Token)
}

// A LineKindError reports an unrecognized first token in a block body
// line.
type LineKindError struct {
	Kind string
}

func (err *LineKindError) Error() string {
	return fmt.Sprintf("unrecognized line kind %q in block body", err.Kind)
}

// A FieldError reports a missing or invalid field in a block body
// line, named after the semantic field.
type FieldError struct {
	Kind  string
	Field string
	Value string
}

func (err *FieldError) Error() string {
	if err.Value == "" {
		return fmt.Sprintf("missing %v field in %v line", err.Field, err.Kind)
	}
	return fmt.Sprintf("invalid %v field %q in %v line", err.Field, err.Value, err.Kind)
}

// A QualityError reports a "q" quality line, which the parser does not
// support.
type QualityError struct {
	Line string
}

func (err *QualityError) Error() string {
	return fmt.Sprintf("quality lines are not supported: %q", err.Line)
}
