// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseResult holds a decoded document.
type ParseResult[T any] struct {
	// Value is the decoded Go struct.
	Value *T

	// Unified is the document unified with the schema definition, for callers
	// that need to inspect fields the struct does not carry.
	Unified cue.Value
}

// ParseAndDecode validates data against the schemaPath definition of schema
// (e.g. "#Config") and decodes it into a T.
//
// Errors in the user document are returned as *ValidationError; a schema that
// fails to compile is an internal error.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)

	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{
		Value:   &result,
		Unified: unified,
	}, nil
}

// ParseFile reads path and decodes it with ParseAndDecode. The file size is
// checked before the file is read. WithFilename defaults to path.
func ParseFile[T any](schema []byte, path, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > options.maxFileSize {
		return nil, &FileTooLargeError{FilePath: path, Size: info.Size(), Max: options.maxFileSize}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	all := append([]Option{WithFilename(path)}, opts...)
	return ParseAndDecode[T](schema, data, schemaPath, all...)
}
