// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/json"
)

// ParseResult contains the result of a successful parse.
type ParseResult[T any] struct {
	// Value is the decoded Go value.
	Value *T

	// Unified is the document unified with its schema definition. Callers use
	// it to look up fields the Go type does not declare.
	Unified cue.Value
}

// ParseAndDecode validates data against the definition at schemaPath in
// schema (for example "#Config") and decodes the result into T.
//
// Errors other than a broken schema are returned in the form produced by
// FormatError.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	filename := options.filename

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	userValue, err := compileDocument(ctx, data, filename, options.json)
	if err != nil {
		return nil, err
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

func compileDocument(ctx *cue.Context, data []byte, filename string, isJSON bool) (cue.Value, error) {
	if !isJSON {
		v := ctx.CompileBytes(data, cue.Filename(filename))
		if v.Err() != nil {
			return cue.Value{}, FormatError(v.Err(), filename)
		}
		return v, nil
	}

	expr, err := json.Extract(filename, data)
	if err != nil {
		return cue.Value{}, FormatError(err, filename)
	}
	v := ctx.BuildExpr(expr, cue.Filename(filename))
	if v.Err() != nil {
		return cue.Value{}, FormatError(v.Err(), filename)
	}
	return v, nil
}
