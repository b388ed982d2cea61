// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates and decodes documents against embedded CUE
// schemas.
//
// Both the CLI configuration file and the package.json manifest of a
// migration package go through the same three steps:
//
//  1. Compile the embedded schema
//  2. Compile the document (CUE or JSON) and unify it with the schema
//  3. Validate and decode into a Go value
//
// # Usage
//
//	//go:embed package_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[Details](
//	    schema,
//	    data,
//	    "#Package",
//	    cueutil.WithFilename("package.json"),
//	    cueutil.WithJSON(),
//	)
//	if err != nil {
//	    return nil, err // includes the field path of the offending value
//	}
//	return result.Value, nil
package cueutil
