// SPDX-License-Identifier: MPL-2.0

// Package cueutil loads CUE documents against an embedded schema.
//
// Both the targetprobe configuration file and CUE target descriptors go
// through the same three steps:
//
//  1. Compile the embedded schema
//  2. Compile the user document and unify it with the schema definition
//  3. Validate and decode into a Go struct
//
// # Usage
//
//	//go:embed descriptor_schema.cue
//	var descriptorSchema []byte
//
//	result, err := cueutil.ParseAndDecode[descriptorFile](
//	    descriptorSchema,
//	    data,
//	    "#Descriptor",
//	    cueutil.WithFilename(path),
//	)
//	if err != nil {
//	    return err // *ValidationError carries the CUE path of the bad field
//	}
//	defines := result.Value.Defines
package cueutil
