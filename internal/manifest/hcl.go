// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"errors"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/matt-FFFFFF/cmdbind/internal/commands"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

type hclFile struct {
	Commands []hclCommand `hcl:"command,block"`
}

// Name is optional here so a missing name surfaces as a command registration error.
type hclCommand struct {
	Method  string   `hcl:"method,label"`
	Name    string   `hcl:"name,optional"`
	Aliases []string `hcl:"aliases,optional"`
	Help    string   `hcl:"help,optional"`
	Hidden  bool     `hcl:"hidden,optional"`
}

func evalContext(o *parseOptions) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"prefix": cty.StringVal(o.prefix),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
		},
	}
}

func parseHCL(filename string, data []byte, o *parseOptions) (*Manifest, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Join(ErrParseManifest, diags)
	}

	var f hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(o), &f); diags.HasErrors() {
		return nil, errors.Join(ErrParseManifest, diags)
	}

	m := &Manifest{Commands: make([]Command, 0, len(f.Commands))}

	for _, c := range f.Commands {
		m.Commands = append(m.Commands, Command{
			Method: c.Method,
			Annotation: commands.Annotation{
				Command:     c.Name,
				Aliases:     c.Aliases,
				HelpMessage: c.Help,
				Hidden:      c.Hidden,
			},
		})
	}

	return m, nil
}
