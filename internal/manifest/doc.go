// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package manifest reads command annotations for a host's methods from a file.
//
// Two formats are supported, chosen by file extension. YAML:
//
//	commands:
//	  - method: Hunt
//	    command: /hunt
//	    aliases: [/h]
//	    help: Show the hunt window
//
// and HCL, where the `prefix` variable and the upper, lower and format
// functions are available in expressions:
//
//	command "Hunt" {
//	  name    = "${prefix}hunt"
//	  aliases = ["${prefix}h"]
//	  help    = "Show the hunt window"
//	}
package manifest
