// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commands defines the shapes shared between a host, the command registry
// and a dispatcher: the handler signature, the entry installed per command name,
// the declaration and annotation metadata, and the dispatcher contract.
package commands
