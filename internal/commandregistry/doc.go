// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandregistry discovers the commands a host declares, binds them to
// their names and aliases, and installs them into a dispatcher as a unit.
//
// A Registry is built once by New and released once by Close. Owners should
// defer Close immediately after a successful New so every exit path uninstalls
// the commands:
//
//	reg, err := commandregistry.New(ctx, host, d)
//	if err != nil {
//		return err
//	}
//	defer reg.Close() //nolint:errcheck
package commandregistry
