// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import "github.com/spf13/afero"

// FsFactory returns the filesystem manifests are loaded from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}
