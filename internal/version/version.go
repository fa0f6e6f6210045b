// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package version implements reading of build version information.
package version

import (
	"fmt"

	"github.com/sunyihoo/ethcodec/version"
)

const ourPath = "github.com/sunyihoo/ethcodec" // Path to our module

// Family holds the textual version string for major.minor
var Family = fmt.Sprintf("%d.%d", version.Major, version.Minor)

// Semantic holds the textual version string for major.minor.patch.
var Semantic = fmt.Sprintf("%d.%d.%d", version.Major, version.Minor, version.Patch)

// WithMeta holds the textual version string including the metadata.
var WithMeta = withMeta(Semantic, version.Meta)

func withMeta(semantic, meta string) string {
	if meta != "" {
		return semantic + "-" + meta
	}
	return semantic
}

// WithCommit appends the first eight characters of the commit hash and, for
// non-stable releases, the commit date to WithMeta.
//
// WithCommit 在版本字符串后追加提交哈希前 8 位以及非稳定版本的提交日期。
func WithCommit(gitCommit, gitDate string) string {
	return withCommit(WithMeta, version.Meta, gitCommit, gitDate)
}

func withCommit(vsn, meta, gitCommit, gitDate string) string {
	if len(gitCommit) >= 8 {
		vsn += "-" + gitCommit[:8]
	}
	if meta != "stable" && gitDate != "" {
		vsn += "-" + gitDate
	}
	return vsn
}

// Info returns the full version string of the running binary, including the
// VCS commit and a "-dirty" marker for builds from a modified tree.
func Info() string {
	git, ok := VCS()
	if !ok {
		return WithMeta
	}
	vsn := WithCommit(git.Commit, git.Date)
	if git.Dirty {
		vsn += "-dirty"
	}
	return vsn
}
