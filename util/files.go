// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureAbsolute - a relative file path is taken from directory
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// FirstLine - first line of a text file that is neither blank nor a
// "#" comment, with surrounding white space removed
func FirstLine(fileName string) (string, error) {
	f, err := os.Open(fileName)
	if nil != err {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if "" == s || strings.HasPrefix(s, "#") {
			continue
		}
		return s, nil
	}
	if err := scanner.Err(); nil != err {
		return "", err
	}
	return "", fmt.Errorf("file: %q has no content", fileName)
}
