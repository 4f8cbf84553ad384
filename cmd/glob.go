// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// expandArgs expands file arguments.  A pattern ending with "/..." expands to
// every .lisp file found recursively under the directory and an argument
// containing glob metacharacters expands to its matches.  Other arguments
// pass through unchanged.
func expandArgs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if dir, ok := strings.CutSuffix(arg, "/..."); ok {
			if dir == "" {
				dir = "."
			}
			files, err := findLispFiles(dir)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			out = append(out, files...)
			continue
		}
		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %s", arg)
			}
			out = append(out, matches...)
			continue
		}
		out = append(out, arg)
	}
	return out, nil
}

func findLispFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".lisp" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
