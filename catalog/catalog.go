// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package catalog discovers source files under a department-structured root.
//
// The expected layout is root/<department>/<file>: first-level
// subdirectories are departments, regular files directly inside them are
// sources. Nothing is recursed into and no file is opened; discovery only
// stats what it lists.
package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/medallion/audit"
	"github.com/poiesic/medallion/core"
)

// Discover walks root and returns the department groupings in directory
// order. A missing or unreadable root is not an error to the caller: it
// records a fatal SOURCE_ROOT_NOT_FOUND event and returns an empty result,
// leaving the batch to proceed with nothing to do.
func Discover(root string, log *audit.Log, logger *slog.Logger) []core.Department {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		log.Error(audit.StageDiscovery, root, audit.IssueSourceRootNotFound,
			fmt.Sprintf("source root not readable: %v", err))
		return nil
	}

	var departments []core.Department
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dept := core.Department{Name: entry.Name()}

		deptPath := filepath.Join(root, entry.Name())
		files, err := os.ReadDir(deptPath)
		if err != nil {
			logger.Warn("skipping unreadable department", "department", entry.Name(), "err", err)
			continue
		}

		for _, file := range files {
			if !file.Type().IsRegular() {
				continue
			}
			info, err := file.Info()
			if err != nil {
				logger.Warn("skipping unstatable file", "department", entry.Name(), "file", file.Name(), "err", err)
				continue
			}
			dept.Sources = append(dept.Sources, core.SourceDescriptor{
				Filename:   file.Name(),
				Path:       filepath.Join(deptPath, file.Name()),
				Format:     core.FormatFromFilename(file.Name()),
				Department: entry.Name(),
				SizeBytes:  info.Size(),
			})
		}

		logger.Info("discovered department", "department", dept.Name, "files", len(dept.Sources))
		departments = append(departments, dept)
	}
	return departments
}
