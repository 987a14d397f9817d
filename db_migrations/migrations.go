// Copyright (c) 2026, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package dbmigrations holds the ordered schema migrations for the
// postgres credential store backend, applied through gormigrate.
package dbmigrations

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// migration is one schema step. IDs are ordered and never reused.
type migration struct {
	ID      int
	Migrate func(db *gorm.DB) error
}

var registry = []migration{
	migration001,
}

func runSQL(tx *gorm.DB, sql string) error {
	return tx.Exec(sql).Error
}

// Migrate applies all registered migrations in ID order.
func Migrate(db *gorm.DB) error {
	sort.Slice(registry, func(i, j int) bool { return registry[i].ID < registry[j].ID })

	steps := make([]*gormigrate.Migration, 0, len(registry))
	for _, m := range registry {
		steps = append(steps, &gormigrate.Migration{
			ID:      fmt.Sprintf("%03d", m.ID),
			Migrate: m.Migrate,
		})
	}

	migrator := gormigrate.New(db, gormigrate.DefaultOptions, steps)
	if err := migrator.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	slog.Info("database migrations applied", slog.Int("count", len(steps)))
	return nil
}
