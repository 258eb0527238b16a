// Copyright (c) 2025, Adex Ltd. (https://adex.ltd).
//
// Adex Ltd. licenses this file to you under the Apache License,
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

package dbmigrations

import (
	"fmt"
	"log/slog"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/adexltd/accounts-service/db"
)

// Migrate runs all pending schema migrations in order
func Migrate() error {
	gormDB := db.GetDB()

	m := gormigrate.New(gormDB, gormigrate.DefaultOptions, migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations applied")
	return nil
}

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		migration001,
	}
}

func runSQL(tx *gorm.DB, sql string) error {
	return tx.Exec(sql).Error
}
