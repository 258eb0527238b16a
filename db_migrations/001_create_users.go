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
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Create the users table: the local shadow of identity-provider user records.
// Credentials never live here; Cognito owns them. The row exists so protected
// requests can resolve a stable local id, and so profile fields survive
// provider lookups being unavailable.
var migration001 = &gormigrate.Migration{
	ID: "001_create_users",
	Migrate: func(db *gorm.DB) error {
		createUsersSQL := `
			CREATE TABLE users (
				id BIGSERIAL PRIMARY KEY,
				username VARCHAR(127) NOT NULL UNIQUE,
				sub VARCHAR(100) NOT NULL UNIQUE,
				name VARCHAR(255) NOT NULL DEFAULT '',
				email VARCHAR(255) NOT NULL,
				email_verified BOOLEAN NOT NULL DEFAULT FALSE,
				salt VARCHAR(255),
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			);

			CREATE INDEX idx_users_email ON users(email);
		`
		return db.Transaction(func(tx *gorm.DB) error {
			return runSQL(tx, createUsersSQL)
		})
	},
	Rollback: func(db *gorm.DB) error {
		return runSQL(db, `DROP TABLE IF EXISTS users;`)
	},
}
