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

package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/adexltd/accounts-service/models"
)

// UserRepository defines the interface for local user record operations
type UserRepository interface {
	// GetByUsername retrieves a user by username; (nil, nil) when no row exists
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByEmail retrieves a user by email; (nil, nil) when no row exists
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Create inserts a new user row
	Create(ctx context.Context, user *models.User) error

	// UpdateEmailVerified sets the email_verified flag for a username
	UpdateEmailVerified(ctx context.Context, username string, verified bool) error

	// UpdateSalt replaces the stored salt for a username
	UpdateSalt(ctx context.Context, username, salt string) error
}

// UserRepo implements UserRepository using GORM
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *gorm.DB) UserRepository {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil for not found (caller decides severity)
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepo) UpdateEmailVerified(ctx context.Context, username string, verified bool) error {
	// Select forces the update to include false values, which GORM would
	// otherwise skip as zero values
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Select("email_verified").
		Updates(map[string]interface{}{"email_verified": verified}).Error
}

func (r *UserRepo) UpdateSalt(ctx context.Context, username, salt string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Update("salt", salt).Error
}
