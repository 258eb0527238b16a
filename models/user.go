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

package models

import (
	"time"
)

// User is the database model for the local shadow of a provider user record.
// Username and Sub (the provider-subject id) are each unique; credentials are
// never stored locally.
type User struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Username      string    `gorm:"column:username;uniqueIndex"`
	Sub           string    `gorm:"column:sub;uniqueIndex"`
	Name          string    `gorm:"column:name"`
	Email         string    `gorm:"column:email;index"`
	EmailVerified bool      `gorm:"column:email_verified"`
	Salt          string    `gorm:"column:salt"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserProfileResponse is the profile subset exposed to clients
type UserProfileResponse struct {
	Username      string `json:"username"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// ProfileResponse converts the shadow row to its client-facing subset
func (u *User) ProfileResponse() *UserProfileResponse {
	return &UserProfileResponse{
		Username:      u.Username,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
	}
}
