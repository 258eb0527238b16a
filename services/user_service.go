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

package services

import (
	"context"
	"fmt"

	"github.com/adexltd/accounts-service/clients/cognito"
	"github.com/adexltd/accounts-service/models"
	"github.com/adexltd/accounts-service/repositories"
	"github.com/adexltd/accounts-service/utils"
)

// UserService defines the interface for user profile operations
type UserService interface {
	// GetProfile returns the local profile of the authenticated caller
	GetProfile(ctx context.Context, user *models.AuthenticatedUser) (*models.UserProfileResponse, error)

	// SyncProfile refreshes the local record from the provider's live view of
	// the caller and returns the updated profile
	SyncProfile(ctx context.Context, user *models.AuthenticatedUser) (*models.UserProfileResponse, error)
}

type userService struct {
	provider cognito.Client
	users    repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(provider cognito.Client, users repositories.UserRepository) UserService {
	return &userService{
		provider: provider,
		users:    users,
	}
}

func (s *userService) GetProfile(ctx context.Context, user *models.AuthenticatedUser) (*models.UserProfileResponse, error) {
	record, err := s.users.GetByUsername(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user record: %w", err)
	}
	if record == nil {
		return nil, utils.ErrUserNotFound
	}
	return record.ProfileResponse(), nil
}

func (s *userService) SyncProfile(ctx context.Context, user *models.AuthenticatedUser) (*models.UserProfileResponse, error) {
	remote, err := s.provider.GetUser(ctx, user.AccessToken)
	if err != nil {
		if rejected, ok := cognito.IsRejected(err); ok {
			return nil, fmt.Errorf("%s: %w", rejected.Message, utils.ErrProviderRejected)
		}
		return nil, fmt.Errorf("sync profile: %w", utils.ErrProviderUnavailable)
	}

	// The provider record must describe the authenticated caller
	if remote.Username != user.Username {
		return nil, fmt.Errorf("user detail not matched: %w", utils.ErrUnauthorized)
	}

	record, err := s.users.GetByUsername(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user record: %w", err)
	}
	if record == nil {
		return nil, utils.ErrUserNotFound
	}

	if verified := remote.EmailVerified(); verified != record.EmailVerified {
		if err := s.users.UpdateEmailVerified(ctx, user.Username, verified); err != nil {
			return nil, fmt.Errorf("failed to update email verification: %w", err)
		}
		record.EmailVerified = verified
	}

	return record.ProfileResponse(), nil
}
