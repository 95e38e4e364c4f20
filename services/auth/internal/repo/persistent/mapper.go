package persistent

import (
	"fitsocial/services/auth/internal/entity"
	"fitsocial/services/auth/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:          m.ID,
		Email:       m.Email,
		Username:    m.Username,
		Password:    m.Password,
		DisplayName: m.DisplayName,
		Bio:         m.Bio,
		AvatarURL:   m.AvatarURL,
		Role:        entity.UserRole(m.Role),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:          e.ID,
		Email:       e.Email,
		Username:    e.Username,
		Password:    e.Password,
		DisplayName: e.DisplayName,
		Bio:         e.Bio,
		AvatarURL:   e.AvatarURL,
		Role:        string(e.Role),
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
