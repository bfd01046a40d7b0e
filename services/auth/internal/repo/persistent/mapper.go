package persistent

import (
	"github.com/elnathantransportes-ai/troca/services/auth/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/auth/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Password:        m.Password,
		CPF:             m.CPF,
		Whatsapp:        m.Whatsapp,
		City:            m.City,
		State:           m.State,
		AvatarURL:       m.AvatarURL,
		Role:            entity.UserRole(m.Role),
		Plan:            entity.UserPlan(m.Plan),
		PlanStartedAt:   m.PlanStartedAt,
		AccountStatus:   entity.AccountStatus(m.AccountStatus),
		DocumentStatus:  entity.DocumentStatus(m.DocumentStatus),
		Verified:        m.Verified,
		Reputation:      m.Reputation,
		TradesCompleted: m.TradesCompleted,
		SeenTutorial:    m.SeenTutorial,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:              e.ID,
		Name:            e.Name,
		Email:           e.Email,
		Password:        e.Password,
		CPF:             e.CPF,
		Whatsapp:        e.Whatsapp,
		City:            e.City,
		State:           e.State,
		AvatarURL:       e.AvatarURL,
		Role:            string(e.Role),
		Plan:            string(e.Plan),
		PlanStartedAt:   e.PlanStartedAt,
		AccountStatus:   string(e.AccountStatus),
		DocumentStatus:  string(e.DocumentStatus),
		Verified:        e.Verified,
		Reputation:      e.Reputation,
		TradesCompleted: e.TradesCompleted,
		SeenTutorial:    e.SeenTutorial,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
