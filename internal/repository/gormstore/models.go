package gormstore

import (
	"time"

	"itemhub/internal/domain"
)

type groupModel struct {
	ID        int64       `gorm:"primaryKey"`
	Name      string      `gorm:"size:100;not null;index"`
	Slug      string      `gorm:"size:160;not null;uniqueIndex"`
	Users     []userModel `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (groupModel) TableName() string {
	return "user_groups"
}

type userModel struct {
	ID             int64   `gorm:"primaryKey"`
	Username       string  `gorm:"size:100;not null;uniqueIndex"`
	Email          string  `gorm:"size:200;not null"`
	FirstName      *string `gorm:"size:100"`
	LastName       *string `gorm:"size:100"`
	Disabled       bool    `gorm:"not null"`
	HashedPassword string  `gorm:"not null"`
	GroupID        *int64  `gorm:"index"`
	Group          *groupModel
	Slug           string      `gorm:"size:160;not null;uniqueIndex"`
	Items          []itemModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (userModel) TableName() string {
	return "users"
}

type itemModel struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"size:200;not null;index"`
	Description *string `gorm:"size:1000"`
	Price       float64 `gorm:"not null"`
	Tax         float64 `gorm:"not null"`
	OwnerID     *int64  `gorm:"index"`
	Owner       *userModel
	Slug        string `gorm:"size:260;not null;uniqueIndex"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (itemModel) TableName() string {
	return "items"
}

func groupFromModel(m *groupModel) *domain.Group {
	if m == nil {
		return nil
	}
	g := &domain.Group{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Users != nil {
		g.Users = make([]domain.User, len(m.Users))
		for i := range m.Users {
			g.Users[i] = *userFromModel(&m.Users[i])
		}
	}
	return g
}

func userFromModel(m *userModel) *domain.User {
	if m == nil {
		return nil
	}
	u := &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Disabled:     m.Disabled,
		PasswordHash: m.HashedPassword,
		GroupID:      m.GroupID,
		Group:        groupFromModel(m.Group),
		Slug:         m.Slug,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Items != nil {
		u.Items = make([]domain.Item, len(m.Items))
		for i := range m.Items {
			u.Items[i] = *itemFromModel(&m.Items[i])
		}
	}
	return u
}

func itemFromModel(m *itemModel) *domain.Item {
	if m == nil {
		return nil
	}
	return &domain.Item{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Tax:         m.Tax,
		OwnerID:     m.OwnerID,
		Owner:       userFromModel(m.Owner),
		Slug:        m.Slug,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
