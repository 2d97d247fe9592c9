package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	Update(user *User) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create a new user
func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Where("email = ?", email).First(&u).Error
	return &u, err
}

// Find user by ID
func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.First(&user, userID).Error
	return user, err
}

// Update persists changed user fields (password reset)
func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}
