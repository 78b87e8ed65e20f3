package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/campuskit/school-api/internal/models"
)

// AccountRepository looks up sign-in accounts across the three roles.
type AccountRepository interface {
	FindAdminByMobile(ctx context.Context, mobile string) (models.Admin, error)
	FindTeacherByMobile(ctx context.Context, mobile string) (models.Teacher, error)
	FindStudentByMobile(ctx context.Context, mobile string) (models.Student, error)
	FindAdminByID(ctx context.Context, id uint) (models.Admin, error)
	FindTeacherByID(ctx context.Context, id uint) (models.Teacher, error)
	FindStudentByID(ctx context.Context, id uint) (models.Student, error)
	TouchAdminLogin(ctx context.Context, adminID uint) error
	UpdatePassword(ctx context.Context, role string, id uint, passwordHash string) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository constructs a repository backed by GORM.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindAdminByMobile(ctx context.Context, mobile string) (models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("mobile = ?", mobile).First(&admin).Error; err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

func (r *accountRepository) FindTeacherByMobile(ctx context.Context, mobile string) (models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).Where("mobile = ?", mobile).First(&teacher).Error; err != nil {
		return models.Teacher{}, err
	}
	return teacher, nil
}

func (r *accountRepository) FindStudentByMobile(ctx context.Context, mobile string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("mobile = ?", mobile).Order("id DESC").First(&student).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *accountRepository) FindAdminByID(ctx context.Context, id uint) (models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

func (r *accountRepository) FindTeacherByID(ctx context.Context, id uint) (models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return models.Teacher{}, err
	}
	return teacher, nil
}

func (r *accountRepository) FindStudentByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *accountRepository) TouchAdminLogin(ctx context.Context, adminID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", adminID).
		Update("last_login_at", time.Now()).Error
}

func (r *accountRepository) UpdatePassword(ctx context.Context, role string, id uint, passwordHash string) error {
	var model interface{}
	switch role {
	case models.RoleAdmin:
		model = &models.Admin{}
	case models.RoleTeacher:
		model = &models.Teacher{}
	default:
		model = &models.Student{}
	}

	return r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}
