package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eee-uofk/coursehub/internal/app/models"
	"github.com/eee-uofk/coursehub/internal/app/repositories"
	"github.com/eee-uofk/coursehub/internal/pkg/apperrors"
	"github.com/eee-uofk/coursehub/internal/pkg/auth"
	"github.com/eee-uofk/coursehub/internal/pkg/helpers"
)

// Admin is the account created on first start
type Admin struct {
	Username string
	Password string
}

// FirstSemesterSubjects is the default catalogue
var FirstSemesterSubjects = []models.Subject{
	{NameAr: "الحسبان I", NameEn: "Calculus I", Code: "EGS11101", DescriptionAr: helpers.StringPtr("مقدمة في التفاضل والتكامل"), DescriptionEn: helpers.StringPtr("Introduction to Calculus"), Semester: 1},
	{NameAr: "الجبر الخطي", NameEn: "Linear Algebra", Code: "EGS11102", DescriptionAr: helpers.StringPtr("المصفوفات والمتجهات"), DescriptionEn: helpers.StringPtr("Matrices and Vectors"), Semester: 1},
	{NameAr: "الفيزياء I", NameEn: "Physics I", Code: "EGS11203", DescriptionAr: helpers.StringPtr("الميكانيكا والخواص العامة للمادة"), DescriptionEn: helpers.StringPtr("Mechanics and General Properties of Matter"), Semester: 1},
	{NameAr: "الكيمياء I", NameEn: "Chemistry I", Code: "EGS11304", DescriptionAr: helpers.StringPtr("الكيمياء العامة"), DescriptionEn: helpers.StringPtr("General Chemistry"), Semester: 1},
	{NameAr: "برمجة الحاسوب", NameEn: "Computer Programming", Code: "EGS12405", DescriptionAr: helpers.StringPtr("مقدمة في البرمجة"), DescriptionEn: helpers.StringPtr("Introduction to Programming"), Semester: 1},
	{NameAr: "اللغة العربية I", NameEn: "Arabic Language I", Code: "HUM11101", DescriptionAr: helpers.StringPtr("النحو والصرف"), DescriptionEn: helpers.StringPtr("Arabic Grammar"), Semester: 1},
	{NameAr: "الثقافة الإسلامية I", NameEn: "Islamic Culture I", Code: "HUM12302", DescriptionAr: helpers.StringPtr("مقدمة في الثقافة الإسلامية"), DescriptionEn: helpers.StringPtr("Introduction to Islamic Culture"), Semester: 1},
}

// CreateDefaultData creates the admin account and the subject catalogue if they don't exist.
// Each subject is created with its zero statistics row. Errors are collected, not fatal.
func CreateDefaultData(ctx context.Context, users repositories.IUserRepository, subjects repositories.ISubjectRepository, admin Admin, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (admin, subjects)...")
	var finalErr error

	if err := createAdmin(ctx, users, admin, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	created := 0
	for _, s := range FirstSemesterSubjects {
		subject := s
		_, err := subjects.Create(ctx, &subject)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrSubjectCodeExists):
		default:
			lgr.Error().Err(err).Str("code", subject.Code).Msg("Error creating default subject")
			finalErr = errors.Join(finalErr, fmt.Errorf("subject %s: %w", subject.Code, err))
		}
	}

	lgr.Info().Int("subjectsCreated", created).Msg("Default data check finished")
	return finalErr
}

func createAdmin(ctx context.Context, users repositories.IUserRepository, admin Admin, lgr zerolog.Logger) error {
	if admin.Username == "" || admin.Password == "" {
		lgr.Warn().Msg("Admin password not configured, skipping admin seed")
		return nil
	}

	exists, err := users.UsernameExists(ctx, admin.Username)
	if err != nil {
		return fmt.Errorf("checking admin user: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	if _, err := users.Create(ctx, &models.User{Username: admin.Username, PasswordHash: hash, Role: models.RoleAdmin}); err != nil {
		lgr.Error().Err(err).Str("username", admin.Username).Msg("Error creating admin user")
		return fmt.Errorf("creating admin user: %w", err)
	}
	lgr.Info().Str("username", admin.Username).Msg("Admin user created")
	return nil
}
