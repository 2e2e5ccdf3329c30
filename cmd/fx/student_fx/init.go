package student_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"schoolmeal/internal/repositories"
	"schoolmeal/internal/services"
)

var Module = fx.Provide(
	provideStudentRepo, provideStudentService)

func provideStudentRepo(db *gorm.DB) repositories.StudentRepository {
	return repositories.NewStudentRepository(db)
}

func provideStudentService(studentRepo repositories.StudentRepository, accountRepo repositories.AccountRepository) services.StudentServiceInterface {
	return services.NewStudentService(studentRepo, accountRepo)
}
