package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"schoolmeal/internal/models/db_models"
	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/models/response_models"
	"schoolmeal/internal/repositories"
	"schoolmeal/pkg/utils"
)

type StudentServiceInterface interface {
	AddChild(ctx context.Context, actor Actor, request request_models.AddChildRequest) (*response_models.StudentResponse, error)
	ListChildren(ctx context.Context, actor Actor) ([]response_models.StudentResponse, error)
	GetStudent(ctx context.Context, actor Actor, studentID uuid.UUID) (*response_models.StudentResponse, error)
}

type StudentService struct {
	studentRepo repositories.StudentRepository
	accountRepo repositories.AccountRepository
}

func NewStudentService(studentRepo repositories.StudentRepository, accountRepo repositories.AccountRepository) StudentServiceInterface {
	return &StudentService{
		studentRepo: studentRepo,
		accountRepo: accountRepo,
	}
}

// AddChild creates a student owned by the calling parent. Targets come from the
// demographics when they are complete and valid; otherwise the defaults apply.
func (s *StudentService) AddChild(ctx context.Context, actor Actor, request request_models.AddChildRequest) (*response_models.StudentResponse, error) {
	if actor.Role != RoleParent {
		return nil, utils.ErrForbidden
	}

	login := strings.TrimSpace(request.Login)
	taken, err := s.accountRepo.LoginTaken(ctx, login)
	if err != nil {
		log.Printf("Error checking login %q: %v", login, err)
		return nil, utils.ErrDatabaseError
	}
	if taken {
		return nil, utils.ErrLoginAlreadyExists
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	parentID := actor.UserID
	student := &db_models.Student{
		Login:        login,
		PasswordHash: hash,
		Name:         strings.TrimSpace(request.Name),
		ParentID:     &parentID,
		City:         request.City,
		School:       request.School,
		Grade:        request.Grade,
	}

	targets := DefaultTargets()
	if hasDemographics(request.Demographics) {
		profile, err := ValidateProfile(request.Demographics)
		if err != nil {
			log.Printf("Invalid demographics for new student %q, using default targets: %v", login, err)
		} else {
			targets = ComputeTargets(profile)
			student.Gender = profile.Gender
			student.Age = &profile.Age
			student.Height = &profile.Height
			student.Weight = &profile.Weight
			student.Activity = &profile.Activity
		}
	}
	student.Calories = targets.Calories
	student.Protein = targets.Protein
	student.Fat = targets.Fat
	student.Carbs = targets.Carbs

	if err := s.studentRepo.Insert(ctx, student); err != nil {
		log.Printf("Error creating student %q: %v", login, err)
		return nil, utils.ErrDatabaseError
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

func (s *StudentService) ListChildren(ctx context.Context, actor Actor) ([]response_models.StudentResponse, error) {
	if actor.Role != RoleParent {
		return nil, utils.ErrForbidden
	}

	children, err := s.studentRepo.ListByParent(ctx, actor.UserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.StudentResponse, 0, len(children))
	for i := range children {
		out = append(out, toStudentResponse(&children[i]))
	}
	return out, nil
}

func (s *StudentService) GetStudent(ctx context.Context, actor Actor, studentID uuid.UUID) (*response_models.StudentResponse, error) {
	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if student == nil {
		return nil, utils.ErrStudentNotFound
	}
	if err := canAccess(actor, student); err != nil {
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}
