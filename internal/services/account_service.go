package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolmeal/internal/models/db_models"
	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/models/response_models"
	"schoolmeal/internal/repositories"
	"schoolmeal/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	Register(ctx context.Context, request request_models.RegisterRequest) error
	Logout(ctx context.Context, actor Actor)
	EnsureMasterAdmin(ctx context.Context, login, password string) error
	CreateAdmin(ctx context.Context, actor Actor, request request_models.CreateAdminRequest) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	studentRepo repositories.StudentRepository
	ledger      LedgerServiceInterface
	tokens      *utils.TokenIssuer
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	studentRepo repositories.StudentRepository,
	ledger LedgerServiceInterface,
	tokens *utils.TokenIssuer,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		studentRepo: studentRepo,
		ledger:      ledger,
		tokens:      tokens,
	}
}

type credential struct {
	id   uuid.UUID
	hash string
	role string
}

// findCredential looks the login up in each account table in turn.
func (a *AccountService) findCredential(ctx context.Context, login string) (*credential, error) {
	student, err := a.studentRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if student != nil {
		return &credential{id: student.ID, hash: student.PasswordHash, role: RoleStudent}, nil
	}

	parent, err := a.accountRepo.FindParentByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		return &credential{id: parent.ID, hash: parent.PasswordHash, role: RoleParent}, nil
	}

	cook, err := a.accountRepo.FindCookByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if cook != nil {
		return &credential{id: cook.ID, hash: cook.PasswordHash, role: RoleCook}, nil
	}

	admin, err := a.accountRepo.FindAdminByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if admin != nil {
		return &credential{id: admin.ID, hash: admin.PasswordHash, role: RoleAdmin}, nil
	}

	return nil, nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	startTime := time.Now()

	cred, err := a.findCredential(ctx, strings.TrimSpace(request.Login))
	if err != nil {
		log.Printf("Error looking up login: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if cred == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(cred.hash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, sessionID, err := a.tokens.CreateToken(cred.id, cred.role)
	if err != nil {
		log.Printf("Error creating token: %v", err)
		return nil, utils.ErrInvalidCredentials
	}

	if cred.role == RoleStudent {
		actor := Actor{UserID: cred.id, Role: cred.role, SessionID: sessionID}
		if _, err := a.ledger.CurrentRemaining(ctx, actor); err != nil {
			log.Printf("Could not prime remaining snapshot for %s: %v", cred.id, err)
		}
	}

	log.Printf("Login for %s took %s", cred.role, time.Since(startTime))

	return &response_models.LoginResponse{
		Token:  token,
		Role:   cred.role,
		UserID: cred.id.String(),
	}, nil
}

// Register creates a parent, cook or teacher account. Teachers log in as students.
func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) error {
	login := strings.TrimSpace(request.Login)

	taken, err := a.accountRepo.LoginTaken(ctx, login)
	if err != nil {
		log.Printf("Error checking login %q: %v", login, err)
		return utils.ErrDatabaseError
	}
	if taken {
		return utils.ErrLoginAlreadyExists
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	switch request.Role {
	case "parent":
		err = a.accountRepo.InsertParent(ctx, &db_models.Parent{
			Login:        login,
			PasswordHash: hash,
			Name:         request.Name,
		})
	case "cook":
		err = a.accountRepo.InsertCook(ctx, &db_models.Cook{
			Login:        login,
			PasswordHash: hash,
			City:         request.City,
			School:       request.School,
		})
	case "teacher":
		targets := DefaultTargets()
		err = a.studentRepo.Insert(ctx, &db_models.Student{
			Login:        login,
			PasswordHash: hash,
			Name:         request.Name,
			IsTeacher:    true,
			City:         request.City,
			School:       request.School,
			Grade:        request.Grade,
			Calories:     targets.Calories,
			Protein:      targets.Protein,
			Fat:          targets.Fat,
			Carbs:        targets.Carbs,
		})
	default:
		return utils.NewValidationError("role", "must be parent, cook or teacher")
	}
	if err != nil {
		log.Printf("Error registering %s %q: %v", request.Role, login, err)
		return utils.ErrDatabaseError
	}

	log.Printf("Registered %s account %q", request.Role, login)
	return nil
}

func (a *AccountService) Logout(ctx context.Context, actor Actor) {
	a.ledger.EndSession(ctx, actor)
}

// EnsureMasterAdmin creates the master admin when no admin with that login exists.
// An existing admin is left untouched, so restarts never reset its password.
func (a *AccountService) EnsureMasterAdmin(ctx context.Context, login, password string) error {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		log.Printf("ADMIN_LOGIN or ADMIN_PASSWORD not set; skipping master admin bootstrap")
		return nil
	}

	existing, err := a.accountRepo.FindAdminByLogin(ctx, login)
	if err != nil {
		log.Printf("Error looking up admin %q: %v", login, err)
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return nil
	}

	if err := a.insertAdmin(ctx, login, password, true, nil); err != nil {
		return err
	}
	log.Printf("Created master admin %q", login)
	return nil
}

// CreateAdmin adds a regular admin. Only the master admin may do this.
func (a *AccountService) CreateAdmin(ctx context.Context, actor Actor, request request_models.CreateAdminRequest) error {
	if actor.Role != RoleAdmin {
		return utils.ErrForbidden
	}
	creator, err := a.accountRepo.FindAdminByID(ctx, actor.UserID)
	if err != nil {
		log.Printf("Error loading admin %s: %v", actor.UserID, err)
		return utils.ErrDatabaseError
	}
	if creator == nil || !creator.IsMaster {
		return utils.ErrForbidden
	}

	login := strings.TrimSpace(request.Login)
	if login == "" || request.Password == "" {
		return utils.NewValidationError("login", "login and password are required")
	}

	creatorID := creator.ID
	if err := a.insertAdmin(ctx, login, request.Password, false, &creatorID); err != nil {
		return err
	}
	log.Printf("Admin %q created by %s", login, creator.Login)
	return nil
}

func (a *AccountService) insertAdmin(ctx context.Context, login, password string, master bool, createdBy *uuid.UUID) error {
	taken, err := a.accountRepo.LoginTaken(ctx, login)
	if err != nil {
		log.Printf("Error checking login %q: %v", login, err)
		return utils.ErrDatabaseError
	}
	if taken {
		return utils.ErrLoginAlreadyExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.accountRepo.InsertAdmin(ctx, &db_models.Admin{
		Login:        login,
		PasswordHash: hash,
		IsMaster:     master,
		CreatedBy:    createdBy,
	}); err != nil {
		log.Printf("Error creating admin %q: %v", login, err)
		return utils.ErrDatabaseError
	}
	return nil
}
