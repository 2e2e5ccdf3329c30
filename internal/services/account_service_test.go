package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolmeal/internal/models/db_models"
	"schoolmeal/internal/models/request_models"
	"schoolmeal/internal/repositories"
	mem "schoolmeal/pkg/memcache"
	"schoolmeal/pkg/utils"
)

func TestAccountService_RegisterLoginLogout(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cache := mem.NewRemainingSnapshots()
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)

	studentRepo := repositories.NewStudentRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	ledger := NewLedgerService(db, studentRepo, repositories.NewFoodRepository(db), repositories.NewIntakeRepository(db), cache, LedgerOptions{})
	accounts := NewAccountService(accountRepo, studentRepo, ledger, tokens)
	students := NewStudentService(studentRepo, accountRepo)

	require.NoError(t, accounts.Register(ctx, request_models.RegisterRequest{Role: "parent", Login: "mom", Password: "secret1"}))
	require.NoError(t, accounts.Register(ctx, request_models.RegisterRequest{Role: "cook", Login: "chef", Password: "secret2"}))
	require.NoError(t, accounts.Register(ctx, request_models.RegisterRequest{Role: "teacher", Login: "mrsmith", Password: "secret3"}))

	err := accounts.Register(ctx, request_models.RegisterRequest{Role: "cook", Login: "mom", Password: "secret4"})
	assert.ErrorIs(t, err, utils.ErrLoginAlreadyExists)

	teacher, err := studentRepo.FindByLogin(ctx, "mrsmith")
	require.NoError(t, err)
	require.NotNil(t, teacher)
	assert.True(t, teacher.IsTeacher)
	assert.Equal(t, 2000.0, teacher.Calories)

	momLogin, err := accounts.Login(ctx, request_models.LoginRequest{Login: "mom", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, RoleParent, momLogin.Role)

	chefLogin, err := accounts.Login(ctx, request_models.LoginRequest{Login: "chef", Password: "secret2"})
	require.NoError(t, err)
	assert.Equal(t, RoleCook, chefLogin.Role)

	_, err = accounts.Login(ctx, request_models.LoginRequest{Login: "mom", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = accounts.Login(ctx, request_models.LoginRequest{Login: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	momClaims, err := tokens.ValidateToken(momLogin.Token)
	require.NoError(t, err)
	mom := Actor{UserID: uuid.MustParse(momClaims.UserID), Role: momClaims.Role, SessionID: momClaims.ID}

	child, err := students.AddChild(ctx, mom, request_models.AddChildRequest{
		Login:    "kid",
		Password: "kidpass",
		Demographics: request_models.Demographics{
			Gender: "male", Age: ptr(10.0), Height: ptr(140.0), Weight: ptr(35.0), Activity: ptr(1.55),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1829.0, child.Target.Calories)

	kidLogin, err := accounts.Login(ctx, request_models.LoginRequest{Login: "kid", Password: "kidpass"})
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, kidLogin.Role)

	kidClaims, err := tokens.ValidateToken(kidLogin.Token)
	require.NoError(t, err)
	snap, ok := cache.Get(ctx, kidClaims.ID)
	require.True(t, ok, "login primes the remaining snapshot")
	assert.Equal(t, 1829.0, snap.Calories)

	kid := Actor{UserID: uuid.MustParse(kidClaims.UserID), Role: RoleStudent, SessionID: kidClaims.ID}
	accounts.Logout(ctx, kid)
	_, ok = cache.Get(ctx, kidClaims.ID)
	assert.False(t, ok)
}

func TestStudentService_AddChildFallsBackToDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	parent := seedParent(t, db, "dad")
	svc := NewStudentService(repositories.NewStudentRepository(db), repositories.NewAccountRepository(db))
	dad := Actor{UserID: parent.ID, Role: RoleParent}

	child, err := svc.AddChild(ctx, dad, request_models.AddChildRequest{
		Login:    "kiddo",
		Password: "kidpass",
		Demographics: request_models.Demographics{
			Gender: "female", Age: ptr(40.0), Height: ptr(140.0), Weight: ptr(35.0), Activity: ptr(1.55),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultTargets(), child.Target)
	assert.Nil(t, child.Age)

	children, err := svc.ListChildren(ctx, dad)
	require.NoError(t, err)
	require.Len(t, children, 1)

	_, err = svc.GetStudent(ctx, Actor{UserID: uuid.New(), Role: RoleCook}, uuid.MustParse(child.ID))
	assert.ErrorIs(t, err, utils.ErrForbidden)

	var stored db_models.Student
	require.NoError(t, db.First(&stored, "login = ?", "kiddo").Error)
	assert.NoError(t, utils.ComparePasswords(stored.PasswordHash, "kidpass"))
}

func TestAccountService_MasterAdminManagesTeacherTargets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)

	studentRepo := repositories.NewStudentRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	ledger := NewLedgerService(db, studentRepo, repositories.NewFoodRepository(db), repositories.NewIntakeRepository(db),
		mem.NewRemainingSnapshots(), LedgerOptions{})
	accounts := NewAccountService(accountRepo, studentRepo, ledger, tokens)

	require.NoError(t, accounts.EnsureMasterAdmin(ctx, "root", "rootpass"))
	// A second boot with a different password keeps the stored account.
	require.NoError(t, accounts.EnsureMasterAdmin(ctx, "root", "changed"))

	var admins []db_models.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsMaster)

	_, err := accounts.Login(ctx, request_models.LoginRequest{Login: "root", Password: "changed"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	login, err := accounts.Login(ctx, request_models.LoginRequest{Login: "root", Password: "rootpass"})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, login.Role)

	require.NoError(t, accounts.Register(ctx, request_models.RegisterRequest{Role: "teacher", Login: "mrsmith", Password: "secret3"}))
	teacher, err := studentRepo.FindByLogin(ctx, "mrsmith")
	require.NoError(t, err)
	require.NotNil(t, teacher)

	claims, err := tokens.ValidateToken(login.Token)
	require.NoError(t, err)
	admin := Actor{UserID: uuid.MustParse(claims.UserID), Role: claims.Role, SessionID: claims.ID}

	updated, err := ledger.RecalculateTargets(ctx, admin, teacher.ID, request_models.RecalculateTargetsRequest{Calories: ptr(1800.0)})
	require.NoError(t, err)
	assert.Equal(t, 1800.0, updated.Target.Calories)
	assert.Equal(t, 225.0, updated.Target.Carbs)
}

func TestAccountService_EnsureMasterAdminSkipsAndConflicts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	studentRepo := repositories.NewStudentRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	accounts := NewAccountService(accountRepo, studentRepo, nil, utils.NewTokenIssuer("s", time.Hour))

	require.NoError(t, accounts.EnsureMasterAdmin(ctx, "", "pw"))
	require.NoError(t, accounts.EnsureMasterAdmin(ctx, "root", ""))

	var count int64
	require.NoError(t, db.Model(&db_models.Admin{}).Count(&count).Error)
	assert.Zero(t, count)

	seedParent(t, db, "taken")
	err := accounts.EnsureMasterAdmin(ctx, "taken", "pw")
	assert.ErrorIs(t, err, utils.ErrLoginAlreadyExists)
}

func TestAccountService_CreateAdminRequiresMaster(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	studentRepo := repositories.NewStudentRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	accounts := NewAccountService(accountRepo, studentRepo, nil, utils.NewTokenIssuer("s", time.Hour))

	require.NoError(t, accounts.EnsureMasterAdmin(ctx, "root", "rootpass"))
	master, err := accountRepo.FindAdminByLogin(ctx, "root")
	require.NoError(t, err)
	require.NotNil(t, master)
	masterActor := Actor{UserID: master.ID, Role: RoleAdmin}

	require.NoError(t, accounts.CreateAdmin(ctx, masterActor, request_models.CreateAdminRequest{Login: "helper", Password: "helperpass"}))

	helper, err := accountRepo.FindAdminByLogin(ctx, "helper")
	require.NoError(t, err)
	require.NotNil(t, helper)
	assert.False(t, helper.IsMaster)
	require.NotNil(t, helper.CreatedBy)
	assert.Equal(t, master.ID, *helper.CreatedBy)

	helperActor := Actor{UserID: helper.ID, Role: RoleAdmin}
	err = accounts.CreateAdmin(ctx, helperActor, request_models.CreateAdminRequest{Login: "another", Password: "anotherpass"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	err = accounts.CreateAdmin(ctx, Actor{UserID: master.ID, Role: RoleParent}, request_models.CreateAdminRequest{Login: "x-admin", Password: "pw1234"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	err = accounts.CreateAdmin(ctx, masterActor, request_models.CreateAdminRequest{Login: "helper", Password: "helperpass"})
	assert.ErrorIs(t, err, utils.ErrLoginAlreadyExists)
}
