package services

import (
	"errors"
	"log"

	"github.com/google/uuid"

	"schoolmeal/internal/models/db_models"
	"schoolmeal/pkg/utils"
)

const (
	RoleStudent = "student"
	RoleParent  = "parent"
	RoleCook    = "cook"
	RoleAdmin   = "admin"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID    uuid.UUID
	Role      string
	SessionID string
}

func (a Actor) isSelf(studentID uuid.UUID) bool {
	return a.Role == RoleStudent && a.UserID == studentID
}

// canAccess reports whether actor may read or log intake for student.
func canAccess(actor Actor, student *db_models.Student) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleStudent:
		if actor.UserID == student.ID {
			return nil
		}
	case RoleParent:
		if student.ParentID != nil && *student.ParentID == actor.UserID {
			return nil
		}
	}
	return utils.ErrForbidden
}

// canManage reports whether actor may change the targets of student.
func canManage(actor Actor, student *db_models.Student) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleParent:
		if student.ParentID != nil && *student.ParentID == actor.UserID {
			return nil
		}
	}
	return utils.ErrForbidden
}

// serviceError passes domain errors through and collapses anything else into ErrDatabaseError.
func serviceError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		utils.ErrNotFound,
		utils.ErrValidation,
		utils.ErrForbidden,
		utils.ErrInvalidCredentials,
		utils.ErrLoginAlreadyExists,
		utils.ErrDatabaseError,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	log.Printf("%s failed: %v", op, err)
	return utils.ErrDatabaseError
}
