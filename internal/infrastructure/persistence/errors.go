package persistence

import (
	"errors"
	"fmt"

	"github.com/salesorder/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps gorm errors onto the domain error taxonomy.
// Domain errors pass through; anything else is wrapped with op.
// Relies on gorm.Config.TranslateError so driver codes arrive as gorm sentinels.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	var de *shared.DomainError
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.WrapDomainError(shared.CodeAlreadyExists, op+": record already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.WrapDomainError(shared.CodeReferenceNotFound, shared.ErrReferenceNotFound.Message, err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return shared.WrapDomainError(shared.CodeValidation, op+": value rejected by a storage constraint", err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
