package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"visaprep/infras/otel"
	"visaprep/infras/postgres"
	"visaprep/internal/domains/quota/model"
	"visaprep/shared/constant"
	gDto "visaprep/shared/dto"
	"visaprep/shared/logger"
	gRepo "visaprep/shared/repository"
)

type Quota interface {
	Insert(ctx context.Context, model model.QuotaRecord) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.QuotaRecord, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ConsumeOne(ctx context.Context, clientID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.QuotaRecord]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Quota {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.QuotaRecord](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ConsumeOne atomically increments the used counter while the allowance still
// covers it. Returns false when the increment would breach the allowance.
func (repo *repositoryImpl) ConsumeOne(ctx context.Context, clientID string) (consumed bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ConsumeOne")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"UPDATE %s SET used = used + 1, modified_at = NOW() WHERE client_id = :client_id AND used < allowance",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"client_id": clientID,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to consume quota (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}
