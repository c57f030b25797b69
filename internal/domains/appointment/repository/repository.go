package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"visaprep/infras/otel"
	"visaprep/infras/postgres"
	"visaprep/internal/domains/appointment/model"
	gDto "visaprep/shared/dto"
	gRepo "visaprep/shared/repository"
)

type Appointment interface {
	Insert(ctx context.Context, model model.Appointment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateVersioned(ctx context.Context, mod map[string]any, id string, expectedVersion int) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ActiveByClient filters non-terminal appointments held by one client. These
// are the logical quota reservations.
func ActiveByClient(clientID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldClientID,
				Value:    clientID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "state_not_completed",
				Field:    model.FieldState,
				Value:    model.StateCompleted,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "state_not_cancelled",
				Field:    model.FieldState,
				Value:    model.StateCancelled,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
		},
	}
}
