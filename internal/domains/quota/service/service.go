package service

import (
	"context"
	"errors"
	"fmt"
	"visaprep/config"
	"visaprep/infras/otel"
	apptRepo "visaprep/internal/domains/appointment/repository"
	"visaprep/internal/domains/quota/model"
	"visaprep/internal/domains/quota/model/dto"
	"visaprep/internal/domains/quota/repository"
	"visaprep/shared"
	"visaprep/shared/cache"
	"visaprep/shared/constant"
	"visaprep/shared/failure"
	"visaprep/shared/logger"
	gModel "visaprep/shared/model"
	"visaprep/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheQuotaStatus      = "quota:status"
	cacheQuotaReserveLock = "quota:reserve:lock"

	// Covers the reserve-then-insert window; a crashed caller frees the
	// client after this many seconds.
	reserveLockTTL = 10

	msgQuotaExhausted   = "simulation quota exhausted"
	msgReserveContended = "another simulation request for this client is in flight, retry"
)

// Quota is the single entry point for reading and moving a client's
// simulation allowance. Used moves only through Consume; Reserve admits new
// requests against the logical reservation count and holds a per-client lock
// until the caller persists the appointment and calls Release.
type Quota interface {
	CheckAvailable(ctx context.Context, clientID string) (dto.QuotaStatusResponse, error)
	Reserve(ctx context.Context, clientID string) error
	Release(ctx context.Context, clientID string)
	Consume(ctx context.Context, clientID string) error
}

type serviceImpl struct {
	repo     repository.Quota
	apptRepo apptRepo.Appointment
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Quota, apptRepo apptRepo.Appointment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Quota {
	return &serviceImpl{
		repo:     repo,
		apptRepo: apptRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) CheckAvailable(ctx context.Context, clientID string) (res dto.QuotaStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".quota.CheckAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheQuotaStatus, clientID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for quota status")

		return res, nil
	}

	record, active, err := s.currentStanding(ctx, clientID)
	if err != nil {
		return res, err
	}

	res.FromModel(record, active)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save quota status to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Reserve(ctx context.Context, clientID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".quota.Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Serializes concurrent reservations per client so two requests cannot
	// both pass the standing check before either appointment row lands. A
	// redis outage degrades to unserialized reservations; used <= allowance
	// stays protected by the consume guard either way.
	locked, lockErr := s.cache.SetIfAbsent(ctx, shared.BuildCacheKey(cacheQuotaReserveLock, clientID), "1", reserveLockTTL)
	if lockErr != nil {
		log.Error().Err(lockErr).Str("clientID", clientID).Msg("reservation lock unavailable, proceeding without it")
	} else if !locked {
		return failure.Conflict(msgReserveContended) //nolint:wrapcheck
	}

	record, active, err := s.currentStanding(ctx, clientID)
	if err != nil {
		s.Release(ctx, clientID)

		return err
	}

	if record.Allowance-record.Used-active <= 0 {
		log.Info().
			Str("clientID", clientID).
			Int("allowance", record.Allowance).
			Int("used", record.Used).
			Int("active", active).
			Msg("quota exhausted, rejecting request")

		s.Release(ctx, clientID)

		return failure.PolicyRejection(msgQuotaExhausted) //nolint:wrapcheck
	}

	if record.ID == constant.Empty {
		if err = s.createRecord(ctx, clientID); err != nil {
			s.Release(ctx, clientID)

			return err
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheQuotaStatus, clientID)); err != nil {
			log.Error().Err(err).Msg("failed to delete quota status from cache")
		}
	}()

	return nil
}

// Release frees the per-client reservation lock once the caller has
// persisted (or abandoned) the admitted request. Best effort: the lock TTL
// bounds a missed release.
func (s *serviceImpl) Release(ctx context.Context, clientID string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheQuotaReserveLock, clientID)); err != nil {
		log.Error().Err(err).Str("clientID", clientID).Msg("failed to release reservation lock")
	}
}

func (s *serviceImpl) Consume(ctx context.Context, clientID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".quota.Consume")
	defer scope.End()
	defer scope.TraceIfError(err)

	consumed, err := s.repo.ConsumeOne(ctx, clientID)
	if err != nil {
		log.Error().Err(err).Str("clientID", clientID).Msg("failed to consume quota")

		return fmt.Errorf("failed to consume quota: %w", err)
	}

	if !consumed {
		err = errors.New("quota consume would exceed allowance")
		logger.ErrorWithStack(err)

		return failure.InternalError(err) //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheQuotaStatus, clientID)); err != nil {
			log.Error().Err(err).Msg("failed to delete quota status from cache")
		}
	}()

	return nil
}

// currentStanding loads the client's quota record (a zero record with the
// configured allowance when none exists yet) and the live reservation count.
func (s *serviceImpl) currentStanding(ctx context.Context, clientID string) (record model.QuotaRecord, active int, err error) {
	record, err = s.repo.Get(ctx, shared.FilterByID(clientID, model.FieldClientID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("clientID", clientID).Msg("failed to get quota record")

		return record, 0, fmt.Errorf("failed to get quota record: %w", err)
	}

	if record.ID == constant.Empty {
		record.ClientID = clientID
		record.Allowance = s.cfg.Quota.DefaultAllowance
	}

	active, err = s.apptRepo.Count(ctx, apptRepo.ActiveByClient(clientID))
	if err != nil {
		log.Error().Err(err).Str("clientID", clientID).Msg("failed to count active appointments")

		return record, 0, fmt.Errorf("failed to count active appointments: %w", err)
	}

	return record, active, nil
}

func (s *serviceImpl) createRecord(ctx context.Context, clientID string) error {
	record := model.QuotaRecord{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Allowance: s.cfg.Quota.DefaultAllowance,
		Used:      0,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  clientID,
			ModifiedBy: clientID,
		},
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		log.Error().Err(err).Str("clientID", clientID).Msg("failed to create quota record")

		return fmt.Errorf("failed to create quota record: %w", err)
	}

	return nil
}
