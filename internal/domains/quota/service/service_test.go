package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"visaprep/config"
	otelMocks "visaprep/infras/otel/mocks"
	apptMocks "visaprep/internal/domains/appointment/mocks"
	"visaprep/internal/domains/quota/mocks"
	"visaprep/internal/domains/quota/model"
	"visaprep/internal/domains/quota/service"
	cacheMocks "visaprep/shared/cache/mocks"
	"visaprep/shared/failure"
)

const asyncSettle = 50 * time.Millisecond

func newQuotaService(t *testing.T) (service.Quota, *mocks.MockQuota, *apptMocks.MockAppointment, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := mocks.NewMockQuota(ctrl)
	mockApptRepo := apptMocks.NewMockAppointment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Quota.DefaultAllowance = 2
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockApptRepo, cfg, mockCache, otelMocks.NewOtel())

	return svc, mockRepo, mockApptRepo, mockCache
}

func TestQuotaService_CheckAvailable(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache)
		wantErr    bool
		wantAvail  int
		wantActive int
	}{
		{
			name: "existing record with one active reservation",
			setupMock: func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "quota:status:client-1", gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.QuotaRecord{
					ID:        "record-1",
					ClientID:  "client-1",
					Allowance: 2,
					Used:      0,
				}, nil)
				apptRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantAvail:  1,
			wantActive: 1,
		},
		{
			name: "no record falls back to the default allowance",
			setupMock: func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.QuotaRecord{}, nil)
				apptRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantAvail: 2,
		},
		{
			name: "repository error",
			setupMock: func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.QuotaRecord{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockApptRepo, mockCache := newQuotaService(t)
			tt.setupMock(mockRepo, mockApptRepo, mockCache)

			res, err := svc.CheckAvailable(context.Background(), "client-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantAvail, res.Available)
				assert.Equal(t, tt.wantActive, res.ActiveReservations)
			}

			time.Sleep(asyncSettle)
		})
	}
}

func TestQuotaService_Reserve(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "allowance covers the reservation",
			setupMock: func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().SetIfAbsent(gomock.Any(), "quota:reserve:lock:client-1", gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.QuotaRecord{
					ID: "record-1", ClientID: "client-1", Allowance: 2, Used: 0,
				}, nil)
				apptRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "first request creates the record lazily",
			setupMock: func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().SetIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.QuotaRecord{}, nil)
				apptRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "used quota exhausts the allowance",
			setupMock: func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().SetIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.QuotaRecord{
					ID: "record-1", ClientID: "client-1", Allowance: 2, Used: 2,
				}, nil)
				apptRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				cache.EXPECT().Delete(gomock.Any(), "quota:reserve:lock:client-1").Return(nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "active reservations exhaust the allowance",
			setupMock: func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().SetIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.QuotaRecord{
					ID: "record-1", ClientID: "client-1", Allowance: 2, Used: 1,
				}, nil)
				apptRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				cache.EXPECT().Delete(gomock.Any(), "quota:reserve:lock:client-1").Return(nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "concurrent reservation for the same client is turned away",
			setupMock: func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().SetIfAbsent(gomock.Any(), "quota:reserve:lock:client-1", gomock.Any(), gomock.Any()).Return(false, nil)
				// No Get or Count expectation: the standing is never read.
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "lock outage degrades to an unserialized reservation",
			setupMock: func(repo *mocks.MockQuota, apptRepo *apptMocks.MockAppointment, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().SetIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.QuotaRecord{
					ID: "record-1", ClientID: "client-1", Allowance: 2, Used: 0,
				}, nil)
				apptRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockApptRepo, mockCache := newQuotaService(t)
			tt.setupMock(mockRepo, mockApptRepo, mockCache)

			err := svc.Reserve(context.Background(), "client-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}

			time.Sleep(asyncSettle)
		})
	}
}

func TestQuotaService_Release(t *testing.T) {
	svc, _, _, mockCache := newQuotaService(t)

	mockCache.EXPECT().Delete(gomock.Any(), "quota:reserve:lock:client-1").Return(nil)

	svc.Release(context.Background(), "client-1")
}

func TestQuotaService_Consume(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *mocks.MockQuota, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful consume",
			setupMock: func(repo *mocks.MockQuota, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().ConsumeOne(gomock.Any(), "client-1").Return(true, nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "consume over the allowance is an internal invariant breach",
			setupMock: func(repo *mocks.MockQuota, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().ConsumeOne(gomock.Any(), "client-1").Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "repository error",
			setupMock: func(repo *mocks.MockQuota, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().ConsumeOne(gomock.Any(), "client-1").Return(false, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, mockCache := newQuotaService(t)
			tt.setupMock(mockRepo, mockCache)

			err := svc.Consume(context.Background(), "client-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}

			time.Sleep(asyncSettle)
		})
	}
}
