// Package mocks dobles de prueba (testify/mock) de los puertos de persistencia.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
)

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Company), args.Error(1)
}

func (m *MockCompanyRepo) HasActiveModule(ctx context.Context, companyID, moduleName string) (bool, error) {
	args := m.Called(ctx, companyID, moduleName)
	return args.Bool(0), args.Error(1)
}

type MockFiscalDocumentRepo struct {
	mock.Mock
}

func (m *MockFiscalDocumentRepo) ListByPeriod(ctx context.Context, companyID string, period entity.Period, direction entity.Direction) ([]entity.FiscalDocument, error) {
	args := m.Called(ctx, companyID, period, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FiscalDocument), args.Error(1)
}

type MockRetentionCertificateRepo struct {
	mock.Mock
}

func (m *MockRetentionCertificateRepo) ListByPeriod(ctx context.Context, companyID string, period entity.Period, kind entity.RetentionKind) ([]entity.RetentionCertificate, error) {
	args := m.Called(ctx, companyID, period, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RetentionCertificate), args.Error(1)
}

type MockPeriodSettlementRepo struct {
	mock.Mock
}

func (m *MockPeriodSettlementRepo) GetByPeriod(ctx context.Context, companyID string, period entity.Period) (*entity.PeriodSettlement, error) {
	args := m.Called(ctx, companyID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PeriodSettlement), args.Error(1)
}

func (m *MockPeriodSettlementRepo) Upsert(ctx context.Context, s *entity.PeriodSettlement) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
