package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/cierre-fiscal/internal/application/settlement"
)

type MockPDFGenerator struct {
	mock.Mock
}

func (m *MockPDFGenerator) GenerateSettlementPDF(ctx context.Context, r *settlement.Report) ([]byte, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockWorkbookExporter struct {
	mock.Mock
}

func (m *MockWorkbookExporter) ExportSettlementWorkbook(ctx context.Context, r *settlement.Report) ([]byte, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockFormBuilder struct {
	mock.Mock
}

func (m *MockFormBuilder) BuildDeclaration(ctx context.Context, r *settlement.Report) ([]byte, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
