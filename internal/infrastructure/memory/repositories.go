// Package memory implementa los puertos de persistencia en memoria. Lo usan la
// CLI de liquidación fuera de línea y las pruebas HTTP. Seguro para uso concurrente.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/repository"
)

var (
	_ repository.CompanyRepository              = (*CompanyRepo)(nil)
	_ repository.FiscalDocumentRepository       = (*DocumentRepo)(nil)
	_ repository.RetentionCertificateRepository = (*CertificateRepo)(nil)
	_ repository.PeriodSettlementRepository     = (*SettlementRepo)(nil)
)

// ── Empresas ──────────────────────────────────────────────────────────────────

// CompanyRepo empresas y módulos activos.
type CompanyRepo struct {
	mu        sync.RWMutex
	companies map[string]entity.Company
	modules   map[string]map[string]bool
}

func NewCompanyRepo() *CompanyRepo {
	return &CompanyRepo{
		companies: make(map[string]entity.Company),
		modules:   make(map[string]map[string]bool),
	}
}

// Put registra o reemplaza una empresa.
func (r *CompanyRepo) Put(c entity.Company) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies[c.ID] = c
}

// ActivateModule activa un módulo SaaS para la empresa.
func (r *CompanyRepo) ActivateModule(companyID, moduleName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.modules[companyID] == nil {
		r.modules[companyID] = make(map[string]bool)
	}
	r.modules[companyID][moduleName] = true
}

// GetByID devuelve (nil, nil) si la empresa no existe.
func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) HasActiveModule(_ context.Context, companyID, moduleName string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.modules[companyID][moduleName], nil
}

// ── Documentos ────────────────────────────────────────────────────────────────

// DocumentRepo documentos fiscales.
type DocumentRepo struct {
	mu   sync.RWMutex
	docs []entity.FiscalDocument
}

func NewDocumentRepo() *DocumentRepo { return &DocumentRepo{} }

// Add agrega documentos.
func (r *DocumentRepo) Add(docs ...entity.FiscalDocument) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, docs...)
}

// ListByPeriod documentos de la dirección emitidos dentro del período, ordenados
// por fecha, serie y número.
func (r *DocumentRepo) ListByPeriod(_ context.Context, companyID string, period entity.Period, direction entity.Direction) ([]entity.FiscalDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.FiscalDocument, 0)
	for _, d := range r.docs {
		if d.CompanyID == companyID && d.Direction == direction && period.Contains(d.IssueDate) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].IssueDate.Equal(out[j].IssueDate) {
			return out[i].IssueDate.Before(out[j].IssueDate)
		}
		if out[i].Series != out[j].Series {
			return out[i].Series < out[j].Series
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

// ── Constancias ───────────────────────────────────────────────────────────────

// CertificateRepo constancias de retención.
type CertificateRepo struct {
	mu    sync.RWMutex
	certs []entity.RetentionCertificate
}

func NewCertificateRepo() *CertificateRepo { return &CertificateRepo{} }

// Add agrega constancias.
func (r *CertificateRepo) Add(certs ...entity.RetentionCertificate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.certs = append(r.certs, certs...)
}

func (r *CertificateRepo) ListByPeriod(_ context.Context, companyID string, period entity.Period, kind entity.RetentionKind) ([]entity.RetentionCertificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.RetentionCertificate, 0)
	for _, c := range r.certs {
		if c.CompanyID == companyID && c.Kind == kind && period.Contains(c.IssueDate) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ── Liquidaciones ─────────────────────────────────────────────────────────────

// SettlementRepo liquidaciones por (empresa, período); última escritura gana.
type SettlementRepo struct {
	mu    sync.RWMutex
	items map[string]entity.PeriodSettlement
}

func NewSettlementRepo() *SettlementRepo {
	return &SettlementRepo{items: make(map[string]entity.PeriodSettlement)}
}

func (r *SettlementRepo) GetByPeriod(_ context.Context, companyID string, period entity.Period) (*entity.PeriodSettlement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[settlementKey(companyID, period)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SettlementRepo) Upsert(_ context.Context, s *entity.PeriodSettlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[settlementKey(s.CompanyID, s.Period)] = *s
	return nil
}

func settlementKey(companyID string, p entity.Period) string {
	return companyID + "/" + p.String()
}
