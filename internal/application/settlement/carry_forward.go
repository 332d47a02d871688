package settlement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/cierre-fiscal/internal/domain"
	"github.com/jhoicas/cierre-fiscal/internal/domain/entity"
	"github.com/jhoicas/cierre-fiscal/internal/domain/fiscal"
	"github.com/jhoicas/cierre-fiscal/internal/domain/repository"
)

// CarryForwardManager guarda los saldos de cierre de un período y los entrega
// como saldos iniciales del siguiente.
type CarryForwardManager struct {
	repo repository.PeriodSettlementRepository
	now  func() time.Time

	// Las confirmaciones de un mismo (empresa, período) se serializan aquí;
	// entre llaves distintas no hay coordinación.
	locks keyedLocks
}

// NewCarryForwardManager construye el administrador sobre el puerto de liquidaciones.
func NewCarryForwardManager(repo repository.PeriodSettlementRepository) *CarryForwardManager {
	return &CarryForwardManager{repo: repo, now: time.Now}
}

// LoadPriorSettlement devuelve la liquidación del mes anterior a period, o nil si no existe.
func (m *CarryForwardManager) LoadPriorSettlement(ctx context.Context, companyID string, period entity.Period) (*entity.PeriodSettlement, error) {
	prior, err := m.repo.GetByPeriod(ctx, companyID, period.Previous())
	if err != nil {
		return nil, &domain.MissingCollaboratorDataError{Source: "liquidación anterior", Err: err}
	}
	return prior, nil
}

// Committed devuelve la liquidación guardada de period, o nil.
func (m *CarryForwardManager) Committed(ctx context.Context, companyID string, period entity.Period) (*entity.PeriodSettlement, error) {
	s, err := m.repo.GetByPeriod(ctx, companyID, period)
	if err != nil {
		return nil, fmt.Errorf("settlement: obtener liquidación %s: %w", period, err)
	}
	return s, nil
}

// CommitSettlement sobrescribe la liquidación de (empresa, período). Volver a
// liquidar reemplaza el registro; conserva ID y fecha de creación si ya existía.
func (m *CarryForwardManager) CommitSettlement(ctx context.Context, companyID string, period entity.Period, result fiscal.SettlementResult) (*entity.PeriodSettlement, error) {
	unlock := m.locks.lock(companyID + "/" + period.String())
	defer unlock()

	existing, err := m.repo.GetByPeriod(ctx, companyID, period)
	if err != nil {
		return nil, fmt.Errorf("settlement: leer liquidación existente: %w", err)
	}

	now := m.now()
	s := fiscal.NewPeriodSettlement(companyID, period, result)
	if existing != nil {
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	} else {
		s.ID = uuid.New().String()
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	if err := m.repo.Upsert(ctx, s); err != nil {
		return nil, fmt.Errorf("settlement: guardar liquidación: %w", err)
	}
	return s, nil
}

// keyedLocks un mutex por llave. La entrada se elimina cuando nadie la usa, así
// el mapa solo contiene las llaves con confirmaciones en curso.
type keyedLocks struct {
	mu sync.Mutex
	m  map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int
}

func (k *keyedLocks) lock(key string) (unlock func()) {
	k.mu.Lock()
	if k.m == nil {
		k.m = make(map[string]*keyLock)
	}
	l, ok := k.m[key]
	if !ok {
		l = &keyLock{}
		k.m[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.m, key)
		}
		k.mu.Unlock()
	}
}

// pending llaves con confirmaciones en curso o en espera.
func (k *keyedLocks) pending() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.m)
}
