package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/cierre-fiscal/internal/domain"
)

// Period mes calendario de liquidación. Junto con el ID de empresa forma la llave
// de la liquidación.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod valida y construye el período.
func NewPeriod(year int, month time.Month) (Period, error) {
	if year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("%w: año fuera de rango: %d", domain.ErrInvalidInput, year)
	}
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("%w: mes fuera de rango: %d", domain.ErrInvalidInput, month)
	}
	return Period{Year: year, Month: month}, nil
}

// ParsePeriod interpreta "YYYY-MM".
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: período %q (formato YYYY-MM): %v", domain.ErrInvalidInput, s, err)
	}
	return NewPeriod(t.Year(), t.Month())
}

// String devuelve "YYYY-MM".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Start primer instante del mes (UTC).
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End primer instante del mes siguiente (exclusivo).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains informa si t cae dentro del mes.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start()) && t.Before(p.End())
}

// Previous mes anterior.
func (p Period) Previous() Period {
	t := p.Start().AddDate(0, -1, 0)
	return Period{Year: t.Year(), Month: t.Month()}
}

// Next mes siguiente.
func (p Period) Next() Period {
	t := p.End()
	return Period{Year: t.Year(), Month: t.Month()}
}

// IsZero indica un período sin inicializar.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
