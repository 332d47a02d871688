package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Taxonomía de errores de la liquidación.
	ErrInvalidDocument         = errors.New("documento fiscal inválido")
	ErrMissingData             = errors.New("no se pudieron obtener los datos del período")
	ErrInconsistentComputation = errors.New("inconsistencia interna en el cálculo de la liquidación")
)

// InvalidDocumentError se devuelve cuando un documento no puede clasificarse
// (categoría fuera de la taxonomía, montos negativos, tipo desconocido).
// La liquidación del período no continúa.
type InvalidDocumentError struct {
	DocumentID string
	Reason     string
}

func (e *InvalidDocumentError) Error() string {
	if e.DocumentID == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidDocument, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", ErrInvalidDocument, e.DocumentID, e.Reason)
}

func (e *InvalidDocumentError) Unwrap() error { return ErrInvalidDocument }

// MissingCollaboratorDataError envuelve el fallo de un colaborador externo
// (documentos, constancias, liquidación previa). No se produce liquidación parcial.
type MissingCollaboratorDataError struct {
	Source string // "documentos de venta", "constancias IVA", ...
	Err    error
}

func (e *MissingCollaboratorDataError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrMissingData, e.Source, e.Err)
}

// Unwrap expone tanto el sentinel como la causa original.
func (e *MissingCollaboratorDataError) Unwrap() []error { return []error{ErrMissingData, e.Err} }

// ComputationInconsistencyError indica un defecto del motor, no un error del usuario.
type ComputationInconsistencyError struct {
	Invariant string
	Detail    string
}

func (e *ComputationInconsistencyError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", ErrInconsistentComputation, e.Invariant, e.Detail)
}

func (e *ComputationInconsistencyError) Unwrap() error { return ErrInconsistentComputation }
