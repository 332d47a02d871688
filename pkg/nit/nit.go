// Package nit valida el Número de Identificación Tributaria de Guatemala.
package nit

import (
	"fmt"
	"strings"
	"unicode"
)

// FinalConsumer NIT genérico de consumidor final en facturas de venta.
const FinalConsumer = "CF"

// Normalize quita guiones, espacios y pasa a mayúsculas: "123456-7" → "1234567".
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsDigit(r) || r == 'K' || r == 'C' || r == 'F' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsFinalConsumer informa si el NIT es "CF".
func IsFinalConsumer(s string) bool {
	return Normalize(s) == FinalConsumer
}

// CheckDigit calcula el dígito verificador (módulo 11) del cuerpo del NIT.
// Los pesos van de len+1 a 2 de izquierda a derecha; un resultado de 10 es "K".
func CheckDigit(body string) (byte, error) {
	if body == "" {
		return 0, fmt.Errorf("nit: cuerpo vacío")
	}
	var sum int
	weight := len(body) + 1
	for _, r := range body {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("nit: carácter inválido %q", r)
		}
		sum += int(r-'0') * weight
		weight--
	}
	check := (11 - sum%11) % 11
	if check == 10 {
		return 'K', nil
	}
	return byte('0' + check), nil
}

// Validate valida un NIT con dígito verificador al final ("1234567-9", "12345679").
func Validate(s string) error {
	n := Normalize(s)
	if len(n) < 2 {
		return fmt.Errorf("nit: %q demasiado corto", s)
	}
	body, got := n[:len(n)-1], n[len(n)-1]
	expected, err := CheckDigit(body)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("nit: dígito verificador inválido en %q: esperado %c, recibido %c", s, expected, got)
	}
	return nil
}
