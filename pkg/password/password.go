// Package password valida la fortaleza de contraseñas en texto plano.
// El hash (bcrypt) vive en el caso de uso de auth, no aquí.
package password

import (
	"errors"
	"unicode"
)

// MinLength longitud mínima aceptada.
const MinLength = 8

var (
	ErrTooShort        = errors.New("la contraseña debe tener al menos 8 caracteres")
	ErrNoLetter        = errors.New("la contraseña debe incluir al menos una letra")
	ErrNoDigitOrSymbol = errors.New("la contraseña debe incluir al menos un número o símbolo")
)

// Validate verifica la política: mínimo 8 caracteres, al menos una letra y
// al menos un número o símbolo.
func Validate(pw string) error {
	if len(pw) < MinLength {
		return ErrTooShort
	}
	var hasLetter, hasOther bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			hasOther = true
		}
	}
	if !hasLetter {
		return ErrNoLetter
	}
	if !hasOther {
		return ErrNoDigitOrSymbol
	}
	return nil
}
