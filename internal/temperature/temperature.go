package temperature

import "fmt"

// KelvinOffset is the difference between the Celsius and Kelvin scales.
const KelvinOffset = 273.15

// DomainError indicates a numeric operation outside its valid domain.
type DomainError struct {
	Op    string
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: value %g is outside the valid domain", e.Op, e.Value)
}

// CelsiusToKelvin converts degrees Celsius to Kelvin.
func CelsiusToKelvin(c float64) float64 {
	return c + KelvinOffset
}

// InverseKelvin returns 1/k. Absolute zero is rejected with a *DomainError.
func InverseKelvin(k float64) (float64, error) {
	if k == 0 {
		return 0, &DomainError{Op: "inverse kelvin", Value: k}
	}
	return 1 / k, nil
}

// InverseFromCelsius converts c to Kelvin and returns its reciprocal.
func InverseFromCelsius(c float64) (float64, error) {
	return InverseKelvin(CelsiusToKelvin(c))
}
