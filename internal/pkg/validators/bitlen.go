package validators

import (
	"github.com/go-playground/validator/v10"
)

// KeyBitLenValidation validates a requested RSA modulus bit length. The
// generator accepts any positive even value; lengths above 8192 are rejected
// to keep generation time bounded at the API surface.
func KeyBitLenValidation(fl validator.FieldLevel) bool {
	bitLen := fl.Field().Uint()

	if bitLen == 0 || bitLen%2 != 0 {
		return false
	}
	return bitLen <= 8192
}
