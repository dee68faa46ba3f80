package apierror

import (
	"net/http"

	"bizdirectory/cmd/internal/domain/validation"
)

// FromResult turns a failed validation result into a 400 response.
// A valid result yields nil.
func FromResult(res validation.Result) ErrorResponse {
	if res.Valid {
		return nil
	}

	se := NewStructured(http.StatusBadRequest)
	for field, problems := range res.Problems {
		for _, p := range problems {
			se.Add(field, p)
		}
	}
	if len(se.Errors) == 0 {
		se.Add("body", res.Error)
	}
	return se
}
