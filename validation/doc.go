// Package validation provides input validation for diarize.
//
// It supports struct tag validation (using the go-playground validator) and
// programmatic validation with error collection. Both return an
// *errors.AppError with per-field details.
//
// # Struct Tag Validation
//
//	type Segment struct {
//	    Start float64 `json:"start" validate:"gte=0"`
//	    End   float64 `json:"end" validate:"gtfield=Start"`
//	}
//	err := validation.Validate(seg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Min("num_speakers", n, 0)
//	err := v.Validate()
package validation
