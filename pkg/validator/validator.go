package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates structs using `validate` tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &Validator{v: v}
}

// Validate checks obj against its `validate` tags and returns a single
// field-level message for the first failure.
func (va *Validator) Validate(obj interface{}) error {
	err := va.v.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); !ok || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "min", "gte":
		return fmt.Errorf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Errorf("%s must not exceed %s", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%s failed validation on '%s'", fe.Field(), fe.Tag())
	}
}

// Var validates a single value against a rule string such as "gte=0,lte=1000".
func (va *Validator) Var(name string, value interface{}, rules string) error {
	if err := va.v.Var(value, rules); err != nil {
		rule := rules
		if i := strings.IndexByte(rules, ','); i > 0 {
			rule = rules[:i]
		}
		return fmt.Errorf("%s failed validation on '%s'", name, rule)
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}
