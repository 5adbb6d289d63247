package order

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"time"

	"tawsila/internal/pkg/errs"
)

// NumberPrefix is the fixed prefix of every externally visible order number.
const NumberPrefix = "ORD"

var numberPattern = regexp.MustCompile(`^ORD-\d{10}-\d{4}$`)

// GenerateNumber produces an externally visible order number of the form
// ORD-<ten time-derived digits>-<four random digits>. The time part is the
// last ten digits of the submission timestamp in milliseconds, so numbers
// are loosely sortable by creation time. Collisions are statistically
// negligible but not impossible; the persistence layer still enforces
// uniqueness.
func GenerateNumber() string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	timestampPart := millis[len(millis)-10:]
	randomPart := rand.IntN(9000) + 1000 //nolint:gosec // not a secret, uniqueness is enforced by the store
	return fmt.Sprintf("%s-%s-%d", NumberPrefix, timestampPart, randomPart)
}

// ValidateNumber checks that s has the canonical order-number shape.
func ValidateNumber(s string) error {
	if s == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	if !numberPattern.MatchString(s) {
		return errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%q does not match %s", s, numberPattern.String()))
	}
	return nil
}
