package document

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"freight/internal/pkg/errs"
)

const (
	dayLayout = "20060102"

	MinSequence = 1
	MaxSequence = 999
)

var (
	ErrSequenceOverflow  = errors.New("daily document sequence exhausted")
	ErrNumberIsMalformed = errors.New("document number is malformed")

	numberPattern = regexp.MustCompile(`^([A-Z]{3})-(\d{8})-(\d{3})$`)
)

// Prefix selects the independent counter a number is drawn from.
type Prefix string

const (
	ShipmentPrefix Prefix = "SHP"
	InvoicePrefix  Prefix = "INV"
)

func (p Prefix) Validate() error {
	switch p {
	case ShipmentPrefix, InvoicePrefix:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("prefix", fmt.Errorf("%q is not a document prefix", string(p)))
	}
}

func (p Prefix) String() string {
	return string(p)
}

// SequenceOverflowError reports that a day's counter passed MaxSequence.
type SequenceOverflowError struct {
	Prefix   Prefix
	Day      string
	Sequence int
}

func (e *SequenceOverflowError) Error() string {
	return fmt.Sprintf("%s: %s on %s reached %d, maximum is %d",
		ErrSequenceOverflow, e.Prefix, e.Day, e.Sequence, MaxSequence)
}

func (e *SequenceOverflowError) Unwrap() error {
	return ErrSequenceOverflow
}

// DayKey returns the UTC calendar day of t as yyyyMMdd, the counter scope.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// Number is an issued document number.
type Number struct {
	prefix   Prefix
	day      string
	sequence int
}

// NewNumber builds the number for the sequence-th document of prefix on the
// UTC day of issuedAt.
func NewNumber(prefix Prefix, issuedAt time.Time, sequence int) (Number, error) {
	if err := prefix.Validate(); err != nil {
		return Number{}, err
	}
	day := DayKey(issuedAt)
	if sequence > MaxSequence {
		return Number{}, &SequenceOverflowError{Prefix: prefix, Day: day, Sequence: sequence}
	}
	if sequence < MinSequence {
		return Number{}, errs.NewValueIsOutOfRangeError("sequence", sequence, MinSequence, MaxSequence)
	}
	return Number{prefix: prefix, day: day, sequence: sequence}, nil
}

// ParseNumber validates a stored number string.
func ParseNumber(s string) (Number, error) {
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return Number{}, fmt.Errorf("%w: %q", ErrNumberIsMalformed, s)
	}
	prefix := Prefix(m[1])
	if err := prefix.Validate(); err != nil {
		return Number{}, err
	}
	day, err := time.Parse(dayLayout, m[2])
	if err != nil {
		return Number{}, fmt.Errorf("%w: %q: %w", ErrNumberIsMalformed, s, err)
	}
	seq, _ := strconv.Atoi(m[3])
	return NewNumber(prefix, day, seq)
}

func (n Number) Prefix() Prefix { return n.prefix }
func (n Number) Day() string    { return n.day }
func (n Number) Sequence() int  { return n.sequence }

func (n Number) IsZero() bool {
	return n.prefix == ""
}

func (n Number) String() string {
	if n.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s-%s-%03d", n.prefix, n.day, n.sequence)
}
