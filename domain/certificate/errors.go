package certificate

import (
	"errors"
	"strings"

	"github.com/prasetyowira/certqr/constant"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidRecord    = errors.New("invalid certificate")
	ErrOutputDir        = errors.New("output directory not creatable")
	ErrWriteFile        = errors.New("file not writable")
	ErrCapacityExceeded = errors.New("QR code capacity exceeded")
	ErrRegistry         = errors.New("registry failure")
	ErrNotFound         = errors.New(constant.ErrCertificateNotFound)
	ErrRegistryDisabled = errors.New(constant.ErrRegistryDisabled)
)

// Error describes a failed step of issuing or looking up a certificate.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error kind
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// IsNotFound reports whether err means no certificate was issued under the number
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
