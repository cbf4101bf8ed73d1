package certificate

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prasetyowira/certqr/constant"
)

// Record holds the display fields of one issued certificate. Every field is
// shown as-is; dates are expected to be pre-formatted.
type Record struct {
	CertificateNo   string `json:"certificate_no" yaml:"certificate_no" validate:"required,max=64,certno"`
	ParticipantName string `json:"participant_name" yaml:"participant_name"`
	IDNumber        string `json:"id_number" yaml:"id_number"`
	Course          string `json:"course" yaml:"course"`
	CompanyName     string `json:"company_name" yaml:"company_name"`
	TrainingDate    string `json:"training_date" yaml:"training_date"`
	ExpiryDate      string `json:"expiry_date" yaml:"expiry_date"`
}

// IssueRequest is everything Issue needs: the record, the public prefix the
// pages will be served under, and the local directory to write into.
type IssueRequest struct {
	Certificate Record `json:"certificate"`
	BaseURL     string `json:"base_url" validate:"required,url"`
	OutputDir   string `json:"output_dir"`
}

// Artifacts are the locations produced by Issue
type Artifacts struct {
	HTMLPath string `json:"html_file"`
	QRPath   string `json:"qr_file"`
	URL      string `json:"url"`
}

// Issued is a registry entry for a certificate that has been issued
type Issued struct {
	Record
	Artifacts
	IssuedAt time.Time `json:"issued_at"`
}

var (
	validate            = newValidator()
	certificateNoFormat = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("certno", func(fl validator.FieldLevel) bool {
		return ValidCertificateNo(fl.Field().String())
	})
	return v
}

// ValidCertificateNo reports whether no is safe to embed in a file name and a
// URL path segment.
func ValidCertificateNo(no string) bool {
	return certificateNoFormat.MatchString(no) && !strings.Contains(no, "..")
}

// Validate checks the certificate number invariant.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &Error{Kind: ErrInvalidRecord, Op: "validate certificate", Err: describe(err)}
	}
	return nil
}

// Validate checks the record and the base URL.
func (req IssueRequest) Validate() error {
	if err := req.Certificate.Validate(); err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return &Error{Kind: ErrInvalidRecord, Op: "validate request", Err: describe(err)}
	}
	return nil
}

// describe turns validator output into the user-facing message for the first
// failing field.
func describe(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}

	fe := fieldErrors[0]
	switch fe.Field() {
	case "CertificateNo":
		if fe.Tag() == "required" {
			return errors.New(constant.ErrEmptyCertificateNo)
		}
		return errors.New(constant.ErrInvalidCertificateNo)
	case "BaseURL":
		return errors.New(constant.ErrInvalidBaseURL)
	}
	return err
}

// HTMLFileName is the page file name for a certificate number
func HTMLFileName(certificateNo string) string {
	return constant.HTMLFilePrefix + certificateNo + constant.HTMLFileExtension
}

// QRFileName is the QR image file name for a certificate number
func QRFileName(certificateNo string) string {
	return constant.QRFilePrefix + certificateNo + constant.QRFileExtension
}

// PublicURL is the address the page is served from once the output directory
// is published under baseURL.
func PublicURL(baseURL, certificateNo string) string {
	return strings.TrimRight(baseURL, "/") + "/" + HTMLFileName(certificateNo)
}

// artifactsFor resolves the paths and URL for a validated request.
func artifactsFor(req IssueRequest) Artifacts {
	dir := req.OutputDir
	if dir == "" {
		dir = constant.DefaultOutputDir
	}
	no := req.Certificate.CertificateNo
	return Artifacts{
		HTMLPath: filepath.Join(dir, HTMLFileName(no)),
		QRPath:   filepath.Join(dir, QRFileName(no)),
		URL:      PublicURL(req.BaseURL, no),
	}
}
