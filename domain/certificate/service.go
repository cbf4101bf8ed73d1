package certificate

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/prasetyowira/certqr/constant"
	"github.com/prasetyowira/certqr/infrastructure/cache"
	"github.com/prasetyowira/certqr/infrastructure/logger"
)

// CodeGenerator produces a scannable image for a string and stores it at a path
type CodeGenerator interface {
	// Capacity is the longest content, in bytes, WriteFile accepts
	Capacity() int
	WriteFile(content, path string) error
}

// Repository defines the persistence operations of the issued-certificate registry
type Repository interface {
	// Save inserts or replaces the entry for issued.CertificateNo
	Save(ctx context.Context, issued *Issued) error
	// FindByNumber returns ErrNotFound when nothing was issued under certificateNo
	FindByNumber(ctx context.Context, certificateNo string) (*Issued, error)
	List(ctx context.Context) ([]Issued, error)
}

// Service issues certificates and answers registry lookups
type Service struct {
	codes CodeGenerator
	repo  Repository
	pages *cache.NamespaceLRU[[]byte]
	now   func() time.Time
}

// NewService creates a certificate service. repo and pages are optional: without
// a repository nothing is recorded and lookups fail with ErrRegistryDisabled.
func NewService(codes CodeGenerator, repo Repository, pages *cache.NamespaceLRU[[]byte]) *Service {
	logger.Debug("Creating certificate service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "certificate",
		},
	})

	return &Service{
		codes: codes,
		repo:  repo,
		pages: pages,
		now:   time.Now,
	}
}

// Issue writes the certificate page and its QR code into req.OutputDir and
// returns where they went. Any failure aborts the run; files written before the
// failure are left in place.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*Artifacts, error) {
	logger.CtxDebug(ctx, "Issuing certificate", logger.LoggerInfo{
		ContextFunction: constant.CtxIssue,
		Data: map[string]interface{}{
			constant.DataCertificateNo: req.Certificate.CertificateNo,
			constant.DataBaseURL:       req.BaseURL,
			constant.DataOutputDir:     req.OutputDir,
		},
	})

	if err := req.Validate(); err != nil {
		logger.CtxWarn(ctx, "Rejected certificate request", logger.LoggerInfo{
			ContextFunction: constant.CtxIssue,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeInvalidRecord,
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
		})
		return nil, err
	}

	artifacts := artifactsFor(req)
	dir := req.OutputDir
	if dir == "" {
		dir = constant.DefaultOutputDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, s.fail(ctx, &Error{Kind: ErrOutputDir, Op: "create output directory", Path: dir, Err: err},
			constant.ErrCodeOutputDir, constant.ErrTypeOutput)
	}

	page := Render(req.Certificate)
	if err := os.WriteFile(artifacts.HTMLPath, []byte(page), 0o644); err != nil {
		return nil, s.fail(ctx, &Error{Kind: ErrWriteFile, Op: "write certificate page", Path: artifacts.HTMLPath, Err: err},
			constant.ErrCodeWriteHTML, constant.ErrTypeOutput)
	}

	logger.CtxInfo(ctx, "Certificate page saved", logger.LoggerInfo{
		ContextFunction: constant.CtxIssue,
		Data: map[string]interface{}{
			constant.DataHTMLPath: artifacts.HTMLPath,
		},
	})

	if capacity := s.codes.Capacity(); len(artifacts.URL) > capacity {
		logger.CtxDebug(ctx, "Certificate URL exceeds QR capacity", logger.LoggerInfo{
			ContextFunction: constant.CtxIssue,
			Data: map[string]interface{}{
				constant.DataLength:   len(artifacts.URL),
				constant.DataCapacity: capacity,
			},
		})
		return nil, s.fail(ctx, &Error{Kind: ErrCapacityExceeded, Op: "encode certificate url", Path: artifacts.QRPath},
			constant.ErrCodeCapacityExceeded, constant.ErrTypeEncoding)
	}

	if err := s.codes.WriteFile(artifacts.URL, artifacts.QRPath); err != nil {
		return nil, s.fail(ctx, &Error{Kind: ErrWriteFile, Op: "write QR code", Path: artifacts.QRPath, Err: err},
			constant.ErrCodeWriteQR, constant.ErrTypeOutput)
	}

	logger.CtxInfo(ctx, "QR code saved", logger.LoggerInfo{
		ContextFunction: constant.CtxIssue,
		Data: map[string]interface{}{
			constant.DataQRPath: artifacts.QRPath,
			constant.DataURL:    artifacts.URL,
		},
	})

	if s.repo != nil {
		issued := &Issued{
			Record:    req.Certificate,
			Artifacts: artifacts,
			IssuedAt:  s.now(),
		}
		if err := s.repo.Save(ctx, issued); err != nil {
			return nil, s.fail(ctx, &Error{Kind: ErrRegistry, Op: "record certificate", Path: req.Certificate.CertificateNo, Err: err},
				constant.ErrCodeRegistrySave, constant.ErrTypeRegistry)
		}
	}

	if s.pages != nil {
		s.pages.Invalidate(constant.PageNamespace, req.Certificate.CertificateNo)
	}

	logger.CtxInfo(ctx, "Certificate issued", logger.LoggerInfo{
		ContextFunction: constant.CtxIssue,
		Data: map[string]interface{}{
			constant.DataCertificateNo: req.Certificate.CertificateNo,
			constant.DataHTMLPath:      artifacts.HTMLPath,
			constant.DataQRPath:        artifacts.QRPath,
			constant.DataURL:           artifacts.URL,
		},
	})

	return &artifacts, nil
}

// Lookup returns the registry entry for certificateNo
func (s *Service) Lookup(ctx context.Context, certificateNo string) (*Issued, error) {
	if s.repo == nil {
		return nil, &Error{Kind: ErrRegistryDisabled, Op: "lookup certificate", Path: certificateNo}
	}

	// Numbers that could never have been issued are not worth a query
	if !ValidCertificateNo(certificateNo) {
		return nil, &Error{Kind: ErrNotFound, Op: "lookup certificate", Path: certificateNo}
	}

	issued, err := s.repo.FindByNumber(ctx, certificateNo)
	if err != nil {
		if IsNotFound(err) {
			logger.CtxDebug(ctx, "Certificate not found", logger.LoggerInfo{
				ContextFunction: constant.CtxLookup,
				Data: map[string]interface{}{
					constant.DataCertificateNo: certificateNo,
				},
			})
			return nil, &Error{Kind: ErrNotFound, Op: "lookup certificate", Path: certificateNo}
		}
		return nil, s.fail(ctx, &Error{Kind: ErrRegistry, Op: "lookup certificate", Path: certificateNo, Err: err},
			constant.ErrCodeRegistryLookup, constant.ErrTypeRetrieval)
	}

	return issued, nil
}

// List returns every registry entry, most recently issued first
func (s *Service) List(ctx context.Context) ([]Issued, error) {
	if s.repo == nil {
		return nil, &Error{Kind: ErrRegistryDisabled, Op: "list certificates"}
	}

	issued, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, &Error{Kind: ErrRegistry, Op: "list certificates", Err: err},
			constant.ErrCodeRegistryLookup, constant.ErrTypeRetrieval)
	}

	logger.CtxDebug(ctx, "Certificates listed", logger.LoggerInfo{
		ContextFunction: constant.CtxList,
		Data: map[string]interface{}{
			constant.DataCount: len(issued),
		},
	})
	return issued, nil
}

// RenderPage renders the page of an issued certificate from the registry
func (s *Service) RenderPage(ctx context.Context, certificateNo string) ([]byte, error) {
	if s.pages != nil {
		if page, found := s.pages.Get(constant.PageNamespace, certificateNo); found {
			logger.CtxDebug(ctx, "Certificate page served from cache", logger.LoggerInfo{
				ContextFunction: constant.CtxRenderPage,
				Data: map[string]interface{}{
					constant.DataCertificateNo: certificateNo,
					constant.DataCached:        true,
				},
			})
			return page, nil
		}
	}

	issued, err := s.Lookup(ctx, certificateNo)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteHTML(&buf, issued.Record); err != nil {
		return nil, err
	}
	page := buf.Bytes()

	if s.pages != nil {
		s.pages.Set(constant.PageNamespace, certificateNo, page)
	}
	return page, nil
}

func (s *Service) fail(ctx context.Context, err *Error, code, errType string) error {
	logger.CtxError(ctx, "Failed to "+err.Op, logger.LoggerInfo{
		ContextFunction: err.Op,
		Error: &logger.CustomError{
			Code:    code,
			Message: err.Error(),
			Type:    errType,
		},
		Data: map[string]interface{}{
			constant.DataPath: err.Path,
		},
	})
	return err
}
