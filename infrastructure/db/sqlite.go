package db

import (
	"context"
	"errors"
	"time"

	"github.com/prasetyowira/certqr/constant"
	"github.com/prasetyowira/certqr/domain/certificate"
	appLogger "github.com/prasetyowira/certqr/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteRepository implements certificate.Repository
type SQLiteRepository struct {
	db *gorm.DB
}

// CertificateModel is the GORM model of an issued certificate
type CertificateModel struct {
	ID              uint   `gorm:"primaryKey"`
	CertificateNo   string `gorm:"uniqueIndex;not null"`
	ParticipantName string
	IDNumber        string
	Course          string
	CompanyName     string
	TrainingDate    string
	ExpiryDate      string
	HTMLPath        string    `gorm:"not null"`
	QRPath          string    `gorm:"not null"`
	URL             string    `gorm:"not null"`
	IssuedAt        time.Time `gorm:"index"`
}

// TableName overrides the default certificate_models
func (CertificateModel) TableName() string {
	return "certificates"
}

func toModel(issued *certificate.Issued) CertificateModel {
	return CertificateModel{
		CertificateNo:   issued.CertificateNo,
		ParticipantName: issued.ParticipantName,
		IDNumber:        issued.IDNumber,
		Course:          issued.Course,
		CompanyName:     issued.CompanyName,
		TrainingDate:    issued.TrainingDate,
		ExpiryDate:      issued.ExpiryDate,
		HTMLPath:        issued.HTMLPath,
		QRPath:          issued.QRPath,
		URL:             issued.URL,
		IssuedAt:        issued.IssuedAt,
	}
}

func (m CertificateModel) toIssued() certificate.Issued {
	return certificate.Issued{
		Record: certificate.Record{
			CertificateNo:   m.CertificateNo,
			ParticipantName: m.ParticipantName,
			IDNumber:        m.IDNumber,
			Course:          m.Course,
			CompanyName:     m.CompanyName,
			TrainingDate:    m.TrainingDate,
			ExpiryDate:      m.ExpiryDate,
		},
		Artifacts: certificate.Artifacts{
			HTMLPath: m.HTMLPath,
			QRPath:   m.QRPath,
			URL:      m.URL,
		},
		IssuedAt: m.IssuedAt,
	}
}

// GormLogger implements GORM's logger.Interface
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations. A missing row is an expected lookup outcome and
// is logged at debug level.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewSQLiteRepository opens (creating if needed) the registry database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: &GormLogger{},
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	if err := db.AutoMigrate(&CertificateModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &SQLiteRepository{db: db}, nil
}

// Save inserts the certificate or replaces the row already issued under its number
func (r *SQLiteRepository) Save(ctx context.Context, issued *certificate.Issued) error {
	model := toModel(issued)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "certificate_no"}},
		UpdateAll: true,
	}).Create(&model)
	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to save certificate", appLogger.LoggerInfo{
			ContextFunction: constant.CtxSave,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBUpsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataCertificateNo: issued.CertificateNo,
			},
		})
		return result.Error
	}

	appLogger.CtxInfo(ctx, "Certificate saved", appLogger.LoggerInfo{
		ContextFunction: constant.CtxSave,
		Data: map[string]interface{}{
			constant.DataCertificateNo: issued.CertificateNo,
			constant.DataRowsAffected:  result.RowsAffected,
		},
	})
	return nil
}

// FindByNumber retrieves a certificate by its number
func (r *SQLiteRepository) FindByNumber(ctx context.Context, certificateNo string) (*certificate.Issued, error) {
	appLogger.CtxDebug(ctx, "Looking up certificate", appLogger.LoggerInfo{
		ContextFunction: constant.CtxFindByNumber,
		Data: map[string]interface{}{
			constant.DataCertificateNo: certificateNo,
		},
	})

	var model CertificateModel
	err := r.db.WithContext(ctx).Where("certificate_no = ?", certificateNo).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &certificate.Error{Kind: certificate.ErrNotFound, Op: "find certificate", Path: certificateNo}
	}
	if err != nil {
		appLogger.CtxError(ctx, "Database error while looking up certificate", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByNumber,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataCertificateNo: certificateNo,
			},
		})
		return nil, err
	}

	issued := model.toIssued()
	return &issued, nil
}

// List returns every issued certificate, newest first
func (r *SQLiteRepository) List(ctx context.Context) ([]certificate.Issued, error) {
	var models []CertificateModel
	if err := r.db.WithContext(ctx).Order("issued_at DESC").Order("certificate_no").Find(&models).Error; err != nil {
		appLogger.CtxError(ctx, "Failed to list certificates", appLogger.LoggerInfo{
			ContextFunction: constant.CtxList,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBList,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	issued := make([]certificate.Issued, 0, len(models))
	for _, m := range models {
		issued = append(issued, m.toIssued())
	}
	return issued, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	ctx := context.Background()
	sqlDB, err := r.db.DB()
	if err != nil {
		appLogger.CtxError(ctx, "Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.CtxInfo(ctx, "Closing database connection", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}
