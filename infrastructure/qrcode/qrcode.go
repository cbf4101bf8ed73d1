package qrcode

import (
	"errors"
	"fmt"
	"os"

	"github.com/prasetyowira/certqr/constant"
	"github.com/prasetyowira/certqr/infrastructure/logger"
	"github.com/skip2/go-qrcode"
)

// MaxContentLength is the byte-mode capacity of a version 40 symbol at the
// Medium recovery level.
const MaxContentLength = 2331

// DefaultModuleSize is the pixel width of one module when no size is requested.
const DefaultModuleSize = 10

var (
	// ErrContentTooLong is returned for content beyond MaxContentLength.
	ErrContentTooLong = errors.New(constant.ErrContentTooLong)
	// ErrEmptyContent is returned for empty content.
	ErrEmptyContent = errors.New("content cannot be empty")
)

// Generator handles QR code generation
type Generator struct {
	moduleSize int
}

// NewGenerator creates a new QR code generator. moduleSize is the pixel width
// of a single module; values below 1 use DefaultModuleSize.
func NewGenerator(moduleSize int) *Generator {
	if moduleSize < 1 {
		moduleSize = DefaultModuleSize
	}
	return &Generator{
		moduleSize: moduleSize,
	}
}

// Capacity returns the longest content, in bytes, the generator accepts.
func (g *Generator) Capacity() int {
	return MaxContentLength
}

// Encode returns a PNG whose size follows the symbol version, with a four
// module quiet zone around it.
func (g *Generator) Encode(content string) ([]byte, error) {
	return g.PNG(content, -g.moduleSize)
}

// PNG returns a size x size PNG for content. Negative sizes are handled as in
// go-qrcode: every module is -size pixels wide.
func (g *Generator) PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > MaxContentLength {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrContentTooLong, len(content), MaxContentLength)
	}

	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		logger.Error("Failed to build QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxQRCode,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeQREncode,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataLength: len(content),
			},
		})
		return nil, err
	}

	return code.PNG(size)
}

// WriteFile encodes content and stores the PNG at path.
func (g *Generator) WriteFile(content, path string) error {
	png, err := g.Encode(content)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, png, 0o644); err != nil {
		logger.Error("Failed to write QR code", logger.LoggerInfo{
			ContextFunction: constant.CtxQRCode,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeQRWrite,
				Message: err.Error(),
				Type:    constant.ErrTypeOutput,
			},
			Data: map[string]interface{}{
				constant.DataPath: path,
			},
		})
		return err
	}

	logger.Debug("QR code written", logger.LoggerInfo{
		ContextFunction: constant.CtxQRCode,
		Data: map[string]interface{}{
			constant.DataPath: path,
			constant.DataSize: len(png),
		},
	})
	return nil
}
