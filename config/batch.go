package config

import (
	"fmt"
	"os"

	"github.com/prasetyowira/certqr/domain/certificate"
	"gopkg.in/yaml.v3"
)

// Batch is a YAML file describing several certificates to issue in one run:
//
//	base_url: https://example.github.io/certs
//	output_dir: certificates
//	certificates:
//	  - certificate_no: PK17058
//	    participant_name: Muhammad Hasnain
//	    ...
type Batch struct {
	BaseURL      string               `yaml:"base_url"`
	OutputDir    string               `yaml:"output_dir"`
	Certificates []certificate.Record `yaml:"certificates"`
}

// LoadBatch reads a batch file. Empty base_url and output_dir are filled from cfg.
func LoadBatch(path string, cfg Config) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse batch file %s: %w", path, err)
	}
	if len(batch.Certificates) == 0 {
		return nil, fmt.Errorf("batch file %s lists no certificates", path)
	}

	seen := make(map[string]bool, len(batch.Certificates))
	for i, record := range batch.Certificates {
		if seen[record.CertificateNo] {
			return nil, fmt.Errorf("batch file %s: certificate %q listed twice (entry %d)", path, record.CertificateNo, i+1)
		}
		seen[record.CertificateNo] = true
	}

	if batch.BaseURL == "" {
		batch.BaseURL = cfg.BaseURL
	}
	if batch.OutputDir == "" {
		batch.OutputDir = cfg.OutputDir
	}
	return &batch, nil
}

// Requests turns the batch into one issue request per certificate
func (b *Batch) Requests() []certificate.IssueRequest {
	requests := make([]certificate.IssueRequest, 0, len(b.Certificates))
	for _, record := range b.Certificates {
		requests = append(requests, certificate.IssueRequest{
			Certificate: record,
			BaseURL:     b.BaseURL,
			OutputDir:   b.OutputDir,
		})
	}
	return requests
}
