package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/prasetyowira/certqr/config"
	"github.com/prasetyowira/certqr/constant"
	"github.com/prasetyowira/certqr/domain/certificate"
	appLogger "github.com/prasetyowira/certqr/infrastructure/logger"
	"github.com/spf13/cobra"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		record    certificate.Record
		baseURL   string
		outputDir string
		dbPath    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one certificate page and its QR code",
		Example: `  certqr generate --number PK17058 --name "Muhammad Hasnain" --id 92347591734 \
    --course "Security Officer" --company DECON \
    --training-date "01 July 2024" --expiry-date "30 June 2027"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := certificate.IssueRequest{
				Certificate: record,
				BaseURL:     a.cfg.BaseURL,
				OutputDir:   a.cfg.OutputDir,
			}
			if baseURL != "" {
				req.BaseURL = baseURL
			}
			if outputDir != "" {
				req.OutputDir = outputDir
			}
			if !cmd.Flags().Changed("db") {
				dbPath = a.cfg.DatabaseURL
			}

			service, reg, err := a.newService(dbPath)
			if err != nil {
				return err
			}
			defer reg.close()

			out := cmd.OutOrStdout()
			printHeader(out, "CERTIFICATE GENERATOR")
			printBaseURLWarning(out, req.BaseURL)

			ctx := appLogger.WithRequestID(cmd.Context(), record.CertificateNo)
			artifacts, err := service.Issue(ctx, req)
			if err != nil {
				logIssueFailure(constant.CtxGenerateCommand, record.CertificateNo, err)
				return err
			}

			printArtifacts(out, artifacts)
			printNextSteps(out, req.BaseURL, req.OutputDir)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&record.CertificateNo, "number", "", "Certificate number, used in file names and the URL")
	flags.StringVar(&record.ParticipantName, "name", "", "Participant name")
	flags.StringVar(&record.IDNumber, "id", "", "Participant ID number")
	flags.StringVar(&record.Course, "course", "", "Course title")
	flags.StringVar(&record.CompanyName, "company", "", "Company name")
	flags.StringVar(&record.TrainingDate, "training-date", "", "Training date, printed as given")
	flags.StringVar(&record.ExpiryDate, "expiry-date", "", "Expiry date, printed as given")
	flags.StringVar(&baseURL, "base-url", "", "Public URL prefix the pages are hosted under (default $BASE_URL)")
	flags.StringVar(&outputDir, "out", "", "Output directory (default $OUTPUT_DIR)")
	flags.StringVar(&dbPath, "db", "", `Registry database (default $DATABASE_URL, "" disables the registry)`)
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var (
		file   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate every certificate listed in a YAML file",
		Long: `Generate every certificate listed in a YAML file. The file may set base_url
and output_dir; missing keys fall back to BASE_URL and OUTPUT_DIR. The run
stops at the first certificate that fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := config.LoadBatch(file, a.cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("db") {
				dbPath = a.cfg.DatabaseURL
			}

			service, reg, err := a.newService(dbPath)
			if err != nil {
				return err
			}
			defer reg.close()

			out := cmd.OutOrStdout()
			printHeader(out, "CERTIFICATE GENERATOR")
			printBaseURLWarning(out, batch.BaseURL)

			for _, req := range batch.Requests() {
				no := req.Certificate.CertificateNo
				ctx := appLogger.WithRequestID(cmd.Context(), no)
				artifacts, err := service.Issue(ctx, req)
				if err != nil {
					logIssueFailure(constant.CtxBatchCommand, no, err)
					return fmt.Errorf("certificate %s: %w", no, err)
				}
				printArtifacts(out, artifacts)
			}

			appLogger.Info("Batch issued", appLogger.LoggerInfo{
				ContextFunction: constant.CtxBatchCommand,
				Data: map[string]interface{}{
					constant.DataFile:  file,
					constant.DataCount: len(batch.Certificates),
				},
			})
			printNextSteps(out, batch.BaseURL, batch.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML batch file")
	cmd.Flags().StringVar(&dbPath, "db", "", `Registry database (default $DATABASE_URL, "" disables the registry)`)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (a *app) listCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issued certificates recorded in the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("db") {
				dbPath = a.cfg.DatabaseURL
			}

			service, reg, err := a.newService(dbPath)
			if err != nil {
				return err
			}
			defer reg.close()

			issued, err := service.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(issued) == 0 {
				fmt.Fprintln(out, "No certificates issued yet.")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NUMBER\tPARTICIPANT\tCOURSE\tISSUED\tURL")
			for _, c := range issued {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					c.CertificateNo, c.ParticipantName, c.Course,
					c.IssuedAt.Local().Format("2006-01-02 15:04"), c.URL)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Registry database (default $DATABASE_URL)")

	return cmd
}

func logIssueFailure(fn, certificateNo string, err error) {
	appLogger.Error(constant.MsgIssueFailed, appLogger.LoggerInfo{
		ContextFunction: fn,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeAppIssue,
			Message: err.Error(),
			Type:    constant.ErrTypeApp,
		},
		Data: map[string]interface{}{
			constant.DataCertificateNo: certificateNo,
		},
	})
}
