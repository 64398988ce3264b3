package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"greenhalal/backend/internal/certificate"
	"greenhalal/backend/internal/pipeline"
)

var certificateCmd = &cobra.Command{
	Use:   "certificate",
	Short: "Issue a PDF certificate for an Excellent record",
	Long: `Score a record and, when it rates Excellent, write the GreenHalal certificate PDF.

The output defaults to {company}_{product}_GreenHalal.pdf in the current directory.
When --output names a directory the default file name is used inside it.`,
	RunE: runCertificate,
}

func init() {
	f := certificateCmd.Flags()
	f.StringP("file", "f", "", "record file (.json, .yaml, or - for JSON on stdin)")
	f.StringP("output", "o", "", "output file or directory")
	_ = certificateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(certificateCmd)
}

func runCertificate(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	output, _ := cmd.Flags().GetString("output")

	rec, err := readRecord(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	db, table, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := pipeline.Run(table, rec)
	if err != nil {
		return err
	}
	data := certificate.FromResult(a.Record, a.Result, a.Reference)

	var buf bytes.Buffer
	if err := certificate.Render(&buf, data); err != nil {
		if eris.Is(err, certificate.ErrNotEligible) {
			return eris.Errorf("%s rated %s (%.2f); certificates are only issued for Excellent",
				a.Record.CompanyName, a.Result.Rating, a.Result.GreenHalalScore)
		}
		return err
	}

	target := certificatePath(output, data.Filename())
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "write certificate %s", target)
	}

	logrus.WithFields(logrus.Fields{
		"company": data.CompanyName,
		"serial":  data.Serial,
		"path":    target,
	}).Info("certificate issued")
	fmt.Fprintln(cmd.OutOrStdout(), target)
	return nil
}

func certificatePath(output, filename string) string {
	if output == "" {
		return filename
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, filename)
	}
	return output
}
