package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"greenhalal/backend/internal/enrich"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Manage the reference company table",
}

var referenceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reference companies",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, table, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "COMPANY\tCARBON\tHALAL CERTIFIED\tCERTIFICATION")
		for _, e := range table.Entries() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CompanyName, carbonCell(e), certifiedCell(e), e.CertificationID)
		}
		return tw.Flush()
	},
}

var referenceImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import reference companies from a YAML file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("file")
		entries, err := enrich.LoadFile(path)
		if err != nil {
			return err
		}

		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.UpsertReferences(entries); err != nil {
			return eris.Wrap(err, "import reference companies")
		}
		total, err := db.CountReferences()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries, %d reference companies stored\n", len(entries), total)
		return nil
	},
}

var referenceDeleteCmd = &cobra.Command{
	Use:   "delete COMPANY",
	Short: "Remove a company from the reference table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteReference(args[0]); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return eris.Errorf("no reference company named %q", args[0])
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

func init() {
	referenceImportCmd.Flags().StringP("file", "f", "", "YAML file with a list of reference entries")
	_ = referenceImportCmd.MarkFlagRequired("file")

	referenceCmd.AddCommand(referenceListCmd, referenceImportCmd, referenceDeleteCmd)
	rootCmd.AddCommand(referenceCmd)
}

func carbonCell(e enrich.Entry) string {
	if e.CarbonEmissionPerUnit == nil {
		return "-"
	}
	return strconv.FormatFloat(*e.CarbonEmissionPerUnit, 'f', -1, 64)
}

func certifiedCell(e enrich.Entry) string {
	if e.HalalCertified == nil {
		return "-"
	}
	return strconv.FormatBool(*e.HalalCertified)
}
