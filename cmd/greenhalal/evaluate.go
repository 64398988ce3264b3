package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"greenhalal/backend/internal/ai"
	"greenhalal/backend/internal/pipeline"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a company/product record",
	Long: `Score a record read from a JSON or YAML file and print the result.

Examples:
  # Score a record and print JSON
  greenhalal evaluate -f record.json

  # Human-readable summary with a narrative
  greenhalal evaluate -f record.yaml --format text --narrative`,
	RunE: runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringP("file", "f", "", "record file (.json, .yaml, or - for JSON on stdin)")
	f.String("format", "json", "output format: json or text")
	f.Bool("narrative", false, "append an explanation narrative")
	_ = evaluateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(evaluateCmd)
}

type evaluateOutput struct {
	pipeline.Evaluation
	Message   string        `json:"message"`
	Narrative *ai.Narrative `json:"narrative,omitempty"`
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	format, _ := cmd.Flags().GetString("format")
	withNarrative, _ := cmd.Flags().GetBool("narrative")
	if format != "json" && format != "text" {
		return eris.Errorf("unsupported format %q", format)
	}

	rec, err := readRecord(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	db, table, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	eval, err := pipeline.Run(table, rec)
	if err != nil {
		return err
	}
	out := evaluateOutput{Evaluation: eval, Message: eval.Result.Rating.Message()}
	if withNarrative {
		narrative, err := explain(cmd.Context(), eval)
		if err != nil {
			logrus.WithError(err).Warn("narrative unavailable")
		} else {
			out.Narrative = &narrative
		}
	}

	w := cmd.OutOrStdout()
	if format == "text" {
		return printEvaluation(w, out)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func explain(ctx context.Context, a pipeline.Evaluation) (ai.Narrative, error) {
	var explainer ai.Explainer = ai.TemplateExplainer{}
	if !cfg.AI.Disabled {
		if client, err := ai.NewClient(cfg.AI.Client()); err == nil {
			explainer = ai.WithFallback(client, explainer)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	input := ai.ExplanationInput{
		Record:          a.Record,
		Result:          a.Result,
		Recommendations: a.Recommendations,
	}
	if a.Reference != nil {
		input.CertificationID = a.Reference.CertificationID
	}
	return explainer.Explain(ctx, input)
}

func printEvaluation(w io.Writer, out evaluateOutput) error {
	res := out.Result
	fmt.Fprintf(w, "Company:         %s\n", out.Record.CompanyName)
	if out.Record.ProductName != "" {
		fmt.Fprintf(w, "Product:         %s\n", out.Record.ProductName)
	}
	fmt.Fprintf(w, "Halal:           %.2f\n", res.HalalScore)
	fmt.Fprintf(w, "Sustainability:  %.2f\n", res.SustainabilityScore)
	if res.EthicsModeled {
		fmt.Fprintf(w, "Ethical:         %.2f\n", res.EthicalScore)
	}
	fmt.Fprintf(w, "GreenHalal:      %.2f\n", res.GreenHalalScore)
	fmt.Fprintf(w, "Rating:          %s\n", res.Rating)
	fmt.Fprintf(w, "\n%s\n", out.Message)
	if out.Reference != nil && out.Reference.CertificationID != "" {
		fmt.Fprintf(w, "Reference certification: %s\n", out.Reference.CertificationID)
	}
	if len(out.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, advice := range out.Recommendations {
			fmt.Fprintf(w, "  - %s\n", advice)
		}
	}
	if out.Narrative != nil {
		fmt.Fprintf(w, "\n%s\n", out.Narrative.Summary)
	}
	return nil
}
