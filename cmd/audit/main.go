// Command audit runs compliance analysis against local documents and
// prints the findings. With -json it emits the raw operation payloads;
// otherwise a colorized summary. Exits 1 when any document has critical
// findings.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/complyscan/complyscan/internal/analyzer"
	"github.com/complyscan/complyscan/internal/catalog"
	"github.com/complyscan/complyscan/internal/config"
	"github.com/complyscan/complyscan/internal/docsource"
	"github.com/complyscan/complyscan/internal/metrics"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
)

var (
	critColor   = color.New(color.FgRed, color.Bold)
	highColor   = color.New(color.FgYellow)
	mediumColor = color.New(color.FgCyan)
	okColor     = color.New(color.FgGreen)
)

func main() {
	_ = godotenv.Load()

	docType := flag.String("type", "10-K", "document type: 10-K, SOX 404, 8-K, Invoice")
	amount := flag.Float64("amount", 0, "invoice amount, used for approval thresholds")
	op := flag.String("op", "all", "operation: all, sections, statements, math, signatures, redflags, comparative")
	jsonOut := flag.Bool("json", false, "emit raw JSON payloads")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: audit [flags] FILE...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var invoiceAmount *float64
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "amount" {
			invoiceAmount = amount
		}
	})

	cfg := config.Load()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := analyzer.New(docsource.Options{
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	}, log, metrics.NewRegistry(time.Hour))

	var bar *progressbar.ProgressBar
	if len(files) > 1 && !*jsonOut {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("auditing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
	}

	exitCode := 0
	for _, path := range files {
		critical, err := auditFile(a, path, catalog.DocumentType(*docType), invoiceAmount, *op, *jsonOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
		} else if critical {
			exitCode = 1
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	os.Exit(exitCode)
}

func auditFile(a *analyzer.Analyzer, path string, docType catalog.DocumentType, invoiceAmount *float64, op string, jsonOut bool) (bool, error) {
	switch op {
	case "all":
		report, err := a.FullAudit(path, docType, invoiceAmount)
		if err != nil {
			return false, err
		}
		if jsonOut {
			return report.HasCriticalFindings(), printJSON(report)
		}
		printReport(path, report)
		return report.HasCriticalFindings(), nil
	case "sections":
		res, err := a.FindSections(path, docType)
		if err != nil {
			return false, err
		}
		return len(res.Summary.MissingCritical) > 0, printJSON(res)
	case "statements":
		res, err := a.ExtractStatements(path)
		if err != nil {
			return false, err
		}
		return false, printJSON(res)
	case "math":
		res, err := a.ValidateMath(path)
		if err != nil {
			return false, err
		}
		return len(res.Validation.Errors) > 0, printJSON(res)
	case "signatures":
		res, err := a.CheckSignatures(path, docType, invoiceAmount)
		if err != nil {
			return false, err
		}
		incomplete := res.SignatureRequirements.ComplianceStatus == "INCOMPLETE"
		return incomplete, printJSON(res)
	case "redflags":
		res, err := a.DetectRedFlags(path)
		if err != nil {
			return false, err
		}
		return res.Summary.Critical > 0, printJSON(res)
	case "comparative":
		res, err := a.ComparativePeriods(path)
		if err != nil {
			return false, err
		}
		return false, printJSON(res)
	default:
		return false, fmt.Errorf("unknown operation %q", op)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(path string, report *analyzer.AuditReport) {
	fmt.Printf("\n%s (%s)\n", path, report.DocType)

	s := report.Sections.Summary
	if len(s.MissingCritical) > 0 {
		critColor.Printf("  sections: %d/%d found, missing critical: %v\n",
			s.TotalFound, s.TotalRequired, s.MissingCritical)
	} else {
		okColor.Printf("  sections: %d/%d found\n", s.TotalFound, s.TotalRequired)
	}

	v := report.Math.Validation
	if len(v.Errors) > 0 {
		critColor.Printf("  math: %d errors across %d tables\n", len(v.Errors), v.TablesChecked)
		for _, d := range v.Errors {
			fmt.Printf("    p%d: %s\n", d.Page, d.Description)
		}
	} else {
		okColor.Printf("  math: %d tables clean\n", v.TablesChecked)
	}

	sig := report.Signatures.SignatureRequirements
	if sig.ComplianceStatus == "INCOMPLETE" {
		critColor.Printf("  signatures: INCOMPLETE, missing %v\n", sig.Missing)
	} else {
		okColor.Printf("  signatures: COMPLETE (%d found)\n", len(sig.Found))
	}

	if report.RedFlags.Summary.TotalFlags > 0 {
		fmt.Printf("  red flags: %d\n", report.RedFlags.Summary.TotalFlags)
		for _, f := range report.RedFlags.RedFlags {
			c := mediumColor
			switch f.Severity {
			case catalog.SeverityCritical:
				c = critColor
			case catalog.SeverityHigh:
				c = highColor
			}
			c.Printf("    [%s] %q p%d (%s)\n", f.Severity, f.Phrase, f.Page, f.Context)
		}
	} else {
		okColor.Println("  red flags: none")
	}

	fmt.Printf("  statements: %d extracted, comparative rows: %d\n",
		len(report.Statements.Statements), len(report.Comparative.ComparativeData))
}
