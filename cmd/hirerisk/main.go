package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dbartell/employarmor-sub003/internal/compare"
	"github.com/dbartell/employarmor-sub003/internal/engine"
	"github.com/dbartell/employarmor-sub003/internal/intake"
	"github.com/dbartell/employarmor-sub003/internal/render"
	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// Exit codes.
const (
	exitFailOn = 2 // --fail-on threshold met
	exitInput  = 3 // bad flags, profile or rule set
)

// assessFlags holds the parsed flags for the assess command.
type assessFlags struct {
	format    string
	out       string
	rulesPath string
	failOn    string
	verbose   bool
}

// whatifFlags holds the parsed flags for the whatif command.
type whatifFlags struct {
	format           string
	out              string
	rulesPath        string
	patchOut         string
	diff             bool
	verbose          bool
	addJurisdictions []string
	addTools         []string
	addUsages        []string
}

func main() {
	root := &cobra.Command{
		Use:   "hirerisk",
		Short: "Assess AI-hiring compliance risk",
		Long: "hirerisk classifies the AI tools an employer uses in hiring, scores legal risk " +
			"per law category and jurisdiction, and builds a phased compliance checklist.",
		SilenceUsage: true,
	}

	root.AddCommand(newAssessCmd(), newWhatifCmd(), newRulesCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func newAssessCmd() *cobra.Command {
	var flags assessFlags
	cmd := &cobra.Command{
		Use:   "assess <profile>",
		Short: "Assess an organization profile and produce a compliance report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(args[0], flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.format, "format", "json", "Output format: "+strings.Join(render.Formats, ", "))
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	f.StringVar(&flags.rulesPath, "rules", "", "Rule set file (default: $"+rules.EnvRules+" or the built-in rules)")
	f.StringVar(&flags.failOn, "fail-on", "", "Exit 2 if the highest category tier is >= this level (high or critical)")
	f.BoolVar(&flags.verbose, "verbose", false, "Log processing steps to stderr")
	return cmd
}

func newWhatifCmd() *cobra.Command {
	var flags whatifFlags
	cmd := &cobra.Command{
		Use:   "whatif <profile>",
		Short: "Show how the assessment changes if the profile is extended",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhatif(args[0], flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.format, "format", "text", "Output format: text or json")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	f.StringVar(&flags.rulesPath, "rules", "", "Rule set file (default: $"+rules.EnvRules+" or the built-in rules)")
	f.StringVar(&flags.patchOut, "patch-out", "", "Write a diff-match-patch patch between the two markdown reports to this file")
	f.BoolVar(&flags.diff, "diff", false, "Append a line diff of the two markdown reports (text format only)")
	f.BoolVar(&flags.verbose, "verbose", false, "Log processing steps to stderr")
	f.StringArrayVar(&flags.addJurisdictions, "add-jurisdiction", nil, "Jurisdiction code to add (may be repeated)")
	f.StringArrayVar(&flags.addTools, "add-tool", nil, "Tool id to add (may be repeated)")
	f.StringArrayVar(&flags.addUsages, "add-usage", nil, "Usage tag to add (may be repeated)")
	return cmd
}

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate rule sets",
	}

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a rule set file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesValidate(cmd.OutOrStdout(), args[0])
		},
	}

	var rulesPath string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the jurisdictions of a rule set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesList(cmd.OutOrStdout(), rulesPath)
		},
	}
	listCmd.Flags().StringVar(&rulesPath, "rules", "", "Rule set file (default: $"+rules.EnvRules+" or the built-in rules)")

	defaultCmd := &cobra.Command{
		Use:   "default",
		Short: "Print the built-in rule set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(rules.DefaultYAML())
			return err
		},
	}

	cmd.AddCommand(validateCmd, listCmd, defaultCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (engine %s)\n", engine.ToolName, version, rules.EngineVersion)
		},
	}
}

func runAssess(profilePath string, flags assessFlags) error {
	// --- Step 1: Validate flags ---
	if err := validateAssessFlags(flags); err != nil {
		return codeError(exitInput, "invalid flags: %s", err)
	}
	log := newLogger(flags.verbose)

	// --- Step 2: Load rule set ---
	rs, err := loadRules(log, flags.rulesPath)
	if err != nil {
		return err
	}

	// --- Step 3: Load profile ---
	log.Debug("loading profile", "path", profilePath)
	doc, err := intake.Load(profilePath)
	if err != nil {
		return codeError(exitInput, "loading profile: %s", err)
	}

	// --- Step 4: Assess ---
	report := engine.New(rs, engine.WithLogger(log)).Assess(doc.Profile)
	for _, w := range report.Warnings {
		log.Warn(w.Message, "code", w.Code, "subject", w.Subject)
	}

	// --- Step 5: Render output ---
	log.Debug("rendering output", "format", flags.format)
	renderer, err := render.NewRenderer(flags.format)
	if err != nil {
		return codeError(exitInput, "invalid format: %s", err)
	}
	outputBytes, err := renderer.Render(report)
	if err != nil {
		return codeError(exitInput, "rendering output: %s", err)
	}

	// --- Step 6: Write output ---
	if err := writeOutput(flags.out, outputBytes); err != nil {
		return err
	}

	// --- Step 7: Evaluate --fail-on ---
	if flags.failOn != "" {
		threshold, _ := schema.ParseTier(flags.failOn)
		if report.Summary.HighestTier.AtLeast(threshold) {
			return codeError(exitFailOn, "highest tier %s meets or exceeds --fail-on threshold %s", report.Summary.HighestTier, threshold)
		}
	}
	return nil
}

func runWhatif(profilePath string, flags whatifFlags) error {
	switch flags.format {
	case "text", "json":
	default:
		return codeError(exitInput, "invalid flags: --format must be text or json, got %q", flags.format)
	}
	if len(flags.addJurisdictions)+len(flags.addTools)+len(flags.addUsages) == 0 {
		return codeError(exitInput, "invalid flags: nothing to add; use --add-jurisdiction, --add-tool or --add-usage")
	}
	log := newLogger(flags.verbose)

	rs, err := loadRules(log, flags.rulesPath)
	if err != nil {
		return err
	}
	log.Debug("loading profile", "path", profilePath)
	doc, err := intake.Load(profilePath)
	if err != nil {
		return codeError(exitInput, "loading profile: %s", err)
	}

	e := engine.New(rs, engine.WithLogger(log))
	extended := intake.Extend(doc.Profile, flags.addJurisdictions, flags.addTools, flags.addUsages)
	before := e.Assess(doc.Profile)
	after := e.Assess(extended)
	delta := compare.Reports(before, after)
	log.Debug("compared reports", "changes", len(delta.Changes), "score_change", delta.ScoreChange())

	var beforeMD, afterMD string
	if flags.diff || flags.patchOut != "" {
		md, _ := render.NewRenderer("md")
		b, err := md.Render(before)
		if err != nil {
			return codeError(exitInput, "rendering output: %s", err)
		}
		a, err := md.Render(after)
		if err != nil {
			return codeError(exitInput, "rendering output: %s", err)
		}
		beforeMD, afterMD = string(b), string(a)
	}

	if flags.patchOut != "" {
		log.Debug("writing patch", "path", flags.patchOut)
		if err := os.WriteFile(flags.patchOut, []byte(compare.Patch(beforeMD, afterMD)), 0o644); err != nil {
			// The patch is advisory; the comparison is still printed.
			log.Warn("patch write failed", "err", err)
		}
	}

	var out []byte
	if flags.format == "json" {
		out, err = json.MarshalIndent(delta, "", "  ")
		if err != nil {
			return codeError(exitInput, "rendering output: %s", err)
		}
		out = append(out, '\n')
	} else {
		out = []byte(formatDelta(delta, flags.diff, beforeMD, afterMD))
	}
	return writeOutput(flags.out, out)
}

// formatDelta renders a comparison as plain text.
func formatDelta(d compare.Delta, withDiff bool, beforeMD, afterMD string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Overall score: %d -> %d (%+d)\n", d.ScoreBefore, d.ScoreAfter, d.ScoreChange())
	if len(d.Changes) == 0 {
		b.WriteString("No changes.\n")
	}
	for _, c := range d.Changes {
		b.WriteString(c.String())
		b.WriteString("\n")
	}
	if withDiff {
		b.WriteString("\n")
		b.WriteString(compare.LineDiff(beforeMD, afterMD))
	}
	return b.String()
}

func runRulesValidate(w io.Writer, path string) error {
	rs, err := rules.Load(path)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}
	fmt.Fprintf(w, "%s %s: OK (%d jurisdictions, %d tools, %d actions)\n",
		rs.Name(), rs.Version(), len(rs.Jurisdictions()), len(rs.Tools()), len(rs.Actions()))
	fmt.Fprintf(w, "hash: %s\n", rs.Hash())

	builtin, err := rules.Default()
	if err != nil {
		return codeError(exitInput, "%s", err)
	}
	if rules.NewerThan(rs.Version(), builtin.Version()) {
		fmt.Fprintf(w, "newer than built-in %s %s\n", builtin.Name(), builtin.Version())
	}
	return nil
}

func runRulesList(w io.Writer, rulesPath string) error {
	rs, err := rules.Resolve(rulesPath)
	if err != nil {
		return codeError(exitInput, "loading rules: %s", err)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tLAW\tEFFECTIVE\tSTATUS")
	for _, code := range rs.Codes() {
		j, _ := rs.Jurisdiction(code)
		status := "in force"
		if !j.IsActive {
			status = "upcoming"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", j.Code, j.Name, j.LawName, j.EffectiveDate, status)
	}
	return tw.Flush()
}

// validateAssessFlags returns an error if any flag value is invalid.
func validateAssessFlags(flags assessFlags) error {
	if _, err := render.NewRenderer(flags.format); err != nil {
		return fmt.Errorf("--format must be one of %s, got %q", strings.Join(render.Formats, ", "), flags.format)
	}

	if flags.failOn != "" {
		// The federal baseline keeps every report at medium or above, so
		// only high and critical are meaningful thresholds.
		t, err := schema.ParseTier(flags.failOn)
		if err != nil || !t.AtLeast(schema.TierHigh) {
			return fmt.Errorf("--fail-on must be high or critical, got %q", flags.failOn)
		}
	}
	return nil
}

func loadRules(log *slog.Logger, path string) (*rules.Ruleset, error) {
	rs, err := rules.Resolve(path)
	if err != nil {
		return nil, codeError(exitInput, "loading rules: %s", err)
	}
	log.Debug("loaded rules", "name", rs.Name(), "version", rs.Version(), "hash", rs.Hash())
	return rs, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return codeError(exitInput, "writing output file: %s", err)
		}
		return nil
	}
	if _, err := os.Stdout.Write(data); err != nil {
		return codeError(exitInput, "writing output: %s", err)
	}
	// Ensure output ends with a newline for terminal friendliness.
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

// newLogger returns a text logger on stderr. Debug records are only
// emitted with --verbose.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
