package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/smart-hire/internal/ai"
	"github.com/spigell/smart-hire/internal/analysis"
	"github.com/spigell/smart-hire/internal/assignments"
	"github.com/spigell/smart-hire/internal/filtering"
	"github.com/spigell/smart-hire/internal/render"
	"github.com/spigell/smart-hire/internal/session"
	"github.com/spigell/smart-hire/internal/smarthire"
)

const (
	PromptAssignPrimary     = "Assign primary role"
	PromptAssignAlternative = "Assign alternative role"
	PromptAnalyzeAnother    = "Analyze another resume file"
	PromptDumpToFile        = "Dump analysis to file"
	PromptExit              = "Exit"
	PromptBack              = "back"

	assignPrimary = "primary"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptAssignPrimary, PromptAssignAlternative, PromptAnalyzeAnother, PromptDumpToFile, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume and recommend job roles",
	Long: `Analyze a resume given as text (--text, --text-file or stdin) or as a file upload (--file).
When run in a terminal an interactive menu allows assigning the candidate to a role.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("text", "t", "", "resume text")
	analyzeCmd.Flags().String("text-file", "", "read resume text from a file")
	analyzeCmd.Flags().StringP("file", "f", "", "resume file to upload")
	analyzeCmd.Flags().StringP("assign", "a", "", "assign the candidate without prompting: 'primary' or a job role name")
	analyzeCmd.Flags().BoolP("yes", "y", false, "do not show the interactive menu")
	analyzeCmd.Flags().Bool("ai", false, "add an AI recruiter summary (overrides ai.enabled)")

	analyzeCmd.MarkFlagsMutuallyExclusive("text", "text-file", "file")

	viper.BindPFlag("ai.enabled", analyzeCmd.Flags().Lookup("ai"))
}

// analysisRun carries one analyze invocation through the menu loop.
type analysisRun struct {
	*deps
	session      *session.Session
	summarizer   ai.Summarizer
	model        render.DisplayModel
	// assignTarget is the --assign value, kept so filters do not drop that role.
	assignTarget string
}

func analyze(cmd *cobra.Command) {
	ctx := cmd.Context()
	d := prepare(cmd)

	run := &analysisRun{
		deps:         d,
		session:      session.New(),
		assignTarget: strings.TrimSpace(cmd.Flag("assign").Value.String()),
	}

	summarizer, err := d.newSummarizer(ctx)
	if err != nil {
		d.logger.Warn("skipping ai summary", zap.Error(err))
	}
	run.summarizer = summarizer

	if err := run.analyzeInput(ctx, cmd); err != nil {
		fatal(d.logger, "analysis failed", err)
	}

	if run.assignTarget != "" {
		if err := run.assign(ctx, run.assignTarget); err != nil {
			d.logger.Fatal("assigning the candidate", zap.Error(err))
		}
		return
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if yes || d.format != render.FormatText || !isatty.IsTerminal(os.Stdin.Fd()) {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			d.logger.Fatal("exiting", zap.Error(err))
		}

		if err := run.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			d.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (r *analysisRun) analyzeInput(ctx context.Context, cmd *cobra.Command) error {
	if path := cmd.Flag("file").Value.String(); path != "" {
		return r.analyzeFile(ctx, path)
	}

	text, err := resumeText(cmd, os.Stdin)
	if err != nil {
		return err
	}

	result, err := r.client.AnalyzeText(ctx, text)
	if err != nil {
		return err
	}

	return r.show(ctx, result, cmd.Flag("text-file").Value.String(), text)
}

func (r *analysisRun) analyzeFile(ctx context.Context, path string) error {
	r.logger.Info("analyzing resume file", zap.String("file", path))

	result, err := r.client.AnalyzeFile(ctx, path)
	if err != nil {
		return err
	}

	return r.show(ctx, result, path, path)
}

// resumeText picks the text from --text, --text-file or a piped stdin, in that order.
func resumeText(cmd *cobra.Command, stdin *os.File) (string, error) {
	if text := cmd.Flag("text").Value.String(); text != "" {
		return text, nil
	}

	if path := cmd.Flag("text-file").Value.String(); path != "" {
		return readFile(path)
	}

	if stdin != nil && !isatty.IsTerminal(stdin.Fd()) {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	return "", errors.New("provide resume text with --text, --text-file or stdin, or a file with --file")
}

// filters builds the configured steps. A role named by --assign must survive them,
// so the limit step is off in that case.
func (r *analysisRun) filters() []filtering.Filter {
	steps := filtering.New(r.config.Filters)
	if r.assignTarget != "" && !strings.EqualFold(r.assignTarget, assignPrimary) {
		filtering.DisableByName(steps, "limit", "role requested for assignment")
	}

	r.logger.Debug("filter status", zap.Any("filters", filtering.Describe(steps)))

	return steps
}

// show filters, records and prints the analysis of file. Session state changes only
// here, after the backend answered.
func (r *analysisRun) show(ctx context.Context, result *smarthire.Result, file, input string) error {
	roles, err := filtering.Run(ctx, r.logger, r.filters(), result.TopRoles)
	if err != nil {
		return fmt.Errorf("filtering roles: %w", err)
	}

	filtered := *result
	filtered.TopRoles = roles

	r.session.Record(&filtered, file, input)

	r.model = render.Build(render.Input{
		Result:        &filtered,
		CandidateName: r.session.CandidateName(),
		AnalyzedAt:    time.Now(),
	})

	if r.summarizer != nil && !r.model.Empty {
		summary, err := r.summarizer.Summarize(ctx, r.model)
		if err != nil {
			r.logger.Warn("ai summary failed", zap.Error(err))
		} else {
			r.model.Summary = summary
		}
	}

	if r.model.Empty {
		r.logger.Info("no matching roles found", zap.String("candidate", r.model.CandidateName))
	}

	r.logger.Info("analysis completed",
		zap.String("candidate", r.model.CandidateName),
		zap.Int("roles", len(roles)),
		zap.Int("session_analyses", r.session.TotalCandidates()),
	)

	r.write(r.model, render.Render(r.model))
	return nil
}

func (r *analysisRun) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptAssignPrimary:
		return r.assign(ctx, assignPrimary)
	case PromptAssignAlternative:
		return r.assignAlternative(ctx)
	case PromptAnalyzeAnother:
		return r.analyzeAnother(ctx)
	case PromptDumpToFile:
		filename, err := dumpToTmpFile(r.model)
		if err != nil {
			return fmt.Errorf("dump analysis to file: %w", err)
		}
		r.logger.Info("dumping analysis to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		r.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (r *analysisRun) assignAlternative(ctx context.Context) error {
	alternatives := r.session.Current.Alternatives()
	if len(alternatives) == 0 {
		r.logger.Info("there are no alternative roles")
		return nil
	}

	items := make([]string, 0, len(alternatives)+1)
	for _, role := range alternatives {
		items = append(items, role.JobRole)
	}

	rolePrompt := promptui.Select{
		Label: "Choose a role and press ENTER",
		Items: append(items, PromptBack),
	}

	_, selected, err := rolePrompt.Run()
	if err != nil {
		return err
	}

	if selected == PromptBack {
		return nil
	}

	return r.assign(ctx, selected)
}

func (r *analysisRun) analyzeAnother(ctx context.Context) error {
	pathPrompt := promptui.Prompt{
		Label: "Resume file",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("file path is required")
			}
			return nil
		},
	}

	path, err := pathPrompt.Run()
	if err != nil {
		return err
	}

	if err := r.analyzeFile(ctx, strings.TrimSpace(path)); err != nil {
		r.logger.Error("analysis failed", zap.String("reason", describeError(err)), zap.Error(err))
	}
	return nil
}

// assign records the candidate for the primary role or the role with the given name.
func (r *analysisRun) assign(ctx context.Context, target string) error {
	role, err := findRole(r.session.Current, target)
	if err != nil {
		return err
	}

	history, closeStore, err := r.openAssignments()
	if err != nil {
		return fmt.Errorf("open assignments: %w", err)
	}
	defer closeStore()

	assignment := assignments.New(r.session.CandidateName(), *role, time.Now())
	if err := history.Record(ctx, assignment); err != nil {
		return fmt.Errorf("record assignment: %w", err)
	}

	r.logger.Info("candidate assigned",
		zap.String("candidate", assignment.CandidateName),
		zap.String("role", assignment.Role),
		zap.Float64("confidence", assignment.Confidence),
	)
	return nil
}

func findRole(result *smarthire.Result, target string) (*analysis.RoleMatch, error) {
	if result.Empty() {
		return nil, errors.New("there is no role to assign")
	}

	if strings.EqualFold(target, assignPrimary) {
		return result.Top(), nil
	}

	for i := range result.TopRoles {
		if strings.EqualFold(result.TopRoles[i].JobRole, strings.TrimSpace(target)) {
			return &result.TopRoles[i], nil
		}
	}

	return nil, fmt.Errorf("role %q is not among the recommendations", target)
}

func dumpToTmpFile(m render.DisplayModel) (string, error) {
	f, err := os.CreateTemp("", app+"-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := render.Write(f, render.FormatJSON, m, nil); err != nil {
		return "", err
	}

	return f.Name(), nil
}
