package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/davidlpuk/cv-tailor/internal/export"
	"github.com/davidlpuk/cv-tailor/internal/keywords"
	"github.com/davidlpuk/cv-tailor/internal/letter"
	"github.com/davidlpuk/cv-tailor/internal/logger"
	"github.com/davidlpuk/cv-tailor/internal/nlp"
	"github.com/davidlpuk/cv-tailor/internal/pipeline"
	"github.com/davidlpuk/cv-tailor/internal/samples"
	"github.com/davidlpuk/cv-tailor/internal/secrets"
	"github.com/davidlpuk/cv-tailor/internal/similarity"
	"github.com/davidlpuk/cv-tailor/internal/similarity/gemini"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptResume      = "Export tailored resume"
	PromptCoverLetter = "Export cover letter"
	PromptScoreReport = "Show score report"
	PromptKeywords    = "Show extracted keywords"
	PromptQuit        = "Quit"

	maxMissingShown = 10
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptResume, PromptCoverLetter, PromptScoreReport, PromptKeywords, PromptQuit},
}

var formatPrompt = promptui.Select{
	Label: "Format",
	Items: []string{string(export.FormatMarkdown), string(export.FormatText), string(export.FormatPDF)},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Tailor a CV to a job description and draft the cover letter",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("cv", "", "path to the markdown CV")
	runCmd.Flags().String("job", "", "path to the job description text")
	runCmd.Flags().Bool("sample", false, "run with the built-in sample CV and job description")
	runCmd.Flags().StringP("out", "o", "", "output directory for exported documents")
	runCmd.Flags().StringSlice("format", nil, "export formats to write without prompting (md, txt, pdf)")

	viper.BindPFlag("cv-file", runCmd.Flags().Lookup("cv"))
	viper.BindPFlag("job-file", runCmd.Flags().Lookup("job"))
	viper.BindPFlag("output.dir", runCmd.Flags().Lookup("out"))
	viper.BindPFlag("output.formats", runCmd.Flags().Lookup("format"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the cv-tailor", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	cvText, jobText, err := loadInputs(cmd)
	if err != nil {
		logger.Fatal("loading inputs", zap.Error(err))
	}

	p, err := buildPipeline(ctx, config, logger)
	if err != nil {
		logger.Fatal("assembling the pipeline", zap.Error(err))
	}

	result, err := p.Run(ctx, pipeline.Request{
		CVText:  cvText,
		JobText: jobText,
		User:    userInfo(config),
	})
	if err != nil {
		logger.Fatal("tailoring failed", zap.Error(err))
	}

	logger.Info("tailoring complete",
		zap.Float64("score", result.Score.Total),
		zap.String("job_title", result.Company.JobTitle),
	)

	printScoreReport(result)

	outDir := viper.GetString("output.dir")
	formats, err := export.ParseFormats(viper.GetStringSlice("output.formats"))
	if err != nil {
		logger.Fatal("parsing export formats", zap.Error(err))
	}

	// Non-interactive mode: formats given up front, write everything and exit.
	if len(formats) > 0 {
		for _, format := range formats {
			if err := exportDocument(outDir, "tailored_resume", result.Resume, format, logger); err != nil {
				logger.Fatal("exporting resume", zap.Error(err))
			}
			if err := exportDocument(outDir, "cover_letter", result.CoverLetter, format, logger); err != nil {
				logger.Fatal("exporting cover letter", zap.Error(err))
			}
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, outDir, result, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action, outDir string, result *pipeline.Result, logger *zap.Logger) error {
	switch action {
	case PromptResume:
		return exportPrompted(outDir, "tailored_resume", result.Resume, logger)
	case PromptCoverLetter:
		return exportPrompted(outDir, "cover_letter", result.CoverLetter, logger)
	case PromptScoreReport:
		printScoreReport(result)
		return nil
	case PromptKeywords:
		pretty, _ := json.MarshalIndent(result.JobKeywords, "", "  ")
		fmt.Printf("Job description keywords:\n%s\n", pretty)
		return nil
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func exportPrompted(outDir, name, content string, logger *zap.Logger) error {
	_, chosen, err := formatPrompt.Run()
	if err != nil {
		return err
	}

	formats, err := export.ParseFormats([]string{chosen})
	if err != nil {
		return err
	}

	return exportDocument(outDir, name, content, formats[0], logger)
}

func exportDocument(outDir, name, content string, format export.Format, logger *zap.Logger) error {
	data, err := export.Render(content, format)
	if err != nil {
		return fmt.Errorf("rendering %s as %s: %w", name, format, err)
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	path := filepath.Join(outDir, name+export.Extension(format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Info("document exported",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("bytes", len(data)),
	)

	return nil
}

func loadInputs(cmd *cobra.Command) (string, string, error) {
	if cmd.Flag("sample").Value.String() == "true" {
		return samples.CV, samples.Job, nil
	}

	cvFile := strings.TrimSpace(viper.GetString("cv-file"))
	jobFile := strings.TrimSpace(viper.GetString("job-file"))

	if cvFile == "" {
		return "", "", errors.New("a CV file is required: pass --cv, set cv-file in the config, or use --sample")
	}
	if jobFile == "" {
		return "", "", errors.New("a job description file is required: pass --job, set job-file in the config, or use --sample")
	}

	cvData, err := os.ReadFile(cvFile)
	if err != nil {
		return "", "", fmt.Errorf("reading CV: %w", err)
	}

	jobData, err := os.ReadFile(jobFile)
	if err != nil {
		return "", "", fmt.Errorf("reading job description: %w", err)
	}

	return string(cvData), string(jobData), nil
}

// buildPipeline assembles the shared components: the part-of-speech engine,
// the keyword rules, and the configured similarity provider.
func buildPipeline(ctx context.Context, config *Config, log *zap.Logger) (*pipeline.Pipeline, error) {
	engine, err := nlp.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("loading language resources: %w", err)
	}

	rules, err := loadRules(config)
	if err != nil {
		return nil, err
	}

	sim, err := buildSimilarityProvider(ctx, config, log)
	if err != nil {
		return nil, err
	}

	log.Info("similarity provider selected", logger.ProviderFields(sim.Name(), similarityModel(config))...)

	extractor := keywords.NewExtractor(engine, rules, log)

	return pipeline.New(extractor, sim, log), nil
}

func loadRules(config *Config) (*keywords.Rules, error) {
	path := strings.TrimSpace(config.RulesFile)
	if path == "" {
		return keywords.DefaultRules()
	}
	return keywords.LoadRules(path)
}

func buildSimilarityProvider(ctx context.Context, config *Config, log *zap.Logger) (similarity.Provider, error) {
	provider := "lexical"
	if config.Similarity != nil && config.Similarity.Provider != "" {
		provider = config.Similarity.Provider
	}

	switch provider {
	case "lexical":
		return similarity.NewLexical(), nil
	case "gemini":
		gcfg := &GeminiConfig{}
		if config.Similarity != nil && config.Similarity.Gemini != nil {
			gcfg = config.Similarity.Gemini
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: gcfg.APIKey,
			File:  resolveAPIKeyFile(gcfg),
		})
		if err != nil {
			return nil, fmt.Errorf(
				"loading gemini api key (set GEMINI_API_KEY_FILE or similarity.gemini.api-key-file): %w", err)
		}

		return gemini.NewEmbedder(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, log)
	default:
		return nil, fmt.Errorf("unknown similarity provider: %s", provider)
	}
}

func resolveAPIKeyFile(gcfg *GeminiConfig) string {
	if file := strings.TrimSpace(gcfg.APIKeyFile); file != "" {
		return file
	}
	return strings.TrimSpace(viper.GetString("similarity.gemini.api-key-file"))
}

func similarityModel(config *Config) string {
	if config.Similarity != nil && config.Similarity.Gemini != nil {
		return config.Similarity.Gemini.Model
	}
	return ""
}

func userInfo(config *Config) letter.UserInfo {
	if config.User == nil {
		return letter.UserInfo{}
	}
	return letter.UserInfo{Name: config.User.Name, Email: config.User.Email}
}

func printScoreReport(result *pipeline.Result) {
	score := result.Score

	fmt.Printf("\nMatch score: %.1f / 100\n", score.Total)
	fmt.Printf("  keywords:    %.1f\n", score.Keywords)
	fmt.Printf("  soft skills: %.1f\n", score.SoftSkills)
	fmt.Printf("  structure:   %.1f\n", score.Structure)
	fmt.Printf("  relevance:   %.1f\n", score.Relevance)

	if len(score.MatchedKeywords) > 0 {
		fmt.Printf("\nMatched keywords: %s\n", strings.Join(score.MatchedKeywords, ", "))
	}
	if missing := score.MissingKeywords; len(missing) > 0 {
		extra := ""
		if len(missing) > maxMissingShown {
			extra = fmt.Sprintf(" (+%d more)", len(missing)-maxMissingShown)
			missing = missing[:maxMissingShown]
		}
		fmt.Printf("Missing keywords: %s%s\n", strings.Join(missing, ", "), extra)
	}
	fmt.Println()
}
