package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"cvmatch/internal/advice"
	"cvmatch/internal/advice/gemini"
	"cvmatch/internal/logger"
	"cvmatch/internal/report"
	"cvmatch/internal/resumeapi"
	"cvmatch/internal/screening"
	"cvmatch/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptJDText = "Job description text"
	PromptQuit   = "Quit"
)

var compareCmd = &cobra.Command{
	Use:   "compare [resume files...]",
	Short: "Compare resumes against a job description",
	Run: func(cmd *cobra.Command, args []string) {
		compare(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringSliceP("resume", "r", nil, "resume file to compare (repeatable, globs allowed)")
	compareCmd.Flags().String("jd-text", "", "job description as raw text")
	compareCmd.Flags().String("jd-file", "", "job description file (.pdf, .docx or .txt)")
	compareCmd.Flags().StringP("type", "t", resumeapi.CompareOverall, "comparison type: word, skill or overall")
	compareCmd.Flags().Bool("return-text", true, "ask the backend for the normalized texts")
	compareCmd.Flags().Int("max-pdf-pages", resumeapi.DefaultMaxPDFPages, "page cap for backend pdf text extraction")
	compareCmd.Flags().Int("top-n", resumeapi.DefaultTopNKeywords, "limit for the returned keyword lists. A negative value means no limit")
	compareCmd.Flags().Duration("timeout", time.Minute, "request timeout for the comparison call")
	compareCmd.Flags().Bool("browse", false, "browse the normalized texts interactively after the run")
	compareCmd.Flags().Bool("dump", false, "dump the raw response to a temp file")
	compareCmd.Flags().Bool("advise", false, "generate tailoring advice from the results via Gemini")

	viper.BindPFlag("compare.type", compareCmd.Flags().Lookup("type"))
	viper.BindPFlag("compare.max-pdf-pages", compareCmd.Flags().Lookup("max-pdf-pages"))
	viper.BindPFlag("compare.top-n-keywords", compareCmd.Flags().Lookup("top-n"))
	viper.BindPFlag("timeout", compareCmd.Flags().Lookup("timeout"))
}

// compare is the main workflow: collect and screen resume files, build and
// validate the request, submit it and render the response.
func compare(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	token, err := resolveToken(config)
	if err != nil {
		logger.Fatal(
			"loading backend token",
			zap.Error(err),
			zap.String("hint", "set CVMATCH_TOKEN_FILE environment variable or the 'token-file' key in the configuration file"),
		)
	}

	client := newClient(ctx, logger, config, token)
	client.SetTimeout(viper.GetDuration("timeout"))

	request, err := buildRequest(cmd)
	if err != nil {
		logger.Fatal("building comparison request", zap.Error(err))
	}

	files, err := collectResumes(cmd, args, logger)
	if err != nil {
		logger.Fatal("collecting resume files", zap.Error(err))
	}
	request.Resumes = files

	if err := request.Validate(); err != nil {
		logger.Fatal("validation failed", zap.Error(err))
	}

	logger.Info("submitting comparison",
		zap.Int("resumes", len(request.Resumes)),
		zap.String("comparison_type", request.Type),
	)

	response, err := client.Compare(request)
	if err != nil {
		logger.Fatal("comparison failed", zap.Error(err))
	}

	renderResponse(response)

	if cmd.Flag("dump").Value.String() == "true" {
		filename, err := report.DumpToTmpFile(response)
		if err != nil {
			logger.Fatal("dumping response to file", zap.Error(err))
		}
		logger.Info("dumped response to file", zap.String("filename", filename))
	}

	if cmd.Flag("advise").Value.String() == "true" {
		if err := adviseOnResults(ctx, config, logger, response); err != nil {
			logger.Warn("skipping advice", zap.Error(err))
		}
	}

	if cmd.Flag("browse").Value.String() == "true" {
		if !request.ReturnText {
			logger.Warn("nothing to browse", zap.String("reason", "return-text is disabled"))
			return
		}
		if err := browseTexts(response); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func newClient(ctx context.Context, logger *zap.Logger, config *Config, token string) *resumeapi.Client {
	client := resumeapi.New(ctx, logger, token)

	baseURL := viper.GetString("base-url")
	if config.BaseURL != "" {
		baseURL = config.BaseURL
	}
	if baseURL != "" {
		client.APIURL = baseURL
	}

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	return client
}

// buildRequest turns flags and config into a CompareRequest. The job
// description is a tagged variant: text and file sources are mutually
// exclusive.
func buildRequest(cmd *cobra.Command) (*resumeapi.CompareRequest, error) {
	request := resumeapi.NewCompareRequest()

	jdText := cmd.Flag("jd-text").Value.String()
	jdFilePath := cmd.Flag("jd-file").Value.String()

	switch {
	case jdText != "" && jdFilePath != "":
		return nil, fmt.Errorf("jd-text and jd-file are mutually exclusive")
	case jdFilePath != "":
		jdFile, err := resumeapi.LoadFile(jdFilePath)
		if err != nil {
			return nil, err
		}
		if !screening.Allowed(jdFile.Name) {
			return nil, fmt.Errorf("unsupported job description file format: %s", jdFile.Name)
		}
		request.JD = resumeapi.JDFromFile(jdFile)
	case jdText != "":
		request.JD = resumeapi.JDFromText(jdText)
	}

	comparisonType := viper.GetString("compare.type")
	switch comparisonType {
	case resumeapi.CompareWord, resumeapi.CompareSkill, resumeapi.CompareOverall:
		request.Type = comparisonType
	default:
		return nil, fmt.Errorf("invalid comparison type: %s", comparisonType)
	}

	returnText, err := cmd.Flags().GetBool("return-text")
	if err != nil {
		return nil, err
	}
	request.ReturnText = returnText

	request.MaxPDFPages = viper.GetInt("compare.max-pdf-pages")

	topN := viper.GetInt("compare.top-n-keywords")
	if topN < 0 {
		request.TopNKeywords = nil
	} else {
		request.TopNKeywords = &topN
	}

	return request, nil
}

// collectResumes loads all resume paths given via flags and positional
// arguments, expanding globs, and runs the screening pipeline over them.
func collectResumes(cmd *cobra.Command, args []string, logger *zap.Logger) ([]*resumeapi.ResumeFile, error) {
	paths, err := cmd.Flags().GetStringSlice("resume")
	if err != nil {
		return nil, err
	}
	paths = append(paths, args...)

	var files []*resumeapi.ResumeFile
	for _, path := range paths {
		matches, _ := filepath.Glob(path)
		if len(matches) == 0 {
			matches = []string{path}
		}

		for _, match := range matches {
			file, err := resumeapi.LoadFile(match)
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}

	return screening.Run(files, screening.DefaultSteps(), logger)
}

func renderResponse(response *resumeapi.CompareResponse) {
	fmt.Println()
	report.WriteSummary(os.Stdout, response.Stats)
	fmt.Println()
	report.WriteTable(os.Stdout, response.Results)
	fmt.Println()
}

// browseTexts is the interactive viewer for the normalized texts: each
// result and the job description open as a separate panel, closed until
// selected.
func browseTexts(response *resumeapi.CompareResponse) error {
	for {
		items := []string{PromptJDText}
		for _, m := range response.Results {
			items = append(items, m.FileName)
		}
		items = append(items, PromptQuit)

		prompt := promptui.Select{
			Label: "Open a text panel and press ENTER",
			Items: items,
		}

		idx, selected, err := prompt.Run()
		if err != nil {
			return err
		}

		switch selected {
		case PromptQuit:
			return nil
		case PromptJDText:
			fmt.Printf("\n%s\n\n", response.JDText)
		default:
			m := response.Results[idx-1]
			if m.Failed() {
				fmt.Printf("\n%s: %s\n\n", m.FileName, m.Error)
				continue
			}
			fmt.Printf("\n%s\n\n", m.ResumeText)
		}
	}
}

func adviseOnResults(ctx context.Context, config *Config, logger *zap.Logger, response *resumeapi.CompareResponse) error {
	advisor, err := newAdvisor(ctx, config.Advise, logger)
	if err != nil {
		return err
	}

	text, err := advisor.Advise(ctx, response.JDText, response.Results)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", text)
	return nil
}

func newAdvisor(ctx context.Context, cfg *AdviseConfig, logger *zap.Logger) (advice.Advisor, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required for advice (set advise.gemini in the configuration file)")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set advise.gemini.api-key-file)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, logger, cfg.Gemini.MaxLogLength), nil
}
