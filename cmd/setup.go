package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"flashcut/domain/frame"
	"flashcut/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command walks through the detection strategy, sampling rate,
segment padding, and optional Google Drive settings.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to flashcut setup!")
	fmt.Println()

	cfg := config.Default()

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}

	if err := promptDetection(prompter, cfg); err != nil {
		return err
	}

	if err := promptOutput(prompter, cfg); err != nil {
		return err
	}

	if err := promptGoogle(prompter, cfg); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	projects, err := prompter.Input("Where should project files go?", cfg.Paths.ProjectDirectory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if projects != "" {
		cfg.Paths.ProjectDirectory = projects
	}

	reels, err := prompter.Input("Where should finished reels go?", cfg.Paths.OutputDirectory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if reels != "" {
		cfg.Paths.OutputDirectory = reels
	}

	return nil
}

func promptDetection(prompter Prompter, cfg *config.Config) error {
	strategy, err := prompter.Select("Detection strategy?", []string{
		frame.StrategyDominance,
		frame.StrategyBrightness,
		frame.StrategyRadial,
		frame.StrategyTemplate,
	}, cfg.Detection.Strategy)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Detection.Strategy = strategy

	if strategy == frame.StrategyDominance {
		channel, err := prompter.Select("Flash color channel?", []string{"red", "green", "blue"}, cfg.Detection.Channel)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		cfg.Detection.Channel = channel
	}

	if strategy == frame.StrategyTemplate {
		template, err := prompter.Input("Path to the kill-screen template image?", "")
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if template == "" {
			return fmt.Errorf("template path is required for the template strategy")
		}
		cfg.Detection.TemplatePath = template
	}

	threshold, err := promptFloat(prompter, "Confidence threshold (0-1)?", cfg.Detection.ConfidenceThreshold)
	if err != nil {
		return err
	}
	cfg.Detection.ConfidenceThreshold = threshold

	rate, err := promptFloat(prompter, "Frames per second to sample?", cfg.Video.FrameRate)
	if err != nil {
		return err
	}
	cfg.Video.FrameRate = rate

	return nil
}

func promptOutput(prompter Prompter, cfg *config.Config) error {
	lead, err := promptFloat(prompter, "Seconds of footage before each event?", cfg.Output.LeadSeconds)
	if err != nil {
		return err
	}
	cfg.Output.LeadSeconds = lead

	trail, err := promptFloat(prompter, "Seconds of footage after each event?", cfg.Output.TrailSeconds)
	if err != nil {
		return err
	}
	cfg.Output.TrailSeconds = trail

	reencode, err := prompter.Confirm("Re-encode segments for frame-accurate cuts (slower)?", cfg.Output.ReEncode)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Output.ReEncode = reencode

	return nil
}

func promptGoogle(prompter Prompter, cfg *config.Config) error {
	wantUpload, err := prompter.Confirm("Configure Google Drive uploads?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if !wantUpload {
		return nil
	}

	credentials, err := prompter.Input("Path to Google credentials file?", "credentials.json")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if credentials == "" {
		credentials = "credentials.json"
	}
	cfg.Google.CredentialsFile = credentials

	folder, err := prompter.Input("Google Drive folder ID (empty for root)?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Google.FolderID = folder

	return nil
}

func promptFloat(prompter Prompter, message string, defaultValue float64) (float64, error) {
	raw, err := prompter.Input(message, strconv.FormatFloat(defaultValue, 'g', -1, 64))
	if err != nil {
		return 0, fmt.Errorf("prompt cancelled")
	}
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return value, nil
}
