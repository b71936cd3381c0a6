package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/diillson/bikeshare-dashboard-go/internal/adapter/driven/source"
	"github.com/diillson/bikeshare-dashboard-go/internal/application/usecase"
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/repository"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
	prompter   Prompter
	version    string
}

// NewCLIApp cria uma nova aplicação CLI. versionStr é a versão já formatada, ex.: version.FormatVersion().
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version:  versionStr,
		prompter: NewPtermPrompter(),
	}

	rootCmd := &cobra.Command{
		Use:     "bikeshare",
		Short:   "Explore US bikeshare trip data",
		Long:    "Computes descriptive statistics over bikeshare trips of Chicago, New York City and Washington, filtered by month and day of week.",
		Version: versionStr,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "Bikeshare Dashboard version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().String("city", "", "City to analyze: chicago, new york city, washington (prompted when omitted)")
	rootCmd.PersistentFlags().String("month", "", "Month to filter by: january..december, 1..12 or all (prompted when omitted)")
	rootCmd.PersistentFlags().String("day", "", "Day of week to filter by: monday..sunday or all (prompted when omitted)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding the city data files (default: current directory)")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf, xlsx")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().Bool("hour-chart", false, "Display the distribution of trips by start hour as bars")
	rootCmd.PersistentFlags().Bool("raw", false, "Offer to page through the filtered raw trips, five at a time")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()
	configFile, _ := flags.GetString("config-file")
	city, _ := flags.GetString("city")
	month, _ := flags.GetString("month")
	day, _ := flags.GetString("day")
	dataDir, _ := flags.GetString("data-dir")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	hourChart, _ := flags.GetBool("hour-chart")
	raw, _ := flags.GetBool("raw")

	// Set default directory to current working directory if not specified
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		// Convert to absolute path
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		City:       city,
		Month:      month,
		Day:        day,
		DataDir:    dataDir,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		HourChart:  hourChart,
		Raw:        raw,
	}

	return args, nil
}

// loadConfig combina arquivo de configuração, variáveis de ambiente e flags, nessa ordem de precedência crescente.
func (app *CLIApp) loadConfig(args *types.CLIArgs) (*types.Config, error) {
	cfg := &types.Config{}
	if args.ConfigFile != "" {
		loaded, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		app.console.LogInfo("Loaded configuration from %s", args.ConfigFile)
	}

	if err := app.configRepo.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if args.DataDir != "" {
		cfg.DataDir = args.DataDir
	}
	if !app.rootCmd.Flags().Changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}

	return cfg, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner(app.version)

	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	cfg, err := app.loadConfig(cliArgs)
	if err != nil {
		return err
	}

	cities, recordSource := source.NewFromConfig(cfg)
	bikeshare := usecase.NewBikeshareUseCase(recordSource, cities, app.exportRepo, app.console)

	return newSession(bikeshare, app.console, app.prompter, cliArgs).run(cmd.Context())
}

// SetDependencies injeta os repositórios e o console usados pelo comando.
func (app *CLIApp) SetDependencies(configRepo repository.ConfigRepository, exportRepo repository.ExportRepository, console types.ConsoleInterface) {
	app.configRepo = configRepo
	app.exportRepo = exportRepo
	app.console = console
}

// SetPrompter troca o prompter interativo.
func (app *CLIApp) SetPrompter(p Prompter) {
	app.prompter = p
}

// ExecuteContext runs the CLI application with ctx.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}
