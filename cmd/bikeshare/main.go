package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/diillson/bikeshare-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/bikeshare-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/bikeshare-dashboard-go/internal/adapter/driving/cli"
	"github.com/diillson/bikeshare-dashboard-go/pkg/console"
	"github.com/diillson/bikeshare-dashboard-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.FormatVersion())

	// Inicializa os repositórios
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// A fonte de dados depende da configuração e é montada pelo próprio comando
	app.SetDependencies(configRepo, exportRepo, consoleImpl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Executa o aplicativo
	if err := app.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
