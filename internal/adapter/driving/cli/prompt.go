package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/diillson/bikeshare-dashboard-go/internal/application/usecase"
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
)

// Prompter lê respostas do usuário.
type Prompter interface {
	Ask(question string) (string, error)
}

// PtermPrompter lê respostas com o input interativo do pterm.
type PtermPrompter struct{}

// NewPtermPrompter cria um prompter interativo.
func NewPtermPrompter() *PtermPrompter {
	return &PtermPrompter{}
}

// Ask mostra a pergunta e devolve a resposta digitada.
func (p *PtermPrompter) Ask(question string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(question)
}

// session conduz o ciclo perguntar, calcular, exibir e reiniciar.
type session struct {
	uc       *usecase.BikeshareUseCase
	console  types.ConsoleInterface
	prompter Prompter
	args     *types.CLIArgs
}

func newSession(uc *usecase.BikeshareUseCase, console types.ConsoleInterface, prompter Prompter, args *types.CLIArgs) *session {
	return &session{uc: uc, console: console, prompter: prompter, args: args}
}

// run executes queries until the user declines to restart.
// Values given as flags are used for the first round only; a restart prompts for everything.
func (s *session) run(ctx context.Context) error {
	args := *s.args
	for {
		interactive := args.Interactive()

		city, err := s.chooseCity(args.City)
		if err != nil {
			return err
		}

		dataset, err := s.uc.LoadAndDerive(ctx, city)
		if err != nil {
			return err
		}

		month, err := s.chooseMonth(args.Month, s.uc.AvailableMonths(dataset))
		if err != nil {
			return err
		}
		day, err := s.chooseDay(args.Day)
		if err != nil {
			return err
		}

		spec := entity.NewFilterSpec(city, month, day)
		report := s.uc.RunQuery(dataset, spec)

		if s.args.HourChart {
			s.uc.DisplayHourChart(report)
		}
		if s.args.Raw {
			if err := s.pageRaw(dataset, spec); err != nil {
				return err
			}
		}
		s.uc.ExportReport(report, s.args)

		if !interactive {
			return nil
		}
		restart, err := s.confirm("Would you like to restart? Enter yes or no")
		if err != nil || !restart {
			return err
		}
		args = types.CLIArgs{}
	}
}

func (s *session) chooseCity(flag string) (entity.City, error) {
	cities := s.uc.Cities()
	if flag != "" {
		return entity.ParseCity(flag, cities)
	}
	question := fmt.Sprintf("Would you like to see data for %s?", strings.Join(cities.Names(), ", "))
	var city entity.City
	err := s.askUntilValid(question, func(answer string) error {
		var err error
		city, err = entity.ParseCity(answer, cities)
		return err
	})
	return city, err
}

func (s *session) chooseMonth(flag string, available []time.Month) (entity.MonthSelector, error) {
	// Por flag qualquer mês é aceito; um mês sem viagens resulta em relatório vazio
	if flag != "" {
		return entity.ParseMonth(flag, nil)
	}
	question := fmt.Sprintf("Which month? %s", strings.Join(entity.MonthOptions(available), ", "))
	var month entity.MonthSelector
	err := s.askUntilValid(question, func(answer string) error {
		var err error
		month, err = entity.ParseMonth(answer, available)
		return err
	})
	return month, err
}

func (s *session) chooseDay(flag string) (entity.DaySelector, error) {
	if flag != "" {
		return entity.ParseDay(flag)
	}
	question := fmt.Sprintf("Which day? %s", strings.Join(entity.DayOptions(), ", "))
	var day entity.DaySelector
	err := s.askUntilValid(question, func(answer string) error {
		var err error
		day, err = entity.ParseDay(answer)
		return err
	})
	return day, err
}

// askUntilValid repete a pergunta até parse aceitar a resposta. Só erros do prompt interrompem.
func (s *session) askUntilValid(question string, parse func(string) error) error {
	for {
		answer, err := s.prompter.Ask(question)
		if err != nil {
			return err
		}
		if err := parse(answer); err != nil {
			s.console.LogWarning("%s", err)
			continue
		}
		return nil
	}
}

func (s *session) confirm(question string) (bool, error) {
	answer, err := s.prompter.Ask(question)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes"), nil
}

// pageRaw mostra as viagens filtradas, cinco por vez, enquanto o usuário responder yes.
func (s *session) pageRaw(dataset *entity.Dataset, spec entity.FilterSpec) error {
	view := s.uc.View(dataset, spec)
	question := "Would you like to see 5 lines of raw trip data? Enter yes or no"
	for page := 0; ; page++ {
		show, err := s.confirm(question)
		if err != nil || !show {
			return err
		}
		records, more := s.uc.RawPage(view, page)
		s.uc.DisplayRaw(records)
		if !more {
			s.console.LogInfo("No more raw data to display")
			return nil
		}
		question = "Would you like to see 5 more lines? Enter yes or no"
	}
}
