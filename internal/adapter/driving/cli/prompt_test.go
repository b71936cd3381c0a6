package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/bikeshare-dashboard-go/internal/adapter/driven/config"
	"github.com/diillson/bikeshare-dashboard-go/internal/adapter/driven/export"
	"github.com/diillson/bikeshare-dashboard-go/internal/application/usecase"
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
)

type scriptedPrompter struct {
	answers   []string
	questions []string
}

func (p *scriptedPrompter) Ask(question string) (string, error) {
	p.questions = append(p.questions, question)
	if len(p.answers) == 0 {
		return "", errors.New("no more answers")
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

type recordingConsole struct {
	warnings []string
	infos    []string
	success  []string
	rows     int
}

func (c *recordingConsole) Print(...interface{})          {}
func (c *recordingConsole) Printf(string, ...interface{}) {}
func (c *recordingConsole) Println(...interface{})        {}
func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	c.infos = append(c.infos, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) LogError(string, ...interface{}) {}
func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	c.success = append(c.success, fmt.Sprintf(format, a...))
}
func (c *recordingConsole) Status(string) types.StatusHandle        { return nopStatus{} }
func (c *recordingConsole) Section(string)                          {}
func (c *recordingConsole) CreateTable() types.TableInterface       { return &countingTable{console: c} }
func (c *recordingConsole) DisplayHourBars([]types.HourCount)       {}

type nopStatus struct{}

func (nopStatus) Update(string) {}
func (nopStatus) Stop()         {}

type countingTable struct{ console *recordingConsole }

func (t *countingTable) AddColumn(string, ...interface{}) {}
func (t *countingTable) AddRow(...interface{})            { t.console.rows++ }
func (t *countingTable) Render() string                   { return "" }

type memorySource struct {
	records []entity.TripRecord
	loads   []string
}

func (s *memorySource) Load(_ context.Context, city entity.City) ([]entity.TripRecord, error) {
	s.loads = append(s.loads, city.Name)
	return s.records, nil
}

func juneTrips(n int) []entity.TripRecord {
	var out []entity.TripRecord
	for i := 1; i <= n; i++ {
		out = append(out, entity.TripRecord{
			Row:          i,
			StartTime:    "2017-06-05 09:00:00",
			EndTime:      "2017-06-05 09:20:00",
			StartStation: "A",
			EndStation:   "B",
			UserType:     "Subscriber",
		})
	}
	return out
}

func newTestSession(src *memorySource, answers []string, args *types.CLIArgs) (*session, *scriptedPrompter, *recordingConsole) {
	console := &recordingConsole{}
	prompter := &scriptedPrompter{answers: answers}
	uc := usecase.NewBikeshareUseCase(src, entity.DefaultCityTable(), export.NewExportRepository(), console)
	return newSession(uc, console, prompter, args), prompter, console
}

func TestSession_InteractiveRetriesInvalidInput(t *testing.T) {
	src := &memorySource{records: juneTrips(3)}
	answers := []string{"boston", "NYC", "march", "june", "funday", "Monday", "no"}
	s, prompter, console := newTestSession(src, answers, &types.CLIArgs{})

	require.NoError(t, s.run(context.Background()))

	assert.Equal(t, []string{"new york city"}, src.loads)
	assert.Len(t, prompter.questions, 7)
	assert.Contains(t, prompter.questions[2], "june, all", "month prompt offers only months in the data")
	assert.Len(t, console.warnings, 3)
	for _, w := range console.warnings {
		assert.Contains(t, w, types.ErrInvalidSelection.Error())
	}
}

func TestSession_Restart(t *testing.T) {
	src := &memorySource{records: juneTrips(1)}
	answers := []string{"chicago", "all", "all", "yes", "washington", "all", "sunday", "no"}
	s, prompter, _ := newTestSession(src, answers, &types.CLIArgs{})

	require.NoError(t, s.run(context.Background()))
	assert.Equal(t, []string{"chicago", "washington"}, src.loads)
	assert.Empty(t, prompter.answers)
}

func TestSession_FlagsRunOnce(t *testing.T) {
	src := &memorySource{records: juneTrips(2)}
	args := &types.CLIArgs{City: "chicago", Month: "january", Day: "all"}
	s, prompter, console := newTestSession(src, nil, args)

	require.NoError(t, s.run(context.Background()))
	assert.Empty(t, prompter.questions)
	assert.Contains(t, console.warnings, "No trips match the selected filters")
}

func TestSession_InvalidFlag(t *testing.T) {
	s, _, _ := newTestSession(&memorySource{}, nil, &types.CLIArgs{City: "boston", Month: "all", Day: "all"})

	err := s.run(context.Background())
	assert.ErrorIs(t, err, types.ErrInvalidSelection)
}

func TestSession_PromptErrorStops(t *testing.T) {
	s, _, _ := newTestSession(&memorySource{}, nil, &types.CLIArgs{})
	assert.Error(t, s.run(context.Background()))
}

func TestSession_RawPaging(t *testing.T) {
	src := &memorySource{records: juneTrips(7)}
	args := &types.CLIArgs{City: "chicago", Month: "june", Day: "monday", Raw: true}
	s, prompter, console := newTestSession(src, []string{"yes", "yes"}, args)

	require.NoError(t, s.run(context.Background()))
	assert.Len(t, prompter.questions, 2)
	assert.Contains(t, console.infos, "No more raw data to display")
}

func TestCLIApp_RunWithFlags(t *testing.T) {
	dataDir := t.TempDir()
	outDir := t.TempDir()
	csv := "Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n" +
		"2017-01-01 09:07:57,2017-01-01 09:20:53,776,Columbus Circle,Lincoln Park,Subscriber\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "washington.csv"), []byte(csv), 0o644))

	console := &recordingConsole{}
	app := NewCLIApp("0.0.0-dev")
	app.SetDependencies(config.NewConfigRepository(), export.NewExportRepository(), console)
	app.SetPrompter(&scriptedPrompter{})
	app.rootCmd.SetArgs([]string{
		"--city", "washington", "--month", "1", "--day", "sunday",
		"--data-dir", dataDir, "-n", "washington", "-y", "json", "-d", outDir,
	})

	require.NoError(t, app.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".json"))
	require.Len(t, console.success, 1)
}

func TestCLIApp_ConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bikeshare.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_dir: /from/file\nreport_type: [pdf]\n"), 0o644))
	t.Setenv("BIKESHARE_DATA_DIR", "/from/env")

	tests := []struct {
		name        string
		flags       []string
		wantDataDir string
		wantTypes   []string
	}{
		{"env overrides file", []string{"-C", cfgPath}, "/from/env", []string{"pdf"}},
		{"flags override env", []string{"-C", cfgPath, "--data-dir", "/from/flag", "-y", "xlsx"}, "/from/flag", []string{"xlsx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewCLIApp("0.0.0-dev")
			app.SetDependencies(config.NewConfigRepository(), export.NewExportRepository(), &recordingConsole{})
			require.NoError(t, app.rootCmd.ParseFlags(tt.flags))

			args, err := app.parseArgs()
			require.NoError(t, err)
			cfg, err := app.loadConfig(args)
			require.NoError(t, err)

			assert.Equal(t, tt.wantDataDir, cfg.DataDir)
			assert.Equal(t, tt.wantTypes, args.ReportType)
		})
	}
}
