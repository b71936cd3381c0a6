package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	City       string
	Month      string
	Day        string
	DataDir    string
	ReportName string
	ReportType []string
	Dir        string
	HourChart  bool
	Raw        bool
}

// Interactive reports whether any of the three filter parameters still has to be prompted for.
func (a *CLIArgs) Interactive() bool {
	return a.City == "" || a.Month == "" || a.Day == ""
}
