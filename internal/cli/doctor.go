package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"npdump/internal/config"
	"npdump/internal/mediasession"
	"npdump/internal/mediasession/system"
	"npdump/internal/output"
)

// DoctorCmd probes the environment npdump depends on and reports what a
// dump would find.
type DoctorCmd struct {
	Timeout time.Duration `default:"5s" help:"Per-probe timeout"`
}

// checkResult is one doctor probe outcome.
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// doctorReport aggregates all checks for ndjson consumers.
type doctorReport struct {
	Type          string        `json:"type"`
	SchemaVersion int           `json:"schemaVersion"`
	Timestamp     string        `json:"timestamp"`
	Checks        []checkResult `json:"checks"`
	AllPassed     bool          `json:"all_passed"`
	ErrorCount    int           `json:"error_count"`
	WarnCount     int           `json:"warn_count"`
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Run executes the doctor command
func (c *DoctorCmd) Run(globals *Globals) error {
	if err := validateFlags(globals); err != nil {
		return err
	}

	checks := []checkResult{
		c.checkPlatform(),
		c.checkFacility(),
		c.checkSession(globals),
		c.checkConfig(),
		c.checkOutput(globals),
	}

	report := doctorReport{
		Type:          "doctor",
		SchemaVersion: output.SchemaVersion,
		Timestamp:     globals.Clock.Now().Format(time.RFC3339),
		Checks:        checks,
		ErrorCount:    lo.CountBy(checks, func(r checkResult) bool { return r.Status == "error" }),
		WarnCount:     lo.CountBy(checks, func(r checkResult) bool { return r.Status == "warning" }),
	}
	report.AllPassed = report.ErrorCount == 0 && report.WarnCount == 0

	if globals.Format == "ndjson" {
		if err := json.NewEncoder(globals.Stdout).Encode(report); err != nil {
			return err
		}
	} else {
		c.renderTable(globals, report)
	}

	if report.ErrorCount > 0 {
		return fmt.Errorf("%d check(s) failed", report.ErrorCount)
	}
	return nil
}

func (c *DoctorCmd) checkPlatform() checkResult {
	switch runtime.GOOS {
	case "linux", "windows", "darwin":
		return checkResult{Name: "Platform", Status: "ok", Message: "media session facility available", Details: runtime.GOOS}
	}
	return checkResult{Name: "Platform", Status: "error", Message: "unsupported platform", Details: runtime.GOOS}
}

func (c *DoctorCmd) checkFacility() checkResult {
	switch runtime.GOOS {
	case "linux":
		if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
			return checkResult{
				Name:    "Session bus",
				Status:  "warning",
				Message: "DBUS_SESSION_BUS_ADDRESS is not set",
				Details: "players cannot be discovered without a session bus",
			}
		}
		return checkResult{Name: "Session bus", Status: "ok", Message: "session bus address present"}
	case "windows":
		if _, err := exec.LookPath("powershell"); err != nil {
			return checkResult{Name: "PowerShell", Status: "error", Message: "powershell not found on PATH"}
		}
		return checkResult{Name: "PowerShell", Status: "ok", Message: "powershell found"}
	case "darwin":
		if _, err := exec.LookPath("osascript"); err != nil {
			return checkResult{Name: "osascript", Status: "error", Message: "osascript not found on PATH"}
		}
		return checkResult{Name: "osascript", Status: "ok", Message: "osascript found"}
	}
	return checkResult{Name: "Facility", Status: "error", Message: "no session provider for this platform"}
}

func (c *DoctorCmd) checkSession(globals *Globals) checkResult {
	manager := globals.Manager
	if manager == nil {
		var err error
		manager, err = system.RequestManager(globals.Clock)
		if err != nil {
			return checkResult{Name: "Current session", Status: "error", Message: err.Error()}
		}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sess, err := manager.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, mediasession.ErrNoCurrentSession) {
			return checkResult{
				Name:    "Current session",
				Status:  "warning",
				Message: "no media session is active",
				Details: "start playback to give dump something to report",
			}
		}
		return checkResult{Name: "Current session", Status: "error", Message: err.Error()}
	}
	return checkResult{Name: "Current session", Status: "ok", Message: "active session found", Details: sess.SourceAppID()}
}

func (c *DoctorCmd) checkConfig() checkResult {
	if path := config.ConfigFile(); path != "" {
		return checkResult{Name: "Config file", Status: "ok", Message: "config file loaded", Details: path}
	}
	return checkResult{Name: "Config file", Status: "ok", Message: "no config file, defaults in effect"}
}

func (c *DoctorCmd) checkOutput(globals *Globals) checkResult {
	if f, ok := globals.Stdout.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return checkResult{Name: "Output", Status: "ok", Message: "stdout is a terminal", Details: "text format renders for humans"}
	}
	return checkResult{
		Name:    "Output",
		Status:  "ok",
		Message: "stdout is piped",
		Details: "ndjson format recommended for machine consumers",
	}
}

func (c *DoctorCmd) renderTable(globals *Globals, report doctorReport) {
	color := globals.ColorEnabled()

	table := tablewriter.NewWriter(globals.Stdout)
	table.Header([]string{"Check", "Status", "Message"})
	for _, r := range report.Checks {
		status := r.Status
		if color {
			status = styleForStatus(r.Status).Render(r.Status)
		}
		message := r.Message
		if r.Details != "" {
			message = fmt.Sprintf("%s (%s)", r.Message, r.Details)
		}
		table.Append([]string{r.Name, status, message})
	}
	table.Render()

	if report.AllPassed {
		fmt.Fprintln(globals.Stdout, "All checks passed")
	} else {
		fmt.Fprintf(globals.Stdout, "%d error(s), %d warning(s)\n", report.ErrorCount, report.WarnCount)
	}
}

func styleForStatus(status string) lipgloss.Style {
	switch status {
	case "ok":
		return okStyle
	case "warning":
		return warnStyle
	}
	return errStyle
}
