package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/fatih/color"
)

// consoleView prints what the controller shows for one-shot commands.
type consoleView struct {
	out io.Writer

	mu    sync.Mutex
	flags map[string]bool
}

func newConsoleView(out io.Writer) *consoleView {
	return &consoleView{out: out, flags: map[string]bool{}}
}

func (v *consoleView) ShowConfirm(prompt string) {
	v.print(color.YellowString("%s", prompt))
}

func (v *consoleView) HideConfirm()                     {}
func (v *consoleView) SetConfirmEnabled(bool)           {}
func (v *consoleView) ShowLoading(kind models.ListKind) {}

func (v *consoleView) ShowTable(t render.Table) {
	v.print(render.Terminal(t))
}

func (v *consoleView) ShowListError(kind models.ListKind, message string) {
	v.print(color.RedString("%s: %s", kind, message))
}

func (v *consoleView) SetStats(s models.Stats) {
	v.print(fmt.Sprintf("Users: %d  Groups: %d  Projects: %d", s.Users, s.Groups, s.Projects))
}

func (v *consoleView) FlagEnabled(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.flags[name]
}

func (v *consoleView) SetFlag(name string, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.flags[name] = enabled
}

func (v *consoleView) Notify(level dashboard.Level, message string) {
	if level == dashboard.LevelDanger {
		v.print(color.RedString("%s", message))
		return
	}
	v.print(color.GreenString("%s", message))
}

func (v *consoleView) print(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, s)
}

func flagState(enabled bool) string {
	if enabled {
		return color.GreenString("on")
	}
	return color.New(color.Faint).Sprint("off")
}

// askYesNo reads one answer line. Anything but y or yes is a no.
func askYesNo(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Continue? [y/N] ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
