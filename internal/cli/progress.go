// Package cli provides progress output for commands that store many gadgets.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/opencode-ai/gogo/internal/gadget"
	"github.com/opencode-ai/gogo/internal/models"
)

// progressStep reports a batch of gadget writes on stderr, one line per
// gadget. A nil step is silent.
type progressStep struct {
	out     io.Writer
	total   int
	done    int
	counts  map[gadget.ImportStatus]int
	started time.Time
}

func startProgress(out io.Writer, label string, total int) *progressStep {
	if !progressEnabled() {
		return nil
	}
	fmt.Fprintf(out, "%s (%d)\n", label, total)
	return &progressStep{
		out:     out,
		total:   total,
		counts:  make(map[gadget.ImportStatus]int),
		started: time.Now(),
	}
}

func (p *progressStep) Item(name string, status gadget.ImportStatus) {
	if p == nil {
		return
	}
	p.done++
	p.counts[status]++
	width := len(fmt.Sprint(p.total))
	fmt.Fprintf(p.out, "  [%*d/%d] %s %s\n", width, p.done, p.total, name, formatImportStatus(status))
}

func (p *progressStep) Done() {
	if p == nil {
		return
	}
	var parts []string
	for _, status := range []gadget.ImportStatus{gadget.ImportCreated, gadget.ImportUpdated, gadget.ImportSkipped} {
		if n := p.counts[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, status))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "nothing to do")
	}
	fmt.Fprintf(p.out, "done: %s (%s)\n", strings.Join(parts, ", "), formatDuration(time.Since(p.started)))
}

func (p *progressStep) Fail(name string, err error) {
	if p == nil {
		return
	}
	fmt.Fprintf(p.out, "  [%d/%d] %s %s: %v\n", p.done+1, p.total, name, colorize("failed", colorRed), err)
}

// importGadgets stores gadgets one at a time and reports each outcome.
func importGadgets(ctx context.Context, svc *gadget.Service, out io.Writer, label string, gadgets []*models.Gadget, overwrite bool) (*gadget.ImportResult, error) {
	step := startProgress(out, label, len(gadgets))
	result := &gadget.ImportResult{}
	for _, g := range gadgets {
		status, err := svc.ImportOne(ctx, g, overwrite)
		if err != nil {
			step.Fail(g.Name, err)
			return result, err
		}
		result.Add(g.Name, status)
		step.Item(g.Name, status)
	}
	step.Done()
	return result, nil
}

func formatImportStatus(status gadget.ImportStatus) string {
	switch status {
	case gadget.ImportCreated:
		return colorize(string(status), colorGreen)
	case gadget.ImportUpdated:
		return colorize(string(status), colorCyan)
	default:
		return colorize(string(status), colorYellow)
	}
}

func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() || quietFlag {
		return false
	}
	if _, ok := os.LookupEnv("GOGO_NO_PROGRESS"); ok {
		return false
	}
	return true
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	if d < time.Second {
		return d.Round(10 * time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
