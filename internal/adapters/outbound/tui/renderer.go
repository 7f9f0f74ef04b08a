package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/deaffirst/deafcheck/internal/domain"
)

// ── warm terminal palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle         = lipgloss.NewStyle().Foreground(dim)
	faintStyle       = lipgloss.NewStyle().Foreground(faint)
	passStyle        = lipgloss.NewStyle().Foreground(success)
	failStyle        = lipgloss.NewStyle().Foreground(danger)
	blockingTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle     = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle     = lipgloss.NewStyle().Foreground(info)
	elementStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine    = faintStyle.Render(strings.Repeat("─", 64))
)

var categoryLabels = map[domain.Category]string{
	domain.CategoryVisualClarity:     "Visual Clarity",
	domain.CategoryASLCompatibility:  "ASL Compatibility",
	domain.CategoryAudioIndependence: "Audio Independence",
	domain.CategoryNavigationLogic:   "Navigation Logic",
	domain.CategoryGeneral:           "General",
}

// RenderResult formats a finished validation result for the terminal.
func RenderResult(result *domain.ValidationResult) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("deafcheck")
	subtitle := dimStyle.Render("Deaf-First Accessibility Score")
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(scoreColor(result.OverallScore)).
		Render(fmt.Sprintf("%.0f / 100", result.OverallScore))
	verdict := renderVerdict(result)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + verdict))
	b.WriteString("\n\n")

	b.WriteString("  " + dimStyle.Render(result.Target.Key()) + "\n")
	if result.Status != domain.StatusCompleted {
		b.WriteString("  " + renderStatus(result) + "\n")
	}
	b.WriteString("\n")

	// ── Categories ──
	for _, category := range domain.Categories {
		checker, ok := result.Breakdown[category]
		if !ok {
			continue
		}
		renderCategory(&b, checker)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Findings ──
	findings := collectFindings(result)
	if len(findings) > 0 {
		blocking, warnings, infos := countSeverities(findings)
		b.WriteString("  ")
		b.WriteString(titleStyle.Render("Findings"))
		b.WriteString("  ")
		if blocking > 0 {
			b.WriteString(blockingTagStyle.Render(fmt.Sprintf("%d blocking", blocking)))
			b.WriteString("  ")
		}
		if warnings > 0 {
			b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warnings)))
			b.WriteString("  ")
		}
		if infos > 0 {
			b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", infos)))
		}
		b.WriteString("\n\n")

		for _, finding := range findings {
			renderFinding(&b, finding)
		}
	} else if result.Status == domain.StatusCompleted {
		b.WriteString("  " + passStyle.Render("No barriers found.") + "\n")
	}

	// ── Recommendations ──
	if len(result.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + titleStyle.Render("Fix first") + "\n\n")
		for i, rec := range result.Recommendations {
			label := categoryLabels[rec.Category]
			fmt.Fprintf(&b, "    %s %s %s\n",
				dimStyle.Render(fmt.Sprintf("%d.", i+1)),
				severityTag(rec.Severity),
				rec.Message,
			)
			fmt.Fprintf(&b, "       %s\n", faintStyle.Render(fmt.Sprintf("%s · impact %.0f", label, rec.Impact)))
		}
	}

	b.WriteString("\n")
	return b.String()
}

// RenderBatch formats a batch outcome as a compact per-target table.
func RenderBatch(batch *domain.BatchValidationResult) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Batch Validation") + "  " + dimStyle.Render(string(batch.Status)) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	keys := make([]string, 0, len(batch.Results))
	for key := range batch.Results {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		result := batch.Results[key]
		if result.Status == domain.StatusFailed {
			fmt.Fprintf(&b, "  %s  %s  %s\n",
				failStyle.Render("✗"),
				dimStyle.Render(key),
				faintStyle.Render(result.ErrorReason),
			)
			continue
		}
		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(result.OverallScore)).
			Render(fmt.Sprintf("%3.0f/100", result.OverallScore))
		fmt.Fprintf(&b, "  %s  %s  %s\n", scoreStyled, renderVerdict(result), dimStyle.Render(key))
	}

	errKeys := make([]string, 0, len(batch.Errors))
	for key := range batch.Errors {
		errKeys = append(errKeys, key)
	}
	sort.Strings(errKeys)
	for _, key := range errKeys {
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			failStyle.Render("✗"),
			dimStyle.Render(key),
			faintStyle.Render(batch.Errors[key]),
		)
	}

	return b.String()
}

func renderCategory(b *strings.Builder, checker *domain.CheckerResult) {
	name := catNameStyle.Render(padRight(categoryLabels[checker.Category], 20))

	if !checker.Completed {
		fmt.Fprintf(b, "  %s %s\n", name, failStyle.Render("did not complete"))
		return
	}

	pct := checker.Score * 100 / domain.CategoryMax
	color := scoreColor(pct)
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%.0f/%.0f", checker.Score, domain.CategoryMax))
	fmt.Fprintf(b, "  %s %s  %s\n", name, coloredBar(pct, 20), scoreText)
}

func renderFinding(b *strings.Builder, finding domain.Finding) {
	tag := severityTag(finding.Severity)
	if finding.Element != "" {
		fmt.Fprintf(b, "    %s %s\n", tag, elementStyle.Render(finding.Element))
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(finding.Message))
	} else {
		fmt.Fprintf(b, "    %s %s\n", tag, dimStyle.Render(finding.Message))
	}
}

func renderVerdict(result *domain.ValidationResult) string {
	verdict := failStyle.Render("FAIL")
	if result.Passed {
		verdict = passStyle.Render("PASS")
	}
	if result.ASLCompatible {
		verdict += "  " + passStyle.Render("ASL-ready")
	} else if !result.ASLUnknown {
		verdict += "  " + warnTagStyle.Render("ASL gaps")
	}
	return verdict
}

func renderStatus(result *domain.ValidationResult) string {
	switch result.Status {
	case domain.StatusPartial:
		return warnTagStyle.Render("partial") + " " + faintStyle.Render("some categories did not complete")
	case domain.StatusFailed:
		return failStyle.Render("failed") + " " + faintStyle.Render(result.ErrorReason)
	default:
		return dimStyle.Render(string(result.Status))
	}
}

func severityTag(severity domain.Severity) string {
	switch severity {
	case domain.SeverityBlocking:
		return blockingTagStyle.Render("block")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func countSeverities(findings []domain.Finding) (blocking, warnings, infos int) {
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityBlocking:
			blocking++
		case domain.SeverityWarning:
			warnings++
		default:
			infos++
		}
	}
	return
}

// collectFindings flattens breakdown findings, blocking first, in
// canonical category order within each severity.
func collectFindings(result *domain.ValidationResult) []domain.Finding {
	var all []domain.Finding
	for _, category := range domain.Categories {
		checker, ok := result.Breakdown[category]
		if !ok {
			continue
		}
		all = append(all, checker.Findings...)
	}
	order := map[domain.Severity]int{
		domain.SeverityBlocking: 0,
		domain.SeverityWarning:  1,
		domain.SeverityInfo:     2,
	}
	sort.SliceStable(all, func(i, j int) bool {
		return order[all[i].Severity] < order[all[j].Severity]
	})
	return all
}

func coloredBar(pct float64, width int) string {
	filled := int(pct) * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	empty := width - filled

	color := scoreColor(pct)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(pct float64) lipgloss.Color {
	switch {
	case pct >= 80:
		return success
	case pct >= 60:
		return lipgloss.Color("#A3E635") // lime
	case pct >= 40:
		return warning
	default:
		return danger
	}
}

// RenderHistory formats the local score history for terminal output.
func RenderHistory(entries []domain.ScoreEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No validation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Validation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		day := e.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.OverallScore)).
			Render(fmt.Sprintf("%3.0f/100", e.OverallScore))

		line := fmt.Sprintf("  %s  %s  %s",
			dimStyle.Render(day),
			scoreStyled,
			faintStyle.Render(e.TargetKey),
		)

		if i > 0 && entries[i-1].TargetKey == e.TargetKey {
			diff := e.OverallScore - entries[i-1].OverallScore
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%.0f", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%.0f", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
