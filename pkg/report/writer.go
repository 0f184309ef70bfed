package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mailprobe/pkg/domain"
)

const (
	ruleHeavy = "================================================================================"
	ruleLight = "----------------------------------------"
)

// Render formats the report as UTF-8 text, sections separated by rule lines
func Render(rep domain.Report) string {
	var sb strings.Builder

	sb.WriteString(ruleHeavy + "\n")
	sb.WriteString("EMAIL PRODUCTIVITY PROBLEM ANALYSIS REPORT\n")
	sb.WriteString("Product Manager Research & Market Validation\n")
	sb.WriteString(fmt.Sprintf("Generated on: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04")))
	sb.WriteString(ruleHeavy + "\n")

	for _, sec := range rep.Sections {
		sb.WriteString("\n" + sec.Title + "\n")
		sb.WriteString(ruleLight + "\n")
		for _, line := range sec.Lines {
			sb.WriteString(line + "\n")
		}
	}

	sb.WriteString("\n" + ruleHeavy + "\n")
	sb.WriteString("END OF REPORT\n")
	sb.WriteString(ruleHeavy + "\n")
	return sb.String()
}

// Save writes the rendered report into dir with a timestamped filename and
// returns the path. An existing file is never overwritten, a numeric suffix
// disambiguates reports generated within the same minute.
func Save(rep domain.Report, dir string) (string, error) {
	base := fmt.Sprintf("mailprobe_report_%s", rep.GeneratedAt.Format("20060102_1504"))
	path := filepath.Join(dir, base+".txt")
	for i := 2; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.txt", base, i))
	}

	if err := os.WriteFile(path, []byte(Render(rep)), 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
