package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/tsxflat/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Example    lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:    plain,
			Heading:    plain,
			Subcommand: plain,
			Flag:       plain,
			Example:    plain,
			Dim:        plain,
		}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Example:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands. Commands
// are listed under their group titles, views first.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}
{{- range commandGroups .}}

{{ heading .Title }}
{{- range .Commands}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}
{{- end}}
{{- end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimTrailing . }}

{{end}}`

// commandGroup is a titled list of subcommands for the usage template.
type commandGroup struct {
	Title    string
	Commands []*cobra.Command
}

// commandGroups lists cmd's available subcommands under their groups, in
// the order the groups were added. Ungrouped commands come last.
func commandGroups(cmd *cobra.Command) []commandGroup {
	var groups []commandGroup
	index := make(map[string]int)
	for _, g := range cmd.Groups() {
		index[g.ID] = len(groups)
		groups = append(groups, commandGroup{Title: g.Title})
	}

	var ungrouped []*cobra.Command
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() && sub.Name() != "help" {
			continue
		}
		if i, ok := index[sub.GroupID]; ok {
			groups[i].Commands = append(groups[i].Commands, sub)
			continue
		}
		ungrouped = append(ungrouped, sub)
	}
	if len(ungrouped) > 0 {
		groups = append(groups, commandGroup{Title: "Commands:", Commands: ungrouped})
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g.Commands) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// renderFlags lays out a flag set as aligned "-s, --name type" columns
// followed by the usage text and any non-zero default.
func (h *HelpFormatter) renderFlags(set *pflag.FlagSet) string {
	type row struct {
		names, kind, usage string
	}

	var rows []row
	width := 0
	set.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		kind, usage := pflag.UnquoteUsage(f)
		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}
		if def := f.DefValue; def != "" && def != "false" && def != "0" && def != "[]" {
			usage += fmt.Sprintf(" (default %s)", def)
		}
		plain := names
		if kind != "" {
			plain += " " + kind
		}
		width = max(width, len(plain))
		rows = append(rows, row{names: names, kind: kind, usage: usage})
	})

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		plainLen := len(r.names)
		b.WriteString("  ")
		b.WriteString(h.styles.Flag.Render(r.names))
		if r.kind != "" {
			b.WriteString(" " + h.styles.Dim.Render(r.kind))
			plainLen += 1 + len(r.kind)
		}
		b.WriteString(strings.Repeat(" ", width-plainLen+3))
		b.WriteString(r.usage)
	}
	return b.String()
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":       h.styles.Heading.Render,
		"command":       h.styles.Command.Render,
		"subcommand":    h.styles.Subcommand.Render,
		"example":       h.styles.Example.Render,
		"flags":         h.renderFlags,
		"commandGroups": commandGroups,
		"rpad":          rpad,
		"trimTrailing":  trimTrailingWhitespaces,
	}
}

// ApplyToCommand installs the styled help and usage functions on cmd.
// Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.Must(usage.Clone()).New("help").Parse(helpTemplate + `{{template "usage" .}}`))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
