package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Interactively inspect pinecone bytes",
	Long: `Show pinecone-encoded bytes side by side with the decoded value,
in an interactive viewer. Falls back to a plain dump when stdout is
not a terminal.

Example:
  pine inspect -s point.yaml -i point.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, _ := cmd.Flags().GetString("schema")
		inputPath, _ := cmd.Flags().GetString("input")
		compressed, _ := cmd.Flags().GetBool("zstd")

		s, err := loadSchema(schemaPath)
		if err != nil {
			return err
		}
		data, err := readInput(inputPath)
		if err != nil {
			return err
		}
		if compressed {
			if data, err = zstdDecompress(data); err != nil {
				return err
			}
		}

		v, decodeErr := s.Decode(data)

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			for _, line := range hexLines(data) {
				fmt.Println(line)
			}
			if decodeErr != nil {
				return decodeErr
			}
			fmt.Println()
			for _, line := range treeLines(v, 0) {
				fmt.Println(line)
			}
			return nil
		}

		m := newInspectModel(inputPath, data, v, decodeErr)
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	inspectCmd.Flags().StringP("schema", "s", "", "schema file (YAML or JSONC)")
	inspectCmd.Flags().StringP("input", "i", "", "input file (default stdin)")
	inspectCmd.Flags().Bool("zstd", false, "input is zstd-compressed")
	inspectCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(inspectCmd)
}

type inspectModel struct {
	decodeErr error
	filename  string
	hex       []string
	tree      []string
	gotoInput textinput.Model
	scroll    int
	width     int
	height    int
	showGoto  bool
}

func newInspectModel(filename string, data []byte, v any, decodeErr error) *inspectModel {
	if filename == "" || filename == "-" {
		filename = "(stdin)"
	}
	ti := textinput.New()
	ti.Placeholder = "offset (hex or decimal)"
	ti.Prompt = "goto: "
	ti.Width = 30

	var tree []string
	if decodeErr == nil {
		tree = treeLines(v, 0)
	}
	return &inspectModel{
		decodeErr: decodeErr,
		filename:  filename,
		hex:       hexLines(data),
		tree:      tree,
		gotoInput: ti,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.showGoto {
			switch msg.String() {
			case "enter":
				m.jumpTo(m.gotoInput.Value())
				m.showGoto = false
				m.gotoInput.SetValue("")
			case "esc":
				m.showGoto = false
				m.gotoInput.SetValue("")
			default:
				var cmd tea.Cmd
				m.gotoInput, cmd = m.gotoInput.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			if m.scroll < m.maxScroll() {
				m.scroll++
			}
		case "pgup":
			m.scroll = max(0, m.scroll-m.pageSize())
		case "pgdown":
			m.scroll = min(m.maxScroll(), m.scroll+m.pageSize())
		case "home":
			m.scroll = 0
		case "end":
			m.scroll = m.maxScroll()
		case "g":
			m.showGoto = true
			m.gotoInput.Focus()
			return m, textinput.Blink
		}
	}
	return m, nil
}

// jumpTo scrolls the hex pane to the row containing the given offset.
func (m *inspectModel) jumpTo(s string) {
	s = strings.TrimSpace(s)
	base := 10
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		s, base = rest, 16
	}
	off, err := strconv.ParseInt(s, base, 64)
	if err != nil || off < 0 {
		return
	}
	m.scroll = min(int(off)/16, m.maxScroll())
}

func (m *inspectModel) pageSize() int {
	return max(1, m.height-6)
}

func (m *inspectModel) maxScroll() int {
	return max(0, max(len(m.hex), len(m.tree))-m.pageSize())
}

func (m *inspectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pine inspect"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")

	page := m.pageSize()
	hexPane := paneStyle.Render(strings.Join(window(m.hex, m.scroll, page), "\n"))

	var treePane string
	if m.decodeErr != nil {
		treePane = paneStyle.Render(errorStyle.Render(fmt.Sprintf("decode failed:\n%v", m.decodeErr)))
	} else {
		treePane = paneStyle.Render(strings.Join(window(m.tree, m.scroll, page), "\n"))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, hexPane, " ", treePane))
	b.WriteString("\n")

	if m.showGoto {
		b.WriteString(m.gotoInput.View())
	} else {
		b.WriteString(helpStyle.Render("↑/↓ scroll • g goto offset • q quit"))
	}
	return b.String()
}

func window(lines []string, from, n int) []string {
	if from >= len(lines) {
		return nil
	}
	return lines[from:min(from+n, len(lines))]
}

// hexLines renders a classic 16-bytes-per-row hex dump.
func hexLines(data []byte) []string {
	if len(data) == 0 {
		return []string{offsetStyle.Render("(empty)")}
	}
	lines := make([]string, 0, (len(data)+15)/16)
	for off := 0; off < len(data); off += 16 {
		row := data[off:min(off+16, len(data))]

		var hexCol strings.Builder
		for i, b := range row {
			if i == 8 {
				hexCol.WriteByte(' ')
			}
			fmt.Fprintf(&hexCol, "%02x ", b)
		}

		var asciiCol strings.Builder
		for _, b := range row {
			if b >= 0x20 && b < 0x7F {
				asciiCol.WriteByte(b)
			} else {
				asciiCol.WriteByte('.')
			}
		}

		lines = append(lines, fmt.Sprintf("%s %-49s %s",
			offsetStyle.Render(fmt.Sprintf("%08x", off)),
			hexCol.String(),
			asciiCol.String()))
	}
	return lines
}

// treeLines renders a decoded value as an indented tree.
func treeLines(v any, depth int) []string {
	indent := strings.Repeat("  ", depth)

	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			return []string{indent + valueStyle.Render("{}")}
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var lines []string
		for _, k := range keys {
			child := val[k]
			if isScalar(child) {
				lines = append(lines, indent+fieldStyle.Render(k)+": "+scalarString(child))
				continue
			}
			lines = append(lines, indent+fieldStyle.Render(k)+":")
			lines = append(lines, treeLines(child, depth+1)...)
		}
		return lines

	case []any:
		if len(val) == 0 {
			return []string{indent + valueStyle.Render("[]")}
		}
		var lines []string
		for i, elem := range val {
			label := indent + offsetStyle.Render(fmt.Sprintf("[%d]", i))
			if isScalar(elem) {
				lines = append(lines, label+" "+scalarString(elem))
				continue
			}
			lines = append(lines, label)
			lines = append(lines, treeLines(elem, depth+1)...)
		}
		return lines

	default:
		return []string{indent + scalarString(v)}
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return valueStyle.Render("none")
	case string:
		return valueStyle.Render(strconv.Quote(val))
	case []byte:
		return valueStyle.Render(fmt.Sprintf("0x%x (%d bytes)", val, len(val)))
	default:
		return valueStyle.Render(fmt.Sprint(val))
	}
}
