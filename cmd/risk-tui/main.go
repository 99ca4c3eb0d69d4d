package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orbitalsec/astrarisk/pkg/assessment"
	"github.com/orbitalsec/astrarisk/pkg/catalog"
	"github.com/orbitalsec/astrarisk/pkg/export"
	"github.com/orbitalsec/astrarisk/pkg/metrics"
	"github.com/orbitalsec/astrarisk/pkg/scoring"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	threatsView view = iota
	assessView
	bidView
	summaryView
)

const viewCount = 4

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Save     key.Binding
	Export   key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save session"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "export CSV"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Save, k.Export, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter},
		{k.Save, k.Export},
		{k.Up, k.Down, k.Quit},
	}
}

// assessInputs indexes the assessment form fields.
const (
	inputThreat = iota
	inputAsset
	inputThreatScores
	inputAssetScores
	assessInputCount
)

type model struct {
	session     *assessment.Session
	store       *assessment.Store
	sessionFile string
	exportDir   string
	metrics     *metrics.Registry

	currentView view
	threatTable table.Model
	assess      [assessInputCount]textinput.Model
	assessFocus int
	bidInput    textinput.Model
	help        help.Model
	keys        keyMap

	width      int
	height     int
	message    string
	messageErr bool
}

func initialModel(session *assessment.Session, store *assessment.Store, sessionFile, exportDir string) model {
	columns := []table.Column{
		{Title: "Threat", Width: 42},
		{Title: "Likelihood", Width: 12},
		{Title: "Impact", Width: 12},
		{Title: "Risk", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	var inputs [assessInputCount]textinput.Model
	placeholders := [assessInputCount]string{
		"Denial of Service",
		"Ground Station",
		fmt.Sprintf("%d scores 1-5, comma separated", len(scoring.ThreatCriteria)),
		fmt.Sprintf("%d scores 1-5, comma separated", len(scoring.AssetCriteria)),
	}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = 60
		inputs[i] = ti
	}
	inputs[inputThreat].Focus()

	bid := textinput.New()
	bid.Placeholder = "11 values 1-4, '-' for not applicable, comma separated"
	bid.CharLimit = 80
	bid.Width = 60

	m := model{
		session:     session,
		store:       store,
		sessionFile: sessionFile,
		exportDir:   exportDir,
		metrics:     metrics.DefaultRegistry(),
		currentView: threatsView,
		threatTable: t,
		assess:      inputs,
		bidInput:    bid,
		help:        help.New(),
		keys:        keys,
	}
	m.refreshThreatTable()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

// inputFocused reports whether a text field currently receives keystrokes,
// so plain letters like q are typed instead of acting as shortcuts.
func (m model) inputFocused() bool {
	switch m.currentView {
	case assessView:
		return true
	case bidView:
		return true
	default:
		return false
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if msg.String() != "q" || !m.inputFocused() {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Tab):
			m.setView((m.currentView + 1) % viewCount)
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentView == 0 {
				m.setView(viewCount - 1)
			} else {
				m.setView(m.currentView - 1)
			}
			return m, nil

		case key.Matches(msg, m.keys.Save):
			m.saveSession()
			return m, nil

		case key.Matches(msg, m.keys.Export):
			m.exportSession()
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			switch m.currentView {
			case assessView:
				if m.assessFocus < assessInputCount-1 {
					m.focusAssessInput(m.assessFocus + 1)
				} else {
					m.submitAssessment()
				}
				return m, nil
			case bidView:
				m.submitBID()
				return m, nil
			}

		case key.Matches(msg, m.keys.Up):
			if m.currentView == assessView {
				if m.assessFocus > 0 {
					m.focusAssessInput(m.assessFocus - 1)
				}
				return m, nil
			}

		case key.Matches(msg, m.keys.Down):
			if m.currentView == assessView {
				if m.assessFocus < assessInputCount-1 {
					m.focusAssessInput(m.assessFocus + 1)
				}
				return m, nil
			}
		}
	}

	// Update focused component
	switch m.currentView {
	case threatsView:
		m.threatTable, cmd = m.threatTable.Update(msg)
		cmds = append(cmds, cmd)
	case assessView:
		m.assess[m.assessFocus], cmd = m.assess[m.assessFocus].Update(msg)
		cmds = append(cmds, cmd)
	case bidView:
		m.bidInput, cmd = m.bidInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) setView(v view) {
	m.currentView = v

	for i := range m.assess {
		m.assess[i].Blur()
	}
	m.bidInput.Blur()

	switch v {
	case assessView:
		m.assess[m.assessFocus].Focus()
	case bidView:
		m.bidInput.Focus()
	}
}

func (m *model) focusAssessInput(i int) {
	m.assess[m.assessFocus].Blur()
	m.assessFocus = i
	m.assess[i].Focus()
}

func (m *model) submitAssessment() {
	threat := strings.TrimSpace(m.assess[inputThreat].Value())
	asset := strings.TrimSpace(m.assess[inputAsset].Value())
	if threat == "" || asset == "" {
		m.setError("Threat and asset names are required")
		return
	}

	threatScores, err := parseScores(m.assess[inputThreatScores].Value(), len(scoring.ThreatCriteria))
	if err != nil {
		m.setError(fmt.Sprintf("Threat scores: %v", err))
		return
	}
	assetScores, err := parseScores(m.assess[inputAssetScores].Value(), len(scoring.AssetCriteria))
	if err != nil {
		m.setError(fmt.Sprintf("Asset scores: %v", err))
		return
	}

	m.session.AddThreat(assessment.ThreatEntry{Name: threat})
	pair := m.session.Assessment(threat, asset)
	pair.ThreatScores = threatScores
	pair.AssetScores = assetScores

	scored, err := m.session.Recompute()
	if err != nil {
		m.setError(fmt.Sprintf("Scoring failed: %v", err))
		return
	}
	m.metrics.RecordAssessments(scored)

	m.refreshThreatTable()
	m.setSuccess(fmt.Sprintf("Assessed %s vs %s (%d pairs scored)", threat, asset, scored))
}

func (m *model) submitBID() {
	sheet, err := parseBIDSheet(m.bidInput.Value())
	if err != nil {
		m.setError(fmt.Sprintf("BID sheet: %v", err))
		return
	}

	m.session.BID = sheet
	if _, err := m.session.Recompute(); err != nil {
		m.setError(fmt.Sprintf("Scoring failed: %v", err))
		return
	}

	m.setSuccess(fmt.Sprintf("BID total %.2f (%s)", m.session.BIDScore.Total, m.session.BIDScore.Level))
}

func (m *model) saveSession() {
	if err := m.store.Save(m.session, m.sessionFile); err != nil {
		m.setError(fmt.Sprintf("Save failed: %v", err))
		return
	}
	m.metrics.RecordSessionSaved()
	m.setSuccess("Session saved as " + m.sessionFile)
}

func (m *model) exportSession() {
	exporter, err := export.New(m.exportDir)
	if err != nil {
		m.setError(fmt.Sprintf("Export failed: %v", err))
		return
	}
	if err := exporter.ExportSession(m.session); err != nil {
		m.setError(fmt.Sprintf("Export failed: %v", err))
		return
	}
	m.setSuccess("CSV export written to " + exporter.Dir())
}

func (m *model) refreshThreatTable() {
	rows := make([]table.Row, 0, len(m.session.Threats))
	for _, entry := range m.session.Threats {
		rows = append(rows, table.Row{
			entry.Name,
			entry.Likelihood.String(),
			entry.Impact.String(),
			entry.Risk.String(),
		})
	}
	m.threatTable.SetRows(rows)
}

func (m *model) setError(msg string) {
	m.message = msg
	m.messageErr = true
}

func (m *model) setSuccess(msg string) {
	m.message = msg
	m.messageErr = false
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("AstraRisk - Space Mission Risk Assessment"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case threatsView:
		s.WriteString(m.renderThreats())
	case assessView:
		s.WriteString(m.renderAssess())
	case bidView:
		s.WriteString(m.renderBID())
	case summaryView:
		s.WriteString(m.renderSummary())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Threats", "Assess", "BID", "Summary"}
	var renderedTabs []string

	for i, tab := range tabs {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderThreats() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(fmt.Sprintf("Threats (%d)", len(m.session.Threats))))
	s.WriteString("\n\n")
	s.WriteString(m.threatTable.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Levels show the worst case across all assessed assets"))

	return contentStyle.Render(s.String())
}

func (m model) renderAssess() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Assess a Threat-Asset Pair"))
	s.WriteString("\n\n")

	labels := [assessInputCount]string{"Threat", "Asset", "Threat scores", "Asset scores"}
	for i, ti := range m.assess {
		marker := "  "
		if i == m.assessFocus {
			marker = "> "
		}
		s.WriteString(fmt.Sprintf("%s%-14s %s\n", marker, labels[i], ti.View()))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Threat criteria: " + criteriaNames(scoring.ThreatCriteria) + "\n"))
	s.WriteString(helpStyle.Render("Asset criteria:  " + criteriaNames(scoring.AssetCriteria)))

	return contentStyle.Render(s.String())
}

func (m model) renderBID() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Invitation to Tender (BID) Score Sheet"))
	s.WriteString("\n\n")

	for i, cat := range scoring.BIDCategories {
		current := "-"
		if m.session.BID != nil {
			entry := m.session.BID[i]
			if entry.Inapplicable {
				current = "n/a"
			} else if entry.Value > 0 {
				current = strconv.Itoa(entry.Value)
			}
		}
		s.WriteString(fmt.Sprintf("  %2d. %-38s (weight %.2f)  %s\n", i+1, cat.Name, cat.Weight, current))
	}

	s.WriteString("\n")
	s.WriteString(m.bidInput.View())

	if m.session.BIDScore != nil {
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Current total: %.2f (%s)", m.session.BIDScore.Total, m.session.BIDScore.Level))
	}

	return contentStyle.Render(s.String())
}

func (m model) renderSummary() string {
	assessed := 0
	for _, pair := range m.session.Assessments {
		if pair.Result != nil && pair.Result.Risk.Valid() {
			assessed++
		}
	}

	missionType := string(m.session.MissionType)
	if missionType == "" {
		missionType = "unspecified"
	}

	sessionContent := fmt.Sprintf(`Session
━━━━━━━━━━━━━━━
Mission:   %s
Type:      %s
Threats:   %d
Assessed:  %d pairs
Updated:   %s`,
		m.session.Mission,
		missionType,
		len(m.session.Threats),
		assessed,
		m.session.UpdatedAt.Format("2006-01-02 15:04"),
	)

	var riskContent strings.Builder
	riskContent.WriteString("Highest Risks\n━━━━━━━━━━━━━━━\n")
	for _, entry := range topRisks(m.session, 5) {
		riskContent.WriteString(fmt.Sprintf("%-38s %s\n", entry.Name, entry.Risk))
	}
	if m.session.BIDScore != nil {
		riskContent.WriteString(fmt.Sprintf("\nBID exposure: %.2f (%s)", m.session.BIDScore.Total, m.session.BIDScore.Level))
	}

	sessionBox := statsBoxStyle.Render(sessionContent)
	riskBox := statsBoxStyle.Render(riskContent.String())

	return contentStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Top, sessionBox, riskBox),
	)
}

func criteriaNames(criteria []scoring.Criterion) string {
	names := make([]string, len(criteria))
	for i, c := range criteria {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func topRisks(s *assessment.Session, n int) []assessment.ThreatEntry {
	entries := make([]assessment.ThreatEntry, len(s.Threats))
	copy(entries, s.Threats)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Risk != entries[j].Risk {
			return entries[i].Risk > entries[j].Risk
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func parseScores(value string, count int) (scoring.AssessmentScores, error) {
	parts := strings.Split(value, ",")
	if len(parts) != count {
		return nil, fmt.Errorf("expected %d values, got %d", count, len(parts))
	}

	scores := make(scoring.AssessmentScores, count)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("value %d is not a number", i+1)
		}
		if n < 1 || n > 5 {
			return nil, fmt.Errorf("value %d must be 1-5", i+1)
		}
		scores[i] = n
	}
	return scores, nil
}

func parseBIDSheet(value string) (*scoring.BIDSheet, error) {
	parts := strings.Split(value, ",")
	if len(parts) != len(scoring.BIDCategories) {
		return nil, fmt.Errorf("expected %d values, got %d", len(scoring.BIDCategories), len(parts))
	}

	var sheet scoring.BIDSheet
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "-" {
			sheet[i] = scoring.BIDEntry{Inapplicable: true}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("value %d is not a number", i+1)
		}
		if n < 1 || n > 4 {
			return nil, fmt.Errorf("value %d must be 1-4 or '-'", i+1)
		}
		sheet[i] = scoring.BIDEntry{Value: n}
	}
	return &sheet, nil
}

func sessionFileName(mission string) string {
	name := strings.ToLower(mission)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	return name + ".json"
}

func main() {
	var (
		sessionDir  = flag.String("sessions", "sessions", "session store directory")
		sessionFile = flag.String("session", "", "session file to load from the store")
		mission     = flag.String("mission", "New Mission", "mission name for a new session")
		description = flag.String("describe", "", "mission description used to infer the mission type")
		exportDir   = flag.String("export", ".", "base directory for CSV exports")
	)
	flag.Parse()

	store, err := assessment.NewStore(*sessionDir)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}

	var session *assessment.Session
	fileName := *sessionFile
	if fileName != "" {
		if session, err = store.Load(fileName); err != nil {
			log.Fatalf("Failed to load session: %v", err)
		}
		metrics.DefaultRegistry().RecordSessionLoaded()
	} else {
		session = assessment.NewSession(*mission)
		missionType := catalog.EarthObservation
		if *description != "" {
			missionType, _ = catalog.InferMissionType(*description)
		}
		session.MissionType = missionType
		for _, entry := range catalog.PreliminaryAssessment(missionType) {
			session.AddThreat(assessment.ThreatEntry{
				Name:       entry.Threat,
				Likelihood: entry.Likelihood,
				Impact:     entry.Impact,
				Risk:       entry.Risk,
			})
		}
		fileName = sessionFileName(*mission)
	}

	p := tea.NewProgram(initialModel(session, store, fileName, *exportDir), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
