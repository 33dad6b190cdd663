package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/atomicstack/popup-apps/internal/format/table"
	"github.com/atomicstack/popup-apps/internal/overlay"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	bottomBarRows     = 2 // error/status + filter prompt
	folderChromeRows  = 4 // border + title + blank
	boxMinInnerWidth  = 24
	detailsInnerWidth = 56
	detailsLabelWidth = 9
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	zone          string
}

// View implements tea.Model.
func (m *Model) View() string {
	state := m.machine.State()
	top := m.viewBase(state.IsOpen())
	if group, ok := state.Group(); ok {
		top = m.placeCentered(m.viewFolder(group, state.Kind() == overlay.FolderOpen), top)
	}
	if app, ok := state.App(); ok {
		top = m.placeCentered(m.viewDetails(app), top)
	}
	return m.regions.Scan(top + "\n" + m.viewBottomBar())
}

// viewBase renders the folder grid. Once an overlay covers it the grid is
// drawn as an inert backdrop: dimmed, without a cursor, without tiles.
func (m *Model) viewBase(covered bool) string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})
	m.syncViewport(m.base)
	items, start := m.base.Visible(m.maxVisibleItems())
	switch {
	case len(m.base.Items) == 0 && m.base.Filter != "":
		lines = append(lines, styledLine{text: fmt.Sprintf("No matches for %q", m.base.Filter), style: styles.Info})
	case len(m.base.Items) == 0 && m.loaded:
		lines = append(lines, styledLine{text: "(no apps)", style: styles.Info})
	}
	for i, item := range items {
		label := fmt.Sprintf("%s (%d)", item.Label, m.machine.Catalog().Count(item.ID))
		line := m.buildItemLine(label, start+i == m.base.Cursor && !covered, m.width)
		if !covered {
			line.zone = groupZoneID(item.ID)
		}
		lines = append(lines, line)
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.footerText(), style: styles.Footer})
	}
	if m.height > 0 {
		lines = limitHeight(lines, m.height-bottomBarRows, m.width)
		for len(lines) < m.height-bottomBarRows {
			lines = append(lines, styledLine{})
		}
	}
	lines = applyWidth(lines, m.width)
	if covered {
		for i := range lines {
			lines[i].style = styles.Backdrop
			lines[i].prefixStyle = nil
			lines[i].highlightFrom = 0
		}
	}
	return m.renderLines(lines)
}

// viewFolder renders the folder layer as a bordered box. Its app tiles are
// only live while it is the topmost layer.
func (m *Model) viewFolder(group string, top bool) string {
	apps := m.machine.Catalog().Apps(group)
	title := fmt.Sprintf("%s · %d apps", group, len(apps))
	if len(apps) == 1 {
		title = fmt.Sprintf("%s · 1 app", group)
	}
	width := len([]rune(title))
	for _, app := range apps {
		if w := len([]rune(app.Name)) + 2; w > width {
			width = w
		}
	}
	width = m.boxInnerWidth(width)

	lines := []styledLine{{text: title, style: styles.FolderTitle}, {}}
	if f := m.folder; f != nil {
		m.syncViewport(f)
		items, start := f.Visible(m.folderRows())
		if len(f.Items) == 0 && f.Filter != "" {
			lines = append(lines, styledLine{text: fmt.Sprintf("No matches for %q", f.Filter), style: styles.Info})
		}
		for i, item := range items {
			line := m.buildItemLine(item.Label, top && start+i == f.Cursor, width)
			if top {
				line.zone = appZoneID(item.ID)
			}
			lines = append(lines, line)
		}
	}
	lines = applyWidth(lines, width)
	box := render(styles.FolderBox, padBlock(m.renderLines(lines), width))
	return m.regions.Mark(overlay.RegionFolder, box)
}

// viewDetails renders the details layer for app with its launch button.
func (m *Model) viewDetails(app catalog.AppDescriptor) string {
	width := m.boxInnerWidth(detailsInnerWidth)
	body := make([]string, 0, 16)
	body = append(body, render(styles.DetailsTitle, truncate.StringWithTail(app.Name, uint(width), "…")), "")

	description := strings.TrimSpace(app.Description)
	if description == "" {
		description = "No description."
	}
	for _, line := range strings.Split(wordwrap.String(description, width), "\n") {
		body = append(body, render(styles.DetailsBody, truncate.StringWithTail(line, uint(width), "…")))
	}
	body = append(body, "")

	fields := []struct{ label, value string }{
		{"Source", app.Source},
		{"Category", app.Category},
		{"Folder", app.Folder},
		{"Icon", catalog.IconURL(m.backendURL, app.Icon)},
	}
	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			continue
		}
		rows = append(rows, []string{render(styles.DetailsLabel, field.label), render(styles.DetailsBody, field.value)})
	}
	columns := []table.Column{{}, {MaxWidth: width - detailsLabelWidth - 1}}
	body = append(body, table.Format(rows, columns, 1)...)
	body = append(body, "", m.regions.Mark(zoneLaunch, m.launchButton(app)))

	box := render(styles.DetailsBox, padBlock(strings.Join(body, "\n"), width))
	return m.regions.Mark(overlay.RegionDetails, box)
}

func (m *Model) launchButton(app catalog.AppDescriptor) string {
	if m.launching[app.Name] > 0 {
		return render(styles.ButtonBusy, " Launching… ")
	}
	return render(styles.Button, " Open App ")
}

func (m *Model) viewBottomBar() string {
	var status styledLine
	switch {
	case m.errMsg != "":
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.busy():
		status = styledLine{text: m.busyLabel(), style: styles.Loading}
	case m.backendErr != "":
		status = styledLine{text: fmt.Sprintf("Refresh failed: %s", m.backendErr), style: styles.Info}
	}
	status = applyWidth([]styledLine{status}, m.width)[0]
	line := m.renderLines([]styledLine{status})
	if m.busy() && m.errMsg == "" {
		line = m.spinner.View() + " " + line
	}
	return line + "\n" + m.filterPrompt()
}

func (m *Model) header() string {
	segments := []string{rootTitle}
	state := m.machine.State()
	if group, ok := state.Group(); ok {
		segments = append(segments, group)
	}
	if app, ok := state.App(); ok {
		segments = append(segments, app.Name)
	}
	return strings.Join(segments, headerSeparator)
}

func (m *Model) footerText() string {
	switch m.machine.State().Kind() {
	case overlay.FolderOpen:
		return "↑/↓ move  enter details  click outside or esc close  ctrl+c quit"
	case overlay.BothOpen:
		return "enter launch  click outside or esc back  ctrl+c quit"
	default:
		return "↑/↓ move  enter open  ctrl+r reload  esc quit"
	}
}

// buildItemLine constructs a single styledLine for a list item. width is the
// target column width; when > 0 the text is padded so that the selected
// item's background spans the full container.
func (m *Model) buildItemLine(label string, selected bool, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

// boxInnerWidth clamps a wanted content width to what the terminal can show
// inside a bordered, padded box.
func (m *Model) boxInnerWidth(want int) int {
	if want < boxMinInnerWidth {
		want = boxMinInnerWidth
	}
	if m.width > 0 {
		if limit := m.width - 4; want > limit {
			want = limit
		}
	}
	if want < 1 {
		want = 1
	}
	return want
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows + 1 // header
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

// folderRows is how many app rows fit in the folder box.
func (m *Model) folderRows() int {
	if m.height <= 0 {
		return -1
	}
	remain := m.height - bottomBarRows - 1 - folderChromeRows
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func (m *Model) renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		if line.zone != "" {
			text = m.regions.Mark(line.zone, text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
