package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

var (
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHint   = tcell.StyleDefault.Foreground(tcell.GetColor("#808080"))
	stylePlain  = tcell.StyleDefault.Foreground(tcell.GetColor("#d8d8d8"))
	styleNotice = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

func (g *Game) draw() {
	g.renderer.Begin()
	switch g.mode {
	case ModeMenu:
		g.drawMenu()
	case ModeJournal:
		g.drawJournal()
	case ModeEnded:
		g.drawEnd()
	default:
		g.drawScene()
	}
	g.renderer.Show()
}

func (g *Game) drawMenu() {
	_, sh := g.screen.Size()
	g.renderer.PutText(4, 2, "LINGOTRAIL", styleTitle)
	g.renderer.PutText(4, 3, "a Czech adventure in Malá Strana", styleHint)
	g.renderer.DrawSeparator(5)

	y := 7
	for slot := 1; slot <= g.store.Slots(); slot++ {
		s, err := g.store.Load(slot)
		if err != nil || s == nil {
			continue
		}
		line := fmt.Sprintf("slot %d  %-12s %s  (%d words)",
			slot, s.PlayerName, s.LastSaved.Local().Format("2006-01-02 15:04"),
			len(s.UnlockedVocabulary))
		g.renderer.PutText(6, y, line, stylePlain)
		y++
	}
	if y == 7 {
		g.renderer.PutText(6, y, "No saved games yet.", styleHint)
		y++
	}

	if g.statusMsg != "" {
		g.renderer.PutText(4, y+1, g.statusMsg, styleNotice)
	}
	g.renderer.PutText(4, sh-3, "[N]ew game   [C]ontinue   [Q]uit", stylePlain)
}

// drawScene draws the shared dialogue frame: scene header, optional popup,
// the dialogue box at the bottom, and the quiz answers or input line when a
// quiz is active.
func (g *Game) drawScene() {
	sw, sh := g.screen.Size()
	boxTop := sh - 9

	g.renderer.PutText(2, 0, g.state.CurrentSceneID, styleHint)
	if g.popup != nil {
		g.renderer.DrawPopup(*g.popup, boxTop-3)
	}

	g.renderer.DrawSeparator(boxTop)
	if entry := g.player.Entry(); entry != nil {
		g.renderer.DrawSpeaker(entry.Speaker, entry.Side, boxTop+1)
	}
	g.renderer.DrawMarkup(g.player.VisibleMarkup(), 4, boxTop+2, sw-8, g.hoveredKey)

	switch g.mode {
	case ModeQuiz:
		g.renderer.DrawMarkup(g.quizMarkup, 6, boxTop+5, sw-12, "")
	case ModeBlank:
		g.renderer.DrawInput(g.typed, 6, boxTop+5)
	}

	g.renderer.DrawStatus(g.statusHint())
}

func (g *Game) statusHint() string {
	hint := ""
	switch g.mode {
	case ModeQuiz:
		hint = "click or press 1-9 to answer"
	case ModeBlank:
		hint = "type the missing word, enter to submit"
	default:
		hint = "enter/space advance · click words · [j]ournal · [s]ave · [q]uit"
	}
	if g.statusMsg != "" {
		hint = g.statusMsg + "   " + hint
	}
	return hint
}

func (g *Game) drawJournal() {
	g.renderer.DrawJournal(g.journalLabels(), len(g.state.CompletedDialogues))
	g.renderer.DrawStatus("any key to return")
}

// journalLabels maps unlock tokens to their journal labels, deduplicated
// by dictionary key, in unlock order.
func (g *Game) journalLabels() []string {
	var labels []string
	seen := map[string]bool{}
	for _, token := range g.state.UnlockedVocabulary {
		key, ok := g.index.ResolveToken(token)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		if entry, ok := g.index.Entry(key); ok {
			labels = append(labels, entry.JournalLabel)
		}
	}
	return labels
}

func (g *Game) drawEnd() {
	_, sh := g.screen.Size()
	g.renderer.PutText(4, 2, "KONEC — THE END", styleTitle)
	g.renderer.DrawSeparator(4)
	g.renderer.PutText(4, 6, fmt.Sprintf("Words collected:      %d", len(g.journalLabels())), stylePlain)
	g.renderer.PutText(4, 7, fmt.Sprintf("Dialogues completed:  %d", len(g.state.CompletedDialogues)), stylePlain)
	g.renderer.PutText(4, 8, fmt.Sprintf("Quiz attempts:        %d", len(g.state.PuzzleAttempts)), stylePlain)
	if g.statusMsg != "" {
		g.renderer.PutText(4, 10, g.statusMsg, styleNotice)
	}
	g.renderer.PutText(4, sh-3, "[R]eplay   [Q]uit", stylePlain)
}
