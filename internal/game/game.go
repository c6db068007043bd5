// Package game wires the core subsystems together and hosts them on a
// tcell event loop: the scene flow, mouse hover/click resolution, the
// translation popup, save slots, and the menu/journal/end screens.
package game

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"lingotrail/assets"
	"lingotrail/internal/config"
	"lingotrail/internal/dialogue"
	"lingotrail/internal/markup"
	"lingotrail/internal/progress"
	"lingotrail/internal/quiz"
	"lingotrail/internal/render"
	"lingotrail/internal/vocab"
)

// Mode tracks the top-level screen state machine.
type Mode uint8

const (
	ModeMenu Mode = iota
	ModeDialogue
	ModeQuiz  // multiple choice, mouse or digit keys
	ModeBlank // fill-in-the-blank text input
	ModeJournal
	ModeEnded
)

const frameInterval = 33 * time.Millisecond

// Game is the top-level orchestrator. All collaborators are constructed
// once and passed in explicitly; there is no global state beyond the
// default logger.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	cfg      *config.Config
	log      *slog.Logger

	index    *vocab.Index
	store    *progress.Store
	state    *progress.State
	player   *dialogue.Player
	resolver *quiz.Resolver

	playerName string
	mode       Mode

	hoveredKey  string // dictionary key under the mouse, dialogue mode
	hoveredAns  int    // hovered answer index, quiz mode (-1 none)
	quizMarkup  string
	typed       string // fill-in-blank input buffer
	popup       *markup.Popup
	statusMsg   string
	prevButtons tcell.ButtonMask
	quit        bool
}

// New constructs a Game over an initialized screen. The vocabulary
// dictionary and content tables are loaded and validated here; bad
// dictionary entries are logged and skipped, a broken flow/branch table is
// fatal because it could strand the player.
func New(screen tcell.Screen, cfg *config.Config, logger *slog.Logger, playerName string, saveDir string) (*Game, error) {
	if err := assets.Validate(); err != nil {
		return nil, fmt.Errorf("validate content: %w", err)
	}
	index, err := vocab.Load(assets.Dictionary())
	if err != nil {
		if index == nil {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
		logger.Warn("dictionary loaded with errors", "err", err)
	}

	g := &Game{
		screen:     screen,
		renderer:   render.NewRenderer(screen),
		cfg:        cfg,
		log:        logger,
		index:      index,
		store:      progress.NewStore(saveDir, cfg.Save.Slots),
		playerName: playerName,
		hoveredAns: -1,
	}

	g.player = dialogue.NewPlayer()
	g.player.RevealInterval = cfg.Typewriter.RevealInterval
	g.player.Debounce = cfg.Typewriter.AdvanceDebounce
	g.player.Annotate = func(raw string) string {
		unlocked := g.unlockedKeys()
		return markup.Annotate(raw, g.index, func(key string) bool { return unlocked[key] })
	}
	g.player.CanAdvance = func() bool {
		if g.mode != ModeDialogue || g.popup != nil {
			return false
		}
		// A finished quiz line hands over to the resolver; advancing past
		// it would skip the check.
		if line, ok := g.player.CurrentLine(); ok && line.QuizID != "" && g.player.IsLineComplete() {
			return false
		}
		return true
	}
	g.player.OnComplete = g.onDialogueComplete
	return g, nil
}

// unlockedKeys resolves the progress store's unlock tokens (keys or any
// surface form) into the set of unlocked dictionary keys.
func (g *Game) unlockedKeys() map[string]bool {
	if g.state == nil {
		return nil
	}
	return g.index.KeysFromTokens(g.state.UnlockedVocabulary)
}

// bindState points the session at a progress record and rebuilds the quiz
// resolver around it.
func (g *Game) bindState(s *progress.State) {
	g.state = s
	g.resolver = quiz.NewResolver(s, assets.Branches)
	g.resolver.Log = g.log
	g.resolver.PlayNext = g.playEntry
}

// startNewGame begins a fresh run from the start entry.
func (g *Game) startNewGame() {
	g.bindState(progress.NewState(g.playerName))
	g.playEntry(assets.StartEntry)
}

// continueGame resumes the most recent save, or reports when there is none.
func (g *Game) continueGame() {
	s, err := g.store.Latest()
	if err != nil {
		g.log.Warn("load saves", "err", err)
	}
	if s == nil {
		g.statusMsg = "No saved game found."
		return
	}
	g.bindState(s)
	id := s.CurrentSceneID
	if id == "" {
		id = assets.StartEntry
	}
	g.playEntry(id)
}

// playEntry starts a dialogue entry on the player. Unknown ids are a
// content bug: logged for the author, invisible to the player, no advance.
func (g *Game) playEntry(id string) {
	entry, ok := assets.Entries[id]
	if !ok {
		g.log.Warn("unknown dialogue entry", "id", id)
		return
	}
	g.state.CurrentSceneID = id
	if err := g.player.Play(entry); err != nil {
		g.log.Warn("play entry", "id", id, "err", err)
		return
	}
	g.mode = ModeDialogue
	g.popup = nil
	g.hoveredKey = ""
	g.hoveredAns = -1
	g.quizMarkup = ""
	g.typed = ""
}

// onDialogueComplete fires from the dialogue player after the session
// cleared. It records completion, grants the entry's vocabulary unlocks,
// and follows the flow table.
func (g *Game) onDialogueComplete(id string) {
	g.state.MarkDialogueComplete(id)
	if entry, ok := assets.Entries[id]; ok {
		for _, token := range entry.Unlocks {
			g.state.UnlockVocabulary(token)
		}
	}

	next := assets.Flow[id]
	if next == "" {
		g.endScene()
		return
	}
	g.playEntry(next)
}

// endScene closes out the run: autosave and show the end screen.
func (g *Game) endScene() {
	g.saveGame()
	g.mode = ModeEnded
}

// saveGame writes to the state's own slot, picking a free one on first
// save. Failures are logged and shown; they never interrupt play.
func (g *Game) saveGame() {
	if g.state == nil {
		return
	}
	slot, err := g.store.Save(g.state, g.state.SaveSlot)
	if err != nil {
		g.log.Warn("save", "err", err)
		g.statusMsg = "Save failed — see log."
		return
	}
	g.statusMsg = fmt.Sprintf("Saved to slot %d.", slot)
}

// Run is the main loop. A ticker goroutine posts interrupt events that
// drive the typewriter; input events arrive through the same queue, so the
// whole core stays single-threaded.
func (g *Game) Run() {
	defer g.screen.Fini()

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(frameInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				_ = g.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	last := time.Now()
	for !g.quit {
		g.draw()

		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventInterrupt:
			now := time.Now()
			g.update(now.Sub(last))
			last = now
		case *tcell.EventKey:
			g.handleKey(ev)
		case *tcell.EventMouse:
			g.handleMouse(ev)
		}
	}
}

// update advances the frame clock: the typewriter reveal and, when a quiz
// line finishes typing, the handover to the quiz resolver.
func (g *Game) update(dt time.Duration) {
	if g.mode != ModeDialogue {
		return
	}
	g.player.Tick(dt)
	if !g.player.IsLineComplete() {
		return
	}
	line, ok := g.player.CurrentLine()
	if !ok || line.QuizID == "" {
		return
	}
	def, ok := assets.Quizzes[line.QuizID]
	if !ok {
		g.log.Warn("unknown quiz", "id", line.QuizID)
		return
	}
	if def.Answers != nil {
		g.quizMarkup = g.resolver.SetupMultipleChoice(line.QuizID, def.Answers)
		g.hoveredAns = -1
		g.mode = ModeQuiz
	} else {
		g.resolver.SetupFillInBlank(line.QuizID, def.Accepted)
		g.typed = ""
		g.mode = ModeBlank
	}
}

func (g *Game) handleKey(ev *tcell.EventKey) {
	switch g.mode {
	case ModeMenu:
		g.handleMenuKey(ev)
	case ModeBlank:
		g.handleBlankKey(ev)
	case ModeQuiz:
		g.handleQuizKey(ev)
	case ModeJournal:
		g.mode = ModeDialogue
	case ModeEnded:
		g.handleEndKey(ev)
	case ModeDialogue:
		g.handleDialogueKey(ev)
	}
}

func (g *Game) handleMenuKey(ev *tcell.EventKey) {
	switch ev.Rune() {
	case 'n', 'N':
		g.startNewGame()
	case 'c', 'C':
		g.continueGame()
	case 'q', 'Q':
		g.quit = true
	default:
		if ev.Key() == tcell.KeyEscape {
			g.quit = true
		}
	}
}

func (g *Game) handleDialogueKey(ev *tcell.EventKey) {
	switch keyToAction(ev) {
	case ActionAdvance:
		if g.popup != nil {
			g.popup = nil
			return
		}
		g.player.Advance()
	case ActionJournal:
		g.mode = ModeJournal
	case ActionSave:
		g.saveGame()
	case ActionQuit:
		g.saveGame()
		g.quit = true
	}
}

func (g *Game) handleQuizKey(ev *tcell.EventKey) {
	if r := ev.Rune(); r >= '1' && r <= '9' {
		g.resolver.Click(int(r - '1'))
		return
	}
	switch keyToAction(ev) {
	case ActionSave:
		g.saveGame()
	case ActionQuit:
		g.saveGame()
		g.quit = true
	}
}

func (g *Game) handleBlankKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		if g.typed != "" {
			g.resolver.Submit(g.typed)
			g.typed = ""
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if g.typed != "" {
			runes := []rune(g.typed)
			g.typed = string(runes[:len(runes)-1])
		}
	case tcell.KeyEscape:
		g.saveGame()
		g.quit = true
	case tcell.KeyRune:
		g.typed += string(ev.Rune())
	}
}

func (g *Game) handleEndKey(ev *tcell.EventKey) {
	switch ev.Rune() {
	case 'r', 'R':
		g.startNewGame()
	case 'q', 'Q':
		g.quit = true
	default:
		if ev.Key() == tcell.KeyEscape {
			g.quit = true
		}
	}
}

// handleMouse resolves hover and click against last frame's link regions.
// Only the press edge of the primary button counts as a click, so one
// physical click never fires twice.
func (g *Game) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0 && g.prevButtons&tcell.Button1 == 0
	g.prevButtons = ev.Buttons()

	switch g.mode {
	case ModeDialogue:
		key, over := g.renderer.HitTest(x, y)
		if over {
			g.hoveredKey = key
		} else {
			g.hoveredKey = ""
		}
		if pressed {
			if over {
				g.openPopup(key)
			} else {
				g.popup = nil
			}
		}

	case ModeQuiz:
		key, over := g.renderer.HitTest(x, y)
		idx := -1
		if over {
			if i, err := strconv.Atoi(key); err == nil {
				idx = i
			}
		}
		if idx != g.hoveredAns {
			if g.hoveredAns >= 0 {
				g.quizMarkup = g.resolver.Hover(g.hoveredAns, false)
			}
			if idx >= 0 {
				g.quizMarkup = g.resolver.Hover(idx, true)
			}
			g.hoveredAns = idx
		}
		if pressed && idx >= 0 {
			g.resolver.Click(idx)
		}
	}
}

// openPopup shows the translation (or guess) for a linked word and records
// the interaction.
func (g *Game) openPopup(key string) {
	entry, ok := g.index.Entry(key)
	if !ok {
		g.log.Warn("popup for unknown key", "key", key)
		return
	}
	p, ok := markup.PopupFor(entry, g.unlockedKeys()[key])
	if !ok {
		return
	}
	g.popup = &p
	g.state.MarkInteractableComplete("word:" + key)
}
