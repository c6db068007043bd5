package assets

import "lingotrail/internal/dialogue"

// StartEntry is where a new game begins.
const StartEntry = "base.intro"

// Entries is the dialogue script. Words inside <t>…</t> spans are eligible
// for vocabulary linking; everything else renders as plain narration.
var Entries = map[string]*dialogue.Entry{
	"base.intro": {
		ID:   "base.intro",
		Side: dialogue.SideNone,
		Lines: []dialogue.Line{
			{Text: "A quiet morning in Malá Strana. Cobblestones, pigeons, and the smell of coffee."},
			{Text: "Someone is whistling down the street. <t>Ahoj!</t>"},
			{Text: "It's the letterman, and he is heading straight for you."},
		},
		Unlocks: []string{"ahoj"},
	},

	"base.letterman": {
		ID:      "base.letterman",
		Speaker: "Listonoš",
		Side:    dialogue.SideLeft,
		Lines: []dialogue.Line{
			{Text: "<t>Dobrý den!</t> A good day to you too."},
			{Text: "He digs through his bag. <t>Mám pro vás dopis. Píšu a čtu celý den!</t>"},
			{Text: "He holds out an envelope with a crooked <t>známka</t> in the corner."},
		},
		Unlocks: []string{"dobrý", "den", "listonoš"},
	},

	"base.letterman.ask": {
		ID:      "base.letterman.ask",
		Speaker: "Listonoš",
		Side:    dialogue.SideLeft,
		Lines: []dialogue.Line{
			{Text: "Before I hand it over — a little test. Which of these means 'letter'?",
				QuizID: "base.letterman.quiz"},
		},
	},

	"base.letterman.wrong": {
		ID:      "base.letterman.wrong",
		Speaker: "Listonoš",
		Side:    dialogue.SideLeft,
		Lines: []dialogue.Line{
			{Text: "Ne, ne. He shakes his head, but his eyes are smiling. Try again."},
		},
	},

	"base.letterman.correct": {
		ID:      "base.letterman.correct",
		Speaker: "Listonoš",
		Side:    dialogue.SideLeft,
		Lines: []dialogue.Line{
			{Text: "Výborně! He beams and presses the envelope into your hands."},
			{Text: "<t>Dopis</t> — a letter. Words are small parcels too, you know."},
		},
		Unlocks: []string{"dopis"},
	},

	"base.blank.ask": {
		ID:      "base.blank.ask",
		Speaker: "Listonoš",
		Side:    dialogue.SideLeft,
		Lines: []dialogue.Line{
			{Text: "One more, from memory this time. Type the Czech word for 'letter'.",
				QuizID: "base.letterman.blank"},
		},
	},

	"base.blank.retry": {
		ID:      "base.blank.retry",
		Speaker: "Listonoš",
		Side:    dialogue.SideLeft,
		Lines: []dialogue.Line{
			{Text: "Skoro! Almost. Say it with the envelope in your hand — it helps."},
		},
	},

	"base.blank.failed": {
		ID:      "base.blank.failed",
		Speaker: "Listonoš",
		Side:    dialogue.SideLeft,
		Lines: []dialogue.Line{
			{Text: "He taps the envelope. <t>Dopis.</t> It will stick next time, I promise."},
		},
		Unlocks: []string{"dopis"},
	},

	"base.blank.correct": {
		ID:      "base.blank.correct",
		Speaker: "Listonoš",
		Side:    dialogue.SideLeft,
		Lines: []dialogue.Line{
			{Text: "Přesně tak! You have a good ear."},
			{Text: "Drop your reply in the <t>schránka</t> by the corner — I collect at noon."},
		},
		Unlocks: []string{"schránka"},
	},

	"base.farewell": {
		ID:      "base.farewell",
		Speaker: "Listonoš",
		Side:    dialogue.SideLeft,
		Lines: []dialogue.Line{
			{Text: "He tips his cap. <t>Děkuji — a na shledanou!</t>"},
			{Text: "The whistling fades down the street. The envelope waits in your hand."},
		},
		Unlocks: []string{"děkuji"},
	},
}
