package h5p

import "github.com/gmixoulis/docx-to-h5p/model"

// cwParams is the H5P.Crossword 0.5 content schema. One package merges the
// words of every part of an activity's crossword.
type cwParams struct {
	Words           []cwWord    `json:"words"`
	OverallFeedback []cwRange   `json:"overallFeedback"`
	Theme           cwTheme     `json:"theme"`
	Behaviour       cwBehaviour `json:"behaviour"`
	L10n            cwL10n      `json:"l10n"`
	A11y            cwA11y      `json:"a11y"`
	TaskDescription string      `json:"taskDescription"`
}

type cwWord struct {
	FixWord     bool   `json:"fixWord"`
	Orientation string `json:"orientation"`
	Clue        string `json:"clue"`
	Answer      string `json:"answer"`
}

// cwRange has no feedback text, unlike the quiz feedback bands.
type cwRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type cwTheme struct {
	BackgroundColor              string `json:"backgroundColor"`
	GridColor                    string `json:"gridColor"`
	CellBackgroundColor          string `json:"cellBackgroundColor"`
	CellColor                    string `json:"cellColor"`
	ClueIDColor                  string `json:"clueIdColor"`
	CellBackgroundColorHighlight string `json:"cellBackgroundColorHighlight"`
	CellColorHighlight           string `json:"cellColorHighlight"`
	ClueIDColorHighlight         string `json:"clueIdColorHighlight"`
}

type cwBehaviour struct {
	EnableInstantFeedback bool `json:"enableInstantFeedback"`
	ScoreWords            bool `json:"scoreWords"`
	ApplyPenalties        bool `json:"applyPenalties"`
	EnableRetry           bool `json:"enableRetry"`
	EnableSolutionsButton bool `json:"enableSolutionsButton"`
}

type cwL10n struct {
	Across                                string `json:"across"`
	Down                                  string `json:"down"`
	CheckAnswer                           string `json:"checkAnswer"`
	TryAgain                              string `json:"tryAgain"`
	ShowSolution                          string `json:"showSolution"`
	CouldNotGenerateCrossword             string `json:"couldNotGenerateCrossword"`
	CouldNotGenerateCrosswordTooFewWords  string `json:"couldNotGenerateCrosswordTooFewWords"`
	ProbematicWords                       string `json:"probematicWords"`
	ExtraClue                             string `json:"extraClue"`
	CloseWindow                           string `json:"closeWindow"`
	SubmitAnswer                          string `json:"submitAnswer"`
}

type cwA11y struct {
	CrosswordGrid string `json:"crosswordGrid"`
	Column        string `json:"column"`
	Row           string `json:"row"`
	Across        string `json:"across"`
	Down          string `json:"down"`
	Empty         string `json:"empty"`
	ResultFor     string `json:"resultFor"`
	Correct       string `json:"correct"`
	Wrong         string `json:"wrong"`
	Point         string `json:"point"`
	SolutionFor   string `json:"solutionFor"`
	Check         string `json:"check"`
	ShowSolution  string `json:"showSolution"`
	Retry         string `json:"retry"`
	YourResult    string `json:"yourResult"`
}

func defaultCWL10n() cwL10n {
	return cwL10n{
		Across:                               "Across",
		Down:                                 "Down",
		CheckAnswer:                          "Check",
		TryAgain:                             "Retry",
		ShowSolution:                         "Show solution",
		CouldNotGenerateCrossword:            "Could not generate crossword.",
		CouldNotGenerateCrosswordTooFewWords: "Need at least two words.",
		ProbematicWords:                      "Problematic word(s): @words",
		ExtraClue:                            "Extra clue",
		CloseWindow:                          "Close window",
		SubmitAnswer:                         "Submit",
	}
}

func defaultCWA11y() cwA11y {
	return cwA11y{
		CrosswordGrid: "Crossword grid.",
		Column:        "Column",
		Row:           "Row",
		Across:        "Across",
		Down:          "Down",
		Empty:         "Empty",
		ResultFor:     "Result for: @clue",
		Correct:       "Correct",
		Wrong:         "Wrong",
		Point:         "point",
		SolutionFor:   "Solution: @solution",
		Check:         "Check",
		ShowSolution:  "Show solution",
		Retry:         "Retry",
		YourResult:    "You got @score out of @total points",
	}
}

// newCrosswordParams merges the entries of all parts into one word list, in
// record then entry order.
func newCrosswordParams(records []model.Record, title string) cwParams {
	var words []cwWord
	for _, rec := range records {
		for _, e := range rec.Crossword.Entries {
			words = append(words, cwWord{
				Orientation: string(e.Direction),
				Clue:        e.Clue,
				Answer:      e.Answer,
			})
		}
	}

	return cwParams{
		Words:           words,
		OverallFeedback: []cwRange{{From: 0, To: 100}},
		Theme: cwTheme{
			BackgroundColor:              "#222b46",
			GridColor:                    "#031928",
			CellBackgroundColor:          "#ffffff",
			CellColor:                    "#000000",
			ClueIDColor:                  "#606060",
			CellBackgroundColorHighlight: "#5c9ba9",
			CellColorHighlight:           "#031928",
			ClueIDColorHighlight:         "#e0e0e0",
		},
		Behaviour: cwBehaviour{
			ScoreWords:            true,
			EnableRetry:           true,
			EnableSolutionsButton: true,
		},
		L10n:            defaultCWL10n(),
		A11y:            defaultCWA11y(),
		TaskDescription: "<p>" + title + "</p>\n",
	}
}
