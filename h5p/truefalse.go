package h5p

import (
	"strconv"

	"github.com/gmixoulis/docx-to-h5p/model"
)

// tfParams is the H5P.TrueFalse 1.8 content schema. The correct value is a
// string, not a bool; that is what the runtime expects.
type tfParams struct {
	Media        media         `json:"media"`
	Correct      string        `json:"correct"`
	L10n         tfL10n        `json:"l10n"`
	Behaviour    tfBehaviour   `json:"behaviour"`
	ConfirmCheck confirmDialog `json:"confirmCheck"`
	ConfirmRetry confirmDialog `json:"confirmRetry"`
	Question     string        `json:"question"`
}

type tfL10n struct {
	TrueText             string `json:"trueText"`
	FalseText            string `json:"falseText"`
	Score                string `json:"score"`
	CheckAnswer          string `json:"checkAnswer"`
	ShowSolutionButton   string `json:"showSolutionButton"`
	TryAgain             string `json:"tryAgain"`
	WrongAnswerMessage   string `json:"wrongAnswerMessage"`
	CorrectAnswerMessage string `json:"correctAnswerMessage"`
	ScoreBarLabel        string `json:"scoreBarLabel"`
	SubmitAnswer         string `json:"submitAnswer"`
	A11yCheck            string `json:"a11yCheck"`
	A11yShowSolution     string `json:"a11yShowSolution"`
	A11yRetry            string `json:"a11yRetry"`
}

type tfBehaviour struct {
	EnableRetry           bool `json:"enableRetry"`
	EnableSolutionsButton bool `json:"enableSolutionsButton"`
	ConfirmCheckDialog    bool `json:"confirmCheckDialog"`
	ConfirmRetryDialog    bool `json:"confirmRetryDialog"`
	AutoCheck             bool `json:"autoCheck"`
	EnableCheckButton     bool `json:"enableCheckButton"`
}

func defaultTFL10n() tfL10n {
	return tfL10n{
		TrueText:             "True",
		FalseText:            "False",
		Score:                "You got @score of @total points",
		CheckAnswer:          "Check",
		ShowSolutionButton:   "Show solution",
		TryAgain:             "Retry",
		WrongAnswerMessage:   "Wrong answer",
		CorrectAnswerMessage: "Correct answer",
		ScoreBarLabel:        "You got :num out of :total points",
		SubmitAnswer:         "Submit",
		A11yCheck:            "Check the answers. The responses will be marked as correct, incorrect, or unanswered.",
		A11yShowSolution:     "Show the solution. The task will be marked with its correct solution.",
		A11yRetry:            "Retry the task. Reset all responses and start the task over again.",
	}
}

// newTrueFalseParams renders one true/false record into content params.
func newTrueFalseParams(data *model.TrueFalseData) tfParams {
	return tfParams{
		Media:   media{Type: &mediaType{}, DisableImageZooming: false},
		Correct: strconv.FormatBool(data.Correct),
		L10n:    defaultTFL10n(),
		Behaviour: tfBehaviour{
			EnableRetry:           true,
			EnableSolutionsButton: true,
			EnableCheckButton:     true,
		},
		ConfirmCheck: confirmFinish(),
		ConfirmRetry: confirmRetry(),
		Question:     "<p>" + data.Statement + "</p>\n",
	}
}
