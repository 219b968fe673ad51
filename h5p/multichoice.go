package h5p

import "github.com/gmixoulis/docx-to-h5p/model"

// mcParams is the H5P.MultiChoice 1.16 content schema.
type mcParams struct {
	Answers         []mcAnswer      `json:"answers"`
	UI              mcUI            `json:"UI"`
	Question        string          `json:"question"`
	Behaviour       mcBehaviour     `json:"behaviour"`
	ConfirmCheck    confirmDialog   `json:"confirmCheck"`
	ConfirmRetry    confirmDialog   `json:"confirmRetry"`
	OverallFeedback []feedbackRange `json:"overallFeedback"`
	Media           *media          `json:"media,omitempty"`
}

type mcAnswer struct {
	Correct         bool            `json:"correct"`
	Text            string          `json:"text"`
	TipsAndFeedback tipsAndFeedback `json:"tipsAndFeedback"`
}

type tipsAndFeedback struct {
	Tip               string `json:"tip"`
	ChosenFeedback    string `json:"chosenFeedback"`
	NotChosenFeedback string `json:"notChosenFeedback"`
}

type mcUI struct {
	ShowSolutionButton string `json:"showSolutionButton"`
	TryAgainButton     string `json:"tryAgainButton"`
	CheckAnswerButton  string `json:"checkAnswerButton"`
	TipsLabel          string `json:"tipsLabel"`
	ScoreBarLabel      string `json:"scoreBarLabel"`
	TipAvailable       string `json:"tipAvailable"`
	FeedbackAvailable  string `json:"feedbackAvailable"`
	ReadFeedback       string `json:"readFeedback"`
	WrongAnswer        string `json:"wrongAnswer"`
	CorrectAnswer      string `json:"correctAnswer"`
	ShouldCheck        string `json:"shouldCheck"`
	ShouldNotCheck     string `json:"shouldNotCheck"`
	NoInput            string `json:"noInput"`
	SubmitAnswerButton string `json:"submitAnswerButton"`
	A11yCheck          string `json:"a11yCheck"`
	A11yShowSolution   string `json:"a11yShowSolution"`
	A11yRetry          string `json:"a11yRetry"`
}

type mcBehaviour struct {
	EnableRetry                bool   `json:"enableRetry"`
	EnableSolutionsButton      bool   `json:"enableSolutionsButton"`
	SinglePoint                bool   `json:"singlePoint"`
	RandomAnswers              bool   `json:"randomAnswers"`
	ShowSolutionsRequiresInput bool   `json:"showSolutionsRequiresInput"`
	Type                       string `json:"type"`
	ConfirmCheckDialog         bool   `json:"confirmCheckDialog"`
	ConfirmRetryDialog         bool   `json:"confirmRetryDialog"`
	AutoCheck                  bool   `json:"autoCheck"`
	PassPercentage             int    `json:"passPercentage"`
	ShowScorePoints            bool   `json:"showScorePoints"`
	EnableCheckButton          bool   `json:"enableCheckButton"`
}

type confirmDialog struct {
	Header       string `json:"header"`
	Body         string `json:"body"`
	CancelLabel  string `json:"cancelLabel"`
	ConfirmLabel string `json:"confirmLabel"`
}

type feedbackRange struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Feedback string `json:"feedback"`
}

func defaultMCUI() mcUI {
	return mcUI{
		ShowSolutionButton: "Show solution",
		TryAgainButton:     "Retry",
		CheckAnswerButton:  "Check",
		TipsLabel:          "Show tip",
		ScoreBarLabel:      "You got :num out of :total points",
		TipAvailable:       "Tip available",
		FeedbackAvailable:  "Feedback available",
		ReadFeedback:       "Read feedback",
		WrongAnswer:        "Wrong answer",
		CorrectAnswer:      "Correct answer",
		ShouldCheck:        "Should have been checked",
		ShouldNotCheck:     "Should not have been checked",
		NoInput:            "Please answer before viewing the solution",
		SubmitAnswerButton: "Submit",
		A11yCheck:          "Check the answers.",
		A11yShowSolution:   "Show the solution.",
		A11yRetry:          "Retry the task.",
	}
}

func confirmFinish() confirmDialog {
	return confirmDialog{
		Header:       "Finish ?",
		Body:         "Are you sure you wish to finish ?",
		CancelLabel:  "Cancel",
		ConfirmLabel: "Finish",
	}
}

func confirmRetry() confirmDialog {
	return confirmDialog{
		Header:       "Retry ?",
		Body:         "Are you sure you wish to retry ?",
		CancelLabel:  "Cancel",
		ConfirmLabel: "Confirm",
	}
}

// newMultiChoiceParams renders one multiple-choice record into content
// params. med carries the question's image wrapper, or the bare zoom flag
// when it has none.
func newMultiChoiceParams(data *model.MultipleChoiceData, med *media) mcParams {
	answers := make([]mcAnswer, len(data.Options))
	for i, opt := range data.Options {
		answers[i] = mcAnswer{
			Correct: opt.Correct,
			Text:    "<div>" + opt.Text + "</div>\n",
		}
	}

	return mcParams{
		Answers:  answers,
		UI:       defaultMCUI(),
		Question: "<p>" + data.Stem + "</p>\n",
		Behaviour: mcBehaviour{
			EnableRetry:                true,
			EnableSolutionsButton:      true,
			SinglePoint:                true,
			RandomAnswers:              true,
			ShowSolutionsRequiresInput: true,
			Type:                       "auto",
			PassPercentage:             100,
			ShowScorePoints:            true,
			EnableCheckButton:          true,
		},
		ConfirmCheck: confirmFinish(),
		ConfirmRetry: confirmRetry(),
		OverallFeedback: []feedbackRange{
			{From: 0, To: 0, Feedback: "Wrong"},
			{From: 1, To: 99, Feedback: "Almost!"},
			{From: 100, To: 100, Feedback: "Correct!"},
		},
		Media: med,
	}
}
