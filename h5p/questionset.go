package h5p

// questionSet is the H5P.QuestionSet 1.20 content schema wrapping the
// multiple-choice and true/false packages.
type questionSet struct {
	ProgressType               string       `json:"progressType"`
	PassPercentage             int          `json:"passPercentage"`
	Questions                  []qsQuestion `json:"questions"`
	IntroPage                  qsIntroPage  `json:"introPage"`
	Texts                      qsTexts      `json:"texts"`
	EndGame                    qsEndGame    `json:"endGame"`
	Override                   qsOverride   `json:"override"`
	DisableBackwardsNavigation bool         `json:"disableBackwardsNavigation"`
	RandomQuestions            bool         `json:"randomQuestions"`
}

type qsQuestion struct {
	Params       any        `json:"params"`
	Library      string     `json:"library"`
	SubContentID string     `json:"subContentId"`
	Metadata     qsMetadata `json:"metadata"`
}

type qsMetadata struct {
	Title       string `json:"title"`
	License     string `json:"license"`
	ContentType string `json:"contentType"`
}

type qsIntroPage struct {
	ShowIntroPage   bool   `json:"showIntroPage"`
	StartButtonText string `json:"startButtonText"`
	Introduction    string `json:"introduction"`
}

type qsTexts struct {
	PrevButton          string `json:"prevButton"`
	NextButton          string `json:"nextButton"`
	FinishButton        string `json:"finishButton"`
	TextualProgress     string `json:"textualProgress"`
	QuestionLabel       string `json:"questionLabel"`
	JumpToQuestion      string `json:"jumpToQuestion"`
	ReadSpeakerProgress string `json:"readSpeakerProgress"`
	UnansweredText      string `json:"unansweredText"`
	AnsweredText        string `json:"answeredText"`
	CurrentQuestionText string `json:"currentQuestionText"`
	SubmitButton        string `json:"submitButton"`
	NavigationLabel     string `json:"navigationLabel"`
}

type qsEndGame struct {
	ShowResultPage     bool            `json:"showResultPage"`
	SolutionButtonText string          `json:"solutionButtonText"`
	FinishButtonText   string          `json:"finishButtonText"`
	ShowAnimations     bool            `json:"showAnimations"`
	Skippable          bool            `json:"skippable"`
	SkipButtonText     string          `json:"skipButtonText"`
	Message            string          `json:"message"`
	RetryButtonText    string          `json:"retryButtonText"`
	NoResultMessage    string          `json:"noResultMessage"`
	OverallFeedback    []feedbackRange `json:"overallFeedback"`
	ShowSolutionButton bool            `json:"showSolutionButton"`
	ShowRetryButton    bool            `json:"showRetryButton"`
	ScoreBarLabel      string          `json:"scoreBarLabel"`
	SubmitButtonText   string          `json:"submitButtonText"`
}

type qsOverride struct {
	ShowSolutionButton string `json:"showSolutionButton"`
	RetryButton        string `json:"retryButton"`
	CheckButton        bool   `json:"checkButton"`
}

// newQuestionSet wraps rendered questions in the quiz shell.
func newQuestionSet(questions []qsQuestion, passPercentage int) questionSet {
	return questionSet{
		ProgressType:   "dots",
		PassPercentage: passPercentage,
		Questions:      questions,
		IntroPage: qsIntroPage{
			ShowIntroPage:   false,
			StartButtonText: "Start Quiz",
			Introduction:    "",
		},
		Texts: qsTexts{
			PrevButton:          "Previous",
			NextButton:          "Next",
			FinishButton:        "Finish",
			TextualProgress:     "Question: @current of @total questions",
			QuestionLabel:       "Question",
			JumpToQuestion:      "Jump to question %d",
			ReadSpeakerProgress: "Question @current of @total",
			UnansweredText:      "Unanswered",
			AnsweredText:        "Answered",
			CurrentQuestionText: "Current question",
			SubmitButton:        "Submit",
			NavigationLabel:     "Questions",
		},
		EndGame: qsEndGame{
			ShowResultPage:     true,
			SolutionButtonText: "Show solution",
			FinishButtonText:   "Finish",
			ShowAnimations:     false,
			Skippable:          false,
			SkipButtonText:     "Skip video",
			Message:            "Your result:",
			RetryButtonText:    "Retry",
			NoResultMessage:    "Finished",
			OverallFeedback: []feedbackRange{
				{From: 0, To: 100, Feedback: "You got @score points of @total possible."},
			},
			ShowSolutionButton: true,
			ShowRetryButton:    true,
			ScoreBarLabel:      "You got @finals out of @totals points",
			SubmitButtonText:   "Submit",
		},
		Override: qsOverride{
			ShowSolutionButton: "off",
			RetryButton:        "off",
			CheckButton:        true,
		},
		DisableBackwardsNavigation: false,
		RandomQuestions:            false,
	}
}
