package game

// Update is the outcome of a successful engine transition. It is a
// closed sum: Updated carries the next game state, Ended the terminal
// result of a hand plus the fresh lobby game that follows it.
// Rejections are reported separately as *Error with the input game
// untouched.
type Update interface {
	isUpdate()
	// UpdateEvents returns the narration events the transition produced.
	UpdateEvents() []Event
}

// Updated is a non-terminal transition result.
type Updated struct {
	Game   *Game
	Events []Event
}

func (Updated) isUpdate() {}

// UpdateEvents implements Update.
func (u Updated) UpdateEvents() []Event { return u.Events }

// Ended is produced when a hand finishes, by showdown or by everyone
// else folding. Next is the follow-up lobby game carrying the derived
// random stream and the post-hand stacks.
type Ended struct {
	Result *Result
	Next   *Game
	Events []Event
}

func (Ended) isUpdate() {}

// UpdateEvents implements Update.
func (e Ended) UpdateEvents() []Event { return e.Events }
