package entity

// Source tells the client whether a payload came from a live upstream API or
// from the bundled fallback data.
type Source string

const (
	SourceAPI      Source = "api"
	SourceFallback Source = "fallback"
)

// Excuse is a single excuse line.
type Excuse struct {
	Excuse string `json:"excuse"`
	Source Source `json:"source"`
}

// JokeType classifies a joke.
type JokeType string

const (
	JokeTypeDad      JokeType = "dad"
	JokeTypeOneLiner JokeType = "oneliner"
)

// Joke is a single joke.
type Joke struct {
	Joke   string   `json:"joke"`
	Type   JokeType `json:"type"`
	Source Source   `json:"source"`
}

// Quote is the quote pinned to Date (YYYY-MM-DD).
type Quote struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
	Date   string `json:"date"`
	Source Source `json:"source"`
}

// ShowerThought is a single shower thought.
type ShowerThought struct {
	Thought string `json:"thought"`
	Source  Source `json:"source"`
}

// Holiday is an observance falling on Date (YYYY-MM-DD).
type Holiday struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Source      Source `json:"source"`
}

// Drink is a drink recipe.
type Drink struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Image        string   `json:"image,omitempty"`
	Source       Source   `json:"source"`
}

// BreakType is the length class of a timer break.
type BreakType string

const (
	BreakShort BreakType = "short"
	BreakLong  BreakType = "long"
)

// BreakSuggestion is something to do during a break of Duration minutes.
type BreakSuggestion struct {
	BreakSuggestion string    `json:"breakSuggestion"`
	Duration        int       `json:"duration"`
	Type            BreakType `json:"type"`
}

// SpinResult is the outcome of a decision spin. SelectedIndex indexes Choices,
// which holds the normalized (trimmed, de-duplicated) input.
type SpinResult struct {
	SelectedChoice string   `json:"selectedChoice"`
	SelectedIndex  int      `json:"selectedIndex"`
	SpinDuration   int      `json:"spinDuration"` // milliseconds
	Rotations      int      `json:"rotations"`
	Choices        []string `json:"choices"`
}
