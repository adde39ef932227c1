package intent

import "fmt"

type Intent struct {
	Tag       string   `json:"tag" validate:"required"`
	Keywords  []string `json:"keywords"`
	Responses []string `json:"responses"`
}

type Collection struct {
	Intents []Intent `json:"intents"`
}

// StorageError reports a failure to read, parse or write the intents file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("intent storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Defaults is the collection written on first run.
func Defaults() Collection {
	return Collection{
		Intents: []Intent{
			{
				Tag:       "greet",
				Keywords:  []string{"hello", "hi", "hey", "yo", "sup"},
				Responses: []string{"Hi! 👋", "Hey there!", "Hello!"},
			},
			{
				Tag:       "bye",
				Keywords:  []string{"bye", "goodbye", "see ya", "cya"},
				Responses: []string{"Bye! 👋", "See you later.", "Take care!"},
			},
			{
				Tag:       "thanks",
				Keywords:  []string{"thanks", "thank you", "thx"},
				Responses: []string{"You're welcome!", "Anytime!", "No problem."},
			},
			{
				Tag:       "name",
				Keywords:  []string{"your name", "who are you", "what are you"},
				Responses: []string{"I'm a tiny console chatbot. 🤖"},
			},
			{
				Tag:       "help",
				Keywords:  []string{"help", "commands"},
				Responses: []string{"Type anything! Commands: /help, /history, /train, /intents, /exit"},
			},
		},
	}
}
