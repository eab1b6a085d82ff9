package ports

// Prompter asks the user for recipe arguments that were not given on the command line.
//
//go:generate go run go.uber.org/mock/mockgen -source=prompter.go -destination=mocks/mock_prompter.go -package=mocks
type Prompter interface {
	// Prompt asks for the value of key.
	Prompt(key string) (string, error)
}
