package checks

// Result is the outcome of one verification check.
type Result struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

func pass(name, msg string) Result { return Result{Name: name, Passed: true, Message: msg} }

func fail(name, msg string) Result { return Result{Name: name, Message: msg} }
