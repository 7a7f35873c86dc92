package output

type Options struct {
	PrintRequestHeader bool
	PrintRequestBody   bool

	EnableFormat bool
	EnableColor  bool
}
