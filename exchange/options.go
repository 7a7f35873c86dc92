package exchange

type Options struct {
	Auth AuthOptions
}

type AuthOptions struct {
	Enabled  bool
	UserName string
	Password string
}
