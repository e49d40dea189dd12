package utils

import "go.uber.org/dig"

// MustProvide registers constructor in container panicking on error, which only occurs on
// malformed constructor signatures
func MustProvide(c *dig.Container, constructor interface{}, opts ...dig.ProvideOption) {
	if err := c.Provide(constructor, opts...); err != nil {
		panic(err)
	}
}

// MustInvoke calls function with dependencies from container panicking on error
func MustInvoke(c *dig.Container, function interface{}, opts ...dig.InvokeOption) {
	if err := c.Invoke(function, opts...); err != nil {
		panic(err)
	}
}
