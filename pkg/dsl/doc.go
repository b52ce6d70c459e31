/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing views.

It allows developers to describe component trees using a fluent builder
instead of YAML or JSON documents. This is particularly useful for unit
testing and for hosts that already hold their component tree in memory.

Example usage:

	view := dsl.New("login").
		Form("login").
			Input("name").
			Input("password").
			Command("submit").
		End().
		Panel("footer").
			Output("copyright").
		End().
		Build()

	// view.FindByClientID("login:name") is the "name" input.
*/
package dsl
