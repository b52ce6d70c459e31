/*
Package keywords provides the built-in "@" keyword resolvers.

Each keyword is a *Keyword value: a name, an optional argument
(@child(2), @id(name)), passthrough/leaf flags and a function computing
the designated components. Defaults returns them in their lookup order,
ready to seed a registry.Registry:

	reg := registry.NewRegistry(keywords.Defaults()...)
	reg.Prepend(&keywords.Keyword{Name: "form", Fn: myForm}) // override @form
*/
package keywords
