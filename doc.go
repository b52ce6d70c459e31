/*
Package searchexpr resolves search expressions against a tree of UI components.

A search expression addresses one or more components relative to a source
component: "name" finds a sibling in the same naming container,
"@form:submit" climbs to the enclosing form and looks for submit inside it,
":search:q" starts at the view root. Several expressions can be combined in
one string, separated by commas or spaces.

# Concept

A View is a component tree. Some components are naming containers (forms,
composites, tables): they open a namespace, and their ids prefix the client
ids of everything inside them. An expression is a list of commands joined
by the naming separator (default ':'); each command is either a literal id
or a keyword starting with '@'. Each command is resolved relative to the
result of the previous one, and a command yielding several components fans
out into the remaining commands.

Keywords are pluggable. The built-in set covers @this, @parent,
@child(n), @composite, @form, @namingcontainer, @next, @previous, @root,
@id(x), @none and @all. Passthrough keywords (@none, @all) are returned
verbatim when resolving client ids, for the client to interpret.

# Usage

	view := dsl.New("page").
		Form("login").Input("name").Command("submit").End().
		Build()

	h, err := searchexpr.New("")
	if err != nil {
		log.Fatal(err)
	}

	ctx := domain.NewSearchContext(view, view.FindByClientID("login:submit"))
	ids, err := h.ResolveClientIDs(ctx, "name @form @all")
	// ids: [login:name login @all]

Views can also be loaded by ID from a directory of Markdown, YAML or JSON
documents (see New) or from any ports.ViewLoader (see WithLoader).
*/
package searchexpr
