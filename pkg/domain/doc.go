/*
Package domain contains the core models of the search expression resolver.

It defines the component tree that expressions are resolved against, the
per-resolution context and the errors surfaced by resolution. This package
is kept pure and free of external dependencies like I/O or persistence,
following Hexagonal Architecture principles.

# Key Entities

  - Component: An addressable node of a view tree (form, input, panel...).
  - View: A request-scoped tree of components with its separator character.
  - SearchContext: The anchor component, the view and the active hints.
  - NotFoundError / InvalidExpressionError: The two failure modes of resolution.
*/
package domain
