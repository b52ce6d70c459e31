/*
Package ports defines the driven ports (interfaces) of the search expression resolver.

These interfaces decouple the resolution algorithm from keyword semantics and
from the places views come from, allowing the resolver to work with various
keyword sets and storage backends.

# Key Interfaces

  - KeywordResolver: Claims and resolves "@" keywords (e.g., @form, @parent).
  - ViewLoader: Retrieves raw view documents (e.g., from Loam or Memory).
  - ViewStore: Persists compiled views submitted by clients.
*/
package ports
