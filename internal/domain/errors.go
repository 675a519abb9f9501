package domain

import "errors"

var (
	// ErrStorylineNotFound signals a missing storyline document.
	ErrStorylineNotFound = errors.New("storyline not found")
	// ErrQuerySyntax signals a search query rejected by the engine's parser.
	ErrQuerySyntax = errors.New("query syntax error")
)
