package content

import (
	"fmt"
	"sort"
	"strings"
)

// PathNotFoundError indicates a dotted path that does not exist in the tree.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// TitleNotFoundError indicates a title selector with no matching entry.
type TitleNotFoundError struct {
	Title string
}

func (e *TitleNotFoundError) Error() string {
	return fmt.Sprintf("no block or field titled '%s'", e.Title)
}

// AmbiguousTitleError indicates a title selector matching more than one
// entry. Matches carries every colliding path so callers can disambiguate;
// resolution deliberately refuses to guess.
type AmbiguousTitleError struct {
	Title   string
	Matches []string
}

func (e *AmbiguousTitleError) Error() string {
	matches := append([]string(nil), e.Matches...)
	sort.Strings(matches)
	return fmt.Sprintf("title '%s' is ambiguous: matches %s", e.Title, strings.Join(matches, ", "))
}
