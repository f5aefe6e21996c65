package prompt

import (
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/aisw/internal/errors"
)

// Fuzzy opens a full-screen fuzzy finder over options. preview, when not
// nil, renders the side pane for the highlighted option.
// Returns errors.ErrAborted when the user dismisses the finder.
func Fuzzy(options []Option, preview func(i int) string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNoOptions
	}

	finderOpts := []fuzzyfinder.Option{fuzzyfinder.WithPromptString("> ")}
	if preview != nil {
		finderOpts = append(finderOpts, fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return preview(i)
		}))
	}

	idx, err := fuzzyfinder.Find(options, func(i int) string {
		if options[i].Detail == "" {
			return options[i].Label
		}
		return options[i].Label + "  " + options[i].Detail
	}, finderOpts...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return 0, errors.ErrAborted
		}
		return 0, errors.Wrap(err, "interactive selection failed")
	}
	return idx, nil
}
