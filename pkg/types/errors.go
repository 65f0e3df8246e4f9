package types

import "fmt"

// FetchError reports a market or news data-source failure. A FetchError from
// the shared fetch step aborts the entire cycle for all agents, unlike
// per-agent failures which are isolated into CycleResults.
type FetchError struct {
	Source string // "markets" or "news"
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s fetch failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
