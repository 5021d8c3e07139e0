package pipeline

import (
	"context"
	"sync"

	"github.com/fableworks/storyteller/internal/knowledge"
)

var (
	sharedOnce sync.Once
	sharedPipe *Pipeline
	sharedErr  error
)

// Shared returns the process-wide pipeline, constructing it on first
// call. Construction embeds the whole corpus and can take seconds, so it
// must happen at most once even when the first requests arrive
// concurrently; later calls ignore their arguments and return the same
// handle. Callers still receive the pipeline explicitly and pass it to
// their request handlers rather than reaching for this accessor per
// request.
func Shared(ctx context.Context, config Config, passages []knowledge.Passage) (*Pipeline, error) {
	return sharedBuild(func() (*Pipeline, error) {
		return New(ctx, config, passages)
	})
}

func sharedBuild(build func() (*Pipeline, error)) (*Pipeline, error) {
	sharedOnce.Do(func() {
		sharedPipe, sharedErr = build()
	})
	return sharedPipe, sharedErr
}
