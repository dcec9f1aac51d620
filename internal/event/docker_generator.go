package event

import (
	"context"
	"errors"

	"github.com/auto-dns/docker-event-notifier/internal/domain"
	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/rs/zerolog"
)

type DockerGenerator struct {
	logger zerolog.Logger
	cli    dockerClient
}

func NewDockerGenerator(cli dockerClient, logger zerolog.Logger) *DockerGenerator {
	return &DockerGenerator{
		logger: logger,
		cli:    cli,
	}
}

// Subscribe opens one subscription to the Docker event stream. Container start
// and die events are delivered on the first channel in arrival order. The
// subscription ends when ctx is cancelled (both channels are closed, no error)
// or when the stream fails, in which case exactly one error is sent before
// both channels are closed. Subscribe never resubscribes on its own.
func (dg *DockerGenerator) Subscribe(ctx context.Context) (<-chan domain.ContainerEvent, <-chan error) {
	out := make(chan domain.ContainerEvent)
	errOut := make(chan error, 1)

	filterArgs := filters.NewArgs()
	filterArgs.Add("type", string(events.ContainerEventType))
	filterArgs.Add("event", string(events.ActionStart))
	filterArgs.Add("event", string(events.ActionDie))

	options := events.ListOptions{
		Filters: filterArgs,
	}

	go func() {
		defer close(errOut)
		defer close(out)

		eventCh, errCh := dg.cli.Events(ctx, options)

		fail := func(err error) {
			if ctx.Err() != nil {
				return
			}
			errOut <- err
		}

		for {
			select {
			case <-ctx.Done():
				dg.logger.Debug().Msg("Docker event subscription cancelled by context")
				return
			case err, ok := <-errCh:
				if !ok {
					fail(ErrStreamClosed)
					return
				}
				if err == nil {
					continue
				}
				fail(err)
				return
			case msg, ok := <-eventCh:
				if !ok {
					fail(ErrStreamClosed)
					return
				}

				ev, convErr := fromEventsMessage(msg)
				if convErr != nil {
					var unsupported *UnsupportedEventTypeError
					if errors.As(convErr, &unsupported) {
						dg.logger.Debug().Err(convErr).Msg("Ignoring docker event")
					} else {
						dg.logger.Warn().Err(convErr).Msg("Dropping malformed docker event")
					}
					continue
				}

				dg.logger.Debug().Msgf("Received Docker event: %+v", ev)
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, errOut
}
