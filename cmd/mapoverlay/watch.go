package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"simple-directions/internal/directions"
	"simple-directions/internal/overlay"
)

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Read \"origin | destination\" lines and print each route as it arrives",
		Long: `watch reads one query per line from standard input. A new line supersedes
the query still in flight, so only the most recent route is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.newService()
			if err != nil {
				return err
			}

			session := overlay.NewSession(svc, c.logger)
			defer session.Close()

			return watch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), session)
		},
	}
}

// watch submits every query read from in and prints results until in is exhausted
// and the last query has completed.
func watch(ctx context.Context, in io.Reader, out, errOut io.Writer, session *overlay.Session) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func(lines chan<- string) {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}(lines)

	queries := (<-chan string)(lines)
	var pending uuid.UUID
	for {
		if queries == nil && pending == uuid.Nil {
			select {
			case err := <-scanErr:
				if err != nil {
					return fmt.Errorf("failed to read queries: %w", err)
				}
			default:
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-queries:
			if !ok {
				queries = nil
				continue
			}
			origin, destination, ok := parseQuery(line)
			if !ok {
				if strings.TrimSpace(line) != "" {
					printError(errOut, fmt.Errorf("expected \"origin | destination\", got %q", line))
				}
				continue
			}
			id, err := session.Submit(origin, destination)
			if err != nil {
				return err
			}
			pending = id

		case res, ok := <-session.Results():
			if !ok {
				return overlay.ErrSessionClosed
			}
			if res.ID == pending {
				pending = uuid.Nil
			}
			printResult(out, errOut, res)
		}
	}
}

func printResult(out, errOut io.Writer, res overlay.Result) {
	header := res.Origin + " → " + res.Destination
	switch {
	case errors.Is(res.Err, directions.ErrEmptyInput):
		fmt.Fprintln(out, headerStyle.Render(header))
		fmt.Fprintln(out, infoStyle.Render("no directions returned"))
	case res.Err != nil:
		printError(errOut, fmt.Errorf("%s: %w", header, res.Err))
	default:
		printRoute(out, header, res.Route)
	}
}

// parseQuery splits "origin | destination".
func parseQuery(line string) (string, string, bool) {
	origin, destination, found := strings.Cut(line, "|")
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if !found || origin == "" || destination == "" {
		return "", "", false
	}
	return origin, destination, true
}
