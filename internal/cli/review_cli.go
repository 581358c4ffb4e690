package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/at-ishikawa/retention/internal/srs"
)

var errEnd = errors.New("end")

// ReviewCLI walks an owner through their due items, asking for a quality grade per item.
type ReviewCLI struct {
	backend      Backend
	printer      *Printer
	ownerID      string
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	now          func() time.Time
}

// NewReviewCLI creates a ReviewCLI reading grades from stdin.
func NewReviewCLI(backend Backend, ownerID string, stdin io.Reader, stdout io.Writer) *ReviewCLI {
	return &ReviewCLI{
		backend:      backend,
		printer:      NewPrinter(stdout),
		ownerID:      ownerID,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		now:          time.Now,
	}
}

// Run reviews items until nothing is due, the user quits or an interrupt arrives.
func (cli *ReviewCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for ctx.Err() == nil {
			if err := cli.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	// On interrupt the goroutine may stay blocked in ReadString; it is abandoned and exits with the process.
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("review session > %w", err)
		}
	}
	return nil
}

// Session reviews the most overdue item. It returns errEnd when there is nothing left.
func (cli *ReviewCLI) Session(ctx context.Context) error {
	due, err := cli.backend.DueItems(ctx, cli.ownerID, 1)
	if err != nil {
		return fmt.Errorf("backend.DueItems(%s) > %w", cli.ownerID, err)
	}
	if len(due) == 0 {
		cli.printer.green.Fprintf(cli.stdoutWriter, "Nothing due for %s\n", cli.ownerID)
		return errEnd
	}
	it := due[0]

	prompt := it.ContentRef
	if prompt == "" {
		prompt = it.ID
	}
	cli.printer.bold.Fprintf(cli.stdoutWriter, "%s\n", prompt)

	shownAt := cli.now()
	quality, err := cli.readQuality()
	if err != nil {
		return err
	}

	result, err := cli.backend.ReportQuality(ctx, srs.QualityReport{
		ItemID:          it.ID,
		OwnerID:         cli.ownerID,
		Quality:         quality,
		ResponseLatency: cli.now().Sub(shownAt),
		Timestamp:       cli.now(),
	})
	if err != nil {
		return fmt.Errorf("backend.ReportQuality(%s) > %w", it.ID, err)
	}
	cli.printer.PrintSchedule(quality, result)
	return nil
}

// readQuality prompts until a grade in [0, 5] or "q" is entered.
func (cli *ReviewCLI) readQuality() (int, error) {
	for {
		fmt.Fprint(cli.stdoutWriter, "Quality (0-5, q to quit): ")
		line, err := cli.stdinReader.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return 0, errEnd
			}
			return 0, fmt.Errorf("stdinReader.ReadString > %w", err)
		}

		if line == "q" {
			return 0, errEnd
		}
		quality, convErr := strconv.Atoi(line)
		if convErr == nil && srs.ValidateQuality(quality) == nil {
			return quality, nil
		}
		cli.printer.red.Fprintf(cli.stdoutWriter, "%q is not a grade between %d and %d\n", line, srs.MinQuality, srs.MaxQuality)
		if err != nil {
			return 0, errEnd
		}
	}
}
