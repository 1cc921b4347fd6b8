package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/domain"
	"github.com/rpgo/savings-projector/internal/history"
)

// MaxAttempts bounds how often the profile form is shown before giving up.
const MaxAttempts = 3

// ErrTooManyAttempts is returned when every attempt produced an invalid profile.
var ErrTooManyAttempts = errors.New("too many invalid attempts")

const newDataChoice = 0

// Collector gathers a profile interactively, offering recent history first.
type Collector struct {
	Store       history.Store
	Logger      calculation.Logger
	Out         io.Writer
	MaxAttempts int
	Accessible  bool
	SkipSave    bool // leave new profiles out of history

	choose func(ctx context.Context, opts []huh.Option[int]) (int, error)
	ask    func(ctx context.Context, fields []*Field) error
}

// NewCollector returns a Collector backed by huh forms on the terminal.
func NewCollector(store history.Store) *Collector {
	c := &Collector{
		Store:       store,
		Logger:      calculation.NopLogger{},
		Out:         os.Stdout,
		MaxAttempts: MaxAttempts,
	}
	c.choose = c.chooseWithForm
	c.ask = c.askWithForm
	return c
}

// HistoryOptions lists saved entries (1-based values) followed by the
// choice to enter new data.
func HistoryOptions(entries []domain.HistoryEntry) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, len(entries)+1)
	for i, e := range entries {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d: %s", i+1, e.Profile.Summary()), i+1))
	}
	return append(opts, huh.NewOption("Enter new data", newDataChoice))
}

// Collect returns a reused history entry or a newly entered profile. New
// profiles are saved to the store unless SkipSave is set.
func (c *Collector) Collect(ctx context.Context) (domain.ProfileInput, error) {
	entries, err := c.Store.Load(ctx)
	if err != nil {
		c.Logger.Warnf("could not read history, starting fresh: %v", err)
		entries = nil
	}

	if len(entries) > 0 {
		choice, err := c.choose(ctx, HistoryOptions(entries))
		if err != nil {
			return domain.ProfileInput{}, fmt.Errorf("history selection: %w", err)
		}
		if choice != newDataChoice {
			entry, err := history.Select(entries, choice)
			if err != nil {
				return domain.ProfileInput{}, err
			}
			c.Logger.Infof("reusing saved profile %s", entry.ID)
			return entry.Profile, nil
		}
	}

	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = MaxAttempts
	}
	fields := NewFields(nil)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := c.ask(ctx, fields); err != nil {
			return domain.ProfileInput{}, fmt.Errorf("profile form: %w", err)
		}
		p, err := domain.ProfileFromFields(Values(fields))
		if err == nil {
			if c.SkipSave {
				return p, nil
			}
			if _, err := c.Store.Save(ctx, p); err != nil {
				c.Logger.Warnf("profile not saved to history: %v", err)
			}
			return p, nil
		}
		lastErr = err
		fmt.Fprintf(c.Out, "%v (attempt %d of %d)\n", err, attempt, attempts)
	}
	return domain.ProfileInput{}, fmt.Errorf("%w: %w", ErrTooManyAttempts, lastErr)
}

func (c *Collector) chooseWithForm(ctx context.Context, opts []huh.Option[int]) (int, error) {
	choice := newDataChoice
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Do you want to use any of the last saved profiles?").
			Options(opts...).
			Value(&choice),
	)).WithAccessible(c.Accessible)
	if err := form.RunWithContext(ctx); err != nil {
		return newDataChoice, err
	}
	return choice, nil
}

func (c *Collector) askWithForm(ctx context.Context, fields []*Field) error {
	inputs := make([]huh.Field, len(fields))
	for i, f := range fields {
		inputs[i] = huh.NewInput().
			Key(f.Key).
			Title(f.Title).
			Description(f.Description).
			Value(&f.Value).
			Validate(f.Validate)
	}
	return huh.NewForm(huh.NewGroup(inputs...)).WithAccessible(c.Accessible).RunWithContext(ctx)
}
