package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/useray/internal/common"
	"github.com/dmitrijs2005/useray/internal/models"
)

var errUsage = errors.New("usage")

// prompt reads a field, showing the question only to a human at a terminal.
func (a *App) prompt(question string) (string, error) {
	if !a.interactive {
		question = ""
	}
	return GetSimpleText(a.reader, question, a.out)
}

func (a *App) confirm(question string) (bool, error) {
	if !a.interactive {
		return true, nil
	}
	return Confirm(a.reader, question, a.out)
}

func (a *App) printTable(clients []*models.Client) {
	if len(clients) == 0 {
		fmt.Fprintln(a.out, "No clients")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLEVEL\tEND DATE\tDAYS LEFT\tSTATUS")
	for _, c := range clients {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%d\t%s\n",
			c.ID, c.Name, c.Level, c.EndDate.Local().Format("2006-01-02"), c.DaysLeft(), status(c))
	}
	_ = tw.Flush()
}

func status(c *models.Client) string {
	switch {
	case c.IsRevoked():
		return "revoked"
	case c.IsExpired:
		return "expired"
	}
	return "active"
}

func (a *App) argID(ctx context.Context, op string, args []string) (string, error) {
	if len(args) == 0 {
		return "", a.report(ctx, op, fmt.Errorf("%w: %s <id>", errUsage, op))
	}
	return args[0], nil
}

func (a *App) List(ctx context.Context) error {
	a.printTable(a.engine.List())
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.argID(ctx, "show", args)
	if err != nil {
		return err
	}
	c, ok := a.engine.Get(id)
	if !ok {
		return a.report(ctx, "show", fmt.Errorf("%w: client %s", common.ErrorNotFound, id))
	}
	fmt.Fprintln(a.out, c)
	fmt.Fprintf(a.out, "Duration: %d days\n", int(c.Duration/models.OneDay))
	fmt.Fprintf(a.out, "Days left: %d\n", c.DaysLeft())
	fmt.Fprintf(a.out, "Status: %s\n", status(c))
	fmt.Fprintf(a.out, "Access granted: %t\n", a.engine.Enforced(id))
	return nil
}

func (a *App) Add(ctx context.Context) error {
	name, err := a.prompt("Name")
	if err != nil {
		return a.report(ctx, "add", err)
	}
	if name == "" {
		name = models.DefaultName
	}

	levelStr, err := a.prompt(fmt.Sprintf("Level [%d]", a.config.DefaultLevel))
	if err != nil {
		return a.report(ctx, "add", err)
	}
	level := a.config.DefaultLevel
	if levelStr != "" {
		if level, err = strconv.Atoi(levelStr); err != nil {
			return a.report(ctx, "add", fmt.Errorf("%w: level %q is not a number", common.ErrorValidation, levelStr))
		}
	}

	durStr, err := a.prompt("Duration: 1d, 1w, 1m or 3m [default]")
	if err != nil {
		return a.report(ctx, "add", err)
	}
	duration, err := ParseDurationChoice(durStr, a.config.DefaultDuration)
	if err != nil {
		return a.report(ctx, "add", err)
	}

	id, err := a.prompt("Client id (empty to generate)")
	if err != nil {
		return a.report(ctx, "add", err)
	}
	if id == "" {
		if id, err = models.GenerateID(); err != nil {
			return a.report(ctx, "add", err)
		}
	}

	c := models.NewClient(name, id, timeNow(), duration, level)
	if err := a.engine.AddClient(ctx, c); err != nil {
		return a.report(ctx, "add", err)
	}
	fmt.Fprintf(a.out, "Added %s, valid until %s\n", c.Preview(), c.EndDate.Local().Format("2006-01-02"))
	return nil
}

func (a *App) Extend(ctx context.Context, args []string) error {
	id, err := a.argID(ctx, "extend", args)
	if err != nil {
		return err
	}

	var choice string
	if len(args) > 1 {
		choice = args[1]
	} else if choice, err = a.prompt("Extend by: 1d, 1w, 1m or 3m"); err != nil {
		return a.report(ctx, "extend", err)
	}
	if choice == "" {
		return a.report(ctx, "extend", fmt.Errorf("%w: no duration given", common.ErrorValidation))
	}
	delta, err := ParseDurationChoice(choice, 0)
	if err != nil {
		return a.report(ctx, "extend", err)
	}

	if err := a.engine.ExtendClient(ctx, id, delta); err != nil {
		return a.report(ctx, "extend", err)
	}
	c, _ := a.engine.Get(id)
	fmt.Fprintf(a.out, "Extended %s, valid until %s\n", c.Preview(), c.EndDate.Local().Format("2006-01-02"))
	return nil
}

func (a *App) Revoke(ctx context.Context, args []string) error {
	id, err := a.argID(ctx, "revoke", args)
	if err != nil {
		return err
	}
	ok, err := a.confirm("Revoke " + id + "?")
	if err != nil {
		return a.report(ctx, "revoke", err)
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.engine.RevokeClient(ctx, id); err != nil {
		return a.report(ctx, "revoke", err)
	}
	fmt.Fprintln(a.out, "Revoked", id)
	return nil
}

func (a *App) Reinstate(ctx context.Context, args []string) error {
	id, err := a.argID(ctx, "reinstate", args)
	if err != nil {
		return err
	}
	if err := a.engine.ReinstateClient(ctx, id); err != nil {
		return a.report(ctx, "reinstate", err)
	}
	c, _ := a.engine.Get(id)
	fmt.Fprintf(a.out, "Reinstated %s (%s)\n", c.Preview(), status(c))
	return nil
}

// Edit prompts for each editable field, showing the current value; an empty
// answer keeps it.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.argID(ctx, "edit", args)
	if err != nil {
		return err
	}
	c, ok := a.engine.Get(id)
	if !ok {
		return a.report(ctx, "edit", fmt.Errorf("%w: client %s", common.ErrorNotFound, id))
	}

	name, err := a.prompt(fmt.Sprintf("Name [%s]", c.Name))
	if err != nil {
		return a.report(ctx, "edit", err)
	}
	if name != "" {
		c.Name = name
	}

	levelStr, err := a.prompt(fmt.Sprintf("Level [%d]", c.Level))
	if err != nil {
		return a.report(ctx, "edit", err)
	}
	if levelStr != "" {
		if c.Level, err = strconv.Atoi(levelStr); err != nil {
			return a.report(ctx, "edit", fmt.Errorf("%w: level %q is not a number", common.ErrorValidation, levelStr))
		}
	}

	startStr, err := a.prompt(fmt.Sprintf("Start date YYYY-MM-DD [%s]", c.StartDate.Local().Format("2006-01-02")))
	if err != nil {
		return a.report(ctx, "edit", err)
	}
	if startStr != "" {
		if c.StartDate, err = models.ParseDate(startStr); err != nil {
			return a.report(ctx, "edit", err)
		}
	}

	if err := a.engine.UpdateClient(ctx, id, c); err != nil {
		return a.report(ctx, "edit", err)
	}
	fmt.Fprintln(a.out, "Updated", c.Preview())
	return nil
}

func (a *App) Expired(ctx context.Context) error {
	a.printTable(a.engine.ListExpired(ctx))
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	expired := a.engine.ListExpired(ctx)
	if len(expired) == 0 {
		fmt.Fprintln(a.out, "No expired clients")
		return nil
	}
	ok, err := a.confirm(fmt.Sprintf("Permanently delete %d expired client(s)?", len(expired)))
	if err != nil {
		return a.report(ctx, "clear", err)
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	n, err := a.engine.ClearExpired(ctx)
	if err != nil {
		return a.report(ctx, "clear", err)
	}
	fmt.Fprintf(a.out, "Deleted %d expired client(s)\n", n)
	return nil
}
