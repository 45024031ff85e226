// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command habitctl checks off habits from a terminal against the same
// database as the server. It takes the server's flags and environment.
//
//	habitctl list
//	habitctl show [habit-id] [prev|next ...]
//	habitctl toggle person1|person2 [habit-id]
//	habitctl edit YYYY-MM-DD person1|person2 [habit-id]
//	habitctl create NAME PERSON1 [PERSON2] [ICON]
//	habitctl delete habit-id
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	_ "time/tzdata"

	"github.com/danielhkuo/habitpair/cliparse"
	"github.com/danielhkuo/habitpair/db"
	"github.com/danielhkuo/habitpair/models"
	"github.com/danielhkuo/habitpair/store"
	"github.com/danielhkuo/habitpair/streak"
	"github.com/danielhkuo/habitpair/view"
)

var errUsage = errors.New("usage: habitctl [flags] list|show|toggle|edit|create|delete ...")

func main() {
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(2)
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	if err := db.CreateSchema(conn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctl := view.NewController(store.New(conn),
		view.WithLocation(cfg.Location),
		view.WithDefaultHabit(store.DefaultHabit{
			Person1Name: cfg.Person1Name,
			Person2Name: cfg.Person2Name,
		}),
	)

	if err := run(ctx, ctl, cfg.Args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// run loads the habit list and executes one command against ctl
func run(ctx context.Context, ctl *view.Controller, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	if err := ctl.Load(ctx); err != nil {
		return err
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "list":
		return list(ctl, w)
	case "show":
		return show(ctx, ctl, args, w)
	case "toggle":
		return toggle(ctx, ctl, args, w)
	case "edit":
		return edit(ctx, ctl, args, w)
	case "create":
		return create(ctx, ctl, args, w)
	case "delete":
		return remove(ctx, ctl, args, w)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func list(ctl *view.Controller, w io.Writer) error {
	snap := ctl.Render()
	for _, h := range snap.Habits {
		marker := " "
		if h.ID == snap.ActiveHabitID {
			marker = "*"
		}
		people := h.Person1Name
		if p2, ok := h.Mode.Person2Name(); ok {
			people += " & " + p2
		}
		fmt.Fprintf(w, "%s %s %s (%s) %s\n", marker, h.Icon, h.Name, people, h.ID)
	}
	return nil
}

// selectArg selects the habit named by args[i] when present
func selectArg(ctx context.Context, ctl *view.Controller, args []string, i int) error {
	if len(args) <= i {
		return nil
	}
	return ctl.Select(ctx, args[i])
}

func show(ctx context.Context, ctl *view.Controller, args []string, w io.Writer) error {
	for _, arg := range args {
		switch dir := streak.Direction(arg); dir {
		case streak.Prev, streak.Next:
			if err := ctl.ChangeMonth(dir); err != nil {
				return err
			}
		default:
			if err := ctl.Select(ctx, arg); err != nil {
				return err
			}
		}
	}

	snap := ctl.Render()
	if snap.Active == nil {
		return view.ErrNoActiveHabit
	}
	writeHabit(w, snap.Active)
	return nil
}

func writeHabit(w io.Writer, v *view.HabitView) {
	fmt.Fprintf(w, "%s %s - %s\n", v.Habit.Icon, v.Habit.Name, v.MonthLabel)
	for _, p := range v.People {
		today := " "
		if p.CompletedToday {
			today = "x"
		}
		fmt.Fprintf(w, "  [%s] %-12s streak %d, %d/%d this month\n", today, p.Name, p.Streak, p.MonthCount, len(p.Days))

		var row strings.Builder
		for _, d := range p.Days {
			if d.Completed {
				row.WriteString("#")
			} else {
				row.WriteString(".")
			}
			if d.Day%7 == 0 {
				row.WriteString(" ")
			}
		}
		fmt.Fprintf(w, "      %s\n", strings.TrimSpace(row.String()))
	}
}

func toggle(ctx context.Context, ctl *view.Controller, args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: toggle person1|person2 [habit-id]", errUsage)
	}
	if err := selectArg(ctx, ctl, args, 1); err != nil {
		return err
	}

	person := models.Person(args[0])
	completed, err := ctl.Toggle(ctx, person)
	if err != nil {
		return err
	}
	writeToggle(w, ctl.Render().Active, person, "today", completed)
	return nil
}

func edit(ctx context.Context, ctl *view.Controller, args []string, w io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: edit YYYY-MM-DD person1|person2 [habit-id]", errUsage)
	}
	if err := selectArg(ctx, ctl, args, 2); err != nil {
		return err
	}
	if err := ctl.OpenEdit(); err != nil {
		return err
	}
	defer ctl.CloseEdit()

	person := models.Person(args[1])
	completed, err := ctl.ToggleDate(ctx, args[0], person)
	if err != nil {
		return err
	}
	writeToggle(w, ctl.Render().Active, person, args[0], completed)
	return nil
}

func writeToggle(w io.Writer, v *view.HabitView, person models.Person, when string, completed bool) {
	name, streakDays := string(person), 0
	for _, p := range v.People {
		if p.Person == person {
			name, streakDays = p.Name, p.Streak
		}
	}

	verb := "cleared"
	if completed {
		verb = "completed"
	}
	fmt.Fprintf(w, "%s %s %s %s\n", name, verb, v.Habit.Name, when)
	if when == "today" {
		fmt.Fprintf(w, "%s's streak: %d\n", name, streakDays)
	}
}

func create(ctx context.Context, ctl *view.Controller, args []string, w io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: create NAME PERSON1 [PERSON2] [ICON]", errUsage)
	}
	in := store.NewHabit{Name: args[0], Person1Name: args[1]}
	if len(args) > 2 {
		in.Person2Name = args[2]
	}
	if len(args) > 3 {
		in.Icon = args[3]
	}

	ctl.OpenCreate()
	h, err := ctl.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "created %s %s (%s) %s\n", h.Icon, h.Name, h.Mode, h.ID)
	return nil
}

func remove(ctx context.Context, ctl *view.Controller, args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete habit-id", errUsage)
	}
	if err := ctl.LongPress(args[0]); err != nil {
		return err
	}
	pending := ctl.Render().PendingDelete
	if err := ctl.ConfirmDelete(ctx); err != nil {
		return err
	}
	fmt.Fprintf(w, "deleted %s\n", pending.Name)
	return nil
}
