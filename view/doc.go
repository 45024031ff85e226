// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package view holds the state of the habit screen and renders it.

# Rendering

Build is stateless and is shared by the Controller and the
GET /habits/{id}/view endpoint:

	v := view.Build(habit, entries, streak.Cursor{Year: 2025, Month: 2}, time.Now())

Each tracked person gets a streak, today's completion, a month count and
the month grid. Solo habits render person1 only.

# Controller

	c := view.NewController(st, view.WithLocation(loc))
	if err := c.Load(ctx); err != nil { ... }
	completed, err := c.Toggle(ctx, models.Person1)
	snap := c.Render()

The controller tracks the habit list, the active habit, the create and
edit modals, the habit awaiting delete confirmation (set by LongPress) and
the displayed month. Load on an empty store creates the default habit
first. ConfirmDelete selects the first remaining habit.
*/
package view
