package cli

import (
	"fmt"
	"time"

	"habbit/internal/constants"
	"habbit/internal/utils"
)

type TodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *TodayCmd) Run(ctx *Context) error {
	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	tracker := ctx.Tracker()
	if err := tracker.LoadData(ctx.Context, day); err != nil {
		return err
	}

	items := tracker.Items()
	fmt.Printf("Habits for %s:\n\n", day.Format(constants.DayLabelFormat))
	if len(items) == 0 {
		fmt.Println("No active habits for this day.")
		return nil
	}

	done := 0
	for _, item := range items {
		icon := ""
		if item.Template.Icon != nil {
			icon = *item.Template.Icon + " "
		}
		fmt.Printf("  %s %s%s\n", Checkbox(item.Completed), icon, item.Template.Name)
		if item.Completed {
			done++
		}
	}
	fmt.Printf("\n%d/%d completed\n", done, len(items))
	return nil
}

type ToggleCmd struct {
	Name string `arg:"" help:"Template name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	reg := ctx.Registry()
	if err := reg.Reload(ctx.Context); err != nil {
		return err
	}
	tmpl, err := FindTemplate(reg.All(), c.Name)
	if err != nil {
		return err
	}

	tracker := ctx.Tracker()
	if err := tracker.LoadData(ctx.Context, day); err != nil {
		return err
	}

	completed, err := tracker.Toggle(ctx.Context, tmpl.ID)
	if err != nil {
		return err
	}

	dayStr := utils.DayString(day)
	if completed {
		fmt.Printf("Marked %q for %s\n", tmpl.Name, dayStr)
	} else {
		fmt.Printf("Unmarked %q for %s\n", tmpl.Name, dayStr)
	}
	return nil
}

type WeekCmd struct {
	Offset int `help:"Weeks relative to the current one (e.g. -1 for last week)." default:"0"`
}

func (c *WeekCmd) Run(ctx *Context) error {
	nav := ctx.Navigator()
	for i := 0; i < c.Offset; i++ {
		if err := nav.GoToNextWeek(ctx.Context); err != nil {
			return err
		}
	}
	for i := 0; i > c.Offset; i-- {
		if err := nav.GoToPrevWeek(ctx.Context); err != nil {
			return err
		}
	}
	if c.Offset == 0 {
		if err := nav.ReloadCounts(ctx.Context); err != nil {
			return err
		}
	}

	week := nav.VisibleWeek()
	today := utils.StartOfDay(time.Now())

	fmt.Printf("Week of %s\n\n", week[0].Format(constants.DayLabelFormat))
	for _, day := range week {
		marker := " "
		if utils.SameDay(day, today) {
			marker = "*"
		}
		count := nav.CompletionCount(day)
		fmt.Printf("%s %-9s %s  %d done\n", marker, day.Weekday(), utils.DayString(day), count)
	}
	return nil
}

func resolveDay(s string) (time.Time, error) {
	if s == "" {
		return utils.StartOfDay(time.Now()), nil
	}
	return utils.ParseDay(s)
}
