// Package templates holds the habit template management commands.
package templates

import (
	"fmt"

	"habbit/internal/cli"
	"habbit/internal/utils"
)

type TemplateCmd struct {
	Add    AddCmd    `cmd:"" help:"Create a habit template."`
	List   ListCmd   `cmd:"" help:"List habit templates."`
	Edit   EditCmd   `cmd:"" help:"Edit a habit template."`
	Toggle ToggleCmd `cmd:"" help:"Activate or deactivate a habit template."`
	Delete DeleteCmd `cmd:"" help:"Delete a habit template and its history."`
}

type AddCmd struct {
	Name        string `arg:"" help:"Template name."`
	Description string `short:"d" help:"Optional description."`
	Icon        string `short:"i" help:"Optional icon (emoji)."`
	Color       string `short:"c" help:"Optional hex color, e.g. #7df9aa."`
	Inactive    bool   `help:"Create the template without activating it."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	reg := ctx.Registry()
	tmpl, err := reg.Create(ctx.Context, c.Name, optional(c.Description), optional(c.Icon), optional(c.Color), !c.Inactive)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	fmt.Printf("Created template %q (%s)\n", tmpl.Name, tmpl.ID)
	return nil
}

type ListCmd struct {
	All bool `short:"a" help:"Include inactive templates."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	reg := ctx.Registry()
	if err := reg.Reload(ctx.Context); err != nil {
		return err
	}

	templates := reg.Active()
	if c.All {
		templates = reg.All()
	}
	if len(templates) == 0 {
		fmt.Println("No templates found. Create one with 'habbit template add'.")
		return nil
	}

	for _, tmpl := range templates {
		status := "active"
		if !tmpl.IsActive {
			status = "inactive"
		}
		icon := ""
		if tmpl.Icon != nil {
			icon = *tmpl.Icon + " "
		}
		fmt.Printf("%s%s (%s)\n", icon, tmpl.Name, status)
		if tmpl.Description != nil {
			fmt.Printf("    %s\n", *tmpl.Description)
		}
		if tmpl.ActivatedAt != nil {
			fmt.Printf("    tracking since %s\n", utils.DayString(*tmpl.ActivatedAt))
		}
	}
	return nil
}

type EditCmd struct {
	Name        string  `arg:"" help:"Template name."`
	NewName     string  `help:"New template name."`
	Description *string `short:"d" help:"New description."`
	Icon        *string `short:"i" help:"New icon."`
	Color       *string `short:"c" help:"New hex color."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	reg := ctx.Registry()
	if err := reg.Reload(ctx.Context); err != nil {
		return err
	}
	tmpl, err := cli.FindTemplate(reg.All(), c.Name)
	if err != nil {
		return err
	}

	if c.NewName != "" {
		tmpl.Name = c.NewName
	}
	if c.Description != nil {
		tmpl.Description = optional(*c.Description)
	}
	if c.Icon != nil {
		tmpl.Icon = optional(*c.Icon)
	}
	if c.Color != nil {
		tmpl.Color = optional(*c.Color)
	}

	if err := reg.Update(ctx.Context, tmpl); err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	fmt.Printf("Updated template %q\n", tmpl.Name)
	return nil
}

type ToggleCmd struct {
	Name string `arg:"" help:"Template name."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	reg := ctx.Registry()
	if err := reg.Reload(ctx.Context); err != nil {
		return err
	}
	tmpl, err := cli.FindTemplate(reg.All(), c.Name)
	if err != nil {
		return err
	}

	if err := reg.ToggleActive(ctx.Context, tmpl.ID); err != nil {
		return fmt.Errorf("failed to toggle template: %w", err)
	}
	if tmpl.IsActive {
		fmt.Printf("Deactivated %q\n", tmpl.Name)
	} else {
		fmt.Printf("Activated %q\n", tmpl.Name)
	}
	return nil
}

type DeleteCmd struct {
	Name string `arg:"" help:"Template name."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	reg := ctx.Registry()
	if err := reg.Reload(ctx.Context); err != nil {
		return err
	}
	tmpl, err := cli.FindTemplate(reg.All(), c.Name)
	if err != nil {
		return err
	}

	if err := reg.Delete(ctx.Context, tmpl.ID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	fmt.Printf("Deleted template %q and its completion history\n", tmpl.Name)
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
