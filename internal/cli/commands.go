package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"relstamp/internal/core/stamp"
	"relstamp/internal/core/tracker"
	"relstamp/internal/document"

	"github.com/spf13/cobra"
)

func (a *app) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Set the reference timestamp to now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.tracker.Reset(cmd.Context())
		},
	}
}

func (a *app) insertCmd() *cobra.Command {
	var (
		file      string
		line      int
		column    int
		selection string
	)
	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert the time elapsed since the reference into the active document",
		Long: `Insert the time elapsed since the reference into the active document.

Without --line the text is appended to the end of the body. Line and column
count from 1 and are relative to the body, after the front matter. When
--selection is given and sits next to the cursor, it is replaced.`,
		Example: `  relstampctl insert --file notes/standup.md
  relstampctl insert --line 3 --column 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if line < 0 || column < 0 {
				return usageError("--line and --column must not be negative")
			}
			if err := a.focus(cmd.Context(), file); err != nil {
				return err
			}
			a.editor.position = document.Position{Line: line, Column: column}
			a.editor.selection = selection

			text, err := a.tracker.InsertRelative(cmd.Context())
			if text != "" {
				fmt.Fprintln(a.stdout, text)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "open this document first if it is not the active one")
	cmd.Flags().IntVar(&line, "line", 0, "body line of the cursor (default: end of body)")
	cmd.Flags().IntVar(&column, "column", 1, "column of the cursor")
	cmd.Flags().StringVar(&selection, "selection", "", "selected text to replace")
	return cmd
}

func (a *app) saveCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "save TEXT",
		Short:   "Use a selected clock time like \"03:00 PM\" as the reference",
		Example: `  relstampctl save "09:30 AM"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.focus(cmd.Context(), file); err != nil {
				return err
			}
			a.editor.selection = args[0]
			return a.tracker.SaveSelection(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "open this document first if it is not the active one")
	return cmd
}

func (a *app) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open FILE",
		Short: "Make FILE the active document and load its reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Active document: %s\n", a.session.ActiveDocument)
			fmt.Fprintf(a.stdout, "Reference: %s\n", a.describeReference())
			return nil
		},
	}
}

func (a *app) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reload the reference after the active document's front matter changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active, ok := a.editor.ActiveDocument()
			if !ok {
				return tracker.ErrNoActiveDocument
			}
			if err := a.tracker.OnMetadataChanged(cmd.Context(), active); err != nil {
				a.logger.Warn("read document metadata", "document", active, "error", err)
			}
			if err := a.persist(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Reference: %s\n", a.describeReference())
			return nil
		},
	}
}

func (a *app) closeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close",
		Short: "Forget the active document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.ActiveDocument = ""
			return a.session.save()
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the reference timestamp and preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.tracker.State()
			active := a.session.ActiveDocument
			if active == "" {
				active = "none"
			}
			fmt.Fprintf(a.stdout, "Reference: %s\n", a.describeReference())
			fmt.Fprintf(a.stdout, "Active document: %s\n", active)
			fmt.Fprintf(a.stdout, "Include current time: %t\n", state.IncludeCurrentTime)
			fmt.Fprintf(a.stdout, "Save timestamps by page: %t\n", state.SavePerDocument)
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set include-current-time, save-page-time or last-time-stamp",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setConfig(cmd.Context(), args[0], args[1])
		},
	})
	return cmd
}

func (a *app) setConfig(ctx context.Context, key, value string) error {
	switch key {
	case "include-current-time", "save-page-time":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return usageError("%s expects true or false, got %q", key, value)
		}
		if key == "include-current-time" {
			return a.tracker.SetIncludeCurrentTime(ctx, enabled)
		}
		return a.tracker.SetSavePerDocument(ctx, enabled)
	case "last-time-stamp":
		return a.tracker.SetReference(ctx, strings.TrimSpace(value))
	default:
		return usageError("unknown config key %q", key)
	}
}

// focus opens file unless it is already the active document.
// With per-document saving off, the reference stays global and opening does not sync it.
func (a *app) focus(ctx context.Context, file string) error {
	if file == "" {
		return nil
	}
	absolute, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", file, err)
	}
	if absolute == a.session.ActiveDocument {
		return nil
	}
	if !a.tracker.State().SavePerDocument {
		a.session.ActiveDocument = absolute
		return a.session.save()
	}
	return a.open(ctx, absolute)
}

func (a *app) open(ctx context.Context, file string) error {
	absolute, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", file, err)
	}
	a.session.ActiveDocument = absolute
	if err := a.session.save(); err != nil {
		return err
	}
	if err := a.tracker.OnDocumentOpened(ctx, absolute); err != nil {
		a.logger.Warn("read document metadata", "document", absolute, "error", err)
	}
	return a.persist(ctx)
}

// persist saves the synced reference so the next run starts from it.
func (a *app) persist(ctx context.Context) error {
	if err := a.store.SaveState(ctx, a.tracker.State()); err != nil {
		return &tracker.PersistError{Target: "settings", Err: err}
	}
	return nil
}

func (a *app) describeReference() string {
	reference := a.tracker.Reference()
	if reference == "" {
		return "not set"
	}
	now := a.tracker.Now()
	parsed, err := stamp.Parse(reference, now.Location())
	if err != nil {
		return reference
	}
	return fmt.Sprintf("%s (%s)", reference, stamp.Humanize(parsed.Sub(now)))
}
